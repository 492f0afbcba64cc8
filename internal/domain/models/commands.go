package models

import "strings"

// CommandType enumerates the chat commands understood by the bot.
type CommandType string

const (
	CommandPrice    CommandType = "price"
	CommandMargin   CommandType = "margin"
	CommandForecast CommandType = "forecast"
	CommandStock    CommandType = "stock"
	CommandUnknown  CommandType = "unknown"
)

// Command represents a parsed instruction extracted from WhatsApp text.
// Args keep their original case because model identifiers are case-sensitive.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command instance from free-form text messages.
func ParseCommand(message string) Command {
	tokens := strings.Fields(message)
	cmd := Command{Raw: message}

	if len(tokens) == 0 {
		cmd.Type = CommandUnknown
		return cmd
	}

	head := strings.ToLower(strings.TrimPrefix(tokens[0], "/"))
	switch head {
	case string(CommandPrice):
		cmd.Type = CommandPrice
	case string(CommandMargin):
		cmd.Type = CommandMargin
	case string(CommandForecast):
		cmd.Type = CommandForecast
	case string(CommandStock):
		cmd.Type = CommandStock
	default:
		cmd.Type = CommandUnknown
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}

	return cmd
}

// ArgsText joins the arguments from index start onward with single spaces.
func (c Command) ArgsText(start int) string {
	if start >= len(c.Args) {
		return ""
	}
	return strings.Join(c.Args[start:], " ")
}
