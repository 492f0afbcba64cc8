package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input    string
		wantType CommandType
		wantArgs []string
	}{
		{input: "/price iPhone 12 128GB", wantType: CommandPrice, wantArgs: []string{"iPhone", "12", "128GB"}},
		{input: "PRICE iPhone 12 128GB", wantType: CommandPrice, wantArgs: []string{"iPhone", "12", "128GB"}},
		{input: "margin 2000 iPhone 11 64GB", wantType: CommandMargin, wantArgs: []string{"2000", "iPhone", "11", "64GB"}},
		{input: "  /forecast   iPhone 13 128GB ", wantType: CommandForecast, wantArgs: []string{"iPhone", "13", "128GB"}},
		{input: "/stock", wantType: CommandStock},
		{input: "hello there", wantType: CommandUnknown, wantArgs: []string{"there"}},
		{input: "   ", wantType: CommandUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd := ParseCommand(tt.input)
			assert.Equal(t, tt.wantType, cmd.Type)
			assert.Equal(t, tt.wantArgs, cmd.Args)
			assert.Equal(t, tt.input, cmd.Raw)
		})
	}
}

func TestCommand_ArgsText(t *testing.T) {
	cmd := ParseCommand("/margin 2000 iPhone 11 64GB")
	assert.Equal(t, "iPhone 11 64GB", cmd.ArgsText(1))
	assert.Equal(t, "", cmd.ArgsText(4))
}

func TestInventoryLot_InStock(t *testing.T) {
	assert.True(t, InventoryLot{Quantity: 1}.InStock())
	assert.False(t, InventoryLot{Quantity: 0}.InStock())
}
