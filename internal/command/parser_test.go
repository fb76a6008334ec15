package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Command
	}{
		{name: "show all", text: "show all", want: Command{Kind: KindShowAll}},
		{name: "show all mixed case", text: "  SHOW All  ", want: Command{Kind: KindShowAll}},
		{name: "show all wins over show number", text: "show all 3", want: Command{Kind: KindShowAll}},
		{name: "show item", text: "show 2", want: Command{Kind: KindShowItem, Index: 2}},
		{name: "show item without space", text: "show12", want: Command{Kind: KindShowItem, Index: 12}},
		{name: "show without number", text: "show", want: Command{Kind: KindInvalid}},
		{name: "add", text: "add list item 1", want: Command{Kind: KindAdd, Text: "list item 1"}},
		{name: "add case insensitive", text: "ADD Milk", want: Command{Kind: KindAdd, Text: "Milk"}},
		{
			name: "add strips only the leading token",
			text: "add item with word add and add ad addd",
			want: Command{Kind: KindAdd, Text: "item with word add and add ad addd"},
		},
		{name: "bare add", text: "add", want: Command{Kind: KindAdd, Text: ""}},
		{name: "add glued to text", text: "addmilk", want: Command{Kind: KindAdd, Text: "milk"}},
		{name: "support", text: "support 1", want: Command{Kind: KindSupport, Index: 1}},
		{name: "support without number", text: "support me", want: Command{Kind: KindInvalid}},
		{name: "remove", text: "remove 3", want: Command{Kind: KindRemove, Index: 3}},
		{name: "complete", text: "Complete 4", want: Command{Kind: KindComplete, Index: 4}},
		{name: "clear list", text: "clear list", want: Command{Kind: KindClearList}},
		{name: "clear alone", text: "clear", want: Command{Kind: KindInvalid}},
		{name: "help", text: "help", want: Command{Kind: KindHelp}},
		{name: "help with suffix", text: "helpme", want: Command{Kind: KindHelp}},
		{name: "empty", text: "", want: Command{Kind: KindInvalid}},
		{name: "unknown", text: "something", want: Command{Kind: KindInvalid}},
		{name: "keyword not at start", text: "please show all", want: Command{Kind: KindInvalid}},
		{name: "zero index parses", text: "show 0", want: Command{Kind: KindShowItem, Index: 0}},
		{
			name: "first digit run is used",
			text: "remove 2 then 3",
			want: Command{Kind: KindRemove, Index: 2},
		},
		{
			name: "overflowing index is invalid",
			text: "show 99999999999999999999999999",
			want: Command{Kind: KindInvalid},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.text))
		})
	}
}

func TestStripTrigger(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		trigger string
		want    string
	}{
		{name: "slash command", text: "/listbot show all", trigger: "/listbot", want: "show all"},
		{name: "glued to command", text: "/listbotadd milk", trigger: "/listbot", want: "add milk"},
		{name: "case insensitive", text: "ListBot help", trigger: "listbot", want: "help"},
		{name: "no trigger", text: "  help  ", trigger: "", want: "help"},
		{name: "regexp metacharacters", text: "l+st? show 1", trigger: "l+st?", want: "show 1"},
		{name: "every occurrence", text: "bot add bot", trigger: "bot", want: "add"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripTrigger(tt.text, tt.trigger))
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "show_all", KindShowAll.String())
	assert.Equal(t, "clear_list", KindClearList.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
