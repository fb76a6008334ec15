package command

import (
	"strconv"
	"strings"
)

// User-facing replies.
const (
	MsgItemAdded       = "Item added!"
	MsgSupported       = "Great! Thanks for the support."
	MsgItemRemoved     = "Item removed."
	MsgItemCompleted   = "Item completed!"
	MsgListCleared     = "List cleared!"
	MsgStoreFailure    = "Something went wrong. Please try again."
	MsgNothingToShow   = "There are no items in the list to show."
	MsgNothingSupport  = "There are no items in the list to support."
	MsgNothingRemove   = "There are no items in the list to remove."
	MsgNothingComplete = "There are no items in the list to complete."
	MsgNothingToClear  = "There is no list to clear."
	MsgBadIndex        = "That number is not associated with a list item."
	// MsgBadIndexSupport has no trailing period; clients match on the exact text.
	MsgBadIndexSupport = "That number is not associated with a list item"
)

// helpLines lists each command example and its description.
var helpLines = [][2]string{
	{"show all", "Show all items in the list"},
	{"show [list item number]", "Show the item specified"},
	{"add [new list item text]", "Add a new item to the list"},
	{"support [list item number]", "Add your name to the item specified"},
	{"remove [list item number]", "Remote the item specified"},
	{"complete [list item number]", "Complete the item."},
	{"clear list", "Clear all active list items"},
	{"help", "show all available commands"},
}

// FormatList renders items as a 1-based numbered listing.
func FormatList(items []string) string {
	var b strings.Builder
	for i, item := range items {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(") ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	return b.String()
}

// FormatItem renders a single item.
func FormatItem(item string) string {
	return "* " + item
}

// HelpText renders the command summary for trigger.
func HelpText(trigger string) string {
	var b strings.Builder
	for _, line := range helpLines {
		b.WriteString("* _")
		b.WriteString(trigger)
		b.WriteString(" ")
		b.WriteString(line[0])
		b.WriteString("_ - ")
		b.WriteString(line[1])
		b.WriteString("\n")
	}
	return b.String()
}

// InvalidText is the reply for text that matched no command.
func InvalidText(trigger string) string {
	return "That request is invalid. Type `" + trigger + " help` to see a list of valid commands"
}
