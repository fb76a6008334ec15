// Package command turns chat command text into list operations and runs them.
package command

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies a recognized operation.
type Kind int

// Recognized operations.
const (
	KindInvalid Kind = iota
	KindShowAll
	KindShowItem
	KindAdd
	KindSupport
	KindRemove
	KindComplete
	KindClearList
	KindHelp
)

var kindNames = map[Kind]string{
	KindInvalid:   "invalid",
	KindShowAll:   "show_all",
	KindShowItem:  "show_item",
	KindAdd:       "add",
	KindSupport:   "support",
	KindRemove:    "remove",
	KindComplete:  "complete",
	KindClearList: "clear_list",
	KindHelp:      "help",
}

// String returns the metric/log label for the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// needsList reports whether the operation consults list existence.
func (k Kind) needsList() bool {
	switch k {
	case KindShowAll, KindShowItem, KindSupport, KindRemove, KindComplete, KindClearList:
		return true
	default:
		return false
	}
}

// Command is a parsed operation with its argument.
// Index is the 1-based item number typed by the user; Text is the add payload.
type Command struct {
	Kind  Kind
	Index int
	Text  string
}

// rule pairs a precedence-ordered predicate with the extractor that builds
// the command once the predicate matches.
type rule struct {
	match   *regexp.Regexp
	extract func(text string) (Command, bool)
}

var (
	digitsPattern = regexp.MustCompile(`\d+`)
	addPrefix     = regexp.MustCompile(`(?i)^\s*add\s*`)
)

// rules is evaluated top to bottom; the first match wins.
var rules = []rule{
	{match: regexp.MustCompile(`(?i)^\s*show all`), extract: constant(KindShowAll)},
	{match: regexp.MustCompile(`(?i)^\s*show\s*\d+`), extract: indexed(KindShowItem)},
	{match: addPrefix, extract: addPayload},
	{match: regexp.MustCompile(`(?i)^\s*support\s*\d+`), extract: indexed(KindSupport)},
	{match: regexp.MustCompile(`(?i)^\s*remove\s*\d+`), extract: indexed(KindRemove)},
	{match: regexp.MustCompile(`(?i)^\s*complete\s*\d+`), extract: indexed(KindComplete)},
	{match: regexp.MustCompile(`(?i)^\s*clear list`), extract: constant(KindClearList)},
	{match: regexp.MustCompile(`(?i)^\s*help`), extract: constant(KindHelp)},
}

// Parse classifies trimmed command text into exactly one Command.
func Parse(text string) Command {
	text = strings.TrimSpace(text)

	for _, r := range rules {
		if !r.match.MatchString(text) {
			continue
		}
		if cmd, ok := r.extract(text); ok {
			return cmd
		}
		break
	}

	return Command{Kind: KindInvalid}
}

// StripTrigger removes every case-insensitive occurrence of trigger from
// text and trims the result.
func StripTrigger(text, trigger string) string {
	if trigger != "" {
		pattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(trigger))
		text = pattern.ReplaceAllLiteralString(text, "")
	}
	return strings.TrimSpace(text)
}

func constant(kind Kind) func(string) (Command, bool) {
	return func(string) (Command, bool) {
		return Command{Kind: kind}, true
	}
}

func indexed(kind Kind) func(string) (Command, bool) {
	return func(text string) (Command, bool) {
		index, ok := firstInteger(text)
		if !ok {
			return Command{}, false
		}
		return Command{Kind: kind, Index: index}, true
	}
}

func addPayload(text string) (Command, bool) {
	loc := addPrefix.FindStringIndex(text)
	if loc == nil {
		return Command{}, false
	}
	return Command{Kind: KindAdd, Text: text[loc[1]:]}, true
}

// firstInteger returns the first run of digits anywhere in text.
func firstInteger(text string) (int, bool) {
	digits := digitsPattern.FindString(text)
	if digits == "" {
		return 0, false
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
