package msg

import (
	"strconv"
	"strings"

	"github.com/mitchellh/colorstring"
)

// Kind identifies a message prefix such as "Error:" or "Done:".
type Kind uint8

// Built-in kinds.
const (
	None Kind = iota
	Confirm
	Crunched
	Debug
	Done
	Error
	Info
	Notice
	Success
	Task
	Warning
)

// palette extends colorstring's defaults with the 256-color foregrounds
// ("[208]") used by the Confirm/Task prefixes and by custom prefixes.
var palette = func() *colorstring.Colorize {
	colors := make(map[string]string, len(colorstring.DefaultColors)+256)
	for k, v := range colorstring.DefaultColors {
		colors[k] = v
	}
	for i := 0; i < 256; i++ {
		colors[strconv.Itoa(i)] = "38;5;" + strconv.Itoa(i)
	}
	return &colorstring.Colorize{Colors: colors}
}()

var kindMarkup = [...]struct {
	label  string
	markup string
}{
	None:     {"", ""},
	Confirm:  {"Confirm", "[bold][208]Confirm:[reset] "},
	Crunched: {"Crunched", "[light_green][bold]Crunched:[reset] "},
	Debug:    {"Debug", "[light_cyan][bold]Debug:[reset] "},
	Done:     {"Done", "[light_green][bold]Done:[reset] "},
	Error:    {"Error", "[light_red][bold]Error:[reset] "},
	Info:     {"Info", "[light_magenta][bold]Info:[reset] "},
	Notice:   {"Notice", "[light_magenta][bold]Notice:[reset] "},
	Success:  {"Success", "[light_green][bold]Success:[reset] "},
	Task:     {"Task", "[bold][199]Task:[reset] "},
	Warning:  {"Warning", "[light_yellow][bold]Warning:[reset] "},
}

// prefixes holds the rendered ANSI prefix for every built-in kind.
var prefixes = func() [len(kindMarkup)]string {
	var out [len(kindMarkup)]string
	for i, k := range kindMarkup {
		out[i] = palette.Color(k.markup)
	}
	return out
}()

// Prefix returns the styled prefix for k, including the trailing space.
func (k Kind) Prefix() string {
	if int(k) >= len(prefixes) {
		return ""
	}
	return prefixes[k]
}

// String returns the plain label, e.g. "Warning".
func (k Kind) String() string {
	if int(k) >= len(kindMarkup) {
		return ""
	}
	return kindMarkup[k].label
}

// ParseKind maps a CLI name to a Kind. "prompt" is accepted for Confirm.
// Unknown names return None and false.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "confirm", "prompt":
		return Confirm, true
	case "crunched":
		return Crunched, true
	case "debug":
		return Debug, true
	case "done":
		return Done, true
	case "error":
		return Error, true
	case "info":
		return Info, true
	case "notice":
		return Notice, true
	case "success":
		return Success, true
	case "task":
		return Task, true
	case "warning":
		return Warning, true
	case "print", "":
		return None, true
	}
	return None, false
}

// customPrefix renders an arbitrary bold prefix in a 256-color foreground.
// Brackets in the label are dropped so they cannot be read as markup.
func customPrefix(label string, color uint8) string {
	label = strings.NewReplacer("[", "", "]", "").Replace(strings.TrimSpace(label))
	if label == "" {
		return ""
	}
	return palette.Color("[bold][" + strconv.Itoa(int(color)) + "]" + label + ":[reset] ")
}
