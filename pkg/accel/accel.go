// Package accel translates GTK-style accelerator strings ("<Ctrl>comma")
// into Wails key accelerators.
package accel

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wailsapp/wails/v2/pkg/menu/keys"

	"github.com/aperezdc/groover/pkg/actions"
)

// Binding pairs an accelerator with a detailed action name.
type Binding struct {
	Accel  string
	Action string
}

// DefaultBindings is the fixed accelerator set installed at startup.
var DefaultBindings = []Binding{
	{Accel: "<Ctrl>m", Action: "app." + actions.TogglePlay},
	{Accel: "<Ctrl>comma", Action: "app." + actions.PreviousSong},
	{Accel: "<Ctrl>period", Action: "app." + actions.NextSong},
}

var modifiers = map[string]keys.Modifier{
	"ctrl":    keys.CmdOrCtrlKey,
	"control": keys.CmdOrCtrlKey,
	"primary": keys.CmdOrCtrlKey,
	"shift":   keys.ShiftKey,
	"alt":     keys.OptionOrAltKey,
	"mod1":    keys.OptionOrAltKey,
}

// GDK keysym names for keys whose Wails name differs.
var keysyms = map[string]string{
	"comma":        ",",
	"period":       ".",
	"minus":        "-",
	"plus":         "+",
	"equal":        "=",
	"slash":        "/",
	"backslash":    "\\",
	"semicolon":    ";",
	"apostrophe":   "'",
	"grave":        "`",
	"bracketleft":  "[",
	"bracketright": "]",
	"space":        "space",
	"return":       "return",
	"escape":       "escape",
	"tab":          "tab",
	"backspace":    "backspace",
	"delete":       "delete",
	"home":         "home",
	"end":          "end",
	"left":         "left",
	"right":        "right",
	"up":           "up",
	"down":         "down",
	"page_up":      "page up",
	"page_down":    "page down",
}

// Parse converts an accelerator such as "<Primary><Shift>q" or "<Ctrl>period".
func Parse(spec string) (*keys.Accelerator, error) {
	rest := strings.TrimSpace(spec)
	var mods []keys.Modifier
	seen := make(map[keys.Modifier]bool)

	for strings.HasPrefix(rest, "<") {
		end := strings.IndexByte(rest, '>')
		if end < 0 {
			return nil, fmt.Errorf("accelerator %q: unterminated modifier", spec)
		}
		name := strings.ToLower(rest[1:end])
		mod, ok := modifiers[name]
		if !ok {
			return nil, fmt.Errorf("accelerator %q: unsupported modifier <%s>", spec, rest[1:end])
		}
		if !seen[mod] {
			seen[mod] = true
			mods = append(mods, mod)
		}
		rest = rest[end+1:]
	}

	key, err := keyName(rest)
	if err != nil {
		return nil, fmt.Errorf("accelerator %q: %w", spec, err)
	}
	return &keys.Accelerator{Key: key, Modifiers: mods}, nil
}

func keyName(sym string) (string, error) {
	if sym == "" {
		return "", fmt.Errorf("missing key")
	}
	if utf8.RuneCountInString(sym) == 1 {
		return strings.ToLower(sym), nil
	}
	lower := strings.ToLower(sym)
	if name, ok := keysyms[lower]; ok {
		return name, nil
	}
	if strings.HasPrefix(lower, "f") {
		if n, err := strconv.Atoi(lower[1:]); err == nil && n >= 1 && n <= 35 && strconv.Itoa(n) == lower[1:] {
			return lower, nil
		}
	}
	return "", fmt.Errorf("unknown key %q", sym)
}

// Resolve parses bindings into accelerators keyed by application action name.
// Two bindings for the same action are rejected.
func Resolve(bindings []Binding) (map[string]*keys.Accelerator, error) {
	out := make(map[string]*keys.Accelerator, len(bindings))
	for _, b := range bindings {
		name, err := actions.AppName(b.Action)
		if err != nil {
			return nil, err
		}
		if _, dup := out[name]; dup {
			return nil, fmt.Errorf("action %q bound more than once", name)
		}
		a, err := Parse(b.Accel)
		if err != nil {
			return nil, err
		}
		out[name] = a
	}
	return out, nil
}

// String renders an accelerator in GTK syntax, for diagnostics.
func String(a *keys.Accelerator) string {
	if a == nil {
		return ""
	}
	var sb strings.Builder
	for _, m := range a.Modifiers {
		switch m {
		case keys.CmdOrCtrlKey:
			sb.WriteString("<Primary>")
		case keys.ShiftKey:
			sb.WriteString("<Shift>")
		case keys.OptionOrAltKey:
			sb.WriteString("<Alt>")
		default:
			sb.WriteString("<" + string(m) + ">")
		}
	}
	key := a.Key
	for sym, name := range keysyms {
		if name == a.Key && sym != name {
			key = sym
			break
		}
	}
	sb.WriteString(key)
	return sb.String()
}
