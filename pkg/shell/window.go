package shell

import (
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"

	"github.com/aperezdc/groover/pkg/actions"
)

const (
	WindowTitle     = "Groover"
	MinWindowWidth  = 900
	MinWindowHeight = 680

	AppMenuLabel      = "Groover"
	TransportBarLabel = "Playback"
)

// Button is an icon button bound to a detailed action name.
type Button struct {
	Icon   string
	Label  string
	Action string
}

// ButtonGroup is a row of buttons drawn as one linked control.
type ButtonGroup struct {
	Linked  bool
	Buttons []Button
}

// Header describes the window's title bar.
type Header struct {
	Title           string
	HasSubtitle     bool
	ShowCloseButton bool
	Start           []ButtonGroup
}

// TransportButtons is the previous / play / next group.
var TransportButtons = []Button{
	{Icon: "media-skip-backward-symbolic", Label: "Previous", Action: "app." + actions.PreviousSong},
	{Icon: "media-playback-start-symbolic", Label: "Play/Pause", Action: "app." + actions.TogglePlay},
	{Icon: "media-skip-forward-symbolic", Label: "Next", Action: "app." + actions.NextSong},
}

// TransportBar returns the linked group packed at the start of the header.
func TransportBar() ButtonGroup {
	buttons := make([]Button, len(TransportButtons))
	copy(buttons, TransportButtons)
	return ButtonGroup{Linked: true, Buttons: buttons}
}

// BuildWindow creates the main window and starts loading serverURL.
func BuildWindow(tk Toolkit, serverURL string) Window {
	w := tk.NewWindow()
	w.SetTitle(WindowTitle)
	w.SetMinSize(MinWindowWidth, MinWindowHeight)
	w.SetHeader(Header{
		Title:           WindowTitle,
		HasSubtitle:     true,
		ShowCloseButton: true,
		Start:           []ButtonGroup{TransportBar()},
	})
	w.Load(serverURL)
	return w
}

// HeaderMenu renders the header's button groups as a menu for toolkits
// whose only window chrome is a menu bar. Groups are separated.
func HeaderMenu(h Header, dispatch func(name string), accels map[string]*keys.Accelerator) (*menu.Menu, error) {
	out := menu.NewMenu()
	for i, group := range h.Start {
		if i > 0 {
			out.Append(menu.Separator())
		}
		for _, b := range group.Buttons {
			name, err := actions.AppName(b.Action)
			if err != nil {
				return nil, err
			}
			out.Append(menu.Text(b.Label, accels[name], func(*menu.CallbackData) {
				dispatch(name)
			}))
		}
	}
	return out, nil
}

// MenuBar joins the application menu and the header menu into one bar.
// Either may be nil.
func MenuBar(appMenu, header *menu.Menu) *menu.Menu {
	bar := menu.NewMenu()
	if appMenu != nil {
		bar.Append(menu.SubMenu(AppMenuLabel, appMenu))
	}
	if header != nil && len(header.Items) > 0 {
		bar.Append(menu.SubMenu(TransportBarLabel, header))
	}
	return bar
}
