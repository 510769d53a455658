// Package shell wires the Groover window, its transport controls and the
// application actions on top of a native toolkit.
package shell

import (
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"

	"github.com/aperezdc/groover/pkg/bridge"
)

// Engine configures the web engine before any page view exists.
type Engine struct {
	ProcessModel     string
	WebExtensionsDir string
}

// Toolkit is the native layer driven by the Controller. Implementations are
// expected to be called from the event loop only.
type Toolkit interface {
	ConfigureEngine(Engine)
	PreferDarkTheme()
	// SetDefaultIcon sets the themed icon used by every window.
	SetDefaultIcon(name string)
	SetApplicationMenu(*menu.Menu)
	InstallAccelerators(map[string]*keys.Accelerator)
	NewWindow() Window
	ShowAbout(About)
	Quit()
}

// Window is the top-level window together with the page view it hosts.
type Window interface {
	bridge.Evaluator
	SetTitle(title string)
	SetMinSize(width, height int)
	SetHeader(Header)
	Load(url string)
	Show()
	Raise()
}
