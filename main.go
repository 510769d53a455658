// Command groover is a desktop remote for Groove Basin built around its
// web interface.
package main

import (
	"embed"
	"fmt"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"github.com/wailsapp/wails/v2/pkg/options/windows"

	"github.com/aperezdc/groover/pkg/config"
	"github.com/aperezdc/groover/pkg/logging"
	"github.com/aperezdc/groover/pkg/shell"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags, err := config.ParseFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	cfg := flags.Apply(config.Load(os.Getenv))
	log := logging.New(os.Stderr, cfg.LogLevel)

	// GTK reads the theme before any window exists, so the dark preference
	// has to be in the environment before wails.Run.
	if os.Getenv("GTK_THEME") == "" {
		_ = os.Setenv("GTK_THEME", "Adwaita:dark")
	}

	about := shell.DefaultAbout()
	icon, err := shell.LookupIcon(os.DirFS("/"), shell.DataDirs(os.Getenv), about.LogoIconName)
	if err != nil {
		log.Debug().Err(err).Msg("icon lookup")
	}

	controller := shell.NewController(cfg, log)
	app := NewApp(controller, log, flags.Action, icon)

	err = wails.Run(&options.App{
		Title:     shell.WindowTitle,
		Width:     shell.MinWindowWidth,
		Height:    shell.MinWindowHeight,
		MinWidth:  shell.MinWindowWidth,
		MinHeight: shell.MinWindowHeight,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 36, G: 36, B: 36, A: 1},
		Logger:           logging.NewWailsLogger(log),
		LogLevel:         logging.WailsLevel(log.GetLevel()),
		OnStartup:        app.startup,
		OnDomReady:       app.domReady,
		OnShutdown:       app.shutdown,
		SingleInstanceLock: &options.SingleInstanceLock{
			UniqueId:               controller.ApplicationID(),
			OnSecondInstanceLaunch: app.secondInstance,
		},
		Linux: &linux.Options{
			Icon:             icon,
			ProgramName:      "groover",
			WebviewGpuPolicy: linux.WebviewGpuPolicyOnDemand,
		},
		Mac: &mac.Options{
			Appearance: mac.NSAppearanceNameDarkAqua,
			About: &mac.AboutInfo{
				Title:   about.ProgramName,
				Message: about.Text(),
				Icon:    icon,
			},
		},
		Windows: &windows.Options{
			Theme: windows.Dark,
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("application failed")
		return 1
	}
	if err := app.StartupError(); err != nil {
		return 1
	}
	return 0
}
