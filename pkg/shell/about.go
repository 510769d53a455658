package shell

import (
	"fmt"
	"strings"
)

const (
	// LicenseMITX11 names the license shown in the about dialog.
	LicenseMITX11 = "MIT/X11"
	// IconName is the themed icon used for windows and the about dialog.
	IconName = "gnome-music"
)

// About is the static content of the about dialog.
type About struct {
	ProgramName  string
	Authors      []string
	LogoIconName string
	License      string
	Comments     string
	Website      string
}

// DefaultAbout describes Groover.
func DefaultAbout() About {
	return About{
		ProgramName:  WindowTitle,
		Authors:      []string{"Adrián Pérez de Castro"},
		LogoIconName: IconName,
		License:      LicenseMITX11,
		Comments:     "A simple Groove Basin remote using its web-based UI",
		Website:      "https://github.com/aperezdc/groover",
	}
}

// Text renders the dialog body for toolkits that only show plain messages.
func (a About) Text() string {
	var sb strings.Builder
	sb.WriteString(a.Comments)
	sb.WriteString("\n\n")
	if len(a.Authors) > 0 {
		fmt.Fprintf(&sb, "Authors: %s\n", strings.Join(a.Authors, ", "))
	}
	fmt.Fprintf(&sb, "License: %s\n", a.License)
	sb.WriteString(a.Website)
	return sb.String()
}
