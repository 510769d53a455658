// Package resources bundles the declarative UI resources into the binary.
package resources

import "embed"

// Prefix is the resource path shared by every bundled file.
const Prefix = "/org/perezdecastro/groover/"

//go:embed org
var FS embed.FS

// Path maps a resource name to its location inside FS.
func Path(name string) string {
	return Prefix[1:] + name
}
