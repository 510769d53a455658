package shell

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// ErrIconNotFound is returned when no theme directory has the icon.
var ErrIconNotFound = errors.New("icon not found")

// iconSizes is the hicolor lookup order, largest first.
var iconSizes = []string{"512x512", "256x256", "128x128", "96x96", "64x64", "48x48"}

// DataDirs returns the XDG data directories to search for icons.
func DataDirs(getenv func(string) string) []string {
	var dirs []string
	if home := getenv("XDG_DATA_HOME"); home != "" {
		dirs = append(dirs, home)
	} else if h := getenv("HOME"); h != "" {
		dirs = append(dirs, path.Join(h, ".local/share"))
	}
	sys := getenv("XDG_DATA_DIRS")
	if sys == "" {
		sys = "/usr/local/share:/usr/share"
	}
	for _, d := range strings.Split(sys, ":") {
		if d != "" {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// LookupIcon finds the PNG for a themed icon name in the hicolor theme or
// pixmaps of the given data directories. Paths are resolved against fsys,
// which is usually os.DirFS("/").
func LookupIcon(fsys fs.FS, dataDirs []string, name string) ([]byte, error) {
	for _, dir := range dataDirs {
		dir = strings.TrimPrefix(path.Clean(dir), "/")
		candidates := make([]string, 0, len(iconSizes)+1)
		for _, size := range iconSizes {
			candidates = append(candidates, path.Join(dir, "icons/hicolor", size, "apps", name+".png"))
		}
		candidates = append(candidates, path.Join(dir, "pixmaps", name+".png"))

		for _, p := range candidates {
			data, err := fs.ReadFile(fsys, p)
			if err == nil {
				return data, nil
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read icon %s: %w", p, err)
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrIconNotFound, name)
}
