package configs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
}

//go:embed schema.cue
var schema string

// Files lists the configuration files to load, in priority order.
type Files []string

var fileNames = []string{
	"zendapi.cue",
	".zendapi.cue",
}

func (Module) Files() (paths Files) {
	var dirs []string
	// working directory
	if dir, err := os.Getwd(); err == nil {
		dirs = append(dirs, dir)
	}
	// user config dir
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	// system wide dir
	dirs = append(dirs, "/etc")

	for _, dir := range dirs {
		for _, name := range fileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	return
}

func (Module) Loader(
	files Files,
) Loader {
	return NewLoader(files, schema)
}
