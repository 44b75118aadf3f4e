// Package config reads the optional pelican.toml file that overrides the
// default option values. UCI setoption always wins over the file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/pelicanchess/pelican/internal/engine"
)

// DefaultPath is looked up in the working directory when no -config flag
// is given.
const DefaultPath = "pelican.toml"

// File is the on-disk configuration layout:
//
//	net = "path/to/weights.bin"
//
//	[options]
//	Threads = 4
//	Hash = 256
type File struct {
	// Net is an optional path to an NNUE weight file.
	Net string `toml:"net"`

	// Options maps UCI option names to values; names and ranges match the
	// setoption command.
	Options map[string]int64 `toml:"options"`
}

// Load parses the file at path. A missing file at the default path is not
// an error; an unreadable or invalid file is.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultPath {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	f := &File{}
	if err := toml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return f, nil
}

// Apply installs the file's option values, reusing the setoption
// validation so ranges hold. The first invalid entry aborts with an error.
func (f *File) Apply(options *engine.SearchOptions) error {
	for name, value := range f.Options {
		if err := options.Set(name, strconv.FormatInt(value, 10)); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}
