// Package profile stores named import configs per bank source, so an
// operator reviews a mapping once and reuses it for every later statement
// from the same source.
package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// DefaultFileName is the profile file looked for in the working directory.
const DefaultFileName = "bankfeed.yaml"

// File represents a bankfeed.yaml profile file.
type File struct {
	Profiles map[string]model.ImportConfig `yaml:"profiles"`
}

// Load reads a profile file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profiles: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing profiles: %w", err)
	}
	return &f, nil
}

// Save writes a profile file to disk.
func Save(path string, f *File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling profiles: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing profiles: %w", err)
	}
	return nil
}

// Get returns the named import config.
func (f *File) Get(name string) (model.ImportConfig, bool) {
	cfg, ok := f.Profiles[name]
	return cfg, ok
}

// Set adds or replaces the named import config.
func (f *File) Set(name string, cfg model.ImportConfig) {
	if f.Profiles == nil {
		f.Profiles = make(map[string]model.ImportConfig)
	}
	f.Profiles[name] = cfg
}

// Default returns a profile file with one example checking-account profile.
func Default() *File {
	col := func(i int) *int { return &i }
	f := &File{}
	f.Set("example-checking", model.ImportConfig{
		HeaderRow: 0,
		Columns: model.ColumnMapping{
			Date:        col(0),
			Description: col(1),
			Debit:       col(2),
			Credit:      col(3),
		},
		Format: model.AmountSeparate,
	})
	return f
}
