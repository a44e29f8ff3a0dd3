// Package weather resolves H2K weather location codes to weather-data file
// paths through a YAML station index. The conversion core only consumes the
// resolved path; fetching and caching weather data is someone else's job.
package weather

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Station is one entry in the index.
type Station struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

// Index maps location codes to weather files.
type Index struct {
	baseDir string
	byCode  map[string]Station
}

// indexFile is the on-disk YAML shape.
type indexFile struct {
	Stations []Station `yaml:"stations"`
}

// LoadIndex reads a station index. Relative station file paths resolve
// against the index file's directory.
func LoadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weather index: %w", err)
	}
	var f indexFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse weather index %s: %w", path, err)
	}
	idx := &Index{
		baseDir: filepath.Dir(path),
		byCode:  make(map[string]Station, len(f.Stations)),
	}
	for _, s := range f.Stations {
		if s.Code == "" || s.File == "" {
			return nil, fmt.Errorf("weather index %s: station %q needs code and file", path, s.Name)
		}
		if _, dup := idx.byCode[s.Code]; dup {
			return nil, fmt.Errorf("weather index %s: duplicate station code %q", path, s.Code)
		}
		idx.byCode[s.Code] = s
	}
	return idx, nil
}

// Resolve returns the weather file path for a location code.
func (i *Index) Resolve(code string) (string, error) {
	s, ok := i.byCode[code]
	if !ok {
		return "", fmt.Errorf("weather location code %q not in index", code)
	}
	if filepath.IsAbs(s.File) {
		return s.File, nil
	}
	return filepath.Join(i.baseDir, s.File), nil
}
