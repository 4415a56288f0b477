package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/cropplan/core/model"
)

type file struct {
	Crops model.Catalog `json:"crops" yaml:"crops"`
}

// Load reads a catalog from a .yaml, .yml or .json file and validates it.
func Load(path string) (model.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	c, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Decode reads a catalog in the given format ("yaml", "yml" or "json") and
// validates it.
func Decode(r io.Reader, format string) (model.Catalog, error) {
	var doc file
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, err
		}
	case "json":
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format: %q", format)
	}
	if err := doc.Crops.Validate(); err != nil {
		return nil, err
	}
	return doc.Crops, nil
}
