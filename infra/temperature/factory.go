package temperature

import (
	"fmt"
	"unicode/utf8"

	"github.com/kilianp07/cropplan/core/factory"
	coretemp "github.com/kilianp07/cropplan/core/temperature"
)

// init registers built-in temperature providers.
func init() {
	_ = coretemp.RegisterProvider("csv", func(conf map[string]any) (coretemp.Provider, error) {
		var c struct {
			Path      string `json:"path"`
			Delimiter string `json:"delimiter"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Path == "" {
			return nil, fmt.Errorf("csv temperature provider: path is required")
		}
		var comma rune
		if c.Delimiter != "" {
			if utf8.RuneCountInString(c.Delimiter) != 1 {
				return nil, fmt.Errorf("csv temperature provider: delimiter must be one character, got %q", c.Delimiter)
			}
			comma, _ = utf8.DecodeRuneInString(c.Delimiter)
		}
		return NewCSVProvider(c.Path, comma)
	})

	_ = coretemp.RegisterProvider("static", func(conf map[string]any) (coretemp.Provider, error) {
		var c struct {
			Series map[string][]float64 `json:"series"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return coretemp.StaticProvider{Series: c.Series}, nil
	})
}
