// Package factory builds pluggable modules (temperature providers, metrics
// sinks) from configuration. A module is described by a type name plus a raw
// settings map; the registered constructor decodes the map into its own
// struct with Decode.
//
//	reg := factory.NewRegistry[temperature.Provider]()
//	_ = reg.Register("csv", func(conf map[string]any) (temperature.Provider, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return infratemp.NewCSVProvider(c.Path, ';')
//	})
//	p, err := reg.Create(factory.ModuleConfig{Type: "csv", Conf: map[string]any{"path": "temps.csv"}})
package factory
