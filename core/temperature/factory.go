package temperature

import "github.com/kilianp07/cropplan/core/factory"

var providerRegistry = factory.NewRegistry[Provider]()

// RegisterProvider adds a provider constructor identified by name.
func RegisterProvider(name string, c factory.Constructor[Provider]) error {
	return providerRegistry.Register(name, c)
}

// NewProvider builds the provider described by cfg.
func NewProvider(cfg factory.ModuleConfig) (Provider, error) {
	return providerRegistry.Create(cfg)
}

// ProviderTypes lists the registered provider names.
func ProviderTypes() []string {
	return providerRegistry.Types()
}
