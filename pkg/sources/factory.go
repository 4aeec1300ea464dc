package sources

import (
	"github.com/arthur-debert/getpkg/pkg/errors"
	"github.com/arthur-debert/getpkg/pkg/registry"
)

// Config describes one configured source (see pkg/config)
type Config struct {
	// Name is the user-visible source name
	Name string

	// Type selects the registered factory (e.g. "local")
	Type string

	// Path is the factory-specific location argument
	Path string
}

// Factory creates a source from its configuration
type Factory func(cfg Config) (Source, error)

var factories = registry.New[Factory]()

// RegisterFactory registers a source factory under a type name
func RegisterFactory(typeName string, factory Factory) error {
	return factories.Register(typeName, factory)
}

// MustRegisterFactory registers a factory and panics on failure; used
// from init() where a failure is a programming error
func MustRegisterFactory(typeName string, factory Factory) {
	registry.MustRegister(factories, typeName, factory)
}

// Create builds a source from its configuration
func Create(cfg Config) (Source, error) {
	factory, err := factories.Get(cfg.Type)
	if err != nil {
		return nil, errors.Newf(errors.ErrSourceNotFound,
			"no source type '%s' is registered (have: %v)", cfg.Type, factories.List())
	}
	return factory(cfg)
}

// Types returns the registered source type names
func Types() []string {
	return factories.List()
}
