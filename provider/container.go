package provider

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/samber/do"
)

// Container errors.
var (
	ErrServiceNotFound = errors.New("service not found")
	ErrServiceType     = errors.New("service has unexpected type")
)

// Factory builds a service from other container entries.
type Factory func(c *Container) (any, error)

// Provider registers a group of related entries in a Container.
type Provider interface {
	Register(c *Container)
}

// Container is a small service container backed by a do.Injector: plain values
// are returned as-is, factories run once on first Get and their result is
// shared afterwards.
//
// Later registrations replace earlier ones, so an application overrides a
// provider's defaults by registering after it:
//
//	c := provider.NewContainer().
//	    Register(provider.ServiceProvider{}).
//	    Set(provider.KeyDefaultFormat, "rfc822")
//
// Container is safe for concurrent use.
type Container struct {
	injector *do.Injector
}

// NewContainer creates an empty Container.
func NewContainer() *Container {
	return &Container{injector: do.New()}
}

// Register lets p add its entries.
func (c *Container) Register(p Provider) *Container {
	p.Register(c)
	return c
}

// Set stores a plain value under key, replacing any value or factory.
func (c *Container) Set(key string, value any) *Container {
	do.OverrideNamedValue[any](c.injector, key, value)
	return c
}

// Factory stores a shared factory under key, replacing any value or factory.
// The factory runs once; a failed build is retried on the next Get.
func (c *Container) Factory(key string, f Factory) *Container {
	do.OverrideNamed[any](c.injector, key, func(*do.Injector) (any, error) {
		v, err := f(c)
		if err != nil {
			return nil, fmt.Errorf("building %q: %w", key, err)
		}
		return v, nil
	})
	return c
}

// Has reports whether key has a value or a factory.
func (c *Container) Has(key string) bool {
	return slices.Contains(c.injector.ListProvidedServices(), key)
}

// Keys returns every registered key, sorted.
func (c *Container) Keys() []string {
	keys := c.injector.ListProvidedServices()
	sort.Strings(keys)
	return keys
}

// Get returns the entry stored under key, running its factory on first use.
func (c *Container) Get(key string) (any, error) {
	if !c.Has(key) {
		return nil, fmt.Errorf("%w: %q", ErrServiceNotFound, key)
	}
	return do.InvokeNamed[any](c.injector, key)
}

// Resolve returns the entry under key as a T.
func Resolve[T any](c *Container, key string) (T, error) {
	var zero T
	v, err := c.Get(key)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q is %T, want %T", ErrServiceType, key, v, zero)
	}
	return t, nil
}
