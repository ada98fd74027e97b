// Package plugin defines how resource modules attach to the HTTP router.
//
// A Plugin bundles the routes and handlers of one resource kind. It gets its
// collaborators (service and validator) through its own constructor, so it
// knows nothing about other plugins or about the server lifecycle. Register
// is the single place where plugins meet the router; it rejects
// configurations where two plugins claim the same resource name.
package plugin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	// ErrDuplicatePlugin is returned when two plugins share a resource name.
	ErrDuplicatePlugin = errors.New("plugin: duplicate resource name")
	// ErrUnnamedPlugin is returned for a nil plugin or an empty resource name.
	ErrUnnamedPlugin = errors.New("plugin: missing resource name")
)

// Plugin is a self-contained bundle of routes for one resource kind.
type Plugin interface {
	// Name is the resource name (e.g. "albums"). Names must be unique.
	Name() string
	// Register mounts the plugin's routes on r.
	Register(r gin.IRouter)
}

// Register validates the whole set of plugins and then mounts each on r.
// Validation happens up front: when it fails nothing is registered.
// Registration order carries no meaning because resource names are disjoint.
func Register(r gin.IRouter, plugins ...Plugin) error {
	seen := make(map[string]struct{}, len(plugins))
	for i, p := range plugins {
		if p == nil {
			return fmt.Errorf("%w: plugin #%d is nil", ErrUnnamedPlugin, i)
		}
		name := strings.TrimSpace(p.Name())
		if name == "" {
			return fmt.Errorf("%w: plugin #%d (%T)", ErrUnnamedPlugin, i, p)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicatePlugin, name)
		}
		seen[name] = struct{}{}
	}
	for _, p := range plugins {
		p.Register(r)
	}
	return nil
}
