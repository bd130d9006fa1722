package ferogram

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Plugin bundles a router with descriptive metadata. Plugins attach to a
// dispatcher like routers do, but their handlers run after every top-level
// router has declined the update.
type Plugin struct {
	name        string
	version     string
	description string
	authors     []string
	router      *Router
}

// NewPlugin creates a plugin with the given name and an empty router.
func NewPlugin(name string) *Plugin {
	return &Plugin{name: name, router: NewRouter()}
}

// Manifest is the on-disk metadata of a plugin.
type Manifest struct {
	Name        string   `yaml:"name"`
	Version     string   `yaml:"version"`
	Description string   `yaml:"description,omitempty"`
	Authors     []string `yaml:"authors,omitempty"`
}

// LoadManifest reads a plugin manifest from a YAML file.
func LoadManifest(path string) (Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.Name == "" {
		return Manifest{}, fmt.Errorf("manifest %s: missing name", path)
	}
	return m, nil
}

// FromManifest creates a plugin from a previously loaded manifest.
func FromManifest(m Manifest) *Plugin {
	return &Plugin{
		name:        m.Name,
		version:     m.Version,
		description: m.Description,
		authors:     m.Authors,
		router:      NewRouter(),
	}
}

// Version sets the plugin version.
func (p *Plugin) Version(version string) *Plugin {
	p.version = version
	return p
}

// Description sets the plugin description.
func (p *Plugin) Description(description string) *Plugin {
	p.description = description
	return p
}

// Authors sets the plugin authors.
func (p *Plugin) Authors(authors ...string) *Plugin {
	p.authors = authors
	return p
}

// Handle registers a handler on the plugin's router.
func (p *Plugin) Handle(h *Handler) *Plugin {
	p.router.Handle(h)
	return p
}

// Router exposes the plugin's router for grouping and middleware.
func (p *Plugin) Router(fn func(*Router)) *Plugin {
	fn(p.router)
	return p
}

// Name returns the plugin name.
func (p *Plugin) Name() string { return p.name }

// Commands returns metadata for every command handler the plugin registers.
func (p *Plugin) Commands() []CommandInfo {
	return p.router.Commands()
}

func (p *Plugin) String() string {
	if p.version == "" {
		return p.name
	}
	return p.name + " " + p.version
}
