// Package themes provides the theme registry and presets for the viewer.
package themes

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// PresetName identifies a built-in theme preset
type PresetName string

const (
	PresetDark    PresetName = "dark"
	PresetLight   PresetName = "light"
	PresetDracula PresetName = "dracula"
	PresetNord    PresetName = "nord"
	PresetGruvbox PresetName = "gruvbox"

	// PresetAuto picks dark or light from the terminal background.
	PresetAuto PresetName = "auto"
)

// Registry manages theme presets and the active theme
type Registry struct {
	mu         sync.RWMutex
	presets    map[PresetName]*Theme
	active     *Theme
	activeName PresetName
}

var (
	globalRegistry *Registry
	once           sync.Once
)

// Global returns the process-wide registry
func Global() *Registry {
	once.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}

// NewRegistry creates a registry holding the built-in presets, with dark
// active
func NewRegistry() *Registry {
	r := &Registry{
		presets: map[PresetName]*Theme{
			PresetDark:    DarkTheme(),
			PresetLight:   LightTheme(),
			PresetDracula: DraculaTheme(),
			PresetNord:    NordTheme(),
			PresetGruvbox: GruvboxTheme(),
		},
	}
	r.active = r.presets[PresetDark]
	r.activeName = PresetDark
	return r
}

// Active returns the currently active theme
func (r *Registry) Active() *Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// ActiveName returns the name of the currently active preset
func (r *Registry) ActiveName() PresetName {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activeName
}

// SetActive sets the active theme by preset name
func (r *Registry) SetActive(name PresetName) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if theme, ok := r.presets[name]; ok {
		r.active = theme
		r.activeName = name
		return true
	}
	return false
}

// Get returns a preset theme by name
func (r *Registry) Get(name PresetName) *Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.presets[name]
}

// Lookup resolves a configured theme name, case-insensitively. "auto" and
// the empty string detect the terminal background.
func (r *Registry) Lookup(name string) (*Theme, error) {
	preset := PresetName(strings.ToLower(strings.TrimSpace(name)))
	if preset == "" || preset == PresetAuto {
		preset = DetectColorScheme()
	}
	if t := r.Get(preset); t != nil {
		return t, nil
	}
	return nil, fmt.Errorf("unknown theme %q (available: %v)", name, r.ListPresets())
}

// Use resolves name with Lookup and makes it active.
func (r *Registry) Use(name string) (*Theme, error) {
	t, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	r.SetActive(PresetName(t.Name))
	return t, nil
}

// ListPresets returns all preset names, sorted
func (r *Registry) ListPresets() []PresetName {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]PresetName, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// DetectColorScheme attempts to detect if the terminal prefers light or dark mode
func DetectColorScheme() PresetName {
	if lipgloss.HasDarkBackground() {
		return PresetDark
	}
	return PresetLight
}
