package tabs

import (
	"tabkit/internal/config"
	"tabkit/internal/logger"
)

// Selectors are the structural markers a group is discovered by.
type Selectors struct {
	// Root matches the element that owns one group.
	Root string `json:"root" yaml:"root"`
	// Trigger matches the buttons inside a root, in document order.
	Trigger string `json:"trigger" yaml:"trigger"`
	// Panel matches the content panels inside a root, in document order.
	Panel string `json:"panel" yaml:"panel"`
	// ActiveClass marks the selected trigger and the visible panel.
	ActiveClass string `json:"active_class" yaml:"active_class"`
}

// DefaultSelectors returns the markers used by the stock markup.
func DefaultSelectors() Selectors {
	return Selectors{
		Root:        ".tabs",
		Trigger:     ".tabs__button",
		Panel:       ".tabs__content",
		ActiveClass: "is-active",
	}
}

// SelectorsFromConfig converts the markup section of the config.
func SelectorsFromConfig(c config.MarkupConfig) Selectors {
	return Selectors{
		Root:        c.RootSelector,
		Trigger:     c.TriggerSelector,
		Panel:       c.PanelSelector,
		ActiveClass: c.ActiveClass,
	}
}

// withDefaults fills empty fields from DefaultSelectors.
func (s Selectors) withDefaults() Selectors {
	d := DefaultSelectors()
	if s.Root == "" {
		s.Root = d.Root
	}
	if s.Trigger == "" {
		s.Trigger = d.Trigger
	}
	if s.Panel == "" {
		s.Panel = d.Panel
	}
	if s.ActiveClass == "" {
		s.ActiveClass = d.ActiveClass
	}
	return s
}

type options struct {
	selectors Selectors
	log       *logger.Logger
	onChange  []func(Change)
	name      string
}

// Option configures a Group.
type Option func(*options)

// WithSelectors overrides the structural markers and the state class.
// Empty fields keep their defaults.
func WithSelectors(s Selectors) Option {
	return func(o *options) {
		o.selectors = s.withDefaults()
	}
}

// WithLogger sets the logger state changes are reported to.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithOnChange registers an observer called after every activation.
func WithOnChange(fn func(Change)) Option {
	return func(o *options) {
		if fn != nil {
			o.onChange = append(o.onChange, fn)
		}
	}
}

// WithName sets the name the group is reported under. It defaults to the
// root element's id.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

func buildOptions(opts []Option) options {
	o := options{
		selectors: DefaultSelectors(),
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
