package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ErrNoConfigFile is returned by NewWatcher when there is no file to watch.
var ErrNoConfigFile = errors.New("no config file to watch")

// Watcher watches the configuration file and reports reloaded configs.
type Watcher struct {
	v         *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	errFn     func(error)
	current   *Config
}

// NewWatcher loads the config file once and prepares to watch it.
func NewWatcher(cfgFile string) (*Watcher, error) {
	v := newViper(AppName)
	setViperDefaults(v, DefaultConfig())

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil, ErrNoConfigFile
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}

	return &Watcher{v: v, current: cfg}, nil
}

// File returns the watched file path.
func (w *Watcher) File() string {
	return w.v.ConfigFileUsed()
}

// OnChange registers a callback to be called with each reloaded config.
func (w *Watcher) OnChange(fn func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, fn)
}

// OnError registers a callback for reloads that fail to decode.
func (w *Watcher) OnError(fn func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.errFn = fn
}

// Start begins watching for configuration changes.
func (w *Watcher) Start() {
	w.v.OnConfigChange(func(fsnotify.Event) {
		w.handleChange()
	})
	w.v.WatchConfig()
}

// Current returns the last successfully loaded configuration.
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Reload forces a configuration reload.
func (w *Watcher) Reload() error {
	if err := w.v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}
	return w.handleChange()
}

func (w *Watcher) handleChange() error {
	cfg, err := decode(w.v)

	w.mu.Lock()
	if err == nil {
		w.current = cfg
	}
	callbacks := append([]func(*Config){}, w.callbacks...)
	errFn := w.errFn
	w.mu.Unlock()

	if err != nil {
		if errFn != nil {
			errFn(err)
		}
		return err
	}

	for _, cb := range callbacks {
		cb(cfg)
	}
	return nil
}
