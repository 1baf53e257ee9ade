package inkwell

import (
	"fmt"
	"sync"
)

// A Registry maps names to shared [Logger] instances, creating each lazily
// on first lookup. The embedding application owns one at its composition
// point and hands it to the components that need logging. Loggers are never
// removed: an instance obtained from a Registry stays valid for the life of
// the registry, so no shutdown order can invalidate it.
//
// The zero value is ready to use.
type Registry struct {
	loggers sync.Map
}

func NewRegistry() *Registry {
	return new(Registry)
}

// Get returns the logger registered under name, creating it on first
// lookup. The options are applied to the returned instance either way, so a
// later caller can reconfigure a logger someone else created; the name
// passed here stays the registry key regardless.
func (r *Registry) Get(name string, opts ...Opt) (*Logger, error) {
	if name == "" {
		name = defaultLoggerName()
	}

	val, ok := r.loggers.Load(name)
	if !ok {
		fresh, err := New(WithName(name))
		if err != nil {
			return nil, fmt.Errorf("failed to get logger %s, caused by %w", name, err)
		}
		val, _ = r.loggers.LoadOrStore(name, fresh)
	}

	logger := val.(*Logger)
	if len(opts) > 0 {
		if err := logger.Configure(opts...); err != nil {
			return nil, fmt.Errorf("failed to get logger %s, caused by %w", name, err)
		}
	}
	return logger, nil
}
