package hooks

import (
	"github.com/rickchristie/datefmt"
)

// Registry manages a collection of hooks and dispatches events to them.
//
// # Overview
//
// Registry is the central coordination point for hooks. It:
//   - Stores registered hooks in order
//   - Dispatches events to hooks that implement the relevant interface
//
// Hooks can implement any combination of hook interfaces - they only receive
// events for the interfaces they implement.
//
// # Creating and Using
//
//	registry := hooks.NewRegistry().
//	    Register(loggers.NewLoggerHook()).
//	    Register(&MetricsHook{})
//
//	parser := datefmt.NewParser().WithHooks(registry)
//	formatter := datefmt.NewFormatter(parser, cfg).WithHooks(registry)
//
// # Hooks with Multiple Interfaces
//
//	type FailureCounter struct {
//	    parses, failures atomic.Int64
//	}
//
//	func (h *FailureCounter) OnAfterParse(e datefmt.AfterParseEvent) {
//	    h.parses.Add(1)
//	}
//
//	func (h *FailureCounter) OnError(e datefmt.ErrorEvent) {
//	    h.failures.Add(1)
//	}
//
// # Thread Safety
//
// Register is NOT thread-safe. Register all hooks before the first parse or
// format call. Fire methods may be called concurrently once registration is
// done; hooks that keep state must synchronize it themselves.
type Registry struct {
	hooks []any
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		hooks: make([]any, 0),
	}
}

// Register adds a hook to the registry. The hook can implement any combination
// of datefmt.AfterParseHook, datefmt.AfterFormatHook and datefmt.ErrorHook.
//
// Hooks are called in the order they are registered.
func (r *Registry) Register(hook any) *Registry {
	r.hooks = append(r.hooks, hook)
	return r
}

// Len returns the number of registered hooks.
func (r *Registry) Len() int {
	return len(r.hooks)
}

// FireAfterParse dispatches an AfterParseEvent to all registered
// AfterParseHook implementations.
func (r *Registry) FireAfterParse(event datefmt.AfterParseEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(datefmt.AfterParseHook); ok {
			hook.OnAfterParse(event)
		}
	}
}

// FireAfterFormat dispatches an AfterFormatEvent to all registered
// AfterFormatHook implementations.
func (r *Registry) FireAfterFormat(event datefmt.AfterFormatEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(datefmt.AfterFormatHook); ok {
			hook.OnAfterFormat(event)
		}
	}
}

// FireError dispatches an ErrorEvent to all registered ErrorHook implementations.
func (r *Registry) FireError(event datefmt.ErrorEvent) {
	for _, h := range r.hooks {
		if hook, ok := h.(datefmt.ErrorHook); ok {
			hook.OnError(event)
		}
	}
}

// Compile-time check that Registry implements datefmt.HookDispatcher.
var _ datefmt.HookDispatcher = (*Registry)(nil)
