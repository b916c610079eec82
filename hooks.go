package datefmt

import (
	"time"
)

// -----------------------------------------------------------------------------
// Hook Interfaces
// -----------------------------------------------------------------------------
//
// Hooks observe parsing and formatting. The core never logs; attach a
// hooks.Registry to get events out. To use hooks:
//
//  1. Implement the desired hook interface(s)
//  2. Register with hooks.Registry
//  3. Pass the registry to Parser.WithHooks and/or Formatter.WithHooks
//
// Example:
//
//	type SlowFormatHook struct {
//	    logger *log.Logger
//	}
//
//	func (h *SlowFormatHook) OnAfterFormat(e datefmt.AfterFormatEvent) {
//	    if e.Duration > time.Millisecond {
//	        h.logger.Printf("slow format %v: %v", e.Selector, e.Duration)
//	    }
//	}
//
//	registry := hooks.NewRegistry().Register(&SlowFormatHook{logger: log.Default()})
//	formatter := datefmt.NewFormatter(parser, cfg).WithHooks(registry)
//
// Hooks are called synchronously on the caller's goroutine, in registration
// order. Hooks must not panic and should return quickly.
// -----------------------------------------------------------------------------

// AfterParseEvent is published after every Parser.ParseInput call.
type AfterParseEvent struct {
	Input        Input
	AllowAbsence bool

	// Result is nil when the input was absent or parsing failed.
	Result *time.Time
	Err    error
}

// AfterFormatEvent is published after every successful Formatter.FormatInput call.
type AfterFormatEvent struct {
	Input    Input
	Selector Selector

	// Result is nil when the input was absent.
	Result   *Result
	Duration time.Duration
}

// ErrorEvent is published when a parse or format call fails.
type ErrorEvent struct {
	// Op is "parse" or "format".
	Op  string
	Err error
}

// AfterParseHook is implemented by hooks that observe parse calls.
type AfterParseHook interface {
	OnAfterParse(event AfterParseEvent)
}

// AfterFormatHook is implemented by hooks that observe format calls.
type AfterFormatHook interface {
	OnAfterFormat(event AfterFormatEvent)
}

// ErrorHook is implemented by hooks that observe failures.
type ErrorHook interface {
	OnError(event ErrorEvent)
}

// HookDispatcher fans events out to hooks. hooks.Registry implements it.
type HookDispatcher interface {
	FireAfterParse(event AfterParseEvent)
	FireAfterFormat(event AfterFormatEvent)
	FireError(event ErrorEvent)
}
