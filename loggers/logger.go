// Package loggers provides reusable logging hooks for the parser and formatter.
package loggers

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rickchristie/datefmt"
	"gopkg.in/yaml.v3"
)

// LoggerHook implements every hook interface and logs each event as a YAML
// block. Nothing is truncated.
//
//	>>> [AfterFormat]: 2025-02-15 14:30:00.000
//	duration: 41.2µs
//	formats:
//	    - rfc822
//	input: "2019-06-24 15:15:15"
//	input_kind: string
//	result:
//	    rfc822: Mon, 24 Jun 19 15:15:15 +0000
//	selector: name
//
// Writes are serialized, so one LoggerHook can be shared by concurrent callers.
type LoggerHook struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

// NewLoggerHook creates a new LoggerHook that writes to stderr.
func NewLoggerHook() *LoggerHook {
	return NewLoggerHookWithWriter(os.Stderr)
}

// NewLoggerHookWithWriter creates a new LoggerHook that writes to the given writer.
func NewLoggerHookWithWriter(w io.Writer) *LoggerHook {
	return &LoggerHook{
		out: w,
		now: time.Now,
	}
}

// WithTimeProvider sets the clock used for event header timestamps.
func (h *LoggerHook) WithTimeProvider(tp datefmt.TimeProvider) *LoggerHook {
	h.now = tp.Now
	return h
}

// OnAfterParse logs the parsed input and its result.
func (h *LoggerHook) OnAfterParse(event datefmt.AfterParseEvent) {
	data := map[string]any{
		"input_kind":    kindOf(event.Input).String(),
		"allow_absence": event.AllowAbsence,
	}
	if v := inputValue(event.Input); v != nil {
		data["input"] = v
	}
	if event.Result != nil {
		data["result"] = event.Result.Format(datefmt.LayoutAtom)
	}
	if event.Err != nil {
		data["error"] = event.Err.Error()
	}
	h.write("AfterParse", data)
}

// OnAfterFormat logs the selector and the rendered values.
func (h *LoggerHook) OnAfterFormat(event datefmt.AfterFormatEvent) {
	data := map[string]any{
		"input_kind": kindOf(event.Input).String(),
		"selector":   selectorName(event.Selector),
		"duration":   event.Duration.String(),
	}
	if v := inputValue(event.Input); v != nil {
		data["input"] = v
	}
	if event.Result.IsAbsent() {
		data["result"] = nil
	} else {
		data["formats"] = event.Result.Names()
		data["result"] = event.Result.Map()
	}
	h.write("AfterFormat", data)
}

// OnError logs failed parse and format calls.
func (h *LoggerHook) OnError(event datefmt.ErrorEvent) {
	h.write("Error", map[string]any{
		"op":    event.Op,
		"error": event.Err.Error(),
	})
}

func (h *LoggerHook) write(name string, v any) {
	data, err := yaml.Marshal(v)

	h.mu.Lock()
	defer h.mu.Unlock()

	fmt.Fprintf(h.out, "\n>>> [%s]: %s\n", name, h.now().Format("2006-01-02 15:04:05.000"))
	if err != nil {
		fmt.Fprintf(h.out, "(failed to marshal: %v)\n", err)
		return
	}
	fmt.Fprint(h.out, string(data))
}

func kindOf(in datefmt.Input) datefmt.InputKind {
	if in == nil {
		return datefmt.InputAbsent
	}
	return in.Kind()
}

func inputValue(in datefmt.Input) any {
	switch v := in.(type) {
	case datefmt.StringInput:
		return string(v)
	case datefmt.TimeInput:
		if v.Time != nil {
			return v.Time.Format(datefmt.LayoutAtom)
		}
	case datefmt.InvalidInput:
		return fmt.Sprintf("%T(%v)", v.Value, v.Value)
	}
	return nil
}

func selectorName(sel datefmt.Selector) string {
	switch s := sel.(type) {
	case nil, datefmt.DefaultSelector:
		return "default"
	case datefmt.NameSelector:
		return "name"
	case datefmt.NamesSelector:
		return "names"
	case datefmt.AllSelector:
		return "all"
	case datefmt.InvalidSelector:
		return "invalid: " + s.Reason
	default:
		return fmt.Sprintf("%T", sel)
	}
}

// Compile-time checks.
var (
	_ datefmt.AfterParseHook  = (*LoggerHook)(nil)
	_ datefmt.AfterFormatHook = (*LoggerHook)(nil)
	_ datefmt.ErrorHook       = (*LoggerHook)(nil)
)
