// Package hooks provides a registry for parse and format hooks.
//
// Hooks observe what the parser and formatter do without changing it. Each
// hook interface corresponds to a specific event type - implement only the
// interfaces you need.
//
// # Hook Interfaces
//
//   - [datefmt.AfterParseHook] - Called after every parse, successful or not
//   - [datefmt.AfterFormatHook] - Called after every successful format
//   - [datefmt.ErrorHook] - Called when a parse or format call fails
//
// # Creating a Hook
//
//	type UnknownFormatAlarm struct {
//	    logger *log.Logger
//	}
//
//	func (h *UnknownFormatAlarm) OnError(e datefmt.ErrorEvent) {
//	    var unknown *datefmt.UnknownFormatError
//	    if errors.As(e.Err, &unknown) {
//	        h.logger.Printf("client asked for format %q", unknown.Name)
//	    }
//	}
//
// # Registering Hooks
//
//	registry := hooks.NewRegistry().Register(&UnknownFormatAlarm{logger: log.Default()})
//	formatter := datefmt.NewFormatter(parser, cfg).WithHooks(registry)
//
// The loggers package contains a ready-made hook that writes every event as YAML.
package hooks
