// Package main provides the datefmt command line tool.
//
// Usage:
//
//	datefmt [flags] <date> [format...]   format one date
//	datefmt [flags] -i                   interactive session
//	datefmt [flags] serve                HTTP API
//
// Flags:
//
//	-config path   YAML configuration file
//	-all           render every format
//	-json          print the result as JSON
//	-v             log parse/format events as YAML to stderr
//	-i             interactive session
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/rickchristie/datefmt"
	"github.com/rickchristie/datefmt/config"
	"github.com/rickchristie/datefmt/hooks"
	"github.com/rickchristie/datefmt/httpapi"
	"github.com/rickchristie/datefmt/loggers"
	"github.com/rickchristie/datefmt/provider"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorDim   = "\033[2m"
)

type options struct {
	configPath  string
	all         bool
	asJSON      bool
	verbose     bool
	interactive bool
	args        []string
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr,
			"%sError: %v%s\n",
			colorRed, err, colorReset)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("datefmt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	fs.BoolVar(&opts.all, "all", false, "render every format")
	fs.BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
	fs.BoolVar(&opts.verbose, "v", false, "log parse/format events as YAML to stderr")
	fs.BoolVar(&opts.interactive, "i", false, "interactive session")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	opts.args = fs.Args()
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	container := provider.NewContainer().
		Register(provider.ServiceProvider{}).
		Register(cfg)

	formatter, err := buildFormatter(container, cfg, opts.verbose, stderr)
	if err != nil {
		return err
	}

	switch {
	case opts.interactive:
		return interactive(formatter, stdout)
	case len(opts.args) > 0 && opts.args[0] == "serve":
		return serve(formatter, cfg.Server.Addr, stderr)
	case len(opts.args) == 0:
		return errors.New("missing date argument (see -h)")
	}

	var selector any
	switch {
	case opts.all:
		selector = datefmt.AllFormats
	case len(opts.args) == 2:
		selector = opts.args[1]
	case len(opts.args) > 2:
		selector = opts.args[1:]
	}

	res, err := formatter.Format(opts.args[0], selector)
	if err != nil {
		return err
	}
	return printResult(stdout, res, opts.asJSON)
}

// buildFormatter resolves the formatter from the container, attaching the YAML
// logger when verbose is set.
func buildFormatter(c *provider.Container, cfg *config.Config, verbose bool, stderr io.Writer) (*datefmt.Formatter, error) {
	if verbose {
		registry := hooks.NewRegistry().Register(loggers.NewLoggerHookWithWriter(stderr))
		c.Factory(provider.KeyParser, func(*provider.Container) (any, error) {
			p, err := cfg.NewParser()
			if err != nil {
				return nil, err
			}
			return p.WithHooks(registry), nil
		})
		f, err := provider.Formatter(c)
		if err != nil {
			return nil, err
		}
		return f.WithHooks(registry), nil
	}
	return provider.Formatter(c)
}

func printResult(w io.Writer, res *datefmt.Result, asJSON bool) error {
	if asJSON {
		data, err := json.Marshal(res)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	switch {
	case res.IsAbsent():
		fmt.Fprintln(w, "(absent)")
	case res.IsMulti():
		width := 0
		for _, name := range res.Names() {
			width = max(width, len(name))
		}
		for _, name := range res.Names() {
			value, _ := res.Get(name)
			fmt.Fprintf(w, "%-*s  %s\n", width, name, value)
		}
	default:
		fmt.Fprintln(w, res.String())
	}
	return nil
}

// -----------------------------------------------------------------------------
// Interactive session
// -----------------------------------------------------------------------------

const interactiveHelp = `Enter a date, optionally followed by "|" and comma-separated formats:
  2019-06-24 15:15:15
  January 5th, 2010 | day,month,year
  tomorrow | _ALL_FORMATS
Commands: :formats, :help, :q`

func interactive(f *datefmt.Formatter, stdout io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          colorCyan + "date> " + colorReset,
		InterruptPrompt: "^C",
		EOFPrompt:       ":q",
		Stdout:          stdout,
	})
	if err != nil {
		return fmt.Errorf(
			"failed to create readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(stdout, colorDim+interactiveHelp+colorReset)
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case ":q", ":quit", ":exit":
			return nil
		case ":help":
			fmt.Fprintln(stdout, interactiveHelp)
			continue
		case ":formats":
			fmt.Fprintln(stdout, strings.Join(f.Formats(), " "))
			continue
		}

		date, selector := splitInteractive(line)
		res, err := f.Format(date, selector)
		if err != nil {
			fmt.Fprintf(stdout, "%s%v%s\n", colorRed, err, colorReset)
			continue
		}
		if err := printResult(stdout, res, false); err != nil {
			return err
		}
	}
}

// splitInteractive splits "date | a,b" into the date and a selector: nil when
// no formats are given, a name for one format, a list otherwise.
func splitInteractive(line string) (string, any) {
	date, formats, found := strings.Cut(line, "|")
	date = strings.TrimSpace(date)
	if !found {
		return date, nil
	}

	var names []string
	for _, name := range strings.Split(formats, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	switch len(names) {
	case 0:
		return date, nil
	case 1:
		return date, names[0]
	default:
		return date, names
	}
}

// -----------------------------------------------------------------------------
// HTTP server
// -----------------------------------------------------------------------------

func serve(f *datefmt.Formatter, addr string, stderr io.Writer) error {
	e := newServer(f)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(stderr, "%slistening on %s%s\n", colorDim, addr, colorReset)
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newServer(f *datefmt.Formatter) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())

	httpapi.NewHandler(f).Register(e)
	return e
}
