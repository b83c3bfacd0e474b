package main

import (
	"fmt"
	"io"
	"time"

	"github.com/leofalp/concertscout/core/scout"
	"github.com/leofalp/concertscout/internal/utils"
	"github.com/leofalp/concertscout/providers/observability"
	"github.com/leofalp/concertscout/providers/observability/slogobs"
	"github.com/leofalp/concertscout/providers/scoutapi"
)

// Options are the flags shared by every command.
type Options struct {
	BackendURL      string        `long:"backend-url" env:"CONCERTSCOUT_BACKEND_URL" description:"Agent backend URL (falls back to BACKEND_URL, then http://localhost:8000)"`
	Timeout         time.Duration `long:"timeout" env:"CONCERTSCOUT_TIMEOUT" default:"120s" description:"Backend request timeout"`
	Repair          bool          `long:"repair" env:"CONCERTSCOUT_JSON_REPAIR" description:"Recover malformed or truncated section JSON"`
	DisplayDefaults bool          `long:"display-defaults" env:"CONCERTSCOUT_DISPLAY_DEFAULTS" description:"Fill missing show time, genre and image for display"`
	Pretty          bool          `long:"pretty" description:"Indent JSON output"`
}

type app struct {
	options Options
	in      io.Reader
	out     io.Writer

	observer observability.Provider
}

func newApp(in io.Reader, out io.Writer) *app {
	return &app{in: in, out: out}
}

// obs returns the shared observer, creating it on first use.
func (a *app) obs() observability.Provider {
	if a.observer == nil {
		a.observer = slogobs.New()
	}
	return a.observer
}

func (a *app) newParser() *scout.Parser {
	return scout.New(
		scout.WithObserver(a.obs()),
		scout.WithJSONRepair(a.options.Repair),
	)
}

func (a *app) newBackend() *scoutapi.Client {
	opts := []scoutapi.Option{
		scoutapi.WithTimeout(a.options.Timeout),
		scoutapi.WithObserver(a.obs()),
	}
	if a.options.BackendURL != "" {
		opts = append(opts, scoutapi.WithBaseURL(a.options.BackendURL))
	}
	return scoutapi.New(opts...)
}

func (a *app) present(result scout.ParseResult) scout.ParseResult {
	if a.options.DisplayDefaults {
		return scout.ApplyDisplayDefaults(result)
	}
	return result
}

func (a *app) print(v any) error {
	_, err := fmt.Fprintln(a.out, utils.JSONToString(v, a.options.Pretty))
	return err
}
