// Package generator owns QR encoding for the interactive surfaces. Every
// trigger (a button press, the Enter key, a terminal line) sends a generate
// command with the current input to a single handler goroutine instead of
// sharing widget state.
package generator

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/openclaw/qrgen/qr"
)

// ErrEmptyInput is returned for an empty payload. It is a no-op, not a
// failure: nothing is encoded and nothing should be rendered.
var ErrEmptyInput = errors.New("please enter some text to generate a QR code")

// ErrStopped is returned when the handler loop is no longer running.
var ErrStopped = errors.New("generator stopped")

// Options configures encoding.
type Options struct {
	Level      qr.Level
	BoostLevel bool
}

// Stats counts handled commands.
type Stats struct {
	Generated int64 `json:"generated"`
	Failed    int64 `json:"failed"`
	Skipped   int64 `json:"skipped"`
}

type command struct {
	text  string
	reply chan result
}

type result struct {
	sym *qr.Symbol
	err error
}

// Generator serialises generate commands through one handler loop.
type Generator struct {
	opts     Options
	log      *slog.Logger
	commands chan command
	done     chan struct{}

	generated atomic.Int64
	failed    atomic.Int64
	skipped   atomic.Int64
}

// New creates a Generator. Run must be called for commands to be handled.
func New(opts Options, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.Default()
	}
	return &Generator{
		opts:     opts,
		log:      log,
		commands: make(chan command),
		done:     make(chan struct{}),
	}
}

// Run handles commands until ctx is cancelled.
func (g *Generator) Run(ctx context.Context) error {
	defer close(g.done)
	g.log.Debug("generator started", "level", g.opts.Level.String(), "boost", g.opts.BoostLevel)
	for {
		select {
		case <-ctx.Done():
			g.log.Debug("generator stopped")
			return nil
		case cmd := <-g.commands:
			sym, err := g.handle(cmd.text)
			cmd.reply <- result{sym: sym, err: err}
		}
	}
}

// Generate sends text to the handler loop and waits for the symbol.
// An empty text returns ErrEmptyInput without reaching the encoder.
func (g *Generator) Generate(ctx context.Context, text string) (*qr.Symbol, error) {
	reply := make(chan result, 1)
	select {
	case g.commands <- command{text: text, reply: reply}:
	case <-g.done:
		return nil, ErrStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case r := <-reply:
		return r.sym, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *Generator) handle(text string) (*qr.Symbol, error) {
	if text == "" {
		g.skipped.Add(1)
		g.log.Info(ErrEmptyInput.Error())
		return nil, ErrEmptyInput
	}

	var opts []qr.Option
	if g.opts.BoostLevel {
		opts = append(opts, qr.WithBoostLevel())
	}

	start := time.Now()
	sym, err := qr.EncodeBytes([]byte(text), g.opts.Level, opts...)
	if err != nil {
		g.failed.Add(1)
		g.log.Warn("error generating QR code", "error", err, "bytes", len(text))
		return nil, err
	}
	g.generated.Add(1)
	g.log.Debug("generated QR code",
		"version", sym.Version,
		"level", sym.Level.String(),
		"mode", sym.Mode.String(),
		"mask", sym.Mask,
		"elapsed", time.Since(start),
	)
	return sym, nil
}

// Level is the configured error correction level.
func (g *Generator) Level() qr.Level {
	return g.opts.Level
}

// Stats returns the command counters.
func (g *Generator) Stats() Stats {
	return Stats{
		Generated: g.generated.Load(),
		Failed:    g.failed.Load(),
		Skipped:   g.skipped.Load(),
	}
}
