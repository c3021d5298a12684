package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/openclaw/qrgen/api"
	"github.com/openclaw/qrgen/config"
	"github.com/openclaw/qrgen/generator"
	"github.com/openclaw/qrgen/qr"
	"github.com/openclaw/qrgen/render"
)

var version = "v0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "qrgen",
		Short:        "Generate QR codes from text",
		SilenceUsage: true,
	}

	var configPath string
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to config file")

	// --- serve command -------------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the QR code generator page on the local machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	})

	// --- encode command ------------------------------------------------------
	var (
		output     string
		levelFlag  string
		sizeFlag   int
		invertFlag bool
	)
	encodeCmd := &cobra.Command{
		Use:   "encode [text]",
		Short: "Encode text once and write a PNG/SVG file or print it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, levelFlag, sizeFlag)
			if err != nil {
				return err
			}
			return runEncode(cmd.OutOrStdout(), cfg, strings.Join(args, " "), output, invertFlag)
		},
	}
	encodeCmd.Flags().StringVarP(&output, "output", "o", "", "Output file (.png or .svg); prints to the terminal when empty")
	encodeCmd.Flags().StringVarP(&levelFlag, "level", "l", "", "Error correction level (L, M, Q, H)")
	encodeCmd.Flags().IntVarP(&sizeFlag, "size", "s", 0, "Image size in pixels")
	encodeCmd.Flags().BoolVar(&invertFlag, "invert", false, "Invert terminal output for light-on-dark terminals")
	root.AddCommand(encodeCmd)

	// --- interactive command -------------------------------------------------
	var interactiveInvert bool
	interactiveCmd := &cobra.Command{
		Use:   "interactive",
		Short: "Read lines from stdin and print a QR code for each",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, "", 0)
			if err != nil {
				return err
			}
			return runInteractive(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cfg, interactiveInvert)
		},
	}
	interactiveCmd.Flags().BoolVar(&interactiveInvert, "invert", false, "Invert output for light-on-dark terminals")
	root.AddCommand(interactiveCmd)

	// --- status command ------------------------------------------------------
	var statusAddr string
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Check a running generator page",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.OutOrStdout(), statusAddr)
		},
	}
	statusCmd.Flags().StringVar(&statusAddr, "addr", "http://127.0.0.1:8556", "Server HTTP address")
	root.AddCommand(statusCmd)

	// --- version command -----------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "qrgen %s\n", version)
		},
	})

	return root
}

// loadConfig loads the config file and applies command-line overrides.
func loadConfig(path, level string, size int) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if level != "" {
		cfg.Level = level
	}
	if size > 0 {
		cfg.DisplaySize = size
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

func newGenerator(cfg *config.Config, log *slog.Logger) *generator.Generator {
	// Validated by config.Load.
	level, _ := cfg.ECLevel()
	return generator.New(generator.Options{Level: level, BoostLevel: cfg.BoostLevel}, log)
}

// runServe is the main service entrypoint that wires all components together.
func runServe(ctx context.Context, configPath string) error {
	// 1. Load config
	cfg, err := loadConfig(configPath, "", 0)
	if err != nil {
		return err
	}

	// 2. Setup logger
	log := newLogger(os.Stdout, cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting qrgen", "version", version, "addr", cfg.Addr(), "level", cfg.Level)

	// 3. Generator loop and HTTP server share one lifetime
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gen := newGenerator(cfg, log)
	router := api.NewRouter(&api.Server{
		Generator:   gen,
		Log:         log,
		Version:     version,
		DisplaySize: cfg.DisplaySize,
		Border:      cfg.Border,
		Started:     time.Now(),
	})
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout.Duration,
		WriteTimeout: cfg.WriteTimeout.Duration,
		IdleTimeout:  120 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return gen.Run(ctx)
	})
	g.Go(func() error {
		log.Info("HTTP server listening", "url", fmt.Sprintf("http://%s/", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("goodbye")
	return nil
}

// runEncode encodes text once. With an output path the image format follows
// the file extension; otherwise the symbol is printed as text.
func runEncode(w io.Writer, cfg *config.Config, text, output string, invert bool) error {
	if text == "" {
		fmt.Fprintln(w, generator.ErrEmptyInput.Error())
		return nil
	}
	level, _ := cfg.ECLevel()
	var opts []qr.Option
	if cfg.BoostLevel {
		opts = append(opts, qr.WithBoostLevel())
	}
	sym, err := qr.EncodeBytes([]byte(text), level, opts...)
	if err != nil {
		return fmt.Errorf("error generating QR code: %w", err)
	}

	if output == "" {
		return printSymbol(w, sym, cfg.Border, invert)
	}

	var data []byte
	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".svg":
		data = []byte(render.SVG(sym, cfg.DisplaySize, cfg.Border))
	case ".png", "":
		data, err = render.DisplayPNG(sym, cfg.DisplaySize, cfg.Border)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	fmt.Fprintf(w, "wrote %s (version %d, %dx%d modules, level %s)\n", output, sym.Version, sym.Size, sym.Size, sym.Level)
	return nil
}

// runInteractive reads one payload per line; pressing Enter is the
// generate trigger. Each line is sent to the generator loop.
func runInteractive(ctx context.Context, in io.Reader, out io.Writer, cfg *config.Config, invert bool) error {
	log := newLogger(os.Stderr, cfg.LogLevel)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	gen := newGenerator(cfg, log)
	done := make(chan error, 1)
	go func() { done <- gen.Run(ctx) }()

	tty := isTerminal(in)
	br := bufio.NewReader(in)
	for {
		if tty {
			fmt.Fprint(out, "> ")
		}
		line, tooLong, err := readLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if tooLong {
			fmt.Fprintf(out, "Error generating QR code: %v: line exceeds %d bytes\n", qr.ErrDataTooLong, maxLineBytes)
			continue
		}

		sym, err := gen.Generate(ctx, line)
		switch {
		case errors.Is(err, generator.ErrEmptyInput):
			fmt.Fprintln(out, err.Error())
		case err != nil:
			fmt.Fprintf(out, "Error generating QR code: %v\n", err)
		default:
			if err := printSymbol(out, sym, cfg.Border, invert); err != nil {
				return err
			}
		}
	}

	cancel()
	return <-done
}

// maxLineBytes bounds one interactive line; no symbol holds more.
const maxLineBytes = 64 << 10

// readLine reads one line without its line ending. A line longer than
// maxLineBytes is consumed whole and reported as too long.
func readLine(r *bufio.Reader) (string, bool, error) {
	var sb strings.Builder
	tooLong := false
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			return "", false, err
		}
		if !tooLong && sb.Len()+len(chunk) > maxLineBytes {
			tooLong = true
			sb.Reset()
		}
		if !tooLong {
			sb.Write(chunk)
		}
		if !isPrefix {
			return sb.String(), tooLong, nil
		}
	}
}

// printSymbol writes terminal art for sym, warning when the terminal is
// too narrow to show it whole.
func printSymbol(w io.Writer, sym *qr.Symbol, border int, invert bool) error {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width < render.TerminalWidth(sym, border) {
			fmt.Fprintf(w, "terminal is %d columns wide, the code needs %d; use --output to write an image\n",
				width, render.TerminalWidth(sym, border))
		}
	}
	_, err := io.WriteString(w, render.Terminal(sym, border, invert))
	return err
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// runStatus queries the server HTTP status endpoint.
func runStatus(w io.Writer, addr string) error {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(strings.TrimSuffix(addr, "/") + "/status")
	if err != nil {
		return fmt.Errorf("failed to reach server at %s: %w", addr, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("read status: %w", err)
	}
	fmt.Fprintln(w, strings.TrimSpace(string(body)))
	return nil
}
