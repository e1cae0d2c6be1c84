// # cmd/docfixer/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"docfixer/internal/core/app"
	"docfixer/internal/core/config"
	"docfixer/internal/data/contract"
	"docfixer/internal/shared/observability"
)

const VERSION = "1.0.0"

const usageText = `Usage is: docfixer [options] contract.yaml path-to-documentation

Rewrites the generated documentation stubs under path-to-documentation/<locale>
with prose, cross-references and examples derived from the binding contract.

Options:
`

// flagsWithValue lists flags that take a value argument.
var flagsWithValue = map[string]bool{
	"-config": true, "--config": true,
	"-platform": true, "--platform": true,
	"-metrics-file": true, "--metrics-file": true,
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("docfixer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {}

	var (
		appleDocs   bool
		debugDoc    bool
		configPath  string
		platform    string
		metricsFile string
		watch       bool
		verbose     bool
		showVersion bool
	)
	fs.BoolVar(&appleDocs, "appledocs", false, "merge prose from the platform documentation corpus")
	fs.BoolVar(&debugDoc, "debugdoc", false, "with --appledocs, only report types missing from the corpus")
	fs.StringVar(&configPath, "config", "", "path to a TOML config file")
	fs.StringVar(&platform, "platform", "", "platform profile (monotouch or monomac)")
	fs.StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file after each run")
	fs.BoolVar(&watch, "watch", false, "run again whenever the contract or corpus changes")
	fs.BoolVar(&verbose, "verbose", false, "enable verbose logging")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")

	usage := func(w io.Writer) {
		_, _ = io.WriteString(w, usageText)
		fs.SetOutput(w)
		fs.PrintDefaults()
		fs.SetOutput(stderr)
	}

	if err := fs.Parse(reorderArgs(args)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage(stdout)
			return 0
		}
		usage(stderr)
		return 1
	}

	if showVersion {
		_, _ = fmt.Fprintf(stdout, "docfixer v%s\n", VERSION)
		return 0
	}

	if fs.NArg() != 2 {
		usage(stderr)
		return 1
	}
	contractPath, docRoot := fs.Arg(0), fs.Arg(1)

	// Setup logging
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load config
	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			slog.Error("failed to load config", "path", configPath, "error", err)
			return 1
		}
		cfg = loaded
	}
	config.ApplyEnvOverrides(cfg)
	if appleDocs {
		cfg.Merge.Enabled = true
	}
	if debugDoc {
		cfg.Merge.Debug = true
	}
	if platform != "" {
		cfg.Platform.Profile = strings.ToLower(platform)
	}
	if metricsFile != "" {
		cfg.Observability.MetricsFile = metricsFile
	}
	if watch {
		cfg.Watch.Enabled = true
	}
	if err := config.Validate(cfg); err != nil {
		slog.Error("invalid configuration", "error", err)
		return 1
	}

	localeRoot := filepath.Join(docRoot, cfg.Paths.Locale)
	if info, err := os.Stat(localeRoot); err != nil || !info.IsDir() {
		_, _ = fmt.Fprintf(stderr, "The directory does not seem to be the root for documentation (missing `%s' directory)\n", cfg.Paths.Locale)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Observability.EnableTracing {
		shutdown, err := observability.InitTracing(ctx, cfg.Observability.OTLPEndpoint)
		if err != nil {
			slog.Warn("failed to initialize tracing", "error", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					slog.Warn("failed to flush traces", "error", err)
				}
			}()
		}
	}

	load := func() (*app.App, error) {
		provider, err := contract.LoadFile(contractPath)
		if err != nil {
			return nil, err
		}
		return app.New(cfg, provider, localeRoot)
	}

	if cfg.Watch.Enabled {
		var trees []string
		if cfg.Merge.Enabled {
			trees = append(trees, cfg.CorpusRoot())
		}
		err := app.Watch(ctx, cfg, []string{contractPath}, trees, load, func(report app.Report, err error) {
			if err != nil {
				slog.Error("run failed", "error", err)
				return
			}
			_, _ = report.WriteTo(stdout)
		})
		if err != nil {
			slog.Error("watch failed", "error", err)
			return 1
		}
		return 0
	}

	a, err := load()
	if err != nil {
		slog.Error("failed to prepare run", "contract", contractPath, "error", err)
		return 1
	}
	report, err := a.Run(ctx)
	if err != nil {
		slog.Error("run interrupted", "error", err)
		return 1
	}
	_, _ = report.WriteTo(stdout)
	return 0
}

// reorderArgs moves positional arguments after all flags so the flag package
// can parse them (it stops at the first non-flag arg).
func reorderArgs(args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if len(args[i]) > 0 && args[i][0] == '-' {
			flags = append(flags, args[i])
			if flagsWithValue[args[i]] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, args[i])
		}
	}
	return append(flags, positional...)
}
