package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ark-forge/mcp-eu-ai-act/config"
	"github.com/ark-forge/mcp-eu-ai-act/engine"
	"github.com/ark-forge/mcp-eu-ai-act/logger"
	"github.com/ark-forge/mcp-eu-ai-act/output"
	"github.com/ark-forge/mcp-eu-ai-act/scanner"
	"github.com/ark-forge/mcp-eu-ai-act/tracing"
	"github.com/ark-forge/mcp-eu-ai-act/utils"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	if err := tracing.Start(""); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start trace: %v\n", err)
	} else {
		defer tracing.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx, os.Args[1:])
}

// app carries the state shared by the root command and its subcommands for
// one invocation.
type app struct {
	flags config.Flags
	cfg   *config.Config
	out   *output.Writer
}

// execute runs one command line and returns the process exit code. Every
// failure is written through the output writer as an error document.
func execute(ctx context.Context, args []string) int {
	a := &app{}
	root := a.rootCmd()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil {
		a.fail(err)
	}
	if a.out != nil {
		if cerr := a.out.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "Error closing output: %v\n", cerr)
		}
	}
	if err != nil {
		return 1
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "aiact",
		Short:         "EU AI Act and GDPR compliance scanner",
		Long:          "aiact detects AI frameworks and personal-data processing in a source tree, evaluates EU AI Act checklists and correlates both regulations.",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	a.flags.BindGlobal(root.PersistentFlags())

	root.AddCommand(
		a.scanCmd(),
		a.gdprCmd(),
		a.checkCmd(),
		a.reportCmd(),
		a.combinedCmd(),
		a.watchCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags(), &a.flags)
	if err != nil {
		return err
	}
	logger.Init(cfg.LogLevel)
	if cfg.ConfigFile != "" {
		logger.Debugf("Loaded configuration from %s", cfg.ConfigFile)
	}
	out, err := output.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize output: %w", err)
	}
	a.cfg = cfg
	a.out = out
	return nil
}

// fail reports err. Before the configured writer exists, the error goes to
// stdout as JSON.
func (a *app) fail(err error) {
	if a.out == nil {
		out, werr := output.New(config.Default())
		if werr != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			return
		}
		a.out = out
	}
	if werr := a.out.Write(output.KindError, engine.ErrorResult(err)); werr != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (a *app) engine() *engine.Engine {
	cfg := a.cfg
	return engine.New(engine.Options{
		Scanner: scanner.Options{
			Concurrency:     cfg.ConcurrencyLevel,
			MaxFileSize:     cfg.MaxFileSize,
			MaxFiles:        cfg.MaxFiles,
			MaxIOPerSecond:  cfg.MaxIOPerSecond,
			ShowProgress:    cfg.ShowProgress,
			IncludePatterns: cfg.IncludePatterns,
			ExcludePatterns: cfg.ExcludePatterns,
		},
	})
}

// projectRoot returns the path argument, "." when absent, after the
// --restrict-paths check.
func (a *app) projectRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	if a.cfg.RestrictPaths {
		if err := utils.ValidateScanRoot(root, a.cfg.BlockedPaths); err != nil {
			return "", err
		}
	}
	return root, nil
}
