// Package cli implements the qrsheet command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/qrsheet/pkg/buildinfo"
	"github.com/matzehuels/qrsheet/pkg/cache"
	"github.com/matzehuels/qrsheet/pkg/config"
	"github.com/matzehuels/qrsheet/pkg/observability"
	"github.com/matzehuels/qrsheet/pkg/pipeline"
	"github.com/matzehuels/qrsheet/pkg/session"
	"github.com/matzehuels/qrsheet/pkg/symbol"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs.
	Config *config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level. At debug level pipeline, cache and
// session events are logged as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		h := &logHooks{logger: c.Logger}
		observability.SetPipelineHooks(h)
		observability.SetCacheHooks(h)
		observability.SetSessionHooks(h)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "qrsheet",
		Short: "qrsheet turns spreadsheet columns into printable QR code sheets",
		Long: `qrsheet reads a column of codes from a CSV, XLSX or XLS file and lays the
encoded symbols out on PDF pages, or bundles them as PNG images in a ZIP archive.
Short codes are encoded as Micro QR symbols; longer ones fall back to standard QR.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/qrsheet/config.toml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.columnsCommand())
	root.AddCommand(c.urlCommand())
	root.AddCommand(c.contactCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.sessionsCommand())
	root.AddCommand(c.sweepCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newWorkspace opens the session workspace described by the config.
func (c *CLI) newWorkspace(ctx context.Context) (*session.Workspace, error) {
	s := c.Config.Sessions
	reg, err := session.NewRegistry(ctx, session.Config{
		Backend:         s.Backend,
		RedisAddr:       s.RedisAddr,
		RedisPassword:   s.RedisPassword,
		RedisDB:         s.RedisDB,
		RedisKey:        s.RedisKey,
		MongoURI:        s.MongoURI,
		MongoDatabase:   s.MongoDatabase,
		MongoCollection: s.MongoCollection,
	}, s.Root)
	if err != nil {
		return nil, err
	}
	ws, err := session.NewWorkspace(s.Root, reg)
	if err != nil {
		_ = reg.Close()
		return nil, err
	}
	return ws, nil
}

// newRunner creates a pipeline runner for CLI use. Closing the runner releases
// the cache; the workspace is closed separately.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ws, err := c.newWorkspace(ctx)
	if err != nil {
		return nil, err
	}
	cc, err := c.newCache(noCache)
	if err != nil {
		_ = ws.Close()
		return nil, err
	}
	r := pipeline.NewRunner(ws, cc, nil, c.Logger)
	r.Encoder.TTL = c.Config.Cache.TTL
	return r, nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Disabled || c.Config.Cache.Dir == "" {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(c.Config.Cache.Dir)
}

// closeRunner closes the runner's cache and workspace, logging failures.
func (c *CLI) closeRunner(r *pipeline.Runner) {
	if err := r.Close(); err != nil {
		c.Logger.Debug("close cache", "error", err)
	}
	if err := r.Workspace.Close(); err != nil {
		c.Logger.Debug("close session registry", "error", err)
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// generationFlags are the options shared by generate, url and contact.
type generationFlags struct {
	size         int
	pageMargin   float64
	symbolMargin float64
	text         bool
	pageNumbers  bool
	errorLevel   string
	output       string
	page         string
	title        string
	workers      int
}

func (f *generationFlags) register(cmd *cobra.Command, pages bool) {
	cmd.Flags().IntVarP(&f.size, "size", "s", 0, "symbol size in points (minimum 50)")
	cmd.Flags().StringVarP(&f.errorLevel, "error-level", "e", "", "error correction level for standard symbols: l, m, q, h")
	if !pages {
		registerFlagCompletions(cmd)
		return
	}
	cmd.Flags().Float64Var(&f.pageMargin, "page-margin", 0, "page margin in points")
	cmd.Flags().Float64Var(&f.symbolMargin, "symbol-margin", 0, "margin around each symbol in points")
	cmd.Flags().BoolVar(&f.text, "text", false, "print each code below its symbol")
	cmd.Flags().BoolVar(&f.pageNumbers, "page-numbers", false, "print page numbers")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output: pdf, zip or both")
	cmd.Flags().StringVar(&f.page, "page", "", "page size: a4, a5, letter, legal")
	cmd.Flags().StringVar(&f.title, "title", "", "PDF document title")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "parallel encoders (default: number of CPUs)")
	registerFlagCompletions(cmd)
}

// options merges explicitly set flags over the configured defaults.
func (f *generationFlags) options(cmd *cobra.Command, d config.Defaults) pipeline.Options {
	opts := pipeline.Options{
		Size:               d.Size,
		PageMargin:         d.PageMargin,
		SymbolMargin:       d.SymbolMargin,
		IncludeText:        d.Text,
		IncludePageNumbers: d.PageNumbers,
		ErrorLevel:         d.ErrorLevel,
		Output:             d.Output,
		Page:               d.Page,
		Workers:            d.Workers,
		Title:              f.title,
	}
	set := cmd.Flags().Changed
	if set("size") {
		opts.Size = f.size
	}
	if set("page-margin") {
		opts.PageMargin = f.pageMargin
	}
	if set("symbol-margin") {
		opts.SymbolMargin = f.symbolMargin
	}
	if set("text") {
		opts.IncludeText = f.text
	}
	if set("page-numbers") {
		opts.IncludePageNumbers = f.pageNumbers
	}
	if set("error-level") {
		opts.ErrorLevel = f.errorLevel
	}
	if set("output") {
		opts.Output = f.output
	}
	if set("page") {
		opts.Page = f.page
	}
	if set("workers") {
		opts.Workers = f.workers
	}
	return opts
}

// tierLabel names the symbol family for display.
func tierLabel(info symbol.Info) string {
	if info.Tier == symbol.TierMicro {
		return "Micro QR " + info.Version
	}
	return "QR " + info.Version
}
