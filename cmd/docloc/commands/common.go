package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docloc/internal/config"
)

// Global carries process-wide dependencies into subcommands.
type Global struct {
	Stdout io.Writer
	// WorkDir overrides where repository detection starts (tests).
	WorkDir string
}

// NewGlobal returns a Global wired to the process streams.
func NewGlobal() *Global {
	return &Global{Stdout: os.Stdout}
}

// CLI definition & global flags.
type CLI struct {
	Docs    string           `name:"docs" help:"Documentation root (default: <repo>/docs, or $DOCLOC_DOCS_ROOT)"`
	Locale  string           `name:"locale" short:"l" help:"Locale directory created under the docs root (default: ru, or $DOCLOC_LOCALE)"`
	Map     string           `name:"map" short:"m" help:"YAML filename map replacing the built-in table (or $DOCLOC_MAP)" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Localize LocalizeCmd `cmd:"" default:"withargs" help:"Copy chapters into the locale directory (default)"`
	ShowMap  ShowMapCmd  `cmd:"" name:"show-map" help:"Print the effective filename map"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig resolves settings from the global flags.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	return config.Load(config.Overrides{
		DocsRoot: c.Docs,
		Locale:   c.Locale,
		MapFile:  c.Map,
		WorkDir:  g.WorkDir,
	})
}
