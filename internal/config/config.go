// Package config resolves where the documentation tree lives and how it is
// localized. Values come from, in priority order: command-line flags,
// environment variables (optionally loaded from a .env file), and defaults
// derived from the enclosing git worktree.
package config

import (
	"log/slog"
	"os"
	"path/filepath"

	derrors "git.home.luguber.info/inful/docloc/internal/errors"
	"git.home.luguber.info/inful/docloc/internal/filemap"
	"git.home.luguber.info/inful/docloc/internal/localizer"
	"git.home.luguber.info/inful/docloc/internal/logfields"
)

// Environment variables consulted when a flag is not given.
const (
	EnvDocsRoot = "DOCLOC_DOCS_ROOT"
	EnvLocale   = "DOCLOC_LOCALE"
	EnvMap      = "DOCLOC_MAP"
)

// DocsDirName is the source root directory name relative to the repository root.
const DocsDirName = "docs"

// Config holds the resolved settings for a localization run.
type Config struct {
	DocsRoot string
	Locale   string
	MapFile  string
}

// Overrides carries explicitly provided values (usually CLI flags).
// Empty fields fall through to the environment and then to defaults.
type Overrides struct {
	DocsRoot string
	Locale   string
	MapFile  string
	// WorkDir is where repository detection starts; defaults to the process working directory.
	WorkDir string
}

// Load resolves a Config from overrides, environment and defaults, then validates it.
func Load(o Overrides) (*Config, error) {
	loadEnvFile(o.WorkDir)

	cfg := &Config{
		DocsRoot: firstNonEmpty(o.DocsRoot, os.Getenv(EnvDocsRoot)),
		Locale:   firstNonEmpty(o.Locale, os.Getenv(EnvLocale), localizer.DefaultLocale),
		MapFile:  firstNonEmpty(o.MapFile, os.Getenv(EnvMap)),
	}

	if cfg.DocsRoot == "" {
		root, err := defaultDocsRoot(o.WorkDir)
		if err != nil {
			return nil, err
		}
		cfg.DocsRoot = root
	}

	abs, err := filepath.Abs(cfg.DocsRoot)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "cannot resolve docs root").
			WithContext("path", cfg.DocsRoot)
	}
	cfg.DocsRoot = abs

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("Configuration resolved",
		logfields.Path(cfg.DocsRoot),
		logfields.Locale(cfg.Locale),
		slog.String("map", cfg.MapFile))
	return cfg, nil
}

// DestinationRoot is the locale directory under the docs root.
func (c *Config) DestinationRoot() string {
	return filepath.Join(c.DocsRoot, c.Locale)
}

// FilenameMap returns the configured filename table: the file named by
// MapFile when set, otherwise the embedded default.
func (c *Config) FilenameMap() (*filemap.Map, error) {
	if c.MapFile == "" {
		return filemap.Default(), nil
	}
	return filemap.LoadFile(c.MapFile)
}

func defaultDocsRoot(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "cannot determine working directory")
		}
		workDir = wd
	}

	repoRoot, ok := FindRepoRoot(workDir)
	if !ok {
		slog.Debug("No git worktree found; using working directory", logfields.Path(workDir))
		repoRoot = workDir
	}
	return filepath.Join(repoRoot, DocsDirName), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
