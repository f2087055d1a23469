package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docloc/internal/config"
	"git.home.luguber.info/inful/docloc/internal/localizer"
	"git.home.luguber.info/inful/docloc/internal/logfields"
	"git.home.luguber.info/inful/docloc/internal/watch"
)

// LocalizeCmd implements the default command: one localization pass, or a
// pass followed by watching the tree when --watch is set.
type LocalizeCmd struct {
	Watch    bool          `short:"w" help:"Keep running and re-localize when source files change"`
	Debounce time.Duration `help:"Quiet period before a watched change triggers a pass" default:"500ms"`
}

func (l *LocalizeCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	names, err := cfg.FilenameMap()
	if err != nil {
		return err
	}

	loc := localizer.New(localizer.OSFilesystem(cfg.DocsRoot),
		localizer.WithLocale(cfg.Locale),
		localizer.WithFilenameMap(names),
		localizer.WithLogger(slog.Default()),
	)

	if _, err := loc.Localize(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(g.Stdout, completionMessage(cfg))

	if !l.Watch {
		return nil
	}
	return l.watch(cfg, loc)
}

func (l *LocalizeCmd) watch(cfg *config.Config, loc *localizer.Localizer) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	w, err := watch.New(cfg.DocsRoot, cfg.Locale, func() error {
		_, err := loc.Localize()
		return err
	}, watch.WithDebounce(l.Debounce))
	if err != nil {
		return err
	}
	if err := w.Run(ctx); err != nil {
		return err
	}
	slog.Info("Watcher stopped", logfields.Path(cfg.DocsRoot))
	return nil
}

func completionMessage(cfg *config.Config) string {
	dest := filepath.ToSlash(filepath.Join(filepath.Base(cfg.DocsRoot), cfg.Locale))
	return fmt.Sprintf("%s populated with copies (filenames localized).", dest)
}
