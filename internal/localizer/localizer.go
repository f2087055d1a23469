package localizer

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"

	derrors "git.home.luguber.info/inful/docloc/internal/errors"
	"git.home.luguber.info/inful/docloc/internal/filemap"
	"git.home.luguber.info/inful/docloc/internal/logfields"
)

const (
	DefaultLocale    = "ru"
	DefaultIndexFile = "index.md"
	DefaultSuffix    = ".md"
)

// Localizer mirrors chapter directories of a source root into a locale
// directory beneath it.
type Localizer struct {
	fs        billy.Filesystem
	locale    string
	names     *filemap.Map
	indexFile string
	suffix    string
	logger    *slog.Logger
}

// Option configures a Localizer.
type Option func(*Localizer)

// WithLocale sets the destination directory name (default "ru").
func WithLocale(locale string) Option {
	return func(l *Localizer) { l.locale = locale }
}

// WithFilenameMap replaces the embedded Russian filename table.
func WithFilenameMap(m *filemap.Map) Option {
	return func(l *Localizer) { l.names = m }
}

// WithIndexFile sets the top-level file copied under its own name.
func WithIndexFile(name string) Option {
	return func(l *Localizer) { l.indexFile = name }
}

// WithSuffix sets which chapter entries are copied (default ".md").
func WithSuffix(suffix string) Option {
	return func(l *Localizer) { l.suffix = suffix }
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Localizer) { l.logger = logger }
}

// New creates a Localizer whose source root is the root of fs.
func New(fs billy.Filesystem, opts ...Option) *Localizer {
	l := &Localizer{
		fs:        fs,
		locale:    DefaultLocale,
		indexFile: DefaultIndexFile,
		suffix:    DefaultSuffix,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.names == nil {
		l.names = filemap.Default()
	}
	return l
}

// Result summarizes one localization pass.
type Result struct {
	RunID       string
	Chapters    []string
	FilesCopied int
	Renamed     int
	Skipped     int
	IndexCopied bool
	Unused      []string
	Duration    time.Duration
}

// Localize performs one full localization pass.
func (l *Localizer) Localize() (*Result, error) {
	start := time.Now()
	res := &Result{RunID: uuid.NewString()}
	log := l.logger.With(logfields.RunID(res.RunID), logfields.Locale(l.locale))
	log.Info("Starting localization pass", logfields.Path(l.fs.Root()))

	if err := l.fs.MkdirAll(l.locale, 0o755); err != nil {
		return nil, derrors.FileSystemError("mkdir", l.locale, err)
	}

	entries, err := l.fs.ReadDir(".")
	if err != nil {
		return nil, derrors.FileSystemError("readdir", l.fs.Root(), err)
	}

	seen := make(map[string]bool)
	for _, entry := range entries {
		name := entry.Name()
		if name == l.locale {
			continue
		}
		isDir, err := l.isDir(name, entry)
		if err != nil {
			return nil, err
		}
		if !isDir {
			continue
		}
		if err := l.localizeChapter(log, name, res, seen); err != nil {
			return nil, err
		}
		res.Chapters = append(res.Chapters, name)
	}

	copied, err := l.copyIndex(log)
	if err != nil {
		return nil, err
	}
	res.IndexCopied = copied

	res.Unused = l.names.Unused(seen)
	res.Duration = time.Since(start)
	log.Info("Localization pass complete",
		slog.Int("chapters", len(res.Chapters)),
		slog.Int("files", res.FilesCopied),
		slog.Int("renamed", res.Renamed),
		slog.Int("skipped", res.Skipped),
		slog.Bool("index", res.IndexCopied),
		logfields.DurationMS(float64(res.Duration.Microseconds())/1000))
	if len(res.Unused) > 0 {
		log.Debug("Filename map entries without a source file", logfields.Count(len(res.Unused)))
	}
	return res, nil
}

func (l *Localizer) localizeChapter(log *slog.Logger, chapter string, res *Result, seen map[string]bool) error {
	dstDir := l.fs.Join(l.locale, chapter)
	if err := l.fs.MkdirAll(dstDir, 0o755); err != nil {
		return derrors.FileSystemError("mkdir", dstDir, err)
	}

	entries, err := l.fs.ReadDir(chapter)
	if err != nil {
		return derrors.FileSystemError("readdir", chapter, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, l.suffix) || entry.IsDir() {
			res.Skipped++
			log.Debug("Skipping entry", logfields.Chapter(chapter), logfields.File(name))
			continue
		}

		target := l.names.Lookup(name)
		src := l.fs.Join(chapter, name)
		dst := l.fs.Join(dstDir, target)

		if parent := filepath.Dir(dst); parent != dstDir {
			if err := l.fs.MkdirAll(parent, 0o755); err != nil {
				return derrors.FileSystemError("mkdir", parent, err)
			}
		}
		if err := copyFile(l.fs, src, dst); err != nil {
			return err
		}

		seen[name] = true
		res.FilesCopied++
		if target != name {
			res.Renamed++
		}
		log.Debug("Copied file", logfields.Source(src), logfields.Destination(dst))
	}
	return nil
}

func (l *Localizer) copyIndex(log *slog.Logger) (bool, error) {
	info, err := l.fs.Stat(l.indexFile)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("No top-level index file", logfields.File(l.indexFile))
			return false, nil
		}
		return false, derrors.FileSystemError("stat", l.indexFile, err)
	}
	if !info.Mode().IsRegular() {
		return false, nil
	}

	dst := l.fs.Join(l.locale, l.indexFile)
	if err := copyFile(l.fs, l.indexFile, dst); err != nil {
		return false, err
	}
	log.Debug("Copied index", logfields.Source(l.indexFile), logfields.Destination(dst))
	return true, nil
}

// isDir reports whether a top-level entry is a chapter directory, following
// symlinks the way a plain stat would.
func (l *Localizer) isDir(name string, entry os.FileInfo) (bool, error) {
	if entry.Mode()&os.ModeSymlink == 0 {
		return entry.IsDir(), nil
	}
	info, err := l.fs.Stat(name)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, derrors.FileSystemError("stat", name, err)
	}
	return info.IsDir(), nil
}
