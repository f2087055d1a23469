package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docloc/internal/errors"
)

// clearEnv unsets the docloc variables for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvDocsRoot, EnvLocale, EnvMap} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir
}

func TestFindRepoRoot(t *testing.T) {
	repo := initRepo(t)
	nested := filepath.Join(repo, "docs", "1")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	root, ok := FindRepoRoot(nested)
	require.True(t, ok)
	assert.Equal(t, repo, root)

	_, ok = FindRepoRoot(t.TempDir())
	assert.False(t, ok)
}

func TestLoad_DefaultsFromRepository(t *testing.T) {
	clearEnv(t)
	repo := initRepo(t)
	work := filepath.Join(repo, "scripts")
	require.NoError(t, os.MkdirAll(work, 0o755))

	cfg, err := Load(Overrides{WorkDir: work})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(repo, "docs"), cfg.DocsRoot)
	assert.Equal(t, "ru", cfg.Locale)
	assert.Equal(t, filepath.Join(repo, "docs", "ru"), cfg.DestinationRoot())
	assert.Empty(t, cfg.MapFile)

	m, err := cfg.FilenameMap()
	require.NoError(t, err)
	assert.Equal(t, "1.1 Введение.md", m.Lookup("1.1 Introduction.md"))
}

func TestLoad_OutsideRepositoryUsesWorkDir(t *testing.T) {
	clearEnv(t)
	work := t.TempDir()

	cfg, err := Load(Overrides{WorkDir: work})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(work, "docs"), cfg.DocsRoot)
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	work := t.TempDir()
	t.Setenv(EnvDocsRoot, filepath.Join(work, "from-env"))
	t.Setenv(EnvLocale, "uk")

	cfg, err := Load(Overrides{WorkDir: work})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(work, "from-env"), cfg.DocsRoot)
	assert.Equal(t, "uk", cfg.Locale)

	cfg, err = Load(Overrides{WorkDir: work, DocsRoot: filepath.Join(work, "from-flag"), Locale: "de"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(work, "from-flag"), cfg.DocsRoot)
	assert.Equal(t, "de", cfg.Locale)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	work := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(work, ".env"), []byte("DOCLOC_LOCALE=kk\n"), 0o600))

	cfg, err := Load(Overrides{WorkDir: work})
	require.NoError(t, err)
	assert.Equal(t, "kk", cfg.Locale)
}

func TestLoad_EnvFileDoesNotOverrideProcessEnv(t *testing.T) {
	clearEnv(t)
	work := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(work, ".env"), []byte("DOCLOC_LOCALE=kk\n"), 0o600))
	t.Setenv(EnvLocale, "be")

	cfg, err := Load(Overrides{WorkDir: work})
	require.NoError(t, err)
	assert.Equal(t, "be", cfg.Locale)
}

func TestLoad_EnvFileFillsEmptyProcessEnv(t *testing.T) {
	clearEnv(t)
	work := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(work, ".env"), []byte("DOCLOC_LOCALE=kk\n"), 0o600))
	t.Setenv(EnvLocale, "")

	cfg, err := Load(Overrides{WorkDir: work})
	require.NoError(t, err)
	assert.Equal(t, "kk", cfg.Locale)
}

func TestLoad_MapFile(t *testing.T) {
	clearEnv(t)
	work := t.TempDir()
	mapPath := filepath.Join(work, "map.yaml")
	require.NoError(t, os.WriteFile(mapPath, []byte("files:\n  a.md: b.md\n"), 0o600))

	cfg, err := Load(Overrides{WorkDir: work, MapFile: mapPath})
	require.NoError(t, err)

	m, err := cfg.FilenameMap()
	require.NoError(t, err)
	assert.Equal(t, "b.md", m.Lookup("a.md"))

	cfg.MapFile = filepath.Join(work, "missing.yaml")
	_, err = cfg.FilenameMap()
	assert.True(t, derrors.IsCategory(err, derrors.CategoryConfig))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"valid", Config{DocsRoot: "/docs", Locale: "ru"}, true},
		{"empty root", Config{Locale: "ru"}, false},
		{"empty locale", Config{DocsRoot: "/docs"}, false},
		{"nested locale", Config{DocsRoot: "/docs", Locale: "ru/RU"}, false},
		{"parent locale", Config{DocsRoot: "/docs", Locale: ".."}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, derrors.IsCategory(err, derrors.CategoryValidation))
		})
	}
}

func TestLoad_InvalidLocale(t *testing.T) {
	clearEnv(t)
	_, err := Load(Overrides{WorkDir: t.TempDir(), Locale: "a/b"})
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryValidation))
}
