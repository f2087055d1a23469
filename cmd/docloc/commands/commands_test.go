package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docloc/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{config.EnvDocsRoot, config.EnvLocale, config.EnvMap} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

// run parses args and executes the selected command like main does.
func run(t *testing.T, workDir string, args ...string) (string, error) {
	t.Helper()
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docloc"),
		kong.Vars{"version": "test"},
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	require.NoError(t, err)

	var out bytes.Buffer
	err = kctx.Run(&Global{Stdout: &out, WorkDir: workDir}, cli)
	return out.String(), err
}

func writeDocs(t *testing.T, docs string) {
	t.Helper()
	files := map[string]string{
		"index.md":                         "# Index\n",
		"1/1.1 Introduction.md":            "intro\n",
		"1/notes.txt":                      "skip\n",
		"1/extra.md":                       "extra\n",
		"3/3.4 Summary and Reflections.md": "summary\n",
	}
	for name, content := range files {
		path := filepath.Join(docs, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestLocalize_NoArgumentsUsesRepositoryDocs(t *testing.T) {
	clearEnv(t)
	repo := t.TempDir()
	_, err := git.PlainInit(repo, false)
	require.NoError(t, err)
	writeDocs(t, filepath.Join(repo, "docs"))

	out, err := run(t, filepath.Join(repo, "docs"))
	require.NoError(t, err)
	assert.Equal(t, "docs/ru populated with copies (filenames localized).\n", out)

	ru := filepath.Join(repo, "docs", "ru")
	data, err := os.ReadFile(filepath.Join(ru, "1", "1.1 Введение.md"))
	require.NoError(t, err)
	assert.Equal(t, "intro\n", string(data))

	assert.FileExists(t, filepath.Join(ru, "1", "extra.md"))
	assert.FileExists(t, filepath.Join(ru, "3", "3.4 Итоги и размышления.md"))
	assert.FileExists(t, filepath.Join(ru, "index.md"))
	assert.NoFileExists(t, filepath.Join(ru, "1", "notes.txt"))
}

func TestLocalize_ExplicitFlags(t *testing.T) {
	clearEnv(t)
	work := t.TempDir()
	docs := filepath.Join(work, "handbook")
	writeDocs(t, docs)
	mapPath := filepath.Join(work, "de.yaml")
	require.NoError(t, os.WriteFile(mapPath, []byte("locale: de\nfiles:\n  \"1.1 Introduction.md\": \"1.1 Einleitung.md\"\n"), 0o600))

	out, err := run(t, work, "--docs", docs, "--locale", "de", "--map", mapPath)
	require.NoError(t, err)
	assert.Equal(t, "handbook/de populated with copies (filenames localized).\n", out)
	assert.FileExists(t, filepath.Join(docs, "de", "1", "1.1 Einleitung.md"))
	assert.FileExists(t, filepath.Join(docs, "de", "3", "3.4 Summary and Reflections.md"))
}

func TestLocalize_MissingDocsRoot(t *testing.T) {
	clearEnv(t)
	work := t.TempDir()
	// a regular file where the docs root should be
	docs := filepath.Join(work, "docs")
	require.NoError(t, os.WriteFile(docs, []byte("x"), 0o600))

	out, err := run(t, work, "--docs", docs)
	require.Error(t, err)
	assert.Empty(t, out)
}

func TestShowMap(t *testing.T) {
	clearEnv(t)
	work := t.TempDir()

	out, err := run(t, work, "show-map")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 34)
	assert.Contains(t, lines, "1.1 Introduction.md -> 1.1 Введение.md")
	assert.Contains(t, lines, "index.md -> index.md")
}

func TestCompletionMessage(t *testing.T) {
	cfg := &config.Config{DocsRoot: filepath.Join("/srv", "repo", "docs"), Locale: "ru"}
	assert.Equal(t, "docs/ru populated with copies (filenames localized).", completionMessage(cfg))
}
