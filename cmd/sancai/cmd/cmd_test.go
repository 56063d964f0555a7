package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/f3rmion/sancai/internal/config"
	"github.com/f3rmion/sancai/internal/sancai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const testDictionary = `{
  "王": {"char": "王", "strokes": {"kangxi": 4, "traditional": 4, "simplified": 4}},
  "浩": {"char": "浩", "strokes": {"kangxi": 11, "traditional": 10, "simplified": 10}},
  "然": {"char": "然", "strokes": {"kangxi": 12, "traditional": 12, "simplified": 12}},
  "欧": {"char": "欧", "strokes": {"kangxi": 15, "traditional": 15, "simplified": 8}},
  "阳": {"char": "阳", "strokes": {"kangxi": 17, "traditional": 17, "simplified": 6}}
}`

// run executes the root command in a scratch config directory.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runIn(t, t.TempDir(), args...)
}

// runIn executes the root command with dir as the config directory.
func runIn(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	dictPath := filepath.Join(dir, "dictionary.json")
	require.NoError(t, os.WriteFile(dictPath, []byte(testDictionary), 0644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--config", dir, "--dictionary", dictPath, "--log-level", "error"}, args...))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestAnalyzeCommandJSON(t *testing.T) {
	out, err := run(t, "analyze", "王", "浩然", "--json", "--save=false")
	require.NoError(t, err)

	assert.True(t, gjson.Get(out, "ok").Bool())
	assert.Equal(t, int64(5), gjson.Get(out, "result.grids.heaven").Int())
	assert.Equal(t, int64(27), gjson.Get(out, "result.grids.total").Int())
	assert.Len(t, gjson.Get(out, "result.dictVersion").String(), 12)
}

func TestAnalyzeCommandText(t *testing.T) {
	out, err := run(t, "analyze", " 欧阳 ", "浩", "--json=false", "--save=false")
	require.NoError(t, err)
	assert.Contains(t, out, "欧阳浩")
	assert.Contains(t, out, "总格 total")
}

func TestAnalyzeCommandFailure(t *testing.T) {
	out, err := run(t, "analyze", "王", "龘", "--json=false", "--save=false")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "龘")
	assert.Contains(t, out, "not in the standard character table")
}

func TestAnalyzeCommandSaves(t *testing.T) {
	_, err := run(t, "analyze", "王", "浩然", "--json=false", "--save")
	require.NoError(t, err)
}

func TestHistoryCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := runIn(t, dir, "history", "--limit", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved reports.")

	_, err = runIn(t, dir, "analyze", "王", "浩然", "--json=false", "--save")
	require.NoError(t, err)

	out, err = runIn(t, dir, "history", "--limit", "20")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "三才    NAME"), "header %q", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "土土火  王 浩然"), "row %q", lines[1])

	id := strings.Fields(lines[1])[0]
	out, err = runIn(t, dir, "history", "show", id, "--json")
	require.NoError(t, err)
	assert.Equal(t, id, gjson.Get(out, "id").String())
	assert.Equal(t, "浩然", gjson.Get(out, "result.input.givenName").String())
}

func TestLookupCommand(t *testing.T) {
	out, err := run(t, "lookup", "浩", "龘")
	require.NoError(t, err)
	assert.Contains(t, out, "Character: 浩")
	assert.Contains(t, out, "Used:        11 (kangxi)")
	assert.Contains(t, out, "Simplified:  10")
	assert.Contains(t, out, "Character: 龘")
	assert.Contains(t, out, "(unresolved)")
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "names.txt")
	require.NoError(t, os.WriteFile(input, []byte("王 浩然\n王 龘\n"), 0644))

	out, err := run(t, "batch", input, "--workers", "2", "--output", "")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, gjson.Get(lines[0], "ok").Bool())
	assert.Equal(t, "龘", gjson.Get(lines[1], "invalidCharacters.0").String())
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"--config", dir, "init", "--force=false"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.Execute())

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	rootCmd.SetArgs([]string{"--config", dir, "init", "--force=false"})
	assert.ErrorContains(t, rootCmd.Execute(), "already exists")
}

func TestReadNames(t *testing.T) {
	input := strings.Join([]string{
		"# comment",
		"王 浩然",
		"",
		`{"surname": "欧阳", "givenName": "浩"}`,
		"  李\t云  ",
	}, "\n")

	got, err := readNames(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []sancai.NameInput{
		{Surname: "王", GivenName: "浩然"},
		{Surname: "欧阳", GivenName: "浩"},
		{Surname: "李", GivenName: "云"},
	}, got)
}

func TestReadNamesRejectsBadLines(t *testing.T) {
	_, err := readNames(strings.NewReader("王浩然\n"))
	assert.ErrorContains(t, err, "line 1")

	_, err = readNames(strings.NewReader("王 浩然\n{\"surname\": \n"))
	assert.ErrorContains(t, err, "line 2: invalid JSON")
}

func TestDictionaryLocation(t *testing.T) {
	cfg := config.Default()
	cfg.Dictionary.Location = "https://example.com/strokes.json"
	assert.Equal(t, "https://example.com/strokes.json", dictionaryLocation(cfg, t.TempDir()))

	dir := t.TempDir()
	path := filepath.Join(dir, dictionaryFile)
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	cfg.Dictionary.Location = ""
	// Falls through to the config directory unless ./data/dictionary.json exists.
	if _, err := os.Stat(filepath.Join("data", dictionaryFile)); os.IsNotExist(err) {
		assert.Equal(t, path, dictionaryLocation(cfg, dir))
	}
}
