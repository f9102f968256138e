package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchgrip/internal/config"
)

type fakeServer struct {
	mu    sync.Mutex
	terms []string
	fail  bool
}

func (s *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/search":
		term := r.URL.Query().Get("term")
		s.mu.Lock()
		s.terms = append(s.terms, term)
		fail := s.fail
		s.mu.Unlock()
		if fail || term == "boom" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"results": ["%s1", "%s2"]}`, term, term)
	case "/search_history":
		fmt.Fprint(w, `{"result": ["cat", "dog"]}`)
	default:
		http.NotFound(w, r)
	}
}

func (s *fakeServer) Terms() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.terms...)
}

// setup writes a config pointing at a fake server with logs going to a file
func setup(t *testing.T) (*fakeServer, string) {
	t.Helper()
	fs := &fakeServer{}
	srv := httptest.NewServer(fs)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Server.BaseURL = srv.URL
	cfg.Log.Output = filepath.Join(dir, "cli.log")
	cfg.Client.BreakerEnabled = false
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, config.NewConfigService().SaveToPath(cfg, path))
	return fs, path
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestSearchCommand(t *testing.T) {
	fs, path := setup(t)

	out, _, err := execute(t, "", "--config", path, "search", "cat")
	require.NoError(t, err)

	assert.Equal(t, []string{"cat"}, fs.Terms())
	assert.Equal(t, "results (2)\n  1. cat1\n  2. cat2\nhistory (2)\n  1. cat\n  2. dog\n", out)
}

func TestSearchEmptyTerm(t *testing.T) {
	fs, path := setup(t)

	_, _, err := execute(t, "", "--config", path, "search", "")
	require.NoError(t, err)
	assert.Equal(t, []string{""}, fs.Terms())
}

func TestSearchFailureSkipsHistory(t *testing.T) {
	fs, path := setup(t)
	fs.mu.Lock()
	fs.fail = true
	fs.mu.Unlock()

	out, errOut, err := execute(t, "", "--config", path, "search", "cat")
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "error:")
}

func TestHistoryCommand(t *testing.T) {
	fs, path := setup(t)

	out, _, err := execute(t, "", "--config", path, "history")
	require.NoError(t, err)
	assert.Equal(t, "history (2)\n  1. cat\n  2. dog\n", out)
	assert.Empty(t, fs.Terms())
}

func TestReplCommand(t *testing.T) {
	fs, path := setup(t)

	out, errOut, err := execute(t, "cat\nboom\ndog\n", "--config", path, "repl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 searches failed")

	assert.Equal(t, []string{"cat", "boom", "dog"}, fs.Terms())
	assert.Contains(t, out, "dog1")
	assert.Contains(t, errOut, "500")

	logData, readErr := os.ReadFile(filepath.Join(filepath.Dir(path), "cli.log"))
	require.NoError(t, readErr)
	assert.Equal(t, 3, strings.Count(string(logData), "user starts search"))
}

func TestReplLongLineDoesNotStopLoop(t *testing.T) {
	fs, path := setup(t)
	long := strings.Repeat("b", 70000)

	_, _, err := execute(t, "cat\n"+long+"\ndog", "--config", path, "repl")
	require.NoError(t, err)

	terms := fs.Terms()
	require.Len(t, terms, 3)
	assert.Equal(t, "cat", terms[0])
	assert.Equal(t, long, terms[1])
	assert.Equal(t, "dog", terms[2], "last line without a newline is still searched")
}

func TestReplKeepsSpacesAndStripsCRLF(t *testing.T) {
	fs, path := setup(t)

	_, _, err := execute(t, " cat \r\n\r\n", "--config", path, "repl")
	require.NoError(t, err)
	assert.Equal(t, []string{" cat ", ""}, fs.Terms())
}

func TestServerFlagOverridesConfig(t *testing.T) {
	fs, path := setup(t)
	other := &fakeServer{}
	srv := httptest.NewServer(other)
	defer srv.Close()

	_, _, err := execute(t, "", "--config", path, "--server", srv.URL, "search", "x")
	require.NoError(t, err)
	assert.Empty(t, fs.Terms())
	assert.Equal(t, []string{"x"}, other.Terms())
}

func TestStatsDirFlag(t *testing.T) {
	_, path := setup(t)
	statsDir := filepath.Join(t.TempDir(), "stats")

	_, _, err := execute(t, "cat\ncat\n", "--config", path, "--stats-dir", statsDir, "repl")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(statsDir, "up_to_date search results.csv"))
	require.NoError(t, err)
	assert.Equal(t, "cat,2\n", string(data))
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, _, err := execute(t, "", "--config", path, "--server", "http://search.local:9000", "config", "init")
	require.NoError(t, err)
	assert.Equal(t, "wrote "+path+"\n", out)

	_, _, err = execute(t, "", "--config", path, "config", "init")
	assert.Error(t, err, "refuses to overwrite")

	_, _, err = execute(t, "", "--config", path, "config", "init", "--force")
	require.NoError(t, err)

	out, errOut, err := execute(t, "", "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "base_url")
	assert.Contains(t, errOut, path)
}

func TestSearchRequiresOneArg(t *testing.T) {
	_, _, err := execute(t, "", "search")
	assert.Error(t, err)
}
