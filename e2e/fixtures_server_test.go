//go:build e2e && unix

package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// autocompleteServer is a fake server answering by prefix from a fixed word list
type autocompleteServer struct {
	*httptest.Server

	mu      sync.Mutex
	words   []string
	history []string
	status  int
}

// StartServer starts a fake autocomplete server that is closed on cleanup
func (tf *TUITestFramework) StartServer(words ...string) *autocompleteServer {
	tf.t.Helper()
	s := &autocompleteServer{words: words}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	tf.t.Cleanup(s.Close)
	return s
}

func (s *autocompleteServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != 0 {
		w.WriteHeader(s.status)
		return
	}

	switch r.URL.Path {
	case "/search":
		term := r.URL.Query().Get("term")
		s.history = append(s.history, term)
		var matches []string
		for _, word := range s.words {
			if strings.HasPrefix(word, term) {
				matches = append(matches, quote(word))
			}
		}
		fmt.Fprintf(w, `{"results": [%s]}`, strings.Join(matches, ", "))
	case "/search_history":
		entries := make([]string, len(s.history))
		for i, h := range s.history {
			entries[i] = quote(h)
		}
		fmt.Fprintf(w, `{"result": [%s]}`, strings.Join(entries, ", "))
	default:
		http.NotFound(w, r)
	}
}

// FailWith makes every later request answer with status
func (s *autocompleteServer) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}

// WriteConfig writes a config file into the workspace and returns its path
func (tf *TUITestFramework) WriteConfig(contents string) (string, error) {
	path := filepath.Join(tf.workspace, "config.toml")
	return path, os.WriteFile(path, []byte(contents), 0644)
}
