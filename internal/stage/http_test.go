package stage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStagerFetchesEachNamedFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/blob.bin":
			w.Write([]byte("blob-content"))
		case "/other.bin":
			w.Write([]byte("other-content"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	s := NewHTTPStager(srv.URL + "/")

	if err := s.Stage(context.Background(), dir, []string{"blob.bin", "other.bin"}); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(filepath.Join(dir, "blob.bin"))
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "blob-content", string(content))

	content, err = os.ReadFile(filepath.Join(dir, "other.bin"))
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "other-content", string(content))
}

func TestHTTPStagerFailsOn404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dir := t.TempDir()
	s := NewHTTPStager(srv.URL + "/")

	err := s.Stage(context.Background(), dir, []string{"missing.bin"})
	assert.Error(t, err)
}

func TestNewHTTPStagerDefaultsBaseURL(t *testing.T) {
	s := NewHTTPStager("")
	assert.Equal(t, DefaultBaseURL, s.BaseURL)
}
