package stage

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// DefaultBaseURL is the base used when no explicit URL is configured.
const DefaultBaseURL = "http://localhost:8000/"

// HTTPStager fetches each named input file from a base URL.
type HTTPStager struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPStager returns an HTTPStager; an empty baseURL defaults to
// DefaultBaseURL.
func NewHTTPStager(baseURL string) *HTTPStager {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPStager{BaseURL: baseURL, Client: http.DefaultClient}
}

// Stage implements Stager.
func (s *HTTPStager) Stage(ctx context.Context, directory string, names []string) error {
	for _, name := range names {
		u, err := url.JoinPath(s.BaseURL, name)
		if err != nil {
			return errors.Wrapf(err, "building URL for %s", name)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return errors.Wrapf(err, "staging %s", name)
		}

		resp, err := s.Client.Do(req)
		if err != nil {
			return errors.Wrapf(err, "fetching %s from %s", name, u)
		}
		if err := writeResponseBody(resp, filepath.Join(directory, name)); err != nil {
			return err
		}
	}
	return nil
}

func writeResponseBody(resp *http.Response, dest string) error {
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("staging %s: unexpected status %s", dest, resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return errors.Wrapf(err, "creating %s", dest)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return errors.Wrapf(err, "writing %s", dest)
	}
	return nil
}
