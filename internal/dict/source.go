package dict

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// maxResourceSize bounds how much of a remote resource is read.
const maxResourceSize = 64 << 20

// Source fetches the raw dictionary resource.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

// NewSource picks an HTTP source for http(s) locations and a file source otherwise.
func NewSource(location string) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return &HTTPSource{URL: location}
	}
	return FileSource{Path: location}
}

// FileSource reads the resource from the local filesystem.
type FileSource struct {
	Path string
}

// Fetch reads the whole file.
func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading dictionary file: %w", err)
	}
	return data, nil
}

func (s FileSource) String() string { return s.Path }

// HTTPSource downloads the resource with a GET request.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// Fetch performs the request. Any non-2xx status is an error.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching dictionary: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching dictionary: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResourceSize))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return data, nil
}

func (s *HTTPSource) String() string { return s.URL }

// StaticSource serves an in-memory resource, e.g. one embedded in the binary.
type StaticSource struct {
	Name string
	Data []byte
}

// Fetch returns the data as is.
func (s StaticSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Data, nil
}

func (s StaticSource) String() string { return s.Name }
