// Package api talks to the CV-analysis backend over HTTP.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"

	"github.com/amishk599/cvcoach/internal/model"
)

const (
	uploadPath = "/api/cv/upload"
	healthPath = "/api/cv/health"
)

var (
	_ model.CVUploader  = (*Client)(nil)
	_ model.JobSearcher = (*Client)(nil)
)

// Client calls the backend rooted at origin (scheme://host[:port]).
type Client struct {
	origin string
	client *http.Client
}

// NewClient creates a client for the given origin.
func NewClient(origin string, client *http.Client) *Client {
	return &Client{
		origin: strings.TrimRight(origin, "/"),
		client: client,
	}
}

// Origin returns the base URL requests are sent to.
func (c *Client) Origin() string {
	return c.origin
}

// UploadCV posts the file as multipart field "file" and decodes the analysis.
func (c *Client) UploadCV(ctx context.Context, file model.SelectedFile) (model.CVAnalysis, error) {
	body, contentType, err := buildUploadBody(file)
	if err != nil {
		return model.CVAnalysis{}, fmt.Errorf("upload %s: %w", file.Name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.origin+uploadPath, body)
	if err != nil {
		return model.CVAnalysis{}, fmt.Errorf("upload %s: %w", file.Name, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return model.CVAnalysis{}, fmt.Errorf("upload %s: %w", file.Name, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return model.CVAnalysis{}, fmt.Errorf("upload %s: %w", file.Name, newHTTPError(resp))
	}

	var analysis model.CVAnalysis
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		return model.CVAnalysis{}, fmt.Errorf("upload %s: decoding analysis: %w", file.Name, err)
	}
	return analysis, nil
}

// SearchJobs fetches listings for kind. A JSON null body yields a nil slice.
func (c *Client) SearchJobs(ctx context.Context, kind model.SearchKind) ([]model.JobListing, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("search jobs: unknown kind %q", kind)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.origin+kind.Path(), nil)
	if err != nil {
		return nil, fmt.Errorf("search %s jobs: %w", kind, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search %s jobs: %w", kind, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, fmt.Errorf("search %s jobs: %w", kind, newHTTPError(resp))
	}

	var jobs []model.JobListing
	if err := json.NewDecoder(resp.Body).Decode(&jobs); err != nil {
		return nil, fmt.Errorf("search %s jobs: decoding listings: %w", kind, err)
	}
	return jobs, nil
}

// Health calls the backend's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.origin+healthPath, nil)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if !isSuccess(resp.StatusCode) {
		return fmt.Errorf("health check: unexpected status %d", resp.StatusCode)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// buildUploadBody reads the file into a multipart body. Files are at most
// intake.MaxFileSize, so buffering is fine.
func buildUploadBody(file model.SelectedFile) (io.Reader, string, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return nil, "", fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(file.Name)))
	h.Set("Content-Type", "application/pdf")
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("creating form part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("reading file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
