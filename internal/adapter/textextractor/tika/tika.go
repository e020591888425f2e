// Package tika extracts plain text from uploaded resumes via an Apache
// Tika server (PUT /tika with Accept: text/plain).
package tika

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fairyhunter13/ai-interview-prep/pkg/textx"
)

// Client is a minimal Tika HTTP client implementing domain.TextExtractor.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New constructs a Tika client with a default timeout.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ExtractPath uploads the file at path to the Tika server and returns the
// extracted text sanitized and whitespace-collapsed. Paths outside the
// system temp dir or the working dir are rejected; uploads land in temp.
func (c *Client) ExtractPath(ctx context.Context, fileName, path string) (string, error) {
	openPath, err := constrainPath(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(openPath)
	if err != nil {
		return "", err
	}

	u := c.baseURL
	if u == "" {
		u = "http://localhost:9998"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u+"/tika", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/plain")
	if ct := contentTypeFromExt(filepath.Ext(fileName)); ct != "" {
		req.Header.Set("Content-Type", ct)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("tika status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return textx.CollapseWhitespace(textx.SanitizeText(string(b))), nil
}

// constrainPath allows only files under the system temp dir or the working
// dir, mitigating file inclusion via a variable path.
func constrainPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	abs = filepath.Clean(abs)
	for _, base := range []string{filepath.Clean(os.TempDir()), workingDir()} {
		if base == "" {
			continue
		}
		if abs == base || strings.HasPrefix(abs, base+string(os.PathSeparator)) {
			return abs, nil
		}
	}
	return "", fmt.Errorf("disallowed path: %s", abs)
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Clean(wd)
}

func contentTypeFromExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain"
	default:
		if ext != "" {
			return mime.TypeByExtension(ext)
		}
	}
	return ""
}
