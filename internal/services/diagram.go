package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

var mermaidFence = regexp.MustCompile("(?s)```mermaid\n(.*?)\n```")

// ExtractDiagram locates the first mermaid fence in the generated
// content. It returns the diagram source, the content with the whole
// fence removed, and whether a fence was found. Without a fence the
// content passes through unchanged.
func ExtractDiagram(content string) (source, text string, ok bool) {
	m := mermaidFence.FindStringSubmatch(content)
	if m == nil {
		return "", content, false
	}
	source = strings.TrimSpace(m[1])
	text = strings.TrimSpace(strings.Replace(content, m[0], "", 1))
	return source, text, true
}

const defaultMermaidInkURL = "https://mermaid.ink"

// MermaidRenderer renders diagram source as PNG bytes via the public
// mermaid.ink endpoint, which takes the base64-encoded source in the
// URL path.
type MermaidRenderer struct {
	client  *http.Client
	baseURL string
}

func NewMermaidRenderer(baseURL string, timeout time.Duration) *MermaidRenderer {
	if baseURL == "" {
		baseURL = defaultMermaidInkURL
	}
	return &MermaidRenderer{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

func (r *MermaidRenderer) Render(ctx context.Context, source string) ([]byte, error) {
	encoded := base64.StdEncoding.EncodeToString([]byte(source))
	url := fmt.Sprintf("%s/img/base64:%s", r.baseURL, encoded)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mermaid.ink returned status %d", resp.StatusCode)
	}

	image, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("mermaid.ink returned an empty image")
	}
	return image, nil
}
