// Package scrape fetches a page's HTML title for bookmarks created without
// one. Failures degrade to an empty title; they never fail the request.
package scrape

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const maxBodyBytes = 1 << 20 // titles live in the first megabyte

type TitleFetcher struct {
	client *http.Client
}

func NewTitleFetcher(timeout time.Duration) *TitleFetcher {
	return &TitleFetcher{client: &http.Client{Timeout: timeout}}
}

// FetchTitle returns the text of the page's <title> element, or "" on any
// failure: unreachable host, non-HTML body, missing title.
func (f *TitleFetcher) FetchTitle(ctx context.Context, rawURL string) string {
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return ""
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(findTitle(doc))
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		var sb strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
		}
		return sb.String()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := findTitle(c); title != "" {
			return title
		}
	}
	return ""
}
