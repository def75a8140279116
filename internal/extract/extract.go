// Package extract reduces HTML sources to clean Markdown text so the
// tokenizer sees prose instead of markup. Plain-text sources pass through
// with HTML detection handled by the caller.
package extract

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// ToMarkdown extracts document text from HTML content as Markdown.
//
// When selector is non-empty only matching elements are kept; otherwise
// readability extraction isolates the main article content, unless
// includeAll asks for a full-page conversion. baseURL gives readability
// context for resolving relative links and may be nil.
func ToMarkdown(content io.Reader, selector string, includeAll bool, baseURL *url.URL) (string, error) {
	if selector != "" {
		return extractWithSelector(content, selector)
	}
	if includeAll {
		return convertAll(content)
	}
	return extractMainContent(content, baseURL)
}

// extractMainContent isolates the main article via readability.
func extractMainContent(content io.Reader, baseURL *url.URL) (string, error) {
	if baseURL == nil {
		baseURL = &url.URL{}
	}

	article, err := readability.FromReader(content, baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract main content: %w", err)
	}
	return toMarkdown(article.Content)
}

// extractWithSelector keeps only elements matching the CSS selector.
func extractWithSelector(content io.Reader, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	selection := doc.Find(selector)
	if selection.Length() == 0 {
		return "", fmt.Errorf("no elements found matching selector: %s", selector)
	}

	var parts []string
	selection.Each(func(i int, s *goquery.Selection) {
		if html, err := s.Html(); err == nil {
			// re-wrap so block structure survives conversion
			tag := goquery.NodeName(s)
			parts = append(parts, fmt.Sprintf("<%s>%s</%s>", tag, html, tag))
		}
	})
	if len(parts) == 0 {
		return "", fmt.Errorf("failed to extract HTML from selection")
	}

	return toMarkdown(strings.Join(parts, "\n"))
}

// convertAll converts the full page without readability filtering.
func convertAll(content io.Reader) (string, error) {
	htmlBytes, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("failed to read HTML content: %w", err)
	}
	return toMarkdown(string(htmlBytes))
}

// toMarkdown converts an HTML string to trimmed Markdown.
func toMarkdown(htmlString string) (string, error) {
	converter := md.NewConverter("", true, nil)

	markdown, err := converter.ConvertString(htmlString)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	cleaned := strings.TrimSpace(markdown)
	cleaned = strings.ReplaceAll(cleaned, "\n\n\n", "\n\n")
	return cleaned, nil
}

// LooksLikeHTML reports whether content starts with an HTML document marker.
// Sources that do not are treated as plain text and skip extraction.
func LooksLikeHTML(content string) bool {
	trimmed := strings.TrimSpace(content)
	lower := strings.ToLower(trimmed)
	return strings.HasPrefix(lower, "<!doctype html") ||
		strings.HasPrefix(lower, "<html") ||
		strings.HasPrefix(lower, "<head") ||
		strings.HasPrefix(lower, "<body")
}
