package markup

import (
	"fmt"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// documentURL is the base for resolving relative links in local documents.
var documentURL = &url.URL{Scheme: "file", Path: "/"}

// Extract reduces a complete HTML document to the HTML of its main content.
func Extract(document string) (string, error) {
	article, err := readability.FromReader(strings.NewReader(document), documentURL)
	if err != nil {
		return "", fmt.Errorf("extracting content: %w", err)
	}
	return article.Content, nil
}
