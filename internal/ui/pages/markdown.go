package pages

import (
	"errors"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"

	"github.com/leapstack-labs/cookbook/internal/ui/shell"
)

// ErrNoMain is returned when a document has no #main region.
var ErrNoMain = errors.New("document has no main region")

// Markdown converts the #main region of a rendered document to Markdown.
func Markdown(document string) (string, error) {
	doc, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	main := findByID(doc, shell.MainID)
	if main == nil {
		return "", ErrNoMain
	}

	var b strings.Builder
	for c := main.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", fmt.Errorf("failed to render HTML: %w", err)
		}
	}

	md, err := htmltomarkdown.ConvertString(b.String())
	if err != nil {
		return "", fmt.Errorf("failed to convert to markdown: %w", err)
	}
	return strings.TrimSpace(md) + "\n", nil
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}
