package fetcher

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// previewInfo is the descriptive data parsed from a preview page.
type previewInfo struct {
	title       string
	description string
}

// parsePreview walks the preview page DOM for its <title> and the
// og:description (or plain description) meta tag.
func parsePreview(content io.Reader) (previewInfo, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return previewInfo{}, err
	}

	var info previewInfo
	var fallbackDescription string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if info.title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					info.title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				content := getAttr(n, "content")
				switch {
				case getAttr(n, "property") == "og:description":
					info.description = content
				case getAttr(n, "name") == "description":
					fallbackDescription = content
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)

	if info.description == "" {
		info.description = fallbackDescription
	}
	info.description = strings.TrimSpace(info.description)

	return info, nil
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
