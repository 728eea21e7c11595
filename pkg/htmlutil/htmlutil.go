package htmlutil

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText returns the concatenated text of every text node under `node`, the same
// thing the DOM calls textContent.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// IsText reports whether the first node of the selection is a text node.
func IsText(sel *goquery.Selection) bool {
	return len(sel.Nodes) > 0 && sel.Nodes[0].Type == html.TextNode
}

// InlineStyle returns the value of a css property set in the style attribute of the
// first node of the selection, lowercased and trimmed. It is empty when unset.
func InlineStyle(sel *goquery.Selection, property string) string {
	style, ok := sel.Attr("style")
	if !ok {
		return ""
	}
	property = strings.ToLower(property)

	value := ""
	for _, declaration := range strings.Split(style, ";") {
		name, v, found := strings.Cut(declaration, ":")
		if !found {
			continue
		}
		if strings.ToLower(strings.TrimSpace(name)) != property {
			continue
		}
		// later declarations win, same as the browser
		value = strings.ToLower(strings.TrimSpace(v))
	}
	value = strings.TrimSpace(strings.TrimSuffix(value, "!important"))
	return value
}

type Anchor struct {
	Name string
	Url  *url.URL
}

var whitespace = regexp.MustCompile(`\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// GetAnchors reads the anchors in `sel`, resolving their hrefs against `base`.
// Anchors with an unparsable href are skipped.
func GetAnchors(base *url.URL, sel *goquery.Selection) []Anchor {
	anchors := []Anchor{}
	for _, n := range sel.Nodes {
		href := ""
		for _, a := range n.Attr {
			if a.Key == "href" {
				href = a.Val
				break
			}
		}

		link, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			continue
		}
		if base != nil {
			link = base.ResolveReference(link)
		}

		name := GetText(n)
		name = whitespace.ReplaceAllString(name, " ")
		name = removeNonPrintable(name)
		name = strings.Trim(name, " ")

		anchors = append(anchors, Anchor{
			Name: name,
			Url:  link,
		})
	}

	return anchors
}
