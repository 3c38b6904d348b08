package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText concatenates the raw text nodes under node, without any
// normalization. See Text for the normalized form.
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

var whitespaceRuns = regexp.MustCompile(`\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// Text returns the visible text of a selection: descendant text nodes
// concatenated, non-printable runes dropped, leading/trailing whitespace
// trimmed, and internal whitespace runs collapsed to single spaces. Empty
// nodes contribute nothing.
func Text(sel *goquery.Selection) string {
	var parts []string
	for _, n := range sel.Nodes {
		t := removeNonPrintable(GetText(n))
		t = whitespaceRuns.ReplaceAllString(t, " ")
		t = strings.Trim(t, " ")
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
