package htmlutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TextSegments returns the text nodes below `node` in document order.
// text inside <script>, <style> and <template> as well as comments
// are not visible text and are skipped.
func TextSegments(node *html.Node) []string {
	var out []string
	collectSegments(node, &out)
	return out
}

func collectSegments(node *html.Node, out *[]string) {
	if node == nil {
		return
	}
	switch node.Type {
	case html.TextNode:
		*out = append(*out, node.Data)
		return
	case html.ElementNode:
		switch node.DataAtom {
		case atom.Script, atom.Style, atom.Template:
			return
		}
	case html.CommentNode, html.DoctypeNode:
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectSegments(child, out)
	}
}

// StrippedText trims every text segment, drops the empty ones and joins
// the rest with `separator`.
func StrippedText(node *html.Node, separator string) string {
	segments := TextSegments(node)
	kept := segments[:0]
	for _, s := range segments {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		kept = append(kept, s)
	}
	return strings.Join(kept, separator)
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// Normalize collapses a label for display in logs and diagnostics.
func Normalize(s string) string {
	s = removeNonPrintable(s)
	s = strings.TrimSpace(s)
	s = innerWhitespace.ReplaceAllString(s, " ")
	return s
}
