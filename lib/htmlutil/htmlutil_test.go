package htmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseBody(t testing.TB, fragment string) *html.Node {
	doc, err := html.Parse(strings.NewReader("<html><body>" + fragment + "</body></html>"))
	if err != nil {
		t.Fatal(err)
	}
	var body *html.Node
	var find func(n *html.Node)
	find = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "body" {
			body = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(doc)
	require.NotNil(t, body)
	return body
}

func TestStrippedText(t *testing.T) {
	testCases := []struct {
		fragment  string
		separator string
		expected  string
	}{
		{
			fragment:  "<h2> 前提条件 </h2>\n<p>  line one </p><p>line two</p>",
			separator: "\n",
			expected:  "前提条件\nline one\nline two",
		},
		{
			fragment:  "<h2>補<b>足</b></h2>",
			separator: "",
			expected:  "補足",
		},
		{
			fragment:  "<p>kept</p><script>var x = 1;</script><style>p{}</style><!-- hidden -->",
			separator: "|",
			expected:  "kept",
		},
		{
			fragment:  "   ",
			separator: "\n",
			expected:  "",
		},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, StrippedText(parseBody(t, test.fragment), test.separator))
	}
}

func TestNormalize(t *testing.T) {
	require.Equal(t, "評価 の基準", Normalize("\t評価   の基準\n"))
	require.Equal(t, "abc", Normalize("a\u0000bc"))
}
