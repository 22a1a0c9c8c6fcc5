package youtube

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// rcdataPrefix keeps the parser from eating a leading newline of the field
const rcdataPrefix = "."

// plainText turns an HTML-escaped snippet field ("Tom &amp; Jerry",
// "Rock &#39;n&#39; Roll") into plain text. search.list escapes titles,
// videos.list does not. Whitespace, NUL bytes and literal tags are kept.
func plainText(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}

	// the HTML parser drops NUL, so decode around them
	parts := strings.Split(s, "\x00")
	for i, p := range parts {
		parts[i] = unescapeEntities(p)
	}
	return strings.Join(parts, "\x00")
}

// unescapeEntities decodes character references by parsing s as the
// content of a textarea, where tags stay literal text.
func unescapeEntities(s string) string {
	if !strings.Contains(s, "&") || strings.Contains(strings.ToLower(s), "</textarea") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<textarea>" + rcdataPrefix + s + "</textarea>"))
	if err != nil {
		return s
	}
	return strings.TrimPrefix(doc.Find("textarea").First().Text(), rcdataPrefix)
}
