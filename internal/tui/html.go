package tui

import (
	"strings"

	"golang.org/x/net/html"
)

// blockTags are elements that force a line break when rendered as text.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true,
	"ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// StripHTML flattens catalog markup to plain text suitable for a
// terminal. It uses the golang.org/x/net/html tokenizer so malformed
// markup never panics; Text() hands back entities already decoded.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}

	var out strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(s))

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			// End of document or parse error
			return collapseLines(out.String())

		case html.TextToken:
			out.Write(tokenizer.Text())

		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			tn, _ := tokenizer.TagName()
			if blockTags[string(tn)] {
				out.WriteString("\n")
			}
		}
	}
}

// collapseLines trims each line and drops blank ones.
func collapseLines(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
