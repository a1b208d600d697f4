// Package ingest is the thin boundary adapter for document input: it
// reads a disclosure letter from disk, strips HTML when present, and
// segments the cleaned text into sentences. Heavy preprocessing
// (PDF extraction, header/footer stripping) happens upstream.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// ReadDocument reads a letter from path and returns cleaned text.
// HTML files are reduced to their visible text; everything else is
// treated as plain text.
func ReadDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}

	text := string(data)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		text, err = StripHTML(text)
		if err != nil {
			return "", fmt.Errorf("strip html: %w", err)
		}
	}

	return CleanText(text), nil
}

// StripHTML extracts visible text from an HTML document, skipping
// script, style, noscript and iframe subtrees.
func StripHTML(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return buf.String(), nil
}

var whitespaceRe = regexp.MustCompile(`[ \t]+`)

// CleanText normalizes whitespace: runs of spaces/tabs collapse to one
// space, blank lines collapse, lines are trimmed.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	lines := strings.Split(text, "\n")
	var kept []string
	for _, line := range lines {
		line = strings.TrimSpace(whitespaceRe.ReplaceAllString(line, " "))
		if line != "" {
			kept = append(kept, line)
		}
	}

	return strings.Join(kept, "\n")
}

// Abbreviations that end with a period but do not terminate a sentence.
var abbrevRe = regexp.MustCompile(`\b(Mr|Mrs|Dr|Prof|Sr|Jr|vs|etc|i\.e|e\.g|Sec|sec|No|no|Rs)\.`)

const dotMarker = " DOT "

// SplitSentences segments cleaned text into sentences. Abbreviation
// periods (Mr., Sec., Rs., ...) are protected from splitting. Empty
// and whitespace-only fragments are dropped; everything else is kept
// so that downstream classification partitions the full sentence set.
func SplitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")
	text = abbrevRe.ReplaceAllString(text, "${1}"+dotMarker)

	var sentences []string
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(strings.ReplaceAll(current.String(), dotMarker, "."))
		if s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			// Split only when followed by whitespace or end of text
			if i+1 >= len(runes) || runes[i+1] == ' ' || runes[i+1] == '\t' {
				flush()
			}
		}
	}
	flush()

	return sentences
}
