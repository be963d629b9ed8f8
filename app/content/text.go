package content

import (
	"strings"

	"golang.org/x/net/html"
)

// StripTags returns the text nodes of an HTML fragment, entities decoded.
func StripTags(fragment string) string {
	return collectText(fragment, "")
}

func collectText(fragment, tagSeparator string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			b.WriteString(tagSeparator)
		}
	}
}

// Excerpt strips the description to plain text and cuts it to 150 runes plus an ellipsis.
func Excerpt(description string) string {
	text := strings.TrimSpace(StripTags(description))
	runes := []rune(text)
	if len(runes) > excerptLength {
		return string(runes[:excerptLength]) + "..."
	}
	return text
}

func WordCount(content string) int {
	return len(strings.Fields(collectText(content, " ")))
}

// ReadTime estimates minutes at 200 words per minute, never less than one.
func ReadTime(content string) int {
	words := WordCount(content)
	return max(1, (words+wordsPerMinute-1)/wordsPerMinute)
}

// ContainsLao reports whether text has any rune in the Lao block U+0E80–U+0EFF.
func ContainsLao(text string) bool {
	for _, r := range text {
		if r >= 0x0E80 && r <= 0x0EFF {
			return true
		}
	}
	return false
}

func FirstImageSrc(fragment string) string {
	if fragment == "" {
		return ""
	}
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "img" || !hasAttr {
				continue
			}
			for {
				key, val, more := z.TagAttr()
				if string(key) == "src" && len(val) > 0 {
					return string(val)
				}
				if !more {
					break
				}
			}
		}
	}
}
