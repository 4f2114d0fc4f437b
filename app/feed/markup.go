package feed

import (
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"
)

// Pattern-based tag helpers. Third-party feeds are often not well-formed XML,
// so extraction never goes through an XML decoder.

var (
	cdataPattern      = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	htmlTagPattern    = regexp.MustCompile(`(?s)<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	entityReplacer = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&nbsp;", " ",
	)

	tagPatterns  sync.Map // tag name -> *regexp.Regexp matching the element body
	openPatterns sync.Map // tag name -> *regexp.Regexp matching the opening tag
	attrPatterns sync.Map // attribute name -> *regexp.Regexp matching name="value"
)

func elementPattern(name string) *regexp.Regexp {
	if p, ok := tagPatterns.Load(name); ok {
		return p.(*regexp.Regexp)
	}
	quoted := regexp.QuoteMeta(name)
	// The attribute group may not end in "/" so self-closing tags never open a body.
	p := regexp.MustCompile(`(?is)<` + quoted + `(?:\s(?:[^>]*[^/>])?)?>(.*?)</` + quoted + `\s*>`)
	actual, _ := tagPatterns.LoadOrStore(name, p)
	return actual.(*regexp.Regexp)
}

func openTagPattern(name string) *regexp.Regexp {
	if p, ok := openPatterns.Load(name); ok {
		return p.(*regexp.Regexp)
	}
	p := regexp.MustCompile(`(?is)<` + regexp.QuoteMeta(name) + `(\s[^>]*)?/?>`)
	actual, _ := openPatterns.LoadOrStore(name, p)
	return actual.(*regexp.Regexp)
}

// findTag returns the body of the first <name>…</name> element in s.
func findTag(s, name string) (string, bool) {
	m := elementPattern(name).FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// findAllTags returns the bodies of every <name>…</name> element in s.
func findAllTags(s, name string) []string {
	matches := elementPattern(name).FindAllStringSubmatch(s, -1)
	bodies := make([]string, 0, len(matches))
	for _, m := range matches {
		bodies = append(bodies, m[1])
	}
	return bodies
}

// removeTags drops every <name>…</name> element from s.
func removeTags(s, name string) string {
	return elementPattern(name).ReplaceAllString(s, "")
}

// findAttr reads attr from the opening tag of the first <name> element,
// self-closing or not. found reports whether the attribute was present.
func findAttr(s, name, attr string) (value string, found bool) {
	m := openTagPattern(name).FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return attrValue(m[1], attr)
}

func attrPattern(attr string) *regexp.Regexp {
	if p, ok := attrPatterns.Load(attr); ok {
		return p.(*regexp.Regexp)
	}
	p := regexp.MustCompile(`(?i)(?:^|\s)` + regexp.QuoteMeta(attr) + `\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	actual, _ := attrPatterns.LoadOrStore(attr, p)
	return actual.(*regexp.Regexp)
}

func attrValue(attrs, attr string) (string, bool) {
	m := attrPattern(attr).FindStringSubmatch(attrs)
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return m[1], true
	}
	return m[2], true
}

// cleanText unwraps CDATA sections and trims surrounding whitespace.
func cleanText(s string) string {
	return strings.TrimSpace(cdataPattern.ReplaceAllString(s, "$1"))
}

// textTag is findTag followed by cleanText; absent tags yield "".
func textTag(s, name string) string {
	body, ok := findTag(s, name)
	if !ok {
		return ""
	}
	return cleanText(body)
}

func stripTags(s string) string {
	return htmlTagPattern.ReplaceAllString(s, " ")
}

func decodeEntities(s string) string {
	return entityReplacer.Replace(s)
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// truncate cuts s to at most limit characters.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:limit]))
}

// plainText turns an HTML fragment into the short summary used for Item.Description.
func plainText(html string, limit int) string {
	return truncate(collapseWhitespace(decodeEntities(stripTags(html))), limit)
}
