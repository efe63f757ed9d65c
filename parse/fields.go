package parse

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

var (
	reDigits     = regexp.MustCompile(`\d+`)
	reYear       = regexp.MustCompile(`\d{4}`)
	reParenYear  = regexp.MustCompile(`\((\d{4})\)`)
	reRankPrefix = regexp.MustCompile(`^(\d+)\.\s*`)
	reTitleHref  = regexp.MustCompile(`/title/tt\d+/`)
	reRuntime    = regexp.MustCompile(`(\d+)\s*min`)
)

// titleLinkSelector matches detail-page links in any rendering mode.
const titleLinkSelector = `a[href*="/title/tt"]`

// textOf returns the stripped text of a selection; empty selections yield "".
func textOf(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}

// yearFrom pulls the first 4-digit run out of the text.
func yearFrom(text string) (int, bool) {
	m := reYear.FindString(text)
	if m == "" {
		return 0, false
	}
	y, err := strconv.Atoi(m)
	return y, err == nil
}

// parenYearFrom pulls the first parenthesized 4-digit year out of the text.
func parenYearFrom(text string) (int, bool) {
	m := reParenYear.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	y, err := strconv.Atoi(m[1])
	return y, err == nil
}

// ratingFrom parses the text as a floating-point rating. Any parse failure
// is "not found", never an error.
func ratingFrom(text string) (float64, bool) {
	r, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	return r, err == nil
}

// digitsFrom pulls the first digit run out of the text.
func digitsFrom(text string) (int, bool) {
	m := reDigits.FindString(text)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	return n, err == nil
}

// splitRankPrefix strips a leading "<number>. " rank marker off a title,
// returning the remaining title, the marker's value, and whether one was
// present.
func splitRankPrefix(text string) (string, int, bool) {
	m := reRankPrefix.FindStringSubmatch(text)
	if m == nil {
		return text, 0, false
	}
	rank, err := strconv.Atoi(m[1])
	if err != nil {
		return text, 0, false
	}
	return text[len(m[0]):], rank, true
}

// usableTitle rejects titles too short to identify a movie.
func usableTitle(title string) bool {
	return utf8.RuneCountInString(title) > 1
}

// resolve canonicalizes a possibly-relative link against the base origin.
func (p *Parser) resolve(href string) string {
	if href == "" {
		return ""
	}
	u, err := p.base.Parse(href)
	if err != nil {
		return ""
	}
	return u.String()
}
