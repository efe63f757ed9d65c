package parse

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

// jsonLDBlock renders a JSON-LD script block with n list entries named
// "Structured Movie <i>".
func jsonLDBlock(t *testing.T, n int) string {
	t.Helper()

	entries := make([]map[string]any, 0, n)
	for i := 1; i <= n; i++ {
		entries = append(entries, map[string]any{
			"position": i,
			"item": map[string]any{
				"name":          fmt.Sprintf("Structured Movie %d", i),
				"url":           fmt.Sprintf("https://www.imdb.com/title/tt%07d/", i),
				"datePublished": fmt.Sprintf("%d-06-15", 1900+i%100),
				"aggregateRating": map[string]any{
					"ratingValue": "9.1",
				},
			},
		})
	}
	data, err := json.Marshal(map[string]any{
		"@type":           "ItemList",
		"itemListElement": entries,
	})
	if err != nil {
		t.Fatalf("marshal JSON-LD fixture: %v", err)
	}
	return `<script type="application/ld+json">` + string(data) + `</script>`
}

// scriptBlock renders a plain script block embedding n titleText entries
// named "Script Movie <i>", with matching releaseYear and ratingValue
// arrays.
func scriptBlock(n int) string {
	var b strings.Builder
	b.WriteString(`<script>var pageData = {"movies": [`)
	for i := 1; i <= n; i++ {
		if i > 1 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"titleText":"Script Movie %d","releaseYear":%d,"ratingValue":8.%d}`,
			i, 1900+i%100, i%10)
	}
	b.WriteString(`]};</script>`)
	return b.String()
}

// cardList renders n modern card-list entries with rank prefixes.
func cardList(n int) string {
	var b strings.Builder
	b.WriteString(`<ul class="ipc-metadata-list">`)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, `<li class="ipc-metadata-list-summary-item">`+
			`<a class="ipc-title-link-wrapper" href="/title/tt%07d/">`+
			`<h3 class="ipc-title__text">%d. Card Movie %d</h3></a>`+
			`<span class="cli-title-metadata-item">%d</span>`+
			`<span class="ipc-rating-star--rating">8.%d</span></li>`,
			i, i, i, 1900+i%100, i%10)
	}
	b.WriteString(`</ul>`)
	return b.String()
}
