package parse

import (
	"fmt"
	"strings"
	"testing"
)

// listerItems renders n generic .lister-item elements; every indexth
// element in skipTitles gets a one-character title the sweep must discard.
func listerItems(n int, skipTitles map[int]bool) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		title := fmt.Sprintf("Sweep Movie %d", i)
		if skipTitles[i] {
			title = "X"
		}
		fmt.Fprintf(&b, `<div class="lister-item"><a href="/title/tt%07d/">%s</a> <span class="secondaryInfo">(19%02d)</span> <strong>8.%d</strong></div>`,
			i, title, i%100, i%10)
	}
	return b.String()
}

func TestSweep_LaterSelectorAboveThresholdWins(t *testing.T) {
	p := newTestParser(t)

	// 10 card elements match an earlier selector but stay below the
	// 50-element threshold; the 60 lister items are used instead.
	html := `<html><body>` + cardList(10) + listerItems(60, nil) + `</body></html>`
	movies := p.Sweep(mustDocument(t, html))

	if len(movies) != 60 {
		t.Fatalf("got %d movies, want 60", len(movies))
	}
	if movies[0].Title != "Sweep Movie 1" {
		t.Errorf("title = %q, results should come from the lister items", movies[0].Title)
	}
	if movies[0].Year != 1901 {
		t.Errorf("year = %d, want 1901", movies[0].Year)
	}
	if movies[0].URL != "https://www.imdb.com/title/tt0000001/" {
		t.Errorf("url = %q", movies[0].URL)
	}
}

func TestSweep_NoSelectorAboveThreshold(t *testing.T) {
	p := newTestParser(t)
	html := `<html><body>` + listerItems(50, nil) + `</body></html>`
	if movies := p.Sweep(mustDocument(t, html)); len(movies) != 0 {
		t.Fatalf("got %d movies from exactly 50 elements, want 0 (threshold is strict)", len(movies))
	}
}

func TestSweep_DiscardsUnidentifiedElements(t *testing.T) {
	p := newTestParser(t)

	skip := map[int]bool{5: true, 17: true, 42: true}
	html := `<html><body>` + listerItems(60, skip) + `</body></html>`
	movies := p.Sweep(mustDocument(t, html))

	if len(movies) != 57 {
		t.Fatalf("got %d movies, want 57 (3 one-character titles discarded)", len(movies))
	}
	for _, m := range movies {
		if m.Title == "Unknown" || m.Title == "X" {
			t.Fatalf("unidentified element leaked into the result: %+v", m)
		}
	}
}

func TestGenericMovie_RankPrefixOverride(t *testing.T) {
	p := newTestParser(t)
	doc := mustDocument(t, `<div class="lister-item"><h3 class="ipc-title__text">7. Se7en</h3> <a href="/title/tt0114369/">link</a></div>`)

	m := p.genericMovie(doc.Find(".lister-item").First(), 1)
	if m.Title != "Se7en" {
		t.Errorf("title = %q, want Se7en", m.Title)
	}
	if m.Rank != 7 {
		t.Errorf("rank = %d, want the in-text 7 over the positional 1", m.Rank)
	}
}
