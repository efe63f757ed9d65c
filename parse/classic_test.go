package parse

import (
	"fmt"
	"strings"
	"testing"
)

const classicTableHTML = `<html><body><table><tbody class="lister-list">
<tr>
  <td class="titleColumn"><a href="/title/tt0111161/">The Shawshank Redemption</a> <span class="secondaryInfo">(1994)</span></td>
  <td class="ratingColumn"><strong>9.3</strong></td>
</tr>
<tr>
  <td class="titleColumn"><a href="/title/tt0068646/">The Godfather</a> <span class="secondaryInfo">(1972)</span></td>
  <td class="ratingColumn"><strong>9.2</strong></td>
</tr>
<tr>
  <td class="titleColumn">No link here <span class="secondaryInfo">(1999)</span></td>
  <td class="ratingColumn"></td>
</tr>
</tbody></table></body></html>`

func TestClassicPage_ListerTable(t *testing.T) {
	p := newTestParser(t)
	movies := p.ClassicPage(mustDocument(t, classicTableHTML))

	if len(movies) != 3 {
		t.Fatalf("got %d movies, want 3", len(movies))
	}

	first := movies[0]
	if first.Title != "The Shawshank Redemption" {
		t.Errorf("title = %q", first.Title)
	}
	if first.Year != 1994 {
		t.Errorf("year = %d, want 1994", first.Year)
	}
	if first.Rating != 9.3 {
		t.Errorf("rating = %g, want 9.3", first.Rating)
	}
	if first.URL != "https://www.imdb.com/title/tt0111161/" {
		t.Errorf("url = %q", first.URL)
	}
	// The rank marker is read from the rating column text in this
	// rendering; normalization reassigns it later.
	if first.Rank != 9 {
		t.Errorf("rank = %d, want 9", first.Rank)
	}

	// A row with a title cell but no link keeps the Unknown sentinel.
	if movies[2].Title != "Unknown" {
		t.Errorf("linkless row title = %q, want Unknown", movies[2].Title)
	}
	if movies[2].Year != 1999 {
		t.Errorf("linkless row year = %d, want 1999", movies[2].Year)
	}
}

func TestClassicPage_FallsBackToCards(t *testing.T) {
	p := newTestParser(t)
	html := `<html><body>` + cardList(5) + `</body></html>`
	movies := p.ClassicPage(mustDocument(t, html))

	if len(movies) != 5 {
		t.Fatalf("got %d movies, want 5", len(movies))
	}
	if movies[0].Title != "Card Movie 1" {
		t.Errorf("title = %q, want Card Movie 1", movies[0].Title)
	}
}

func TestClassicPage_FallsBackToAnyRows(t *testing.T) {
	p := newTestParser(t)

	var b strings.Builder
	b.WriteString("<html><body><table>")
	// Three real movie rows.
	for i := 1; i <= 3; i++ {
		fmt.Fprintf(&b, `<tr><td><a href="/title/tt%07d/">Row Movie %d</a> (19%d0)</td><td><strong>8.%d</strong></td></tr>`,
			i, i, i, i)
	}
	// Rows the classifier must reject: no detail link, and a detail link
	// with neither rating nor year.
	b.WriteString(`<tr><td><a href="/chart/top">See the chart (1990)</a></td></tr>`)
	b.WriteString(`<tr><td><a href="/title/tt9999999/">Bare link</a></td></tr>`)
	b.WriteString("</table></body></html>")

	movies := p.ClassicPage(mustDocument(t, b.String()))
	if len(movies) != 3 {
		t.Fatalf("got %d movies, want 3", len(movies))
	}
	for i, m := range movies {
		if m.Rank != i+1 {
			t.Errorf("movie %d rank = %d, want %d", i, m.Rank, i+1)
		}
	}
	if movies[1].Title != "Row Movie 2" {
		t.Errorf("title = %q", movies[1].Title)
	}
	if movies[1].Year != 1920 {
		t.Errorf("year = %d, want 1920", movies[1].Year)
	}
	if movies[1].Rating != 8.2 {
		t.Errorf("rating = %g, want 8.2", movies[1].Rating)
	}
}

func TestIsMovieRow_YearWithoutRating(t *testing.T) {
	doc := mustDocument(t, `<table><tr><td><a href="/title/tt0012349/">The Kid</a> (1921)</td></tr></table>`)
	row := doc.Find("tr").First()
	if !isMovieRow(row) {
		t.Error("a detail link plus a parenthesized year should qualify")
	}
}
