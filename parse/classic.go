package parse

import (
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"github.com/Ankitzoro/imdb-top250-scraper/models"
)

// ClassicPage extracts movies the way the classic chart interface lays
// them out: the lister table first, then the modern card list, and finally
// a sweep of every table row in the document gated by the movie-row
// classifier. The first structure that yields anything wins.
func (p *Parser) ClassicPage(doc *goquery.Document) []models.Movie {
	movies := p.classicTable(doc)
	if len(movies) == 0 {
		movies = p.Cards(doc)
	}
	if len(movies) == 0 {
		movies = p.anyRows(doc)
	}
	return movies
}

// classicTable reads the rows of the known lister-list table.
func (p *Parser) classicTable(doc *goquery.Document) []models.Movie {
	tbody := doc.Find("tbody.lister-list").First()
	if tbody.Length() == 0 {
		return nil
	}

	rows := tbody.Find("tr")
	slog.Debug("classic table found", "rows", rows.Length())

	var movies []models.Movie
	rows.Each(func(_ int, row *goquery.Selection) {
		if m, ok := p.classicRow(row); ok {
			movies = append(movies, m)
		}
	})
	return movies
}

// classicRow extracts one movie from a classic table row. A row without a
// title cell is not a movie row.
func (p *Parser) classicRow(row *goquery.Selection) (models.Movie, bool) {
	titleCell := row.Find("td.titleColumn").First()
	if titleCell.Length() == 0 {
		return models.Movie{}, false
	}

	m := models.Movie{Title: models.Unknown}

	// The rating column text carries the rank marker in the classic
	// rendering; the dedicated number column is the fallback.
	if n, ok := digitsFrom(textOf(row.Find("td.ratingColumn").First())); ok {
		m.Rank = n
	}

	link := titleCell.Find("a").First()
	if link.Length() > 0 {
		m.Title = textOf(link)
		if href, ok := link.Attr("href"); ok {
			m.URL = p.resolve(href)
		}
	}

	if y, ok := yearFrom(textOf(titleCell.Find("span.secondaryInfo").First())); ok {
		m.Year = y
	}
	if r, ok := ratingFrom(textOf(row.Find("td.ratingColumn strong").First())); ok {
		m.Rating = r
	}

	if m.Rank == 0 {
		if n, ok := digitsFrom(textOf(row.Find("td.numberColumn").First())); ok {
			m.Rank = n
		}
	}

	return m, true
}

// anyRows scans every table row in the document and keeps the ones the
// movie-row classifier accepts. Rank is assigned by order of acceptance.
func (p *Parser) anyRows(doc *goquery.Document) []models.Movie {
	var movies []models.Movie
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if !isMovieRow(row) {
			return
		}
		if m, ok := p.anyRowMovie(row, len(movies)+1); ok {
			movies = append(movies, m)
		}
	})
	return movies
}

// isMovieRow accepts a row only if it links to a detail page AND carries
// either a rating-like or a year-like fragment.
func isMovieRow(row *goquery.Selection) bool {
	hasTitleLink := false
	if href, ok := row.Find(titleLinkSelector).First().Attr("href"); ok {
		hasTitleLink = reTitleHref.MatchString(href)
	}
	if !hasTitleLink {
		return false
	}

	hasRating := row.Find("strong").Length() > 0 ||
		row.Find("span.ipc-rating-star--rating").Length() > 0
	hasYear := reParenYear.MatchString(row.Text())
	return hasRating || hasYear
}

// anyRowMovie extracts one movie from a generic table row.
func (p *Parser) anyRowMovie(row *goquery.Selection, position int) (models.Movie, bool) {
	link := row.Find(titleLinkSelector).First()
	if link.Length() == 0 {
		return models.Movie{}, false
	}

	m := models.Movie{Rank: position, Title: textOf(link)}

	if y, ok := parenYearFrom(row.Text()); ok {
		m.Year = y
	}

	ratingElem := row.Find("strong").First()
	if ratingElem.Length() == 0 {
		ratingElem = row.Find("span.ipc-rating-star--rating").First()
	}
	if r, ok := ratingFrom(textOf(ratingElem)); ok {
		m.Rating = r
	}

	if href, ok := link.Attr("href"); ok {
		m.URL = p.resolve(href)
	}

	return m, true
}
