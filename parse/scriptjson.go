package parse

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Ankitzoro/imdb-top250-scraper/models"
)

var (
	reReleaseYear = regexp.MustCompile(`"releaseYear"\s*:\s*(\d{4})`)
	reRatingValue = regexp.MustCompile(`"ratingValue"\s*:\s*(\d+\.?\d*)`)
)

// ScriptJSON scans raw script payloads for title-like JSON keys. Across
// all script blocks the longest extraction wins.
func (p *Parser) ScriptJSON(doc *goquery.Document) []models.Movie {
	var movies []models.Movie
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		text := s.Text()
		if text == "" {
			return
		}
		if !strings.Contains(text, "titleText") &&
			!strings.Contains(strings.ToLower(text), "movies") {
			return
		}
		if found := p.embeddedMovies(text); len(found) > len(movies) {
			movies = found
		}
	})
	return movies
}

// embeddedMovies tries each configured title key pattern in priority order.
// A pattern with more than ScriptThreshold matches is treated as the title
// list; years and ratings are extracted separately and paired by index, so
// a shorter year or rating array simply leaves later entries without that
// field.
func (p *Parser) embeddedMovies(script string) []models.Movie {
	for i, re := range p.titleKeys {
		titles := re.FindAllStringSubmatch(script, -1)
		if len(titles) <= p.cfg.ScriptThreshold {
			continue
		}
		slog.Debug("embedded title key matched",
			"key", p.cfg.ScriptTitleKeys[i], "titles", len(titles))

		years := reReleaseYear.FindAllStringSubmatch(script, -1)
		ratings := reRatingValue.FindAllStringSubmatch(script, -1)

		n := len(titles)
		if n > models.MaxMovies {
			n = models.MaxMovies
		}

		movies := make([]models.Movie, 0, n)
		for j := 0; j < n; j++ {
			m := models.Movie{Rank: j + 1, Title: titles[j][1]}
			if j < len(years) {
				m.Year, _ = strconv.Atoi(years[j][1])
			}
			if j < len(ratings) {
				m.Rating, _ = strconv.ParseFloat(ratings[j][1], 64)
			}
			movies = append(movies, m)
		}
		return movies
	}
	return nil
}
