package parse

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Ankitzoro/imdb-top250-scraper/models"
)

// Sweep tries the configured container selectors in priority order and
// extracts from the first one matching more than SweepThreshold elements.
// Elements whose title cannot be determined are discarded.
func (p *Parser) Sweep(doc *goquery.Document) []models.Movie {
	for i, sel := range p.sweep {
		elements := doc.FindMatcher(sel)
		if elements.Length() <= p.cfg.SweepThreshold {
			continue
		}
		slog.Debug("sweep selector matched",
			"selector", p.cfg.Sweep[i], "elements", elements.Length())

		var movies []models.Movie
		elements.Each(func(j int, el *goquery.Selection) {
			m := p.genericMovie(el, j+1)
			if m.Identified() {
				movies = append(movies, m)
			}
		})
		return movies
	}
	return nil
}

// genericMovie extracts a movie from one element of unknown structure,
// trying each field's selector cascade until a hypothesis succeeds.
func (p *Parser) genericMovie(el *goquery.Selection, position int) models.Movie {
	m := models.Movie{Rank: position, Title: models.Unknown}

	for _, sel := range p.title {
		t := textOf(el.FindMatcher(sel).First())
		if t == "" {
			continue
		}
		clean, _, _ := splitRankPrefix(t)
		if usableTitle(clean) {
			m.Title = clean
			break
		}
	}

	for _, sel := range p.year {
		if y, ok := yearFrom(textOf(el.FindMatcher(sel).First())); ok {
			m.Year = y
			break
		}
	}

	for _, sel := range p.rating {
		if r, ok := ratingFrom(textOf(el.FindMatcher(sel).First())); ok {
			m.Rating = r
			break
		}
	}

	if href, ok := el.Find(titleLinkSelector).First().Attr("href"); ok {
		m.URL = p.resolve(href)
	}

	// An explicit rank marker at the head of the element text overrides
	// the positional rank.
	if _, rank, ok := splitRankPrefix(strings.TrimSpace(el.Text())); ok && rank > 0 {
		m.Rank = rank
	}

	return m
}
