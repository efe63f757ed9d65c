package parse

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/Ankitzoro/imdb-top250-scraper/models"
)

// Cards extracts movies from the modern card-list rendering. Rank is the
// card's position unless the title text carries an explicit rank prefix.
func (p *Parser) Cards(doc *goquery.Document) []models.Movie {
	var movies []models.Movie
	doc.Find("li.ipc-metadata-list-summary-item").Each(func(i int, card *goquery.Selection) {
		movies = append(movies, p.cardMovie(card, i+1))
	})
	return movies
}

func (p *Parser) cardMovie(card *goquery.Selection, position int) models.Movie {
	m := models.Movie{Rank: position, Title: models.Unknown}

	if t := textOf(card.Find("h3.ipc-title__text").First()); t != "" {
		title, rank, hasPrefix := splitRankPrefix(t)
		m.Title = title
		if hasPrefix && rank > 0 {
			m.Rank = rank
		}
	}

	if y, ok := yearFrom(textOf(card.Find("span.cli-title-metadata-item").First())); ok {
		m.Year = y
	}
	if r, ok := ratingFrom(textOf(card.Find("span.ipc-rating-star--rating").First())); ok {
		m.Rating = r
	}
	if href, ok := card.Find("a.ipc-title-link-wrapper").First().Attr("href"); ok {
		m.URL = p.resolve(href)
	}

	return m
}
