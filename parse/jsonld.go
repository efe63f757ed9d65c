package parse

import (
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/ysmood/gson"

	"github.com/Ankitzoro/imdb-top250-scraper/models"
)

// StructuredData extracts movies from embedded JSON-LD blocks carrying an
// itemListElement array. Scanning short-circuits once the accumulated list
// reaches StructuredEnough items; malformed blocks are skipped.
func (p *Parser) StructuredData(doc *goquery.Document) []models.Movie {
	var movies []models.Movie

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		block := gson.NewFrom(s.Text())
		list := block.Get("itemListElement")
		if list.Val() == nil {
			return true
		}

		for _, entry := range list.Arr() {
			item := entry.Get("item")
			if item.Val() == nil {
				continue
			}

			m := models.Movie{Rank: len(movies) + 1, Title: models.Unknown}
			if pos, ok := jsonInt(entry.Get("position")); ok {
				m.Rank = pos
			}
			if name, ok := jsonStr(item.Get("name")); ok {
				m.Title = name
			}
			if r, ok := jsonFloat(item.Get("aggregateRating").Get("ratingValue")); ok {
				m.Rating = r
			}
			if u, ok := jsonStr(item.Get("url")); ok {
				m.URL = u
			}
			if published, ok := jsonStr(item.Get("datePublished")); ok {
				if y, yok := yearFrom(published); yok {
					m.Year = y
				}
			}
			movies = append(movies, m)
		}

		if len(movies) >= p.cfg.StructuredEnough {
			slog.Debug("structured data good enough", "movies", len(movies))
			return false
		}
		return true
	})

	return movies
}

// jsonStr returns the value as a string, if it is one.
func jsonStr(j gson.JSON) (string, bool) {
	v, ok := j.Val().(string)
	return v, ok && v != ""
}

// jsonFloat returns the value as a float, accepting JSON numbers and
// numeric strings. Anything else is "not found".
func jsonFloat(j gson.JSON) (float64, bool) {
	switch v := j.Val().(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	return 0, false
}

// jsonInt returns the value as an integer via jsonFloat.
func jsonInt(j gson.JSON) (int, bool) {
	f, ok := jsonFloat(j)
	return int(f), ok
}
