package parse

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Ankitzoro/imdb-top250-scraper/models"
)

// maxGenres bounds how many genre labels the enricher keeps.
const maxGenres = 3

// Detail extracts the secondary attributes from a movie detail page using
// the configured cascades. Every field degrades to its sentinel; Detail
// never fails.
func (p *Parser) Detail(doc *goquery.Document) models.Details {
	d := models.Details{Director: models.Unknown, Genres: models.Unknown}

	for _, sel := range p.director {
		if t := textOf(doc.FindMatcher(sel).First()); t != "" {
			d.Director = t
			break
		}
	}

	if m := reRuntime.FindStringSubmatch(doc.Text()); m != nil {
		d.RuntimeMinutes, _ = strconv.Atoi(m[1])
	}

	for _, sel := range p.genres {
		elements := doc.FindMatcher(sel)
		if elements.Length() == 0 {
			continue
		}
		var genres []string
		elements.EachWithBreak(func(i int, g *goquery.Selection) bool {
			if i >= maxGenres {
				return false
			}
			if t := textOf(g); t != "" {
				genres = append(genres, t)
			}
			return true
		})
		if len(genres) > 0 {
			d.Genres = strings.Join(genres, ", ")
		}
		break
	}

	return d
}
