// Package parse turns fetched chart documents into candidate movie lists.
//
// Every exported parser is a pure function of its document: it applies one
// structural hypothesis and returns whatever it could extract. An empty
// result means the expected structure is absent, which is a normal outcome,
// not an error. The selector cascades come from configuration so site
// drift can be patched without touching the orchestration logic.
package parse

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/Ankitzoro/imdb-top250-scraper/config"
	"github.com/Ankitzoro/imdb-top250-scraper/models"
)

// Parser holds the compiled selector cascades for every hypothesis.
// It is safe for concurrent use once constructed.
type Parser struct {
	cfg  config.ParseConfig
	base *url.URL

	sweep    []cascadia.Selector
	title    []cascadia.Selector
	year     []cascadia.Selector
	rating   []cascadia.Selector
	director []cascadia.Selector
	genres   []cascadia.Selector

	titleKeys []*regexp.Regexp
}

// New compiles the configured selector cascades. A malformed selector or
// title key is a configuration error and fails construction.
func New(cfg config.ParseConfig, baseURL string) (*Parser, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeInvalidConfig, "invalid base URL", err)
	}

	p := &Parser{cfg: cfg, base: base}

	for _, group := range []struct {
		name string
		raw  []string
		dst  *[]cascadia.Selector
	}{
		{"sweep", cfg.Sweep, &p.sweep},
		{"title", cfg.Title, &p.title},
		{"year", cfg.Year, &p.year},
		{"rating", cfg.Rating, &p.rating},
		{"director", cfg.Director, &p.director},
		{"genres", cfg.Genres, &p.genres},
	} {
		compiled, err := compileAll(group.raw)
		if err != nil {
			return nil, models.NewScrapeError(models.ErrCodeInvalidConfig,
				fmt.Sprintf("bad %s selector", group.name), err)
		}
		*group.dst = compiled
	}

	for _, key := range cfg.ScriptTitleKeys {
		re, err := regexp.Compile(fmt.Sprintf(`"%s"\s*:\s*"([^"]+)"`, regexp.QuoteMeta(key)))
		if err != nil {
			return nil, models.NewScrapeError(models.ErrCodeInvalidConfig,
				fmt.Sprintf("bad script title key %q", key), err)
		}
		p.titleKeys = append(p.titleKeys, re)
	}

	return p, nil
}

func compileAll(selectors []string) ([]cascadia.Selector, error) {
	out := make([]cascadia.Selector, 0, len(selectors))
	for _, s := range selectors {
		sel, err := cascadia.Compile(s)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		out = append(out, sel)
	}
	return out, nil
}

// Document parses a fetched body into a queryable document.
func Document(body []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(body))
}

// AnyPage tries every content hypothesis against an arbitrary chart
// rendering: structured data first, then embedded script JSON, then the
// generic selector sweep. The longest candidate list wins, and a
// structured-data result that already meets the good-enough count is
// returned without trying anything else.
func (p *Parser) AnyPage(doc *goquery.Document) []models.Movie {
	movies := p.StructuredData(doc)
	if len(movies) >= p.cfg.StructuredEnough {
		return movies
	}
	if found := p.ScriptJSON(doc); len(found) > len(movies) {
		movies = found
	}
	if len(movies) < p.cfg.StructuredEnough {
		if found := p.Sweep(doc); len(found) > len(movies) {
			movies = found
		}
	}
	return movies
}
