// Package engine coordinates the staged scraping strategy: stage 1 walks
// the classic interface variants, stage 2 tries pagination parameters, and
// stage 3 falls back to alternate and mobile endpoints with the full
// multi-hypothesis parser. Each stage only runs while the running-best
// candidate list is still below the good-enough threshold, and within a
// stage the longest list wins.
package engine

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/Ankitzoro/imdb-top250-scraper/config"
	"github.com/Ankitzoro/imdb-top250-scraper/models"
	"github.com/Ankitzoro/imdb-top250-scraper/parse"
)

// Fetcher is the transport collaborator. It already handles retries,
// backoff, and timeouts; the engine treats any returned error as a soft
// miss and proceeds to the next attempt.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error)
}

// Engine runs candidate endpoints through the page parsers one at a time,
// strictly sequentially, and keeps the longest candidate list observed.
type Engine struct {
	chart    config.ChartConfig
	mobileUA string
	fetcher  Fetcher
	parser   *parse.Parser
}

// New creates an Engine over the given transport and parser.
func New(cfg *config.Config, fetcher Fetcher, parser *parse.Parser) *Engine {
	return &Engine{
		chart:    cfg.Chart,
		mobileUA: cfg.HTTP.MobileUserAgent,
		fetcher:  fetcher,
		parser:   parser,
	}
}

// Top250 runs the three-stage strategy and returns the normalized chart.
// It fails only when ctx is cancelled; a run where every hypothesis came
// up empty returns an empty result and no error, leaving user messaging to
// the caller.
func (e *Engine) Top250(ctx context.Context) ([]models.Movie, error) {
	slog.Info("stage 1: classic interface variants", "urls", len(e.chart.ClassicURLs))
	best, err := e.runStage(ctx, nil, e.chart.ClassicURLs, e.chart.ClassicDelay, e.parser.ClassicPage)
	if err != nil {
		return nil, err
	}

	if len(best) < e.chart.GoodEnough {
		slog.Info("stage 2: pagination variants", "queries", len(e.chart.PaginationQueries))
		urls := make([]string, 0, len(e.chart.PaginationQueries))
		for _, q := range e.chart.PaginationQueries {
			urls = append(urls, e.chart.ChartURL+"?"+q)
		}
		found, err := e.runStage(ctx, best, urls, e.chart.ClassicDelay, e.parser.ClassicPage)
		if err != nil {
			return nil, err
		}
		best = found
	}

	if len(best) < e.chart.GoodEnough {
		slog.Info("stage 3: alternate endpoints", "urls", len(e.chart.AltEndpoints))
		found, err := e.runStage(ctx, best, e.chart.AltEndpoints, e.chart.EndpointDelay, e.parser.AnyPage)
		if err != nil {
			return nil, err
		}
		best = found
	}

	slog.Info("scraping finished", "raw", len(best))
	return Normalize(best), nil
}

// runStage tries each URL in order, pacing attempts with the politeness
// delay, and returns the longest candidate list seen including the
// incoming running best.
func (e *Engine) runStage(ctx context.Context, best []models.Movie, urls []string,
	delay time.Duration, extract func(*goquery.Document) []models.Movie) ([]models.Movie, error) {

	limiter := rate.NewLimiter(rate.Every(delay), 1)
	for _, u := range urls {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}
		movies := e.attempt(ctx, u, extract)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(movies) > len(best) {
			best = movies
			slog.Info("running best updated", "url", u, "movies", len(best))
		}
	}
	return best, nil
}

// attempt fetches and parses one URL. Every failure along the way is a
// soft miss yielding an empty candidate list.
func (e *Engine) attempt(ctx context.Context, rawURL string, extract func(*goquery.Document) []models.Movie) []models.Movie {
	body, err := e.fetcher.Fetch(ctx, rawURL, e.headersFor(rawURL))
	if err != nil {
		slog.Warn("endpoint missed", "url", rawURL, "error", err)
		return nil
	}

	doc, err := parse.Document(body)
	if err != nil {
		slog.Warn("document parse failed", "url", rawURL, "error", err)
		return nil
	}

	movies := extract(doc)
	slog.Debug("endpoint parsed", "url", rawURL, "movies", len(movies))
	return movies
}

// headersFor returns the mobile identity for mobile-host endpoints and
// nothing extra otherwise.
func (e *Engine) headersFor(rawURL string) map[string]string {
	u, err := url.Parse(rawURL)
	if err != nil || !strings.HasPrefix(u.Hostname(), "m.") {
		return nil
	}
	return map[string]string{"User-Agent": e.mobileUA}
}

// Details fetches one movie's detail page and extracts the secondary
// attributes. Every failure degrades to sentinel values; Details never
// fails.
func (e *Engine) Details(ctx context.Context, movieURL string) models.Details {
	missing := models.Details{Director: models.Unknown, Genres: models.Unknown}

	body, err := e.fetcher.Fetch(ctx, movieURL, nil)
	if err != nil {
		slog.Warn("detail page missed", "url", movieURL, "error", err)
		return missing
	}
	doc, err := parse.Document(body)
	if err != nil {
		slog.Warn("detail page parse failed", "url", movieURL, "error", err)
		return missing
	}
	return e.parser.Detail(doc)
}
