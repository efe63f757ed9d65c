package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Ankitzoro/imdb-top250-scraper/models"
)

// Config holds all application configuration.
type Config struct {
	// BaseURL is the site origin relative links are resolved against.
	BaseURL string `mapstructure:"base_url"` // default: "https://www.imdb.com"

	HTTP   HTTPConfig   `mapstructure:"http"`
	Chart  ChartConfig  `mapstructure:"chart"`
	Parse  ParseConfig  `mapstructure:"parse"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
}

// HTTPConfig controls the transport collaborator.
type HTTPConfig struct {
	// Timeout is the per-request deadline.
	Timeout time.Duration `mapstructure:"timeout"` // default: 15s

	// Retries is the number of attempts per URL (exponential backoff between).
	Retries int `mapstructure:"retries"` // default: 3

	// UserAgent is the desktop browser identity presented to the site.
	UserAgent string `mapstructure:"user_agent"`

	// MobileUserAgent replaces UserAgent for mobile-host endpoints.
	MobileUserAgent string `mapstructure:"mobile_user_agent"`

	// CacheEntries is the page cache capacity; 0 disables caching.
	CacheEntries int `mapstructure:"cache_entries"` // default: 64

	// CacheTTL is how long a cached page stays fresh.
	CacheTTL time.Duration `mapstructure:"cache_ttl"` // default: 10m
}

// ChartConfig drives the strategy orchestrator: which endpoints each stage
// visits and how it decides a result is good enough. Lists are ordered;
// the orchestrator tries them exactly in the order given.
type ChartConfig struct {
	// ClassicURLs are the stage-1 variants of the primary listing endpoint.
	ClassicURLs []string `mapstructure:"classic_urls"`

	// PaginationQueries are stage-2 query strings appended to the chart URL.
	PaginationQueries []string `mapstructure:"pagination_queries"`

	// ChartURL is the primary listing endpoint used by stage 2.
	ChartURL string `mapstructure:"chart_url"`

	// AltEndpoints are the stage-3 alternate/mobile endpoints.
	AltEndpoints []string `mapstructure:"alt_endpoints"`

	// GoodEnough is the item count at which later stages are skipped.
	GoodEnough int `mapstructure:"good_enough"` // default: 200

	// ClassicDelay is the politeness pause between attempts in stages 1-2.
	ClassicDelay time.Duration `mapstructure:"classic_delay"` // default: 1s

	// EndpointDelay is the politeness pause between stage-3 attempts.
	EndpointDelay time.Duration `mapstructure:"endpoint_delay"` // default: 2s
}

// ParseConfig holds the selector cascades the parsers try, most specific
// first, so site-structure drift can be patched in configuration without
// touching orchestration logic.
type ParseConfig struct {
	// Sweep lists the container selectors of the generic sweep hypothesis.
	Sweep []string `mapstructure:"sweep"`

	// SweepThreshold is the element count a sweep selector must exceed.
	SweepThreshold int `mapstructure:"sweep_threshold"` // default: 50

	// Title/Year/Rating are the per-field cascades of the generic extractor.
	Title  []string `mapstructure:"title"`
	Year   []string `mapstructure:"year"`
	Rating []string `mapstructure:"rating"`

	// Director/Genres are the detail-page cascades.
	Director []string `mapstructure:"director"`
	Genres   []string `mapstructure:"genres"`

	// ScriptTitleKeys are the JSON key names probed by the embedded-script
	// hypothesis, in priority order.
	ScriptTitleKeys []string `mapstructure:"script_title_keys"`

	// ScriptThreshold is the match count a title key must exceed.
	ScriptThreshold int `mapstructure:"script_threshold"` // default: 50

	// StructuredEnough is the item count at which the JSON-LD hypothesis
	// stops scanning further blocks.
	StructuredEnough int `mapstructure:"structured_enough"` // default: 100
}

// OutputConfig controls the CSV writer and console summary.
type OutputConfig struct {
	File string `mapstructure:"file"`  // default: "imdb_top250_movies.csv"
	TopN int    `mapstructure:"top_n"` // default: 15
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // default: "info"
	Format string `mapstructure:"format"` // "json" or "text"; default: "text"
}

// Default returns the built-in configuration mirroring the structures the
// site is known to serve.
func Default() *Config {
	return &Config{
		BaseURL: "https://www.imdb.com",
		HTTP: HTTPConfig{
			Timeout:         15 * time.Second,
			Retries:         3,
			UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			MobileUserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 14_7_1 like Mac OS X) AppleWebKit/605.1.15",
			CacheEntries:    64,
			CacheTTL:        10 * time.Minute,
		},
		Chart: ChartConfig{
			ClassicURLs: []string{
				"https://www.imdb.com/chart/top/?view=simple",
				"https://www.imdb.com/chart/top/?sort=ir,desc&mode=simple&page=1",
				"https://www.imdb.com/chart/top",
			},
			ChartURL: "https://www.imdb.com/chart/top/",
			PaginationQueries: []string{
				"start=1&count=250",
				"page=1&per_page=250",
				"offset=0&limit=250",
			},
			AltEndpoints: []string{
				"https://m.imdb.com/chart/top/",
				"https://www.imdb.com/chart/top/?ref_=nv_mv_250_6",
				"https://www.imdb.com/chart/top/?view=simple",
				"https://www.imdb.com/search/title/?groups=top_250&sort=user_rating,desc",
			},
			GoodEnough:    200,
			ClassicDelay:  time.Second,
			EndpointDelay: 2 * time.Second,
		},
		Parse: ParseConfig{
			Sweep: []string{
				"li.ipc-metadata-list-summary-item",
				"tr[data-testid]",
				"li.titleColumn",
				".lister-item",
				".cli-item",
			},
			SweepThreshold: 50,
			Title: []string{
				"h3.ipc-title__text",
				"a.titleColumn",
				"td.titleColumn a",
				`a[href*="/title/tt"]`,
				".cli-title a",
			},
			Year: []string{
				".cli-title-metadata-item",
				".secondaryInfo",
				"span.secondaryInfo",
			},
			Rating: []string{
				".ipc-rating-star--rating",
				"strong",
				".ratingColumn strong",
				".cli-rating",
			},
			Director: []string{
				`a[class*="ipc-metadata-list-item__list-content-item--link"]`,
				".credit_summary_item a",
				`[data-testid="title-pc-principal-credit"] a`,
			},
			Genres: []string{
				`[data-testid="genres"] a`,
				`.see-more.inline a[href*="genre"]`,
				`.subtext a[href*="genre"]`,
			},
			ScriptTitleKeys:  []string{"titleText", "primaryText", "title"},
			ScriptThreshold:  50,
			StructuredEnough: 100,
		},
		Output: OutputConfig{
			File: "imdb_top250_movies.csv",
			TopN: 15,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load returns the defaults overlaid with whatever the given viper instance
// has picked up from config file and environment. A nil viper yields the
// plain defaults.
func Load(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if v != nil {
		bindKeys(v)
		if err := v.Unmarshal(cfg); err != nil {
			return nil, models.NewScrapeError(models.ErrCodeInvalidConfig, "unmarshal configuration", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bindKeys registers every configuration key with the viper instance.
// Unmarshal only consults keys viper already knows about, so without an
// explicit binding AutomaticEnv never surfaces environment variables.
func bindKeys(v *viper.Viper) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range []string{
		"base_url",
		"http.timeout",
		"http.retries",
		"http.user_agent",
		"http.mobile_user_agent",
		"http.cache_entries",
		"http.cache_ttl",
		"chart.classic_urls",
		"chart.pagination_queries",
		"chart.chart_url",
		"chart.alt_endpoints",
		"chart.good_enough",
		"chart.classic_delay",
		"chart.endpoint_delay",
		"parse.sweep",
		"parse.sweep_threshold",
		"parse.title",
		"parse.year",
		"parse.rating",
		"parse.director",
		"parse.genres",
		"parse.script_title_keys",
		"parse.script_threshold",
		"parse.structured_enough",
		"output.file",
		"output.top_n",
		"log.level",
		"log.format",
	} {
		_ = v.BindEnv(key)
	}
}

// Validate checks the parts of the configuration whose failure modes are
// confusing at runtime. Selector syntax is validated separately when the
// parser compiles its cascades.
func (c *Config) Validate() error {
	if _, err := url.Parse(c.BaseURL); err != nil {
		return models.NewScrapeError(models.ErrCodeInvalidConfig, "invalid base URL", err)
	}
	if c.HTTP.Retries < 1 {
		return models.NewScrapeError(models.ErrCodeInvalidConfig, "http.retries must be at least 1", nil)
	}
	if c.Chart.GoodEnough < 1 {
		return models.NewScrapeError(models.ErrCodeInvalidConfig, "chart.good_enough must be positive", nil)
	}
	if c.Parse.SweepThreshold < 0 || c.Parse.ScriptThreshold < 0 {
		return models.NewScrapeError(models.ErrCodeInvalidConfig, "parse thresholds must not be negative", nil)
	}
	return nil
}
