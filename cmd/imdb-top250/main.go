// Command imdb-top250 scrapes the IMDb Top 250 chart into a CSV file.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ankitzoro/imdb-top250-scraper/config"
	"github.com/Ankitzoro/imdb-top250-scraper/engine"
	"github.com/Ankitzoro/imdb-top250-scraper/fetch"
	"github.com/Ankitzoro/imdb-top250-scraper/models"
	"github.com/Ankitzoro/imdb-top250-scraper/output"
	"github.com/Ankitzoro/imdb-top250-scraper/parse"
)

var rootCmd = &cobra.Command{
	Use:   "imdb-top250",
	Short: "Scrape the IMDb Top 250 chart into a CSV file",
	Long: `imdb-top250 scrapes the IMDb Top 250 movies list without a browser.

The chart page is unstable and renders differently across the classic,
modern, and mobile interfaces, so the scraper runs a cascade of parsing
strategies against several endpoints and keeps the best result. The final
list is deduplicated, re-ranked, and written as CSV.`,
	RunE:          runScrape,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var detailsCmd = &cobra.Command{
	Use:   "details <movie-url>",
	Short: "Fetch director, runtime, and genres for one movie",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetails,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./imdb-top250.yaml)")
	rootCmd.Flags().StringP("output", "o", "", "CSV output path (overrides config)")
	rootCmd.Flags().Int("top", 0, "how many movies to show in the summary")
	rootCmd.AddCommand(detailsCmd)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	cobra.CheckErr(readConfigFile(viper.GetViper(), cfgFile))
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", used)
	}

	viper.SetEnvPrefix("IMDB_TOP250")
	viper.AutomaticEnv()
}

// readConfigFile loads the config file into v. With the default search
// paths a missing file is fine, but an explicitly named file must exist,
// and a file that fails to parse is always an error.
func readConfigFile(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("imdb-top250")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "imdb-top250"))
		}
	}

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && cfgFile == "" && errors.As(err, &notFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	return nil
}

func runScrape(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.Output.File = out
	}
	if top, _ := cmd.Flags().GetInt("top"); top > 0 {
		cfg.Output.TopN = top
	}
	initLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eng, client, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	client.Warmup(ctx, cfg.BaseURL)

	movies, err := eng.Top250(ctx)
	if err != nil {
		return err
	}

	if len(movies) == 0 {
		fmt.Println("No movie data could be scraped.")
		fmt.Println("The site may be blocking requests or its structure changed.")
		return nil
	}

	if err := output.SaveCSV(cfg.Output.File, movies); err != nil {
		return fmt.Errorf("save CSV: %w", err)
	}
	output.PrintSummary(os.Stdout, movies, cfg.Output.TopN)
	fmt.Printf("Saved %d movies to %s\n", len(movies), cfg.Output.File)
	return nil
}

func runDetails(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	initLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eng, _, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	d := eng.Details(ctx, args[0])
	if err := ctx.Err(); err != nil {
		return err
	}

	runtime := models.Unknown
	if d.RuntimeMinutes > 0 {
		runtime = fmt.Sprintf("%d min", d.RuntimeMinutes)
	}
	fmt.Printf("Director: %s\n", d.Director)
	fmt.Printf("Runtime:  %s\n", runtime)
	fmt.Printf("Genres:   %s\n", d.Genres)
	return nil
}

func buildEngine(cfg *config.Config) (*engine.Engine, *fetch.Client, error) {
	client, err := fetch.New(cfg.HTTP)
	if err != nil {
		return nil, nil, err
	}
	parser, err := parse.New(cfg.Parse, cfg.BaseURL)
	if err != nil {
		return nil, nil, err
	}
	return engine.New(cfg, client, parser), client, nil
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Scraping stopped by user")
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
