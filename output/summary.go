package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Ankitzoro/imdb-top250-scraper/models"
)

// PrintSummary writes a digest of the scraped chart: total count, a
// quality note, the top entries, and simple statistics. Empty input
// prints a short notice.
func PrintSummary(w io.Writer, movies []models.Movie, topN int) {
	if len(movies) == 0 {
		fmt.Fprintln(w, "No movies found")
		return
	}

	divider := strings.Repeat("=", 60)
	fmt.Fprintln(w, divider)
	fmt.Fprintln(w, "SCRAPING RESULTS SUMMARY")
	fmt.Fprintln(w, divider)
	fmt.Fprintf(w, "Total movies scraped: %d\n", len(movies))

	switch {
	case len(movies) >= 200:
		fmt.Fprintln(w, "Successfully got most/all of the Top 250")
	case len(movies) >= 100:
		fmt.Fprintln(w, "Got a good portion of the Top 250")
	default:
		fmt.Fprintln(w, "Limited results; the site may load the rest dynamically")
	}

	sorted := make([]models.Movie, len(movies))
	copy(sorted, movies)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rank < sorted[j].Rank })
	if topN > len(sorted) {
		topN = len(sorted)
	}

	fmt.Fprintf(w, "\nTop %d movies:\n", topN)
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, m := range sorted[:topN] {
		year := models.Unknown
		if m.Year > 0 {
			year = fmt.Sprintf("%d", m.Year)
		}
		rating := "N/A"
		if m.Rating > 0 {
			rating = fmt.Sprintf("%.1f", m.Rating)
		}
		fmt.Fprintf(w, "%3d. %s (%s) - %s/10\n", m.Rank, m.Title, year, rating)
	}

	if avg, ok := averageRating(movies); ok {
		fmt.Fprintf(w, "\nAverage rating: %.2f\n", avg)
	}
	if min, max, ok := yearRange(movies); ok {
		fmt.Fprintf(w, "Year range: %d - %d\n", min, max)
	}
	fmt.Fprintln(w, divider)
}

func averageRating(movies []models.Movie) (float64, bool) {
	var sum float64
	var n int
	for _, m := range movies {
		if m.Rating > 0 {
			sum += m.Rating
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func yearRange(movies []models.Movie) (int, int, bool) {
	min, max := 0, 0
	for _, m := range movies {
		if m.Year <= 0 {
			continue
		}
		if min == 0 || m.Year < min {
			min = m.Year
		}
		if m.Year > max {
			max = m.Year
		}
	}
	return min, max, min != 0
}
