// Package output serializes the final chart: a tabular CSV file and a
// human-readable console digest.
package output

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/Ankitzoro/imdb-top250-scraper/models"
)

// WriteCSV writes movies as rank,title,year,rating,url rows ordered by
// rank. Absent year, rating, or url become empty cells.
func WriteCSV(w io.Writer, movies []models.Movie) error {
	sorted := make([]models.Movie, len(movies))
	copy(sorted, movies)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rank < sorted[j].Rank })

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"rank", "title", "year", "rating", "url"}); err != nil {
		return err
	}
	for _, m := range sorted {
		record := []string{strconv.Itoa(m.Rank), m.Title, "", "", m.URL}
		if m.Year > 0 {
			record[2] = strconv.Itoa(m.Year)
		}
		if m.Rating > 0 {
			record[3] = strconv.FormatFloat(m.Rating, 'f', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the chart to a file at path.
func SaveCSV(path string, movies []models.Movie) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, movies); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
