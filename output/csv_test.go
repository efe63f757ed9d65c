package output

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Ankitzoro/imdb-top250-scraper/models"
)

func TestWriteCSV(t *testing.T) {
	movies := []models.Movie{
		{Rank: 2, Title: "The Godfather", Year: 1972, Rating: 9.2, URL: "https://www.imdb.com/title/tt0068646/"},
		{Rank: 1, Title: "The Shawshank Redemption", Year: 1994, Rating: 9.3, URL: "https://www.imdb.com/title/tt0111161/"},
		{Rank: 3, Title: "No Metadata"},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, movies); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	want := [][]string{
		{"rank", "title", "year", "rating", "url"},
		{"1", "The Shawshank Redemption", "1994", "9.3", "https://www.imdb.com/title/tt0111161/"},
		{"2", "The Godfather", "1972", "9.2", "https://www.imdb.com/title/tt0068646/"},
		{"3", "No Metadata", "", "", ""},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("records = %v, want %v", records, want)
	}
}

func TestWriteCSV_EmptyChartStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if got := buf.String(); got != "rank,title,year,rating,url\n" {
		t.Errorf("output = %q", got)
	}
}

func TestSaveCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.csv")
	movies := []models.Movie{{Rank: 1, Title: "Casablanca", Year: 1942, Rating: 8.5}}

	if err := SaveCSV(path, movies); err != nil {
		t.Fatalf("SaveCSV: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if !bytes.Contains(data, []byte("Casablanca")) {
		t.Errorf("file content %q missing movie row", data)
	}
}
