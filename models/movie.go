package models

// Unknown is the sentinel value for a text field that could not be
// extracted. Movies whose title is Unknown never survive normalization.
const Unknown = "Unknown"

// MaxMovies caps the size of any final result set.
const MaxMovies = 250

// Movie is one entry of the Top 250 chart. Numeric zero values mean
// "not found": a rank of 0 is reassigned during normalization, a year or
// rating of 0 is serialized as an empty cell.
type Movie struct {
	Rank   int     `json:"rank"`
	Title  string  `json:"title"`
	Year   int     `json:"year,omitempty"`
	Rating float64 `json:"rating,omitempty"`
	URL    string  `json:"url,omitempty"`
}

// Identified reports whether the movie carries a usable title.
func (m Movie) Identified() bool {
	return m.Title != "" && m.Title != Unknown
}

// Details holds the secondary attributes scraped from a movie's detail
// page. Director and Genres fall back to the Unknown sentinel,
// RuntimeMinutes to 0.
type Details struct {
	Director       string `json:"director"`
	RuntimeMinutes int    `json:"runtime_minutes,omitempty"`
	Genres         string `json:"genres"`
}
