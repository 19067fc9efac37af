package catalog

// record is the catalog data file shape. Movies carry release_date,
// series carry first_air_date; both may include a precomputed document.
type record struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Name          string   `json:"name"`
	OriginalTitle string   `json:"original_title"`
	OriginalName  string   `json:"original_name"`
	Overview      string   `json:"overview"`
	PosterPath    string   `json:"poster_path"`
	ReleaseDate   string   `json:"release_date"`
	FirstAirDate  string   `json:"first_air_date"`
	Genres        []string `json:"genres"`
	Director      string   `json:"director"`
	Creators      []string `json:"creators"`
	Cast          []string `json:"cast"`
	Language      string   `json:"language"`
	Document      string   `json:"document"`
	ContentType   string   `json:"content_type"`
	Keywords      []string `json:"keywords"`
	Networks      []string `json:"networks"`
}
