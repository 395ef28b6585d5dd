package catalog

// Anime is one record from the Jikan v4 API (MyAnimeList metadata).
// Read-only from this system's perspective.
type Anime struct {
	MalID        int     `json:"mal_id"`
	Title        string  `json:"title"`
	TitleEnglish string  `json:"title_english,omitempty"`
	Images       Images  `json:"images"`
	Synopsis     string  `json:"synopsis,omitempty"`
	Episodes     int     `json:"episodes,omitempty"`
	Status       string  `json:"status"`
	Airing       bool    `json:"airing"`
	Aired        Aired   `json:"aired"`
	Genres       []Genre `json:"genres"`
	Score        float64 `json:"score,omitempty"`
	Members      int     `json:"members,omitempty"`
}

type Images struct {
	JPG ImageSet `json:"jpg"`
}

type ImageSet struct {
	ImageURL      string `json:"image_url"`
	SmallImageURL string `json:"small_image_url"`
	LargeImageURL string `json:"large_image_url"`
}

type Aired struct {
	From string `json:"from"`
	To   string `json:"to,omitempty"`
}

type Genre struct {
	MalID int    `json:"mal_id"`
	Name  string `json:"name"`
}

type Pagination struct {
	LastVisiblePage int  `json:"last_visible_page"`
	HasNextPage     bool `json:"has_next_page"`
	CurrentPage     int  `json:"current_page"`
	Items           struct {
		Count   int `json:"count"`
		Total   int `json:"total"`
		PerPage int `json:"per_page"`
	} `json:"items"`
}

// ListResponse is the {data: [...], pagination: {...}} envelope.
type ListResponse struct {
	Data       []Anime    `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// SingleResponse is the {data: {...}} envelope for by-id lookups.
type SingleResponse struct {
	Data Anime `json:"data"`
}
