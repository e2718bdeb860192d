package models

// SearchResult is one ranked hit.
type SearchResult struct {
	Document *Document `json:"document"`
	// Rank is the 1-based position in the full ranked list.
	Rank int `json:"rank"`
	// Index is the position of the document in the loaded record set.
	Index int `json:"index"`
	// Scores are only filled in when the query asks for an explanation.
	Scores *Scores `json:"scores,omitempty"`
}

// Scores explains a result's position.
type Scores struct {
	Primary   int      `json:"primary"`
	Secondary int      `json:"secondary"`
	Matches   []string `json:"matches"`
}

// PageLink is one entry of the pagination window.
type PageLink struct {
	Number   int  `json:"number"`
	Selected bool `json:"selected"`
	Boundary bool `json:"boundary"`
}

// SearchResponse is the response for a search request.
type SearchResponse struct {
	QueryID    string          `json:"query_id"`
	Query      string          `json:"query"`
	Results    []*SearchResult `json:"results"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageCount  int             `json:"page_count"`
	PerPage    int             `json:"per_page"`
	Pagination []PageLink      `json:"pagination"`
	QueryTime  int64           `json:"query_time_ms"`
}
