package model

// RelayResult is one web result in the relay wire format
type RelayResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// RelayResponse is the relay's search response
type RelayResponse struct {
	Success bool          `json:"success"`
	Query   string        `json:"query,omitempty"`
	Results []RelayResult `json:"results"`
	Count   int           `json:"count"`
	Error   string        `json:"error,omitempty"`
}
