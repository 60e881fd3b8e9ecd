package db

// TagFilter is an exact-match pre-filter over a TAG field.
type TagFilter struct {
	Key   string
	Value string
}

// KNNQuery is the input for vector similarity search.
// Scores in the result are cosine similarity, already converted from the
// backend's distance as max(0, 1-distance).
type KNNQuery struct {
	IndexName    string
	Filters      []TagFilter
	Vector       []float32
	K            int
	ReturnFields []string
}

// ListQuery is the input for filtered, sorted listing over an FT index.
type ListQuery struct {
	IndexName    string
	Filters      []TagFilter
	SortBy       string // NUMERIC SORTABLE field, ascending
	Offset       int
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
