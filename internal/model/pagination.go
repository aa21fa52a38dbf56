package model

// Pagination is the page metadata every list endpoint returns.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ListQuery carries the filter, sort, and pagination parameters shared by the
// list screens. Empty fields are omitted from the outgoing request entirely.
type ListQuery struct {
	Page      int
	Limit     int
	Status    string
	Search    string
	SortBy    string
	SortOrder string
}
