// Package dto defines the request and response bodies of the encyclopedia endpoints.
package dto

// CreateEntryReq is the body of POST /wiki.
type CreateEntryReq struct {
	Title   string `json:"title" form:"title" binding:"required,max=200"`
	Content string `json:"content" form:"content" binding:"required,max=10000"`
}

// EditEntryReq is the body of PUT /wiki/:title.
type EditEntryReq struct {
	Content string `json:"content" form:"content" binding:"required,max=10000"`
}

// EntryRes is an entry with its rendered HTML.
type EntryRes struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	HTML    string `json:"html"`
}

// EntryListRes is the body of GET /wiki.
type EntryListRes struct {
	Entries []string `json:"entries"`
}

// SearchRes is the body of GET /search. Exactly one of Entry or Matches is set.
type SearchRes struct {
	Query   string    `json:"query"`
	Entry   *EntryRes `json:"entry,omitempty"`
	Matches []string  `json:"matches,omitempty"`
}
