package events

// Catalog event types.
const (
	TypeGenreCleared = "catalog.genre_cleared"
	TypeListReplaced = "catalog.list_replaced"
	TypePageAppended = "catalog.page_appended"
	TypeRedirected   = "view.redirected"
)

// GenreCleared is emitted when a selected genre is not valid for the active
// category. The presentation layer must drop the genre from its address.
type GenreCleared struct {
	BaseEvent
	Category string `json:"category"`
	GenreID  int    `json:"genre_id"`
	Address  string `json:"address"` // address without the genre indicator
}

// ListReplaced is emitted after a new filter loaded its first page.
type ListReplaced struct {
	BaseEvent
	Category   string `json:"category"`
	Mode       string `json:"mode"`
	TotalPages int    `json:"total_pages"`
	Count      int    `json:"count"`
}

// PageAppended is emitted after "load more" appended a page.
type PageAppended struct {
	BaseEvent
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
	Count      int `json:"count"`
}

// Redirected is emitted when a view sends the user elsewhere, e.g. a detail
// page whose id is malformed or unknown.
type Redirected struct {
	BaseEvent
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason"`
}
