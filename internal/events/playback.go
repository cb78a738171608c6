package events

// Playback event types.
const (
	TypePositionSaved  = "playback.position_saved"
	TypeSourceResolved = "playback.source_resolved"
)

// PositionSaved is emitted when the resume marker of a series is written.
type PositionSaved struct {
	BaseEvent
	SeriesID int64 `json:"series_id"`
	Season   int   `json:"season"`
	Episode  int   `json:"episode"`
}

// SourceResolved is emitted when the player surface gets a new viewing URL.
type SourceResolved struct {
	BaseEvent
	Server  int    `json:"server"`
	URL     string `json:"url"`
	Season  int    `json:"season,omitempty"`
	Episode int    `json:"episode,omitempty"`
}
