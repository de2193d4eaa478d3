package model

import "fmt"

// Track represents one song on an album.  Tracks are ordered within their
// album by TrackNumber.  This struct corresponds to a row in the `tracks`
// table.
//
// Fields:
//
//	ID          – primary key identifier.
//	AlbumID     – album the track belongs to.
//	Title       – track title.
//	TrackNumber – position on the album, starting at 1.
//	Duration    – length in seconds (0 when unknown).
//	AudioFile   – optional URL of a streamable audio file.
//	Lyrics      – optional lyrics text.
type Track struct {
	ID          uint64  `json:"id"`           // tracks.id
	AlbumID     uint64  `json:"album_id"`     // tracks.album_id
	Title       string  `json:"title"`        // tracks.title
	TrackNumber uint32  `json:"track_number"` // tracks.track_number
	Duration    uint32  `json:"duration"`     // tracks.duration (seconds)
	AudioFile   *string `json:"audio_file"`   // tracks.audio_file (nullable)
	Lyrics      *string `json:"lyrics"`       // tracks.lyrics (nullable)
}

// FormattedDuration renders the track length as m:ss for display, e.g.
// "4:07".  Unknown durations render as "0:00".
func (t Track) FormattedDuration() string {
	if t.Duration == 0 {
		return "0:00"
	}
	return fmt.Sprintf("%d:%02d", t.Duration/60, t.Duration%60)
}
