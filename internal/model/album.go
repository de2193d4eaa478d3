package model

import "time"

// Album represents a release on the listen page: a full-length album, an EP
// or a single.  Albums own an ordered list of tracks.  This struct
// corresponds to a row in the `albums` table.
//
// Fields:
//
//	ID            – primary key identifier.
//	Title         – release title.
//	Type          – "album", "ep" or "single".
//	ReleaseDate   – release date ("YYYY-MM-DD").
//	Description   – optional liner notes.
//	CoverImage    – optional cover art URL.
//	SpotifyURL    – optional streaming link.
//	BandcampURL   – optional streaming link.
//	AppleMusicURL – optional streaming link.
//	Featured      – whether the release is highlighted on the home page.
//	Tracks        – tracks ordered by track number (filled by list queries).
//	CreatedAt     – creation timestamp.
//	UpdatedAt     – last update timestamp.
type Album struct {
	ID            uint64    `json:"id"`               // albums.id
	Title         string    `json:"title"`            // albums.title
	Type          string    `json:"type"`             // albums.type
	ReleaseDate   string    `json:"release_date"`     // albums.release_date
	Description   *string   `json:"description"`      // albums.description (nullable)
	CoverImage    *string   `json:"cover_image"`      // albums.cover_image (nullable)
	SpotifyURL    *string   `json:"spotify_url"`      // albums.spotify_url (nullable)
	BandcampURL   *string   `json:"bandcamp_url"`     // albums.bandcamp_url (nullable)
	AppleMusicURL *string   `json:"apple_music_url"`  // albums.apple_music_url (nullable)
	Featured      bool      `json:"featured"`         // albums.featured
	Tracks        []Track   `json:"tracks,omitempty"` // joined tracks, not a column
	CreatedAt     time.Time `json:"created_at"`       // albums.created_at
	UpdatedAt     time.Time `json:"updated_at"`       // albums.updated_at
}
