// Package repository contains data access logic for the listen page.  This
// file holds the album repository. Albums own their tracks; every list
// method hydrates the tracks ordered by track number so callers never need
// a second query.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lunarblood/band-site/internal/model"
)

// AlbumRepo manages persistence for albums and their tracks.
type AlbumRepo struct {
	db *sql.DB
}

// NewAlbumRepo constructs an AlbumRepo with the given DB handle.
func NewAlbumRepo(db *sql.DB) *AlbumRepo {
	return &AlbumRepo{db: db}
}

const albumColumns = `id, title, type, DATE_FORMAT(release_date, '%Y-%m-%d'), description,
                      cover_image, spotify_url, bandcamp_url, apple_music_url, featured,
                      created_at, updated_at`

func scanAlbum(scan func(dest ...any) error, a *model.Album) error {
	var descr, cover, spotify, bandcamp, apple sql.NullString
	if err := scan(&a.ID, &a.Title, &a.Type, &a.ReleaseDate, &descr,
		&cover, &spotify, &bandcamp, &apple, &a.Featured,
		&a.CreatedAt, &a.UpdatedAt); err != nil {
		return err
	}
	a.Description = nullStr(descr)
	a.CoverImage = nullStr(cover)
	a.SpotifyURL = nullStr(spotify)
	a.BandcampURL = nullStr(bandcamp)
	a.AppleMusicURL = nullStr(apple)
	return nil
}

// ListAll returns every album, newest release first, with tracks attached.
func (r *AlbumRepo) ListAll(ctx context.Context) ([]model.Album, error) {
	const q = `SELECT ` + albumColumns + ` FROM albums ORDER BY release_date DESC`
	return r.list(ctx, q)
}

// ListFeatured returns only featured albums, newest release first, with
// tracks attached.  The home page highlights the first of these.
func (r *AlbumRepo) ListFeatured(ctx context.Context) ([]model.Album, error) {
	const q = `SELECT ` + albumColumns + ` FROM albums WHERE featured = 1 ORDER BY release_date DESC`
	return r.list(ctx, q)
}

// GetByID retrieves one album with its tracks.  It returns ErrAlbumNotFound
// if there is no matching row.
func (r *AlbumRepo) GetByID(ctx context.Context, id uint64) (*model.Album, error) {
	const q = `SELECT ` + albumColumns + ` FROM albums WHERE id = ?`
	var a model.Album
	if err := scanAlbum(r.db.QueryRowContext(ctx, q, id).Scan, &a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAlbumNotFound
		}
		return nil, err
	}
	tracks, err := r.tracksFor(ctx, []uint64{a.ID})
	if err != nil {
		return nil, err
	}
	a.Tracks = tracks[a.ID]
	return &a, nil
}

func (r *AlbumRepo) list(ctx context.Context, q string) ([]model.Album, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var albums []model.Album
	var ids []uint64
	for rows.Next() {
		var a model.Album
		if err := scanAlbum(rows.Scan, &a); err != nil {
			return nil, err
		}
		albums = append(albums, a)
		ids = append(ids, a.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(albums) == 0 {
		return albums, nil
	}
	tracks, err := r.tracksFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range albums {
		albums[i].Tracks = tracks[albums[i].ID]
	}
	return albums, nil
}

// tracksFor loads the tracks of the given albums in one query, grouped by
// album ID and ordered by track number.
func (r *AlbumRepo) tracksFor(ctx context.Context, albumIDs []uint64) (map[uint64][]model.Track, error) {
	q := `SELECT id, album_id, title, track_number, duration, audio_file, lyrics
          FROM tracks WHERE album_id IN (`
	args := make([]any, 0, len(albumIDs))
	for i, id := range albumIDs {
		if i > 0 {
			q += ","
		}
		q += "?"
		args = append(args, id)
	}
	q += `) ORDER BY album_id, track_number ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[uint64][]model.Track, len(albumIDs))
	for rows.Next() {
		var (
			t             model.Track
			audio, lyrics sql.NullString
			duration      sql.NullInt64
		)
		if err := rows.Scan(&t.ID, &t.AlbumID, &t.Title, &t.TrackNumber,
			&duration, &audio, &lyrics); err != nil {
			return nil, err
		}
		if duration.Valid {
			t.Duration = uint32(duration.Int64)
		}
		t.AudioFile = nullStr(audio)
		t.Lyrics = nullStr(lyrics)
		out[t.AlbumID] = append(out[t.AlbumID], t)
	}
	return out, rows.Err()
}
