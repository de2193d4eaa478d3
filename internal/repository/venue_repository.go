// Package repository contains data access logic for the site's records.
// This file holds the venue repository. Venues are the anchor of the tour
// data model: every show references exactly one venue, and removing a venue
// removes its shows in the same transaction.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel comparisons

	"github.com/lunarblood/band-site/internal/model"
)

// VenueRepo manages persistence for venues.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the given DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.
func (r *VenueRepo) DB() *sql.DB {
	return r.db
}

const venueColumns = `id, name, city, state, country, address, capacity, website, phone, description, image, created_at, updated_at`

// scanVenue scans one venue row from any row scanner (sql.Row or sql.Rows).
func scanVenue(scan func(dest ...any) error, v *model.Venue) error {
	var (
		state, website, phone, descr, image sql.NullString
		capacity                            sql.NullInt64
	)
	if err := scan(&v.ID, &v.Name, &v.City, &state, &v.Country, &v.Address,
		&capacity, &website, &phone, &descr, &image, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return err
	}
	v.State = nullStr(state)
	v.Website = nullStr(website)
	v.Phone = nullStr(phone)
	v.Description = nullStr(descr)
	v.Image = nullStr(image)
	if capacity.Valid {
		c := uint32(capacity.Int64)
		v.Capacity = &c
	}
	return nil
}

// nullStr converts a NullString into a *string, nil when NULL.
func nullStr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// Create inserts a new venue and assigns the generated ID plus DB-default
// timestamps back to the struct.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const q = `INSERT INTO venues (name, city, state, country, address, capacity, website, phone, description, image)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, v.Name, v.City, v.State, v.Country, v.Address,
		v.Capacity, v.Website, v.Phone, v.Description, v.Image)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	const sel = `SELECT ` + venueColumns + ` FROM venues WHERE id = ?`
	return scanVenue(r.db.QueryRowContext(ctx, sel, v.ID).Scan, v)
}

// GetByID retrieves a venue by its ID.  It returns ErrVenueNotFound if
// there is no matching row.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	const q = `SELECT ` + venueColumns + ` FROM venues WHERE id = ?`
	var v model.Venue
	if err := scanVenue(r.db.QueryRowContext(ctx, q, id).Scan, &v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

// Exists reports whether a venue with the given ID is present.  The wizard
// uses this to validate venue_id references without loading the full row.
func (r *VenueRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ? LIMIT 1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List returns all venues ordered by name together with the number of shows
// booked at each.  When no venues exist it returns an empty slice and nil
// error.
func (r *VenueRepo) List(ctx context.Context) ([]model.Venue, error) {
	const q = `SELECT v.id, v.name, v.city, v.state, v.country, v.address, v.capacity,
                      v.website, v.phone, v.description, v.image, v.created_at, v.updated_at,
                      COUNT(s.id) AS shows_count
               FROM venues v
               LEFT JOIN shows s ON s.venue_id = v.id
               GROUP BY v.id
               ORDER BY v.name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Venue
	for rows.Next() {
		var (
			v                                   model.Venue
			state, website, phone, descr, image sql.NullString
			capacity                            sql.NullInt64
		)
		if err := rows.Scan(&v.ID, &v.Name, &v.City, &state, &v.Country, &v.Address,
			&capacity, &website, &phone, &descr, &image, &v.CreatedAt, &v.UpdatedAt,
			&v.ShowsCount); err != nil {
			return nil, err
		}
		v.State = nullStr(state)
		v.Website = nullStr(website)
		v.Phone = nullStr(phone)
		v.Description = nullStr(descr)
		v.Image = nullStr(image)
		if capacity.Valid {
			c := uint32(capacity.Int64)
			v.Capacity = &c
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Count returns the total number of venues.
func (r *VenueRepo) Count(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM venues`).Scan(&n)
	return n, err
}

// Update overwrites a venue's attributes.  It returns ErrVenueNotFound when
// no row matches and ErrNoChange when the values are identical to the
// current row.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	const q = `UPDATE venues
               SET name = ?, city = ?, state = ?, country = ?, address = ?, capacity = ?,
                   website = ?, phone = ?, description = ?, image = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, v.Name, v.City, v.State, v.Country, v.Address,
		v.Capacity, v.Website, v.Phone, v.Description, v.Image, v.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	// Determine if it's "not found" or simply "no change".
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ? LIMIT 1`, v.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVenueNotFound
		}
		return err
	}
	return ErrNoChange
}

// Delete removes a venue and every show booked at it.  The deletion occurs
// within a transaction so that no partial cleanup happens: either the venue
// and all of its shows disappear or nothing does.  It returns
// ErrVenueNotFound when the venue does not exist.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ? LIMIT 1`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVenueNotFound
		}
		return err
	}
	// Shows reference the venue; remove them first so the venue delete never
	// trips the foreign key even on schemas created without ON DELETE CASCADE.
	if _, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}
