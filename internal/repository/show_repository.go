// Package repository contains data access logic for Show domain operations.
// A Show is one booked gig at a venue. Dates and times travel through the
// repository in their wire formats ("2006-01-02" and "15:04"), which is also
// how the date comparisons in the upcoming queries are expressed.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel comparisons

	"github.com/lunarblood/band-site/internal/model"
)

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// showColumns selects the show row with date and time pre-formatted into
// the wire formats so no further conversion is needed.
const showColumns = `s.id, s.venue_id, DATE_FORMAT(s.date, '%Y-%m-%d'), TIME_FORMAT(s.time, '%H:%i'),
                     s.status, s.ticket_url, s.price, s.description, s.created_at, s.updated_at`

// scanShow scans one show row, converting nullable columns to pointers.
func scanShow(scan func(dest ...any) error, s *model.Show) error {
	var (
		ticketURL, descr sql.NullString
		price            sql.NullFloat64
	)
	if err := scan(&s.ID, &s.VenueID, &s.Date, &s.Time, &s.Status,
		&ticketURL, &price, &descr, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return err
	}
	s.TicketURL = nullStr(ticketURL)
	s.Description = nullStr(descr)
	if price.Valid {
		p := price.Float64
		s.Price = &p
	}
	return nil
}

// Create inserts a new show and populates the generated ID and DB-default
// timestamps on the struct.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	const q = `INSERT INTO shows (venue_id, date, time, status, ticket_url, price, description)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.VenueID, s.Date, s.Time, s.Status,
		s.TicketURL, s.Price, s.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	const sel = `SELECT ` + showColumns + ` FROM shows s WHERE s.id = ?`
	return scanShow(r.db.QueryRowContext(ctx, sel, s.ID).Scan, s)
}

// GetByID retrieves a show together with its venue.  It returns
// ErrShowNotFound if there is no matching row.
func (r *ShowRepo) GetByID(ctx context.Context, id uint64) (*model.Show, error) {
	const q = `SELECT ` + showColumns + `,
                      v.id, v.name, v.city, v.state, v.country, v.address, v.capacity,
                      v.website, v.phone, v.description, v.image, v.created_at, v.updated_at
               FROM shows s
               JOIN venues v ON v.id = s.venue_id
               WHERE s.id = ?`
	var (
		s                                    model.Show
		v                                    model.Venue
		ticketURL, descr                     sql.NullString
		price                                sql.NullFloat64
		state, website, phone, vdescr, image sql.NullString
		capacity                             sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.VenueID, &s.Date, &s.Time, &s.Status, &ticketURL, &price, &descr,
		&s.CreatedAt, &s.UpdatedAt,
		&v.ID, &v.Name, &v.City, &state, &v.Country, &v.Address, &capacity,
		&website, &phone, &vdescr, &image, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	s.TicketURL = nullStr(ticketURL)
	s.Description = nullStr(descr)
	if price.Valid {
		p := price.Float64
		s.Price = &p
	}
	v.State = nullStr(state)
	v.Website = nullStr(website)
	v.Phone = nullStr(phone)
	v.Description = nullStr(vdescr)
	v.Image = nullStr(image)
	if capacity.Valid {
		c := uint32(capacity.Int64)
		v.Capacity = &c
	}
	s.Venue = &v
	return &s, nil
}

// listQuery runs a show query expected to return showColumns plus the
// venue's name, city and state, and collects the rows.
func (r *ShowRepo) listQuery(ctx context.Context, q string, args ...any) ([]model.Show, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Show
	for rows.Next() {
		var (
			s                model.Show
			v                model.Venue
			ticketURL, descr sql.NullString
			price            sql.NullFloat64
			state            sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.VenueID, &s.Date, &s.Time, &s.Status,
			&ticketURL, &price, &descr, &s.CreatedAt, &s.UpdatedAt,
			&v.ID, &v.Name, &v.City, &state); err != nil {
			return nil, err
		}
		s.TicketURL = nullStr(ticketURL)
		s.Description = nullStr(descr)
		if price.Valid {
			p := price.Float64
			s.Price = &p
		}
		v.State = nullStr(state)
		s.Venue = &v
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListAll returns every show with its venue, most recent date first.  When
// no shows exist it returns an empty slice and nil error.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.Show, error) {
	const q = `SELECT ` + showColumns + `, v.id, v.name, v.city, v.state
               FROM shows s
               JOIN venues v ON v.id = s.venue_id
               ORDER BY s.date DESC, s.time DESC`
	return r.listQuery(ctx, q)
}

// ListUpcoming returns shows whose date is today or later, soonest first.
// limit <= 0 means no limit.  Used by the tour page and the dashboard.
func (r *ShowRepo) ListUpcoming(ctx context.Context, limit int) ([]model.Show, error) {
	q := `SELECT ` + showColumns + `, v.id, v.name, v.city, v.state
          FROM shows s
          JOIN venues v ON v.id = s.venue_id
          WHERE s.date >= CURDATE()
          ORDER BY s.date ASC, s.time ASC`
	if limit > 0 {
		return r.listQuery(ctx, q+` LIMIT ?`, limit)
	}
	return r.listQuery(ctx, q)
}

// ListByVenue returns the shows booked at one venue, most recent date
// first.  The venue detail page uses this.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.Show, error) {
	const q = `SELECT ` + showColumns + `, v.id, v.name, v.city, v.state
               FROM shows s
               JOIN venues v ON v.id = s.venue_id
               WHERE s.venue_id = ?
               ORDER BY s.date DESC, s.time DESC`
	return r.listQuery(ctx, q, venueID)
}

// Count returns the total number of shows.
func (r *ShowRepo) Count(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM shows`).Scan(&n)
	return n, err
}

// CountUpcoming returns the number of shows dated today or later.
func (r *ShowRepo) CountUpcoming(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM shows WHERE date >= CURDATE()`).Scan(&n)
	return n, err
}

// Update overwrites a show's attributes.  It returns ErrShowNotFound when no
// row matches the ID.
func (r *ShowRepo) Update(ctx context.Context, s *model.Show) error {
	const q = `UPDATE shows
               SET venue_id = ?, date = ?, time = ?, status = ?, ticket_url = ?, price = ?,
                   description = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, s.VenueID, s.Date, s.Time, s.Status,
		s.TicketURL, s.Price, s.Description, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM shows WHERE id = ? LIMIT 1`, s.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrShowNotFound
		}
		return err
	}
	return ErrNoChange
}

// Delete removes a show.  It returns ErrShowNotFound when nothing was
// deleted.
func (r *ShowRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shows WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrShowNotFound
	}
	return nil
}
