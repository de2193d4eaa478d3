// Package repository contains data access logic for the merch shop.  This
// file holds the product repository. The shop and sitemap only ever see
// active products; the dashboard additionally watches low stock across
// active products.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/lunarblood/band-site/internal/model"
)

// ProductRepo manages persistence for shop products.
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepo constructs a ProductRepo with the given DB handle.
func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

const productColumns = `id, name, description, details, price, category, sizes, stock, active, created_at, updated_at`

// scanProduct scans one product row.  The sizes column holds a JSON array
// ("[\"S\",\"M\"]") or NULL; malformed values are treated as no sizes rather
// than failing the whole query.
func scanProduct(scan func(dest ...any) error, p *model.Product) error {
	var (
		details, sizes sql.NullString
	)
	if err := scan(&p.ID, &p.Name, &p.Description, &details, &p.Price, &p.Category,
		&sizes, &p.Stock, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return err
	}
	p.Details = nullStr(details)
	if sizes.Valid && sizes.String != "" {
		_ = json.Unmarshal([]byte(sizes.String), &p.Sizes)
	}
	return nil
}

// ListActive returns every active product ordered by name.
func (r *ProductRepo) ListActive(ctx context.Context) ([]model.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE active = 1 ORDER BY name ASC`
	return r.list(ctx, q)
}

// ListLowStock returns active products with stock at or below the threshold,
// lowest stock first.  limit <= 0 means no limit.
func (r *ProductRepo) ListLowStock(ctx context.Context, threshold, limit int) ([]model.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products
          WHERE active = 1 AND stock <= ?
          ORDER BY stock ASC, name ASC`
	if limit > 0 {
		return r.list(ctx, q+` LIMIT ?`, threshold, limit)
	}
	return r.list(ctx, q, threshold)
}

// GetActiveByID retrieves one active product.  Inactive and unknown ids both
// yield ErrProductNotFound so the shop 404s uniformly.
func (r *ProductRepo) GetActiveByID(ctx context.Context, id uint64) (*model.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE id = ? AND active = 1`
	var p model.Product
	if err := scanProduct(r.db.QueryRowContext(ctx, q, id).Scan, &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// CountActive returns the number of active products.
func (r *ProductRepo) CountActive(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE active = 1`).Scan(&n)
	return n, err
}

// CountLowStock returns the number of active products at or below the
// stock threshold.
func (r *ProductRepo) CountLowStock(ctx context.Context, threshold int) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE active = 1 AND stock <= ?`, threshold).Scan(&n)
	return n, err
}

func (r *ProductRepo) list(ctx context.Context, q string, args ...any) ([]model.Product, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows.Scan, &p); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
