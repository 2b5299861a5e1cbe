package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/get-hunter/hero365-inventory/internal/domain/entity"
	"github.com/get-hunter/hero365-inventory/internal/domain/repository"
)

var _ repository.LocationStockRepository = (*LocationStockRepo)(nil)

// LocationStockRepo implementación de LocationStockRepository sobre
// PostgreSQL (usable con pool o tx).
type LocationStockRepo struct {
	q Querier
}

// NewLocationStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationStockRepository(q Querier) *LocationStockRepo {
	return &LocationStockRepo{q: q}
}

// Get obtiene el stock de un producto en una ubicación. Sin fila devuelve
// un registro en cero para simplificar a los callers.
func (r *LocationStockRepo) Get(ctx context.Context, productID, locationID string) (*entity.LocationStock, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM location_stock WHERE product_id = $1 AND location_id = $2`
	var s entity.LocationStock
	err := r.q.QueryRow(ctx, query, productID, locationID).Scan(
		&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.LocationStock{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get location stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el stock bloqueando la fila (SELECT FOR UPDATE).
func (r *LocationStockRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.LocationStock, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM location_stock WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`
	var s entity.LocationStock
	err := r.q.QueryRow(ctx, query, productID, locationID).Scan(
		&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.LocationStock{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get location stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad (por producto y ubicación).
func (r *LocationStockRepo) Upsert(ctx context.Context, stock *entity.LocationStock) error {
	query := `
		INSERT INTO location_stock (product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(ctx, query, stock.ProductID, stock.LocationID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert location stock: %w", err)
	}
	return nil
}

// ListByProduct stock del producto en todas sus ubicaciones.
func (r *LocationStockRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.LocationStock, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM location_stock WHERE product_id = $1
		ORDER BY location_id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list location stock: %w", err)
	}
	defer rows.Close()

	var out []*entity.LocationStock
	for rows.Next() {
		var s entity.LocationStock
		if err := rows.Scan(&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location stock: %w", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate location stock: %w", err)
	}
	return out, nil
}
