package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/get-hunter/hero365-inventory/internal/domain/entity"
	"github.com/get-hunter/hero365-inventory/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, business_id, product_id, type, quantity,
		quantity_before, quantity_after, unit_cost, total_cost, cost_before, cost_after,
		reference_type, reference_id, from_location_id, to_location_id, supplier_id,
		reason, notes, created_by, created_at`

// StockMovementRepo implementación del ledger sobre PostgreSQL (usable con
// pool o tx). Solo INSERT y SELECT: la tabla es append-only.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento. El movimiento ya debe venir validado
// (Validate) por el caso de uso.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, business_id, product_id, type, quantity,
			quantity_before, quantity_after, unit_cost, total_cost, cost_before, cost_after,
			reference_type, reference_id, from_location_id, to_location_id, supplier_id,
			reason, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.BusinessID, m.ProductID, string(m.Type), m.Quantity,
		m.QuantityBefore, m.QuantityAfter, m.UnitCost, m.TotalCost, m.CostBefore, m.CostAfter,
		m.ReferenceType, m.ReferenceID, m.FromLocationID, m.ToLocationID, m.SupplierID,
		m.Reason, m.Notes, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(
		&m.ID, &m.BusinessID, &m.ProductID, &m.Type, &m.Quantity,
		&m.QuantityBefore, &m.QuantityAfter, &m.UnitCost, &m.TotalCost, &m.CostBefore, &m.CostAfter,
		&m.ReferenceType, &m.ReferenceID, &m.FromLocationID, &m.ToLocationID, &m.SupplierID,
		&m.Reason, &m.Notes, &m.CreatedBy, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByID obtiene un movimiento por ID. Devuelve nil sin error si no existe.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByProduct historial paginado de un producto, más reciente primero,
// con rango de fechas opcional.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE product_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at DESC, id DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, productID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListByBusiness movimientos recientes del negocio.
func (r *StockMovementRepo) ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + `
		FROM stock_movements WHERE business_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, businessID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by business: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ReplayByProduct historial completo en orden cronológico ascendente, para
// reconstruir el estado del producto desde cero.
func (r *StockMovementRepo) ReplayByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + `
		FROM stock_movements WHERE product_id = $1
		ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("replay movements: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// UnitsSoldSince unidades vendidas por producto desde la fecha dada.
// Los movimientos SALE llevan quantity negativa; se devuelve en positivo.
func (r *StockMovementRepo) UnitsSoldSince(ctx context.Context, businessID string, productIDs []string, since time.Time) (map[string]decimal.Decimal, error) {
	query := `
		SELECT product_id, COALESCE(SUM(-quantity), 0)
		FROM stock_movements
		WHERE business_id = $1 AND product_id = ANY($2)
		  AND type = $3 AND created_at >= $4
		GROUP BY product_id`
	rows, err := r.q.Query(ctx, query, businessID, productIDs, string(entity.MovementSale), since)
	if err != nil {
		return nil, fmt.Errorf("units sold: %w", err)
	}
	defer rows.Close()

	out := make(map[string]decimal.Decimal, len(productIDs))
	for rows.Next() {
		var productID string
		var units decimal.Decimal
		if err := rows.Scan(&productID, &units); err != nil {
			return nil, fmt.Errorf("scan units sold: %w", err)
		}
		out[productID] = units
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate units sold: %w", err)
	}
	return out, nil
}

func collectMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movements: %w", err)
	}
	return out, nil
}
