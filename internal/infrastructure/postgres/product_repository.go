package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/get-hunter/hero365-inventory/internal/domain"
	"github.com/get-hunter/hero365-inventory/internal/domain/entity"
	"github.com/get-hunter/hero365-inventory/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, business_id, sku, name, description, category,
		quantity_on_hand, quantity_reserved, unit_cost, average_cost, costing_method,
		reorder_point, reorder_quantity, minimum_quantity, maximum_quantity,
		primary_supplier_id, track_inventory, created_at, updated_at, deleted_at`

// ProductRepo implementación de ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.BusinessID, &p.SKU, &p.Name, &p.Description, &p.Category,
		&p.QuantityOnHand, &p.QuantityReserved, &p.UnitCost, &p.AverageCost, &p.CostingMethod,
		&p.ReorderPoint, &p.ReorderQuantity, &p.MinimumQuantity, &p.MaximumQuantity,
		&p.PrimarySupplierID, &p.TrackInventory, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un producto nuevo.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, business_id, sku, name, description, category,
			quantity_on_hand, quantity_reserved, unit_cost, average_cost, costing_method,
			reorder_point, reorder_quantity, minimum_quantity, maximum_quantity,
			primary_supplier_id, track_inventory, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.BusinessID, p.SKU, p.Name, p.Description, p.Category,
		p.QuantityOnHand, p.QuantityReserved, p.UnitCost, p.AverageCost, string(p.CostingMethod),
		p.ReorderPoint, p.ReorderQuantity, p.MinimumQuantity, p.MaximumQuantity,
		p.PrimarySupplierID, p.TrackInventory, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve nil sin error si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByIDForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
// Serializa las mutaciones concurrentes sobre el mismo producto.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// GetByBusinessAndSKU obtiene un producto por negocio y SKU (activos).
func (r *ProductRepo) GetByBusinessAndSKU(ctx context.Context, businessID, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products WHERE business_id = $1 AND sku = $2 AND deleted_at IS NULL`
	p, err := scanProduct(r.q.QueryRow(ctx, query, businessID, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// ListByBusiness lista productos activos del negocio.
func (r *ProductRepo) ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products WHERE business_id = $1 AND deleted_at IS NULL
		ORDER BY sku LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, businessID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// Update actualiza campos descriptivos. Las cantidades, costos y umbrales
// tienen sus propios métodos: aquí nunca se tocan.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, category = $4,
			primary_supplier_id = $5, updated_at = $6
		WHERE id = $1 AND deleted_at IS NULL`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Category, p.PrimarySupplierID, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantities escribe on-hand y reservado. Solo se llama dentro de la
// transacción del motor, con la fila ya bloqueada.
func (r *ProductRepo) UpdateQuantities(ctx context.Context, productID string, onHand, reserved decimal.Decimal) error {
	query := `
		UPDATE products SET quantity_on_hand = $2, quantity_reserved = $3, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, productID, onHand, reserved)
	if err != nil {
		return fmt.Errorf("update quantities: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateCost escribe el último costo de transacción y el promedio ponderado.
func (r *ProductRepo) UpdateCost(ctx context.Context, productID string, unitCost, averageCost decimal.Decimal) error {
	query := `
		UPDATE products SET unit_cost = $2, average_cost = $3, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, productID, unitCost, averageCost)
	if err != nil {
		return fmt.Errorf("update cost: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateReorderParameters escribe los umbrales de reorden (ya validados).
func (r *ProductRepo) UpdateReorderParameters(ctx context.Context, productID string, reorderPoint, reorderQty, minQty, maxQty decimal.Decimal) error {
	query := `
		UPDATE products SET reorder_point = $2, reorder_quantity = $3,
			minimum_quantity = $4, maximum_quantity = $5, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`
	cmd, err := r.q.Exec(ctx, query, productID, reorderPoint, reorderQty, minQty, maxQty)
	if err != nil {
		return fmt.Errorf("update reorder parameters: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetProductsNeedingReorder productos con inventario habilitado cuyo
// disponible (on_hand - reserved) está en o bajo su punto de reorden,
// ordenados por mayor déficit primero.
func (r *ProductRepo) GetProductsNeedingReorder(ctx context.Context, businessID string, filter repository.ReorderFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE business_id = $1 AND deleted_at IS NULL AND track_inventory
		  AND quantity_on_hand - quantity_reserved <= reorder_point
		  AND ($2 = '' OR category = $2)
		  AND ($3 = '' OR primary_supplier_id = $3)
		ORDER BY reorder_point - (quantity_on_hand - quantity_reserved) DESC`
	rows, err := r.q.Query(ctx, query, businessID, filter.Category, filter.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("products needing reorder: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// GetByIDs obtiene un conjunto de productos activos del negocio.
func (r *ProductRepo) GetByIDs(ctx context.Context, businessID string, ids []string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products WHERE business_id = $1 AND id = ANY($2) AND deleted_at IS NULL`
	rows, err := r.q.Query(ctx, query, businessID, ids)
	if err != nil {
		return nil, fmt.Errorf("get products by ids: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// SoftDelete borrado lógico: conserva la fila para el ledger.
func (r *ProductRepo) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE products SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`
	cmd, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return out, nil
}
