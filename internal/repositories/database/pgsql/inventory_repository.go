package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uniformes-app/backoffice/internal/apperrors"
	"github.com/uniformes-app/backoffice/internal/core/domain"
	portsrepo "github.com/uniformes-app/backoffice/internal/core/ports/repositories"
	"github.com/uniformes-app/backoffice/internal/models"
	"github.com/uniformes-app/backoffice/internal/utils/mapping"
)

const inventoryColumns = `inventory_id, school_id, product_id, on_hand, reserved, low_stock_threshold, created_at, created_by, last_updated_at, last_updated_by`

// pgExecutor abstracts pgxpool.Pool and pgx.Tx so the guarded stock updates
// run identically standalone and inside an order/sale transaction.
type pgExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new repository for inventory data.
func newPgxInventoryRepository(pool DBPool) *PgxInventoryRepository {
	return &PgxInventoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxInventoryRepository implements portsrepo.InventoryRepositoryFacade
var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

func scanInventory(row rowScanner) (models.Inventory, error) {
	var m models.Inventory
	err := row.Scan(
		&m.InventoryID,
		&m.SchoolID,
		&m.ProductID,
		&m.OnHand,
		&m.Reserved,
		&m.LowStockThreshold,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveInventory inserts a new stock row. One row per (school, product).
func (r *PgxInventoryRepository) SaveInventory(ctx context.Context, inventory domain.Inventory) error {
	m := mapping.ToModelInventory(inventory)

	query := `
		INSERT INTO inventory (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.InventoryID,
		m.SchoolID,
		m.ProductID,
		m.OnHand,
		m.Reserved,
		m.LowStockThreshold,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: inventory for product %s at school %s already exists", apperrors.ErrDuplicate, m.ProductID, m.SchoolID)
		}
		return fmt.Errorf("failed to save inventory %s: %w", m.InventoryID, err)
	}
	return nil
}

// FindInventory retrieves the stock row for one product at one school.
func (r *PgxInventoryRepository) FindInventory(ctx context.Context, schoolID string, productID string) (*domain.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE school_id = $1 AND product_id = $2;`

	m, err := scanInventory(r.Pool.QueryRow(ctx, query, schoolID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find inventory for product %s at school %s: %w", productID, schoolID, err)
	}

	d := mapping.ToDomainInventory(m)
	return &d, nil
}

// ListInventoryBySchool retrieves a paginated list of stock rows.
func (r *PgxInventoryRepository) ListInventoryBySchool(ctx context.Context, schoolID string, limit int, offset int) ([]domain.Inventory, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + inventoryColumns + ` FROM inventory
		WHERE school_id = $1
		ORDER BY product_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, schoolID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory for school %s: %w", schoolID, err)
	}
	defer rows.Close()

	items := []domain.Inventory{}
	for rows.Next() {
		m, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory row for school %s: %w", schoolID, err)
		}
		items = append(items, mapping.ToDomainInventory(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating inventory rows for school %s: %w", schoolID, rows.Err())
	}

	return items, nil
}

// guardedStockUpdate runs one stock mutation whose invariant lives in the SQL
// WHERE clause. A zero row count means either the row is missing or the guard
// rejected the change; the caller's guardErr names the latter case. The
// disambiguating read runs on the same executor, so inside an open
// transaction it sees that transaction's writes.
func (r *PgxInventoryRepository) guardedStockUpdate(ctx context.Context, exec pgExecutor, query string, guardErr error, schoolID, productID string, quantity int64, userID string, now time.Time) error {
	cmdTag, err := exec.Exec(ctx, query, schoolID, productID, quantity, now, userID)
	if err != nil {
		return fmt.Errorf("failed stock update for product %s at school %s: %w", productID, schoolID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		var one int
		existsQuery := `SELECT 1 FROM inventory WHERE school_id = $1 AND product_id = $2;`
		if findErr := exec.QueryRow(ctx, existsQuery, schoolID, productID).Scan(&one); findErr != nil {
			if errors.Is(findErr, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("failed to check inventory for product %s at school %s: %w", productID, schoolID, findErr)
		}
		return fmt.Errorf("%w: product %s at school %s", guardErr, productID, schoolID)
	}
	return nil
}

const reserveQuery = `
	UPDATE inventory
	SET reserved = reserved + $3, last_updated_at = $4, last_updated_by = $5
	WHERE school_id = $1 AND product_id = $2 AND on_hand - reserved >= $3;
`

const releaseQuery = `
	UPDATE inventory
	SET reserved = GREATEST(reserved - $3, 0), last_updated_at = $4, last_updated_by = $5
	WHERE school_id = $1 AND product_id = $2;
`

const fulfillQuery = `
	UPDATE inventory
	SET on_hand = on_hand - $3, reserved = reserved - $3, last_updated_at = $4, last_updated_by = $5
	WHERE school_id = $1 AND product_id = $2 AND reserved >= $3 AND on_hand >= $3;
`

// Reserve increments reserved stock; the guard rejects reservations beyond
// available stock.
func (r *PgxInventoryRepository) Reserve(ctx context.Context, schoolID, productID string, quantity int64, userID string, now time.Time) error {
	return r.guardedStockUpdate(ctx, r.Pool, reserveQuery, apperrors.ErrInsufficientStock, schoolID, productID, quantity, userID, now)
}

// Release decrements reserved stock, clamped at zero.
func (r *PgxInventoryRepository) Release(ctx context.Context, schoolID, productID string, quantity int64, userID string, now time.Time) error {
	return r.guardedStockUpdate(ctx, r.Pool, releaseQuery, apperrors.ErrInsufficientStock, schoolID, productID, quantity, userID, now)
}

// Fulfill decrements on-hand and reserved together.
func (r *PgxInventoryRepository) Fulfill(ctx context.Context, schoolID, productID string, quantity int64, userID string, now time.Time) error {
	return r.guardedStockUpdate(ctx, r.Pool, fulfillQuery, apperrors.ErrInsufficientStock, schoolID, productID, quantity, userID, now)
}

// ReserveInTx is Reserve on an open order/sale transaction.
func (r *PgxInventoryRepository) ReserveInTx(ctx context.Context, tx pgx.Tx, schoolID, productID string, quantity int64, userID string, now time.Time) error {
	return r.guardedStockUpdate(ctx, tx, reserveQuery, apperrors.ErrInsufficientStock, schoolID, productID, quantity, userID, now)
}

// ReleaseInTx is Release on an open order/sale transaction.
func (r *PgxInventoryRepository) ReleaseInTx(ctx context.Context, tx pgx.Tx, schoolID, productID string, quantity int64, userID string, now time.Time) error {
	return r.guardedStockUpdate(ctx, tx, releaseQuery, apperrors.ErrInsufficientStock, schoolID, productID, quantity, userID, now)
}

// FulfillInTx is Fulfill on an open order/sale transaction.
func (r *PgxInventoryRepository) FulfillInTx(ctx context.Context, tx pgx.Tx, schoolID, productID string, quantity int64, userID string, now time.Time) error {
	return r.guardedStockUpdate(ctx, tx, fulfillQuery, apperrors.ErrInsufficientStock, schoolID, productID, quantity, userID, now)
}

// AdjustOnHand applies a signed admin correction to on-hand stock. The guard
// keeps on-hand at or above the reserved quantity.
func (r *PgxInventoryRepository) AdjustOnHand(ctx context.Context, schoolID, productID string, delta int64, userID string, now time.Time) error {
	query := `
		UPDATE inventory
		SET on_hand = on_hand + $3, last_updated_at = $4, last_updated_by = $5
		WHERE school_id = $1 AND product_id = $2 AND on_hand + $3 >= reserved;
	`
	return r.guardedStockUpdate(ctx, r.Pool, query, apperrors.ErrNegativeStock, schoolID, productID, delta, userID, now)
}

// SetLowStockThreshold updates the notification threshold.
func (r *PgxInventoryRepository) SetLowStockThreshold(ctx context.Context, schoolID, productID string, threshold int64, userID string, now time.Time) error {
	query := `
		UPDATE inventory
		SET low_stock_threshold = $3, last_updated_at = $4, last_updated_by = $5
		WHERE school_id = $1 AND product_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, schoolID, productID, threshold, now, userID)
	if err != nil {
		return fmt.Errorf("failed to set low stock threshold for product %s at school %s: %w", productID, schoolID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
