package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/uniformes-app/backoffice/internal/apperrors"
	"github.com/uniformes-app/backoffice/internal/core/domain"
	portsrepo "github.com/uniformes-app/backoffice/internal/core/ports/repositories"
	"github.com/uniformes-app/backoffice/internal/models"
	"github.com/uniformes-app/backoffice/internal/utils/mapping"
	"github.com/uniformes-app/backoffice/internal/utils/pagination"
)

const saleColumns = `sale_id, school_id, client_name, status, total, amount_paid, created_at, created_by, last_updated_at, last_updated_by`

const saleItemColumns = `sale_item_id, sale_id, product_id, quantity, unit_price, reserved_from_stock, quantity_reserved`

type PgxSaleRepository struct {
	BaseRepository
	inventoryRepo portsrepo.InventoryRepositoryFacade
}

// newPgxSaleRepository creates a new repository for sale data.
func newPgxSaleRepository(pool DBPool, inventoryRepo portsrepo.InventoryRepositoryFacade) *PgxSaleRepository {
	return &PgxSaleRepository{
		BaseRepository: BaseRepository{Pool: pool},
		inventoryRepo:  inventoryRepo,
	}
}

// Ensure PgxSaleRepository implements portsrepo.SaleRepositoryFacade
var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

func scanSale(row rowScanner) (models.Sale, error) {
	var m models.Sale
	err := row.Scan(
		&m.SaleID,
		&m.SchoolID,
		&m.ClientName,
		&m.Status,
		&m.Total,
		&m.AmountPaid,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveSale persists the sale and its items and reserves stock for every line.
// Sales always come from stock, so any short line rolls the creation back.
func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelSale(sale)
	saleQuery := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, saleQuery,
		m.SaleID,
		m.SchoolID,
		m.ClientName,
		m.Status,
		m.Total,
		m.AmountPaid,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sale %s: %w", m.SaleID, err)
	}

	itemQuery := `
		INSERT INTO sale_items (` + saleItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, item := range sale.Items {
		if err := r.inventoryRepo.ReserveInTx(ctx, tx, sale.SchoolID, item.ProductID, item.Quantity, sale.CreatedBy, sale.CreatedAt); err != nil {
			return fmt.Errorf("sale %s: %w", sale.SaleID, err)
		}
		item.ReservedFromStock = true
		item.QuantityReserved = item.Quantity

		mi := mapping.ToModelSaleItem(item)
		_, err = tx.Exec(ctx, itemQuery,
			mi.SaleItemID,
			mi.SaleID,
			mi.ProductID,
			mi.Quantity,
			mi.UnitPrice,
			mi.ReservedFromStock,
			mi.QuantityReserved,
		)
		if err != nil {
			return fmt.Errorf("failed to insert sale item %s: %w", mi.SaleItemID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxSaleRepository) findSaleItems(ctx context.Context, saleID string) ([]domain.SaleItem, error) {
	query := `SELECT ` + saleItemColumns + ` FROM sale_items WHERE sale_id = $1 ORDER BY sale_item_id;`

	rows, err := r.Pool.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for sale %s: %w", saleID, err)
	}
	defer rows.Close()

	items := []domain.SaleItem{}
	for rows.Next() {
		var m models.SaleItem
		if err := rows.Scan(&m.SaleItemID, &m.SaleID, &m.ProductID, &m.Quantity, &m.UnitPrice, &m.ReservedFromStock, &m.QuantityReserved); err != nil {
			return nil, fmt.Errorf("failed to scan item row for sale %s: %w", saleID, err)
		}
		items = append(items, mapping.ToDomainSaleItem(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating item rows for sale %s: %w", saleID, rows.Err())
	}
	return items, nil
}

// FindSaleByID retrieves a sale with its items.
func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE sale_id = $1;`

	m, err := scanSale(r.Pool.QueryRow(ctx, query, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sale by ID %s: %w", saleID, err)
	}

	d := mapping.ToDomainSale(m)
	d.Items, err = r.findSaleItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListSalesBySchool retrieves a token-paginated list of sales with their
// items, newest first.
func (r *PgxSaleRepository) ListSalesBySchool(ctx context.Context, schoolID string, limit int, nextToken *string) ([]domain.Sale, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	baseQuery := `SELECT ` + saleColumns + ` FROM sales WHERE school_id = $1`
	args := []any{schoolID}

	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		createdAt, err := time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		baseQuery += ` AND (created_at, sale_id) < ($2, $3)`
		args = append(args, createdAt, fields[1])
	}

	baseQuery += fmt.Sprintf(` ORDER BY created_at DESC, sale_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, baseQuery, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query sales for school %s: %w", schoolID, err)
	}
	defer rows.Close()

	sales := []domain.Sale{}
	for rows.Next() {
		m, err := scanSale(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan sale row for school %s: %w", schoolID, err)
		}
		sales = append(sales, mapping.ToDomainSale(m))
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating sale rows for school %s: %w", schoolID, rows.Err())
	}

	var token *string
	if len(sales) > limit {
		sales = sales[:limit]
		last := sales[len(sales)-1]
		t := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.SaleID)
		token = &t
	}

	for i := range sales {
		sales[i].Items, err = r.findSaleItems(ctx, sales[i].SaleID)
		if err != nil {
			return nil, nil, err
		}
	}

	return sales, token, nil
}

func updateSaleStatusInTx(ctx context.Context, tx pgx.Tx, saleID string, status domain.SaleStatus, userID string, now time.Time) error {
	query := `
		UPDATE sales
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE sale_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, saleID, string(status), now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of sale %s: %w", saleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CancelSale marks the sale cancelled and releases exactly the recorded
// quantity_reserved of every item, in one database transaction.
func (r *PgxSaleRepository) CancelSale(ctx context.Context, sale domain.Sale, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := updateSaleStatusInTx(ctx, tx, sale.SaleID, domain.SaleCancelled, userID, now); err != nil {
		return err
	}
	for _, item := range sale.Items {
		if item.QuantityReserved > 0 {
			if err := r.inventoryRepo.ReleaseInTx(ctx, tx, sale.SchoolID, item.ProductID, item.QuantityReserved, userID, now); err != nil {
				return fmt.Errorf("sale %s: %w", sale.SaleID, err)
			}
		}
	}

	return r.Commit(ctx, tx)
}

// CompleteSale marks the sale completed and fulfills the recorded
// reservations, in one database transaction.
func (r *PgxSaleRepository) CompleteSale(ctx context.Context, sale domain.Sale, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := updateSaleStatusInTx(ctx, tx, sale.SaleID, domain.SaleCompleted, userID, now); err != nil {
		return err
	}
	for _, item := range sale.Items {
		if item.QuantityReserved > 0 {
			if err := r.inventoryRepo.FulfillInTx(ctx, tx, sale.SchoolID, item.ProductID, item.QuantityReserved, userID, now); err != nil {
				return fmt.Errorf("sale %s: %w", sale.SaleID, err)
			}
		}
	}

	return r.Commit(ctx, tx)
}

// UpdateSaleAmountPaidInTx records cumulative payments against the sale on
// an open transaction, so the bump commits together with the payment itself.
func (r *PgxSaleRepository) UpdateSaleAmountPaidInTx(ctx context.Context, tx pgx.Tx, saleID string, amountPaid decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE sales
		SET amount_paid = $2, last_updated_at = $3, last_updated_by = $4
		WHERE sale_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, saleID, amountPaid, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update amount paid of sale %s: %w", saleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
