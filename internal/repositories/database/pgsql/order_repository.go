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

const orderColumns = `order_id, school_id, client_name, status, total, amount_paid, created_at, created_by, last_updated_at, last_updated_by`

const orderItemColumns = `order_item_id, order_id, product_id, quantity, unit_price, reserved_from_stock, quantity_reserved`

type PgxOrderRepository struct {
	BaseRepository
	inventoryRepo portsrepo.InventoryRepositoryFacade
}

// newPgxOrderRepository creates a new repository for order data. Stock
// bookkeeping rides on the inventory repository's in-transaction operations.
func newPgxOrderRepository(pool DBPool, inventoryRepo portsrepo.InventoryRepositoryFacade) *PgxOrderRepository {
	return &PgxOrderRepository{
		BaseRepository: BaseRepository{Pool: pool},
		inventoryRepo:  inventoryRepo,
	}
}

// Ensure PgxOrderRepository implements portsrepo.OrderRepositoryFacade
var _ portsrepo.OrderRepositoryFacade = (*PgxOrderRepository)(nil)

func scanOrder(row rowScanner) (models.Order, error) {
	var m models.Order
	err := row.Scan(
		&m.OrderID,
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

// SaveOrder persists the order and its items and reserves stock for every
// item that requests it. Any failed reservation rolls the whole creation back.
func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelOrder(order)
	orderQuery := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, orderQuery,
		m.OrderID,
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
		return fmt.Errorf("failed to insert order %s: %w", m.OrderID, err)
	}

	itemQuery := `
		INSERT INTO order_items (` + orderItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, item := range order.Items {
		if item.ReservedFromStock {
			if err := r.inventoryRepo.ReserveInTx(ctx, tx, order.SchoolID, item.ProductID, item.Quantity, order.CreatedBy, order.CreatedAt); err != nil {
				return fmt.Errorf("order %s: %w", order.OrderID, err)
			}
			item.QuantityReserved = item.Quantity
		} else {
			item.QuantityReserved = 0
		}

		mi := mapping.ToModelOrderItem(item)
		_, err = tx.Exec(ctx, itemQuery,
			mi.OrderItemID,
			mi.OrderID,
			mi.ProductID,
			mi.Quantity,
			mi.UnitPrice,
			mi.ReservedFromStock,
			mi.QuantityReserved,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order item %s: %w", mi.OrderItemID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxOrderRepository) findOrderItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM order_items WHERE order_id = $1 ORDER BY order_item_id;`

	rows, err := r.Pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for order %s: %w", orderID, err)
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var m models.OrderItem
		if err := rows.Scan(&m.OrderItemID, &m.OrderID, &m.ProductID, &m.Quantity, &m.UnitPrice, &m.ReservedFromStock, &m.QuantityReserved); err != nil {
			return nil, fmt.Errorf("failed to scan item row for order %s: %w", orderID, err)
		}
		items = append(items, mapping.ToDomainOrderItem(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating item rows for order %s: %w", orderID, rows.Err())
	}
	return items, nil
}

// FindOrderByID retrieves an order with its items.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1;`

	m, err := scanOrder(r.Pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID %s: %w", orderID, err)
	}

	d := mapping.ToDomainOrder(m)
	d.Items, err = r.findOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListOrdersBySchool retrieves a token-paginated list of orders with their
// items, newest first.
func (r *PgxOrderRepository) ListOrdersBySchool(ctx context.Context, schoolID string, limit int, nextToken *string) ([]domain.Order, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	baseQuery := `SELECT ` + orderColumns + ` FROM orders WHERE school_id = $1`
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
		baseQuery += ` AND (created_at, order_id) < ($2, $3)`
		args = append(args, createdAt, fields[1])
	}

	baseQuery += fmt.Sprintf(` ORDER BY created_at DESC, order_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, baseQuery, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query orders for school %s: %w", schoolID, err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		m, err := scanOrder(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan order row for school %s: %w", schoolID, err)
		}
		orders = append(orders, mapping.ToDomainOrder(m))
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating order rows for school %s: %w", schoolID, rows.Err())
	}

	var token *string
	if len(orders) > limit {
		orders = orders[:limit]
		last := orders[len(orders)-1]
		t := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.OrderID)
		token = &t
	}

	for i := range orders {
		orders[i].Items, err = r.findOrderItems(ctx, orders[i].OrderID)
		if err != nil {
			return nil, nil, err
		}
	}

	return orders, token, nil
}

// updateOrderStatusInTx moves an order to a new status on an open transaction.
func updateOrderStatusInTx(ctx context.Context, tx pgx.Tx, orderID string, status domain.OrderStatus, userID string, now time.Time) error {
	query := `
		UPDATE orders
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE order_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, orderID, string(status), now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of order %s: %w", orderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CancelOrder marks the order cancelled and releases exactly the recorded
// quantity_reserved of every item, in one database transaction.
func (r *PgxOrderRepository) CancelOrder(ctx context.Context, order domain.Order, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := updateOrderStatusInTx(ctx, tx, order.OrderID, domain.OrderCancelled, userID, now); err != nil {
		return err
	}
	for _, item := range order.Items {
		if item.QuantityReserved > 0 {
			if err := r.inventoryRepo.ReleaseInTx(ctx, tx, order.SchoolID, item.ProductID, item.QuantityReserved, userID, now); err != nil {
				return fmt.Errorf("order %s: %w", order.OrderID, err)
			}
		}
	}

	return r.Commit(ctx, tx)
}

// DeliverOrder marks the order delivered and fulfills the recorded
// reservations, in one database transaction.
func (r *PgxOrderRepository) DeliverOrder(ctx context.Context, order domain.Order, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := updateOrderStatusInTx(ctx, tx, order.OrderID, domain.OrderDelivered, userID, now); err != nil {
		return err
	}
	for _, item := range order.Items {
		if item.QuantityReserved > 0 {
			if err := r.inventoryRepo.FulfillInTx(ctx, tx, order.SchoolID, item.ProductID, item.QuantityReserved, userID, now); err != nil {
				return fmt.Errorf("order %s: %w", order.OrderID, err)
			}
		}
	}

	return r.Commit(ctx, tx)
}

// UpdateOrderStatus moves the order to a new status without touching stock.
func (r *PgxOrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, userID string, now time.Time) error {
	query := `
		UPDATE orders
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE order_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, orderID, string(status), now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of order %s: %w", orderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateOrderAmountPaidInTx records cumulative payments against the order on
// an open transaction, so the bump commits together with the payment itself.
func (r *PgxOrderRepository) UpdateOrderAmountPaidInTx(ctx context.Context, tx pgx.Tx, orderID string, amountPaid decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE orders
		SET amount_paid = $2, last_updated_at = $3, last_updated_by = $4
		WHERE order_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, orderID, amountPaid, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update amount paid of order %s: %w", orderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
