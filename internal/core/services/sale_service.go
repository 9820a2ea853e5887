package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/uniformes-app/backoffice/internal/apperrors"
	"github.com/uniformes-app/backoffice/internal/core/domain"
	portsrepo "github.com/uniformes-app/backoffice/internal/core/ports/repositories"
	portssvc "github.com/uniformes-app/backoffice/internal/core/ports/services"
	"github.com/uniformes-app/backoffice/internal/dto"
	"github.com/uniformes-app/backoffice/internal/middleware"
)

// SaleService orchestrates direct over-the-counter sales. Every sale item
// comes from stock, so creation reserves every line or fails entirely.
type SaleService struct {
	saleRepo       portsrepo.SaleRepositoryFacade
	schoolRepo     portsrepo.SchoolRepositoryFacade
	transactionSvc portssvc.TransactionSvcFacade
	notifier       portssvc.Notifier
}

func NewSaleService(saleRepo portsrepo.SaleRepositoryFacade, schoolRepo portsrepo.SchoolRepositoryFacade, transactionSvc portssvc.TransactionSvcFacade, notifier portssvc.Notifier) *SaleService {
	return &SaleService{
		saleRepo:       saleRepo,
		schoolRepo:     schoolRepo,
		transactionSvc: transactionSvc,
		notifier:       notifier,
	}
}

// Ensure SaleService implements the facade.
var _ portssvc.SaleSvcFacade = (*SaleService)(nil)

func (s *SaleService) CreateSale(ctx context.Context, schoolID string, req dto.CreateSaleRequest, userID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.schoolRepo.FindSchoolByID(ctx, schoolID); err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: sale needs at least one item", apperrors.ErrValidation)
	}

	now := time.Now()
	sale := domain.Sale{
		SaleID:      uuid.NewString(),
		SchoolID:    schoolID,
		ClientName:  req.ClientName,
		Status:      domain.SalePending,
		AmountPaid:  decimal.Zero,
		AuditFields: domain.NewAuditFields(userID, now),
	}

	total := decimal.Zero
	for _, itemReq := range req.Items {
		if itemReq.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item quantity must be positive", apperrors.ErrValidation)
		}
		if itemReq.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: item unit price cannot be negative", apperrors.ErrValidation)
		}

		sale.Items = append(sale.Items, domain.SaleItem{
			SaleItemID:        uuid.NewString(),
			SaleID:            sale.SaleID,
			ProductID:         itemReq.ProductID,
			Quantity:          itemReq.Quantity,
			UnitPrice:         itemReq.UnitPrice,
			ReservedFromStock: true,
			QuantityReserved:  itemReq.Quantity,
		})
		total = total.Add(itemReq.UnitPrice.Mul(decimal.NewFromInt(itemReq.Quantity)))
	}
	sale.Total = total

	if err := s.saleRepo.SaveSale(ctx, sale); err != nil {
		logger.Error("Failed to save sale", slog.String("error", err.Error()), slog.String("sale_id", sale.SaleID))
		return nil, err
	}

	logger.Info("Sale created",
		slog.String("sale_id", sale.SaleID),
		slog.String("school_id", schoolID),
		slog.Int("items", len(sale.Items)),
		slog.String("total", total.String()),
	)
	return &sale, nil
}

func (s *SaleService) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	return s.saleRepo.FindSaleByID(ctx, saleID)
}

func (s *SaleService) ListSales(ctx context.Context, schoolID string, params dto.ListSalesParams) (*dto.ListSalesResponse, error) {
	sales, nextToken, err := s.saleRepo.ListSalesBySchool(ctx, schoolID, params.Limit, params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list sales", slog.String("error", err.Error()), slog.String("school_id", schoolID))
		return nil, err
	}

	responses := make([]dto.SaleResponse, len(sales))
	for i := range sales {
		responses[i] = dto.ToSaleResponse(&sales[i])
	}
	return &dto.ListSalesResponse{Sales: responses, NextToken: nextToken}, nil
}

// CompleteSale marks the sale completed and consumes its reservations.
func (s *SaleService) CompleteSale(ctx context.Context, saleID string, userID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale.Status != domain.SalePending {
		return nil, fmt.Errorf("%w: sale %s is %s, only pending sales can complete", apperrors.ErrConflict, saleID, sale.Status)
	}

	now := time.Now()
	if err := s.saleRepo.CompleteSale(ctx, *sale, userID, now); err != nil {
		logger.Error("Failed to complete sale", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		return nil, err
	}
	sale.Status = domain.SaleCompleted
	sale.Touch(userID, now)

	logger.Info("Sale completed", slog.String("sale_id", saleID))
	s.notifier.SaleStatusChanged(ctx, *sale)
	return sale, nil
}

// CancelSale marks the sale cancelled and releases exactly the stock its
// items recorded at creation time.
func (s *SaleService) CancelSale(ctx context.Context, saleID string, userID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale.Status != domain.SalePending {
		return nil, fmt.Errorf("%w: sale %s is %s and cannot be cancelled", apperrors.ErrConflict, saleID, sale.Status)
	}

	now := time.Now()
	if err := s.saleRepo.CancelSale(ctx, *sale, userID, now); err != nil {
		logger.Error("Failed to cancel sale", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		return nil, err
	}
	sale.Status = domain.SaleCancelled
	sale.Touch(userID, now)

	logger.Info("Sale cancelled", slog.String("sale_id", saleID))
	s.notifier.SaleStatusChanged(ctx, *sale)
	return sale, nil
}

// RecordSalePayment records an income against the sale's school ledger and
// bumps the sale's cumulative paid amount.
func (s *SaleService) RecordSalePayment(ctx context.Context, saleID string, req dto.RecordPaymentRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale.Status == domain.SaleCancelled {
		return nil, fmt.Errorf("%w: sale %s is cancelled", apperrors.ErrConflict, saleID)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, req.Amount)
	}
	newPaid := sale.AmountPaid.Add(req.Amount)
	if newPaid.GreaterThan(sale.Total) {
		return nil, fmt.Errorf("%w: paying %s would exceed the sale total %s", apperrors.ErrOverpayment, req.Amount, sale.Total)
	}

	// The paid-amount bump settles on the same database transaction as the
	// payment, so neither can land without the other.
	now := time.Now()
	txn, err := s.transactionSvc.RecordTransactionSettling(ctx, domain.SchoolScope(sale.SchoolID), dto.RecordTransactionRequest{
		Type:          string(domain.Income),
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		SaleID:        &sale.SaleID,
		Description:   fmt.Sprintf("Payment for sale to %s", sale.ClientName),
	}, userID, func(ctx context.Context, tx pgx.Tx) error {
		return s.saleRepo.UpdateSaleAmountPaidInTx(ctx, tx, saleID, newPaid, userID, now)
	})
	if err != nil {
		logger.Error("Failed to record sale payment", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		return nil, err
	}

	logger.Info("Sale payment recorded", slog.String("sale_id", saleID), slog.String("amount", req.Amount.String()))
	return txn, nil
}
