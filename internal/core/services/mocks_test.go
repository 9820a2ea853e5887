package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/uniformes-app/backoffice/internal/core/domain"
	portsrepo "github.com/uniformes-app/backoffice/internal/core/ports/repositories"
	portssvc "github.com/uniformes-app/backoffice/internal/core/ports/services"
	"github.com/uniformes-app/backoffice/internal/dto"
)

// MockAccountRepository is a mock for the account repository facade.
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, scope domain.Scope, code string) (*domain.Account, error) {
	args := m.Called(ctx, scope, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, scope domain.Scope, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, scope, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SumEntriesByAccountID(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccountRepository) ListEntriesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var entries []domain.Entry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.Entry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockAccountRepository) FindAccountCodeForPaymentMethod(ctx context.Context, method domain.PaymentMethod) (string, error) {
	args := m.Called(ctx, method)
	return args.String(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) InsertEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.Entry) error {
	args := m.Called(ctx, tx, entries)
	return args.Error(0)
}

// MockTransactionRepository is a mock for the transaction repository facade.
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, scope domain.Scope, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, scope, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockTransactionRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.Entry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.Entry, balanceChanges map[string]decimal.Decimal, settle portsrepo.SettleFn) error {
	args := m.Called(ctx, txn, entries, balanceChanges, settle)
	if err := args.Error(0); err != nil {
		return err
	}
	if settle != nil {
		return settle(ctx, nil)
	}
	return nil
}

// MockExpenseRepository is a mock for the expense repository facade.
type MockExpenseRepository struct {
	mock.Mock
}

var _ portsrepo.ExpenseRepositoryFacade = (*MockExpenseRepository)(nil)

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpenses(ctx context.Context, scope domain.Scope, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	args := m.Called(ctx, scope, limit, nextToken)
	var expenses []domain.Expense
	if args.Get(0) != nil {
		expenses = args.Get(0).([]domain.Expense)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return expenses, token, args.Error(2)
}

func (m *MockExpenseRepository) ListAdjustmentsByExpenseID(ctx context.Context, expenseID string) ([]domain.ExpenseAdjustment, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseAdjustment), args.Error(1)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) RecordPayment(ctx context.Context, expense domain.Expense, txn domain.Transaction, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, expense, txn, entries, balanceChanges)
	return args.Error(0)
}

func (m *MockExpenseRepository) SaveAdjustment(ctx context.Context, expense domain.Expense, adjustment domain.ExpenseAdjustment, txns []domain.Transaction, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, expense, adjustment, txns, entries, balanceChanges)
	return args.Error(0)
}

// MockInventoryRepository is a mock for the inventory repository facade.
type MockInventoryRepository struct {
	mock.Mock
}

var _ portsrepo.InventoryRepositoryFacade = (*MockInventoryRepository)(nil)

func (m *MockInventoryRepository) FindInventory(ctx context.Context, schoolID string, productID string) (*domain.Inventory, error) {
	args := m.Called(ctx, schoolID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) ListInventoryBySchool(ctx context.Context, schoolID string, limit int, offset int) ([]domain.Inventory, error) {
	args := m.Called(ctx, schoolID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) SaveInventory(ctx context.Context, inventory domain.Inventory) error {
	args := m.Called(ctx, inventory)
	return args.Error(0)
}

func (m *MockInventoryRepository) Reserve(ctx context.Context, schoolID, productID string, quantity int64, userID string, now time.Time) error {
	args := m.Called(ctx, schoolID, productID, quantity, userID, now)
	return args.Error(0)
}

func (m *MockInventoryRepository) Release(ctx context.Context, schoolID, productID string, quantity int64, userID string, now time.Time) error {
	args := m.Called(ctx, schoolID, productID, quantity, userID, now)
	return args.Error(0)
}

func (m *MockInventoryRepository) Fulfill(ctx context.Context, schoolID, productID string, quantity int64, userID string, now time.Time) error {
	args := m.Called(ctx, schoolID, productID, quantity, userID, now)
	return args.Error(0)
}

func (m *MockInventoryRepository) AdjustOnHand(ctx context.Context, schoolID, productID string, delta int64, userID string, now time.Time) error {
	args := m.Called(ctx, schoolID, productID, delta, userID, now)
	return args.Error(0)
}

func (m *MockInventoryRepository) SetLowStockThreshold(ctx context.Context, schoolID, productID string, threshold int64, userID string, now time.Time) error {
	args := m.Called(ctx, schoolID, productID, threshold, userID, now)
	return args.Error(0)
}

func (m *MockInventoryRepository) ReserveInTx(ctx context.Context, tx pgx.Tx, schoolID, productID string, quantity int64, userID string, now time.Time) error {
	args := m.Called(ctx, tx, schoolID, productID, quantity, userID, now)
	return args.Error(0)
}

func (m *MockInventoryRepository) ReleaseInTx(ctx context.Context, tx pgx.Tx, schoolID, productID string, quantity int64, userID string, now time.Time) error {
	args := m.Called(ctx, tx, schoolID, productID, quantity, userID, now)
	return args.Error(0)
}

func (m *MockInventoryRepository) FulfillInTx(ctx context.Context, tx pgx.Tx, schoolID, productID string, quantity int64, userID string, now time.Time) error {
	args := m.Called(ctx, tx, schoolID, productID, quantity, userID, now)
	return args.Error(0)
}

// MockOrderRepository is a mock for the order repository facade.
type MockOrderRepository struct {
	mock.Mock
}

var _ portsrepo.OrderRepositoryFacade = (*MockOrderRepository)(nil)

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOrdersBySchool(ctx context.Context, schoolID string, limit int, nextToken *string) ([]domain.Order, *string, error) {
	args := m.Called(ctx, schoolID, limit, nextToken)
	var orders []domain.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]domain.Order)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return orders, token, args.Error(2)
}

func (m *MockOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) CancelOrder(ctx context.Context, order domain.Order, userID string, now time.Time) error {
	args := m.Called(ctx, order, userID, now)
	return args.Error(0)
}

func (m *MockOrderRepository) DeliverOrder(ctx context.Context, order domain.Order, userID string, now time.Time) error {
	args := m.Called(ctx, order, userID, now)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, userID string, now time.Time) error {
	args := m.Called(ctx, orderID, status, userID, now)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrderAmountPaidInTx(ctx context.Context, tx pgx.Tx, orderID string, amountPaid decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, orderID, amountPaid, userID, now)
	return args.Error(0)
}

// MockSaleRepository is a mock for the sale repository facade.
type MockSaleRepository struct {
	mock.Mock
}

var _ portsrepo.SaleRepositoryFacade = (*MockSaleRepository)(nil)

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) ListSalesBySchool(ctx context.Context, schoolID string, limit int, nextToken *string) ([]domain.Sale, *string, error) {
	args := m.Called(ctx, schoolID, limit, nextToken)
	var sales []domain.Sale
	if args.Get(0) != nil {
		sales = args.Get(0).([]domain.Sale)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return sales, token, args.Error(2)
}

func (m *MockSaleRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) CancelSale(ctx context.Context, sale domain.Sale, userID string, now time.Time) error {
	args := m.Called(ctx, sale, userID, now)
	return args.Error(0)
}

func (m *MockSaleRepository) CompleteSale(ctx context.Context, sale domain.Sale, userID string, now time.Time) error {
	args := m.Called(ctx, sale, userID, now)
	return args.Error(0)
}

func (m *MockSaleRepository) UpdateSaleAmountPaidInTx(ctx context.Context, tx pgx.Tx, saleID string, amountPaid decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, saleID, amountPaid, userID, now)
	return args.Error(0)
}

// MockSchoolRepository is a mock for the school repository facade.
type MockSchoolRepository struct {
	mock.Mock
}

var _ portsrepo.SchoolRepositoryFacade = (*MockSchoolRepository)(nil)

func (m *MockSchoolRepository) SaveSchool(ctx context.Context, school domain.School) error {
	args := m.Called(ctx, school)
	return args.Error(0)
}

func (m *MockSchoolRepository) FindSchoolByID(ctx context.Context, schoolID string) (*domain.School, error) {
	args := m.Called(ctx, schoolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.School), args.Error(1)
}

func (m *MockSchoolRepository) ListSchools(ctx context.Context, limit int, offset int) ([]domain.School, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.School), args.Error(1)
}

func (m *MockSchoolRepository) UpdateSchool(ctx context.Context, school domain.School) error {
	args := m.Called(ctx, school)
	return args.Error(0)
}

func (m *MockSchoolRepository) DeactivateSchool(ctx context.Context, schoolID string, userID string, now time.Time) error {
	args := m.Called(ctx, schoolID, userID, now)
	return args.Error(0)
}

// MockUserRepository is a mock for the user repository facade.
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockNotifier is a mock for the notifier port.
type MockNotifier struct {
	mock.Mock
}

var _ portssvc.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) LowStock(ctx context.Context, inventory domain.Inventory) {
	m.Called(ctx, inventory)
}

func (m *MockNotifier) OrderStatusChanged(ctx context.Context, order domain.Order) {
	m.Called(ctx, order)
}

func (m *MockNotifier) SaleStatusChanged(ctx context.Context, sale domain.Sale) {
	m.Called(ctx, sale)
}

// MockTransactionSvc is a mock for the transaction service facade, used by
// the sale and order tests to isolate payment recording.
type MockTransactionSvc struct {
	mock.Mock
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionSvc)(nil)

func (m *MockTransactionSvc) RecordTransaction(ctx context.Context, scope domain.Scope, req dto.RecordTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, scope, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// RecordTransactionSettling runs the settle callback like the real service
// does: on the save's transaction, with its error aborting the whole call.
func (m *MockTransactionSvc) RecordTransactionSettling(ctx context.Context, scope domain.Scope, req dto.RecordTransactionRequest, userID string, settle portsrepo.SettleFn) (*domain.Transaction, error) {
	args := m.Called(ctx, scope, req, userID, settle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if settle != nil {
		if err := settle(ctx, nil); err != nil {
			return nil, err
		}
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionSvc) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, []domain.Entry, error) {
	args := m.Called(ctx, transactionID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	var entries []domain.Entry
	if args.Get(1) != nil {
		entries = args.Get(1).([]domain.Entry)
	}
	return txn, entries, args.Error(2)
}

func (m *MockTransactionSvc) ListTransactions(ctx context.Context, scope domain.Scope, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, scope, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}
