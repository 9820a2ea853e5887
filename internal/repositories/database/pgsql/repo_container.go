package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/uniformes-app/backoffice/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, accountRepo)
	expenseRepo := newPgxExpenseRepository(dbPool, accountRepo)
	inventoryRepo := newPgxInventoryRepository(dbPool)
	orderRepo := newPgxOrderRepository(dbPool, inventoryRepo)
	saleRepo := newPgxSaleRepository(dbPool, inventoryRepo)
	schoolRepo := newPgxSchoolRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		TransactionRepo: transactionRepo,
		ExpenseRepo:     expenseRepo,
		InventoryRepo:   inventoryRepo,
		OrderRepo:       orderRepo,
		SaleRepo:        saleRepo,
		SchoolRepo:      schoolRepo,
		UserRepo:        userRepo,
	}
}
