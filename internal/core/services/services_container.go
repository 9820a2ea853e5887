package services

import (
	portsrepo "github.com/uniformes-app/backoffice/internal/core/ports/repositories"
	portssvc "github.com/uniformes-app/backoffice/internal/core/ports/services"
	"github.com/uniformes-app/backoffice/internal/platform/config"
)

// NewServiceContainer creates and wires up all application services.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	notifier := NewLogNotifier()

	accountSvc := NewAccountService(repos.AccountRepo)
	transactionSvc := NewTransactionService(repos.TransactionRepo, repos.AccountRepo, accountSvc)
	expenseSvc := NewExpenseService(repos.ExpenseRepo, repos.AccountRepo, accountSvc)
	inventorySvc := NewInventoryService(repos.InventoryRepo, notifier)
	orderSvc := NewOrderService(repos.OrderRepo, repos.SchoolRepo, transactionSvc, notifier)
	saleSvc := NewSaleService(repos.SaleRepo, repos.SchoolRepo, transactionSvc, notifier)
	schoolSvc := NewSchoolService(repos.SchoolRepo)
	userSvc := NewUserService(repos.UserRepo)
	tokenSvc := NewTokenService(cfg)
	googleOAuthSvc := NewGoogleOAuthService(cfg)

	return &portssvc.ServiceContainer{
		Account:     accountSvc,
		Transaction: transactionSvc,
		Expense:     expenseSvc,
		Inventory:   inventorySvc,
		Order:       orderSvc,
		Sale:        saleSvc,
		School:      schoolSvc,
		User:        userSvc,
		Token:       tokenSvc,
		GoogleOAuth: googleOAuthSvc,
		Notifier:    notifier,
	}
}
