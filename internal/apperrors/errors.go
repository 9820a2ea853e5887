package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the resource is in a state that forbids the requested operation.
var ErrConflict = errors.New("resource state conflict")

// ErrForbidden indicates that the authenticated user may not perform the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// Business-rule errors. All of these are raised before any mutation is
// attempted, so a caller seeing one can assume no state changed.
var (
	// ErrInvalidAmount indicates a monetary amount that is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrUnknownAccount indicates that the payment-method mapping yields no
	// balance account for the given scope.
	ErrUnknownAccount = errors.New("no balance account for payment method")

	// ErrInsufficientStock indicates a reservation exceeding available stock.
	ErrInsufficientStock = errors.New("insufficient stock available")

	// ErrNegativeStock indicates a stock adjustment that would drive on-hand
	// below the reserved quantity.
	ErrNegativeStock = errors.New("stock adjustment would violate reserved quantity")

	// ErrOverpayment indicates an expense payment exceeding the owed amount.
	ErrOverpayment = errors.New("payment exceeds expense amount")

	// ErrInvalidRefundAmount indicates a refund exceeding the amount paid.
	ErrInvalidRefundAmount = errors.New("refund exceeds amount paid")
)
