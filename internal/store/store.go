package store

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"cashops/backend/internal/domain"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrForbidden           = errors.New("forbidden")
	ErrInsufficientBalance = errors.New("insufficient cash balance")
	ErrInvalidState        = errors.New("invalid state")
	ErrEmailTaken          = errors.New("email already registered")
)

// Ledger is the sole authorized mutator of per-manager cash balances.
// AdjustBalance applies delta atomically (an increment against the backing
// store, never read-then-write), so concurrent sales, credit collections and
// transfer approvals on the same manager serialize correctly.
type Ledger interface {
	AdjustBalance(ctx context.Context, managerID string, delta decimal.Decimal) (decimal.Decimal, error)
	GetBalance(ctx context.Context, managerID string) (decimal.Decimal, error)
}

// Repository persists the operations ledger. Multi-step mutations
// (cash sale + balance credit, credit payment + sale update + balance credit,
// transfer decision + both balance moves) are applied as a single atomic unit
// by each implementation; a partially applied mutation is a correctness bug.
type Repository interface {
	Ledger

	CreateManager(ctx context.Context, manager domain.Manager) (*domain.Manager, error)
	GetManagerByID(ctx context.Context, id string) (*domain.Manager, error)
	GetManagerByEmail(ctx context.Context, email string) (*domain.Manager, error)
	ListManagersByRole(ctx context.Context, role string) ([]domain.Manager, error)

	// CreateSale assigns the next sale number from an atomic counter. For cash
	// sales it also credits the collector's balance in the same transaction.
	CreateSale(ctx context.Context, sale domain.Sale) (*domain.Sale, error)
	GetSale(ctx context.Context, id string) (*domain.Sale, error)
	ListSales(ctx context.Context, limit int) ([]domain.Sale, error)
	ListSalesByPaymentType(ctx context.Context, paymentType string, limit int) ([]domain.Sale, error)
	CountRecentSalesByCollector(ctx context.Context, collectorID string, limit int) (int, error)

	// ApplyCreditPayment appends the payment record, raises the sale's paid
	// amount, recomputes its status and credits the collector, atomically.
	// Fails with ErrNotFound if the sale is absent and ErrInvalidState if the
	// sale is not a credit sale.
	ApplyCreditPayment(ctx context.Context, payment domain.CreditPayment) (*domain.CreditPayment, *domain.Sale, error)

	CreateTransfer(ctx context.Context, transfer domain.Transfer) (*domain.Transfer, error)
	GetTransfer(ctx context.Context, id string) (*domain.Transfer, error)
	ListTransfersByManager(ctx context.Context, managerID string, limit int) ([]domain.Transfer, error)
	ListPendingTransfersTo(ctx context.Context, managerID string, limit int) ([]domain.Transfer, error)

	// DecideTransfer moves a pending transfer to the given terminal status,
	// stamping the decision time. When the status is approved it also debits
	// the sender and credits the recipient in the same transaction. Fails with
	// ErrInvalidState if the transfer is already terminal, so a repeated
	// decision can never double-apply balance changes.
	DecideTransfer(ctx context.Context, id string, status string, at time.Time) (*domain.Transfer, error)

	// CreateProduction assigns the next production number from an atomic
	// counter and decrements consumed raw-material quantities atomically.
	CreateProduction(ctx context.Context, production domain.Production) (*domain.Production, error)
	ListProductions(ctx context.Context, limit int) ([]domain.Production, error)
	CompleteProduction(ctx context.Context, id string, at time.Time) (*domain.Production, error)

	// UpsertRawMaterial inserts a new material or, when the name already
	// exists, accumulates quantity onto the existing record.
	UpsertRawMaterial(ctx context.Context, material domain.RawMaterial) (*domain.RawMaterial, error)
	ListRawMaterials(ctx context.Context) ([]domain.RawMaterial, error)
}
