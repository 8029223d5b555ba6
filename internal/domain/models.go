package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Manager is the persistence model for a field manager holding cash custody.
// CashBalance is the running sum of cash sale receipts, credit collections and
// approved incoming transfers, minus approved outgoing transfers. It is only
// ever mutated through the store's balance accessor.
type Manager struct {
	ID          string
	Name        string
	Email       string
	Password    string
	Role        string
	CashBalance decimal.Decimal
	CreatedAt   time.Time
}

type ManagerResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Role        string          `json:"role"`
	CashBalance decimal.Decimal `json:"cash_balance"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (m Manager) ToResponse() ManagerResponse {
	return ManagerResponse{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		Role:        m.Role,
		CashBalance: m.CashBalance,
		CreatedAt:   m.CreatedAt,
	}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	Manager     ManagerResponse `json:"user"`
}

// Actor is the resolved identity attached to every authenticated request.
type Actor struct {
	ID   string
	Role string
}

type SaleItem struct {
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

type SaleCreateRequest struct {
	CustomerName string          `json:"customer_name"`
	Items        []SaleItem      `json:"items"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaymentType  string          `json:"payment_type"`
	Notes        string          `json:"notes,omitempty"`
}

type Sale struct {
	ID              string          `json:"id"`
	SaleNumber      string          `json:"sale_number"`
	CustomerName    string          `json:"customer_name"`
	Items           []SaleItem      `json:"items"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaymentType     string          `json:"payment_type"`
	CollectedBy     string          `json:"collected_by"`
	CollectedByName string          `json:"collected_by_name"`
	Status          string          `json:"status"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

type CreditPaymentRequest struct {
	SaleID string          `json:"sale_id"`
	Amount decimal.Decimal `json:"amount"`
	Notes  string          `json:"notes,omitempty"`
}

// CreditPayment is append-only: records are never mutated or deleted.
type CreditPayment struct {
	ID              string          `json:"id"`
	SaleID          string          `json:"sale_id"`
	Amount          decimal.Decimal `json:"amount"`
	CollectedBy     string          `json:"collected_by"`
	CollectedByName string          `json:"collected_by_name"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

type TransferCreateRequest struct {
	ToManagerID string          `json:"to_user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Reason      string          `json:"reason"`
}

type Transfer struct {
	ID              string          `json:"id"`
	FromManagerID   string          `json:"from_user_id"`
	FromManagerName string          `json:"from_user_name"`
	ToManagerID     string          `json:"to_user_id"`
	ToManagerName   string          `json:"to_user_name"`
	Amount          decimal.Decimal `json:"amount"`
	Reason          string          `json:"reason"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
}

type TransferDecisionRequest struct {
	Action string `json:"action"`
}

type MaterialUsage struct {
	MaterialName string          `json:"material_name"`
	QuantityUsed decimal.Decimal `json:"quantity_used"`
}

type ProductionCreateRequest struct {
	ProductName      string          `json:"product_name"`
	Quantity         decimal.Decimal `json:"quantity"`
	Unit             string          `json:"unit"`
	RawMaterialsUsed []MaterialUsage `json:"raw_materials_used"`
	Workers          []string        `json:"workers"`
	Notes            string          `json:"notes,omitempty"`
}

type Production struct {
	ID               string          `json:"id"`
	ProductionNumber string          `json:"production_number"`
	ProductName      string          `json:"product_name"`
	Quantity         decimal.Decimal `json:"quantity"`
	Unit             string          `json:"unit"`
	RawMaterialsUsed []MaterialUsage `json:"raw_materials_used"`
	Workers          []string        `json:"workers"`
	Status           string          `json:"status"`
	CreatedBy        string          `json:"created_by"`
	CreatedByName    string          `json:"created_by_name"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
}

type RawMaterialCreateRequest struct {
	MaterialName string          `json:"material_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	SupplierName string          `json:"supplier_name"`
	Notes        string          `json:"notes,omitempty"`
}

type RawMaterial struct {
	ID           string          `json:"id"`
	MaterialName string          `json:"material_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	SupplierName string          `json:"supplier_name"`
	AddedBy      string          `json:"added_by"`
	AddedByName  string          `json:"added_by_name"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

type DashboardManager struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	CashBalance decimal.Decimal `json:"cash_balance"`
}

type DashboardPendingTransfer struct {
	ID              string          `json:"id"`
	FromManagerName string          `json:"from_user_name"`
	Amount          decimal.Decimal `json:"amount"`
	Reason          string          `json:"reason"`
	CreatedAt       time.Time       `json:"created_at"`
}

type DashboardResponse struct {
	MyCashBalance           decimal.Decimal            `json:"my_cash_balance"`
	Managers                []DashboardManager         `json:"managers"`
	PendingApprovals        []DashboardPendingTransfer `json:"pending_approvals"`
	RecentTransactionsCount int                        `json:"recent_transactions_count"`
}

const (
	PaymentTypeCash   = "cash"
	PaymentTypeCredit = "credit"
)

const (
	SaleStatusPending = "pending"
	SaleStatusPartial = "partial"
	SaleStatusSettled = "settled"
)

const (
	TransferStatusPending  = "pending"
	TransferStatusApproved = "approved"
	TransferStatusRejected = "rejected"
)

const (
	TransferActionApprove = "approve"
	TransferActionReject  = "reject"
)

const (
	ProductionStatusInProgress = "in_progress"
	ProductionStatusCompleted  = "completed"
)

const (
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// SaleStatusFor derives a sale's status from its paid and total amounts.
// Cash sales are settled at creation; a credit sale moves pending -> partial
// -> settled as payments accumulate. Overpayment still resolves to settled.
func SaleStatusFor(paid, total decimal.Decimal, paymentType string) string {
	if paymentType == PaymentTypeCash {
		return SaleStatusSettled
	}
	switch {
	case paid.GreaterThanOrEqual(total):
		return SaleStatusSettled
	case paid.IsPositive():
		return SaleStatusPartial
	default:
		return SaleStatusPending
	}
}
