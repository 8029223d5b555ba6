package memory

import (
	"context"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"cashops/backend/internal/domain"
	"cashops/backend/internal/store"
	"cashops/backend/internal/xid"
)

// Store is an in-memory Repository used for dev mode and tests. A single
// mutex serializes all mutations, which makes every multi-step mutation
// trivially atomic and every balance adjustment linearizable.
type Store struct {
	mu               sync.RWMutex
	managersByID     map[string]domain.Manager
	managerIDByEmail map[string]string
	salesByID        map[string]*domain.Sale
	saleOrder        []string
	paymentsByID     map[string]domain.CreditPayment
	transfersByID    map[string]*domain.Transfer
	transferOrder    []string
	productionsByID  map[string]*domain.Production
	productionOrder  []string
	materialsByName  map[string]*domain.RawMaterial
	saleSeq          int64
	productionSeq    int64
}

func New() *Store {
	return &Store{
		managersByID:     make(map[string]domain.Manager),
		managerIDByEmail: make(map[string]string),
		salesByID:        make(map[string]*domain.Sale),
		paymentsByID:     make(map[string]domain.CreditPayment),
		transfersByID:    make(map[string]*domain.Transfer),
		productionsByID:  make(map[string]*domain.Production),
		materialsByName:  make(map[string]*domain.RawMaterial),
	}
}

// NewSeeded builds a store with demo manager accounts for dev mode.
// Credentials are read from SEED_ADMIN_PASSWORD and SEED_MANAGER_PASSWORD
// environment variables; hardcoded dev defaults are used with a warning when
// unset. Production deployments use PostgreSQL (DATABASE_URL set) instead.
func NewSeeded() *Store {
	s := New()

	adminPwd := envOr("SEED_ADMIN_PASSWORD", "admin123")
	managerPwd := envOr("SEED_MANAGER_PASSWORD", "manager123")
	if os.Getenv("SEED_ADMIN_PASSWORD") == "" || os.Getenv("SEED_MANAGER_PASSWORD") == "" {
		log.Println("[memory-store] WARNING: using default dev credentials. Set SEED_ADMIN_PASSWORD and SEED_MANAGER_PASSWORD to override.")
	}

	now := time.Now().UTC()
	for _, seed := range []struct {
		name     string
		email    string
		password string
		role     string
	}{
		{"Admin", "admin@example.com", adminPwd, domain.RoleAdmin},
		{"Demo Manager", "manager@example.com", managerPwd, domain.RoleManager},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("[memory-store] failed to hash seed password for %s: %v", seed.email, err)
		}
		manager := domain.Manager{
			ID:        xid.New("mgr"),
			Name:      seed.name,
			Email:     seed.email,
			Password:  string(hash),
			Role:      seed.role,
			CreatedAt: now,
		}
		s.managersByID[manager.ID] = manager
		s.managerIDByEmail[manager.Email] = manager.ID
	}

	return s
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (s *Store) CreateManager(_ context.Context, manager domain.Manager) (*domain.Manager, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(manager.Email))
	if email == "" || manager.Name == "" || manager.Password == "" {
		return nil, store.ErrInvalidArgument
	}
	if _, exists := s.managerIDByEmail[email]; exists {
		return nil, store.ErrEmailTaken
	}

	if manager.ID == "" {
		manager.ID = xid.New("mgr")
	}
	if manager.CreatedAt.IsZero() {
		manager.CreatedAt = time.Now().UTC()
	}
	manager.Email = email
	manager.CashBalance = decimal.Zero

	s.managersByID[manager.ID] = manager
	s.managerIDByEmail[email] = manager.ID

	created := manager
	return &created, nil
}

func (s *Store) GetManagerByID(_ context.Context, id string) (*domain.Manager, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	manager, exists := s.managersByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copied := manager
	return &copied, nil
}

func (s *Store) GetManagerByEmail(_ context.Context, email string) (*domain.Manager, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.managerIDByEmail[strings.ToLower(strings.TrimSpace(email))]
	if !exists {
		return nil, store.ErrNotFound
	}
	manager := s.managersByID[id]
	copied := manager
	return &copied, nil
}

func (s *Store) ListManagersByRole(_ context.Context, role string) ([]domain.Manager, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	managers := make([]domain.Manager, 0, len(s.managersByID))
	for _, m := range s.managersByID {
		if role != "" && m.Role != role {
			continue
		}
		managers = append(managers, m)
	}

	slices.SortFunc(managers, func(a, b domain.Manager) int {
		return strings.Compare(a.Name, b.Name)
	})

	return managers, nil
}

func (s *Store) AdjustBalance(_ context.Context, managerID string, delta decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adjustBalanceLocked(managerID, delta)
}

func (s *Store) adjustBalanceLocked(managerID string, delta decimal.Decimal) (decimal.Decimal, error) {
	manager, exists := s.managersByID[managerID]
	if !exists {
		return decimal.Zero, store.ErrNotFound
	}
	manager.CashBalance = manager.CashBalance.Add(delta)
	s.managersByID[managerID] = manager
	return manager.CashBalance, nil
}

func (s *Store) GetBalance(_ context.Context, managerID string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	manager, exists := s.managersByID[managerID]
	if !exists {
		return decimal.Zero, store.ErrNotFound
	}
	return manager.CashBalance, nil
}

func (s *Store) CreateSale(_ context.Context, sale domain.Sale) (*domain.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.managersByID[sale.CollectedBy]; !exists {
		return nil, store.ErrNotFound
	}

	if sale.ID == "" {
		sale.ID = xid.New("sale")
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now().UTC()
	}
	s.saleSeq++
	sale.SaleNumber = fmt.Sprintf("SALE-%06d", s.saleSeq)

	if sale.PaymentType == domain.PaymentTypeCash {
		if _, err := s.adjustBalanceLocked(sale.CollectedBy, sale.TotalAmount); err != nil {
			return nil, err
		}
	}

	stored := sale
	s.salesByID[sale.ID] = &stored
	s.saleOrder = append(s.saleOrder, sale.ID)

	created := stored
	return &created, nil
}

func (s *Store) GetSale(_ context.Context, id string) (*domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sale, exists := s.salesByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copied := *sale
	return &copied, nil
}

func (s *Store) ListSales(_ context.Context, limit int) ([]domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listSalesLocked("", limit), nil
}

func (s *Store) ListSalesByPaymentType(_ context.Context, paymentType string, limit int) ([]domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listSalesLocked(paymentType, limit), nil
}

// listSalesLocked returns sales newest-first, optionally filtered by payment type.
func (s *Store) listSalesLocked(paymentType string, limit int) []domain.Sale {
	sales := make([]domain.Sale, 0, len(s.saleOrder))
	for i := len(s.saleOrder) - 1; i >= 0; i-- {
		sale := s.salesByID[s.saleOrder[i]]
		if paymentType != "" && sale.PaymentType != paymentType {
			continue
		}
		sales = append(sales, *sale)
		if limit > 0 && len(sales) >= limit {
			break
		}
	}
	return sales
}

func (s *Store) CountRecentSalesByCollector(_ context.Context, collectorID string, limit int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for i := len(s.saleOrder) - 1; i >= 0; i-- {
		if s.salesByID[s.saleOrder[i]].CollectedBy == collectorID {
			count++
			if limit > 0 && count >= limit {
				break
			}
		}
	}
	return count, nil
}

func (s *Store) ApplyCreditPayment(_ context.Context, payment domain.CreditPayment) (*domain.CreditPayment, *domain.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sale, exists := s.salesByID[payment.SaleID]
	if !exists {
		return nil, nil, store.ErrNotFound
	}
	if sale.PaymentType != domain.PaymentTypeCredit {
		return nil, nil, store.ErrInvalidState
	}
	if _, exists := s.managersByID[payment.CollectedBy]; !exists {
		return nil, nil, store.ErrNotFound
	}

	if payment.ID == "" {
		payment.ID = xid.New("pay")
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now().UTC()
	}

	sale.PaidAmount = sale.PaidAmount.Add(payment.Amount)
	sale.Status = domain.SaleStatusFor(sale.PaidAmount, sale.TotalAmount, sale.PaymentType)
	s.paymentsByID[payment.ID] = payment

	if _, err := s.adjustBalanceLocked(payment.CollectedBy, payment.Amount); err != nil {
		return nil, nil, err
	}

	createdPayment := payment
	updatedSale := *sale
	return &createdPayment, &updatedSale, nil
}

func (s *Store) CreateTransfer(_ context.Context, transfer domain.Transfer) (*domain.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if transfer.ID == "" {
		transfer.ID = xid.New("trf")
	}
	if transfer.CreatedAt.IsZero() {
		transfer.CreatedAt = time.Now().UTC()
	}
	transfer.Status = domain.TransferStatusPending

	stored := transfer
	s.transfersByID[transfer.ID] = &stored
	s.transferOrder = append(s.transferOrder, transfer.ID)

	created := stored
	return &created, nil
}

func (s *Store) GetTransfer(_ context.Context, id string) (*domain.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	transfer, exists := s.transfersByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copied := *transfer
	return &copied, nil
}

func (s *Store) ListTransfersByManager(_ context.Context, managerID string, limit int) ([]domain.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	transfers := make([]domain.Transfer, 0, 16)
	for i := len(s.transferOrder) - 1; i >= 0; i-- {
		transfer := s.transfersByID[s.transferOrder[i]]
		if transfer.FromManagerID != managerID && transfer.ToManagerID != managerID {
			continue
		}
		transfers = append(transfers, *transfer)
		if limit > 0 && len(transfers) >= limit {
			break
		}
	}
	return transfers, nil
}

func (s *Store) ListPendingTransfersTo(_ context.Context, managerID string, limit int) ([]domain.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	transfers := make([]domain.Transfer, 0, 16)
	for i := len(s.transferOrder) - 1; i >= 0; i-- {
		transfer := s.transfersByID[s.transferOrder[i]]
		if transfer.ToManagerID != managerID || transfer.Status != domain.TransferStatusPending {
			continue
		}
		transfers = append(transfers, *transfer)
		if limit > 0 && len(transfers) >= limit {
			break
		}
	}
	return transfers, nil
}

func (s *Store) DecideTransfer(_ context.Context, id string, status string, at time.Time) (*domain.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	transfer, exists := s.transfersByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	if transfer.Status != domain.TransferStatusPending {
		return nil, store.ErrInvalidState
	}
	if status != domain.TransferStatusApproved && status != domain.TransferStatusRejected {
		return nil, store.ErrInvalidArgument
	}

	if status == domain.TransferStatusApproved {
		if _, err := s.adjustBalanceLocked(transfer.FromManagerID, transfer.Amount.Neg()); err != nil {
			return nil, err
		}
		if _, err := s.adjustBalanceLocked(transfer.ToManagerID, transfer.Amount); err != nil {
			// Roll the debit back so a missing recipient cannot strand funds.
			_, _ = s.adjustBalanceLocked(transfer.FromManagerID, transfer.Amount)
			return nil, err
		}
	}

	decidedAt := at
	transfer.Status = status
	transfer.ApprovedAt = &decidedAt

	copied := *transfer
	return &copied, nil
}

func (s *Store) CreateProduction(_ context.Context, production domain.Production) (*domain.Production, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if production.ID == "" {
		production.ID = xid.New("prod")
	}
	if production.CreatedAt.IsZero() {
		production.CreatedAt = time.Now().UTC()
	}
	s.productionSeq++
	production.ProductionNumber = fmt.Sprintf("PROD-%06d", s.productionSeq)
	production.Status = domain.ProductionStatusInProgress

	for _, usage := range production.RawMaterialsUsed {
		material, exists := s.materialsByName[usage.MaterialName]
		if !exists {
			continue
		}
		material.Quantity = material.Quantity.Sub(usage.QuantityUsed)
	}

	stored := production
	s.productionsByID[production.ID] = &stored
	s.productionOrder = append(s.productionOrder, production.ID)

	created := stored
	return &created, nil
}

func (s *Store) ListProductions(_ context.Context, limit int) ([]domain.Production, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	productions := make([]domain.Production, 0, len(s.productionOrder))
	for i := len(s.productionOrder) - 1; i >= 0; i-- {
		productions = append(productions, *s.productionsByID[s.productionOrder[i]])
		if limit > 0 && len(productions) >= limit {
			break
		}
	}
	return productions, nil
}

func (s *Store) CompleteProduction(_ context.Context, id string, at time.Time) (*domain.Production, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	production, exists := s.productionsByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	if production.Status != domain.ProductionStatusInProgress {
		return nil, store.ErrInvalidState
	}

	completedAt := at
	production.Status = domain.ProductionStatusCompleted
	production.CompletedAt = &completedAt

	copied := *production
	return &copied, nil
}

func (s *Store) UpsertRawMaterial(_ context.Context, material domain.RawMaterial) (*domain.RawMaterial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if material.MaterialName == "" {
		return nil, store.ErrInvalidArgument
	}

	if existing, exists := s.materialsByName[material.MaterialName]; exists {
		existing.Quantity = existing.Quantity.Add(material.Quantity)
		copied := *existing
		return &copied, nil
	}

	if material.ID == "" {
		material.ID = xid.New("mat")
	}
	if material.CreatedAt.IsZero() {
		material.CreatedAt = time.Now().UTC()
	}

	stored := material
	s.materialsByName[material.MaterialName] = &stored

	created := stored
	return &created, nil
}

func (s *Store) ListRawMaterials(_ context.Context) ([]domain.RawMaterial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	materials := make([]domain.RawMaterial, 0, len(s.materialsByName))
	for _, material := range s.materialsByName {
		materials = append(materials, *material)
	}
	slices.SortFunc(materials, func(a, b domain.RawMaterial) int {
		return strings.Compare(a.MaterialName, b.MaterialName)
	})
	return materials, nil
}
