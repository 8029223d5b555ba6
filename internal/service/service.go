package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"cashops/backend/internal/cache"
	"cashops/backend/internal/domain"
	"cashops/backend/internal/store"
)

type actorContextKey struct{}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(domain.Actor)
	return actor, ok
}

const (
	defaultListLimit   = 100
	recentSalesWindow  = 5
	dashboardKeyPrefix = "dashboard:"
)

type Service struct {
	repo         store.Repository
	dashboards   cache.DashboardCache
	dashboardTTL time.Duration
}

func New(repo store.Repository, dashboards cache.DashboardCache, dashboardTTL time.Duration) *Service {
	if dashboards == nil {
		dashboards = cache.NoopDashboardCache{}
	}
	if dashboardTTL <= 0 {
		dashboardTTL = 5 * time.Second
	}

	return &Service{
		repo:         repo,
		dashboards:   dashboards,
		dashboardTTL: dashboardTTL,
	}
}

// currentManager resolves the request actor to its stored manager record.
func (s *Service) currentManager(ctx context.Context) (*domain.Manager, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: missing actor", store.ErrForbidden)
	}
	manager, err := s.repo.GetManagerByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return manager, nil
}

func (s *Service) GetManager(ctx context.Context, id string) (domain.Manager, error) {
	manager, err := s.repo.GetManagerByID(ctx, id)
	if err != nil {
		return domain.Manager{}, err
	}
	return *manager, nil
}

func (s *Service) ListManagers(ctx context.Context) ([]domain.Manager, error) {
	return s.repo.ListManagersByRole(ctx, domain.RoleManager)
}

func (s *Service) CreateSale(ctx context.Context, req domain.SaleCreateRequest) (domain.Sale, error) {
	collector, err := s.currentManager(ctx)
	if err != nil {
		return domain.Sale{}, err
	}

	if req.PaymentType != domain.PaymentTypeCash && req.PaymentType != domain.PaymentTypeCredit {
		return domain.Sale{}, fmt.Errorf("%w: payment_type must be cash or credit", store.ErrInvalidArgument)
	}
	if !req.TotalAmount.IsPositive() {
		return domain.Sale{}, fmt.Errorf("%w: total_amount must be positive", store.ErrInvalidArgument)
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return domain.Sale{}, fmt.Errorf("%w: customer_name is required", store.ErrInvalidArgument)
	}

	paid := decimal.Zero
	if req.PaymentType == domain.PaymentTypeCash {
		paid = req.TotalAmount
	}

	sale := domain.Sale{
		CustomerName:    strings.TrimSpace(req.CustomerName),
		Items:           req.Items,
		TotalAmount:     req.TotalAmount,
		PaymentType:     req.PaymentType,
		CollectedBy:     collector.ID,
		CollectedByName: collector.Name,
		Status:          domain.SaleStatusFor(paid, req.TotalAmount, req.PaymentType),
		PaidAmount:      paid,
		Notes:           req.Notes,
		CreatedAt:       time.Now().UTC(),
	}

	created, err := s.repo.CreateSale(ctx, sale)
	if err != nil {
		return domain.Sale{}, err
	}
	return *created, nil
}

func (s *Service) GetSale(ctx context.Context, id string) (domain.Sale, error) {
	sale, err := s.repo.GetSale(ctx, id)
	if err != nil {
		return domain.Sale{}, err
	}
	return *sale, nil
}

func (s *Service) ListSales(ctx context.Context) ([]domain.Sale, error) {
	return s.repo.ListSales(ctx, defaultListLimit)
}

func (s *Service) ListCreditSales(ctx context.Context) ([]domain.Sale, error) {
	return s.repo.ListSalesByPaymentType(ctx, domain.PaymentTypeCredit, defaultListLimit)
}

// RecordCreditPayment applies a collection against a credit sale. The payment
// record, the sale's paid amount/status and the collector's balance credit
// commit as one atomic unit in the store.
//
// No upper bound is enforced relative to the sale's remaining balance:
// overpayment raises paid_amount above total_amount and the sale resolves to
// settled. This is a known business-rule gap kept for compatibility.
func (s *Service) RecordCreditPayment(ctx context.Context, req domain.CreditPaymentRequest) (domain.CreditPayment, domain.Sale, error) {
	collector, err := s.currentManager(ctx)
	if err != nil {
		return domain.CreditPayment{}, domain.Sale{}, err
	}

	if !req.Amount.IsPositive() {
		return domain.CreditPayment{}, domain.Sale{}, fmt.Errorf("%w: payment amount must be positive", store.ErrInvalidArgument)
	}

	payment := domain.CreditPayment{
		SaleID:          req.SaleID,
		Amount:          req.Amount,
		CollectedBy:     collector.ID,
		CollectedByName: collector.Name,
		Notes:           req.Notes,
		CreatedAt:       time.Now().UTC(),
	}

	created, sale, err := s.repo.ApplyCreditPayment(ctx, payment)
	if err != nil {
		return domain.CreditPayment{}, domain.Sale{}, err
	}
	return *created, *sale, nil
}

// RequestTransfer opens a pending peer-to-peer cash transfer. The sender's
// balance is checked at request time only; no hold is placed on the amount,
// so the balance can change before approval and the approval step does not
// re-check. The check is advisory by design.
func (s *Service) RequestTransfer(ctx context.Context, req domain.TransferCreateRequest) (domain.Transfer, error) {
	sender, err := s.currentManager(ctx)
	if err != nil {
		return domain.Transfer{}, err
	}

	if !req.Amount.IsPositive() {
		return domain.Transfer{}, fmt.Errorf("%w: transfer amount must be positive", store.ErrInvalidArgument)
	}

	balance, err := s.repo.GetBalance(ctx, sender.ID)
	if err != nil {
		return domain.Transfer{}, err
	}
	if balance.LessThan(req.Amount) {
		return domain.Transfer{}, store.ErrInsufficientBalance
	}

	recipient, err := s.repo.GetManagerByID(ctx, req.ToManagerID)
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("recipient: %w", err)
	}

	transfer := domain.Transfer{
		FromManagerID:   sender.ID,
		FromManagerName: sender.Name,
		ToManagerID:     recipient.ID,
		ToManagerName:   recipient.Name,
		Amount:          req.Amount,
		Reason:          req.Reason,
		Status:          domain.TransferStatusPending,
		CreatedAt:       time.Now().UTC(),
	}

	created, err := s.repo.CreateTransfer(ctx, transfer)
	if err != nil {
		return domain.Transfer{}, err
	}
	return *created, nil
}

// decisionStatus maps a decision action onto the terminal transfer status.
// An explicit mapping, so an unknown action can never leak through as a
// malformed status value.
var decisionStatus = map[string]string{
	domain.TransferActionApprove: domain.TransferStatusApproved,
	domain.TransferActionReject:  domain.TransferStatusRejected,
}

// DecideTransfer lets the recipient approve or reject a pending transfer.
// Approval debits the sender and credits the recipient atomically with the
// status change; rejection mutates no balances. A transfer already in a
// terminal state fails with ErrInvalidState and is never double-applied.
func (s *Service) DecideTransfer(ctx context.Context, transferID string, action string) (domain.Transfer, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return domain.Transfer{}, fmt.Errorf("%w: missing actor", store.ErrForbidden)
	}

	status, known := decisionStatus[action]
	if !known {
		return domain.Transfer{}, fmt.Errorf("%w: action must be approve or reject", store.ErrInvalidArgument)
	}

	transfer, err := s.repo.GetTransfer(ctx, transferID)
	if err != nil {
		return domain.Transfer{}, err
	}
	if transfer.ToManagerID != actor.ID {
		return domain.Transfer{}, fmt.Errorf("%w: only the recipient can decide a transfer", store.ErrForbidden)
	}
	if transfer.Status != domain.TransferStatusPending {
		return domain.Transfer{}, fmt.Errorf("%w: transfer already processed", store.ErrInvalidState)
	}

	decided, err := s.repo.DecideTransfer(ctx, transferID, status, time.Now().UTC())
	if err != nil {
		return domain.Transfer{}, err
	}
	return *decided, nil
}

func (s *Service) ListTransfers(ctx context.Context) ([]domain.Transfer, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: missing actor", store.ErrForbidden)
	}
	return s.repo.ListTransfersByManager(ctx, actor.ID, defaultListLimit)
}

func (s *Service) Dashboard(ctx context.Context) (domain.DashboardResponse, error) {
	manager, err := s.currentManager(ctx)
	if err != nil {
		return domain.DashboardResponse{}, err
	}

	cacheKey := dashboardKeyPrefix + manager.ID
	if cached, found, err := s.dashboards.Get(ctx, cacheKey); err == nil && found {
		return *cached, nil
	} else if err != nil {
		log.Printf("[service] WARN: dashboard cache get failed: %v", err)
	}

	managers, err := s.repo.ListManagersByRole(ctx, domain.RoleManager)
	if err != nil {
		return domain.DashboardResponse{}, err
	}
	pending, err := s.repo.ListPendingTransfersTo(ctx, manager.ID, defaultListLimit)
	if err != nil {
		return domain.DashboardResponse{}, err
	}
	recentCount, err := s.repo.CountRecentSalesByCollector(ctx, manager.ID, recentSalesWindow)
	if err != nil {
		return domain.DashboardResponse{}, err
	}

	resp := domain.DashboardResponse{
		MyCashBalance:           manager.CashBalance,
		Managers:                make([]domain.DashboardManager, 0, len(managers)),
		PendingApprovals:        make([]domain.DashboardPendingTransfer, 0, len(pending)),
		RecentTransactionsCount: recentCount,
	}
	for _, m := range managers {
		resp.Managers = append(resp.Managers, domain.DashboardManager{
			ID:          m.ID,
			Name:        m.Name,
			CashBalance: m.CashBalance,
		})
	}
	for _, t := range pending {
		resp.PendingApprovals = append(resp.PendingApprovals, domain.DashboardPendingTransfer{
			ID:              t.ID,
			FromManagerName: t.FromManagerName,
			Amount:          t.Amount,
			Reason:          t.Reason,
			CreatedAt:       t.CreatedAt,
		})
	}

	if err := s.dashboards.Set(ctx, cacheKey, &resp, s.dashboardTTL); err != nil {
		log.Printf("[service] WARN: dashboard cache set failed: %v", err)
	}

	return resp, nil
}

func (s *Service) CreateProduction(ctx context.Context, req domain.ProductionCreateRequest) (domain.Production, error) {
	creator, err := s.currentManager(ctx)
	if err != nil {
		return domain.Production{}, err
	}

	if strings.TrimSpace(req.ProductName) == "" {
		return domain.Production{}, fmt.Errorf("%w: product_name is required", store.ErrInvalidArgument)
	}
	if !req.Quantity.IsPositive() {
		return domain.Production{}, fmt.Errorf("%w: quantity must be positive", store.ErrInvalidArgument)
	}

	production := domain.Production{
		ProductName:      strings.TrimSpace(req.ProductName),
		Quantity:         req.Quantity,
		Unit:             req.Unit,
		RawMaterialsUsed: req.RawMaterialsUsed,
		Workers:          req.Workers,
		Status:           domain.ProductionStatusInProgress,
		CreatedBy:        creator.ID,
		CreatedByName:    creator.Name,
		Notes:            req.Notes,
		CreatedAt:        time.Now().UTC(),
	}

	created, err := s.repo.CreateProduction(ctx, production)
	if err != nil {
		return domain.Production{}, err
	}
	return *created, nil
}

func (s *Service) ListProductions(ctx context.Context) ([]domain.Production, error) {
	return s.repo.ListProductions(ctx, defaultListLimit)
}

func (s *Service) CompleteProduction(ctx context.Context, id string) (domain.Production, error) {
	completed, err := s.repo.CompleteProduction(ctx, id, time.Now().UTC())
	if err != nil {
		return domain.Production{}, err
	}
	return *completed, nil
}

func (s *Service) AddRawMaterial(ctx context.Context, req domain.RawMaterialCreateRequest) (domain.RawMaterial, error) {
	adder, err := s.currentManager(ctx)
	if err != nil {
		return domain.RawMaterial{}, err
	}

	if strings.TrimSpace(req.MaterialName) == "" {
		return domain.RawMaterial{}, fmt.Errorf("%w: material_name is required", store.ErrInvalidArgument)
	}
	if req.Quantity.IsNegative() {
		return domain.RawMaterial{}, fmt.Errorf("%w: quantity must not be negative", store.ErrInvalidArgument)
	}

	material := domain.RawMaterial{
		MaterialName: strings.TrimSpace(req.MaterialName),
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		UnitPrice:    req.UnitPrice,
		SupplierName: req.SupplierName,
		AddedBy:      adder.ID,
		AddedByName:  adder.Name,
		Notes:        req.Notes,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.UpsertRawMaterial(ctx, material)
	if err != nil {
		return domain.RawMaterial{}, err
	}
	return *created, nil
}

func (s *Service) ListRawMaterials(ctx context.Context) ([]domain.RawMaterial, error) {
	return s.repo.ListRawMaterials(ctx)
}
