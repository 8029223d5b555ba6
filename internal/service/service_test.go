package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"cashops/backend/internal/domain"
	"cashops/backend/internal/service"
	"cashops/backend/internal/store"
	"cashops/backend/internal/store/memory"
)

func newTestService(t *testing.T) (*service.Service, *memory.Store) {
	t.Helper()
	repo := memory.New()
	return service.New(repo, nil, 0), repo
}

func createManager(t *testing.T, repo *memory.Store, name, email string) domain.Manager {
	t.Helper()
	created, err := repo.CreateManager(context.Background(), domain.Manager{
		Name:     name,
		Email:    email,
		Password: "hash",
		Role:     domain.RoleManager,
	})
	if err != nil {
		t.Fatalf("CreateManager(%s): %v", email, err)
	}
	return *created
}

func fundManager(t *testing.T, repo *memory.Store, id string, amount int64) {
	t.Helper()
	if _, err := repo.AdjustBalance(context.Background(), id, decimal.NewFromInt(amount)); err != nil {
		t.Fatalf("AdjustBalance(%s, %d): %v", id, amount, err)
	}
}

func actorCtx(m domain.Manager) context.Context {
	return service.WithActor(context.Background(), domain.Actor{ID: m.ID, Role: m.Role})
}

func balance(t *testing.T, repo *memory.Store, id string) decimal.Decimal {
	t.Helper()
	bal, err := repo.GetBalance(context.Background(), id)
	if err != nil {
		t.Fatalf("GetBalance(%s): %v", id, err)
	}
	return bal
}

func TestCreateCashSaleCreditsCollector(t *testing.T) {
	svc, repo := newTestService(t)
	budi := createManager(t, repo, "Budi", "budi@example.com")

	sale, err := svc.CreateSale(actorCtx(budi), domain.SaleCreateRequest{
		CustomerName: "Toko Maju",
		TotalAmount:  decimal.NewFromInt(250),
		PaymentType:  domain.PaymentTypeCash,
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	if sale.SaleNumber != "SALE-000001" {
		t.Fatalf("sale number = %q, want SALE-000001", sale.SaleNumber)
	}
	if sale.Status != domain.SaleStatusSettled {
		t.Fatalf("cash sale status = %q, want settled", sale.Status)
	}
	if !sale.PaidAmount.Equal(sale.TotalAmount) {
		t.Fatalf("cash sale paid = %s, want %s", sale.PaidAmount, sale.TotalAmount)
	}
	if got := balance(t, repo, budi.ID); !got.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("collector balance = %s, want 250", got)
	}
}

func TestCreateCreditSaleLeavesBalanceUntouched(t *testing.T) {
	svc, repo := newTestService(t)
	budi := createManager(t, repo, "Budi", "budi@example.com")

	sale, err := svc.CreateSale(actorCtx(budi), domain.SaleCreateRequest{
		CustomerName: "Toko Berkah",
		TotalAmount:  decimal.NewFromInt(500),
		PaymentType:  domain.PaymentTypeCredit,
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	if sale.Status != domain.SaleStatusPending {
		t.Fatalf("credit sale status = %q, want pending", sale.Status)
	}
	if !sale.PaidAmount.IsZero() {
		t.Fatalf("credit sale paid = %s, want 0", sale.PaidAmount)
	}
	if got := balance(t, repo, budi.ID); !got.IsZero() {
		t.Fatalf("collector balance = %s, want 0", got)
	}
}

func TestCreateSaleValidation(t *testing.T) {
	svc, repo := newTestService(t)
	budi := createManager(t, repo, "Budi", "budi@example.com")
	ctx := actorCtx(budi)

	cases := []struct {
		name string
		req  domain.SaleCreateRequest
	}{
		{"unknown payment type", domain.SaleCreateRequest{CustomerName: "X", TotalAmount: decimal.NewFromInt(10), PaymentType: "barter"}},
		{"zero amount", domain.SaleCreateRequest{CustomerName: "X", TotalAmount: decimal.Zero, PaymentType: domain.PaymentTypeCash}},
		{"negative amount", domain.SaleCreateRequest{CustomerName: "X", TotalAmount: decimal.NewFromInt(-5), PaymentType: domain.PaymentTypeCash}},
		{"missing customer", domain.SaleCreateRequest{CustomerName: "  ", TotalAmount: decimal.NewFromInt(10), PaymentType: domain.PaymentTypeCash}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateSale(ctx, tc.req); !errors.Is(err, store.ErrInvalidArgument) {
				t.Fatalf("CreateSale error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestCreditPaymentLifecycle(t *testing.T) {
	svc, repo := newTestService(t)
	budi := createManager(t, repo, "Budi", "budi@example.com")
	ctx := actorCtx(budi)

	sale, err := svc.CreateSale(ctx, domain.SaleCreateRequest{
		CustomerName: "Toko Sinar",
		TotalAmount:  decimal.NewFromInt(100),
		PaymentType:  domain.PaymentTypeCredit,
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	_, updated, err := svc.RecordCreditPayment(ctx, domain.CreditPaymentRequest{SaleID: sale.ID, Amount: decimal.NewFromInt(40)})
	if err != nil {
		t.Fatalf("first payment: %v", err)
	}
	if updated.Status != domain.SaleStatusPartial {
		t.Fatalf("status after partial payment = %q, want partial", updated.Status)
	}
	if !updated.PaidAmount.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("paid after partial payment = %s, want 40", updated.PaidAmount)
	}
	if got := balance(t, repo, budi.ID); !got.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("collector balance = %s, want 40", got)
	}

	_, updated, err = svc.RecordCreditPayment(ctx, domain.CreditPaymentRequest{SaleID: sale.ID, Amount: decimal.NewFromInt(60)})
	if err != nil {
		t.Fatalf("second payment: %v", err)
	}
	if updated.Status != domain.SaleStatusSettled {
		t.Fatalf("status after full payment = %q, want settled", updated.Status)
	}
	if got := balance(t, repo, budi.ID); !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("collector balance = %s, want 100", got)
	}
}

func TestCreditPaymentOverpaymentSettles(t *testing.T) {
	svc, repo := newTestService(t)
	budi := createManager(t, repo, "Budi", "budi@example.com")
	ctx := actorCtx(budi)

	sale, err := svc.CreateSale(ctx, domain.SaleCreateRequest{
		CustomerName: "Toko Lima",
		TotalAmount:  decimal.NewFromInt(100),
		PaymentType:  domain.PaymentTypeCredit,
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	_, updated, err := svc.RecordCreditPayment(ctx, domain.CreditPaymentRequest{SaleID: sale.ID, Amount: decimal.NewFromInt(150)})
	if err != nil {
		t.Fatalf("overpayment: %v", err)
	}
	if updated.Status != domain.SaleStatusSettled {
		t.Fatalf("status after overpayment = %q, want settled", updated.Status)
	}
	if !updated.PaidAmount.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("paid after overpayment = %s, want 150", updated.PaidAmount)
	}
	if got := balance(t, repo, budi.ID); !got.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("collector balance = %s, want 150", got)
	}
}

func TestCreditPaymentRejectsCashSale(t *testing.T) {
	svc, repo := newTestService(t)
	budi := createManager(t, repo, "Budi", "budi@example.com")
	ctx := actorCtx(budi)

	sale, err := svc.CreateSale(ctx, domain.SaleCreateRequest{
		CustomerName: "Toko Tunai",
		TotalAmount:  decimal.NewFromInt(50),
		PaymentType:  domain.PaymentTypeCash,
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	_, _, err = svc.RecordCreditPayment(ctx, domain.CreditPaymentRequest{SaleID: sale.ID, Amount: decimal.NewFromInt(10)})
	if !errors.Is(err, store.ErrInvalidState) {
		t.Fatalf("payment against cash sale error = %v, want ErrInvalidState", err)
	}
}

func TestCreditPaymentRequiresPositiveAmount(t *testing.T) {
	svc, repo := newTestService(t)
	budi := createManager(t, repo, "Budi", "budi@example.com")

	_, _, err := svc.RecordCreditPayment(actorCtx(budi), domain.CreditPaymentRequest{SaleID: "sale-x", Amount: decimal.Zero})
	if !errors.Is(err, store.ErrInvalidArgument) {
		t.Fatalf("zero payment error = %v, want ErrInvalidArgument", err)
	}
}

func TestTransferApproveMovesFunds(t *testing.T) {
	svc, repo := newTestService(t)
	sender := createManager(t, repo, "Sender", "sender@example.com")
	recipient := createManager(t, repo, "Recipient", "recipient@example.com")
	fundManager(t, repo, sender.ID, 100)

	transfer, err := svc.RequestTransfer(actorCtx(sender), domain.TransferCreateRequest{
		ToManagerID: recipient.ID,
		Amount:      decimal.NewFromInt(60),
		Reason:      "restock float",
	})
	if err != nil {
		t.Fatalf("RequestTransfer: %v", err)
	}
	if transfer.Status != domain.TransferStatusPending {
		t.Fatalf("new transfer status = %q, want pending", transfer.Status)
	}
	// Requesting must not move any money.
	if got := balance(t, repo, sender.ID); !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("sender balance after request = %s, want 100", got)
	}

	decided, err := svc.DecideTransfer(actorCtx(recipient), transfer.ID, domain.TransferActionApprove)
	if err != nil {
		t.Fatalf("DecideTransfer approve: %v", err)
	}
	if decided.Status != domain.TransferStatusApproved {
		t.Fatalf("decided status = %q, want approved", decided.Status)
	}
	if decided.ApprovedAt == nil {
		t.Fatal("approved transfer has nil ApprovedAt")
	}
	if got := balance(t, repo, sender.ID); !got.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("sender balance after approval = %s, want 40", got)
	}
	if got := balance(t, repo, recipient.ID); !got.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("recipient balance after approval = %s, want 60", got)
	}
}

func TestTransferRejectLeavesBalances(t *testing.T) {
	svc, repo := newTestService(t)
	sender := createManager(t, repo, "Sender", "sender@example.com")
	recipient := createManager(t, repo, "Recipient", "recipient@example.com")
	fundManager(t, repo, sender.ID, 100)

	transfer, err := svc.RequestTransfer(actorCtx(sender), domain.TransferCreateRequest{
		ToManagerID: recipient.ID,
		Amount:      decimal.NewFromInt(30),
	})
	if err != nil {
		t.Fatalf("RequestTransfer: %v", err)
	}

	decided, err := svc.DecideTransfer(actorCtx(recipient), transfer.ID, domain.TransferActionReject)
	if err != nil {
		t.Fatalf("DecideTransfer reject: %v", err)
	}
	if decided.Status != domain.TransferStatusRejected {
		t.Fatalf("decided status = %q, want rejected", decided.Status)
	}
	if got := balance(t, repo, sender.ID); !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("sender balance after rejection = %s, want 100", got)
	}
	if got := balance(t, repo, recipient.ID); !got.IsZero() {
		t.Fatalf("recipient balance after rejection = %s, want 0", got)
	}
}

func TestTransferInsufficientBalance(t *testing.T) {
	svc, repo := newTestService(t)
	sender := createManager(t, repo, "Sender", "sender@example.com")
	recipient := createManager(t, repo, "Recipient", "recipient@example.com")
	fundManager(t, repo, sender.ID, 10)

	_, err := svc.RequestTransfer(actorCtx(sender), domain.TransferCreateRequest{
		ToManagerID: recipient.ID,
		Amount:      decimal.NewFromInt(50),
	})
	if !errors.Is(err, store.ErrInsufficientBalance) {
		t.Fatalf("RequestTransfer error = %v, want ErrInsufficientBalance", err)
	}

	// A failed request leaves no transfer record behind.
	transfers, err := svc.ListTransfers(actorCtx(sender))
	if err != nil {
		t.Fatalf("ListTransfers: %v", err)
	}
	if len(transfers) != 0 {
		t.Fatalf("transfers after failed request = %d, want 0", len(transfers))
	}
}

func TestTransferUnknownRecipient(t *testing.T) {
	svc, repo := newTestService(t)
	sender := createManager(t, repo, "Sender", "sender@example.com")
	fundManager(t, repo, sender.ID, 100)

	_, err := svc.RequestTransfer(actorCtx(sender), domain.TransferCreateRequest{
		ToManagerID: "mgr-missing",
		Amount:      decimal.NewFromInt(10),
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("RequestTransfer error = %v, want ErrNotFound", err)
	}
}

func TestTransferDecisionOnlyByRecipient(t *testing.T) {
	svc, repo := newTestService(t)
	sender := createManager(t, repo, "Sender", "sender@example.com")
	recipient := createManager(t, repo, "Recipient", "recipient@example.com")
	other := createManager(t, repo, "Other", "other@example.com")
	fundManager(t, repo, sender.ID, 100)

	transfer, err := svc.RequestTransfer(actorCtx(sender), domain.TransferCreateRequest{
		ToManagerID: recipient.ID,
		Amount:      decimal.NewFromInt(20),
	})
	if err != nil {
		t.Fatalf("RequestTransfer: %v", err)
	}

	// Neither the sender nor a third party may decide.
	if _, err := svc.DecideTransfer(actorCtx(sender), transfer.ID, domain.TransferActionApprove); !errors.Is(err, store.ErrForbidden) {
		t.Fatalf("sender decision error = %v, want ErrForbidden", err)
	}
	if _, err := svc.DecideTransfer(actorCtx(other), transfer.ID, domain.TransferActionApprove); !errors.Is(err, store.ErrForbidden) {
		t.Fatalf("third-party decision error = %v, want ErrForbidden", err)
	}
}

func TestTransferDecisionIsTerminal(t *testing.T) {
	svc, repo := newTestService(t)
	sender := createManager(t, repo, "Sender", "sender@example.com")
	recipient := createManager(t, repo, "Recipient", "recipient@example.com")
	fundManager(t, repo, sender.ID, 100)

	transfer, err := svc.RequestTransfer(actorCtx(sender), domain.TransferCreateRequest{
		ToManagerID: recipient.ID,
		Amount:      decimal.NewFromInt(60),
	})
	if err != nil {
		t.Fatalf("RequestTransfer: %v", err)
	}
	if _, err := svc.DecideTransfer(actorCtx(recipient), transfer.ID, domain.TransferActionApprove); err != nil {
		t.Fatalf("first approve: %v", err)
	}

	// Repeating the decision must fail and must not move money again.
	if _, err := svc.DecideTransfer(actorCtx(recipient), transfer.ID, domain.TransferActionApprove); !errors.Is(err, store.ErrInvalidState) {
		t.Fatalf("second approve error = %v, want ErrInvalidState", err)
	}
	if _, err := svc.DecideTransfer(actorCtx(recipient), transfer.ID, domain.TransferActionReject); !errors.Is(err, store.ErrInvalidState) {
		t.Fatalf("reject after approve error = %v, want ErrInvalidState", err)
	}
	if got := balance(t, repo, sender.ID); !got.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("sender balance after repeated decisions = %s, want 40", got)
	}
	if got := balance(t, repo, recipient.ID); !got.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("recipient balance after repeated decisions = %s, want 60", got)
	}
}

func TestTransferUnknownAction(t *testing.T) {
	svc, repo := newTestService(t)
	recipient := createManager(t, repo, "Recipient", "recipient@example.com")

	_, err := svc.DecideTransfer(actorCtx(recipient), "trf-x", "postpone")
	if !errors.Is(err, store.ErrInvalidArgument) {
		t.Fatalf("unknown action error = %v, want ErrInvalidArgument", err)
	}
}

func TestTransfersConserveTotalCash(t *testing.T) {
	svc, repo := newTestService(t)
	a := createManager(t, repo, "A", "a@example.com")
	b := createManager(t, repo, "B", "b@example.com")
	c := createManager(t, repo, "C", "c@example.com")
	fundManager(t, repo, a.ID, 300)
	fundManager(t, repo, b.ID, 200)

	moves := []struct {
		from, to domain.Manager
		amount   int64
		action   string
	}{
		{a, b, 100, domain.TransferActionApprove},
		{b, c, 150, domain.TransferActionApprove},
		{a, c, 50, domain.TransferActionReject},
		{c, a, 25, domain.TransferActionApprove},
	}
	for _, mv := range moves {
		transfer, err := svc.RequestTransfer(actorCtx(mv.from), domain.TransferCreateRequest{
			ToManagerID: mv.to.ID,
			Amount:      decimal.NewFromInt(mv.amount),
		})
		if err != nil {
			t.Fatalf("RequestTransfer %s->%s: %v", mv.from.Name, mv.to.Name, err)
		}
		if _, err := svc.DecideTransfer(actorCtx(mv.to), transfer.ID, mv.action); err != nil {
			t.Fatalf("DecideTransfer %s->%s: %v", mv.from.Name, mv.to.Name, err)
		}
	}

	total := decimal.Zero
	for _, id := range []string{a.ID, b.ID, c.ID} {
		total = total.Add(balance(t, repo, id))
	}
	if !total.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("total cash across managers = %s, want 500", total)
	}
}

func TestListTransfersScopedToManager(t *testing.T) {
	svc, repo := newTestService(t)
	a := createManager(t, repo, "A", "a@example.com")
	b := createManager(t, repo, "B", "b@example.com")
	c := createManager(t, repo, "C", "c@example.com")
	fundManager(t, repo, a.ID, 100)
	fundManager(t, repo, c.ID, 100)

	if _, err := svc.RequestTransfer(actorCtx(a), domain.TransferCreateRequest{ToManagerID: b.ID, Amount: decimal.NewFromInt(10)}); err != nil {
		t.Fatalf("RequestTransfer a->b: %v", err)
	}
	if _, err := svc.RequestTransfer(actorCtx(c), domain.TransferCreateRequest{ToManagerID: b.ID, Amount: decimal.NewFromInt(10)}); err != nil {
		t.Fatalf("RequestTransfer c->b: %v", err)
	}

	forA, err := svc.ListTransfers(actorCtx(a))
	if err != nil {
		t.Fatalf("ListTransfers(a): %v", err)
	}
	if len(forA) != 1 {
		t.Fatalf("transfers visible to a = %d, want 1", len(forA))
	}
	forB, err := svc.ListTransfers(actorCtx(b))
	if err != nil {
		t.Fatalf("ListTransfers(b): %v", err)
	}
	if len(forB) != 2 {
		t.Fatalf("transfers visible to b = %d, want 2", len(forB))
	}
}

func TestDashboard(t *testing.T) {
	svc, repo := newTestService(t)
	budi := createManager(t, repo, "Budi", "budi@example.com")
	sari := createManager(t, repo, "Sari", "sari@example.com")
	fundManager(t, repo, sari.ID, 100)

	if _, err := svc.CreateSale(actorCtx(budi), domain.SaleCreateRequest{
		CustomerName: "Toko Jaya",
		TotalAmount:  decimal.NewFromInt(75),
		PaymentType:  domain.PaymentTypeCash,
	}); err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if _, err := svc.RequestTransfer(actorCtx(sari), domain.TransferCreateRequest{
		ToManagerID: budi.ID,
		Amount:      decimal.NewFromInt(40),
		Reason:      "weekly split",
	}); err != nil {
		t.Fatalf("RequestTransfer: %v", err)
	}

	dash, err := svc.Dashboard(actorCtx(budi))
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if !dash.MyCashBalance.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("my_cash_balance = %s, want 75", dash.MyCashBalance)
	}
	if len(dash.Managers) != 2 {
		t.Fatalf("managers on dashboard = %d, want 2", len(dash.Managers))
	}
	if len(dash.PendingApprovals) != 1 {
		t.Fatalf("pending approvals = %d, want 1", len(dash.PendingApprovals))
	}
	if dash.PendingApprovals[0].FromManagerName != "Sari" {
		t.Fatalf("pending approval sender = %q, want Sari", dash.PendingApprovals[0].FromManagerName)
	}
	if dash.RecentTransactionsCount != 1 {
		t.Fatalf("recent transactions = %d, want 1", dash.RecentTransactionsCount)
	}
}

func TestProductionLifecycle(t *testing.T) {
	svc, repo := newTestService(t)
	budi := createManager(t, repo, "Budi", "budi@example.com")
	ctx := actorCtx(budi)

	production, err := svc.CreateProduction(ctx, domain.ProductionCreateRequest{
		ProductName: "Keripik Singkong",
		Quantity:    decimal.NewFromInt(200),
		Unit:        "pcs",
		Workers:     []string{"Tono", "Rina"},
	})
	if err != nil {
		t.Fatalf("CreateProduction: %v", err)
	}
	if production.ProductionNumber != "PROD-000001" {
		t.Fatalf("production number = %q, want PROD-000001", production.ProductionNumber)
	}
	if production.Status != domain.ProductionStatusInProgress {
		t.Fatalf("new production status = %q, want in_progress", production.Status)
	}

	completed, err := svc.CompleteProduction(ctx, production.ID)
	if err != nil {
		t.Fatalf("CompleteProduction: %v", err)
	}
	if completed.Status != domain.ProductionStatusCompleted {
		t.Fatalf("completed status = %q, want completed", completed.Status)
	}
	if completed.CompletedAt == nil {
		t.Fatal("completed production has nil CompletedAt")
	}

	if _, err := svc.CompleteProduction(ctx, production.ID); !errors.Is(err, store.ErrInvalidState) {
		t.Fatalf("double completion error = %v, want ErrInvalidState", err)
	}
}

func TestProductionConsumesRawMaterials(t *testing.T) {
	svc, repo := newTestService(t)
	budi := createManager(t, repo, "Budi", "budi@example.com")
	ctx := actorCtx(budi)

	if _, err := svc.AddRawMaterial(ctx, domain.RawMaterialCreateRequest{
		MaterialName: "Singkong",
		Quantity:     decimal.NewFromInt(50),
		Unit:         "kg",
	}); err != nil {
		t.Fatalf("AddRawMaterial: %v", err)
	}

	if _, err := svc.CreateProduction(ctx, domain.ProductionCreateRequest{
		ProductName: "Keripik Singkong",
		Quantity:    decimal.NewFromInt(100),
		Unit:        "pcs",
		RawMaterialsUsed: []domain.MaterialUsage{
			{MaterialName: "Singkong", QuantityUsed: decimal.NewFromInt(20)},
		},
	}); err != nil {
		t.Fatalf("CreateProduction: %v", err)
	}

	materials, err := svc.ListRawMaterials(ctx)
	if err != nil {
		t.Fatalf("ListRawMaterials: %v", err)
	}
	if len(materials) != 1 {
		t.Fatalf("materials = %d, want 1", len(materials))
	}
	if !materials[0].Quantity.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("remaining stock = %s, want 30", materials[0].Quantity)
	}
}

func TestRawMaterialUpsertAccumulates(t *testing.T) {
	svc, repo := newTestService(t)
	budi := createManager(t, repo, "Budi", "budi@example.com")
	ctx := actorCtx(budi)

	if _, err := svc.AddRawMaterial(ctx, domain.RawMaterialCreateRequest{
		MaterialName: "Gula",
		Quantity:     decimal.NewFromInt(10),
		Unit:         "kg",
	}); err != nil {
		t.Fatalf("first AddRawMaterial: %v", err)
	}
	material, err := svc.AddRawMaterial(ctx, domain.RawMaterialCreateRequest{
		MaterialName: "Gula",
		Quantity:     decimal.NewFromInt(5),
		Unit:         "kg",
	})
	if err != nil {
		t.Fatalf("second AddRawMaterial: %v", err)
	}
	if !material.Quantity.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("accumulated quantity = %s, want 15", material.Quantity)
	}
}

func TestMissingActorIsForbidden(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateSale(context.Background(), domain.SaleCreateRequest{
		CustomerName: "Toko X",
		TotalAmount:  decimal.NewFromInt(10),
		PaymentType:  domain.PaymentTypeCash,
	})
	if !errors.Is(err, store.ErrForbidden) {
		t.Fatalf("CreateSale without actor error = %v, want ErrForbidden", err)
	}
}
