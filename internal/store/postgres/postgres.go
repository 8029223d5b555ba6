package postgres

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"

	"cashops/backend/internal/domain"
	"cashops/backend/internal/store"
	"cashops/backend/internal/xid"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Store struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(8)
	db.SetMaxOpenConns(30)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("iofs source: %w", err)
	}
	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("init postgres driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migrate instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("m.Up: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// withTx runs fn inside a transaction, committing on nil and rolling back otherwise.
func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after fn error: %v (fn err: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *Store) CreateManager(ctx context.Context, manager domain.Manager) (*domain.Manager, error) {
	if manager.Email == "" || manager.Name == "" || manager.Password == "" {
		return nil, store.ErrInvalidArgument
	}
	if manager.ID == "" {
		manager.ID = xid.New("mgr")
	}
	if manager.CreatedAt.IsZero() {
		manager.CreatedAt = time.Now().UTC()
	}
	manager.CashBalance = decimal.Zero

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO managers (id, name, email, password, role, cash_balance, created_at)
		VALUES ($1,$2,$3,$4,$5,0,$6)
	`, manager.ID, manager.Name, manager.Email, manager.Password, manager.Role, manager.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrEmailTaken
		}
		return nil, err
	}

	created := manager
	return &created, nil
}

const managerColumns = `id, name, email, password, role, cash_balance, created_at`

func scanManager(row *sql.Row) (*domain.Manager, error) {
	var m domain.Manager
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Password, &m.Role, &m.CashBalance, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *Store) GetManagerByID(ctx context.Context, id string) (*domain.Manager, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+managerColumns+` FROM managers WHERE id = $1`, id)
	return scanManager(row)
}

func (s *Store) GetManagerByEmail(ctx context.Context, email string) (*domain.Manager, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+managerColumns+` FROM managers WHERE email = $1`, email)
	return scanManager(row)
}

func (s *Store) ListManagersByRole(ctx context.Context, role string) ([]domain.Manager, error) {
	query := `SELECT ` + managerColumns + ` FROM managers ORDER BY name`
	args := []any{}
	if role != "" {
		query = `SELECT ` + managerColumns + ` FROM managers WHERE role = $1 ORDER BY name`
		args = append(args, role)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	managers := make([]domain.Manager, 0, 32)
	for rows.Next() {
		var m domain.Manager
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Password, &m.Role, &m.CashBalance, &m.CreatedAt); err != nil {
			return nil, err
		}
		managers = append(managers, m)
	}
	return managers, rows.Err()
}

func (s *Store) AdjustBalance(ctx context.Context, managerID string, delta decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.db.QueryRowContext(ctx, `
		UPDATE managers SET cash_balance = cash_balance + $2
		WHERE id = $1
		RETURNING cash_balance
	`, managerID, delta).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, store.ErrNotFound
		}
		return decimal.Zero, err
	}
	return balance, nil
}

func (s *Store) GetBalance(ctx context.Context, managerID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.db.QueryRowContext(ctx, `SELECT cash_balance FROM managers WHERE id = $1`, managerID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, store.ErrNotFound
		}
		return decimal.Zero, err
	}
	return balance, nil
}

// adjustBalanceTx applies an atomic increment inside an open transaction.
func adjustBalanceTx(tx *sql.Tx, managerID string, delta decimal.Decimal) error {
	res, err := tx.Exec(`
		UPDATE managers SET cash_balance = cash_balance + $2
		WHERE id = $1
	`, managerID, delta)
	if err != nil {
		return fmt.Errorf("adjust balance: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CreateSale(ctx context.Context, sale domain.Sale) (*domain.Sale, error) {
	if sale.ID == "" {
		sale.ID = xid.New("sale")
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now().UTC()
	}

	itemsJSON, err := json.Marshal(sale.Items)
	if err != nil {
		return nil, err
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		var seq int64
		if err := tx.QueryRow(`SELECT nextval('sale_number_seq')`).Scan(&seq); err != nil {
			return fmt.Errorf("sale number: %w", err)
		}
		sale.SaleNumber = fmt.Sprintf("SALE-%06d", seq)

		_, err := tx.Exec(`
			INSERT INTO sales (id, sale_number, customer_name, items, total_amount, payment_type,
				collected_by, collected_by_name, status, paid_amount, notes, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		`, sale.ID, sale.SaleNumber, sale.CustomerName, itemsJSON, sale.TotalAmount, sale.PaymentType,
			sale.CollectedBy, sale.CollectedByName, sale.Status, sale.PaidAmount, sale.Notes, sale.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert sale: %w", err)
		}

		if sale.PaymentType == domain.PaymentTypeCash {
			return adjustBalanceTx(tx, sale.CollectedBy, sale.TotalAmount)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created := sale
	return &created, nil
}

const saleColumns = `id, sale_number, customer_name, items, total_amount, payment_type,
	collected_by, collected_by_name, status, paid_amount, notes, created_at`

func scanSale(scan func(dest ...any) error) (*domain.Sale, error) {
	var sale domain.Sale
	var itemsJSON []byte
	err := scan(&sale.ID, &sale.SaleNumber, &sale.CustomerName, &itemsJSON, &sale.TotalAmount,
		&sale.PaymentType, &sale.CollectedBy, &sale.CollectedByName, &sale.Status,
		&sale.PaidAmount, &sale.Notes, &sale.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &sale.Items); err != nil {
		return nil, fmt.Errorf("decode sale items: %w", err)
	}
	return &sale, nil
}

func (s *Store) GetSale(ctx context.Context, id string) (*domain.Sale, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
	sale, err := scanSale(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return sale, nil
}

func (s *Store) ListSales(ctx context.Context, limit int) ([]domain.Sale, error) {
	return s.querySales(ctx, `SELECT `+saleColumns+` FROM sales ORDER BY created_at DESC LIMIT $1`, limit)
}

func (s *Store) ListSalesByPaymentType(ctx context.Context, paymentType string, limit int) ([]domain.Sale, error) {
	return s.querySales(ctx, `
		SELECT `+saleColumns+` FROM sales
		WHERE payment_type = $2
		ORDER BY created_at DESC LIMIT $1`, limit, paymentType)
}

func (s *Store) querySales(ctx context.Context, query string, limit int, args ...any) ([]domain.Sale, error) {
	if limit < 1 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, query, append([]any{limit}, args...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := make([]domain.Sale, 0, limit)
	for rows.Next() {
		sale, err := scanSale(rows.Scan)
		if err != nil {
			return nil, err
		}
		sales = append(sales, *sale)
	}
	return sales, rows.Err()
}

func (s *Store) CountRecentSalesByCollector(ctx context.Context, collectorID string, limit int) (int, error) {
	if limit < 1 {
		limit = 5
	}
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM (
			SELECT id FROM sales
			WHERE collected_by = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent
	`, collectorID, limit).Scan(&count)
	return count, err
}

func (s *Store) ApplyCreditPayment(ctx context.Context, payment domain.CreditPayment) (*domain.CreditPayment, *domain.Sale, error) {
	if payment.ID == "" {
		payment.ID = xid.New("pay")
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now().UTC()
	}

	var updated *domain.Sale
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRow(`SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, payment.SaleID)
		sale, err := scanSale(row.Scan)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return store.ErrNotFound
			}
			return err
		}
		if sale.PaymentType != domain.PaymentTypeCredit {
			return store.ErrInvalidState
		}

		sale.PaidAmount = sale.PaidAmount.Add(payment.Amount)
		sale.Status = domain.SaleStatusFor(sale.PaidAmount, sale.TotalAmount, sale.PaymentType)

		_, err = tx.Exec(`
			INSERT INTO credit_payments (id, sale_id, amount, collected_by, collected_by_name, notes, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, payment.ID, payment.SaleID, payment.Amount, payment.CollectedBy, payment.CollectedByName,
			payment.Notes, payment.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert credit payment: %w", err)
		}

		_, err = tx.Exec(`
			UPDATE sales SET paid_amount = $2, status = $3 WHERE id = $1
		`, sale.ID, sale.PaidAmount, sale.Status)
		if err != nil {
			return fmt.Errorf("update sale payment state: %w", err)
		}

		if err := adjustBalanceTx(tx, payment.CollectedBy, payment.Amount); err != nil {
			return err
		}

		updated = sale
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	created := payment
	return &created, updated, nil
}

const transferColumns = `id, from_manager_id, from_manager_name, to_manager_id, to_manager_name,
	amount, reason, status, created_at, approved_at`

func scanTransfer(scan func(dest ...any) error) (*domain.Transfer, error) {
	var t domain.Transfer
	var approvedAt sql.NullTime
	err := scan(&t.ID, &t.FromManagerID, &t.FromManagerName, &t.ToManagerID, &t.ToManagerName,
		&t.Amount, &t.Reason, &t.Status, &t.CreatedAt, &approvedAt)
	if err != nil {
		return nil, err
	}
	if approvedAt.Valid {
		t.ApprovedAt = &approvedAt.Time
	}
	return &t, nil
}

func (s *Store) CreateTransfer(ctx context.Context, transfer domain.Transfer) (*domain.Transfer, error) {
	if transfer.ID == "" {
		transfer.ID = xid.New("trf")
	}
	if transfer.CreatedAt.IsZero() {
		transfer.CreatedAt = time.Now().UTC()
	}
	transfer.Status = domain.TransferStatusPending

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transfers (id, from_manager_id, from_manager_name, to_manager_id, to_manager_name,
			amount, reason, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, transfer.ID, transfer.FromManagerID, transfer.FromManagerName, transfer.ToManagerID,
		transfer.ToManagerName, transfer.Amount, transfer.Reason, transfer.Status, transfer.CreatedAt)
	if err != nil {
		return nil, err
	}

	created := transfer
	return &created, nil
}

func (s *Store) GetTransfer(ctx context.Context, id string) (*domain.Transfer, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = $1`, id)
	transfer, err := scanTransfer(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return transfer, nil
}

func (s *Store) ListTransfersByManager(ctx context.Context, managerID string, limit int) ([]domain.Transfer, error) {
	return s.queryTransfers(ctx, `
		SELECT `+transferColumns+` FROM transfers
		WHERE from_manager_id = $2 OR to_manager_id = $2
		ORDER BY created_at DESC LIMIT $1`, limit, managerID)
}

func (s *Store) ListPendingTransfersTo(ctx context.Context, managerID string, limit int) ([]domain.Transfer, error) {
	return s.queryTransfers(ctx, `
		SELECT `+transferColumns+` FROM transfers
		WHERE to_manager_id = $2 AND status = 'pending'
		ORDER BY created_at DESC LIMIT $1`, limit, managerID)
}

func (s *Store) queryTransfers(ctx context.Context, query string, limit int, args ...any) ([]domain.Transfer, error) {
	if limit < 1 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, query, append([]any{limit}, args...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transfers := make([]domain.Transfer, 0, limit)
	for rows.Next() {
		transfer, err := scanTransfer(rows.Scan)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, *transfer)
	}
	return transfers, rows.Err()
}

func (s *Store) DecideTransfer(ctx context.Context, id string, status string, at time.Time) (*domain.Transfer, error) {
	if status != domain.TransferStatusApproved && status != domain.TransferStatusRejected {
		return nil, store.ErrInvalidArgument
	}

	var decided *domain.Transfer
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		// The status guard makes terminal transfers immutable: a concurrent or
		// repeated decision matches zero rows and fails with ErrInvalidState.
		row := tx.QueryRow(`
			UPDATE transfers SET status = $2, approved_at = $3
			WHERE id = $1 AND status = 'pending'
			RETURNING `+transferColumns, id, status, at)
		transfer, err := scanTransfer(row.Scan)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				var exists bool
				if err := tx.QueryRow(`SELECT EXISTS (SELECT 1 FROM transfers WHERE id = $1)`, id).Scan(&exists); err != nil {
					return err
				}
				if !exists {
					return store.ErrNotFound
				}
				return store.ErrInvalidState
			}
			return err
		}

		if status == domain.TransferStatusApproved {
			if err := adjustBalanceTx(tx, transfer.FromManagerID, transfer.Amount.Neg()); err != nil {
				return err
			}
			if err := adjustBalanceTx(tx, transfer.ToManagerID, transfer.Amount); err != nil {
				return err
			}
		}

		decided = transfer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decided, nil
}

func (s *Store) CreateProduction(ctx context.Context, production domain.Production) (*domain.Production, error) {
	if production.ID == "" {
		production.ID = xid.New("prod")
	}
	if production.CreatedAt.IsZero() {
		production.CreatedAt = time.Now().UTC()
	}
	production.Status = domain.ProductionStatusInProgress

	materialsJSON, err := json.Marshal(production.RawMaterialsUsed)
	if err != nil {
		return nil, err
	}
	workersJSON, err := json.Marshal(production.Workers)
	if err != nil {
		return nil, err
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		var seq int64
		if err := tx.QueryRow(`SELECT nextval('production_number_seq')`).Scan(&seq); err != nil {
			return fmt.Errorf("production number: %w", err)
		}
		production.ProductionNumber = fmt.Sprintf("PROD-%06d", seq)

		_, err := tx.Exec(`
			INSERT INTO productions (id, production_number, product_name, quantity, unit,
				raw_materials_used, workers, status, created_by, created_by_name, notes, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		`, production.ID, production.ProductionNumber, production.ProductName, production.Quantity,
			production.Unit, materialsJSON, workersJSON, production.Status, production.CreatedBy,
			production.CreatedByName, production.Notes, production.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert production: %w", err)
		}

		for _, usage := range production.RawMaterialsUsed {
			_, err := tx.Exec(`
				UPDATE raw_materials SET quantity = quantity - $2 WHERE material_name = $1
			`, usage.MaterialName, usage.QuantityUsed)
			if err != nil {
				return fmt.Errorf("consume raw material %s: %w", usage.MaterialName, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created := production
	return &created, nil
}

const productionColumns = `id, production_number, product_name, quantity, unit,
	raw_materials_used, workers, status, created_by, created_by_name, notes, created_at, completed_at`

func scanProduction(scan func(dest ...any) error) (*domain.Production, error) {
	var p domain.Production
	var materialsJSON, workersJSON []byte
	var completedAt sql.NullTime
	err := scan(&p.ID, &p.ProductionNumber, &p.ProductName, &p.Quantity, &p.Unit,
		&materialsJSON, &workersJSON, &p.Status, &p.CreatedBy, &p.CreatedByName,
		&p.Notes, &p.CreatedAt, &completedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(materialsJSON, &p.RawMaterialsUsed); err != nil {
		return nil, fmt.Errorf("decode raw materials: %w", err)
	}
	if err := json.Unmarshal(workersJSON, &p.Workers); err != nil {
		return nil, fmt.Errorf("decode workers: %w", err)
	}
	if completedAt.Valid {
		p.CompletedAt = &completedAt.Time
	}
	return &p, nil
}

func (s *Store) ListProductions(ctx context.Context, limit int) ([]domain.Production, error) {
	if limit < 1 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+productionColumns+` FROM productions
		ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	productions := make([]domain.Production, 0, limit)
	for rows.Next() {
		production, err := scanProduction(rows.Scan)
		if err != nil {
			return nil, err
		}
		productions = append(productions, *production)
	}
	return productions, rows.Err()
}

func (s *Store) CompleteProduction(ctx context.Context, id string, at time.Time) (*domain.Production, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE productions SET status = $2, completed_at = $3
		WHERE id = $1 AND status = $4
		RETURNING `+productionColumns,
		id, domain.ProductionStatusCompleted, at, domain.ProductionStatusInProgress)
	production, err := scanProduction(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			var exists bool
			if err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM productions WHERE id = $1)`, id).Scan(&exists); err != nil {
				return nil, err
			}
			if !exists {
				return nil, store.ErrNotFound
			}
			return nil, store.ErrInvalidState
		}
		return nil, err
	}
	return production, nil
}

const rawMaterialColumns = `id, material_name, quantity, unit, unit_price, supplier_name,
	added_by, added_by_name, notes, created_at`

func (s *Store) UpsertRawMaterial(ctx context.Context, material domain.RawMaterial) (*domain.RawMaterial, error) {
	if material.MaterialName == "" {
		return nil, store.ErrInvalidArgument
	}
	if material.ID == "" {
		material.ID = xid.New("mat")
	}
	if material.CreatedAt.IsZero() {
		material.CreatedAt = time.Now().UTC()
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO raw_materials (id, material_name, quantity, unit, unit_price, supplier_name,
			added_by, added_by_name, notes, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (material_name) DO UPDATE
			SET quantity = raw_materials.quantity + EXCLUDED.quantity
		RETURNING `+rawMaterialColumns,
		material.ID, material.MaterialName, material.Quantity, material.Unit, material.UnitPrice,
		material.SupplierName, material.AddedBy, material.AddedByName, material.Notes, material.CreatedAt)

	var m domain.RawMaterial
	err := row.Scan(&m.ID, &m.MaterialName, &m.Quantity, &m.Unit, &m.UnitPrice, &m.SupplierName,
		&m.AddedBy, &m.AddedByName, &m.Notes, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) ListRawMaterials(ctx context.Context) ([]domain.RawMaterial, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+rawMaterialColumns+` FROM raw_materials ORDER BY material_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	materials := make([]domain.RawMaterial, 0, 32)
	for rows.Next() {
		var m domain.RawMaterial
		if err := rows.Scan(&m.ID, &m.MaterialName, &m.Quantity, &m.Unit, &m.UnitPrice, &m.SupplierName,
			&m.AddedBy, &m.AddedByName, &m.Notes, &m.CreatedAt); err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}
