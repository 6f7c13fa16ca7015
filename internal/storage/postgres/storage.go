package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/print4me/pipeline/internal/domain/errors"
	"github.com/print4me/pipeline/internal/domain/model"
	"github.com/print4me/pipeline/internal/domain/repository"
)

// Pool is the subset of pgxpool.Pool the storage uses. pgxmock implements it.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type eventRepository struct {
	storage *Storage
}

type profileRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
var _ repository.Factory = (*Storage)(nil)

func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Events() repository.EventRepository {
	return &eventRepository{storage: s}
}

func (s *Storage) Profiles() repository.ProfileRepository {
	return &profileRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'customer',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS printer_profiles (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT,
            machine_eur_per_hour DOUBLE PRECISION NOT NULL,
            avg_kw DOUBLE PRECISION NOT NULL,
            build_volume_x_mm DOUBLE PRECISION NOT NULL,
            build_volume_y_mm DOUBLE PRECISION NOT NULL,
            build_volume_z_mm DOUBLE PRECISION NOT NULL,
            active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS material_profiles (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT,
            color TEXT NOT NULL,
            filament_eur_per_kg DOUBLE PRECISION NOT NULL,
            waste_multiplier DOUBLE PRECISION NOT NULL,
            density_g_per_cm3 DOUBLE PRECISION NOT NULL,
            nozzle_temp_c INTEGER NOT NULL,
            bed_temp_c INTEGER NOT NULL,
            active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS pipeline_orders (
            id TEXT PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            status TEXT NOT NULL,
            printer_profile_id TEXT REFERENCES printer_profiles(id),
            material_profile_id TEXT REFERENCES material_profiles(id),
            layer_height_mm DOUBLE PRECISION NOT NULL,
            infill_percent INTEGER NOT NULL,
            supports BOOLEAN NOT NULL DEFAULT FALSE,
            quantity INTEGER NOT NULL DEFAULT 1,
            notes TEXT,
            stl_filename TEXT,
            stl_file_size_bytes BIGINT,
            quote_currency TEXT NOT NULL DEFAULT 'EUR',
            quote_total_cents BIGINT,
            quote_breakdown_json JSONB,
            slicer_estimate_json JSONB,
            pricing_constants_json JSONB,
            checkout_session_id TEXT,
            payment_intent_id TEXT,
            paid_at TIMESTAMPTZ,
            shipping_address_json JSONB,
            tracking_number TEXT,
            label_url TEXT,
            failure_reason TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_events (
            id TEXT PRIMARY KEY,
            order_id TEXT NOT NULL REFERENCES pipeline_orders(id),
            from_status TEXT,
            to_status TEXT NOT NULL,
            message TEXT,
            actor_user_id BIGINT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON pipeline_orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON pipeline_orders(status)`,
		`CREATE INDEX IF NOT EXISTS idx_events_order ON order_events(order_id, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return s.seedProfiles(ctx)
}

func (s *Storage) seedProfiles(ctx context.Context) error {
	statements := []string{
		`INSERT INTO printer_profiles (id, name, description, machine_eur_per_hour, avg_kw, build_volume_x_mm, build_volume_y_mm, build_volume_z_mm)
         VALUES ('0b5c0c2e-9f5e-4f43-9a41-0e8f6f0f7d01', 'Generic FDM', 'Default FDM printer class', 4.0, 0.12, 250, 210, 210)
         ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO material_profiles (id, name, description, color, filament_eur_per_kg, waste_multiplier, density_g_per_cm3, nozzle_temp_c, bed_temp_c)
         VALUES ('6f1df6ce-2c9f-4f6e-8f7b-1f0a2b3c4d02', 'PLA', 'Standard PLA filament', '#222222', 9.83, 0.15, 1.24, 210, 60)
         ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO material_profiles (id, name, description, color, filament_eur_per_kg, waste_multiplier, density_g_per_cm3, nozzle_temp_c, bed_temp_c)
         VALUES ('a3b9a0d4-7d21-4a7e-b6cb-5d1e2f3a4b03', 'PETG', 'Tough PETG filament', '#3b82f6', 14.5, 0.18, 1.27, 240, 80)
         ON CONFLICT (id) DO NOTHING`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("seed profiles: %w", err)
		}
	}
	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash string, role model.UserRole) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash, string(role)).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	u.Role = role
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, role, created_at FROM users WHERE login=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, login))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, password_hash, role, created_at FROM users WHERE id=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	var role string
	err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	u.Role = model.UserRole(role)
	return &u, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, user_id, status, printer_profile_id, material_profile_id,
        layer_height_mm, infill_percent, supports, quantity, notes,
        stl_filename, stl_file_size_bytes, quote_currency, quote_total_cents,
        quote_breakdown_json, slicer_estimate_json, pricing_constants_json,
        checkout_session_id, payment_intent_id, paid_at, shipping_address_json,
        tracking_number, label_url, failure_reason, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o            model.Order
		status       string
		breakdown    []byte
		estimate     []byte
		constants    []byte
		shippingAddr []byte
	)
	err := row.Scan(
		&o.ID, &o.UserID, &status, &o.PrinterProfileID, &o.MaterialProfileID,
		&o.LayerHeightMM, &o.InfillPercent, &o.Supports, &o.Quantity, &o.Notes,
		&o.STLFilename, &o.STLFileSizeBytes, &o.QuoteCurrency, &o.QuoteTotalCents,
		&breakdown, &estimate, &constants,
		&o.CheckoutSessionID, &o.PaymentIntentID, &o.PaidAt, &shippingAddr,
		&o.TrackingNumber, &o.LabelURL, &o.FailureReason, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	o.Status = model.OrderStatus(status)

	if err := unmarshalInto(breakdown, &o.QuoteBreakdown); err != nil {
		return nil, err
	}
	if err := unmarshalInto(estimate, &o.SlicerEstimate); err != nil {
		return nil, err
	}
	if err := unmarshalInto(constants, &o.PricingConstants); err != nil {
		return nil, err
	}
	if err := unmarshalInto(shippingAddr, &o.ShippingAddress); err != nil {
		return nil, err
	}
	return &o, nil
}

// unmarshalInto decodes a jsonb column into **T, leaving nil for NULL columns.
func unmarshalInto[T any](raw []byte, dst **T) error {
	if len(raw) == 0 {
		return nil
	}
	value := new(T)
	if err := json.Unmarshal(raw, value); err != nil {
		return fmt.Errorf("decode jsonb: %w", err)
	}
	*dst = value
	return nil
}

func marshalOrNil[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, *model.OrderEvent, error) {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	order.Status = model.StatusNew
	if order.QuoteCurrency == "" {
		order.QuoteCurrency = "EUR"
	}

	shippingAddr, err := marshalOrNil(order.ShippingAddress)
	if err != nil {
		return nil, nil, err
	}

	event := &model.OrderEvent{
		ID:      uuid.NewString(),
		OrderID: order.ID,
	}

	err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO pipeline_orders (
                id, user_id, status, printer_profile_id, material_profile_id,
                layer_height_mm, infill_percent, supports, quantity, notes,
                stl_filename, stl_file_size_bytes, quote_currency,
                checkout_session_id, shipping_address_json)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
            RETURNING created_at, updated_at`
		if err := tx.QueryRow(ctx, insertOrder,
			order.ID, order.UserID, string(order.Status),
			order.PrinterProfileID, order.MaterialProfileID,
			order.LayerHeightMM, order.InfillPercent, order.Supports, order.Quantity, order.Notes,
			order.STLFilename, order.STLFileSizeBytes, order.QuoteCurrency,
			order.CheckoutSessionID, shippingAddr,
		).Scan(&order.CreatedAt, &order.UpdatedAt); err != nil {
			return err
		}

		const insertEvent = `INSERT INTO order_events (id, order_id, from_status, to_status, message, actor_user_id)
            VALUES ($1, $2, NULL, $3, $4, $5)
            RETURNING created_at`
		message := "Order created"
		actorID := order.UserID
		event.ToStatus = order.Status
		event.Message = &message
		event.ActorUserID = &actorID
		return tx.QueryRow(ctx, insertEvent,
			event.ID, event.OrderID, string(event.ToStatus), event.Message, event.ActorUserID,
		).Scan(&event.CreatedAt)
	})
	if err != nil {
		return nil, nil, err
	}
	return order, event, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM pipeline_orders WHERE id=$1`
	return scanOrder(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *orderRepository) GetByUser(ctx context.Context, userID int64, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM pipeline_orders WHERE id=$1 AND user_id=$2`
	return scanOrder(r.storage.pool.QueryRow(ctx, query, id, userID))
}

func collectOrders(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()
	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64, status *model.OrderStatus) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM pipeline_orders WHERE user_id=$1`
	args := []any{userID}
	if status != nil {
		query += ` AND status=$2`
		args = append(args, string(*status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *orderRepository) ListAll(ctx context.Context, filter repository.OrderListFilter) ([]model.Order, int64, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where += fmt.Sprintf(` AND status=$%d`, len(args))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		where += fmt.Sprintf(` AND (id ILIKE $%d OR stl_filename ILIKE $%d)`, len(args), len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM pipeline_orders` + where
	if err := r.storage.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	listQuery := `SELECT ` + orderColumns + ` FROM pipeline_orders` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args))
	args = append(args, filter.Offset)
	listQuery += fmt.Sprintf(` OFFSET $%d`, len(args))

	rows, err := r.storage.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	orders, err := collectOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) SelectAwaitingPayment(ctx context.Context, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM pipeline_orders
              WHERE status=$1 AND checkout_session_id IS NOT NULL
              ORDER BY created_at
              LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, string(model.StatusQuoted), limit)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

// ApplyTransition performs one validated status change as a single
// transactional unit: re-read the authoritative status, validate the edge,
// apply field effects with a compare-and-swap on the status column, and append
// exactly one event. An invalid request leaves both tables untouched.
func (r *orderRepository) ApplyTransition(ctx context.Context, req model.TransitionRequest) (*model.Order, *model.OrderEvent, error) {
	var (
		order *model.Order
		event *model.OrderEvent
	)

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		selectQuery := `SELECT ` + orderColumns + ` FROM pipeline_orders WHERE id=$1 FOR UPDATE`
		current, err := scanOrder(tx.QueryRow(ctx, selectQuery, req.OrderID))
		if err != nil {
			return err
		}

		from := current.Status
		if !model.ValidTransition(from, req.To) {
			return domainErrors.ErrInvalidTransition
		}

		now := time.Now().UTC()
		effects := model.ComputeEffects(current, req, now)

		var (
			totalCents *int64
			currency   *string
			breakdown  []byte
			estimate   []byte
			constants  []byte
		)
		if req.Quote != nil {
			totalCents = &req.Quote.TotalCents
			currency = &req.Quote.Currency
			if breakdown, err = json.Marshal(req.Quote.Breakdown); err != nil {
				return err
			}
			if estimate, err = json.Marshal(req.Quote.Estimate); err != nil {
				return err
			}
			if constants, err = json.Marshal(req.Quote.Constants); err != nil {
				return err
			}
		}

		// COALESCE keeps an already-set paid_at: a second entry into PAID can
		// never double-stamp. The status predicate is a compare-and-swap
		// guarding against a concurrent transition between read and write.
		const updateQuery = `UPDATE pipeline_orders
            SET status=$2,
                paid_at=COALESCE(paid_at, $3),
                tracking_number=COALESCE($4, tracking_number),
                label_url=COALESCE($5, label_url),
                failure_reason=COALESCE($6, failure_reason),
                payment_intent_id=COALESCE($7, payment_intent_id),
                quote_total_cents=COALESCE($8, quote_total_cents),
                quote_currency=COALESCE($9, quote_currency),
                quote_breakdown_json=COALESCE($10, quote_breakdown_json),
                slicer_estimate_json=COALESCE($11, slicer_estimate_json),
                pricing_constants_json=COALESCE($12, pricing_constants_json),
                updated_at=$13
            WHERE id=$1 AND status=$14`
		tag, err := tx.Exec(ctx, updateQuery,
			req.OrderID, string(req.To),
			effects.PaidAt, effects.TrackingNumber, effects.LabelURL,
			effects.FailureReason, effects.PaymentIntentID,
			totalCents, currency, breakdown, estimate, constants,
			now, string(from),
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrTransitionConflict
		}

		message := req.Message
		if message == nil {
			text := "Status changed to " + string(req.To)
			message = &text
		}

		newEvent := &model.OrderEvent{
			ID:          uuid.NewString(),
			OrderID:     req.OrderID,
			FromStatus:  &from,
			ToStatus:    req.To,
			Message:     message,
			ActorUserID: req.ActorUserID,
		}
		const insertEvent = `INSERT INTO order_events (id, order_id, from_status, to_status, message, actor_user_id)
            VALUES ($1, $2, $3, $4, $5, $6)
            RETURNING created_at`
		if err := tx.QueryRow(ctx, insertEvent,
			newEvent.ID, newEvent.OrderID, string(*newEvent.FromStatus), string(newEvent.ToStatus),
			newEvent.Message, newEvent.ActorUserID,
		).Scan(&newEvent.CreatedAt); err != nil {
			return err
		}

		current.Status = req.To
		current.UpdatedAt = now
		if effects.PaidAt != nil {
			current.PaidAt = effects.PaidAt
		}
		if effects.TrackingNumber != nil {
			current.TrackingNumber = effects.TrackingNumber
		}
		if effects.LabelURL != nil {
			current.LabelURL = effects.LabelURL
		}
		if effects.FailureReason != nil {
			current.FailureReason = effects.FailureReason
		}
		if effects.PaymentIntentID != nil {
			current.PaymentIntentID = effects.PaymentIntentID
		}
		if req.Quote != nil {
			quote := *req.Quote
			current.QuoteTotalCents = &quote.TotalCents
			current.QuoteCurrency = quote.Currency
			current.QuoteBreakdown = &quote.Breakdown
			current.SlicerEstimate = &quote.Estimate
			current.PricingConstants = &quote.Constants
		}

		order = current
		event = newEvent
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return order, event, nil
}

// --- EventRepository implementation ---

func (r *eventRepository) ListByOrder(ctx context.Context, orderID string) ([]model.OrderEvent, error) {
	const query = `SELECT id, order_id, from_status, to_status, message, actor_user_id, created_at
                   FROM order_events WHERE order_id=$1 ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OrderEvent
	for rows.Next() {
		var (
			e    model.OrderEvent
			from *string
			to   string
		)
		if err := rows.Scan(&e.ID, &e.OrderID, &from, &to, &e.Message, &e.ActorUserID, &e.CreatedAt); err != nil {
			return nil, err
		}
		if from != nil {
			status := model.OrderStatus(*from)
			e.FromStatus = &status
		}
		e.ToStatus = model.OrderStatus(to)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- ProfileRepository implementation ---

const printerColumns = `id, name, description, machine_eur_per_hour, avg_kw,
        build_volume_x_mm, build_volume_y_mm, build_volume_z_mm, active, created_at, updated_at`

const materialColumns = `id, name, description, color, filament_eur_per_kg,
        waste_multiplier, density_g_per_cm3, nozzle_temp_c, bed_temp_c, active, created_at, updated_at`

func scanPrinter(row pgx.Row) (*model.PrinterProfile, error) {
	var p model.PrinterProfile
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.MachineEURPerHour, &p.AvgKW,
		&p.BuildVolumeXMM, &p.BuildVolumeYMM, &p.BuildVolumeZMM, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func scanMaterial(row pgx.Row) (*model.MaterialProfile, error) {
	var m model.MaterialProfile
	err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Color, &m.FilamentEURPerKg,
		&m.WasteMultiplier, &m.DensityGPerCM3, &m.NozzleTempC, &m.BedTempC, &m.Active, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *profileRepository) ListActivePrinters(ctx context.Context) ([]model.PrinterProfile, error) {
	query := `SELECT ` + printerColumns + ` FROM printer_profiles WHERE active ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PrinterProfile
	for rows.Next() {
		p, err := scanPrinter(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *profileRepository) ListActiveMaterials(ctx context.Context) ([]model.MaterialProfile, error) {
	query := `SELECT ` + materialColumns + ` FROM material_profiles WHERE active ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.MaterialProfile
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *profileRepository) GetPrinter(ctx context.Context, id string) (*model.PrinterProfile, error) {
	query := `SELECT ` + printerColumns + ` FROM printer_profiles WHERE id=$1`
	return scanPrinter(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *profileRepository) GetMaterial(ctx context.Context, id string) (*model.MaterialProfile, error) {
	query := `SELECT ` + materialColumns + ` FROM material_profiles WHERE id=$1`
	return scanMaterial(r.storage.pool.QueryRow(ctx, query, id))
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
