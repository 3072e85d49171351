package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// pgxPool is the subset of *pgxpool.Pool used by Storage.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Observer receives timing for every logical database operation.
type Observer interface {
	ObserveDB(op string, fn func() error) error
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool     pgxPool
	logger   *slog.Logger
	observer Observer
}

var _ repository.Factory = (*Storage)(nil)

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	logger.Info("database schema ensured")

	return storage, nil
}

// WithObserver attaches an operation observer, typically prometheus metrics.
func (s *Storage) WithObserver(o Observer) *Storage {
	s.observer = o
	return s
}

// Close releases database resources.
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

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            name TEXT,
            email TEXT UNIQUE,
            username TEXT UNIQUE NOT NULL,
            role TEXT NOT NULL DEFAULT 'customer',
            password TEXT NOT NULL,
            dob DATE,
            points BIGINT NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            item_name TEXT NOT NULL,
            price NUMERIC(10,2) NOT NULL,
            qty INTEGER NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at DESC, id DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func (s *Storage) observe(op string, fn func() error) error {
	if s.observer == nil {
		return fn()
	}
	return s.observer.ObserveDB(op, fn)
}

// classify maps driver errors onto domain sentinels.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", domainErrors.ErrAlreadyExists, pgErr.ConstraintName)
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%w: %w", domainErrors.ErrStoreUnavailable, err)
	}
	return err
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, user model.NewUser) (*model.User, error) {
	const query = `INSERT INTO users (name, email, username, role, password)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING id, points, created_at`
	u := model.User{
		Name:         user.Name,
		Email:        user.Email,
		Username:     user.Username,
		Role:         user.Role,
		PasswordHash: user.PasswordHash,
	}
	err := r.storage.observe("users.create", func() error {
		return r.storage.pool.QueryRow(ctx, query, user.Name, user.Email, user.Username, string(user.Role), user.PasswordHash).
			Scan(&u.ID, &u.Points, &u.CreatedAt)
	})
	if err != nil {
		return nil, classify(err)
	}
	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	const query = `SELECT id, name, email, username, role, password, dob, points, created_at
                   FROM users WHERE username=$1`
	var (
		u    model.User
		role string
	)
	err := r.storage.observe("users.get_by_username", func() error {
		var name, email *string
		err := r.storage.pool.QueryRow(ctx, query, username).
			Scan(&u.ID, &name, &email, &u.Username, &role, &u.PasswordHash, &u.DOB, &u.Points, &u.CreatedAt)
		u.Name, u.Email = deref(name), deref(email)
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, classify(err)
	}
	u.Role = model.Role(role)
	return &u, nil
}

// GetByID returns the profile projection; PasswordHash is left empty.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, username, name, email, dob, points, role FROM users WHERE id=$1`
	var (
		u    model.User
		role string
	)
	err := r.storage.observe("users.get_by_id", func() error {
		var name, email *string
		err := r.storage.pool.QueryRow(ctx, query, id).
			Scan(&u.ID, &u.Username, &name, &email, &u.DOB, &u.Points, &role)
		u.Name, u.Email = deref(name), deref(email)
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, classify(err)
	}
	u.Role = model.Role(role)
	return &u, nil
}

// --- OrderRepository implementation ---

// CreateBatch stores all items with one INSERT over unnested column arrays,
// so the batch succeeds or fails as a unit and the bind count stays at three.
func (r *orderRepository) CreateBatch(ctx context.Context, items []model.OrderItem) (int, error) {
	if len(items) == 0 {
		return 0, domainErrors.ErrInvalidInput
	}

	names, prices, qtys := orderColumns(items)
	var inserted int64
	err := r.storage.observe("orders.create_batch", func() error {
		tag, err := r.storage.pool.Exec(ctx, insertOrdersQuery, names, prices, qtys)
		if err != nil {
			return err
		}
		inserted = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, classify(err)
	}
	return int(inserted), nil
}

const insertOrdersQuery = `INSERT INTO orders (item_name, price, qty)
                   SELECT * FROM unnest($1::text[], $2::numeric[], $3::int[])`

func orderColumns(items []model.OrderItem) ([]string, []float64, []int) {
	names := make([]string, len(items))
	prices := make([]float64, len(items))
	qtys := make([]int, len(items))
	for i, item := range items {
		names[i] = item.Item
		prices[i] = item.Price
		qtys[i] = item.Qty
	}
	return names, prices, qtys
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT id, item_name, price, qty, created_at
                   FROM orders ORDER BY created_at DESC, id DESC`
	var result []model.Order
	err := r.storage.observe("orders.list", func() error {
		rows, err := r.storage.pool.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var o model.Order
			if err := rows.Scan(&o.ID, &o.ItemName, &o.Price, &o.Qty, &o.CreatedAt); err != nil {
				return err
			}
			result = append(result, o)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, classify(err)
	}
	return result, nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
