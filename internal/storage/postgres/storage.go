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

	domainErrors "github.com/thangnstse171771/cakestory-market/internal/domain/errors"
	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
	"github.com/thangnstse171771/cakestory-market/internal/domain/repository"
)

const uniqueViolation = "23505"

// DBPool is the subset of pgxpool.Pool the storage relies on.
type DBPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   DBPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type shopRepository struct {
	storage *Storage
}

type postRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type complaintRepository struct {
	storage *Storage
}

type quoteRepository struct {
	storage *Storage
}

type challengeRepository struct {
	storage *Storage
}

// newPgxPool is swapped out in tests.
var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (DBPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
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

	return storage, nil
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

func (s *Storage) Shops() repository.ShopRepository {
	return &shopRepository{storage: s}
}

func (s *Storage) Posts() repository.PostRepository {
	return &postRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Complaints() repository.ComplaintRepository {
	return &complaintRepository{storage: s}
}

func (s *Storage) Quotes() repository.QuoteRepository {
	return &quoteRepository{storage: s}
}

func (s *Storage) Challenges() repository.ChallengeRepository {
	return &challengeRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            username TEXT NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL,
            shop_id BIGINT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS shops (
            id SERIAL PRIMARY KEY,
            user_id BIGINT UNIQUE NOT NULL REFERENCES users(id),
            name TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS marketplace_posts (
            id SERIAL PRIMARY KEY,
            shop_id BIGINT NOT NULL REFERENCES shops(id),
            title TEXT NOT NULL,
            likes INT NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS post_size_tiers (
            id SERIAL PRIMARY KEY,
            post_id BIGINT NOT NULL REFERENCES marketplace_posts(id),
            size TEXT NOT NULL,
            price DOUBLE PRECISION NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            number TEXT UNIQUE NOT NULL,
            customer_id BIGINT NOT NULL,
            customer_email TEXT NOT NULL DEFAULT '',
            customer_name TEXT NOT NULL DEFAULT '',
            shop_id BIGINT NOT NULL DEFAULT 0,
            post_id BIGINT,
            status TEXT NOT NULL,
            base_price DOUBLE PRECISION NOT NULL DEFAULT 0,
            addon_total DOUBLE PRECISION NOT NULL DEFAULT 0,
            total_price DOUBLE PRECISION NOT NULL DEFAULT 0,
            size TEXT NOT NULL DEFAULT '',
            instructions TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            shipped_at TIMESTAMPTZ,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            name TEXT NOT NULL,
            quantity INT NOT NULL,
            unit_price DOUBLE PRECISION NOT NULL,
            customization TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS complaints (
            id SERIAL PRIMARY KEY,
            order_id BIGINT UNIQUE NOT NULL REFERENCES orders(id),
            customer_id BIGINT NOT NULL,
            reason TEXT NOT NULL,
            evidence_url TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS cake_quotes (
            id SERIAL PRIMARY KEY,
            customer_id BIGINT NOT NULL REFERENCES users(id),
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            image_url TEXT NOT NULL DEFAULT '',
            budget_min DOUBLE PRECISION NOT NULL,
            budget_max DOUBLE PRECISION NOT NULL,
            expires_at TIMESTAMPTZ NOT NULL,
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS shop_quotes (
            id SERIAL PRIMARY KEY,
            cake_quote_id BIGINT NOT NULL REFERENCES cake_quotes(id),
            shop_id BIGINT NOT NULL REFERENCES shops(id),
            price DOUBLE PRECISION NOT NULL,
            prep_days INT NOT NULL DEFAULT 0,
            message TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS shop_quote_ingredients (
            id SERIAL PRIMARY KEY,
            shop_quote_id BIGINT NOT NULL REFERENCES shop_quotes(id),
            name TEXT NOT NULL,
            quantity INT NOT NULL,
            unit_price DOUBLE PRECISION NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS challenges (
            id SERIAL PRIMARY KEY,
            host_id BIGINT NOT NULL REFERENCES users(id),
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            start_at TIMESTAMPTZ NOT NULL,
            end_at TIMESTAMPTZ NOT NULL,
            prize TEXT NOT NULL DEFAULT '',
            min_participants INT NOT NULL,
            max_participants INT NOT NULL,
            hashtags TEXT[] NOT NULL DEFAULT '{}',
            rules TEXT NOT NULL DEFAULT '',
            requirements TEXT NOT NULL DEFAULT '',
            approval TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS challenge_entries (
            id SERIAL PRIMARY KEY,
            challenge_id BIGINT NOT NULL REFERENCES challenges(id),
            user_id BIGINT NOT NULL REFERENCES users(id),
            post_id BIGINT,
            joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            UNIQUE (challenge_id, user_id)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_shop ON orders(shop_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_shipped ON orders(status, shipped_at)`,
		`CREATE INDEX IF NOT EXISTS idx_cake_quotes_expiry ON cake_quotes(status, expires_at)`,
		`CREATE INDEX IF NOT EXISTS idx_shop_quotes_quote ON shop_quotes(cake_quote_id)`,
		`CREATE INDEX IF NOT EXISTS idx_challenge_entries ON challenge_entries(challenge_id, joined_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, email, username, passwordHash string, role model.Role) (*model.User, error) {
	const query = `INSERT INTO users (email, username, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, email, username, passwordHash, role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Email = email
	u.Username = username
	u.PasswordHash = passwordHash
	u.Role = role
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, email, username, password_hash, role, shop_id, created_at FROM users WHERE email=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, email, username, password_hash, role, shop_id, created_at FROM users WHERE id=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role, &u.ShopID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- ShopRepository implementation ---

func (r *shopRepository) Create(ctx context.Context, userID int64, name string) (*model.Shop, error) {
	const query = `INSERT INTO shops (user_id, name) VALUES ($1, $2) RETURNING id, created_at`
	var shop model.Shop
	err := r.storage.pool.QueryRow(ctx, query, userID, name).Scan(&shop.ID, &shop.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	shop.UserID = userID
	shop.Name = name
	return &shop, nil
}

func (r *shopRepository) GetByID(ctx context.Context, id int64) (*model.Shop, error) {
	const query = `SELECT id, user_id, name, created_at FROM shops WHERE id=$1`
	return r.scanShop(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *shopRepository) GetByUser(ctx context.Context, userID int64) (*model.Shop, error) {
	const query = `SELECT id, user_id, name, created_at FROM shops WHERE user_id=$1`
	return r.scanShop(r.storage.pool.QueryRow(ctx, query, userID))
}

func (r *shopRepository) scanShop(row pgx.Row) (*model.Shop, error) {
	var shop model.Shop
	err := row.Scan(&shop.ID, &shop.UserID, &shop.Name, &shop.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &shop, nil
}

// --- PostRepository implementation ---

func (r *postRepository) Create(ctx context.Context, post *model.MarketplacePost) (*model.MarketplacePost, error) {
	stored := *post
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertPost = `INSERT INTO marketplace_posts (shop_id, title) VALUES ($1, $2) RETURNING id, created_at`
		if err := tx.QueryRow(ctx, insertPost, post.ShopID, post.Title).Scan(&stored.ID, &stored.CreatedAt); err != nil {
			return err
		}
		const insertTier = `INSERT INTO post_size_tiers (post_id, size, price) VALUES ($1, $2, $3)`
		for _, tier := range post.Tiers {
			if _, err := tx.Exec(ctx, insertTier, stored.ID, tier.Size, tier.Price); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*model.MarketplacePost, error) {
	const query = `SELECT id, shop_id, title, created_at FROM marketplace_posts WHERE id=$1`
	var post model.MarketplacePost
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&post.ID, &post.ShopID, &post.Title, &post.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	const tiersQuery = `SELECT size, price FROM post_size_tiers WHERE post_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, tiersQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var tier model.SizeTier
		if err := rows.Scan(&tier.Size, &tier.Price); err != nil {
			return nil, err
		}
		post.Tiers = append(post.Tiers, tier)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &post, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, number, customer_id, customer_email, customer_name, shop_id, post_id, status,
                      base_price, addon_total, total_price, size, instructions, created_at, shipped_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.Number, &o.CustomerID, &o.CustomerEmail, &o.CustomerName, &o.ShopID, &o.PostID,
		&o.Status, &o.BasePrice, &o.AddonTotal, &o.TotalPrice, &o.Size, &o.Instructions,
		&o.CreatedAt, &o.ShippedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	stored := *order
	// Imported legacy rows carry their own timestamps; fresh orders take NOW().
	var createdAt any
	if !order.CreatedAt.IsZero() {
		createdAt = order.CreatedAt
	}

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders
            (number, customer_id, customer_email, customer_name, shop_id, post_id, status,
             base_price, addon_total, total_price, size, instructions, created_at, shipped_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, COALESCE($13, NOW()), $14)
            RETURNING id, created_at, updated_at`
		err := tx.QueryRow(ctx, insertOrder,
			order.Number, order.CustomerID, order.CustomerEmail, order.CustomerName, order.ShopID, order.PostID,
			order.Status, order.BasePrice, order.AddonTotal, order.TotalPrice, order.Size, order.Instructions,
			createdAt, order.ShippedAt,
		).Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)
		if err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, name, quantity, unit_price, customization)
                            VALUES ($1, $2, $3, $4, $5) RETURNING id`
		for i := range stored.Items {
			item := &stored.Items[i]
			item.OrderID = stored.ID
			if err := tx.QueryRow(ctx, insertItem, stored.ID, item.Name, item.Quantity, item.UnitPrice, item.Customization).Scan(&item.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &stored, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	const itemsQuery = `SELECT id, order_id, name, quantity, unit_price, customization
                        FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, itemsQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.Name, &item.Quantity, &item.UnitPrice, &item.Customization); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, customerID)
}

func (r *orderRepository) ListByShop(ctx context.Context, shopID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE shop_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, shopID)
}

func (r *orderRepository) list(ctx context.Context, query string, arg any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
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

func (r *orderRepository) Transition(ctx context.Context, orderID int64, from, to model.OrderStatus, shippedAt *time.Time) error {
	const query = `UPDATE orders SET status=$1, shipped_at=COALESCE($2, shipped_at), updated_at=NOW()
                   WHERE id=$3 AND status=$4`
	tag, err := r.storage.pool.Exec(ctx, query, to, shippedAt, orderID, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrInvalidTransition
	}
	return nil
}

func (r *orderRepository) SelectOverdueShipped(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	selectQuery := `SELECT ` + orderColumns + `
                    FROM orders
                    WHERE status=$1 AND shipped_at IS NOT NULL AND shipped_at < $2
                      AND NOT EXISTS (SELECT 1 FROM complaints WHERE complaints.order_id = orders.id)
                    ORDER BY shipped_at
                    LIMIT $3
                    FOR UPDATE SKIP LOCKED`

	var orders []model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, model.OrderStatusShipped, cutoff, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			order, err := scanOrder(rows)
			if err != nil {
				return err
			}
			orders = append(orders, *order)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// --- ComplaintRepository implementation ---

func (r *complaintRepository) Create(ctx context.Context, complaint *model.Complaint) (*model.Complaint, error) {
	const query = `INSERT INTO complaints (order_id, customer_id, reason, evidence_url)
                   VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	stored := *complaint
	err := r.storage.pool.QueryRow(ctx, query, complaint.OrderID, complaint.CustomerID, complaint.Reason, complaint.EvidenceURL).
		Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &stored, nil
}

func (r *complaintRepository) GetByOrder(ctx context.Context, orderID int64) (*model.Complaint, error) {
	const query = `SELECT id, order_id, customer_id, reason, evidence_url, created_at FROM complaints WHERE order_id=$1`
	var c model.Complaint
	err := r.storage.pool.QueryRow(ctx, query, orderID).Scan(&c.ID, &c.OrderID, &c.CustomerID, &c.Reason, &c.EvidenceURL, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// --- QuoteRepository implementation ---

const cakeQuoteColumns = `id, customer_id, title, description, image_url, budget_min, budget_max, expires_at, status, created_at`

func scanCakeQuote(row pgx.Row) (*model.CakeQuote, error) {
	var q model.CakeQuote
	err := row.Scan(&q.ID, &q.CustomerID, &q.Title, &q.Description, &q.ImageURL,
		&q.BudgetMin, &q.BudgetMax, &q.ExpiresAt, &q.Status, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *quoteRepository) CreateCakeQuote(ctx context.Context, quote *model.CakeQuote) (*model.CakeQuote, error) {
	const query = `INSERT INTO cake_quotes (customer_id, title, description, image_url, budget_min, budget_max, expires_at, status)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`
	stored := *quote
	err := r.storage.pool.QueryRow(ctx, query, quote.CustomerID, quote.Title, quote.Description, quote.ImageURL,
		quote.BudgetMin, quote.BudgetMax, quote.ExpiresAt, quote.Status).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *quoteRepository) GetCakeQuote(ctx context.Context, id int64) (*model.CakeQuote, error) {
	query := `SELECT ` + cakeQuoteColumns + ` FROM cake_quotes WHERE id=$1`
	quote, err := scanCakeQuote(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return quote, nil
}

func (r *quoteRepository) ListOpenCakeQuotes(ctx context.Context, now time.Time) ([]model.CakeQuote, error) {
	query := `SELECT ` + cakeQuoteColumns + ` FROM cake_quotes
              WHERE status=$1 AND expires_at > $2 ORDER BY created_at DESC`
	return r.listCakeQuotes(ctx, query, model.CakeQuoteOpen, now)
}

func (r *quoteRepository) ListCakeQuotesByCustomer(ctx context.Context, customerID int64) ([]model.CakeQuote, error) {
	query := `SELECT ` + cakeQuoteColumns + ` FROM cake_quotes WHERE customer_id=$1 ORDER BY created_at DESC`
	return r.listCakeQuotes(ctx, query, customerID)
}

func (r *quoteRepository) listCakeQuotes(ctx context.Context, query string, args ...any) ([]model.CakeQuote, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.CakeQuote
	for rows.Next() {
		quote, err := scanCakeQuote(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *quote)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *quoteRepository) UpdateCakeQuoteStatus(ctx context.Context, id int64, from, to model.CakeQuoteStatus) error {
	const query = `UPDATE cake_quotes SET status=$1 WHERE id=$2 AND status=$3`
	tag, err := r.storage.pool.Exec(ctx, query, to, id, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrInvalidTransition
	}
	return nil
}

func (r *quoteRepository) SelectExpiredCakeQuotes(ctx context.Context, now time.Time, limit int) ([]model.CakeQuote, error) {
	selectQuery := `SELECT ` + cakeQuoteColumns + ` FROM cake_quotes
                    WHERE status=$1 AND expires_at <= $2
                    ORDER BY expires_at
                    LIMIT $3
                    FOR UPDATE SKIP LOCKED`

	var quotes []model.CakeQuote
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, model.CakeQuoteOpen, now, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			quote, err := scanCakeQuote(rows)
			if err != nil {
				return err
			}
			quotes = append(quotes, *quote)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return quotes, nil
}

func (r *quoteRepository) CreateShopQuote(ctx context.Context, bid *model.ShopQuote) (*model.ShopQuote, error) {
	stored := *bid
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertBid = `INSERT INTO shop_quotes (cake_quote_id, shop_id, price, prep_days, message, status)
                           VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
		err := tx.QueryRow(ctx, insertBid, bid.CakeQuoteID, bid.ShopID, bid.Price, bid.PrepDays, bid.Message, bid.Status).
			Scan(&stored.ID, &stored.CreatedAt)
		if err != nil {
			return err
		}

		const insertIngredient = `INSERT INTO shop_quote_ingredients (shop_quote_id, name, quantity, unit_price)
                                  VALUES ($1, $2, $3, $4)`
		for _, ing := range bid.Ingredients {
			if _, err := tx.Exec(ctx, insertIngredient, stored.ID, ing.Name, ing.Quantity, ing.UnitPrice); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &stored, nil
}

const shopQuoteColumns = `id, cake_quote_id, shop_id, price, prep_days, message, status, created_at`

func scanShopQuote(row pgx.Row) (*model.ShopQuote, error) {
	var b model.ShopQuote
	err := row.Scan(&b.ID, &b.CakeQuoteID, &b.ShopID, &b.Price, &b.PrepDays, &b.Message, &b.Status, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *quoteRepository) GetShopQuote(ctx context.Context, id int64) (*model.ShopQuote, error) {
	query := `SELECT ` + shopQuoteColumns + ` FROM shop_quotes WHERE id=$1`
	bid, err := scanShopQuote(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	ingredients, err := r.loadIngredients(ctx, id)
	if err != nil {
		return nil, err
	}
	bid.Ingredients = ingredients
	return bid, nil
}

func (r *quoteRepository) loadIngredients(ctx context.Context, bidID int64) ([]model.QuoteIngredient, error) {
	const query = `SELECT name, quantity, unit_price FROM shop_quote_ingredients WHERE shop_quote_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, bidID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.QuoteIngredient
	for rows.Next() {
		var ing model.QuoteIngredient
		if err := rows.Scan(&ing.Name, &ing.Quantity, &ing.UnitPrice); err != nil {
			return nil, err
		}
		result = append(result, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListShopQuotes returns lean bid rows without ingredient breakdowns.
func (r *quoteRepository) ListShopQuotes(ctx context.Context, cakeQuoteID int64) ([]model.ShopQuote, error) {
	query := `SELECT ` + shopQuoteColumns + ` FROM shop_quotes WHERE cake_quote_id=$1 ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query, cakeQuoteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.ShopQuote
	for rows.Next() {
		bid, err := scanShopQuote(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *bid)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *quoteRepository) AcceptShopQuote(ctx context.Context, id int64) (*model.ShopQuote, error) {
	var accepted *model.ShopQuote
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		query := `SELECT ` + shopQuoteColumns + ` FROM shop_quotes WHERE id=$1 FOR UPDATE`
		bid, err := scanShopQuote(tx.QueryRow(ctx, query, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		const acceptBid = `UPDATE shop_quotes SET status=$1 WHERE id=$2 AND status=$3`
		tag, err := tx.Exec(ctx, acceptBid, model.ShopQuoteAccepted, id, model.ShopQuotePending)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrInvalidTransition
		}

		const rejectSiblings = `UPDATE shop_quotes SET status=$1 WHERE cake_quote_id=$2 AND id<>$3 AND status=$4`
		if _, err := tx.Exec(ctx, rejectSiblings, model.ShopQuoteRejected, bid.CakeQuoteID, id, model.ShopQuotePending); err != nil {
			return err
		}

		const matchQuote = `UPDATE cake_quotes SET status=$1 WHERE id=$2 AND status=$3`
		tag, err = tx.Exec(ctx, matchQuote, model.CakeQuoteMatched, bid.CakeQuoteID, model.CakeQuoteOpen)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrInvalidTransition
		}

		bid.Status = model.ShopQuoteAccepted
		accepted = bid
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accepted, nil
}

// --- ChallengeRepository implementation ---

const challengeColumns = `id, host_id, title, description, start_at, end_at, prize,
                          min_participants, max_participants, hashtags, rules, requirements,
                          approval, created_at, updated_at`

func scanChallenge(row pgx.Row) (*model.Challenge, error) {
	var c model.Challenge
	err := row.Scan(&c.ID, &c.HostID, &c.Title, &c.Description, &c.StartAt, &c.EndAt, &c.Prize,
		&c.MinParticipants, &c.MaxParticipants, &c.Hashtags, &c.Rules, &c.Requirements,
		&c.Approval, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *challengeRepository) Create(ctx context.Context, challenge *model.Challenge) (*model.Challenge, error) {
	const query = `INSERT INTO challenges
        (host_id, title, description, start_at, end_at, prize, min_participants, max_participants,
         hashtags, rules, requirements, approval)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id, created_at, updated_at`
	stored := *challenge
	err := r.storage.pool.QueryRow(ctx, query,
		challenge.HostID, challenge.Title, challenge.Description, challenge.StartAt, challenge.EndAt,
		challenge.Prize, challenge.MinParticipants, challenge.MaxParticipants,
		challenge.Hashtags, challenge.Rules, challenge.Requirements, challenge.Approval,
	).Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *challengeRepository) Update(ctx context.Context, challenge *model.Challenge) error {
	const query = `UPDATE challenges SET title=$1, description=$2, start_at=$3, end_at=$4, prize=$5,
                       min_participants=$6, max_participants=$7, hashtags=$8, rules=$9, requirements=$10,
                       updated_at=NOW()
                   WHERE id=$11`
	tag, err := r.storage.pool.Exec(ctx, query,
		challenge.Title, challenge.Description, challenge.StartAt, challenge.EndAt, challenge.Prize,
		challenge.MinParticipants, challenge.MaxParticipants, challenge.Hashtags,
		challenge.Rules, challenge.Requirements, challenge.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *challengeRepository) GetByID(ctx context.Context, id int64) (*model.Challenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM challenges WHERE id=$1`
	challenge, err := scanChallenge(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return challenge, nil
}

func (r *challengeRepository) List(ctx context.Context) ([]model.Challenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM challenges ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Challenge
	for rows.Next() {
		challenge, err := scanChallenge(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *challenge)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *challengeRepository) SetApproval(ctx context.Context, id int64, approval model.ChallengeApproval) error {
	const query = `UPDATE challenges SET approval=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, approval, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *challengeRepository) AddEntry(ctx context.Context, challengeID, userID int64) (*model.ChallengeEntry, error) {
	entry := model.ChallengeEntry{ChallengeID: challengeID, UserID: userID}
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		// Lock the challenge row so concurrent joins serialize on the cap check.
		const capQuery = `SELECT max_participants FROM challenges WHERE id=$1 FOR UPDATE`
		var capacity int
		if err := tx.QueryRow(ctx, capQuery, challengeID).Scan(&capacity); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		const countQuery = `SELECT COUNT(*) FROM challenge_entries WHERE challenge_id=$1`
		var joined int
		if err := tx.QueryRow(ctx, countQuery, challengeID).Scan(&joined); err != nil {
			return err
		}
		if capacity > 0 && joined >= capacity {
			return domainErrors.ErrChallengeFull
		}

		const insertEntry = `INSERT INTO challenge_entries (challenge_id, user_id) VALUES ($1, $2)
                             RETURNING id, joined_at`
		if err := tx.QueryRow(ctx, insertEntry, challengeID, userID).Scan(&entry.ID, &entry.JoinedAt); err != nil {
			if isUniqueViolation(err) {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *challengeRepository) RemoveEntry(ctx context.Context, challengeID, userID int64) error {
	const query = `DELETE FROM challenge_entries WHERE challenge_id=$1 AND user_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, challengeID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *challengeRepository) ListEntries(ctx context.Context, challengeID int64) ([]model.ChallengeEntry, error) {
	const query = `SELECT id, challenge_id, user_id, post_id, joined_at
                   FROM challenge_entries WHERE challenge_id=$1 ORDER BY joined_at`
	rows, err := r.storage.pool.Query(ctx, query, challengeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.ChallengeEntry
	for rows.Next() {
		var entry model.ChallengeEntry
		if err := rows.Scan(&entry.ID, &entry.ChallengeID, &entry.UserID, &entry.PostID, &entry.JoinedAt); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *challengeRepository) Leaderboard(ctx context.Context, challengeID int64, limit int) ([]model.LeaderboardRow, error) {
	const query = `SELECT e.user_id, u.username, e.post_id, COALESCE(p.likes, 0) AS likes
                   FROM challenge_entries e
                   JOIN users u ON u.id = e.user_id
                   LEFT JOIN marketplace_posts p ON p.id = e.post_id
                   WHERE e.challenge_id=$1
                   ORDER BY likes DESC, e.joined_at
                   LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, challengeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.LeaderboardRow
	for rows.Next() {
		var row model.LeaderboardRow
		if err := rows.Scan(&row.UserID, &row.Username, &row.PostID, &row.Likes); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
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
