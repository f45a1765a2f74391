package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/OriKozok/movie-town-server/internal/domain"
)

type PostgresOrderRepository struct {
	db *pgxpool.Pool
}

func NewPostgresOrderRepository(db *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		db: db,
	}
}

// Create inserts the order and binds its seats to it in one transaction, so a
// failure leaves neither an order without seats nor seats without an order.
func (p *PostgresOrderRepository) Create(ctx context.Context, order *domain.Order, seatIDs []int) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `INSERT INTO orders (reference, user_id, screening_id, price, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at`

		err := tx.QueryRow(
			ctx,
			query,
			order.Reference,
			order.UserID,
			order.ScreeningID,
			order.Price,
			order.Status).Scan(&order.ID, &order.CreatedAt)
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx,
			`UPDATE seats SET order_id = $1 WHERE id = ANY($2) AND order_id IS NULL`,
			order.ID, seatIDs)
		if err != nil {
			return err
		}

		// The inventory already serialized this reservation; a short count here
		// means memory and durable state diverged.
		if tag.RowsAffected() != int64(len(seatIDs)) {
			return domain.ErrSeatAlreadyReserved
		}

		return nil
	})
}

// Finalize moves the order to a terminal status and frees its seats in one
// transaction. Orders already in a terminal status are left untouched.
func (p *PostgresOrderRepository) Finalize(ctx context.Context, orderID int, status domain.OrderStatus) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE orders SET status = $1 WHERE id = $2 AND status = $3`,
			status, orderID, domain.OrderNotWatched)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrOrderNotCancellable
		}

		_, err = tx.Exec(ctx, `UPDATE seats SET order_id = NULL WHERE order_id = $1`, orderID)

		return err
	})
}

func (p *PostgresOrderRepository) GetById(ctx context.Context, id int) (*domain.Order, error) {
	query := `SELECT id, reference, user_id, screening_id, price, status, created_at
		FROM orders
		WHERE id = $1`

	var order domain.Order

	err := p.db.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.Reference,
		&order.UserID,
		&order.ScreeningID,
		&order.Price,
		&order.Status,
		&order.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &order, nil
}

func (p *PostgresOrderRepository) GetByUserId(ctx context.Context, userID int) ([]domain.Order, error) {
	query := `SELECT id, reference, user_id, screening_id, price, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`

	return p.queryOrders(ctx, query, userID)
}

func (p *PostgresOrderRepository) GetAll(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT id, reference, user_id, screening_id, price, status, created_at
		FROM orders
		ORDER BY created_at DESC`

	return p.queryOrders(ctx, query)
}

func (p *PostgresOrderRepository) GetActiveByScreeningId(ctx context.Context, screeningID int) ([]domain.Order, error) {
	query := `SELECT id, reference, user_id, screening_id, price, status, created_at
		FROM orders
		WHERE screening_id = $1 AND status = $2
		ORDER BY created_at`

	return p.queryOrders(ctx, query, screeningID, domain.OrderNotWatched)
}

func (p *PostgresOrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)

	for rows.Next() {
		var order domain.Order

		err = rows.Scan(
			&order.ID,
			&order.Reference,
			&order.UserID,
			&order.ScreeningID,
			&order.Price,
			&order.Status,
			&order.CreatedAt)
		if err != nil {
			return nil, err
		}

		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
