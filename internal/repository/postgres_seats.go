package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/OriKozok/movie-town-server/internal/domain"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

// CreateBatch inserts a screening's full seat grid and returns the seats with
// their generated ids, ordered by row then column.
func (p *PostgresSeatRepository) CreateBatch(ctx context.Context, seats []domain.Seat) ([]domain.Seat, error) {
	if len(seats) == 0 {
		return seats, nil
	}

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		rows := make([][]any, 0, len(seats))
		for _, seat := range seats {
			rows = append(rows, []any{seat.ScreeningID, seat.Row, seat.Column})
		}

		_, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{"seats"},
			[]string{"screening_id", "seat_row", "seat_col"},
			pgx.CopyFromRows(rows),
		)

		return err
	})
	if err != nil {
		return nil, err
	}

	return p.GetByScreeningId(ctx, seats[0].ScreeningID)
}

func (p *PostgresSeatRepository) GetByScreeningId(ctx context.Context, screeningID int) ([]domain.Seat, error) {
	query := `SELECT id, screening_id, seat_row, seat_col, order_id
		FROM seats
		WHERE screening_id = $1
		ORDER BY seat_row, seat_col`

	return p.querySeats(ctx, query, screeningID)
}

func (p *PostgresSeatRepository) GetByOrderId(ctx context.Context, orderID int) ([]domain.Seat, error) {
	query := `SELECT id, screening_id, seat_row, seat_col, order_id
		FROM seats
		WHERE order_id = $1
		ORDER BY seat_row, seat_col`

	return p.querySeats(ctx, query, orderID)
}

func (p *PostgresSeatRepository) DeleteByScreeningId(ctx context.Context, screeningID int) error {
	_, err := p.db.Exec(ctx, `DELETE FROM seats WHERE screening_id = $1`, screeningID)
	return err
}

func (p *PostgresSeatRepository) querySeats(ctx context.Context, query string, args ...any) ([]domain.Seat, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		err = rows.Scan(&seat.ID, &seat.ScreeningID, &seat.Row, &seat.Column, &seat.OrderID)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}
