package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/OriKozok/movie-town-server/internal/domain"
)

type PostgresCinemaRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCinemaRepository(db *pgxpool.Pool) *PostgresCinemaRepository {
	return &PostgresCinemaRepository{
		db: db,
	}
}

func (p *PostgresCinemaRepository) Create(ctx context.Context, cinema *domain.Cinema) error {
	query := `INSERT INTO cinemas (city, hall_number, seat_rows, seat_columns)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := p.db.QueryRow(ctx, query, cinema.City, cinema.HallNumber, cinema.Rows, cinema.Columns).
		Scan(&cinema.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrCinemaAlreadyExists
		}

		return err
	}

	return nil
}

func (p *PostgresCinemaRepository) Update(ctx context.Context, cinema *domain.Cinema) error {
	query := `UPDATE cinemas SET hall_number = $1 WHERE id = $2`

	tag, err := p.db.Exec(ctx, query, cinema.HallNumber, cinema.ID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresCinemaRepository) Delete(ctx context.Context, id int) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM cinemas WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresCinemaRepository) GetById(ctx context.Context, id int) (*domain.Cinema, error) {
	query := `SELECT id, city, hall_number, seat_rows, seat_columns FROM cinemas WHERE id = $1`

	var cinema domain.Cinema

	err := p.db.QueryRow(ctx, query, id).
		Scan(&cinema.ID, &cinema.City, &cinema.HallNumber, &cinema.Rows, &cinema.Columns)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &cinema, nil
}

func (p *PostgresCinemaRepository) GetAll(ctx context.Context) ([]domain.Cinema, error) {
	query := `SELECT id, city, hall_number, seat_rows, seat_columns FROM cinemas ORDER BY city, hall_number`

	return p.queryCinemas(ctx, query)
}

func (p *PostgresCinemaRepository) GetByCity(ctx context.Context, city string) ([]domain.Cinema, error) {
	query := `SELECT id, city, hall_number, seat_rows, seat_columns FROM cinemas WHERE city = $1 ORDER BY hall_number`

	return p.queryCinemas(ctx, query, city)
}

func (p *PostgresCinemaRepository) queryCinemas(ctx context.Context, query string, args ...any) ([]domain.Cinema, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cinemas := make([]domain.Cinema, 0)

	for rows.Next() {
		var cinema domain.Cinema

		err = rows.Scan(&cinema.ID, &cinema.City, &cinema.HallNumber, &cinema.Rows, &cinema.Columns)
		if err != nil {
			return nil, err
		}

		cinemas = append(cinemas, cinema)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return cinemas, nil
}
