package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/OriKozok/movie-town-server/internal/domain"
)

type PostgresScreeningRepository struct {
	db *pgxpool.Pool
}

func NewPostgresScreeningRepository(db *pgxpool.Pool) *PostgresScreeningRepository {
	return &PostgresScreeningRepository{
		db: db,
	}
}

func (p *PostgresScreeningRepository) Create(ctx context.Context, screening *domain.Screening) error {
	query := `INSERT INTO screenings (movie_id, cinema_id, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	return p.db.QueryRow(
		ctx,
		query,
		screening.MovieID,
		screening.CinemaID,
		screening.StartTime,
		screening.EndTime).Scan(&screening.ID)
}

func (p *PostgresScreeningRepository) Update(ctx context.Context, screening *domain.Screening) error {
	query := `UPDATE screenings SET start_time = $1, end_time = $2 WHERE id = $3`

	tag, err := p.db.Exec(ctx, query, screening.StartTime, screening.EndTime, screening.ID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresScreeningRepository) Delete(ctx context.Context, id int) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM screenings WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresScreeningRepository) GetById(ctx context.Context, id int) (*domain.Screening, error) {
	query := `SELECT id, movie_id, cinema_id, start_time, end_time FROM screenings WHERE id = $1`

	var screening domain.Screening

	err := p.db.QueryRow(ctx, query, id).Scan(
		&screening.ID,
		&screening.MovieID,
		&screening.CinemaID,
		&screening.StartTime,
		&screening.EndTime)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &screening, nil
}

func (p *PostgresScreeningRepository) GetAll(ctx context.Context) ([]domain.Screening, error) {
	query := `SELECT id, movie_id, cinema_id, start_time, end_time FROM screenings ORDER BY start_time`

	return p.queryScreenings(ctx, query)
}

func (p *PostgresScreeningRepository) GetByMovieId(ctx context.Context, movieID int) ([]domain.Screening, error) {
	query := `SELECT id, movie_id, cinema_id, start_time, end_time
		FROM screenings
		WHERE movie_id = $1
		ORDER BY start_time`

	return p.queryScreenings(ctx, query, movieID)
}

func (p *PostgresScreeningRepository) GetByCinemaId(ctx context.Context, cinemaID int) ([]domain.Screening, error) {
	query := `SELECT id, movie_id, cinema_id, start_time, end_time
		FROM screenings
		WHERE cinema_id = $1
		ORDER BY start_time`

	return p.queryScreenings(ctx, query, cinemaID)
}

func (p *PostgresScreeningRepository) GetByEndTimeBefore(ctx context.Context, t time.Time) ([]domain.Screening, error) {
	query := `SELECT id, movie_id, cinema_id, start_time, end_time
		FROM screenings
		WHERE end_time <= $1
		ORDER BY end_time`

	return p.queryScreenings(ctx, query, t)
}

func (p *PostgresScreeningRepository) queryScreenings(ctx context.Context, query string, args ...any) ([]domain.Screening, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	screenings := make([]domain.Screening, 0)

	for rows.Next() {
		var screening domain.Screening

		err = rows.Scan(
			&screening.ID,
			&screening.MovieID,
			&screening.CinemaID,
			&screening.StartTime,
			&screening.EndTime)
		if err != nil {
			return nil, err
		}

		screenings = append(screenings, screening)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return screenings, nil
}
