package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) FindID(ctx context.Context, firmID int, snils string) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM patients WHERE id_firm = $1 AND snils = $2`,
		firmID, snils,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("find patient: %w", err)
	}
	return id, nil
}

func (r *repoPG) Create(ctx context.Context, p *Patient) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx, `
		INSERT INTO patients (name, birthday, gender, snils, id_firm)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		p.Name, p.Birthday, p.Gender, p.Snils, p.FirmID,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("create patient: %w", err)
	}
	return id, nil
}

func (r *repoPG) List(ctx context.Context, firmID int) ([]Summary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT name, snils FROM patients WHERE id_firm = $1 ORDER BY id`,
		firmID,
	)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	patients := make([]Summary, 0)
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.Name, &s.Snils); err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		patients = append(patients, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate patients: %w", err)
	}

	return patients, nil
}
