package risktype

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type catalogRepoPG struct {
	pool *pgxpool.Pool
}

func NewCatalogRepoPG(pool *pgxpool.Pool) CatalogRepository {
	return &catalogRepoPG{pool: pool}
}

func (r *catalogRepoPG) LoadAll(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM risk_types`)
	if err != nil {
		return nil, fmt.Errorf("load risk type catalog: %w", err)
	}
	defer rows.Close()

	catalog := make(map[string]int)
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan risk type: %w", err)
		}
		catalog[name] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate risk types: %w", err)
	}

	return catalog, nil
}
