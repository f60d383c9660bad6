package research

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) InsertResearch(ctx context.Context, rec *Record) error {
	cols := []string{"id_type", "id_patient", "id_firm", "date", "name", "birthday", "gender"}
	args := []interface{}{rec.TypeID, rec.PatientID, rec.FirmID, rec.Date, rec.Name, rec.Birthday, rec.Gender}

	// Measurement columns vary by risk type. The names are descriptor
	// constants, so interpolating them is safe.
	cols = append(cols, rec.Columns...)
	args = append(args, rec.Values...)

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO research (%s) VALUES (%s)",
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	)
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert research: %w", err)
	}
	return nil
}

func (r *repoPG) InsertRisk(ctx context.Context, rr *RiskRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO risks (id_type, risk, id_patient, id_firm, date, name, birthday, gender)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rr.TypeID, rr.Risk, rr.PatientID, rr.FirmID, rr.Date, rr.Name, rr.Birthday, rr.Gender,
	)
	if err != nil {
		return fmt.Errorf("insert risk: %w", err)
	}
	return nil
}

func (r *repoPG) ListResearch(ctx context.Context, firmID int, from, to time.Time) ([]ResearchRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT date, name, birthday, gender,
			cholesterol, blood_pressure, smoking, diastolic_bp, systolic_bp, pulse
		FROM research
		WHERE id_firm = $1 AND date BETWEEN $2 AND $3
		ORDER BY date`,
		firmID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("list research: %w", err)
	}
	defer rows.Close()

	result := make([]ResearchRow, 0)
	for rows.Next() {
		var (
			row      ResearchRow
			date     time.Time
			birthday time.Time
		)
		if err := rows.Scan(&date, &row.Name, &birthday, &row.Gender,
			&row.Cholesterol, &row.BloodPressure, &row.Smoking,
			&row.DiastolicBP, &row.SystolicBP, &row.Pulse); err != nil {
			return nil, fmt.Errorf("scan research row: %w", err)
		}
		row.Date = date.Format(dateTimeFormat)
		row.Birthday = birthday.Format(dateFormat)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate research rows: %w", err)
	}

	return result, nil
}

func (r *repoPG) ListRisks(ctx context.Context, firmID int, from, to time.Time) ([]RiskRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.name, r.birthday, COALESCE(t.name, 'no name') AS type, r.risk, r.date
		FROM risks r
		LEFT JOIN risk_types t ON t.id = r.id_type
		WHERE r.id_firm = $1 AND r.date BETWEEN $2 AND $3
		ORDER BY r.date`,
		firmID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("list risks: %w", err)
	}
	defer rows.Close()

	result := make([]RiskRow, 0)
	for rows.Next() {
		var (
			row      RiskRow
			date     time.Time
			birthday time.Time
		)
		if err := rows.Scan(&row.Name, &birthday, &row.Type, &row.Risk, &date); err != nil {
			return nil, fmt.Errorf("scan risk row: %w", err)
		}
		row.Date = date.Format(dateTimeFormat)
		row.Birthday = birthday.Format(dateFormat)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate risk rows: %w", err)
	}

	return result, nil
}
