package research

import (
	"context"
	"time"
)

type Repository interface {
	// InsertResearch appends one research row.
	InsertResearch(ctx context.Context, rec *Record) error
	// InsertRisk appends one computed-risk row.
	InsertRisk(ctx context.Context, rr *RiskRecord) error
	// ListResearch returns the firm's research rows within [from, to].
	ListResearch(ctx context.Context, firmID int, from, to time.Time) ([]ResearchRow, error)
	// ListRisks returns the firm's computed-risk rows within [from, to].
	ListRisks(ctx context.Context, firmID int, from, to time.Time) ([]RiskRow, error)
}
