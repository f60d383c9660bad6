package submission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/niimt/riskapi/internal/domain/patient"
	"github.com/niimt/riskapi/internal/domain/research"
	"github.com/niimt/riskapi/internal/domain/risktype"
	"github.com/niimt/riskapi/internal/platform/auth"
)

// ErrNotPermitted is returned when the firm's credential does not cover the
// submitted risk type.
var ErrNotPermitted = errors.New("risk type not permitted for this credential")

type TypeResolver interface {
	Resolve(ctx context.Context, name string) (int, error)
}

type PatientResolver interface {
	ResolveOrCreate(ctx context.Context, p *patient.Patient) (int, error)
}

type Recorder interface {
	RecordResearch(ctx context.Context, rec *research.Record) error
	RecordRisk(ctx context.Context, rr *research.RiskRecord) error
}

// Result is the per-item acknowledgement of a submission batch.
type Result struct {
	Message string `json:"message"`
}

// Service runs the submission pipeline: validate each item, persist the
// measurements, compute the risk, persist the result.
type Service struct {
	types    TypeResolver
	patients PatientResolver
	recorder Recorder
	log      zerolog.Logger
	now      func() time.Time
}

func NewService(types TypeResolver, patients PatientResolver, recorder Recorder, log zerolog.Logger) *Service {
	return &Service{
		types:    types,
		patients: patients,
		recorder: recorder,
		log:      log,
		now:      time.Now,
	}
}

// Process handles one submission batch. Items are processed in order and the
// first failure aborts the whole batch; rows persisted by earlier items stay,
// the research and risks tables being append-only.
func (s *Service) Process(ctx context.Context, firm *auth.Firm, items []map[string]interface{}) ([]Result, error) {
	results := make([]Result, 0, len(items))
	for _, item := range items {
		res, err := s.processItem(ctx, firm, item)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *Service) processItem(ctx context.Context, firm *auth.Firm, item map[string]interface{}) (Result, error) {
	name, _ := item["type"].(string)
	desc, err := risktype.Lookup(name)
	if err != nil {
		return Result{}, err
	}

	typeID, err := s.types.Resolve(ctx, name)
	if err != nil {
		return Result{}, err
	}

	if !firm.AllowsRisk(typeID) {
		return Result{}, ErrNotPermitted
	}

	if !desc.Validate(item) || !desc.FieldCountOK(item) {
		return Result{}, &risktype.ValidationError{Message: "Invalid request body"}
	}

	fields, err := desc.CheckTypes(item)
	if err != nil {
		return Result{}, err
	}

	patientID, err := s.patients.ResolveOrCreate(ctx, &patient.Patient{
		Name:     fields.Name,
		Birthday: fields.Birthday,
		Gender:   fields.Gender,
		Snils:    fields.Snils,
		FirmID:   firm.ID,
	})
	if err != nil {
		return Result{}, fmt.Errorf("resolve patient: %w", err)
	}

	now := s.now().UTC()
	values := make([]interface{}, len(desc.Columns))
	for i, col := range desc.Columns {
		values[i] = fields.ColumnValue(col)
	}

	if err := s.recorder.RecordResearch(ctx, &research.Record{
		TypeID:    typeID,
		PatientID: patientID,
		FirmID:    firm.ID,
		Date:      now,
		Name:      fields.Name,
		Birthday:  fields.Birthday,
		Gender:    fields.Gender,
		Columns:   desc.Columns,
		Values:    values,
	}); err != nil {
		return Result{}, fmt.Errorf("record research: %w", err)
	}

	risk, err := desc.Calculate(fields)
	if err != nil {
		return Result{}, err
	}

	if err := s.recorder.RecordRisk(ctx, &research.RiskRecord{
		TypeID:    typeID,
		Risk:      risk,
		PatientID: patientID,
		FirmID:    firm.ID,
		Date:      now,
		Name:      fields.Name,
		Birthday:  fields.Birthday,
		Gender:    fields.Gender,
	}); err != nil {
		return Result{}, fmt.Errorf("record risk: %w", err)
	}

	s.log.Info().
		Int("firm_id", firm.ID).
		Str("type", name).
		Str("snils", fields.Snils).
		Float64("risk", risk).
		Msg("risk computed")

	if fields.ReturnAnswer {
		return Result{Message: fmt.Sprintf("risk_score for user snils %s = %v", fields.Snils, risk)}, nil
	}
	return Result{Message: fmt.Sprintf("data for user snils %s has been sent successfully", fields.Snils)}, nil
}
