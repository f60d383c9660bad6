package risktype

import (
	"errors"
	"sort"
	"time"
)

// ErrUnknownType is returned when a submitted risk-type name has no registry
// entry or no catalog id.
var ErrUnknownType = errors.New("unknown risk type")

// ErrComputation is returned when a calculation is mathematically undefined
// for the validated inputs (e.g. division by zero). It never escapes as
// Inf/NaN.
var ErrComputation = errors.New("risk computation failed")

// Fields is the validated, typed view of one submission item. Only the
// measurement fields required by the item's risk type are populated.
type Fields struct {
	Name         string
	Birthday     time.Time
	Snils        string
	Gender       string
	ReturnAnswer bool

	Smoking       int
	BloodPressure int
	Cholesterol   float64
	DiastolicBP   int
	SystolicBP    int
	Pulse         int
}

// ColumnValue returns the measurement value persisted under the given
// research column.
func (f Fields) ColumnValue(column string) interface{} {
	switch column {
	case "smoking":
		return f.Smoking
	case "blood_pressure":
		return f.BloodPressure
	case "cholesterol":
		return f.Cholesterol
	case "diastolic_bp":
		return f.DiastolicBP
	case "systolic_bp":
		return f.SystolicBP
	case "pulse":
		return f.Pulse
	default:
		return nil
	}
}

// Descriptor defines one risk type: the fields a submission must carry, the
// bound on total field count, the research columns its measurements persist
// to, and the calculation over validated fields. Adding a risk type means
// adding one descriptor here and one row to the risk_types catalog.
type Descriptor struct {
	Name      string
	Required  []string
	MaxFields int
	Columns   []string
	Calculate func(Fields) (float64, error)
}

var baseRequired = []string{"name", "birthday", "snils", "gender", "type"}

func withBase(fields ...string) []string {
	return append(append([]string{}, baseRequired...), fields...)
}

var registry = map[string]Descriptor{
	"score": {
		Name:     "score",
		Required: withBase("smoking", "blood_pressure", "cholesterol"),
		// +1 for the optional return_answer flag
		MaxFields: len(baseRequired) + 3 + 1,
		Columns:   []string{"cholesterol", "blood_pressure", "smoking"},
		Calculate: calcScore,
	},
	"kerdo": {
		Name:      "kerdo",
		Required:  withBase("diastolic_bp", "systolic_bp", "pulse"),
		MaxFields: len(baseRequired) + 3 + 1,
		Columns:   []string{"diastolic_bp", "systolic_bp", "pulse"},
		Calculate: calcKerdo,
	},
	"kvaas": {
		Name:      "kvaas",
		Required:  withBase("diastolic_bp", "systolic_bp", "pulse"),
		MaxFields: len(baseRequired) + 3 + 1,
		Columns:   []string{"systolic_bp", "diastolic_bp", "pulse"},
		Calculate: calcKvaas,
	},
}

// Lookup returns the descriptor for a risk-type name.
func Lookup(name string) (Descriptor, error) {
	d, ok := registry[name]
	if !ok {
		return Descriptor{}, ErrUnknownType
	}
	return d, nil
}

// Names returns the registered risk-type names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
