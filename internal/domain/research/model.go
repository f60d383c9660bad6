package research

import "time"

// Record is one append-only research row: the patient snapshot at submission
// time plus the measurements the risk type persists. Columns and Values are
// parallel; column names come from the risk-type descriptors, never from
// client input.
type Record struct {
	TypeID    int
	PatientID int
	FirmID    int
	Date      time.Time
	Name      string
	Birthday  time.Time
	Gender    string
	Columns   []string
	Values    []interface{}
}

// RiskRecord is one append-only computed-risk row.
type RiskRecord struct {
	TypeID    int
	Risk      float64
	PatientID int
	FirmID    int
	Date      time.Time
	Name      string
	Birthday  time.Time
	Gender    string
}

// ResearchRow is the listing view of a research record. Measurement fields
// are nullable because each risk type persists only its own columns.
type ResearchRow struct {
	Date          string   `json:"date"`
	Name          string   `json:"name"`
	Birthday      string   `json:"birthday"`
	Gender        string   `json:"gender"`
	Cholesterol   *float64 `json:"cholesterol,omitempty"`
	BloodPressure *int     `json:"blood_pressure,omitempty"`
	Smoking       *int     `json:"smoking,omitempty"`
	DiastolicBP   *int     `json:"diastolic_bp,omitempty"`
	SystolicBP    *int     `json:"systolic_bp,omitempty"`
	Pulse         *int     `json:"pulse,omitempty"`
}

// RiskRow is the listing view of a computed-risk record. Type carries the
// catalog name of the risk type.
type RiskRow struct {
	Name     string  `json:"name"`
	Birthday string  `json:"birthday"`
	Type     string  `json:"type"`
	Risk     float64 `json:"risk"`
	Date     string  `json:"date"`
}

const (
	dateFormat     = "2006-01-02"
	dateTimeFormat = "2006-01-02 15:04:05"
)
