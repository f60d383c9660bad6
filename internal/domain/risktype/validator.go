package risktype

import (
	"fmt"
	"math"
	"time"
)

// ValidationError is a caller-visible field validation failure. The first
// failing check wins; errors are never aggregated.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalidf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Validate reports whether every required field is present. It checks
// presence only; types and values are CheckTypes' job.
func (d Descriptor) Validate(item map[string]interface{}) bool {
	for _, field := range d.Required {
		if _, ok := item[field]; !ok {
			return false
		}
	}
	return true
}

// FieldCountOK rejects payloads carrying unexpected extra fields. It
// deliberately does not reject payloads with fewer fields than required —
// that is Validate's job.
func (d Descriptor) FieldCountOK(item map[string]interface{}) bool {
	return len(item) <= d.MaxFields
}

// CheckTypes validates field types and values and returns the typed view.
// Base fields common to every risk type are checked first, then the
// type-specific measurement fields. The first failure short-circuits.
func (d Descriptor) CheckTypes(item map[string]interface{}) (Fields, error) {
	var f Fields

	name, ok := item["name"].(string)
	if !ok {
		return f, invalidf("The type of name must be a string, not a %T", item["name"])
	}
	if name == "" {
		return f, invalidf("The name must not be empty")
	}
	f.Name = name

	birthdayStr, ok := item["birthday"].(string)
	if !ok {
		return f, invalidf("The type of birthday must be a string, not a %T", item["birthday"])
	}
	birthday, err := time.Parse("2006-01-02", birthdayStr)
	if err != nil {
		return f, invalidf("The birthday must be in the format YYYY-MM-DD.")
	}
	f.Birthday = birthday

	snils, ok := item["snils"].(string)
	if !ok {
		return f, invalidf("The type of snils must be a string, not a %T", item["snils"])
	}
	f.Snils = snils

	gender, ok := item["gender"].(string)
	if !ok {
		return f, invalidf("The type of gender must be a string, not a %T", item["gender"])
	}
	if gender != "male" && gender != "female" {
		return f, invalidf("The gender must be a male or female")
	}
	f.Gender = gender

	if v, present := item["return_answer"]; present {
		b, ok := v.(bool)
		if !ok {
			return f, invalidf("The type of return_answer must be a bool, not a %T", v)
		}
		f.ReturnAnswer = b
	}

	for _, field := range d.Required {
		check, ok := fieldCheckers[field]
		if !ok {
			continue // base field, already handled
		}
		if err := check(&f, item[field]); err != nil {
			return Fields{}, err
		}
	}

	return f, nil
}

// fieldCheckers validates and stores one measurement field each. A
// descriptor's Required list selects which of them run.
var fieldCheckers = map[string]func(*Fields, interface{}) *ValidationError{
	"smoking": func(f *Fields, v interface{}) *ValidationError {
		n, ok := asInt(v)
		if !ok {
			return invalidf("The type of smoking must be an integer, not a %T", v)
		}
		if n != 0 && n != 1 {
			return invalidf("The smoking must be a 0 or 1")
		}
		f.Smoking = n
		return nil
	},
	"blood_pressure": func(f *Fields, v interface{}) *ValidationError {
		n, ok := asInt(v)
		if !ok {
			return invalidf("The type of blood_pressure must be an integer, not a %T", v)
		}
		f.BloodPressure = n
		return nil
	},
	"cholesterol": func(f *Fields, v interface{}) *ValidationError {
		x, ok := asFloat(v)
		if !ok {
			return invalidf("The type of cholesterol must be a float, not a %T", v)
		}
		f.Cholesterol = x
		return nil
	},
	"diastolic_bp": func(f *Fields, v interface{}) *ValidationError {
		n, ok := asInt(v)
		if !ok {
			return invalidf("The type of diastolic_bp must be an integer, not a %T", v)
		}
		f.DiastolicBP = n
		return nil
	},
	"systolic_bp": func(f *Fields, v interface{}) *ValidationError {
		n, ok := asInt(v)
		if !ok {
			return invalidf("The type of systolic_bp must be an integer, not a %T", v)
		}
		f.SystolicBP = n
		return nil
	},
	"pulse": func(f *Fields, v interface{}) *ValidationError {
		n, ok := asInt(v)
		if !ok {
			return invalidf("The type of pulse must be an integer, not a %T", v)
		}
		f.Pulse = n
		return nil
	},
}

// asInt accepts JSON numbers with an integral value. Decoded JSON arrives as
// float64; plain int is accepted for callers constructing items in Go.
func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
