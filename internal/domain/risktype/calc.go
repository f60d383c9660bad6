package risktype

import (
	"fmt"
	"math"
	"time"
)

// AgeAt returns full years between birthday and now, decremented when the
// birthday has not yet occurred in now's year.
func AgeAt(birthday, now time.Time) int {
	age := now.Year() - birthday.Year()
	if now.Month() < birthday.Month() ||
		(now.Month() == birthday.Month() && now.Day() < birthday.Day()) {
		age--
	}
	return age
}

// scoreParams are the Weibull coefficients of the SCORE model, one pair for
// the cardiovascular term and one for the non-cardiovascular term.
type scoreParams struct {
	alpha, p   float64
	alpha2, p2 float64
}

var scoreParamsByGender = map[string]scoreParams{
	"male":   {alpha: -21.0, p: 4.62, alpha2: -25.7, p2: 5.47},
	"female": {alpha: -28.7, p: 6.23, alpha2: -30.0, p2: 6.42},
}

// scoreRisk computes the 10-year SCORE cardiovascular risk in percent,
// rounded to two decimals.
func scoreRisk(age int, gender string, smoking, bloodPressure int, cholesterol float64) float64 {
	params := scoreParamsByGender[gender]

	cs0 := math.Exp(-math.Exp(params.alpha) * math.Pow(float64(age-20), params.p))
	cs10 := math.Exp(-math.Exp(params.alpha) * math.Pow(float64(age-10), params.p))
	ncs0 := math.Exp(-math.Exp(params.alpha2) * math.Pow(float64(age-20), params.p2))
	ncs10 := math.Exp(-math.Exp(params.alpha2) * math.Pow(float64(age-10), params.p2))

	var bsmCardio, bsmNonCardio float64
	if smoking == 1 {
		bsmCardio = 0.71
		bsmNonCardio = 0.63
	}

	wc := 0.24*(cholesterol-6.0) + 0.018*float64(bloodPressure-120) + bsmCardio
	wnc := 0.02*(cholesterol-6.0) + 0.022*float64(bloodPressure-120) + bsmNonCardio

	cs1 := math.Pow(cs10, math.Exp(wc)) / math.Pow(cs0, math.Exp(wc))
	ncs1 := math.Pow(ncs10, math.Exp(wnc)) / math.Pow(ncs0, math.Exp(wnc))

	return round2(100 * ((1 - cs1) + (1 - ncs1)))
}

func calcScore(f Fields) (float64, error) {
	age := AgeAt(f.Birthday, time.Now())
	return scoreRisk(age, f.Gender, f.Smoking, f.BloodPressure, f.Cholesterol), nil
}

// calcKerdo computes the Kerdo vegetative index.
func calcKerdo(f Fields) (float64, error) {
	if f.Pulse == 0 {
		return 0, fmt.Errorf("%w: kerdo index is undefined when pulse is 0", ErrComputation)
	}
	return 100 * (1 - float64(f.DiastolicBP)/float64(f.Pulse)), nil
}

// calcKvaas computes the Kvaas endurance coefficient.
func calcKvaas(f Fields) (float64, error) {
	if f.SystolicBP == f.DiastolicBP {
		return 0, fmt.Errorf("%w: kvaas index is undefined when systolic and diastolic pressure are equal", ErrComputation)
	}
	return 10 * float64(f.Pulse) / float64(f.SystolicBP-f.DiastolicBP), nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
