package patient

import "time"

// Patient is the demographic snapshot captured the first time a firm submits
// a measurement for a snils. Later submissions never rewrite it.
type Patient struct {
	ID       int
	Name     string
	Birthday time.Time
	Gender   string
	Snils    string
	FirmID   int
}

// Summary is the listing view exposed by the patients endpoint.
type Summary struct {
	Name  string `json:"name"`
	Snils string `json:"snils"`
}
