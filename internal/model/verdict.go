package model

type Kind string

const (
	KindDate Kind = "date"
	KindTime Kind = "time"
)

// Verdict is the outcome of checking a single date or time.
type Verdict struct {
	Kind   Kind   `json:"kind"`
	Input  string `json:"input"`
	Value  string `json:"value"` // formatted form of the parsed value
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

type Order string

const (
	OrderBefore Order = "before"
	OrderEqual  Order = "equal"
	OrderAfter  Order = "after"
)

// OrderOf maps the result of a three-way comparison to an Order.
func OrderOf(c int) Order {
	switch {
	case c < 0:
		return OrderBefore
	case c > 0:
		return OrderAfter
	}
	return OrderEqual
}

// Comparison reports where A falls relative to B.
type Comparison struct {
	Kind   Kind   `json:"kind"`
	A      string `json:"a"`
	B      string `json:"b"`
	Order  Order  `json:"order"`
	Equal  bool   `json:"equal"`
	AValid bool   `json:"aValid"`
	BValid bool   `json:"bValid"`
}

// SmokeCase is a fixed input together with its expected verdict.
type SmokeCase struct {
	Kind        Kind   `toml:"-" json:"kind"`
	Input       string `toml:"input" json:"input"`
	Valid       bool   `toml:"valid" json:"valid"`
	ValidStrict *bool  `toml:"valid_strict" json:"validStrict,omitempty"` // when strict time checks differ
	Note        string `toml:"note" json:"note"`
}

// Expected returns the verdict expected for the case.
func (c SmokeCase) Expected(strict bool) bool {
	if strict && c.ValidStrict != nil {
		return *c.ValidStrict
	}
	return c.Valid
}

type SmokeResult struct {
	Case    SmokeCase `json:"case"`
	Verdict Verdict   `json:"verdict"`
	Pass    bool      `json:"pass"`
}

type SmokeReport struct {
	RunID         string        `json:"runId,omitempty"`
	ReferenceYear int           `json:"referenceYear"`
	StrictTime    bool          `json:"strictTime"`
	Results       []SmokeResult `json:"results"`
	Failed        int           `json:"failed"`
}
