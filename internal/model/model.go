// Package model defines the domain configuration types: life domains, their
// loggable states, and the aggregation policy applied to a day's entries.
package model

import "errors"

// Score bounds for a state. Scores outside this range are clamped on load.
const (
	MinScore = -2
	MaxScore = 2
)

// ErrDomainNotFound indicates a domain id or name could not be resolved.
var ErrDomainNotFound = errors.New("model: domain not found")

// ErrStateNotFound indicates a state id or name could not be resolved within a domain.
var ErrStateNotFound = errors.New("model: state not found")

// AggregationType selects the reduction applied to one day's entry scores.
type AggregationType int

const (
	// AggSum sums the captured scores.
	AggSum AggregationType = iota
	// AggAverage averages the captured scores.
	AggAverage
	// AggWorst takes the minimum captured score.
	AggWorst
)

// ParseAggregationType maps a config string to an AggregationType.
// Unknown or empty values fall back to AggSum; configuration is repaired,
// never rejected.
func ParseAggregationType(s string) AggregationType {
	switch s {
	case "average", "avg":
		return AggAverage
	case "worst", "min":
		return AggWorst
	default:
		return AggSum
	}
}

// String returns the canonical config spelling of the aggregation type.
func (a AggregationType) String() string {
	switch a {
	case AggAverage:
		return "average"
	case AggWorst:
		return "worst"
	case AggSum:
		return "sum"
	default:
		return "sum"
	}
}

// State is a named, score-weighted condition a user can log against a domain.
type State struct {
	ID    string `json:"id" mapstructure:"id"`
	Name  string `json:"name" mapstructure:"name"`
	Score int    `json:"score" mapstructure:"score"`

	// Label is the pre-migration spelling of Name. It is read once on
	// normalization and cleared afterwards.
	Label string `json:"label,omitempty" mapstructure:"label"`
}

// Domain is a user-defined life category containing a set of possible states.
type Domain struct {
	ID          string          `json:"id" mapstructure:"id"`
	Name        string          `json:"name" mapstructure:"name"`
	States      []State         `json:"states" mapstructure:"states"`
	Aggregation AggregationType `json:"-" mapstructure:"-"`

	// RawAggregation is the persisted spelling of Aggregation.
	RawAggregation string `json:"aggregation,omitempty" mapstructure:"aggregation"`
}

// StateByID returns the state with the given id, or false when absent.
func (d *Domain) StateByID(id string) (*State, bool) {
	for i := range d.States {
		if d.States[i].ID == id {
			return &d.States[i], true
		}
	}

	return nil, false
}

// StateByRef resolves a state by id first, then by name.
func (d *Domain) StateByRef(ref string) (*State, bool) {
	if s, ok := d.StateByID(ref); ok {
		return s, true
	}

	for i := range d.States {
		if d.States[i].Name == ref {
			return &d.States[i], true
		}
	}

	return nil, false
}

// Domains is the full domain configuration.
type Domains []Domain

// ByID returns the domain with the given id, or false when absent.
func (ds Domains) ByID(id string) (*Domain, bool) {
	for i := range ds {
		if ds[i].ID == id {
			return &ds[i], true
		}
	}

	return nil, false
}

// ByRef resolves a domain by id first, then by name.
func (ds Domains) ByRef(ref string) (*Domain, bool) {
	if d, ok := ds.ByID(ref); ok {
		return d, true
	}

	for i := range ds {
		if ds[i].Name == ref {
			return &ds[i], true
		}
	}

	return nil, false
}
