// Package advisory carries non-authoritative suggestions (scores, rationales)
// attached to records. Nothing in this package may change a record's state.
package advisory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Insight is an advisory-only annotation. It always serializes advisory_only=true.
type Insight struct {
	Score          float64   // 0-100
	Rationale      string
	Confidence     float64   // 0-1; 0 means "no insight"
	DataSources    []string
	Recommendation string
	GeneratedAt    time.Time
}

// None is the valid "no insight available" result
func None(reason string) Insight {
	return Insight{Rationale: reason, DataSources: []string{}, GeneratedAt: time.Now().UTC()}
}

// HasSignal reports whether the provider produced a usable insight
func (i Insight) HasSignal() bool {
	return i.Confidence > 0
}

type insightJSON struct {
	Score          float64   `json:"score"`
	Rationale      string    `json:"rationale"`
	Confidence     float64   `json:"confidence"`
	DataSources    []string  `json:"data_sources"`
	Recommendation string    `json:"recommendation,omitempty"`
	AdvisoryOnly   bool      `json:"advisory_only"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// MarshalJSON implements json.Marshaler
func (i Insight) MarshalJSON() ([]byte, error) {
	sources := i.DataSources
	if sources == nil {
		sources = []string{}
	}
	return json.Marshal(insightJSON{
		Score:          i.Score,
		Rationale:      i.Rationale,
		Confidence:     i.Confidence,
		DataSources:    sources,
		Recommendation: i.Recommendation,
		AdvisoryOnly:   true,
		GeneratedAt:    i.GeneratedAt,
	})
}

// UnmarshalJSON implements json.Unmarshaler. advisory_only is ignored on input.
func (i *Insight) UnmarshalJSON(data []byte) error {
	var raw insightJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*i = Insight{
		Score:          raw.Score,
		Rationale:      raw.Rationale,
		Confidence:     raw.Confidence,
		DataSources:    raw.DataSources,
		Recommendation: raw.Recommendation,
		GeneratedAt:    raw.GeneratedAt,
	}
	return nil
}

// SubjectKind names what is being assessed
type SubjectKind string

const (
	SubjectVendorRisk SubjectKind = "vendor_risk"
	SubjectPenalty    SubjectKind = "penalty"
)

// Subject is the input to a provider
type Subject struct {
	Kind       SubjectKind
	TenantID   uuid.UUID
	SubjectID  uuid.UUID
	Attributes map[string]any
}

// Provider is an opaque scorer. Low confidence and "no insight" are results, not errors;
// an error means the provider itself could not be reached.
type Provider interface {
	Assess(ctx context.Context, subject Subject) (Insight, error)
}
