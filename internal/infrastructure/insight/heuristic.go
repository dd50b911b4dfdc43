// Package insight implements the advisory scorer behind advisory.Provider.
package insight

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/vendorhub/backend/internal/domain/advisory"
)

// Attribute keys understood by the heuristic provider
const (
	AttrProviderScore   = "provider_score"   // float64, 0-100, higher is healthier
	AttrProviderGrade   = "provider_grade"   // string
	AttrManualLevel     = "manual_level"     // string risk level set by an evaluator
	AttrPriorPenalties  = "prior_penalties"  // int, penalties already recorded for the vendor
	AttrOpenTickets     = "open_tickets"     // int, unresolved helpdesk tickets about the vendor
	AttrSuggestedAmount = "suggested_amount" // string decimal
)

// Heuristic scores subjects from the attributes it is handed. It never reaches
// outside the process, so it only fails on a cancelled context.
type Heuristic struct {
	now func() time.Time
}

// NewHeuristic creates the default advisory provider
func NewHeuristic() *Heuristic {
	return &Heuristic{now: func() time.Time { return time.Now().UTC() }}
}

// Assess implements advisory.Provider
func (h *Heuristic) Assess(ctx context.Context, subject advisory.Subject) (advisory.Insight, error) {
	if err := ctx.Err(); err != nil {
		return advisory.Insight{}, err
	}

	var in advisory.Insight
	switch subject.Kind {
	case advisory.SubjectVendorRisk:
		in = h.vendorRisk(subject.Attributes)
	case advisory.SubjectPenalty:
		in = h.penalty(subject.Attributes)
	default:
		in = advisory.None(fmt.Sprintf("no model for subject kind %q", subject.Kind))
	}
	in.GeneratedAt = h.now()
	return in, nil
}

func (h *Heuristic) vendorRisk(attrs map[string]any) advisory.Insight {
	score, ok := number(attrs[AttrProviderScore])
	if !ok {
		if level, _ := attrs[AttrManualLevel].(string); level != "" {
			return advisory.Insight{
				Score:          manualLevelScore(level),
				Rationale:      "derived from the evaluator's manual risk level only",
				Confidence:     0.3,
				DataSources:    []string{"manual_assessment"},
				Recommendation: "request a provider rating to corroborate",
			}
		}
		return advisory.None("no rating data available for this vendor")
	}

	risk := clamp(100 - score)
	sources := []string{"risk_provider"}
	rationale := fmt.Sprintf("provider score %.1f maps to risk %.1f", score, risk)
	if grade, _ := attrs[AttrProviderGrade].(string); grade != "" {
		rationale += fmt.Sprintf(" (grade %s)", grade)
	}
	if tickets, ok := number(attrs[AttrOpenTickets]); ok && tickets > 0 {
		risk = clamp(risk + math.Min(tickets*2, 10))
		sources = append(sources, "helpdesk")
		rationale += fmt.Sprintf("; %d open tickets", int(tickets))
	}

	return advisory.Insight{
		Score:          round1(risk),
		Rationale:      rationale,
		Confidence:     0.6,
		DataSources:    sources,
		Recommendation: riskRecommendation(risk),
	}
}

func (h *Heuristic) penalty(attrs map[string]any) advisory.Insight {
	prior, hasPrior := number(attrs[AttrPriorPenalties])
	_, hasSuggestion := attrs[AttrSuggestedAmount].(string)
	if !hasPrior && !hasSuggestion {
		return advisory.None("no penalty history to compare against")
	}

	score := clamp(20 + prior*20)
	confidence := 0.2
	if prior > 0 {
		confidence = 0.4
	}
	return advisory.Insight{
		Score:          round1(score),
		Rationale:      fmt.Sprintf("vendor has %d prior penalties", int(prior)),
		Confidence:     confidence,
		DataSources:    []string{"penalty_history"},
		Recommendation: "a reviewer must confirm the amount before approval",
	}
}

func manualLevelScore(level string) float64 {
	switch level {
	case "low":
		return 20
	case "medium":
		return 45
	case "high":
		return 70
	case "critical":
		return 90
	default:
		return 50
	}
}

func riskRecommendation(risk float64) string {
	switch {
	case risk >= 75:
		return "escalate for review before new commitments"
	case risk >= 50:
		return "monitor closely"
	default:
		return "no action suggested"
	}
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

var _ advisory.Provider = (*Heuristic)(nil)
