// Package lens produces scored annotations ("reviews") and certification
// verdicts for records. Scoring is a pluggable strategy: the service wires
// in Placeholder until a real model exists, callers only depend on the
// response shape.
package lens

import (
	"math"
	"math/rand"
)

// Review is the contract external callers depend on. Field names and
// presence are stable, the generation of the numeric values is not.
type Review struct {
	RecordID             string   `json:"record_id,omitempty"`
	Resonance            float64  `json:"resonance"`
	EmotionalDepth       float64  `json:"emotional_depth"`
	SymbolicStructure    float64  `json:"symbolic_structure"`
	AdaptiveIntelligence float64  `json:"adaptive_intelligence"`
	LensCertified        bool     `json:"lens_certified"`
	FinalRating          float64  `json:"final_rating"`
	SymbolicTags         []string `json:"symbolic_tags"`
}

type Certification struct {
	RecordID  string `json:"record_id"`
	Certified bool   `json:"certified"`
}

// Scorer annotates a record. Implementations must be stateless and safe for
// concurrent use.
type Scorer interface {
	Review(record map[string]any) Review
}

// Placeholder is a stub scorer: every metric is uniform in [6,8), rounded
// to 2 decimals. It stands in until a real scoring model is plugged in.
type Placeholder struct{}

func (Placeholder) Review(record map[string]any) Review {

	id, _ := record["id"].(string)

	return Review{
		RecordID:             id,
		Resonance:            placeholderScore(),
		EmotionalDepth:       placeholderScore(),
		SymbolicStructure:    placeholderScore(),
		AdaptiveIntelligence: placeholderScore(),
		LensCertified:        true,
		FinalRating:          placeholderScore(),
		SymbolicTags:         []string{"stabilizer", "clarity", "structure"},
	}
}

func placeholderScore() float64 {
	return math.Round((rand.Float64()*2+6)*100) / 100
}

// Certify issues a verdict for a known record id. It is a single-step
// stateless transform, no store access involved.
func Certify(recordID string) Certification {
	return Certification{
		RecordID:  recordID,
		Certified: true,
	}
}
