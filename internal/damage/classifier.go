// Package damage turns label-detection results into a damage verdict for a
// vehicle photo. The classifier is pure and stateless; it consumes the
// (name, confidence) pairs produced by the label-detection collaborator and
// nothing else.
//
// Confidence scores are on the 0-100 scale throughout. Callers feeding
// detectors that report 0-1 scores must rescale before classification.
package damage

// Severity buckets a damage verdict by average label confidence
type Severity string

const (
	// SeverityLow represents damage detected with low confidence
	SeverityLow Severity = "low"
	// SeverityMedium represents damage detected with medium confidence
	SeverityMedium Severity = "medium"
	// SeverityHigh represents damage detected with high confidence
	SeverityHigh Severity = "high"
)

// Label is a single detected image label with its confidence score (0-100)
type Label struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// Analysis is the damage verdict for a single photo
type Analysis struct {
	HasDamage  bool     `json:"hasDamage"`
	Confidence float64  `json:"confidence"`
	DamageType string   `json:"damageType,omitempty"`
	Severity   Severity `json:"severity"`
	Labels     []string `json:"labels"`
}

// damageVocabulary is the fixed set of label names that indicate vehicle
// damage. Matching is case-sensitive and exact.
var damageVocabulary = map[string]struct{}{
	"Scratch":   {},
	"Dent":      {},
	"Broken":    {},
	"Damaged":   {},
	"Rust":      {},
	"Crack":     {},
	"Collision": {},
	"Accident":  {},
}

// Classify maps a detection result to a damage verdict.
//
// Confidence is the average score over the matching labels; with no matches
// the sum is divided by 1, which yields 0. Severity is derived from that
// average even when HasDamage is false, so callers must check HasDamage
// before trusting it. A nil label slice is treated as an empty detection.
func Classify(labels []Label) Analysis {
	var (
		matched    []Label
		allNames   = make([]string, 0, len(labels))
		confidence float64
	)

	for _, label := range labels {
		allNames = append(allNames, label.Name)
		if _, ok := damageVocabulary[label.Name]; ok {
			matched = append(matched, label)
			confidence += label.Confidence
		}
	}

	divisor := len(matched)
	if divisor == 0 {
		divisor = 1
	}
	confidence /= float64(divisor)

	severity := SeverityLow
	if confidence > 90 {
		severity = SeverityHigh
	} else if confidence > 80 {
		severity = SeverityMedium
	}

	analysis := Analysis{
		HasDamage:  len(matched) > 0,
		Confidence: confidence,
		Severity:   severity,
		Labels:     allNames,
	}
	if len(matched) > 0 {
		analysis.DamageType = matched[0].Name
	}

	return analysis
}
