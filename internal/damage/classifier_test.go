package damage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyHighConfidenceScratch(t *testing.T) {
	analysis := Classify([]Label{{Name: "Scratch", Confidence: 95}})

	require.True(t, analysis.HasDamage)
	require.Equal(t, SeverityHigh, analysis.Severity)
	require.Equal(t, "Scratch", analysis.DamageType)
	require.Equal(t, 95.0, analysis.Confidence)
}

func TestClassifyMediumConfidenceDent(t *testing.T) {
	analysis := Classify([]Label{{Name: "Dent", Confidence: 82}})

	require.True(t, analysis.HasDamage)
	require.Equal(t, SeverityMedium, analysis.Severity)
}

func TestClassifyLowConfidenceRust(t *testing.T) {
	analysis := Classify([]Label{{Name: "Rust", Confidence: 50}})

	require.True(t, analysis.HasDamage)
	require.Equal(t, SeverityLow, analysis.Severity)
}

func TestClassifyNoVocabularyMatch(t *testing.T) {
	analysis := Classify([]Label{{Name: "Tree", Confidence: 99}})

	require.False(t, analysis.HasDamage)
	require.Equal(t, 0.0, analysis.Confidence)
	require.Empty(t, analysis.DamageType)
	// Severity defaults to low for a zero confidence; callers are expected
	// to gate on HasDamage before reading it.
	require.Equal(t, SeverityLow, analysis.Severity)
}

func TestClassifyAveragesMatchingLabelsOnly(t *testing.T) {
	analysis := Classify([]Label{
		{Name: "Car", Confidence: 99},
		{Name: "Scratch", Confidence: 90},
		{Name: "Dent", Confidence: 80},
		{Name: "Sky", Confidence: 97},
	})

	require.True(t, analysis.HasDamage)
	require.Equal(t, 85.0, analysis.Confidence)
	require.Equal(t, SeverityMedium, analysis.Severity)
	// Damage type is the first matching label in input order.
	require.Equal(t, "Scratch", analysis.DamageType)
	// All label names are echoed for auditing, matching or not.
	require.Equal(t, []string{"Car", "Scratch", "Dent", "Sky"}, analysis.Labels)
}

func TestClassifyEmptyInput(t *testing.T) {
	analysis := Classify(nil)

	require.False(t, analysis.HasDamage)
	require.Equal(t, 0.0, analysis.Confidence)
	require.Empty(t, analysis.Labels)
}
