package memplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPlannerConfig_FieldEquivalence(t *testing.T) {
	got := NewPlannerConfig(0.75, 0.8)
	want := PlannerConfig{ShrinkFactor: 0.75, SplitThreshold: 0.8}
	assert.Equal(t, want, got)
}

func TestNewPlannerConfig_ZeroValuesSelectDefaults(t *testing.T) {
	got := NewPlannerConfig(0, 0)
	assert.Equal(t, DefaultPlannerConfig(), got)
}

func TestNewPlannerConfig_OutOfRangeValuesSelectDefaults(t *testing.T) {
	got := NewPlannerConfig(1.5, -0.2)
	assert.Equal(t, DefaultShrinkFactor, got.ShrinkFactor)
	assert.Equal(t, DefaultSplitThreshold, got.SplitThreshold)
}
