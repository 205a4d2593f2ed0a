package steps

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepRegistry(t *testing.T) {
	expectedSteps := []string{LoadResume, LoadJob, ExtractResume, ExtractJob, Score, SaveReport}

	for _, stepName := range expectedSteps {
		def, ok := StepRegistry[stepName]
		require.True(t, ok, "Step %s should be in registry", stepName)
		assert.Equal(t, stepName, def.Name)
		assert.NotEmpty(t, def.Category)
		for _, dep := range def.Dependencies {
			_, ok := StepRegistry[dep]
			assert.True(t, ok, "dependency %s of %s should be registered", dep, stepName)
		}
	}
}

func TestTracker_ValidateDependencies(t *testing.T) {
	tracker := NewTracker()

	err := tracker.ValidateDependencies(Score)
	var depErr *DependencyError
	require.True(t, errors.As(err, &depErr))
	assert.Equal(t, Score, depErr.Step)
	assert.Equal(t, []string{ExtractResume, ExtractJob}, depErr.MissingDependencies)
	assert.Contains(t, err.Error(), "missing dependencies")

	tracker.Complete(ExtractResume)
	tracker.Complete(ExtractJob)
	assert.NoError(t, tracker.ValidateDependencies(Score))
}

func TestTracker_UnknownStep(t *testing.T) {
	err := NewTracker().ValidateDependencies("unknown_step")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown step")
}

func TestTracker_AvailableSteps(t *testing.T) {
	tracker := NewTracker()
	assert.ElementsMatch(t, []string{LoadResume, LoadJob}, tracker.AvailableSteps())

	tracker.Complete(LoadResume)
	assert.ElementsMatch(t, []string{LoadJob, ExtractResume}, tracker.AvailableSteps())
	assert.True(t, tracker.IsCompleted(LoadResume))
}
