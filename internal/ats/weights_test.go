package ats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()

	require.NoError(t, w.Validate())
	assert.InDelta(t, 1.0, w.Sum(), 1e-9)
	assert.Equal(t, 0.40, w.Of(KeywordMatch))
	assert.Equal(t, 0.05, w.Of(Formatting))
	assert.Equal(t, 0.0, w.Of(Component("unknown")))
}

func TestWeightsValidate(t *testing.T) {
	negative := DefaultWeights()
	negative.Formatting = -0.05
	negative.EducationMatch = 0.15
	assert.Error(t, negative.Validate())

	short := DefaultWeights()
	short.KeywordMatch = 0.30
	assert.ErrorContains(t, short.Validate(), "sum")

	within := DefaultWeights()
	within.KeywordMatch = 0.4005
	assert.NoError(t, within.Validate())
}
