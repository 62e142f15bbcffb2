package domain_test

import (
	"testing"

	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	for _, m := range domain.Modes() {
		got, err := domain.ParseMode(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	_, err := domain.ParseMode("polygons")
	assert.ErrorIs(t, err, domain.ErrUnknownMode)

	_, err = domain.ParseMode("")
	assert.ErrorIs(t, err, domain.ErrUnknownMode)
}

func TestTargetSelector(t *testing.T) {
	assert.Equal(t, "#tools-container", domain.TargetToolsContainer.Selector())
	assert.Equal(t, "#labelAll-button", domain.TargetLabelAll.Selector())
}

func TestState_Phases(t *testing.T) {
	s := domain.NewState(domain.ModePoints, 3)
	assert.Equal(t, -1, s.Index)
	assert.False(t, s.Showing())
	assert.False(t, s.Finished())

	s.Status = domain.StatusShowing
	assert.False(t, s.Showing(), "index -1 shows nothing")

	s.Index = 2
	assert.True(t, s.Showing())

	s.Index = 3
	s.Status = domain.StatusFinished
	assert.True(t, s.Finished())
	assert.False(t, s.Showing())
}
