package walkthrough_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/walkthrough"
	"github.com/aretw0/walkthrough/pkg/adapters/memory"
	"github.com/aretw0/walkthrough/pkg/catalog"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_UnknownMode(t *testing.T) {
	_, err := walkthrough.New("polygons", memory.NewSurface())
	assert.ErrorIs(t, err, domain.ErrUnknownMode)
}

func TestTour_AutoStartOnlyOnce(t *testing.T) {
	ctx := context.Background()
	seen := memory.NewSeenStore()
	clicks := memory.NewClickBus()
	surface := memory.NewSurface(domain.TargetGallery)

	tour, err := walkthrough.New(domain.ModeLabels, surface,
		walkthrough.WithSeenStore(seen),
		walkthrough.WithClickSource(clicks),
	)
	require.NoError(t, err)
	assert.Len(t, tour.Steps(), 11)
	assert.Equal(t, domain.ModeLabels, tour.Mode())

	started, err := tour.AutoStart(ctx)
	require.NoError(t, err)
	assert.True(t, started)

	step, ok := tour.Current()
	require.True(t, ok)
	assert.Equal(t, domain.TargetGallery, step.Target)

	for !tour.State().Finished() {
		clicks.Click(ctx)
	}
	ok, err = tour.Seen(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	// A fresh tour for the same user does not start again.
	again, err := walkthrough.New(domain.ModeLabels, memory.NewSurface(domain.TargetGallery),
		walkthrough.WithSeenStore(seen),
	)
	require.NoError(t, err)
	started, err = again.AutoStart(ctx)
	require.NoError(t, err)
	assert.False(t, started)
	assert.Equal(t, domain.StatusNotStarted, again.State().Status)

	// Reset brings it back.
	require.NoError(t, again.Reset(ctx))
	started, err = again.AutoStart(ctx)
	require.NoError(t, err)
	assert.True(t, started)
}

type failingSeen struct{ *memory.SeenStore }

func (failingSeen) Seen(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func TestTour_AutoStartSeenError(t *testing.T) {
	tour, err := walkthrough.New(domain.ModePoints, memory.NewSurface(domain.TargetGallery),
		walkthrough.WithSeenStore(failingSeen{memory.NewSeenStore()}),
	)
	require.NoError(t, err)

	started, err := tour.AutoStart(context.Background())
	assert.Error(t, err)
	assert.False(t, started)
}

func TestTour_ManualStartAndCustomFlag(t *testing.T) {
	ctx := context.Background()
	seen := memory.NewSeenStore()
	blocker := memory.NewBlocker()

	c := &catalog.Catalog{
		Entries: []catalog.Entry{
			{Target: domain.TargetNext, Text: "Next"},
			{Target: domain.TargetGallery, Slot: catalog.SlotAdd},
		},
		Variants: map[domain.Mode]map[catalog.Slot]string{
			domain.ModeLabels: {catalog.SlotAdd: "Assign"},
		},
	}

	tour, err := walkthrough.New(domain.ModeLabels, memory.NewSurface(domain.TargetNext, domain.TargetGallery),
		walkthrough.WithCatalog(c),
		walkthrough.WithSeenStore(seen),
		walkthrough.WithBlocker(blocker),
		walkthrough.WithSeenFlag("skipTutorial:bob", 24*time.Hour),
	)
	require.NoError(t, err)

	state, err := tour.Start(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, -1, state.Index)
	assert.True(t, blocker.Blocked())

	for i := 0; i < 3; i++ {
		_, err = tour.Advance(ctx)
		require.NoError(t, err)
	}
	assert.True(t, tour.State().Finished())
	assert.False(t, blocker.Blocked())

	ok, err := seen.Seen(ctx, "skipTutorial:bob")
	require.NoError(t, err)
	assert.True(t, ok)
}
