package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_ReplaceAndSnapshot(t *testing.T) {
	page := NewPage()

	assert.Equal(t, "", page.Content(PlayersRegion))

	page.Region(PlayersRegion).Replace("first")
	page.Region(AdminsRegion).Replace("admins")
	page.Region(PlayersRegion).Replace("second")

	snap := page.Snapshot()
	assert.Equal(t, "second", snap.Content(PlayersRegion))
	assert.Equal(t, "admins", snap.Content(AdminsRegion))
	assert.Equal(t, "", snap.Content(ServerInfoRegion))
	assert.Equal(t, uint64(3), snap.Version)
	assert.False(t, snap.UpdatedAt.IsZero())

	// Snapshot is a copy
	snap.Regions[PlayersRegion] = "mutated"
	assert.Equal(t, "second", page.Content(PlayersRegion))
}

func TestPage_Subscribe(t *testing.T) {
	page := NewPage()
	ch, unsubscribe := page.Subscribe()

	page.Region(PlayersRegion).Replace("a")
	page.Region(PlayersRegion).Replace("b")

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected change notification")
	}

	// Writes coalesce into one pending signal
	select {
	case <-ch:
		t.Fatal("expected notifications to coalesce")
	default:
	}

	unsubscribe()
	unsubscribe()

	_, ok := <-ch
	assert.False(t, ok, "channel should be closed after unsubscribe")

	require.NotPanics(t, func() {
		page.Region(PlayersRegion).Replace("c")
	})
}

func TestSequencer_DiscardsOlder(t *testing.T) {
	var s sequencer
	var applied []uint64

	first := s.issue()
	second := s.issue()

	assert.True(t, s.apply(second, func() { applied = append(applied, second) }))
	assert.False(t, s.apply(first, func() { applied = append(applied, first) }))
	assert.True(t, s.apply(second, func() { applied = append(applied, second) }), "same sequence may write again")

	assert.Equal(t, []uint64{second, second}, applied)
}
