package debounce_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stockbar/internal/debounce"
)

func TestBool_ShortPulseNeverSurfaces(t *testing.T) {
	t.Parallel()

	transitions := make(chan bool, 4)
	b := debounce.NewBool(100*time.Millisecond, func(v bool) { transitions <- v })

	b.Set(true)
	time.Sleep(20 * time.Millisecond)
	b.Set(false)

	time.Sleep(250 * time.Millisecond)
	require.False(t, b.Value())
	require.Empty(t, transitions)
}

func TestBool_SustainedInputSurfacesAfterDelay(t *testing.T) {
	t.Parallel()

	transitions := make(chan bool, 4)
	b := debounce.NewBool(50*time.Millisecond, func(v bool) { transitions <- v })

	b.Set(true)
	select {
	case v := <-transitions:
		require.True(t, v)
	case <-time.After(time.Second):
		t.Fatal("debounced output never surfaced")
	}
	require.True(t, b.Value())
}

func TestBool_EveryChangeRestartsTimer(t *testing.T) {
	t.Parallel()

	transitions := make(chan bool, 8)
	b := debounce.NewBool(80*time.Millisecond, func(v bool) { transitions <- v })

	// Keep toggling inside the settle window; the output must not move.
	for i := 0; i < 4; i++ {
		b.Set(true)
		time.Sleep(20 * time.Millisecond)
		b.Set(false)
		time.Sleep(20 * time.Millisecond)
	}
	require.False(t, b.Value())
	require.Empty(t, transitions)

	// Settle on true and let it through.
	b.Set(true)
	select {
	case v := <-transitions:
		require.True(t, v)
	case <-time.After(time.Second):
		t.Fatal("debounced output never surfaced")
	}
}

func TestBool_RepeatedIdenticalInputIgnored(t *testing.T) {
	t.Parallel()

	transitions := make(chan bool, 4)
	b := debounce.NewBool(30*time.Millisecond, func(v bool) { transitions <- v })

	b.Set(true)
	select {
	case <-transitions:
	case <-time.After(time.Second):
		t.Fatal("debounced output never surfaced")
	}

	b.Set(true)
	time.Sleep(80 * time.Millisecond)
	require.Empty(t, transitions)
}

func TestBool_StopCancelsPendingSettle(t *testing.T) {
	t.Parallel()

	transitions := make(chan bool, 4)
	b := debounce.NewBool(30*time.Millisecond, func(v bool) { transitions <- v })

	b.Set(true)
	b.Stop()
	time.Sleep(100 * time.Millisecond)
	require.False(t, b.Value())
	require.Empty(t, transitions)
}
