package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryBackoff_DoublesUpToMax(t *testing.T) {
	b := newRetryBackoff(200*time.Millisecond, time.Second)

	var got []time.Duration
	for range 5 {
		got = append(got, b.next())
	}
	assert.Equal(t, []time.Duration{
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		time.Second,
		time.Second,
	}, got)

	b.reset()
	assert.Equal(t, 200*time.Millisecond, b.next())
}

func TestRetryBackoff_WaitStopsOnCancel(t *testing.T) {
	b := newRetryBackoff(time.Hour, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, b.wait(ctx))
}

func TestRetryBackoff_WaitAdvancesSchedule(t *testing.T) {
	b := newRetryBackoff(time.Millisecond, 4*time.Millisecond)

	assert.True(t, b.wait(context.Background()))
	assert.True(t, b.wait(context.Background()))
	assert.Equal(t, 4*time.Millisecond, b.next())
	assert.Equal(t, 4*time.Millisecond, b.next())
}
