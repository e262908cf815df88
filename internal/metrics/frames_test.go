package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func TestFrameStatsSummary(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	fs := newFrameStatsWithClock(clock.Now)

	fs.Record(10*time.Millisecond, false)
	fs.Record(30*time.Millisecond, true)
	fs.Record(20*time.Millisecond, false)
	clock.t = clock.t.Add(2 * time.Second)

	s := fs.Summary()
	assert.Equal(t, 3, s.Frames)
	assert.Equal(t, 1, s.Fallbacks)
	assert.Equal(t, 20*time.Millisecond, s.MeanProcess)
	assert.Equal(t, 30*time.Millisecond, s.Slowest)
	assert.InDelta(t, 1.5, s.FPS, 1e-9)
	assert.Equal(t, "1.5 fps | 20ms/frame | 1 dropped", s.String())
}

func TestFrameStatsEmpty(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	fs := newFrameStatsWithClock(clock.Now)

	s := fs.Summary()
	assert.Zero(t, s.Frames)
	assert.Zero(t, s.MeanProcess)
	assert.Zero(t, s.FPS)
}

func TestFrameStatsReset(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	fs := newFrameStatsWithClock(clock.Now)
	fs.Record(time.Millisecond, true)

	clock.t = clock.t.Add(time.Second)
	fs.Reset()
	clock.t = clock.t.Add(time.Second)

	s := fs.Summary()
	assert.Zero(t, s.Frames)
	assert.Zero(t, s.Fallbacks)
	assert.Zero(t, s.FPS)
}

func TestTickPeriod(t *testing.T) {
	assert.Equal(t, 33333333*time.Nanosecond, TickPeriod(30))
	assert.Equal(t, 100*time.Millisecond, TickPeriod(10))
	assert.Equal(t, TickPeriod(DefaultFPS), TickPeriod(0))
	assert.Equal(t, TickPeriod(DefaultFPS), TickPeriod(-5))
	assert.Equal(t, time.Millisecond, TickPeriod(MaxFPS))
	assert.Equal(t, time.Millisecond, TickPeriod(2000))
}
