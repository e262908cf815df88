// Frame timing statistics for the display loop
package metrics

import (
	"fmt"
	"sync"
	"time"
)

// FrameStats accumulates per-tick processing time and read fallbacks
type FrameStats struct {
	mu        sync.Mutex
	frames    int
	fallbacks int
	total     time.Duration
	slowest   time.Duration
	started   time.Time
	now       func() time.Time
}

// Summary is a point-in-time view of FrameStats
type Summary struct {
	Frames      int
	Fallbacks   int
	MeanProcess time.Duration
	Slowest     time.Duration
	FPS         float64
}

func NewFrameStats() *FrameStats {
	return newFrameStatsWithClock(time.Now)
}

func newFrameStatsWithClock(now func() time.Time) *FrameStats {
	return &FrameStats{
		now:     now,
		started: now(),
	}
}

// Record adds one processed frame. fallback marks a frame reused after a failed read.
func (fs *FrameStats) Record(processing time.Duration, fallback bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.frames++
	if fallback {
		fs.fallbacks++
	}
	fs.total += processing
	if processing > fs.slowest {
		fs.slowest = processing
	}
}

func (fs *FrameStats) Summary() Summary {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	s := Summary{
		Frames:    fs.frames,
		Fallbacks: fs.fallbacks,
		Slowest:   fs.slowest,
	}
	if fs.frames > 0 {
		s.MeanProcess = fs.total / time.Duration(fs.frames)
	}
	if elapsed := fs.now().Sub(fs.started).Seconds(); elapsed > 0 {
		s.FPS = float64(fs.frames) / elapsed
	}
	return s
}

// Reset clears all counters and restarts the fps window
func (fs *FrameStats) Reset() {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.frames = 0
	fs.fallbacks = 0
	fs.total = 0
	fs.slowest = 0
	fs.started = fs.now()
}

func (s Summary) String() string {
	return fmt.Sprintf("%.1f fps | %s/frame | %d dropped", s.FPS, s.MeanProcess.Round(time.Microsecond), s.Fallbacks)
}

// Display rate limits. Rates above MaxFPS cannot be expressed as a
// whole-millisecond period.
const (
	DefaultFPS = 30
	MaxFPS     = 1000
)

// TickPeriod is the display loop interval for fps. Out of range rates fall
// back to DefaultFPS or MaxFPS so the period is always at least 1ms.
func TickPeriod(fps int) time.Duration {
	switch {
	case fps <= 0:
		fps = DefaultFPS
	case fps > MaxFPS:
		fps = MaxFPS
	}
	return time.Second / time.Duration(fps)
}
