package battle

import (
	"fmt"
	"time"
)

// Benchmark defaults.
const (
	DefaultBenchmarkFrames = 2000
	DefaultReference       = 73466 * time.Millisecond // wall time of the reference machine for the default budget
)

// Benchmark times a fixed budget of frames. Once the budget is reached the
// duration freezes and the caller stops ticking the World; drawing carries
// on so the result stays on screen.
type Benchmark struct {
	maxFrames int
	reference time.Duration
	now       func() time.Time

	started  bool
	start    time.Time
	frames   int
	duration time.Duration
	locked   bool
}

// NewBenchmark creates a timer for maxFrames frames, comparing against
// reference. Non-positive arguments take the defaults.
func NewBenchmark(maxFrames int, reference time.Duration) *Benchmark {
	if maxFrames <= 0 {
		maxFrames = DefaultBenchmarkFrames
	}
	if reference <= 0 {
		reference = DefaultReference
	}
	return &Benchmark{maxFrames: maxFrames, reference: reference, now: time.Now}
}

// Running reports whether the World should still be ticked. The clock
// starts on the first call.
func (b *Benchmark) Running() bool {
	if !b.started {
		b.started = true
		b.start = b.now()
	}
	return !b.locked
}

// EndFrame counts a finished frame and freezes the timer when the budget is
// spent. It returns true exactly once, on the frame that completed the run.
func (b *Benchmark) EndFrame() bool {
	if b.locked {
		return false
	}
	if !b.started {
		b.started = true
		b.start = b.now()
	}
	b.frames++
	if b.frames < b.maxFrames {
		return false
	}
	b.duration = b.now().Sub(b.start)
	b.locked = true
	return true
}

func (b *Benchmark) Frames() int { return b.frames }
func (b *Benchmark) MaxFrames() int { return b.maxFrames }
func (b *Benchmark) Done() bool { return b.locked }
func (b *Benchmark) Duration() time.Duration { return b.duration }
func (b *Benchmark) Reference() time.Duration { return b.reference }

// Elapsed returns the running time, or the frozen duration once done.
func (b *Benchmark) Elapsed() time.Duration {
	if b.locked {
		return b.duration
	}
	if !b.started {
		return 0
	}
	return b.now().Sub(b.start)
}

// Speedup is the reference duration divided by the measured one.
func (b *Benchmark) Speedup() float64 {
	if b.duration <= 0 {
		return 0
	}
	return float64(b.reference) / float64(b.duration)
}

// FormatDuration renders d as MM:SS:mmm.
func FormatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d:%03d", ms/60000, (ms/1000)%60, ms%1000)
}

// FormatSpeedup renders the speedup line shown over the frozen battle.
func FormatSpeedup(s float64) string {
	return fmt.Sprintf("SPEEDUP: %4.1f", s)
}

// Result is the one-line summary written to the log and the clipboard.
func (b *Benchmark) Result() string {
	return fmt.Sprintf("frames=%d duration=%s (%dms) %s",
		b.frames, FormatDuration(b.duration), b.duration.Milliseconds(), FormatSpeedup(b.Speedup()))
}
