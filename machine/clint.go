package machine

import "time"

// CLINT register offsets, matching the SiFive CLINT layout the kernel's
// timer driver expects.
const (
	ClintMSIP     uint64 = 0x0000
	ClintMTimeCmp uint64 = 0x4000
	ClintMTime    uint64 = 0xBFF8
)

// TickHz is the timer frequency: one tick per millisecond.
const TickHz = 1000

// Clock supplies the free-running tick counter behind MTIME.
type Clock interface {
	// Ticks returns the current tick count. Must be monotonically
	// non-decreasing.
	Ticks() uint64
}

// WallClock derives ticks from the host monotonic clock at TickHz.
type WallClock struct {
	start time.Time
}

// NewWallClock starts counting from zero at the time of the call.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

func (w *WallClock) Ticks() uint64 {
	return uint64(time.Since(w.start) / time.Millisecond)
}

// StepClock is a test clock that advances a fixed amount on every read,
// so polled waits terminate without real time passing.
type StepClock struct {
	now  uint64
	step uint64
}

// NewStepClock returns a clock advancing by step per Ticks call.
func NewStepClock(step uint64) *StepClock {
	return &StepClock{step: step}
}

func (s *StepClock) Ticks() uint64 {
	s.now += s.step
	return s.now
}

// CLINT is the core-local interruptor: the machine timer (MTIME,
// MTIMECMP) and the software interrupt register (MSIP). MTIME is derived
// from the Clock; writing MTIME rebases the counter without touching the
// clock itself.
type CLINT struct {
	regs
	base     uint64
	clock    Clock
	offset   uint64
	mtimecmp uint64
	msip     uint32
}

// NewCLINT creates the device with the timer disarmed (MTIMECMP all-ones).
func NewCLINT(base uint64, clock Clock) *CLINT {
	return &CLINT{base: base, clock: clock, mtimecmp: ^uint64(0)}
}

func (c *CLINT) Name() string { return "CLINT" }
func (c *CLINT) Base() uint64 { return c.base }
func (c *CLINT) Size() uint64 { return 0x10000 }

func (c *CLINT) mtime() uint64 { return c.clock.Ticks() + c.offset }

// TimerPending reports whether the machine timer interrupt condition
// holds (mtime >= mtimecmp).
func (c *CLINT) TimerPending() bool { return c.mtime() >= c.mtimecmp }

func (c *CLINT) Read32(off uint64) uint32 {
	switch off {
	case ClintMSIP:
		return c.msip
	case ClintMTime:
		return uint32(c.mtime())
	case ClintMTimeCmp:
		return uint32(c.mtimecmp)
	default:
		return 0
	}
}

func (c *CLINT) Read64(off uint64) uint64 {
	switch off {
	case ClintMTime:
		return c.mtime()
	case ClintMTimeCmp:
		return c.mtimecmp
	case ClintMSIP:
		return uint64(c.msip)
	default:
		return 0
	}
}

func (c *CLINT) Write32(off uint64, v uint32) {
	if off == ClintMSIP {
		c.msip = v & 1
	}
}

func (c *CLINT) Write64(off uint64, v uint64) {
	switch off {
	case ClintMTimeCmp:
		c.mtimecmp = v
	case ClintMTime:
		c.offset = v - c.clock.Ticks()
	}
}
