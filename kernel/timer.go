package kernel

import (
	"runtime"

	"github.com/rvmicro/rvmicro/machine"
)

// TicksPerMilli converts a sleep duration to timer ticks. MTIME runs at
// machine.TickHz (1 kHz), so one tick is one millisecond.
const TicksPerMilli = 1

// Timer is the kernel's view of the CLINT.
type Timer struct {
	bus  *machine.Bus
	base uint64
}

func NewTimer(bus *machine.Bus, base uint64) *Timer {
	return &Timer{bus: bus, base: base}
}

// Now reads the free-running tick counter.
func (t *Timer) Now() uint64 {
	v, _ := t.bus.Read64(t.base + machine.ClintMTime)
	return v
}

// Sleep blocks until at least ms milliseconds of ticks have elapsed. It
// programs the compare register and polls the counter; when the wait is
// over the compare register is re-armed to all-ones so the timer is
// quiescent again and does not preempt the next user program.
func (t *Timer) Sleep(ms uint64) {
	if ms == 0 {
		return
	}
	target := t.Now() + ms*TicksPerMilli
	t.bus.Write64(t.base+machine.ClintMTimeCmp, target)
	for t.Now() < target {
		runtime.Gosched()
	}
	t.bus.Write64(t.base+machine.ClintMTimeCmp, ^uint64(0))
}
