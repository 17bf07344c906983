package rv64

import "fmt"

// Synchronous exception causes, as the hardware encodes them in mcause.
const (
	CauseMisalignedFetch    uint64 = 0
	CauseFetchFault         uint64 = 1
	CauseIllegalInstruction uint64 = 2
	CauseBreakpoint         uint64 = 3
	CauseMisalignedLoad     uint64 = 4
	CauseLoadFault          uint64 = 5
	CauseMisalignedStore    uint64 = 6
	CauseStoreFault         uint64 = 7
	CauseEcallFromU         uint64 = 8
	CauseEcallFromM         uint64 = 11
)

// InterruptBit marks asynchronous causes in mcause.
const InterruptBit uint64 = 1 << 63

// CauseMachineTimer is the machine timer interrupt cause value.
const CauseMachineTimer uint64 = InterruptBit | 7

// Trap describes why execution stopped. Cause is the native mcause
// value, preserved bit-for-bit; Value carries the mtval payload (the
// faulting address or the offending instruction word); EPC is the pc of
// the trapping instruction (or the interrupted one).
type Trap struct {
	Cause uint64
	Value uint64
	EPC   uint64
}

// IsInterrupt reports whether the trap is asynchronous.
func (t Trap) IsInterrupt() bool { return t.Cause&InterruptBit != 0 }

func (t Trap) String() string {
	name := "unknown"
	if t.IsInterrupt() {
		if t.Cause == CauseMachineTimer {
			name = "machine timer interrupt"
		} else {
			name = "interrupt"
		}
	} else if int(t.Cause) < len(exceptionNames) {
		name = exceptionNames[t.Cause]
	}
	return fmt.Sprintf("%s (cause=%#x, tval=%#x, epc=%#x)", name, t.Cause, t.Value, t.EPC)
}

var exceptionNames = []string{
	"instruction address misaligned",
	"instruction access fault",
	"illegal instruction",
	"breakpoint",
	"load address misaligned",
	"load access fault",
	"store address misaligned",
	"store access fault",
	"environment call from U-mode",
	"environment call from S-mode",
	"reserved",
	"environment call from M-mode",
}
