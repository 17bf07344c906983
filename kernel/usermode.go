package kernel

import "github.com/rvmicro/rvmicro/machine/rv64"

// sysExit is the syscall number user programs place in a7 to terminate.
const sysExit = 93

// OutcomeKind tags how a user program ended.
type OutcomeKind uint8

const (
	// Exited means the program made a well-formed exit syscall with a
	// status in 0..255.
	Exited OutcomeKind = iota
	// Faulted means the program trapped: an exception, a timer
	// preemption, a malformed syscall, or an exit status outside the
	// byte range.
	Faulted
)

// Outcome is the closed result of one user-mode run. A context is never
// resumed: every run ends in exactly one Outcome.
type Outcome struct {
	Kind  OutcomeKind
	Code  uint8  // valid when Kind == Exited
	Cause uint64 // valid when Kind == Faulted; native mcause, or the raw a0 of an out-of-range exit
}

func exited(code uint8) Outcome { return Outcome{Kind: Exited, Code: code} }

func faulted(cause uint64) Outcome { return Outcome{Kind: Faulted, Cause: cause} }

// RunUser drops to user mode at entry with a fresh register file and the
// stack at the top of the load window, then runs until the first trap.
// An exit syscall (a7=93) with a0 in 0..255 is a clean exit; an a0 above
// 255 is reported as a fault carrying the raw value. Every other trap is
// a fault carrying the native cause. If the machine is halted while the
// program runs, the run is abandoned as a clean exit; the dispatcher
// loop observes the halt itself.
func (k *Kernel) RunUser(entry uint64) Outcome {
	k.cpu.ResetUser(entry, UserBase+UserWindowSize)
	trap, ok := k.cpu.Run(k.halted)
	if !ok {
		return exited(0)
	}
	if trap.Cause == rv64.CauseEcallFromU && k.cpu.Regs[rv64.RegA7] == sysExit {
		status := k.cpu.Regs[rv64.RegA0]
		if status <= 255 {
			return exited(uint8(status))
		}
		return faulted(status)
	}
	return faulted(trap.Cause)
}
