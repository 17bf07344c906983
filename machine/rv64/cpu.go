package rv64

// Priv is a RISC-V privilege level. Only Machine and User exist on this
// platform; the kernel never delegates to Supervisor mode.
type Priv uint8

const (
	PrivUser    Priv = 0
	PrivMachine Priv = 3
)

// General-purpose register indices in the standard ABI.
const (
	RegZero = 0
	RegRA   = 1
	RegSP   = 2
	RegA0   = 10
	RegA1   = 11
	RegA2   = 12
	RegA7   = 17
)

// Bus is the CPU's view of the system interconnect. machine.Bus
// satisfies it; tests may substitute anything byte-addressable.
type Bus interface {
	Read8(addr uint64) (uint8, bool)
	Read16(addr uint64) (uint16, bool)
	Read32(addr uint64) (uint32, bool)
	Read64(addr uint64) (uint64, bool)
	Write8(addr uint64, v uint8) bool
	Write16(addr uint64, v uint16) bool
	Write32(addr uint64, v uint32) bool
	Write64(addr uint64, v uint64) bool
}

// CPU is a single RV64IM hart.
type CPU struct {
	PC   uint64
	Regs [32]uint64
	Priv Priv

	csr csrFile

	bus          Bus
	timerPending func() bool
}

// New creates a hart in machine mode at pc 0. timerPending, when
// non-nil, is sampled before each user-mode instruction; a pending
// machine timer preempts execution as an asynchronous trap.
func New(bus Bus, timerPending func() bool) *CPU {
	c := &CPU{bus: bus, timerPending: timerPending, Priv: PrivMachine}
	c.csr.reset()
	return c
}

// ResetUser establishes a fresh user-mode context: all general-purpose
// registers zeroed, stack pointer and entry point as given, privilege
// dropped to User. The previous context, if any, is discarded; contexts
// are never resumed.
func (c *CPU) ResetUser(entry, sp uint64) {
	c.Regs = [32]uint64{}
	c.Regs[RegSP] = sp
	c.PC = entry
	c.Priv = PrivUser
}

// Run executes instructions until a trap fires and returns it. stop,
// when non-nil, is polled between instructions; if it reports true, Run
// returns ok=false with a zero Trap (the machine was halted under the
// running program).
func (c *CPU) Run(stop func() bool) (Trap, bool) {
	for {
		if stop != nil && stop() {
			return Trap{}, false
		}
		if t := c.Step(); t != nil {
			return *t, true
		}
	}
}

// Step executes one instruction. It returns nil when the instruction
// retired normally, or the trap that stopped it. Traps are also latched
// into mepc/mcause/mtval, mirroring what the hardware would do on entry
// to the (Go-side) machine-mode handler.
func (c *CPU) Step() *Trap {
	if c.Priv == PrivUser && c.timerPending != nil && c.timerPending() {
		return c.trap(CauseMachineTimer, 0)
	}
	if c.PC%4 != 0 {
		return c.trap(CauseMisalignedFetch, c.PC)
	}
	inst, ok := c.bus.Read32(c.PC)
	if !ok {
		return c.trap(CauseFetchFault, c.PC)
	}
	t := c.exec(inst)
	c.Regs[RegZero] = 0
	return t
}

func (c *CPU) trap(cause, tval uint64) *Trap {
	c.csr.mepc = c.PC
	c.csr.mcause = cause
	c.csr.mtval = tval
	return &Trap{Cause: cause, Value: tval, EPC: c.PC}
}
