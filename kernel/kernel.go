package kernel

import (
	"io"
	"log/slog"

	"github.com/rvmicro/rvmicro/kernel/vfs"
	"github.com/rvmicro/rvmicro/machine"
	"github.com/rvmicro/rvmicro/machine/rv64"
)

// Version is the kernel release printed in the boot banner.
const Version = "2.3.0"

// Kernel owns all mutable kernel state: the free pool, the mounted
// filesystem, the console, and the shell's last exit status. Everything
// hangs off this value; there are no package globals.
type Kernel struct {
	bus    *machine.Bus
	con    *Console
	timer  *Timer
	cpu    *rv64.CPU
	pool   *FreePool
	fs     *vfs.FS
	halted func() bool
	log    *slog.Logger

	ramSize  uint64
	lastExit int
}

// New builds a kernel over an assembled machine. log may be nil.
func New(m *machine.Machine, log *slog.Logger) *Kernel {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Kernel{
		bus:     m.Bus,
		con:     NewConsole(m.Bus, machine.UARTBase),
		timer:   NewTimer(m.Bus, machine.ClintBase),
		cpu:     rv64.New(m.Bus, m.CLINT.TimerPending),
		halted:  m.SysCon.Halted,
		log:     log,
		ramSize: m.RAM.Size(),
	}
}

// Console exposes the serial console, mainly so tests can drive it.
func (k *Kernel) Console() *Console { return k.con }

// Boot prints the banner, initializes the physical memory manager, runs
// its allocate/release self-test and mounts the virtual disk. A mount
// failure is reported on the console and logged but is not fatal; the
// shell still comes up with no filesystem.
func (k *Kernel) Boot() {
	k.con.Print("\n")
	k.con.Print(ansiCyan + "RISC-V MicroKernel v" + Version + ansiReset + "\n")
	k.con.Print("CPUs: 1 | RAM: ")
	k.con.PrintDec(int64(k.ramSize >> 20))
	k.con.Print("MB | Arch: rv64im\n\n")

	k.statusOK("Initializing UART...\n")

	k.pool = NewFreePool(HeapBase, BlockSize, BlockCount)
	k.statusOK("Physical Memory Manager...\n")

	if b, ok := k.pool.Alloc(); ok {
		k.statusOK("PMM Test: Alloc at ")
		k.con.PrintHex(uint64(b))
		k.con.Print("\n")
		k.pool.Free(b)
	} else {
		k.statusFail("PMM Alloc failed!\n")
		k.log.Error("pmm self-test failed: empty pool after init")
	}

	fs, err := vfs.Mount(k.bus, machine.DiskBase)
	if err != nil {
		k.statusFail("Mounting Virtual Disk failed!\n")
		k.log.Error("mounting virtual disk", "err", err)
	} else {
		k.fs = fs
		k.statusOK("Mounting Virtual Disk...\n")
		k.log.Info("virtual disk mounted", "entries", len(fs.List()))
	}

	k.statusOK("System Ready.\n\n")
}

func (k *Kernel) statusOK(msg string) {
	k.con.Print("[ " + ansiGreen + "OK" + ansiReset + " ] " + msg)
}

func (k *Kernel) statusFail(msg string) {
	k.con.Print("[ " + ansiRed + "FAIL" + ansiReset + " ] " + msg)
}
