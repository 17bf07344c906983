package machine

import (
	"io"
	"log/slog"
)

// Default address map, from the hardware platform the kernel targets.
const (
	SysConBase uint64 = 0x0010_0000
	ClintBase  uint64 = 0x0200_0000
	UARTBase   uint64 = 0x1000_0000
	RAMBase    uint64 = 0x8000_0000
	DiskBase   uint64 = 0x9000_0000

	// DefaultRAMSize is 128 MiB, the platform default.
	DefaultRAMSize = 128 << 20
)

// Config assembles a Machine. Zero values select the defaults: 128 MiB
// RAM, a disarmed wall-clock timer, no console, no disk, no logging.
type Config struct {
	RAMSize    int
	DiskImage  []byte
	ConsoleIn  io.Reader
	ConsoleOut io.Writer
	Clock      Clock
	Logger     *slog.Logger
}

// Machine is the assembled platform.
type Machine struct {
	Bus    *Bus
	RAM    *RAM
	UART   *UART
	CLINT  *CLINT
	SysCon *SysCon
	Disk   *Disk
}

// New builds the default topology.
func New(cfg Config) *Machine {
	if cfg.RAMSize == 0 {
		cfg.RAMSize = DefaultRAMSize
	}
	if cfg.Clock == nil {
		cfg.Clock = NewWallClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m := &Machine{
		Bus:    NewBus(cfg.Logger),
		RAM:    NewRAM(RAMBase, cfg.RAMSize),
		UART:   NewUART(UARTBase, cfg.ConsoleIn, cfg.ConsoleOut),
		CLINT:  NewCLINT(ClintBase, cfg.Clock),
		SysCon: NewSysCon(SysConBase, cfg.Logger),
	}
	m.Bus.Attach(m.SysCon)
	m.Bus.Attach(m.CLINT)
	m.Bus.Attach(m.UART)
	m.Bus.Attach(m.RAM)
	if len(cfg.DiskImage) > 0 {
		m.Disk = NewDisk(DiskBase, cfg.DiskImage)
		m.Bus.Attach(m.Disk)
	}
	return m
}
