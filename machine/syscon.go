package machine

import (
	"io"
	"log/slog"
)

// SysCon magic values, SiFive Test device compatible. Writing one of
// these to offset 0 asks the host to stop the machine.
const (
	SysConPoweroff uint32 = 0x5555
	SysConReboot   uint32 = 0x7777 // treated as poweroff
	SysConFail     uint32 = 0x3333
)

// SysCon is the system controller. A recognized write latches the halt
// state and an exit status for the host process; everything else is
// ignored. Once halted it stays halted.
type SysCon struct {
	regs
	base   uint64
	log    *slog.Logger
	halted bool
	status int
}

// NewSysCon creates the controller. log may be nil.
func NewSysCon(base uint64, log *slog.Logger) *SysCon {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SysCon{base: base, log: log}
}

func (s *SysCon) Name() string { return "SysCon" }
func (s *SysCon) Base() uint64 { return s.base }
func (s *SysCon) Size() uint64 { return 0x1000 }

// Halted reports whether a stop was requested.
func (s *SysCon) Halted() bool { return s.halted }

// Status returns the exit status latched by the halting write. Zero
// until halted.
func (s *SysCon) Status() int { return s.status }

func (s *SysCon) Write32(off uint64, v uint32) {
	if off != 0 || s.halted {
		return
	}
	switch v {
	case SysConPoweroff:
		s.log.Info("syscon: poweroff requested")
		s.halted = true
		s.status = 0
	case SysConReboot:
		s.log.Info("syscon: reset requested, treating as poweroff")
		s.halted = true
		s.status = 0
	case SysConFail:
		s.log.Info("syscon: failure signal")
		s.halted = true
		s.status = 1
	}
}

func (s *SysCon) Write64(off uint64, v uint64) {
	s.Write32(off, uint32(v))
}
