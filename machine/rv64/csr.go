package rv64

// CSR numbers the core decodes. Everything else reads as zero in
// machine mode and is illegal from user mode.
const (
	csrMStatus  uint32 = 0x300
	csrMISA     uint32 = 0x301
	csrMIE      uint32 = 0x304
	csrMTVec    uint32 = 0x305
	csrMScratch uint32 = 0x340
	csrMEPC     uint32 = 0x341
	csrMCause   uint32 = 0x342
	csrMTVal    uint32 = 0x343
	csrMIP      uint32 = 0x344
	csrMHartID  uint32 = 0xF14
)

// csrFile holds the machine-mode CSR state. The kernel side of this
// system is Go, so these exist for diagnostics and for the few CSR
// instructions machine-mode test programs execute, not as the trap
// dispatch mechanism.
type csrFile struct {
	mstatus  uint64
	misa     uint64
	mie      uint64
	mtvec    uint64
	mscratch uint64
	mepc     uint64
	mcause   uint64
	mtval    uint64
}

func (f *csrFile) reset() {
	// RV64 (MXL=2) with the I and M extension bits.
	f.misa = 2<<62 | 1<<8 | 1<<12
}

func (f *csrFile) read(addr uint32) uint64 {
	switch addr {
	case csrMStatus:
		return f.mstatus
	case csrMISA:
		return f.misa
	case csrMIE:
		return f.mie
	case csrMTVec:
		return f.mtvec
	case csrMScratch:
		return f.mscratch
	case csrMEPC:
		return f.mepc
	case csrMCause:
		return f.mcause
	case csrMTVal:
		return f.mtval
	case csrMIP, csrMHartID:
		return 0
	default:
		return 0
	}
}

func (f *csrFile) write(addr uint32, v uint64) {
	switch addr {
	case csrMStatus:
		f.mstatus = v
	case csrMIE:
		f.mie = v
	case csrMTVec:
		f.mtvec = v
	case csrMScratch:
		f.mscratch = v
	case csrMEPC:
		f.mepc = v &^ 1
	case csrMCause:
		f.mcause = v
	case csrMTVal:
		f.mtval = v
	}
}
