// Package kernel is the machine-mode half of the system: boot sequence,
// physical memory manager, serial console, command dispatcher, timer
// service and the privilege-switch engine that runs user programs. All
// hardware access goes through the machine bus; the kernel holds no
// device state of its own beyond the SysCon halt probe.
package kernel

// Physical layout owned by the kernel. The user load window and the
// allocator heap both live inside main RAM, above the region the loader
// uses for program images.
const (
	// UserBase is the fixed load window for user programs. Programs are
	// linked to run at this address; the dispatcher zeroes the window
	// before every load.
	UserBase       uint64 = 0x8400_0000
	UserWindowSize        = 0x10_0000

	// HeapBase is the arena managed by the free pool.
	HeapBase   uint64 = 0x8600_0000
	BlockSize  uint64 = 4096
	BlockCount        = 512
)
