// Package machine models the simulated RV64 hardware platform: physical
// RAM, a polled 8250-style UART, a CLINT timer block, a SysCon power
// controller, and a read-only virtual disk window, all attached to a
// little-endian system bus.
//
// # Address map
//
// The default topology mirrors the hardware the kernel was written for:
//
//	Base         Size     Device
//	-----------  -------  ------------------------------
//	0x0010_0000  0x1000   SysCon (power control)
//	0x0200_0000  0x10000  CLINT  (timer, software IRQ)
//	0x1000_0000  0x100    UART   (polled serial console)
//	0x8000_0000  128 MiB  RAM
//	0x9000_0000  (image)  Disk   (read-only window)
//
// # Backends
//
// Every device is exercised through the Bus, never through raw pointers,
// so the same kernel code runs against the real backends (wall-clock
// timer, host terminal on the UART) and against in-memory fakes in tests
// (StepClock, scripted UART input).
//
// The bus is single-master: only one goroutine drives it. The UART's
// receive queue is the one concession to concurrency, because it is fed
// asynchronously from the host input stream.
package machine
