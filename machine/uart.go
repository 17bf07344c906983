package machine

import (
	"io"
	"sync"
)

// UART register offsets and LSR bits (8250 subset, matching what the
// kernel's polled console driver touches).
const (
	UARTData uint64 = 0x0 // RBR on read, THR on write
	UARTLSR  uint64 = 0x5 // line status

	LSRDataReady uint8 = 0x01 // RX holds at least one byte
	LSRBreak     uint8 = 0x10 // input source exhausted (line break)
	LSRTHREmpty  uint8 = 0x20 // transmitter always ready
	LSRTxIdle    uint8 = 0x40
)

// UART is a polled serial port. Transmit goes straight to the output
// writer; receive is fed asynchronously from the input reader by a
// goroutine, so the RX queue is mutex-guarded. Once the input source
// reaches EOF the break bit latches in the LSR, which the kernel's
// console treats as end of input.
type UART struct {
	regs
	base uint64
	out  io.Writer

	mu     sync.Mutex
	rx     []byte
	closed bool
}

// NewUART creates the port and, when in is non-nil, starts draining it
// into the RX queue. out may be nil for a transmit-nowhere port.
func NewUART(base uint64, in io.Reader, out io.Writer) *UART {
	u := &UART{base: base, out: out}
	if in != nil {
		go u.pump(in)
	}
	return u
}

func (u *UART) pump(in io.Reader) {
	chunk := make([]byte, 256)
	for {
		n, err := in.Read(chunk)
		if n > 0 {
			u.mu.Lock()
			u.rx = append(u.rx, chunk[:n]...)
			u.mu.Unlock()
		}
		if err != nil {
			u.mu.Lock()
			u.closed = true
			u.mu.Unlock()
			return
		}
	}
}

// Feed appends bytes directly to the RX queue. Test backends use it in
// place of a reader goroutine.
func (u *UART) Feed(b []byte) {
	u.mu.Lock()
	u.rx = append(u.rx, b...)
	u.mu.Unlock()
}

// CloseInput latches the break condition, as if the line dropped.
func (u *UART) CloseInput() {
	u.mu.Lock()
	u.closed = true
	u.mu.Unlock()
}

func (u *UART) Name() string { return "UART0" }
func (u *UART) Base() uint64 { return u.base }
func (u *UART) Size() uint64 { return 0x100 }

func (u *UART) Read8(off uint64) uint8 {
	switch off {
	case UARTData:
		u.mu.Lock()
		defer u.mu.Unlock()
		if len(u.rx) == 0 {
			return 0
		}
		b := u.rx[0]
		u.rx = u.rx[1:]
		return b
	case UARTLSR:
		u.mu.Lock()
		defer u.mu.Unlock()
		status := LSRTHREmpty | LSRTxIdle
		if len(u.rx) > 0 {
			status |= LSRDataReady
		} else if u.closed {
			status |= LSRBreak
		}
		return status
	default:
		return 0
	}
}

func (u *UART) Write8(off uint64, v uint8) {
	if off != UARTData || u.out == nil {
		return
	}
	// Serial has no flow control to the host; drop on error.
	_, _ = u.out.Write([]byte{v})
}
