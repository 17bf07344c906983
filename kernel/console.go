package kernel

import (
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/rvmicro/rvmicro/machine"
)

// ANSI sequences the console emits. The serial stream is the terminal
// protocol, so colors go out unconditionally.
const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiCyan  = "\x1b[36m"

	ansiClear = "\x1b[2J\x1b[H"
)

// MaxLineLen is the longest command line the console stores. Input past
// the limit is consumed and discarded up to the terminator.
const MaxLineLen = 31

// Console is polled serial I/O over the UART registers.
type Console struct {
	bus  *machine.Bus
	base uint64
}

func NewConsole(bus *machine.Bus, base uint64) *Console {
	return &Console{bus: bus, base: base}
}

// Print writes s to the transmitter one byte at a time.
func (c *Console) Print(s string) {
	for i := 0; i < len(s); i++ {
		c.bus.Write8(c.base+machine.UARTData, s[i])
	}
}

// PrintDec prints n in decimal.
func (c *Console) PrintDec(n int64) {
	c.Print(strconv.FormatInt(n, 10))
}

// PrintHex prints v as a full-width hexadecimal word.
func (c *Console) PrintHex(v uint64) {
	s := strconv.FormatUint(v, 16)
	c.Print("0x" + strings.Repeat("0", 16-len(s)) + s)
}

// readByte spins on the line status register until a byte arrives. It
// returns io.EOF once the UART reports break with the receive queue
// drained, which is how the input source signals exhaustion.
func (c *Console) readByte() (byte, error) {
	for {
		lsr, _ := c.bus.Read8(c.base + machine.UARTLSR)
		if lsr&machine.LSRDataReady != 0 {
			b, _ := c.bus.Read8(c.base + machine.UARTData)
			return b, nil
		}
		if lsr&machine.LSRBreak != 0 {
			return 0, io.EOF
		}
		runtime.Gosched()
	}
}

// ReadLine reads one command line, echoing as it goes. Backspace edits
// in place; at most MaxLineLen characters are kept and the rest are
// swallowed until the terminator.
func (c *Console) ReadLine() (string, error) {
	var line []byte
	for {
		b, err := c.readByte()
		if err != nil {
			return "", err
		}
		switch {
		case b == '\r' || b == '\n':
			c.Print("\n")
			return string(line), nil
		case b == 0x7F || b == '\b':
			if len(line) > 0 {
				line = line[:len(line)-1]
				c.Print("\b \b")
			}
		case b >= 0x20 && b < 0x7F:
			if len(line) < MaxLineLen {
				line = append(line, b)
				c.bus.Write8(c.base+machine.UARTData, b)
			}
		}
	}
}
