package kernel_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvmicro/rvmicro/kernel"
	"github.com/rvmicro/rvmicro/machine"
)

func newConsole(t *testing.T, input string) (*kernel.Console, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	m := machine.New(machine.Config{
		ConsoleIn:  strings.NewReader(input),
		ConsoleOut: out,
		Clock:      machine.NewStepClock(1),
	})
	return kernel.NewConsole(m.Bus, machine.UARTBase), out
}

func TestReadLineEchoes(t *testing.T) {
	con, out := newConsole(t, "hello\n")
	line, err := con.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "hello", line)
	assert.Equal(t, "hello\n", out.String())
}

func TestReadLineCarriageReturn(t *testing.T) {
	con, _ := newConsole(t, "ls\r")
	line, err := con.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "ls", line)
}

func TestReadLineBackspace(t *testing.T) {
	con, out := newConsole(t, "ab\x7fc\n")
	line, err := con.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "ac", line)
	assert.Contains(t, out.String(), "\b \b")
}

func TestBackspaceOnEmptyLineDoesNothing(t *testing.T) {
	con, out := newConsole(t, "\x7f\x7fok\n")
	line, err := con.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "ok", line)
	assert.NotContains(t, out.String(), "\b")
}

func TestReadLineCapsLength(t *testing.T) {
	con, _ := newConsole(t, strings.Repeat("a", 50)+"\nnext\n")
	line, err := con.ReadLine()
	require.NoError(t, err)
	assert.Len(t, line, kernel.MaxLineLen)

	// The overflow is swallowed; the next line is intact.
	line, err = con.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "next", line)
}

func TestReadLineEOFOnExhaustedInput(t *testing.T) {
	con, _ := newConsole(t, "")
	_, err := con.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestDataBeforeBreakIsStillDelivered(t *testing.T) {
	// No trailing terminator: the queued bytes drain first, then EOF.
	con, _ := newConsole(t, "partial")
	_, err := con.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestPrintHex(t *testing.T) {
	con, out := newConsole(t, "")
	con.PrintHex(0x84000000)
	assert.Equal(t, "0x0000000084000000", out.String())
}

func TestNonPrintableInputIgnored(t *testing.T) {
	con, _ := newConsole(t, "a\x01\x02b\n")
	line, err := con.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "ab", line)
}
