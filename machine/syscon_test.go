package machine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSysConPoweroff(t *testing.T) {
	s := NewSysCon(SysConBase, nil)
	require.False(t, s.Halted())

	s.Write32(0, SysConPoweroff)
	require.True(t, s.Halted())
	require.Zero(t, s.Status())
}

func TestSysConFail(t *testing.T) {
	s := NewSysCon(SysConBase, nil)
	s.Write32(0, SysConFail)
	require.True(t, s.Halted())
	require.Equal(t, 1, s.Status())
}

func TestSysConReboot(t *testing.T) {
	s := NewSysCon(SysConBase, nil)
	s.Write32(0, SysConReboot)
	require.True(t, s.Halted())
	require.Zero(t, s.Status())
}

func TestSysConIgnoresUnknownValues(t *testing.T) {
	s := NewSysCon(SysConBase, nil)
	s.Write32(0, 0x1234)
	s.Write32(4, SysConPoweroff) // wrong offset
	require.False(t, s.Halted())
}

func TestSysConFirstWriteWins(t *testing.T) {
	s := NewSysCon(SysConBase, nil)
	s.Write32(0, SysConFail)
	s.Write32(0, SysConPoweroff)
	require.Equal(t, 1, s.Status())
}

func TestMachineDefaultTopology(t *testing.T) {
	m := New(Config{DiskImage: []byte{1, 2, 3, 4}})

	require.True(t, m.Bus.IsMapped(SysConBase, 4))
	require.True(t, m.Bus.IsMapped(ClintBase+ClintMTime, 8))
	require.True(t, m.Bus.IsMapped(UARTBase, 1))
	require.True(t, m.Bus.IsMapped(RAMBase, 8))
	require.True(t, m.Bus.IsMapped(RAMBase+DefaultRAMSize-8, 8))
	require.True(t, m.Bus.IsMapped(DiskBase, 4))
	require.False(t, m.Bus.IsMapped(DiskBase+4, 1))
}
