package kernel

import (
	"errors"
	"strconv"
	"strings"

	"github.com/rvmicro/rvmicro/kernel/vfs"
	"github.com/rvmicro/rvmicro/machine"
)

// Run is the command dispatcher: an infinite prompt/read/dispatch loop.
// It returns when the machine halts (the exit built-in or an external
// poweroff) or when the console input source is exhausted.
func (k *Kernel) Run() {
	for !k.halted() {
		k.prompt()
		line, err := k.con.ReadLine()
		if err != nil {
			k.log.Info("console input exhausted, leaving shell")
			return
		}
		if line == "" {
			continue
		}
		k.dispatch(line)
	}
}

func (k *Kernel) prompt() {
	k.con.Print(ansiGreen + "root@riscv" + ansiReset + ":" + ansiCyan + "~" + ansiReset)
	if k.lastExit != 0 {
		k.con.Print(ansiRed + " (" + strconv.Itoa(k.lastExit) + ")" + ansiReset)
		k.lastExit = 0
	}
	k.con.Print("# ")
}

func (k *Kernel) dispatch(line string) {
	switch line {
	case "time":
		k.con.Print("System Time (Ticks): ")
		k.con.PrintHex(k.timer.Now())
		k.con.Print("\n")
	case "sleep":
		k.con.Print("Sleeping for ~1 second (1000 ticks)...\n")
		k.timer.Sleep(1000)
		k.con.Print("Woke up!\n")
	case "ls":
		k.list()
	case "help":
		k.con.Print("Built-ins: ls, time, sleep, clear, exit\n")
	case "clear":
		k.con.Print(ansiClear)
	case "exit":
		k.con.Print("[" + ansiGreen + " OK " + ansiReset + "] System halting.\n")
		k.bus.Write32(machine.SysConBase, machine.SysConPoweroff)
	default:
		k.runProgram(line)
	}
}

func (k *Kernel) list() {
	if k.fs == nil {
		return
	}
	for _, e := range k.fs.List() {
		k.con.Print(e.Name)
		if pad := 24 - len(e.Name); pad > 0 {
			k.con.Print(strings.Repeat(" ", pad))
		}
		k.con.PrintDec(int64(e.Size))
		k.con.Print(" bytes\n")
	}
}

// runProgram treats line as a filename token: zero the load window, look
// the file up, load it, drop to user mode, and fold the outcome into the
// shell's last exit status.
func (k *Kernel) runProgram(name string) {
	k.bus.Fill(UserBase, UserWindowSize, 0)

	var entry vfs.Entry
	err := vfs.ErrNotFound
	if k.fs != nil {
		entry, err = k.fs.Find(name)
	}
	if errors.Is(err, vfs.ErrNotFound) {
		k.con.Print("sh: command not found: " + name + "\n")
		k.lastExit = 127
		return
	}

	if err := k.fs.Load(entry, UserBase); err != nil {
		k.log.Error("loading program", "name", name, "err", err)
		k.lastExit = 127
		return
	}

	k.log.Debug("running user program", "name", name, "size", entry.Size)
	out := k.RunUser(UserBase)
	switch out.Kind {
	case Exited:
		k.lastExit = int(out.Code)
	case Faulted:
		k.con.Print("\n" + ansiRed + "[FATAL] Trap Cause: ")
		k.con.PrintHex(out.Cause)
		k.con.Print(ansiReset + "\n")
		k.lastExit = 139
	}
}
