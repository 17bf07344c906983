package main

import (
	"fmt"
	"io"
	"os"

	tty "github.com/mattn/go-tty"
	"github.com/spf13/cobra"

	"github.com/rvmicro/rvmicro/internal/logger"
	"github.com/rvmicro/rvmicro/internal/mmfile"
	"github.com/rvmicro/rvmicro/kernel"
	"github.com/rvmicro/rvmicro/machine"
)

var ramMB int

// minRAMMB is the smallest RAM size that still backs the kernel heap
// and the user load window, both of which sit at fixed addresses above
// the RAM base.
const minRAMMB = machine.DefaultRAMSize >> 20

func init() {
	cmd := newRunCmd()
	cmd.Flags().IntVar(&ramMB, "ram", minRAMMB, "RAM size in MiB")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <image>",
		Short: "Boot the kernel with a virtual disk image",
		Long: `Boots the machine with the given disk image and attaches the serial
console to your terminal. The shell's exit built-in powers the machine
off; the process exit status is the machine's power-off status.

Example:
  rvmicro mkdisk disk.img hello answer
  rvmicro run disk.img`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(args[0])
		},
	}
}

func runRun(imagePath string) error {
	if ramMB < minRAMMB {
		return fmt.Errorf("--ram %d is below the %d MiB platform minimum (the kernel heap and user window live above the RAM base)", ramMB, minRAMMB)
	}
	image, cleanup, err := mmfile.Map(imagePath)
	if err != nil {
		return fmt.Errorf("opening disk image: %w", err)
	}
	defer func() { _ = cleanup() }()

	in, out, restore := openConsole()
	defer restore()

	logger.Info("booting", "image", imagePath, "ram_mib", ramMB)
	m := machine.New(machine.Config{
		RAMSize:    ramMB << 20,
		DiskImage:  image,
		ConsoleIn:  in,
		ConsoleOut: out,
		Clock:      machine.NewWallClock(),
		Logger:     logger.L,
	})
	k := kernel.New(m, logger.L)
	k.Boot()
	k.Run()

	exitCode = m.SysCon.Status()
	logger.Info("machine stopped", "halted", m.SysCon.Halted(), "status", exitCode)
	return nil
}

// openConsole attaches the serial console to the controlling terminal in
// raw mode. When no terminal is available (piped input, CI) it falls
// back to plain stdin/stdout.
func openConsole() (io.Reader, io.Writer, func()) {
	t, err := tty.Open()
	if err != nil {
		logger.Warn("no terminal, using stdio", "err", err)
		return os.Stdin, &crlfWriter{w: os.Stdout}, func() {}
	}
	restoreRaw, err := t.Raw()
	if err != nil {
		logger.Warn("raw mode unavailable", "err", err)
		restoreRaw = func() error { return nil }
	}
	restore := func() {
		_ = restoreRaw()
		_ = t.Close()
	}
	return t.Input(), &crlfWriter{w: t.Output()}, restore
}

// crlfWriter rewrites LF to CRLF. The kernel emits bare newlines; a raw
// terminal needs the carriage return too.
type crlfWriter struct {
	w io.Writer
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	for i, b := range p {
		var err error
		if b == '\n' {
			_, err = c.w.Write([]byte{'\r', '\n'})
		} else {
			_, err = c.w.Write(p[i : i+1])
		}
		if err != nil {
			return i, err
		}
	}
	return len(p), nil
}
