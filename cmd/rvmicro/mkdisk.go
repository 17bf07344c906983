package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rvmicro/rvmicro/internal/diskimg"
)

func init() {
	rootCmd.AddCommand(newMkdiskCmd())
}

func newMkdiskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mkdisk <out> <file>...",
		Short: "Build a virtual disk image from host files",
		Long: `Packs the given host files into a disk image the kernel can mount.
Each file is stored under its base name by default; use name=path to
store it under a different name.

Example:
  rvmicro mkdisk disk.img build/hello build/answer
  rvmicro mkdisk disk.img hello=build/hello.bin`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMkdisk(args[0], args[1:])
		},
	}
}

func runMkdisk(outPath string, files []string) error {
	b := &diskimg.Builder{}
	for _, spec := range files {
		name, path, ok := strings.Cut(spec, "=")
		if !ok {
			path = spec
			name = filepath.Base(spec)
		}
		if err := b.AddFile(name, path); err != nil {
			return err
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating image: %w", err)
	}
	n, err := b.WriteTo(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("writing image: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing image: %w", err)
	}
	fmt.Printf("wrote %s: %d files, %d bytes\n", outPath, b.Len(), n)
	return nil
}
