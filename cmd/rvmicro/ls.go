package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rvmicro/rvmicro/internal/format"
	"github.com/rvmicro/rvmicro/internal/mmfile"
)

func init() {
	rootCmd.AddCommand(newLsCmd())
}

func newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <image>",
		Short: "List the directory of a disk image without booting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLs(args[0])
		},
	}
}

func runLs(imagePath string) error {
	image, cleanup, err := mmfile.Map(imagePath)
	if err != nil {
		return fmt.Errorf("opening disk image: %w", err)
	}
	defer func() { _ = cleanup() }()

	if len(image) < format.HeaderSize {
		return fmt.Errorf("reading %s: %w", imagePath, format.ErrTruncated)
	}
	h, err := format.ParseHeader(image)
	if err != nil {
		return fmt.Errorf("reading %s: %w", imagePath, err)
	}
	table := image[format.HeaderSize:]
	entries, err := format.ParseDirectory(table, h.EntryCount)
	if err != nil {
		return fmt.Errorf("reading %s: %w", imagePath, err)
	}

	for _, e := range entries {
		fmt.Printf("%-24s %8d bytes  @ 0x%08x\n", e.Name, e.Size, e.Offset)
	}
	fmt.Printf("%d entries\n", len(entries))
	return nil
}
