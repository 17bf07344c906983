package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/rvmicro/rvmicro/kernel"
)

func init() {
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the kernel version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("rvmicro %s (%s/%s)\n", kernel.Version, runtime.GOOS, runtime.GOARCH)
		},
	}
}
