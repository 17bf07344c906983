package main

import "os"

func main() {
	execute()
	os.Exit(exitCode)
}
