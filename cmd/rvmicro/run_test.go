package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunRejectsRAMBelowPlatformMinimum(t *testing.T) {
	orig := ramMB
	defer func() { ramMB = orig }()

	ramMB = 64
	err := runRun("does-not-matter.img")
	assert.ErrorContains(t, err, "below the 128 MiB platform minimum")
}
