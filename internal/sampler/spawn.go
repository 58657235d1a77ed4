package sampler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"syscall"

	"github.com/ALEYI17/InfraSight_bench/pkg/types"
)

// execSpawner runs one child process to completion and reports its exit
// status and peak resident memory from the process accounting the kernel
// keeps for reaped children.
type execSpawner struct{}

func (execSpawner) Spawn(ctx context.Context, c types.Command) (types.SpawnResult, error) {
	if len(c.Argv) == 0 {
		return types.SpawnResult{}, errors.New("empty command")
	}

	// Cancellation stops the sampling loop at run boundaries only; an
	// in-flight child is never killed, so no CommandContext here.
	cmd := exec.Command(c.Argv[0], c.Argv[1:]...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	err := cmd.Run()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return types.SpawnResult{}, fmt.Errorf("spawning %q: %w", c.Argv[0], err)
	}

	res := types.SpawnResult{ExitCode: cmd.ProcessState.ExitCode()}
	if ru, ok := cmd.ProcessState.SysUsage().(*syscall.Rusage); ok && ru != nil {
		res.PeakRSSBytes = maxRSSBytes(ru.Maxrss)
	}
	return res, nil
}
