//go:build !linux && !darwin

package counters

import (
	"errors"
	"runtime"

	"github.com/ALEYI17/InfraSight_bench/pkg/types"
)

func newPlatformSource(db types.EventDB, opts Options) (types.CounterSource, error) {
	return nil, errors.New("no counter acquisition backend for " + runtime.GOOS)
}
