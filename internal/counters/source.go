package counters

import (
	"time"

	"github.com/ALEYI17/InfraSight_bench/internal/catalog"
	"github.com/ALEYI17/InfraSight_bench/pkg/logutil"
	"github.com/ALEYI17/InfraSight_bench/pkg/types"
	"go.uber.org/zap"
)

// Options configures the acquisition backend selected at startup.
type Options struct {
	Family catalog.Family

	// TargetPID scopes the traced backend's sampling trigger: a pid, or -1
	// for all processes. Ignored by the direct backend.
	TargetPID int

	// TriggerPeriod is the traced backend's sampling trigger interval.
	TriggerPeriod time.Duration
}

// DefaultTriggerPeriod keeps the per-thread sample stream dense enough
// that short windows still catch both snapshots of each thread.
const DefaultTriggerPeriod = 5 * time.Millisecond

// NewSource builds the counter source for this platform. The backend
// choice is made once here, never per call site.
func NewSource(db types.EventDB, opts Options) (types.CounterSource, error) {
	if opts.TriggerPeriod <= 0 {
		opts.TriggerPeriod = DefaultTriggerPeriod
	}
	if opts.TargetPID == 0 {
		opts.TargetPID = -1
	}
	return newPlatformSource(db, opts)
}

// resolveAlias tries the catalog's candidates for alias in priority order
// against the event database. The first resolvable candidate wins; if none
// resolve, the alias is unavailable on this CPU.
func resolveAlias(db types.EventDB, fam catalog.Family, alias types.CounterAlias) (types.EventDescriptor, bool) {
	logger := logutil.GetLogger()
	for _, name := range catalog.Candidates(fam, alias) {
		if desc, ok := db.Resolve(name); ok {
			return desc, true
		}
		logger.Debug("event candidate not in database",
			zap.Stringer("alias", alias),
			zap.String("candidate", name))
	}
	return types.EventDescriptor{}, false
}
