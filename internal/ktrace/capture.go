package ktrace

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ALEYI17/InfraSight_bench/pkg/logutil"
	"github.com/ALEYI17/InfraSight_bench/pkg/types"
	"go.uber.org/zap"
)

// Reader drains all currently available kernel trace records into dst and
// reports how many were written. Implemented by the platform trace
// interface and, in tests, by synthetic readers.
type Reader interface {
	Drain(dst []Record) (int, error)
}

// Config sizes one capture session.
type Config struct {
	// EventID selects the record type carrying per-thread counter data;
	// records with any other identifier are dropped at drain time.
	EventID uint32

	// Counters is how many counter values a complete per-thread log holds.
	Counters int

	// TriggerPeriod is the kernel sampling trigger interval. The drain
	// cadence runs at roughly twice this rate.
	TriggerPeriod time.Duration

	// ExpectedPerWindow is how many records one drain window is expected
	// to produce; the buffer grows whenever headroom falls below it.
	ExpectedPerWindow int
}

// Capture owns the background drain loop for one sampling window. The
// loop goroutine owns the buffers exclusively; the only shared state with
// the caller is the cancellation flag. Stop joins the goroutine before
// reconstruction touches anything, which is the single synchronization
// point.
type Capture struct {
	reader  Reader
	cfg     Config
	buf     *captureBuffer
	scratch []Record

	cancel   atomic.Bool
	done     chan struct{}
	drainErr error
}

func NewCapture(r Reader, cfg Config) *Capture {
	if cfg.ExpectedPerWindow <= 0 {
		cfg.ExpectedPerWindow = chunkSize / 4
	}
	return &Capture{
		reader:  r,
		cfg:     cfg,
		buf:     newCaptureBuffer(),
		scratch: make([]Record, chunkSize),
		done:    make(chan struct{}),
	}
}

// Start launches the drain loop.
func (c *Capture) Start() {
	go c.loop()
}

func (c *Capture) loop() {
	defer close(c.done)

	interval := c.cfg.TriggerPeriod / 2
	if interval <= 0 {
		interval = time.Millisecond
	}

	for {
		time.Sleep(interval)
		if c.buf.headroom() < c.cfg.ExpectedPerWindow {
			c.buf.grow(c.cfg.ExpectedPerWindow)
		}
		// The flag is read before the drain, never during it, so once
		// cancellation is observed the drain below is the final one and
		// sees the fullest possible kernel buffer.
		last := c.cancel.Load()
		if err := c.drainOnce(); err != nil {
			c.drainErr = err
			return
		}
		if last {
			return
		}
	}
}

func (c *Capture) drainOnce() error {
	for {
		n, err := c.reader.Drain(c.scratch)
		if err != nil {
			return fmt.Errorf("draining trace records: %w", err)
		}
		for _, r := range c.scratch[:n] {
			if r.EventID() != c.cfg.EventID {
				continue
			}
			c.buf.append(r)
		}
		if n < len(c.scratch) {
			return nil
		}
	}
}

// Stop cancels the loop, joins it, and reduces the captured records into
// the aggregate counter delta for the window, indexed by physical counter
// register. The error distinguishes a window with nothing to measure from
// a normally empty tail.
func (c *Capture) Stop() ([]uint64, error) {
	logger := logutil.GetLogger()

	c.cancel.Store(true)
	<-c.done

	if c.drainErr != nil {
		return nil, c.drainErr
	}
	if c.buf.len() == 0 {
		return nil, fmt.Errorf("no per-thread counter records captured: %w", types.ErrCollectionFailed)
	}

	threads := reconstruct(c.buf.records(), c.cfg.Counters)
	sum, used := aggregate(threads, c.cfg.Counters)
	if used == 0 {
		return nil, fmt.Errorf("no thread produced both snapshots: %w", types.ErrCollectionFailed)
	}

	logger.Debug("capture window reduced",
		zap.Int("records", c.buf.len()),
		zap.Int("threads", len(threads)),
		zap.Int("threads_used", used))
	return sum, nil
}
