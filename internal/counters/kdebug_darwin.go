//go:build darwin

package counters

import (
	"fmt"
	"unsafe"

	"github.com/ALEYI17/InfraSight_bench/internal/ktrace"
)

// kdebug sysctl operations, under mib {CTL_KERN, KERN_KDEBUG, op}.
const (
	ctlKern    = 1
	kernKdebug = 59

	kdEnable = 3
	kdSetbuf = 4
	kdSetup  = 6
	kdRemove = 7
	kdSetreg = 8
	kdReadtr = 10
)

// Trace filter register types.
const (
	kdbgSubclsType = 0x20000 // match one class/subclass pair
)

// Per-thread PMC data records live under the perf class, kpc subclass.
const (
	dbgPerf     = 0x25
	perfKPC     = 6
	perfKPCData = 8
)

// PerfKPCDataID identifies the trace records carrying per-thread counter
// payloads.
var PerfKPCDataID = ktrace.MakeID(dbgPerf, perfKPC, perfKPCData)

const kdbgTimestampMask = (uint64(1) << 56) - 1

// kdBuf is the 64-bit kernel trace record layout: four payload words, the
// emitting thread in arg5, and the class/subclass/code word. The 32-bit
// layout differs and is rejected at setup; the width is resolved here
// once, not reinterpreted per record.
type kdBuf struct {
	Timestamp uint64
	Arg1      uint64
	Arg2      uint64
	Arg3      uint64
	Arg4      uint64
	Arg5      uint64 // thread id
	Debugid   uint32
	Cpuid     uint32
	Unused    uint64
}

const kdBufSize = int(unsafe.Sizeof(kdBuf{}))

type kdRegtype struct {
	Type   uint32
	Value1 uint32
	Value2 uint32
	Value3 uint32
	Value4 uint32
}

// kdebugReader drains the kernel trace stream. Implements ktrace.Reader.
type kdebugReader struct {
	scratch []kdBuf
}

func newKdebugReader(nbufs int) *kdebugReader {
	return &kdebugReader{scratch: make([]kdBuf, nbufs)}
}

func kdOp(op, value int32) error {
	mib := []int32{ctlKern, kernKdebug, op, value, 0, 0}
	var n uintptr
	return sysctlMib(mib, nil, &n, nil, 0)
}

// setup reinitializes the kernel trace buffer state: tear down any previous
// session, size the buffer, allocate it.
func (k *kdebugReader) setup() error {
	if unsafe.Sizeof(uintptr(0)) != 8 {
		return fmt.Errorf("32-bit trace record layout not supported")
	}
	_ = kdOp(kdRemove, 0)
	if err := kdOp(kdSetbuf, int32(len(k.scratch))); err != nil {
		return fmt.Errorf("sizing trace buffer: %w", err)
	}
	if err := kdOp(kdSetup, 0); err != nil {
		return fmt.Errorf("allocating trace buffer: %w", err)
	}
	return nil
}

// setFilter restricts the stream to one class/subclass pair so only the
// per-thread counter records are retained by the kernel.
func (k *kdebugReader) setFilter(class, subclass uint32) error {
	reg := kdRegtype{Type: kdbgSubclsType, Value1: class, Value2: subclass}
	mib := []int32{ctlKern, kernKdebug, kdSetreg, 0, 0, 0}
	var n uintptr
	if err := sysctlMib(mib[:3], nil, &n, unsafe.Pointer(&reg), unsafe.Sizeof(reg)); err != nil {
		return fmt.Errorf("setting trace filter: %w", err)
	}
	return nil
}

func (k *kdebugReader) enable(on bool) error {
	v := int32(0)
	if on {
		v = 1
	}
	return kdOp(kdEnable, v)
}

func (k *kdebugReader) remove() error {
	return kdOp(kdRemove, 0)
}

// Drain reads all currently available records and converts them into the
// portable record shape.
func (k *kdebugReader) Drain(dst []ktrace.Record) (int, error) {
	want := len(dst)
	if want > len(k.scratch) {
		want = len(k.scratch)
	}
	oldn := uintptr(want * kdBufSize)
	mib := []int32{ctlKern, kernKdebug, kdReadtr, 0, 0, 0}
	if err := sysctlMib(mib[:3], unsafe.Pointer(&k.scratch[0]), &oldn, nil, 0); err != nil {
		return 0, fmt.Errorf("reading trace records: %w", err)
	}

	// KERN_KDREADTR reports the record count, not a byte count.
	n := int(oldn)
	if n > want {
		n = want
	}
	for i := 0; i < n; i++ {
		b := &k.scratch[i]
		dst[i] = ktrace.Record{
			Timestamp: b.Timestamp & kdbgTimestampMask,
			Args:      [4]uint64{b.Arg1, b.Arg2, b.Arg3, b.Arg4},
			ThreadID:  b.Arg5,
			ID:        b.Debugid,
		}
	}
	return n, nil
}
