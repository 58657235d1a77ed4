//go:build darwin

package counters

/*
#include <stdlib.h>
#include <sys/types.h>
#include <sys/sysctl.h>
#include <mach/mach_time.h>
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// The kpc/kperf control surface is write-mostly sysctls; x/sys/unix only
// exposes the read forms, so the writes go through libc directly.

func sysctlbynameSet(name string, p unsafe.Pointer, n uintptr) error {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	rc, err := C.sysctlbyname(cname, nil, nil, p, C.size_t(n))
	if rc != 0 {
		return fmt.Errorf("sysctl %s: %w", name, err)
	}
	return nil
}

func sysctlbynameSetUint32(name string, v uint32) error {
	return sysctlbynameSet(name, unsafe.Pointer(&v), unsafe.Sizeof(v))
}

func sysctlbynameSetUint64s(name string, vs []uint64) error {
	if len(vs) == 0 {
		return nil
	}
	return sysctlbynameSet(name, unsafe.Pointer(&vs[0]), uintptr(len(vs))*8)
}

func sysctlbynameUint32(name string) (uint32, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	var v uint32
	n := C.size_t(unsafe.Sizeof(v))
	rc, err := C.sysctlbyname(cname, unsafe.Pointer(&v), &n, nil, 0)
	if rc != 0 {
		return 0, fmt.Errorf("sysctl %s: %w", name, err)
	}
	return v, nil
}

// sysctlMib issues a raw mib sysctl; used for the kdebug trace controls,
// which have no by-name form.
func sysctlMib(mib []int32, old unsafe.Pointer, oldn *uintptr, newp unsafe.Pointer, newn uintptr) error {
	cmib := make([]C.int, len(mib))
	for i, m := range mib {
		cmib[i] = C.int(m)
	}
	var colen *C.size_t
	if oldn != nil {
		colen = (*C.size_t)(unsafe.Pointer(oldn))
	}
	rc, err := C.sysctl(&cmib[0], C.u_int(len(cmib)), old, colen, newp, C.size_t(newn))
	if rc != 0 {
		return fmt.Errorf("sysctl mib %v: %w", mib, err)
	}
	return nil
}

// machTicks converts nanoseconds into mach time units, using the timebase
// resolved once at first use.
func machTicks(ns uint64) uint64 {
	var tb C.struct_mach_timebase_info
	C.mach_timebase_info(&tb)
	if tb.numer == 0 {
		return ns
	}
	return ns * uint64(tb.denom) / uint64(tb.numer)
}
