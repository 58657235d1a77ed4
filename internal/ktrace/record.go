package ktrace

// Record is one kernel trace entry: a timestamp, up to four payload words,
// the emitting thread, and a combined class/subclass/code identifier whose
// low bits carry the start/continuation boundary flag.
//
// The kernel's on-disk layout is architecture dependent; the platform
// reader resolves the record width once at startup and converts into this
// fixed shape before anything else sees it.
type Record struct {
	Timestamp uint64
	Args      [4]uint64
	ThreadID  uint64
	ID        uint32
}

// Boundary flag bits in the low bits of the identifier.
const (
	FuncStart = 0x1
	FuncEnd   = 0x2
	FuncMask  = 0x3
)

// EventID returns the class/subclass/code with the boundary bits stripped.
func (r Record) EventID() uint32 {
	return r.ID &^ FuncMask
}

// IsStart reports whether this record begins a new per-thread counter log.
func (r Record) IsStart() bool {
	return r.ID&FuncStart != 0
}

// MakeID composes an event identifier from class, subclass and code, the
// way the kernel packs them.
func MakeID(class, subclass, code uint32) uint32 {
	return class<<24 | subclass<<16 | code<<2
}

// payloadWords is how many counter values a single record carries.
const payloadWords = 4
