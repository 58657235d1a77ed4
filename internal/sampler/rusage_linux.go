//go:build linux

package sampler

// Maxrss is reported in kibibytes here.
func maxRSSBytes(maxrss int64) uint64 {
	if maxrss < 0 {
		return 0
	}
	return uint64(maxrss) * 1024
}
