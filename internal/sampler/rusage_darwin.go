//go:build darwin

package sampler

// Maxrss is reported in bytes here.
func maxRSSBytes(maxrss int64) uint64 {
	if maxrss < 0 {
		return 0
	}
	return uint64(maxrss)
}
