//go:build !linux && !darwin

package sampler

func maxRSSBytes(maxrss int64) uint64 {
	if maxrss < 0 {
		return 0
	}
	return uint64(maxrss)
}
