package render

import "fmt"

var sizeUnits = []string{"B", "KiB", "MiB", "GiB", "TiB"}

// HumanSize formats a byte count with binary (IEC) units. Values below
// one KiB print as plain bytes; larger values keep one decimal place.
func HumanSize(n int64) string {
	if n < 0 {
		return fmt.Sprintf("%d B", n)
	}

	value := float64(n)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}

	if unit == 0 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f %s", value, sizeUnits[unit])
}
