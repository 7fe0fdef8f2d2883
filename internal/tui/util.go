package tui

import "fmt"

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func fmtPoint(p [3]float64) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", p[0], p[1], p[2])
}
