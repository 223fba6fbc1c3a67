package scope

import "math"

// ColumnForIndex maps sample i of n onto a plot width cells wide.
func ColumnForIndex(i, n, width int) int {
	if n <= 1 || width <= 1 {
		return 0
	}
	return int(math.Round(float64(i) * float64(width-1) / float64(n-1)))
}

// ColumnForMinute maps a timestamp onto the plot given the last timestamp.
func ColumnForMinute(t, tMax float64, width int) int {
	if tMax <= 0 || width <= 1 {
		return 0
	}
	return int(math.Round(t / tMax * float64(width-1)))
}

// RowForValue maps a concentration onto a plot height rows tall, row 0 at
// the top. Values outside [0, yMax] land on the edge rows.
func RowForValue(v, yMax float64, height int) int {
	if height <= 1 || yMax <= 0 {
		return 0
	}
	row := height - 1 - int(math.Round(v/yMax*float64(height-1)))
	return clamp(row, 0, height-1)
}

// AxisMax is the top of the value axis: at least 18 ppm, with headroom
// above the largest sample.
func AxisMax(values []float64) float64 {
	top := 18.0
	for _, v := range values {
		if v+2 > top {
			top = v + 2
		}
	}
	return top
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
