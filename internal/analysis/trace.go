package analysis

import (
	"strings"

	"github.com/san-kum/pendulum/internal/dynamo"
	"github.com/san-kum/pendulum/internal/sim"
)

type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// armIndex resolves negative indices from the end, -1 being the last arm.
func armIndex(s sim.Sample, arm int) (int, bool) {
	if arm < 0 {
		arm += len(s.Positions)
	}
	return arm, arm >= 0 && arm < len(s.Positions)
}

// TraceArm collects the positions of one arm across samples. Samples that
// do not have the arm are skipped.
func TraceArm(samples []sim.Sample, arm int) []dynamo.Vec2 {
	points := make([]dynamo.Vec2, 0, len(samples))
	for _, s := range samples {
		i, ok := armIndex(s, arm)
		if !ok {
			continue
		}
		points = append(points, s.Positions[i])
	}
	return points
}

// ArmSeries is one coordinate of TraceArm.
func ArmSeries(samples []sim.Sample, arm int, axis Axis) []float64 {
	points := TraceArm(samples, arm)
	out := make([]float64, len(points))
	for i, p := range points {
		if axis == AxisX {
			out[i] = p.X
		} else {
			out[i] = p.Y
		}
	}
	return out
}

// TraceToASCII plots points in screen orientation: y grows downward.
func TraceToASCII(points []dynamo.Vec2, width, height int) string {
	if len(points) == 0 || width <= 1 || height <= 1 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := int((p.Y - minY) / rangeY * float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
