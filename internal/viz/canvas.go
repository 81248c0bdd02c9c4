package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// DotsX and DotsY are the canvas size in sub-pixels.
func (c *Canvas) DotsX() int { return c.Width * 2 }
func (c *Canvas) DotsY() int { return c.Height * 4 }

// Set lights the dot at (x, y) in sub-pixel coordinates. Dots off the
// canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm, clipped to the canvas
// first so far off-screen endpoints cost nothing.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	x0, y0, x1, y1, ok := c.clip(float64(x0), float64(y0), float64(x1), float64(y1))
	if !ok {
		return
	}

	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// clip cuts the segment to the dot grid (Liang-Barsky). It reports false
// when nothing of the segment is on the canvas.
func (c *Canvas) clip(x0, y0, x1, y1 float64) (int, int, int, int, bool) {
	xmax, ymax := float64(c.DotsX()-1), float64(c.DotsY()-1)
	if xmax < 0 || ymax < 0 {
		return 0, 0, 0, 0, false
	}

	dx, dy := x1-x0, y1-y0
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0, xmax - x0, y0, ymax - y0}
	t0, t1 := 0.0, 1.0
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q[i] / p[i]
		if p[i] < 0 {
			t0 = math.Max(t0, r)
		} else {
			t1 = math.Min(t1, r)
		}
	}
	if t0 > t1 {
		return 0, 0, 0, 0, false
	}

	return int(math.Round(x0 + t0*dx)), int(math.Round(y0 + t0*dy)),
		int(math.Round(x0 + t1*dx)), int(math.Round(y0 + t1*dy)), true
}

// DrawDisc fills a disc of radius r dots around (cx, cy). Only the part
// on the canvas is visited.
func (c *Canvas) DrawDisc(cx, cy, r int) {
	if r < 0 {
		return
	}
	for y := max(cy-r, 0); y <= min(cy+r, c.DotsY()-1); y++ {
		for x := max(cx-r, 0); x <= min(cx+r, c.DotsX()-1); x++ {
			ox, oy := float64(x-cx), float64(y-cy)
			if ox*ox+oy*oy <= float64(r)*float64(r) {
				c.Set(x, y)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
