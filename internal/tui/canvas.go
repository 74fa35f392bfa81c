package tui

import "strings"

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// starting at U+2800.
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells addressed in sub-pixels. A canvas of
// Width x Height cells has (Width*2) x (Height*4) sub-pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid and clears it.
func (c *Canvas) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
}

// Pixels returns the canvas size in sub-pixels.
func (c *Canvas) Pixels() (w, h int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

// Disc fills every sub-pixel within r of (x, y). r < 1 sets a single dot.
func (c *Canvas) Disc(x, y, r int) {
	if r < 1 {
		c.Set(x, y)
		return
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(x+dx, y+dy)
			}
		}
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
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

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
