package tui

import (
	"strings"
	"testing"
)

func TestCanvas_SetAndString(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)

	got := []rune(c.String())
	if len(got) != 2 {
		t.Fatalf("String() has %d runes, want 2", len(got))
	}
	if got[0] != brailleBlank|0x1 {
		t.Errorf("cell 0 = %U, want %U", got[0], brailleBlank|0x1)
	}
	if got[1] != brailleBlank|0x80 {
		t.Errorf("cell 1 = %U, want %U", got[1], brailleBlank|0x80)
	}
}

func TestCanvas_OutOfBoundsIgnored(t *testing.T) {
	c := NewCanvas(2, 2)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 8}, {100, 100}} {
		c.Set(p[0], p[1])
	}
	blank := strings.Repeat(string(rune(brailleBlank)), 2)
	if got := c.String(); got != blank+"\n"+blank {
		t.Errorf("canvas changed by out of bounds sets: %q", got)
	}
}

func TestCanvas_ResizeClamps(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Resize(0, -3)
	if w, h := c.Pixels(); w != 2 || h != 4 {
		t.Errorf("Pixels() = %d, %d; want 2, 4", w, h)
	}
}

func TestCanvas_DiscAndLine(t *testing.T) {
	tests := []struct {
		name string
		draw func(*Canvas)
		want int
	}{
		{"disc radius 0", func(c *Canvas) { c.Disc(5, 5, 0) }, 1},
		{"disc radius 1", func(c *Canvas) { c.Disc(5, 5, 1) }, 5},
		{"horizontal line", func(c *Canvas) { c.DrawLine(0, 0, 9, 0) }, 10},
		{"diagonal line", func(c *Canvas) { c.DrawLine(0, 0, 7, 7) }, 8},
		{"single point line", func(c *Canvas) { c.DrawLine(3, 3, 3, 3) }, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(10, 4)
			tt.draw(c)
			if got := countDots(c); got != tt.want {
				t.Errorf("%d dots set, want %d", got, tt.want)
			}
		})
	}
}

func TestCanvas_Clear(t *testing.T) {
	c := NewCanvas(3, 3)
	c.Disc(3, 6, 2)
	c.Clear()
	if got := countDots(c); got != 0 {
		t.Errorf("%d dots after Clear", got)
	}
}

func countDots(c *Canvas) int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			bits := r - brailleBlank
			for bits > 0 {
				n += int(bits & 1)
				bits >>= 1
			}
		}
	}
	return n
}
