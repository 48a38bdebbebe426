package draw

import (
	"github.com/rivo/uniseg"
)

// cell is one terminal column. A wide glyph occupies its lead cell and one
// or more continuation cells to its right.
type cell struct {
	text  string // Grapheme cluster; empty for continuation cells
	style Style
	cont  bool
}

var blank = cell{text: " "}

// Canvas is a double-buffered grid of styled terminal cells. Render only
// writes the cells that changed since the previous frame.
type Canvas struct {
	width  int
	height int
	cells  []cell // Flat slice: [row * width + col]
	prev   []cell // What the terminal currently shows

	// Offset for centering the render area when the terminal is larger than
	// the max render size. 0-based columns/rows to skip.
	offsetCol int
	offsetRow int

	force bool // Next Render repaints every cell
}

// NewCanvas creates a blank canvas of width x height cells.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize changes the canvas dimensions. A changed size clears the canvas and
// forces a full repaint.
func (c *Canvas) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == c.width && height == c.height && c.cells != nil {
		return
	}
	c.width = width
	c.height = height
	c.cells = make([]cell, width*height)
	c.prev = make([]cell, width*height)
	c.Clear()
	c.force = true
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.force = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in cells.
func (c *Canvas) Height() int {
	return c.height
}

// ForceRedraw makes the next Render repaint every cell.
func (c *Canvas) ForceRedraw() {
	c.force = true
}

// Clear blanks every cell. The terminal is untouched until Render.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = blank
	}
}

// Put writes s at the 0-based cell (col, row) and returns the column after
// the last cell written. Text past the right edge is clipped; a wide glyph
// that does not fit entirely is dropped.
func (c *Canvas) Put(col, row int, s string, style Style) int {
	if row < 0 || row >= c.height {
		return col
	}
	state := -1
	for len(s) > 0 {
		var cluster string
		var w int
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		if w == 0 {
			continue
		}
		if col+w > c.width {
			break
		}
		if col >= 0 {
			c.set(col, row, cluster, w, style)
		}
		col += w
	}
	return col
}

// set stores a cluster of width w, repairing any wide glyph it cuts in half.
func (c *Canvas) set(col, row int, cluster string, w int, style Style) {
	base := row * c.width
	// Overwriting the tail of a wide glyph orphans its lead.
	if c.cells[base+col].cont {
		for i := col - 1; i >= 0; i-- {
			wasCont := c.cells[base+i].cont
			c.cells[base+i] = cell{text: " ", style: c.cells[base+i].style}
			if !wasCont {
				break
			}
		}
	}
	// Overwriting the lead of a wider glyph orphans its tail.
	for i := col + w; i < c.width && c.cells[base+i].cont; i++ {
		c.cells[base+i] = cell{text: " ", style: c.cells[base+i].style}
	}
	c.cells[base+col] = cell{text: cluster, style: style}
	for i := 1; i < w; i++ {
		c.cells[base+col+i] = cell{style: style, cont: true}
	}
}

// Fill paints n cells starting at (col, row) with a single-width rune.
func (c *Canvas) Fill(col, row, n int, r rune, style Style) {
	s := string(r)
	for i := 0; i < n; i++ {
		c.Put(col+i, row, s, style)
	}
}

// PutCentered writes s horizontally centered on row.
func (c *Canvas) PutCentered(row int, s string, style Style) {
	c.Put((c.width-Width(s))/2, row, s, style)
}

// Box draws a single-line frame whose outer corners are (col, row) and
// (col+w-1, row+h-1).
func (c *Canvas) Box(col, row, w, h int, style Style) {
	if w < 2 || h < 2 {
		return
	}
	right := col + w - 1
	bottom := row + h - 1
	c.Put(col, row, "┌", style)
	c.Put(right, row, "┐", style)
	c.Put(col, bottom, "└", style)
	c.Put(right, bottom, "┘", style)
	c.Fill(col+1, row, w-2, '─', style)
	c.Fill(col+1, bottom, w-2, '─', style)
	for y := row + 1; y < bottom; y++ {
		c.Put(col, y, "│", style)
		c.Put(right, y, "│", style)
	}
}

// Text returns the visible text of a row, with continuation cells omitted.
func (c *Canvas) Text(row int) string {
	if row < 0 || row >= c.height {
		return ""
	}
	var out []byte
	for _, cl := range c.cells[row*c.width : (row+1)*c.width] {
		out = append(out, cl.text...)
	}
	return string(out)
}

// StyleAt returns the style of the cell at (col, row).
func (c *Canvas) StyleAt(col, row int) Style {
	if col < 0 || col >= c.width || row < 0 || row >= c.height {
		return Style{}
	}
	return c.cells[row*c.width+col].style
}

// Render writes the changed cells to cw. Cursor moves and style switches are
// only emitted when the next changed cell needs them.
func (c *Canvas) Render(cw *ChunkWriter) {
	cw.SetOffset(c.offsetCol, c.offsetRow)

	cursorCol, cursorRow := -1, -1
	var current Style
	styled := false

	for row := 0; row < c.height; row++ {
		base := row * c.width
		for col := 0; col < c.width; col++ {
			cur := c.cells[base+col]
			if !c.force && cur == c.prev[base+col] {
				continue
			}
			if cur.cont {
				continue
			}
			if col != cursorCol || row != cursorRow {
				cw.MoveCursor(col+1, row+1)
			}
			if !styled || cur.style != current {
				cw.WriteString(cur.style.Sequence())
				current = cur.style
				styled = true
			}
			cw.WriteString(cur.text)
			w := 1
			for col+w < c.width && c.cells[base+col+w].cont {
				w++
			}
			cursorCol, cursorRow = col+w, row
			if w > 1 {
				// Terminals disagree on emoji widths; never trust the cursor after one.
				cursorCol = -1
			}
		}
	}
	if styled {
		cw.WriteString(ResetStyle)
	}
	copy(c.prev, c.cells)
	c.force = false
}
