package tui

import "strings"

// sparkGlyphs holds the eight block elements a sparkline cell can
// take, lowest fill first.
var sparkGlyphs = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// clampPercent pins a sample to the 0..100 scale the renderers expect.
func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// RingBuffer keeps a fixed window of float64 samples. The chart panels
// size one per metric from the panel width, so history never outgrows
// what can be drawn.
type RingBuffer struct {
	buf  []float64
	head int
	n    int
}

// NewRingBuffer creates a buffer holding at most capacity samples.
// Capacities below one are raised to one.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = 1
	}
	return &RingBuffer{buf: make([]float64, capacity)}
}

// Push appends a sample, evicting the oldest when full.
func (r *RingBuffer) Push(v float64) {
	r.buf[r.head] = v
	r.head = (r.head + 1) % len(r.buf)
	if r.n < len(r.buf) {
		r.n++
	}
}

// Len returns the number of stored samples.
func (r *RingBuffer) Len() int { return r.n }

// Cap reports how many samples fit.
func (r *RingBuffer) Cap() int { return len(r.buf) }

// Last returns the newest sample, or 0 when empty.
func (r *RingBuffer) Last() float64 {
	if r.n == 0 {
		return 0
	}
	return r.buf[(r.head-1+len(r.buf))%len(r.buf)]
}

// Slice returns the samples oldest first.
func (r *RingBuffer) Slice() []float64 {
	if r.n == 0 {
		return nil
	}
	out := make([]float64, 0, r.n)
	start := (r.head - r.n + len(r.buf)) % len(r.buf)
	if start+r.n <= len(r.buf) {
		return append(out, r.buf[start:start+r.n]...)
	}
	out = append(out, r.buf[start:]...)
	return append(out, r.buf[:r.head]...)
}

// Resize changes the capacity, keeping the newest samples that fit.
func (r *RingBuffer) Resize(newCap int) {
	if newCap <= 0 {
		newCap = 1
	}
	if newCap == len(r.buf) {
		return
	}
	kept := r.Slice()
	if len(kept) > newCap {
		kept = kept[len(kept)-newCap:]
	}
	r.buf = make([]float64, newCap)
	copy(r.buf, kept)
	r.n = len(kept)
	r.head = r.n % newCap
}

// Reset discards all samples.
func (r *RingBuffer) Reset() {
	r.head = 0
	r.n = 0
}

// RenderSparkline draws one block character per sample, scaled from the
// 0..100 range.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(values) * 3)
	for _, v := range values {
		sb.WriteRune(sparkGlyphs[int(clampPercent(v)/100.0*7.0)])
	}
	return sb.String()
}

// brailleBits gives the bit for each dot position inside one braille
// cell, indexed by (column 0-1, row 0-3 top down). Adding a bit to the
// U+2800 base raises that dot.
var brailleBits = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// RenderBrailleChart plots 0..100 samples as braille dots, one text row
// string per entry of the result. A cell is 2 dots wide by 4 tall, so
// the chart holds width*2 samples; older samples beyond that are
// dropped and shorter series are pushed to the right edge. A sample of
// 0 lands on the bottom dot row, 100 on the top.
func RenderBrailleChart(values []float64, width, rows int) []string {
	if width <= 0 || rows <= 0 || len(values) == 0 {
		return nil
	}

	dots := rows * 4
	cols := width * 2

	if len(values) > cols {
		values = values[len(values)-cols:]
	}
	offset := cols - len(values)

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = make([]rune, width)
		for c := range grid[r] {
			grid[r][c] = 0x2800
		}
	}

	for i, v := range values {
		col := offset + i
		row := dots - 1 - int(clampPercent(v)/100.0*float64(dots-1))
		grid[row/4][col/2] |= brailleBits[col%2][row%4]
	}

	out := make([]string, rows)
	for r := range grid {
		out[r] = string(grid[r])
	}
	return out
}
