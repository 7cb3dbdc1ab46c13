package vmath

import (
	"math"
)

// CellTraverser is a zero-allocation iterator over every grid cell a segment crosses (supercover DDA)
// Coordinates are continuous; cell (i, j) covers [i, i+1) x [j, j+1)
type CellTraverser struct {
	currX, currY     int
	targetX, targetY int
	stepX, stepY     int

	tMaxX, tMaxY     float64
	tDeltaX, tDeltaY float64

	started bool
	done    bool
}

// NewCellTraverser creates an iterator from (x1, y1) to (x2, y2)
func NewCellTraverser(x1, y1, x2, y2 float64) CellTraverser {
	t := CellTraverser{
		currX: int(math.Floor(x1)), currY: int(math.Floor(y1)),
		targetX: int(math.Floor(x2)), targetY: int(math.Floor(y2)),
		stepX: 1, stepY: 1,
	}

	dx, dy := x2-x1, y2-y1
	fx, fy := x1-math.Floor(x1), y1-math.Floor(y1)
	if dx < 0 {
		t.stepX = -1
		dx = -dx
		fx = 1 - fx
	}
	if dy < 0 {
		t.stepY = -1
		dy = -dy
		fy = 1 - fy
	}

	if dx == 0 {
		t.tMaxX, t.tDeltaX = math.Inf(1), math.Inf(1)
	} else {
		t.tDeltaX = 1 / dx
		t.tMaxX = (1 - fx) * t.tDeltaX
	}
	if dy == 0 {
		t.tMaxY, t.tDeltaY = math.Inf(1), math.Inf(1)
	} else {
		t.tDeltaY = 1 / dy
		t.tMaxY = (1 - fy) * t.tDeltaY
	}
	return t
}

// Next advances to the next cell, the first call yields the start cell
func (t *CellTraverser) Next() bool {
	if t.done {
		return false
	}
	if !t.started {
		t.started = true
		return true
	}
	if t.currX == t.targetX && t.currY == t.targetY {
		t.done = true
		return false
	}

	stepX := t.tMaxX <= t.tMaxY
	stepY := t.tMaxY <= t.tMaxX
	// An axis already at its target hands the step to the other
	if t.currX == t.targetX {
		stepX, stepY = false, true
	} else if t.currY == t.targetY {
		stepX, stepY = true, false
	}
	if stepX {
		t.currX += t.stepX
		t.tMaxX += t.tDeltaX
	}
	if stepY {
		t.currY += t.stepY
		t.tMaxY += t.tDeltaY
	}
	return true
}

// Pos returns the current cell
func (t *CellTraverser) Pos() (int, int) {
	return t.currX, t.currY
}

// TraverseCells visits every cell from (x1, y1) to (x2, y2) until fn returns false
func TraverseCells(x1, y1, x2, y2 float64, fn func(x, y int) bool) {
	t := NewCellTraverser(x1, y1, x2, y2)
	for t.Next() {
		if !fn(t.Pos()) {
			return
		}
	}
}
