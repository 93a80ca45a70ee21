// Package board owns the occupancy grid of a snake game.
//
// Cells are stored row-major in a single slice: index = row*Width + col.
package board

import (
	"math/rand"
	"time"

	"github.com/hoshinonyaruko/gridsnake/structs"
)

// Rand is the randomness PlaceFood draws from. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

type Board struct {
	width  uint8
	height uint8
	cells  []structs.Entity
	rng    Rand
}

// New creates an all-Empty board. A nil rng falls back to a time-seeded source.
func New(width, height uint8, rng Rand) *Board {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Board{
		width:  width,
		height: height,
		cells:  make([]structs.Entity, int(width)*int(height)),
		rng:    rng,
	}
}

func (b *Board) Width() uint8  { return b.width }
func (b *Board) Height() uint8 { return b.height }

// Index converts (col,row) to a cell index. ok is false when the
// coordinate lies outside the board.
func (b *Board) Index(col, row uint8) (int, bool) {
	if col >= b.width || row >= b.height {
		return 0, false
	}
	return int(row)*int(b.width) + int(col), true
}

// EntityAt returns the occupant at (col,row), or false when out of bounds.
func (b *Board) EntityAt(col, row uint8) (structs.Entity, bool) {
	i, ok := b.Index(col, row)
	if !ok {
		return structs.Empty, false
	}
	return b.cells[i], true
}

// SetEntity writes e at (col,row). Out-of-bounds writes are ignored and report false.
func (b *Board) SetEntity(col, row uint8, e structs.Entity) bool {
	i, ok := b.Index(col, row)
	if !ok {
		return false
	}
	b.cells[i] = e
	return true
}

// PlaceFood puts Food on a uniformly chosen Empty cell.
// On a board with no Empty cell it does nothing and returns false.
func (b *Board) PlaceFood() (structs.Position, bool) {
	free := make([]int, 0, len(b.cells))
	for i, e := range b.cells {
		if e == structs.Empty {
			free = append(free, i)
		}
	}
	if len(free) == 0 {
		return structs.Position{}, false
	}
	i := free[b.rng.Intn(len(free))]
	b.cells[i] = structs.Food
	return b.position(i), true
}

// Count returns how many cells hold e.
func (b *Board) Count(e structs.Entity) int {
	n := 0
	for _, c := range b.cells {
		if c == e {
			n++
		}
	}
	return n
}

// Cells returns a copy of the grid in row-major order.
func (b *Board) Cells() []structs.Entity {
	out := make([]structs.Entity, len(b.cells))
	copy(out, b.cells)
	return out
}

func (b *Board) position(i int) structs.Position {
	w := int(b.width)
	return structs.Position{Col: uint8(i % w), Row: uint8(i / w)}
}
