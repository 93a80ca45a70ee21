package board

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/hoshinonyaruko/gridsnake/structs"
)

// dumpBoard renders the grid as ASCII for test logs.
func dumpBoard(b *Board) string {
	var sb strings.Builder
	for row := uint8(0); row < b.Height(); row++ {
		for col := uint8(0); col < b.Width(); col++ {
			e, _ := b.EntityAt(col, row)
			switch e {
			case structs.Snake:
				sb.WriteByte('S')
			case structs.Food:
				sb.WriteByte('*')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func TestIndex_InBounds(t *testing.T) {
	b := New(12, 10, rand.New(rand.NewSource(1)))
	for row := uint8(0); row < 10; row++ {
		for col := uint8(0); col < 12; col++ {
			i, ok := b.Index(col, row)
			if !ok {
				t.Fatalf("Index(%d,%d) reported out of bounds", col, row)
			}
			if want := int(row)*12 + int(col); i != want {
				t.Fatalf("Index(%d,%d)=%d want=%d", col, row, i, want)
			}
		}
	}
}

func TestIndex_OutOfBounds(t *testing.T) {
	b := New(12, 10, rand.New(rand.NewSource(1)))
	cases := []struct{ col, row uint8 }{
		{12, 0}, {0, 10}, {12, 10}, {255, 255}, {200, 3}, {3, 200},
	}
	for _, c := range cases {
		if _, ok := b.Index(c.col, c.row); ok {
			t.Fatalf("Index(%d,%d) should be out of bounds", c.col, c.row)
		}
		if _, ok := b.EntityAt(c.col, c.row); ok {
			t.Fatalf("EntityAt(%d,%d) should be out of bounds", c.col, c.row)
		}
		if b.SetEntity(c.col, c.row, structs.Snake) {
			t.Fatalf("SetEntity(%d,%d) should refuse out of bounds", c.col, c.row)
		}
	}
	if n := b.Count(structs.Snake); n != 0 {
		t.Fatalf("out of bounds writes leaked %d snake cells", n)
	}
}

func TestSetEntity(t *testing.T) {
	b := New(10, 10, rand.New(rand.NewSource(1)))
	if !b.SetEntity(3, 7, structs.Snake) {
		t.Fatal("SetEntity(3,7) failed")
	}
	e, ok := b.EntityAt(3, 7)
	if !ok || e != structs.Snake {
		t.Fatalf("EntityAt(3,7)=%v,%v want snake", e, ok)
	}
	if got := b.Cells()[73]; got != structs.Snake {
		t.Fatalf("cells[73]=%v want snake", got)
	}
}

func TestPlaceFood_PicksEmptyCell(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		b := New(10, 10, rand.New(rand.NewSource(seed)))
		for col := uint8(0); col < 10; col++ {
			b.SetEntity(col, 5, structs.Snake)
		}
		before := b.Cells()

		p, ok := b.PlaceFood()
		if !ok {
			t.Fatalf("seed %d: PlaceFood reported no room", seed)
		}
		if n := b.Count(structs.Food); n != 1 {
			t.Fatalf("seed %d: food count=%d want=1\n%s", seed, n, dumpBoard(b))
		}
		i, _ := b.Index(p.Col, p.Row)
		if before[i] != structs.Empty {
			t.Fatalf("seed %d: food placed on %v cell at %v", seed, before[i], p)
		}
		if e, _ := b.EntityAt(p.Col, p.Row); e != structs.Food {
			t.Fatalf("seed %d: returned position %v holds %v", seed, p, e)
		}
	}
}

func TestPlaceFood_FullBoard(t *testing.T) {
	b := New(10, 10, rand.New(rand.NewSource(1)))
	for row := uint8(0); row < 10; row++ {
		for col := uint8(0); col < 10; col++ {
			b.SetEntity(col, row, structs.Snake)
		}
	}
	if _, ok := b.PlaceFood(); ok {
		t.Fatal("PlaceFood on a full board should report false")
	}
	if n := b.Count(structs.Food); n != 0 {
		t.Fatalf("food count=%d want=0", n)
	}
}

// fixedRand always picks the given slot.
type fixedRand int

func (f fixedRand) Intn(n int) int { return int(f) % n }

func TestPlaceFood_UsesInjectedRand(t *testing.T) {
	b := New(10, 10, fixedRand(0))
	b.SetEntity(0, 0, structs.Snake)
	p, ok := b.PlaceFood()
	if !ok {
		t.Fatal("PlaceFood reported no room")
	}
	// first empty cell after (0,0)
	if p != (structs.Position{Col: 1, Row: 0}) {
		t.Fatalf("food at %v want (1,0)", p)
	}
}

func TestPlaceFood_OnlyOneEmptyCell(t *testing.T) {
	b := New(10, 10, rand.New(rand.NewSource(7)))
	for row := uint8(0); row < 10; row++ {
		for col := uint8(0); col < 10; col++ {
			b.SetEntity(col, row, structs.Snake)
		}
	}
	b.SetEntity(9, 9, structs.Empty)
	p, ok := b.PlaceFood()
	if !ok || p != (structs.Position{Col: 9, Row: 9}) {
		t.Fatalf("PlaceFood=%v,%v want (9,9),true", p, ok)
	}
}
