// Package game runs one snake on one board, one tick at a time.
//
// A Game is not safe for concurrent use; the host must call Tick serially.
package game

import (
	"errors"
	"log"
	"math"

	"github.com/hoshinonyaruko/gridsnake/board"
	"github.com/hoshinonyaruko/gridsnake/snake"
	"github.com/hoshinonyaruko/gridsnake/structs"
)

const (
	MinSize = 10
	MaxSize = 50

	DefaultWidth  = 17
	DefaultHeight = 15

	MinSpeed     = 1
	MaxSpeed     = 100
	DefaultSpeed = 10

	DefaultLength = 3
)

type Game struct {
	board     *board.Board
	snake     *snake.Snake
	direction structs.Direction
	speed     uint8
	score     uint8
	ticks     uint64
	growth    bool
	logger    *log.Logger
}

type options struct {
	speed  uint8
	length uint8
	rng    board.Rand
	growth bool
	logger *log.Logger
}

// Option tweaks construction.
type Option func(*options)

// WithSpeed sets the host's tick rate hint. Values outside [1,100] become 10.
func WithSpeed(speed uint8) Option {
	return func(o *options) { o.speed = speed }
}

// WithLength sets the initial snake length. Values outside [1,width/2] become 3.
func WithLength(length uint8) Option {
	return func(o *options) { o.length = length }
}

// WithDirection is accepted for hosts that pass one; the snake always starts moving Right.
func WithDirection(structs.Direction) Option {
	return func(*options) {}
}

// WithRand replaces the food placement source.
func WithRand(rng board.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithGrowth makes the snake grow and score when its head lands on food.
func WithGrowth(enabled bool) Option {
	return func(o *options) { o.growth = enabled }
}

func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New builds a game with a centered snake heading Right and one food cell.
// Out-of-range dimensions fall back to 17x15.
func New(width, height uint8, opts ...Option) *Game {
	o := options{speed: DefaultSpeed, length: DefaultLength}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.Default()
	}

	width, height = clampSize(width, height)
	if o.speed < MinSpeed || o.speed > MaxSpeed {
		o.speed = DefaultSpeed
	}
	if o.length < 1 || o.length > width/2 {
		o.length = DefaultLength
	}

	b := board.New(width, height, o.rng)

	// 蛇头在 (width/2+1, height/2)，身体向左延伸
	headCol := width/2 + 1
	row := height / 2
	body := make([]structs.Position, o.length)
	for i := range body {
		body[i] = structs.Position{Col: headCol - uint8(i), Row: row}
		b.SetEntity(body[i].Col, body[i].Row, structs.Snake)
	}

	g := &Game{
		board:     b,
		snake:     snake.New(body),
		direction: structs.Right,
		speed:     o.speed,
		growth:    o.growth,
		logger:    o.logger,
	}
	b.PlaceFood()
	return g
}

func clampSize(width, height uint8) (uint8, uint8) {
	if width < MinSize || width > MaxSize {
		width = DefaultWidth
	}
	if height < MinSize || height > MaxSize {
		height = DefaultHeight
	}
	return width, height
}

// Tick advances the snake one cell. A nil dir keeps the last direction.
// Blocked ticks change nothing and report HitWall with the edge.
func (g *Game) Tick(dir *structs.Direction) structs.TickResult {
	requested := g.direction
	if dir != nil {
		requested = *dir
	}

	head, effective, err := g.snake.Next(g.direction, requested)
	if err != nil {
		var we *snake.WallError
		if errors.As(err, &we) {
			return g.blocked(we.Edge, effective)
		}
		return g.blocked(structs.NoEdge, effective)
	}

	target, ok := g.board.EntityAt(head.Col, head.Row)
	if !ok {
		edge := structs.EdgeRight
		if head.Row >= g.board.Height() {
			edge = structs.EdgeBottom
		}
		return g.blocked(edge, effective)
	}

	res := structs.TickResult{Outcome: structs.Moved, Effective: effective, Head: head}
	if g.growth && target == structs.Food {
		g.snake.Grow(head)
		g.board.SetEntity(head.Col, head.Row, structs.Snake)
		if g.score < math.MaxUint8 {
			g.score++
		}
		g.board.PlaceFood()
		res.Outcome = structs.FoodEaten
		res.Tail = g.snake.Tail()
		res.Grew = true
	} else {
		tail := g.snake.Advance(head)
		g.board.SetEntity(tail.Col, tail.Row, structs.Empty)
		g.board.SetEntity(head.Col, head.Row, structs.Snake)
		res.Tail = tail
	}
	g.direction = effective
	g.ticks++
	return res
}

func (g *Game) blocked(edge structs.Edge, effective structs.Direction) structs.TickResult {
	g.logger.Printf("tick discarded: snake at (%d,%d) moving %s hit the %s edge",
		g.snake.Head().Col, g.snake.Head().Row, effective, edge)
	return structs.TickResult{
		Outcome:   structs.HitWall,
		Edge:      edge,
		Effective: effective,
		Head:      g.snake.Head(),
		Tail:      g.snake.Tail(),
	}
}

func (g *Game) Width() uint8                 { return g.board.Width() }
func (g *Game) Height() uint8                { return g.board.Height() }
func (g *Game) Speed() uint8                 { return g.speed }
func (g *Game) Score() uint8                 { return g.score }
func (g *Game) Ticks() uint64                { return g.ticks }
func (g *Game) Direction() structs.Direction { return g.direction }

// EntityAt returns false for coordinates outside the board.
func (g *Game) EntityAt(col, row uint8) (structs.Entity, bool) {
	return g.board.EntityAt(col, row)
}

// Body returns the snake segments, head first.
func (g *Game) Body() []structs.Position { return g.snake.Body() }

// Cells returns a row-major copy of the board.
func (g *Game) Cells() []structs.Entity { return g.board.Cells() }
