// 关于蛇的移动
package snake

import (
	"errors"
	"fmt"
	"math"

	"github.com/hoshinonyaruko/gridsnake/structs"
)

// ErrHitWall is returned when the next head would leave the coordinate space.
var ErrHitWall = errors.New("hit wall")

// WallError names the edge the snake ran into.
type WallError struct {
	Edge structs.Edge
}

func (e *WallError) Error() string {
	return fmt.Sprintf("hit wall: %s edge", e.Edge)
}

func (e *WallError) Unwrap() error { return ErrHitWall }

// Snake 蛇身，Body[0] 为蛇头
type Snake struct {
	body []structs.Position
}

// New copies body; the first position is the head. body must not be empty.
func New(body []structs.Position) *Snake {
	if len(body) == 0 {
		panic("snake: empty body")
	}
	b := make([]structs.Position, len(body))
	copy(b, body)
	return &Snake{body: b}
}

func (s *Snake) Head() structs.Position { return s.body[0] }
func (s *Snake) Tail() structs.Position { return s.body[len(s.body)-1] }
func (s *Snake) Len() int               { return len(s.body) }

// Body returns a copy of the segments, head first.
func (s *Snake) Body() []structs.Position {
	out := make([]structs.Position, len(s.body))
	copy(out, s.body)
	return out
}

// ResolveDirection 防止掉头：请求方向与当前方向相反时保持当前方向。
func ResolveDirection(current, requested structs.Direction) structs.Direction {
	if requested == current.Opposite() {
		return current
	}
	return requested
}

// Next computes the head the snake would move to without changing the body.
// Moving up from row 0 or left from column 0 fails with a *WallError, as does
// stepping past the largest representable coordinate.
func (s *Snake) Next(current, requested structs.Direction) (structs.Position, structs.Direction, error) {
	effective := ResolveDirection(current, requested)
	head := s.body[0]
	switch effective {
	case structs.Up:
		if head.Row == 0 {
			return head, effective, &WallError{Edge: structs.EdgeTop}
		}
		head.Row--
	case structs.Left:
		if head.Col == 0 {
			return head, effective, &WallError{Edge: structs.EdgeLeft}
		}
		head.Col--
	case structs.Down:
		if head.Row == math.MaxUint8 {
			return head, effective, &WallError{Edge: structs.EdgeBottom}
		}
		head.Row++
	case structs.Right:
		if head.Col == math.MaxUint8 {
			return head, effective, &WallError{Edge: structs.EdgeRight}
		}
		head.Col++
	}
	return head, effective, nil
}

// Advance puts head at the front and drops the last segment, returning it.
func (s *Snake) Advance(head structs.Position) structs.Position {
	tail := s.body[len(s.body)-1]
	copy(s.body[1:], s.body[:len(s.body)-1])
	s.body[0] = head
	return tail
}

// Grow puts head at the front and keeps the tail.
func (s *Snake) Grow(head structs.Position) {
	s.body = append(s.body, structs.Position{})
	copy(s.body[1:], s.body[:len(s.body)-1])
	s.body[0] = head
}

// Move resolves the direction, steps the head and drops the tail.
// On error the body is left untouched.
func (s *Snake) Move(current, requested structs.Direction) (head, tail structs.Position, effective structs.Direction, err error) {
	head, effective, err = s.Next(current, requested)
	if err != nil {
		return head, structs.Position{}, effective, err
	}
	tail = s.Advance(head)
	return head, tail, effective, nil
}
