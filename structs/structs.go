package structs

import (
	"encoding/json"
	"fmt"
)

// Entity 描述一个格子上的占用者。
type Entity uint8

const (
	Empty Entity = iota
	Snake
	Food
)

func (e Entity) String() string {
	switch e {
	case Empty:
		return "empty"
	case Snake:
		return "snake"
	case Food:
		return "food"
	default:
		return fmt.Sprintf("entity(%d)", uint8(e))
	}
}

func (e Entity) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

// Position 描述地图上的一个坐标，(0,0) 在左上角。
type Position struct {
	Col uint8 `json:"col"` // 列
	Row uint8 `json:"row"` // 行
}

// Direction 移动方向
type Direction uint8

const (
	Up Direction = iota
	Down
	Right
	Left
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Right:
		return "right"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// Opposite returns the 180° reversal of d.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Right:
		return Left
	default:
		return Right
	}
}

// Delta returns the unit step for d. Up decreases the row.
func (d Direction) Delta() (dc, dr int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Right:
		return 1, 0
	default:
		return -1, 0
	}
}

func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Direction) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection 接受 "up", "down", "left", "right"
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "right":
		return Right, nil
	case "left":
		return Left, nil
	}
	return 0, fmt.Errorf("invalid direction '%s' provided", s)
}

// Edge 撞到的墙
type Edge uint8

const (
	NoEdge Edge = iota
	EdgeTop
	EdgeBottom
	EdgeLeft
	EdgeRight
)

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	default:
		return ""
	}
}

func (e Edge) MarshalJSON() ([]byte, error) {
	if e == NoEdge {
		return []byte("null"), nil
	}
	return json.Marshal(e.String())
}

// Outcome 一次 tick 的结果
type Outcome uint8

const (
	Moved Outcome = iota
	HitWall
	FoodEaten
	// SelfCollision is reserved; the engine does not detect it.
	SelfCollision
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case HitWall:
		return "hit_wall"
	case FoodEaten:
		return "food_eaten"
	case SelfCollision:
		return "self_collision"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(o))
	}
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// TickResult 描述一次 tick 之后发生了什么。
// Head and Tail are only meaningful when Outcome is not HitWall.
type TickResult struct {
	Outcome   Outcome   `json:"outcome"`
	Edge      Edge      `json:"edge"`      // 仅 HitWall 时有值
	Effective Direction `json:"effective"` // 防掉头规则之后实际使用的方向
	Head      Position  `json:"head"`
	Tail      Position  `json:"tail"`
	Grew      bool      `json:"grew"` // 吃到食物时尾巴保留
}

// Blocked reports whether the tick was discarded.
func (r TickResult) Blocked() bool {
	return r.Outcome == HitWall
}

// TickRecord 是 tick 日志中的一行。
type TickRecord struct {
	GroupID   string `json:"group_id"`
	Seq       int64  `json:"seq"`
	Requested string `json:"requested"` // 为空表示沿用上一次方向
	Effective string `json:"effective"`
	Outcome   string `json:"outcome"`
	Edge      string `json:"edge,omitempty"`
	HeadCol   uint8  `json:"head_col"`
	HeadRow   uint8  `json:"head_row"`
	Score     uint8  `json:"score"`
	CreatedAt int64  `json:"created_at"` // Unix 时间戳
}
