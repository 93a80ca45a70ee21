package api

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hoshinonyaruko/gridsnake/config"
	"github.com/hoshinonyaruko/gridsnake/game"
	"github.com/hoshinonyaruko/gridsnake/sqlite"
	"github.com/hoshinonyaruko/gridsnake/structs"
)

// NewRouter wires every game route onto a gin engine.
func NewRouter(db *sql.DB, sessions *Sessions, opts ...game.Option) *gin.Engine {
	router := gin.Default()
	// 创建游戏
	router.POST("/games", CreateGameHandler(sessions, opts...))
	// 游戏状态
	router.GET("/games/:id", GameStateHandler(sessions))
	// 推进一步
	router.GET("/games/:id/tick", TickHandler(db, sessions))
	router.GET("/games/:id/cell", CellHandler(sessions))
	router.GET("/games/:id/board", BoardHandler(sessions))
	router.GET("/games/:id/journal", JournalHandler(db, sessions))
	router.GET("/games/:id/ws", StreamHandler(db, sessions))
	// 删除游戏
	router.DELETE("/games/:id", DeleteGameHandler(db, sessions))
	return router
}

// queryUint8 reads an optional small integer. Values above 255 become 0 so the
// engine falls back to its defaults instead of wrapping around.
func queryUint8(c *gin.Context, key string, def uint8) (uint8, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s'", key, raw)
	}
	if v > 255 {
		return 0, nil
	}
	return uint8(v), nil
}

// queryDirection returns nil when direction is omitted.
func queryDirection(c *gin.Context) (*structs.Direction, error) {
	raw := c.Query("direction")
	if raw == "" {
		return nil, nil
	}
	d, err := structs.ParseDirection(strings.ToLower(raw))
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func lookup(c *gin.Context, sessions *Sessions) (*session, bool) {
	sess, ok := sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No game found with the specified id"})
		return nil, false
	}
	return sess, true
}

func CreateGameHandler(sessions *Sessions, base ...game.Option) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := config.Get()
		width, err := queryUint8(c, "width", cfg.Width)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		height, err := queryUint8(c, "height", cfg.Height)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		speed, err := queryUint8(c, "speed", cfg.Speed)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		length, err := queryUint8(c, "length", cfg.Length)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		growth := cfg.Growth
		if raw := c.Query("growth"); raw != "" {
			if growth, err = strconv.ParseBool(raw); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid growth '%s'", raw)})
				return
			}
		}

		opts := append([]game.Option{game.WithSpeed(speed), game.WithLength(length), game.WithGrowth(growth)}, base...)
		g := game.New(width, height, opts...)
		sess, ok := sessions.Create(c.Query("groupid"), g)
		if !ok {
			c.JSON(http.StatusConflict, gin.H{"error": "A game with the specified groupid already exists"})
			return
		}
		log.Printf("game %s created: %dx%d speed %d", sess.id, g.Width(), g.Height(), g.Speed())
		c.JSON(http.StatusCreated, gin.H{
			"id":     sess.id,
			"width":  g.Width(),
			"height": g.Height(),
			"speed":  g.Speed(),
		})
	}
}

func GameStateHandler(sessions *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := lookup(c, sessions)
		if !ok {
			return
		}
		sess.mu.Lock()
		g := sess.game
		state := gin.H{
			"id":        sess.id,
			"width":     g.Width(),
			"height":    g.Height(),
			"speed":     g.Speed(),
			"score":     g.Score(),
			"direction": g.Direction(),
			"ticks":     g.Ticks(),
			"body":      g.Body(),
		}
		sess.mu.Unlock()
		c.JSON(http.StatusOK, state)
	}
}

func TickHandler(db *sql.DB, sessions *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := lookup(c, sessions)
		if !ok {
			return
		}
		dir, err := queryDirection(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, runTick(db, sess, dir))
	}
}

// tickMessage is what both the HTTP and websocket tick paths answer with.
type tickMessage struct {
	structs.TickResult
	Score uint8  `json:"score"`
	Ticks uint64 `json:"ticks"`
}

func runTick(db *sql.DB, sess *session, dir *structs.Direction) tickMessage {
	res, score, ticks := sess.tick(dir)
	// 日志写入失败不影响游戏
	if err := sqlite.RecordTick(db, sess.id, dir, res, score); err != nil {
		log.Printf("game %s: journal write failed: %v", sess.id, err)
	}
	return tickMessage{TickResult: res, Score: score, Ticks: ticks}
}

func CellHandler(sessions *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := lookup(c, sessions)
		if !ok {
			return
		}
		col, err := strconv.ParseUint(c.Query("col"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid query parameter: col"})
			return
		}
		row, err := strconv.ParseUint(c.Query("row"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid query parameter: row"})
			return
		}
		if col > 255 || row > 255 {
			c.JSON(http.StatusOK, gin.H{"entity": nil})
			return
		}
		sess.mu.Lock()
		e, ok := sess.game.EntityAt(uint8(col), uint8(row))
		sess.mu.Unlock()
		if !ok {
			c.JSON(http.StatusOK, gin.H{"entity": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"entity": e})
	}
}

// BoardHandler returns the grid as one string per row: '.' empty, 'S' snake, '*' food.
func BoardHandler(sessions *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := lookup(c, sessions)
		if !ok {
			return
		}
		sess.mu.Lock()
		width, height := sess.game.Width(), sess.game.Height()
		cells := sess.game.Cells()
		sess.mu.Unlock()

		rows := make([]string, 0, height)
		w := int(width)
		for i := 0; i < len(cells); i += w {
			rows = append(rows, encodeRow(cells[i:i+w]))
		}
		c.JSON(http.StatusOK, gin.H{"width": width, "height": height, "cells": rows})
	}
}

func encodeRow(cells []structs.Entity) string {
	var sb strings.Builder
	sb.Grow(len(cells))
	for _, e := range cells {
		switch e {
		case structs.Snake:
			sb.WriteByte('S')
		case structs.Food:
			sb.WriteByte('*')
		default:
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

func JournalHandler(db *sql.DB, sessions *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := lookup(c, sessions)
		if !ok {
			return
		}
		records, err := sqlite.ListTicks(db, sess.id)
		if err != nil {
			log.Printf("game %s: journal read failed: %v", sess.id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to read tick journal"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ticks": records})
	}
}

func DeleteGameHandler(db *sql.DB, sessions *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if !sessions.Delete(id) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No game found with the specified id"})
			return
		}
		if err := sqlite.DeleteTicks(db, id); err != nil {
			log.Printf("game %s: journal delete failed: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Game removed but journal could not be cleared"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Game deleted successfully"})
	}
}
