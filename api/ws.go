package api

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/hoshinonyaruko/gridsnake/structs"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // the browser host is served from anywhere
	},
}

// ClientMessage is one tick request; an empty direction keeps the current one.
type ClientMessage struct {
	Direction string `json:"direction"`
}

// StreamHandler upgrades to a websocket where every client message drives one tick.
func StreamHandler(db *sql.DB, sessions *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := lookup(c, sessions)
		if !ok {
			return
		}
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("game %s: websocket upgrade failed: %v", sess.id, err)
			return
		}
		defer conn.Close()

		for {
			var msg ClientMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Printf("game %s: websocket read: %v", sess.id, err)
				}
				return
			}

			var dir *structs.Direction
			if msg.Direction != "" {
				d, err := structs.ParseDirection(msg.Direction)
				if err != nil {
					if err := conn.WriteJSON(gin.H{"error": err.Error()}); err != nil {
						return
					}
					continue
				}
				dir = &d
			}

			if err := conn.WriteJSON(runTick(db, sess, dir)); err != nil {
				log.Printf("game %s: websocket write: %v", sess.id, err)
				return
			}
		}
	}
}
