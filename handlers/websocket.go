package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"attendance/models"
	"attendance/recognition"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SendSocketFunc returns true if data was successfully sent
type SendSocketFunc func([]byte) bool

type ConnectedClient struct {
	fun SendSocketFunc
}

// ConnectedClients is needed as a session may have multiple watchers
type ConnectedClients []*ConnectedClient

var sessionWatchers = cmap.New[ConnectedClients]()

func addWatcher(sessionID string, c *ConnectedClient) {
	sessionWatchers.Upsert(sessionID, ConnectedClients{c}, func(exist bool, valueInMap, newValue ConnectedClients) ConnectedClients {
		if exist {
			return append(valueInMap, c)
		}
		return newValue
	})
}

func removeWatcher(sessionID string, c *ConnectedClient) {
	sessionWatchers.Upsert(sessionID, ConnectedClients{}, func(exist bool, valueInMap, newValue ConnectedClients) ConnectedClients {
		if !exist {
			return newValue
		}
		for _, oc := range valueInMap {
			if oc == c {
				continue
			}
			newValue = append(newValue, oc)
		}
		return newValue
	})
}

// BroadcastNewlyMarked pushes every newly credited student of a frame to the
// watchers of its session.
func BroadcastNewlyMarked(sessionID string, summary *recognition.Summary) {
	if summary.Counts.NewlyMarked == 0 {
		return
	}
	watchers, ok := sessionWatchers.Get(sessionID)
	if !ok || len(watchers) == 0 {
		return
	}
	for _, result := range summary.Results {
		if result.Status != recognition.StatusNewlyMarked {
			continue
		}
		data, err := json.Marshal(result)
		if err != nil {
			continue
		}
		for _, watcher := range watchers {
			watcher.fun(data)
		}
	}
}

// AttendanceFeed streams newly marked students of one session over a
// websocket, so a classroom dashboard updates as faces are recognized.
func AttendanceFeed(c *gin.Context, user *models.User) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, Response{"session_id parameter missing"})
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Print("upgrade:", err)
		return
	}
	defer conn.Close()

	isConnected := true
	client := ConnectedClient{}
	client.fun = func(data []byte) bool {
		if !isConnected {
			return false
		}
		err := conn.WriteMessage(websocket.TextMessage, data)
		if err != nil {
			log.Println("write err:", err)
			isConnected = false
			return false
		}
		return true
	}
	addWatcher(sessionID, &client)
	defer removeWatcher(sessionID, &client)
	// Main read cycle - only pings are expected from clients
	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if string(message) == "ping" {
			conn.WriteMessage(mt, []byte("pong"))
		}
	}
}
