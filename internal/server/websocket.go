package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Scrimzay/plunderpunk/internal/session"
	"github.com/Scrimzay/plunderpunk/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const maxMessageSize = 1024

// pingPeriod must stay below pongWait.
var (
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type MoveAction struct {
	Action string `json:"action"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

type EngageAction struct {
	Action string `json:"action"`
	Target int    `json:"target"`
}

type InspectAction struct {
	Action string `json:"action"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// HandleWebsocket attaches a watcher to a game. The ?player= query names the
// captain the connection acts for; without it the connection can only watch
// and inspect.
func HandleWebsocket(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := registry.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		player := c.Query("player")

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Component("ws").WithError(err).Warn("WS upgrade error")
			return
		}

		log := logger.Component("ws").WithFields(logrus.Fields{"game": s.ID, "player": player})
		broadcaster := s.Broadcaster()
		if !broadcaster.Register(conn) {
			conn.Close()
			return
		}
		log.Info("Client connected")
		defer func() {
			broadcaster.Unregister(conn)
			log.Info("Client disconnected")
		}()

		conn.SetReadLimit(maxMessageSize)
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.WithError(err).Warn("Failed to set read deadline")
			return
		}
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})

		stop := make(chan struct{})
		defer close(stop)
		go keepAlive(conn, broadcaster, stop, log)

		for {
			msgType, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.WithError(err).Debug("WS read error")
				}
				return
			}
			if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
				log.WithError(err).Warn("Failed to set read deadline")
				return
			}
			if msgType != websocket.TextMessage {
				continue
			}

			reply := dispatch(s, player, msg)
			if reply == nil {
				continue
			}
			data, err := json.Marshal(reply)
			if err != nil {
				log.WithError(err).Error("Reply marshal error")
				continue
			}
			if err := broadcaster.Send(conn, data); err != nil {
				log.WithError(err).Debug("Reply send error")
				return
			}
		}
	}
}

// keepAlive pings the client every pingPeriod so idle watchers answer with
// pongs and keep their read deadline moving.
func keepAlive(conn *websocket.Conn, broadcaster *session.Broadcaster, stop <-chan struct{}, log *logrus.Entry) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return

		case <-ticker.C:
			if err := broadcaster.Ping(conn); err != nil {
				log.WithError(err).Debug("Ping failed")
				conn.Close()
				return
			}
		}
	}
}

// dispatch runs one client action. Successful game actions reach the client
// through the broadcast, so only errors, inspections and combat results get a
// direct reply.
func dispatch(s *session.Session, player string, msg []byte) gin.H {
	var base struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(msg, &base); err != nil || base.Action == "" {
		return errorReply("", "malformed message")
	}

	var err error
	switch base.Action {
	case "move":
		var move MoveAction
		if err = json.Unmarshal(msg, &move); err == nil {
			_, err = s.Move(player, move.X, move.Y)
		}

	case "engage":
		var engage EngageAction
		if err = json.Unmarshal(msg, &engage); err != nil {
			break
		}
		res, engageErr := s.Engage(player, engage.Target)
		if engageErr != nil {
			err = engageErr
			break
		}
		return gin.H{"action": "combat_result", "result": res}

	case "pass":
		err = s.Pass(player)

	case "pause":
		err = s.Pause()

	case "resume":
		err = s.Resume()

	case "restart":
		err = s.Restart()

	case "inspect":
		var inspect InspectAction
		if err = json.Unmarshal(msg, &inspect); err != nil {
			break
		}
		view, inspectErr := s.Inspect(inspect.X, inspect.Y)
		if inspectErr != nil {
			err = inspectErr
			break
		}
		return gin.H{"action": "inspect_response", "cell": view}

	default:
		return errorReply(base.Action, "unknown action")
	}

	if err != nil {
		return errorReply(base.Action, err.Error())
	}
	return nil
}

func errorReply(action, msg string) gin.H {
	return gin.H{"action": "error", "request": action, "error": msg}
}
