package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/marsdash/internal/controller"
	"github.com/ziadkadry99/marsdash/internal/state"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientMessage is the incoming WebSocket message format.
type clientMessage struct {
	Type  string `json:"type"` // "select", "back" or "retry"
	Rover string `json:"rover,omitempty"`
}

// serverMessage is the outgoing WebSocket message format.
type serverMessage struct {
	Type    string `json:"type"` // "render" or "error"
	HTML    string `json:"html,omitempty"`
	Content string `json:"content,omitempty"`
}

// socketMount pushes every render to the browser. gorilla connections allow
// one concurrent writer, so all writes go through mu.
type socketMount struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (m *socketMount) Replace(html string) error {
	return m.write(serverMessage{Type: "render", HTML: html})
}

func (m *socketMount) write(msg serverMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return m.conn.WriteJSON(msg)
}

func (d *Dashboard) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		d.logger.WithError(err).Warn("websocket upgrade")
		return
	}
	defer conn.Close()

	sessionID := uuid.NewString()
	log := d.logger.WithField("session", sessionID)
	log.Debug("session opened")

	mount := &socketMount{conn: conn}
	store := state.NewStore(d.initialState(), d.render, mount, log)
	// Request timeouts must not end the session; the read loop does.
	ctrl := controller.New(context.WithoutCancel(r.Context()), store, d.fetcher, controller.Options{
		SessionID: sessionID,
		Recorder:  d.recorder(),
		Logger:    d.logger,
	})
	defer ctrl.Close()

	store.Refresh()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("websocket read")
			}
			log.Debug("session closed")
			return
		}

		var req clientMessage
		if err := json.Unmarshal(msg, &req); err != nil {
			d.sendError(mount, log, "invalid message format")
			continue
		}

		err = ctrl.Dispatch(controller.Action{Type: controller.ActionType(req.Type), Rover: req.Rover})
		switch {
		case err == nil:
		case errors.Is(err, controller.ErrUnknownRover), errors.Is(err, controller.ErrUnknownAction):
			d.sendError(mount, log, err.Error())
		default:
			log.WithError(err).Error("dispatch failed")
			d.sendError(mount, log, "action failed")
		}
	}
}

// recorder avoids handing the controller a typed nil.
func (d *Dashboard) recorder() controller.Recorder {
	if d.activity == nil {
		return nil
	}
	return d.activity
}

func (d *Dashboard) sendError(m *socketMount, log logrus.FieldLogger, message string) {
	if err := m.write(serverMessage{Type: "error", Content: message}); err != nil {
		log.WithError(err).Warn("websocket write error")
	}
}
