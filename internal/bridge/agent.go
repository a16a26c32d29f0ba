// Package bridge carries page-data and highlight requests between the UI
// side and the page side over a websocket.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/karandeol-26/VeriCura/internal/logging"
	"github.com/karandeol-26/VeriCura/internal/model"
)

// PageHandler answers requests about one page.
type PageHandler interface {
	PageData(ctx context.Context) (*model.PageSnapshot, error)
	Highlight(ctx context.Context, req model.HighlightRequest) (model.HighlightResponse, error)
}

// Agent is the page side: an http.Handler that upgrades to a websocket and
// answers every message with the PageHandler.
type Agent struct {
	handler  PageHandler
	upgrader websocket.Upgrader
	logger   logging.Logger
}

func NewAgent(h PageHandler, logger logging.Logger) (*Agent, error) {
	if h == nil {
		return nil, errors.New("bridge: nil page handler")
	}
	if logger == nil {
		return nil, errors.New("bridge: nil logger")
	}
	return &Agent{
		handler: h,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger.With(logging.Field{Key: "component", Value: "bridge-agent"}),
	}, nil
}

func (a *Agent) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	ctx := r.Context()
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				a.logger.Debug("bridge connection ended", logging.Field{Key: "error", Value: err.Error()})
			}
			return
		}
		resp := a.dispatch(ctx, msg)
		if err := conn.WriteJSON(resp); err != nil {
			a.logger.Warn("writing bridge response", logging.Field{Key: "error", Value: err.Error()})
			return
		}
	}
}

func (a *Agent) dispatch(ctx context.Context, msg Message) Message {
	resp := Message{ID: msg.ID, Type: msg.Type}
	var (
		out any
		err error
	)
	switch msg.Type {
	case TypeGetPageData:
		out, err = a.handler.PageData(ctx)
	case TypeHighlightIssue:
		var req model.HighlightRequest
		if len(msg.Payload) > 0 {
			if err = json.Unmarshal(msg.Payload, &req); err != nil {
				err = fmt.Errorf("decode highlight request: %w", err)
				break
			}
		}
		out, err = a.handler.Highlight(ctx, req)
	default:
		err = fmt.Errorf("unknown message type %q", msg.Type)
	}
	if err != nil {
		a.logger.Warn("bridge request failed",
			logging.Field{Key: "type", Value: string(msg.Type)},
			logging.Field{Key: "error", Value: err.Error()})
		resp.Error = err.Error()
		return resp
	}

	payload, err := json.Marshal(out)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.Payload = payload
	return resp
}
