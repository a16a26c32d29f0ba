package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/karandeol-26/VeriCura/internal/logging"
	"github.com/karandeol-26/VeriCura/internal/model"
)

// ErrNoListener means nothing answered on the page side: the agent is not
// running, the page went away or the reply did not arrive in time.
var ErrNoListener = errors.New("bridge: no listener on page")

// Client is the UI side. Every request dials its own connection and waits
// for the single matching reply.
type Client struct {
	url    string
	cfg    Config
	dialer *websocket.Dialer
	logger logging.Logger
}

func NewClient(url string, cfg Config, logger logging.Logger) (*Client, error) {
	if url == "" {
		return nil, errors.New("bridge: empty agent url")
	}
	if logger == nil {
		return nil, errors.New("bridge: nil logger")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Client{
		url:    url,
		cfg:    cfg,
		dialer: &websocket.Dialer{HandshakeTimeout: cfg.Timeout},
		logger: logger.With(logging.Field{Key: "component", Value: "bridge-client"}),
	}, nil
}

// PageData asks the page for its snapshot.
func (c *Client) PageData(ctx context.Context) (*model.PageSnapshot, error) {
	var snap model.PageSnapshot
	if err := c.roundTrip(ctx, TypeGetPageData, nil, &snap); err != nil {
		return nil, err
	}
	if snap.Links == nil {
		snap.Links = []string{}
	}
	return &snap, nil
}

// Highlight asks the page to locate and pulse an element.
func (c *Client) Highlight(ctx context.Context, req model.HighlightRequest) (model.HighlightResponse, error) {
	var resp model.HighlightResponse
	if err := c.roundTrip(ctx, TypeHighlightIssue, req, &resp); err != nil {
		return model.HighlightResponse{}, err
	}
	return resp, nil
}

func (c *Client) roundTrip(ctx context.Context, typ MessageType, payload, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		c.logger.Debug("dial failed", logging.Field{Key: "url", Value: c.url}, logging.Field{Key: "error", Value: err.Error()})
		return fmt.Errorf("%w: %v", ErrNoListener, err)
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { _ = conn.SetReadDeadline(time.Now()) })
	defer stop()

	msg := Message{ID: uuid.NewString(), Type: typ}
	if payload != nil {
		if msg.Payload, err = json.Marshal(payload); err != nil {
			return fmt.Errorf("bridge: encode %s: %w", typ, err)
		}
	}
	if err := conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("%w: %v", ErrNoListener, err)
	}

	for {
		var resp Message
		if err := conn.ReadJSON(&resp); err != nil {
			return fmt.Errorf("%w: %v", ErrNoListener, err)
		}
		if resp.ID != msg.ID {
			c.logger.Debug("dropping unrelated reply", logging.Field{Key: "id", Value: resp.ID})
			continue
		}
		if resp.Error != "" {
			return &RemoteError{Type: typ, Message: resp.Error}
		}
		if err := json.Unmarshal(resp.Payload, out); err != nil {
			return fmt.Errorf("bridge: decode %s reply: %w", typ, err)
		}
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		return nil
	}
}
