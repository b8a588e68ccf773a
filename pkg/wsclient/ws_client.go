package wsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	sendBuffer    = 32
	receiveBuffer = 8
)

type Client struct {
	serverURL         string
	reconnectInterval time.Duration
	sendChan          chan Message
	receiveChan       chan Message
}

type MessageType string

const (
	MTUndefined MessageType = ""
	MTState     MessageType = "state"
	MTPos       MessageType = "pos"
	MTLog       MessageType = "log"
	MTMessage   MessageType = "message"
	MTCmd       MessageType = "cmd"
)

type Message struct {
	Type    MessageType     `json:"type"`
	Content json.RawMessage `json:"content"`
}

// NewMessage encodes content as the JSON payload of a message.
func NewMessage(t MessageType, content any) (Message, error) {
	data, err := json.Marshal(content)
	if err != nil {
		return Message{}, fmt.Errorf("error encoding %s message: %w", t, err)
	}
	return Message{Type: t, Content: data}, nil
}

// Text decodes a message whose content is a JSON string. Other content is returned raw.
func (m Message) Text() string {
	var s string
	if err := json.Unmarshal(m.Content, &s); err != nil {
		return string(m.Content)
	}
	return s
}

func New(serverURL string) *Client {
	return &Client{
		serverURL:         serverURL,
		reconnectInterval: 5 * time.Second,
		sendChan:          make(chan Message, sendBuffer),
		receiveChan:       make(chan Message, receiveBuffer),
	}
}

// SendMessage queues a message for the server. It never blocks: messages are dropped while
// the queue is full, which happens when the server is unreachable.
func (c *Client) SendMessage(message Message) {
	select {
	case c.sendChan <- message:
	default:
		logrus.Debugf("dropping %s message, send queue full", message.Type)
	}
}

// SendLog is a shortcut for a log message with text content.
func (c *Client) SendLog(text string) {
	msg, _ := NewMessage(MTLog, text)
	c.SendMessage(msg)
}

func (c *Client) ReceiveMessage(ctx context.Context) Message {
	select {
	case <-ctx.Done():
		return Message{}
	case msg := <-c.receiveChan:
		return msg
	}
}

// URL returns the websocket endpoint derived from the handler's http URL.
func (c *Client) URL() string {
	base := c.serverURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return "ws" + strings.TrimPrefix(base, "http") + "drone/ws/"
}

func (c *Client) Run(ctx context.Context) {
	logrus.Warnf("started websocket client")
	timer := time.NewTimer(0)
	wsURL := c.URL()
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			logrus.Warnf("stopped websocket client")
			return
		case <-timer.C:
			conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
			if err != nil {
				logrus.Error(fmt.Errorf("error connecting to server's web socket: %w", err))
			} else {
				c.serve(ctx, conn)
			}
			timer.Reset(c.reconnectInterval)
		}
	}
}

// serve pumps messages both ways until the connection fails or ctx is done.
func (c *Client) serve(ctx context.Context, conn *websocket.Conn) {
	defer func() { _ = conn.Close() }()
	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		defer cancel()
		c.receiveMessages(connCtx, conn)
	}()
	c.sendMessages(connCtx, conn)
}

func (c *Client) receiveMessages(ctx context.Context, conn *websocket.Conn) {
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() == nil {
				logrus.Error(fmt.Errorf("error reading message from web socket: %w", err))
			}
			return
		}
		select {
		case c.receiveChan <- msg:
		case <-time.After(200 * time.Millisecond):
			logrus.Warnf("dropping %s message, nobody is receiving", msg.Type)
		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) sendMessages(ctx context.Context, conn *websocket.Conn) {
	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			return
		case msg := <-c.sendChan:
			if err := conn.WriteJSON(msg); err != nil {
				logrus.Error(fmt.Errorf("error writing message to web socket: %w", err))
				return
			}
		}
	}
}
