// Package drone talks to a Tello over the text SDK: commands and their responses on the
// control socket, state datagrams on the state socket.
package drone

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/einherij/tellosdk/pkg/command"
	"github.com/einherij/tellosdk/pkg/event"
	"github.com/einherij/tellosdk/pkg/schema"
	"github.com/einherij/tellosdk/pkg/telemetry"
)

const (
	DefaultHost        = "192.168.10.1"
	DefaultControlPort = 8889
	DefaultStatePort   = 8890
	DefaultAckTimeout  = 2 * time.Second

	// Acknowledgement is the response confirming that a command completed.
	Acknowledgement = "ok"
	// HandshakeCommand switches the drone into SDK mode.
	HandshakeCommand = "command"

	readBufferSize = 2048
)

var (
	ErrAckTimeout = errors.New("timed out waiting for acknowledgement")
	ErrClosed     = errors.New("drone client closed")
)

// ResponseError is returned when the drone answers a command with something other than the
// acknowledgement, typically "error" or "out of range".
type ResponseError struct {
	Command  string
	Response string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("drone rejected %q: %s", e.Command, e.Response)
}

type Config struct {
	Host        string        `yaml:"host"`
	ControlPort int           `yaml:"controlPort"`
	StatePort   int           `yaml:"statePort"`
	SkipOK      bool          `yaml:"skipOk"`
	AckTimeout  time.Duration `yaml:"ackTimeout"`
}

func DefaultConfig() Config {
	return Config{
		Host:        DefaultHost,
		ControlPort: DefaultControlPort,
		StatePort:   DefaultStatePort,
		SkipOK:      true,
		AckTimeout:  DefaultAckTimeout,
	}
}

type stateEvent struct {
	record telemetry.Record
	addr   net.Addr
}

type messageEvent struct {
	text string
	addr net.Addr
}

type sendEvent struct {
	err error
	n   int
}

// Client is one connection to a drone. Event handlers run on the socket listener goroutines
// and must not block or call Send.
type Client struct {
	cfg       Config
	schema    *schema.Schema
	ctrl      net.PacketConn
	state     net.PacketConn
	droneAddr net.Addr
	connected atomic.Bool

	connectionEvents event.Dispatcher[struct{}]
	stateEvents      event.Dispatcher[stateEvent]
	messageEvents    event.Dispatcher[messageEvent]
	sendEvents       event.Dispatcher[sendEvent]

	connectMux sync.Mutex
	sendMux    sync.Mutex
	responses  chan string
	closeOnce  sync.Once
	closeErr   error
	done       chan struct{}
}

// New binds the control and state sockets. The control port is used both locally and on the
// drone, as the SDK expects.
func New(cfg Config, s *schema.Schema) (*Client, error) {
	droneAddr, err := net.ResolveUDPAddr("udp4", net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.ControlPort)))
	if err != nil {
		return nil, fmt.Errorf("error resolving drone address: %w", err)
	}
	ctrl, err := net.ListenPacket("udp4", ":"+strconv.Itoa(cfg.ControlPort))
	if err != nil {
		return nil, fmt.Errorf("error binding control socket: %w", err)
	}
	state, err := net.ListenPacket("udp4", ":"+strconv.Itoa(cfg.StatePort))
	if err != nil {
		_ = ctrl.Close()
		return nil, fmt.Errorf("error binding state socket: %w", err)
	}
	return NewWithConns(cfg, s, ctrl, state, droneAddr), nil
}

// NewWithConns builds a client over sockets the caller already holds. The client owns them
// from now on and closes them on Close.
func NewWithConns(cfg Config, s *schema.Schema, ctrl, state net.PacketConn, droneAddr net.Addr) *Client {
	if cfg.AckTimeout <= 0 {
		cfg.AckTimeout = DefaultAckTimeout
	}
	return &Client{
		cfg:       cfg,
		schema:    s,
		ctrl:      ctrl,
		state:     state,
		droneAddr: droneAddr,
		responses: make(chan string, 1),
		done:      make(chan struct{}),
	}
}

// Run listens on both sockets and performs the handshake. It blocks until ctx is done and
// closes the client before returning.
func (c *Client) Run(ctx context.Context) {
	logrus.Warnf("started drone client for %s", c.droneAddr)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.listenControl()
	}()
	go func() {
		defer wg.Done()
		c.listenState()
	}()
	go func() {
		if err := c.Connect(ctx); err != nil && ctx.Err() == nil {
			logrus.Error(fmt.Errorf("error connecting to drone: %w", err))
		}
	}()

	select {
	case <-ctx.Done():
	case <-c.done:
	}
	if err := c.Close(); err != nil {
		logrus.Error(fmt.Errorf("error closing drone client: %w", err))
	}
	wg.Wait()
	logrus.Warnf("stopped drone client")
}

// Connect sends the handshake and waits for its acknowledgement. It returns at once when the
// drone has already acknowledged one, so callers may connect before their first Send while
// Run is handshaking too.
func (c *Client) Connect(ctx context.Context) error {
	c.connectMux.Lock()
	defer c.connectMux.Unlock()
	if c.Connected() {
		return nil
	}
	return c.send(ctx, HandshakeCommand, nil)
}

func (c *Client) Connected() bool {
	return c.connected.Load()
}

// Close stops both listeners and releases the sockets.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		c.closeErr = errors.Join(c.ctrl.Close(), c.state.Close())
	})
	return c.closeErr
}

func (c *Client) OnConnection(handler func()) {
	c.connectionEvents.Attach(func(struct{}) { handler() })
}

func (c *Client) OnState(handler func(record telemetry.Record, addr net.Addr)) {
	c.stateEvents.Attach(func(e stateEvent) { handler(e.record, e.addr) })
}

// OnMessage receives every control response other than the acknowledgement, and the
// acknowledgement too unless SkipOK is set.
func (c *Client) OnMessage(handler func(text string, addr net.Addr)) {
	c.messageEvents.Attach(func(e messageEvent) { handler(e.text, e.addr) })
}

func (c *Client) OnSend(handler func(err error, n int)) {
	c.sendEvents.Attach(func(e sendEvent) { handler(e.err, e.n) })
}

// StreamState delivers state records on a buffered channel. Records are dropped while the
// channel is full.
func (c *Client) StreamState(buffer int) <-chan telemetry.Record {
	ch := make(chan telemetry.Record, buffer)
	c.OnState(func(record telemetry.Record, _ net.Addr) {
		select {
		case ch <- record:
		default:
		}
	})
	return ch
}

// Delays returns the per-command delay table of the schema.
func (c *Client) Delays() map[string]time.Duration {
	return c.schema.Delays()
}

func (c *Client) Schema() *schema.Schema {
	return c.schema
}

// Send validates a command and sends it. Read commands return once written; other commands
// wait for the drone's response. A validation failure is returned without sending anything.
func (c *Client) Send(ctx context.Context, name string, params command.Params) error {
	if err := command.Verify(c.schema, name, params); err != nil {
		return err
	}
	return c.send(ctx, name, params)
}

// ForceSend sends a command without validating it.
func (c *Client) ForceSend(ctx context.Context, name string, params command.Params) error {
	if err := command.Verify(c.schema, name, params); err != nil {
		logrus.WithField("label", "FORCE_SEND").Warnf("sending invalid command: %v", err)
	}
	return c.send(ctx, name, params)
}

// SendLine parses an SDK text line such as "cw 90" and sends it like Send.
func (c *Client) SendLine(ctx context.Context, line string) error {
	name, params, err := command.ParseLine(c.schema, line)
	if err != nil {
		return err
	}
	return c.Send(ctx, name, params)
}

// Query sends a read command such as "battery?" and returns the drone's answer.
func (c *Client) Query(ctx context.Context, name string) (string, error) {
	if !command.IsRead(name) {
		return "", fmt.Errorf("%q is not a read command", name)
	}
	if err := command.Verify(c.schema, name, nil); err != nil {
		return "", err
	}
	resp, err := c.exchange(ctx, name, name, true)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(resp, "error") {
		return "", &ResponseError{Command: name, Response: resp}
	}
	return resp, nil
}

func (c *Client) send(ctx context.Context, name string, params command.Params) error {
	text := command.Format(name, params)
	resp, err := c.exchange(ctx, name, text, !command.IsRead(name))
	if err != nil {
		return err
	}
	if !command.IsRead(name) && resp != Acknowledgement {
		return &ResponseError{Command: text, Response: resp}
	}
	return nil
}

// exchange writes one command. With await set it waits for the next control response; only
// one command is in flight per client.
func (c *Client) exchange(ctx context.Context, name, text string, await bool) (string, error) {
	c.sendMux.Lock()
	defer c.sendMux.Unlock()

	select {
	case <-c.done:
		return "", ErrClosed
	default:
	}
	select {
	case stale := <-c.responses:
		logrus.Debugf("dropping unclaimed response %q", stale)
	default:
	}

	n, err := c.ctrl.WriteTo([]byte(text), c.droneAddr)
	c.sendEvents.Fire(sendEvent{err: err, n: n})
	if err != nil {
		return "", fmt.Errorf("error sending %q: %w", text, err)
	}
	logrus.Debugf("sent %q", text)
	if !await {
		return "", nil
	}

	timeout := c.cfg.AckTimeout
	if delay, ok := c.schema.Delay(name); ok {
		timeout += delay
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case resp := <-c.responses:
		return resp, nil
	case <-timer.C:
		return "", fmt.Errorf("%q: %w", text, ErrAckTimeout)
	case <-ctx.Done():
		return "", ctx.Err()
	case <-c.done:
		return "", ErrClosed
	}
}

func (c *Client) listenControl() {
	buf := make([]byte, readBufferSize)
	for {
		n, addr, err := c.ctrl.ReadFrom(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			logrus.Error(fmt.Errorf("error reading control socket: %w", err))
			continue
		}
		c.handleResponse(strings.TrimSpace(telemetry.Decode(buf[:n])), addr)
	}
}

func (c *Client) handleResponse(text string, addr net.Addr) {
	isAck := text == Acknowledgement
	if isAck && c.connected.CompareAndSwap(false, true) {
		logrus.Warnf("connected to drone %s", addr)
		c.connectionEvents.Fire(struct{}{})
	}
	select {
	case c.responses <- text:
	default:
		logrus.Debugf("response %q arrived with one already pending", text)
	}
	if !isAck || !c.cfg.SkipOK {
		c.messageEvents.Fire(messageEvent{text: text, addr: addr})
	}
}

func (c *Client) listenState() {
	buf := make([]byte, readBufferSize)
	for {
		n, addr, err := c.state.ReadFrom(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			logrus.Error(fmt.Errorf("error reading state socket: %w", err))
			continue
		}
		c.stateEvents.Fire(stateEvent{record: telemetry.ParseDatagram(buf[:n]), addr: addr})
	}
}
