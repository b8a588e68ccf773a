package controller

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/einherij/tellosdk/pkg/command"
	"github.com/einherij/tellosdk/pkg/navigator"
	"github.com/einherij/tellosdk/pkg/tellointer"
	"github.com/einherij/tellosdk/pkg/vector"
	"github.com/einherij/tellosdk/pkg/wsclient"
)

// minGoDistance is the smallest displacement on any axis the drone accepts for "go".
const minGoDistance = 20

var ErrNoHome = errors.New("home is not set")

type Config struct {
	Step     int `yaml:"step"`     // cm per move key
	TurnStep int `yaml:"turnStep"` // degrees per turn key
	Speed    int `yaml:"speed"`    // cm/s for "go"
}

func DefaultConfig() Config {
	return Config{Step: 50, TurnStep: 45, Speed: 50}
}

func (c Config) Validate() error {
	if c.Step <= 0 || c.TurnStep <= 0 || c.Speed <= 0 {
		return fmt.Errorf("controller steps and speed must be positive, got %+v", c)
	}
	return nil
}

type key struct {
	info    string
	command string
	turn    bool
}

// Key codes are "D"/"U" (key down/up) followed by the key. Moves happen on key down; key up
// events of move keys are ignored.
var moveKeys = map[string]key{
	"Dw": {info: "Going Forward", command: "forward"},
	"Ds": {info: "Going Backward", command: "back"},
	"Da": {info: "Going Left", command: "left"},
	"Dd": {info: "Going Right", command: "right"},
	"Dr": {info: "Going Up", command: "up"},
	"Df": {info: "Going Down", command: "down"},
	"Dq": {info: "Turning Left", command: "ccw", turn: true},
	"De": {info: "Turning Right", command: "cw", turn: true},
}

var plainKeys = map[string]key{
	"Du": {info: "Take Off", command: "takeoff"},
	"Dl": {info: "Land", command: "land"},
	"Dx": {info: "Emergency", command: "emergency"},
}

type Controller struct {
	cfg       Config
	messenger tellointer.Messenger
	drone     tellointer.Drone
	nav       tellointer.Navigator
	home      *navigator.Position
}

func New(cfg Config, messenger tellointer.Messenger, drone tellointer.Drone, nav tellointer.Navigator) *Controller {
	return &Controller{
		cfg:       cfg,
		messenger: messenger,
		drone:     drone,
		nav:       nav,
	}
}

func (h *Controller) Run(ctx context.Context) {
	logrus.Warnf("started drone controller")
	for {
		msg := h.messenger.ReceiveMessage(ctx)
		if ctx.Err() != nil {
			logrus.Warnf("stopped drone controller")
			return
		}
		if msg.Type != wsclient.MTCmd {
			continue
		}
		h.Handle(ctx, msg.Text())
	}
}

// Handle executes one key code or SDK line and reports the outcome as a log message.
func (h *Controller) Handle(ctx context.Context, input string) {
	input = strings.TrimSpace(input)
	info, err := h.handle(ctx, input)
	if info == "" && err == nil {
		return
	}
	if err != nil {
		logrus.WithField("input", input).Error(err)
		info += " failed: " + err.Error()
	}

	st := h.nav.GetState()
	info += fmt.Sprintf(" BatPrc: %d; Height: %d; Tof: %d", st.Battery, st.Height, st.TimeOfFlight)
	msg, err := wsclient.NewMessage(wsclient.MTLog, "Command "+strings.TrimSpace(info))
	if err != nil {
		logrus.Error(err)
		return
	}
	h.messenger.SendMessage(msg)
}

func (h *Controller) handle(ctx context.Context, input string) (string, error) {
	if k, ok := moveKeys[input]; ok {
		value := h.cfg.Step
		if k.turn {
			value = h.cfg.TurnStep
		}
		return k.info, h.drone.Send(ctx, k.command, command.Params{command.P("value", value)})
	}
	if k, ok := plainKeys[input]; ok {
		return k.info, h.drone.Send(ctx, k.command, nil)
	}
	switch input {
	case "Db":
		battery, err := h.drone.Query(ctx, "battery?")
		return "Battery " + battery, err
	case "Uh":
		pos := h.nav.GetPos()
		h.home = &pos
		return fmt.Sprintf("Home set at %.0f %.0f %.0f", pos.Location.X(), pos.Location.Y(), pos.Location.Z()), nil
	case "U0":
		return "Going Home", h.flyHome(ctx)
	}
	if len(input) == 2 && (input[0] == 'U' || input[0] == 'D') {
		logrus.Debugf("ignoring key %q", input)
		return "", nil
	}
	if input == "" {
		return "", nil
	}
	return input, h.drone.SendLine(ctx, input)
}

// flyHome moves back to the home location with a single "go" and turns to the home heading.
func (h *Controller) flyHome(ctx context.Context) error {
	if h.home == nil {
		return ErrNoHome
	}
	pos := h.nav.GetPos()
	delta := pos.ToBody(h.home.Location.Sub(pos.Location)).Round()
	if math.Abs(delta.X()) >= minGoDistance || math.Abs(delta.Y()) >= minGoDistance || math.Abs(delta.Z()) >= minGoDistance {
		err := h.drone.Send(ctx, "go", command.Params{
			command.P("x", delta[vector.X]),
			command.P("y", delta[vector.Y]),
			command.P("z", delta[vector.Z]),
			command.P("speed", h.cfg.Speed),
		})
		if err != nil {
			return fmt.Errorf("error flying home: %w", err)
		}
	}

	turn := math.Round(pos.TurnTo(h.home.Heading))
	switch {
	case turn >= 1:
		return h.drone.Send(ctx, "cw", command.Params{command.P("value", turn)})
	case turn <= -1:
		return h.drone.Send(ctx, "ccw", command.Params{command.P("value", -turn)})
	}
	return nil
}
