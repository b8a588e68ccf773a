package navigator

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/einherij/tellosdk/pkg/telemetry"
	"github.com/einherij/tellosdk/pkg/vector"
)

// maxStep bounds the time integrated between two state records so a gap in the stream does
// not throw the estimate away.
const maxStep = time.Second

// Position is the drone's estimated location in cm and its heading in degrees as reported by
// the yaw field.
type Position struct {
	Location   vector.V3D `json:"location"`
	Heading    float64    `json:"heading"`
	MissionPad int        `json:"missionPad,omitempty"`
}

// ToBody turns a displacement in the navigation frame into the drone's body frame.
func (p Position) ToBody(v vector.V3D) vector.V3D {
	return v.RotateZ(-p.Heading)
}

// TurnTo returns the signed turn in degrees, within (-180, 180], that brings the drone from
// its heading to the given one.
func (p Position) TurnTo(heading float64) float64 {
	turn := math.Mod(heading-p.Heading, 360)
	switch {
	case turn > 180:
		turn -= 360
	case turn <= -180:
		turn += 360
	}
	return turn
}

type snapshot struct {
	pos    Position
	state  telemetry.State
	record telemetry.Record
	at     time.Time
}

type Navigator struct {
	states  <-chan telemetry.Record
	current atomic.Pointer[snapshot]
	now     func() time.Time
}

func NewNavigator(states <-chan telemetry.Record) *Navigator {
	n := &Navigator{
		states: states,
		now:    time.Now,
	}
	n.current.Store(&snapshot{state: telemetry.State{MissionPadID: -1}})
	return n
}

func (n *Navigator) Run(ctx context.Context) {
	logrus.Warnf("started navigation")
	for {
		select {
		case record := <-n.states:
			n.Update(record)
		case <-ctx.Done():
			logrus.Warnf("stopped navigation")
			return
		}
	}
}

// Update folds one state record into the estimate. With a mission pad in sight the pad
// coordinates are used as they are; otherwise the horizontal speed (dm/s) is integrated and
// the height taken from h.
func (n *Navigator) Update(record telemetry.Record) {
	prev := n.current.Load()
	now := n.now()
	state := record.State()

	pos := prev.pos
	pos.Heading = float64(state.Yaw)
	pos.MissionPad = 0
	if state.HasMissionPad() {
		pos.Location = state.PadPosition
		pos.MissionPad = state.MissionPadID
	} else {
		if !prev.at.IsZero() {
			dt := now.Sub(prev.at)
			if dt > maxStep {
				dt = maxStep
			}
			velocity := vector.V3D{state.Speed.X(), state.Speed.Y(), 0}.Scale(10)
			pos.Location = pos.Location.Add(velocity.Scale(dt.Seconds()))
		}
		pos.Location[vector.Z] = float64(state.Height)
	}

	n.current.Store(&snapshot{pos: pos, state: state, record: record, at: now})
}

func (n *Navigator) GetPos() Position {
	return n.current.Load().pos
}

func (n *Navigator) GetState() telemetry.State {
	return n.current.Load().state
}

// GetRecord returns the last state record, nil before the first one.
func (n *Navigator) GetRecord() telemetry.Record {
	return n.current.Load().record
}
