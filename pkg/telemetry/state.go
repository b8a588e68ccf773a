package telemetry

import (
	"github.com/einherij/tellosdk/pkg/vector"
)

// State is a typed view of the documented state fields. Missing fields are left at zero.
type State struct {
	MissionPadID int        // mid, -1 or -2 when no pad is detected
	PadPosition  vector.V3D // x, y, z relative to the mission pad, cm
	PadAttitude  vector.V3D // mpry, degrees

	Pitch int
	Roll  int
	Yaw   int

	Speed        vector.V3D // vgx, vgy, vgz, dm/s
	Acceleration vector.V3D // agx, agy, agz, 0.001g

	LowestTemperature  int     // templ, °C
	HighestTemperature int     // temph, °C
	TimeOfFlight       int     // tof, cm
	Height             int     // h, cm
	Battery            int     // bat, %
	Barometer          float64 // baro, m
	MotorTime          int     // time, s
}

// HasMissionPad reports whether the drone currently sees a mission pad.
func (s State) HasMissionPad() bool {
	return s.MissionPadID > 0
}

func (r Record) State() State {
	var s State
	s.MissionPadID = r.intOr("mid", -1)
	s.PadPosition = vector.V3D{r.floatOr("x"), r.floatOr("y"), r.floatOr("z")}
	s.PadAttitude, _ = r.Vector("mpry")
	s.Pitch, _ = r.Int("pitch")
	s.Roll, _ = r.Int("roll")
	s.Yaw, _ = r.Int("yaw")
	s.Speed = vector.V3D{r.floatOr("vgx"), r.floatOr("vgy"), r.floatOr("vgz")}
	s.Acceleration = vector.V3D{r.floatOr("agx"), r.floatOr("agy"), r.floatOr("agz")}
	s.LowestTemperature, _ = r.Int("templ")
	s.HighestTemperature, _ = r.Int("temph")
	s.TimeOfFlight, _ = r.Int("tof")
	s.Height, _ = r.Int("h")
	s.Battery, _ = r.Int("bat")
	s.Barometer = r.floatOr("baro")
	s.MotorTime, _ = r.Int("time")
	return s
}

func (r Record) floatOr(key string) float64 {
	f, _ := r.Float(key)
	return f
}

func (r Record) intOr(key string, def int) int {
	if i, ok := r.Int(key); ok {
		return i
	}
	return def
}
