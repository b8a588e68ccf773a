package navigator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/einherij/tellosdk/pkg/telemetry"
	"github.com/einherij/tellosdk/pkg/vector"
)

type NavigatorSuite struct {
	suite.Suite
	clock time.Time
	nav   *Navigator
}

func TestNavigatorSuite(t *testing.T) {
	suite.Run(t, new(NavigatorSuite))
}

func (s *NavigatorSuite) SetupTest() {
	s.clock = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.nav = NewNavigator(nil)
	s.nav.now = func() time.Time { return s.clock }
}

func (s *NavigatorSuite) TestInitial() {
	s.Equal(Position{}, s.nav.GetPos())
	s.Equal(-1, s.nav.GetState().MissionPadID)
	s.Nil(s.nav.GetRecord())
}

func (s *NavigatorSuite) TestDeadReckoning() {
	s.nav.Update(telemetry.Parse("mid:-1;yaw:0;vgx:0;vgy:0;h:0"))
	s.clock = s.clock.Add(500 * time.Millisecond)
	s.nav.Update(telemetry.Parse("mid:-1;yaw:90;vgx:10;vgy:-4;h:80"))

	pos := s.nav.GetPos()
	s.InDelta(50, pos.Location.X(), 1e-9)
	s.InDelta(-20, pos.Location.Y(), 1e-9)
	s.Equal(80., pos.Location.Z())
	s.Equal(90., pos.Heading)
	s.Equal(0, pos.MissionPad)

	// a long gap integrates at most maxStep
	s.clock = s.clock.Add(time.Minute)
	s.nav.Update(telemetry.Parse("mid:-1;yaw:90;vgx:10;vgy:0;h:80"))
	s.InDelta(150, s.nav.GetPos().Location.X(), 1e-9)
}

func (s *NavigatorSuite) TestMissionPad() {
	s.nav.Update(telemetry.Parse("mid:4;x:12;y:-30;z:90;mpry:0,0,0;yaw:-45;bat:70"))
	pos := s.nav.GetPos()
	s.Equal(vector.V3D{12, -30, 90}, pos.Location)
	s.Equal(4, pos.MissionPad)
	s.Equal(-45., pos.Heading)
	s.Equal(70, s.nav.GetState().Battery)
	bat, _ := s.nav.GetRecord().Int("bat")
	s.Equal(70, bat)
}

func (s *NavigatorSuite) TestToBodyAndTurn() {
	p := Position{Heading: 90}
	body := p.ToBody(vector.V3D{0, 100, 10})
	s.InDelta(100, body.X(), 1e-9)
	s.InDelta(0, body.Y(), 1e-9)
	s.Equal(10., body.Z())

	s.InDelta(-100, Position{Heading: 10}.TurnTo(-90), 1e-9)
	s.InDelta(20, Position{Heading: 170}.TurnTo(-170), 1e-9)
	s.InDelta(180, Position{Heading: 0}.TurnTo(180), 1e-9)
	s.InDelta(180, Position{Heading: 90}.TurnTo(-90), 1e-9)
}

func (s *NavigatorSuite) TestRun() {
	states := make(chan telemetry.Record, 1)
	nav := NewNavigator(states)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		nav.Run(ctx)
	}()

	states <- telemetry.Parse("mid:1;x:5;y:5;z:5;yaw:30")
	s.Eventually(func() bool { return nav.GetPos().MissionPad == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
