package flysend

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/einherij/tellosdk/pkg/tellointer"
	"github.com/einherij/tellosdk/pkg/wsclient"
)

// Sender publishes the position estimate and the latest state record to the handler.
type Sender struct {
	messenger     tellointer.Messenger
	nav           tellointer.Navigator
	posInterval   time.Duration
	stateInterval time.Duration
}

func New(messenger tellointer.Messenger, nav tellointer.Navigator) *Sender {
	return &Sender{
		messenger:     messenger,
		nav:           nav,
		posInterval:   100 * time.Millisecond,
		stateInterval: time.Second,
	}
}

func (s *Sender) Run(ctx context.Context) {
	logrus.Warnf("starting fly sender")
	stateTicker := time.NewTicker(s.stateInterval)
	defer stateTicker.Stop()
	posTicker := time.NewTicker(s.posInterval)
	defer posTicker.Stop()
	for {
		select {
		case <-stateTicker.C:
			record := s.nav.GetRecord()
			if record == nil {
				continue
			}
			s.send(wsclient.MTState, record)
		case <-posTicker.C:
			s.send(wsclient.MTPos, s.nav.GetPos())
		case <-ctx.Done():
			logrus.Warnf("stopped fly sender")
			return
		}
	}
}

func (s *Sender) send(t wsclient.MessageType, content any) {
	msg, err := wsclient.NewMessage(t, content)
	if err != nil {
		logrus.Error(err)
		return
	}
	s.messenger.SendMessage(msg)
}
