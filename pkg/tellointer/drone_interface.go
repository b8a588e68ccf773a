package tellointer

import (
	"context"

	"github.com/einherij/tellosdk/pkg/command"
	"github.com/einherij/tellosdk/pkg/navigator"
	"github.com/einherij/tellosdk/pkg/telemetry"
	"github.com/einherij/tellosdk/pkg/wsclient"
)

//go:generate mockgen -destination=mocks/mock_tellointer.go -package=mocks github.com/einherij/tellosdk/pkg/tellointer Drone,Messenger,Navigator

// Drone is the command side of a drone connection, implemented by *drone.Client.
type Drone interface {
	Send(ctx context.Context, name string, params command.Params) error
	SendLine(ctx context.Context, line string) error
	Query(ctx context.Context, name string) (string, error)
}

// Messenger is the handler-side message channel, implemented by *wsclient.Client.
type Messenger interface {
	SendMessage(message wsclient.Message)
	ReceiveMessage(ctx context.Context) wsclient.Message
}

// Navigator provides the position estimate, implemented by *navigator.Navigator.
type Navigator interface {
	GetPos() navigator.Position
	GetState() telemetry.State
	GetRecord() telemetry.Record
}
