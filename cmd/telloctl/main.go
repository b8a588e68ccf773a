package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/einherij/enterprise"
	"github.com/einherij/enterprise/utils"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/einherij/tellosdk/pkg/command"
	"github.com/einherij/tellosdk/pkg/config"
	"github.com/einherij/tellosdk/pkg/controller"
	"github.com/einherij/tellosdk/pkg/drone"
	"github.com/einherij/tellosdk/pkg/flysend"
	"github.com/einherij/tellosdk/pkg/logging"
	"github.com/einherij/tellosdk/pkg/navigator"
	"github.com/einherij/tellosdk/pkg/telemetry"
	"github.com/einherij/tellosdk/pkg/wsclient"
)

const keepAlive = 10 * time.Second

func main() {
	app := cli.NewApp()
	app.Name = "telloctl"
	app.Usage = "fly a Tello over the text SDK"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config, c", Usage: "YAML config file", EnvVar: "TELLO_CONFIG"},
	}
	app.Commands = []cli.Command{
		{
			Name:   "pilot",
			Usage:  "connect to the drone and relay it to the handler host",
			Action: pilot,
		},
		{
			Name:      "check",
			Usage:     "validate SDK lines and print their wire text",
			ArgsUsage: "\"cw 90\" [\"go 20 20 20 50\" ...]",
			Action:    check,
		},
		{
			Name:      "send",
			Usage:     "connect, send SDK lines one after another and exit",
			ArgsUsage: "\"takeoff\" \"cw 90\" \"land\"",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "force", Usage: "send lines as typed, skipping validation"},
			},
			Action: send,
		},
		{
			Name:   "state",
			Usage:  "print state records as they arrive",
			Action: state,
		},
	}
	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func setup(c *cli.Context) (config.Config, func()) {
	cfg, err := config.Load(c.GlobalString("config"))
	utils.PanicOnError(err)
	closer := utils.Must(logging.Setup(cfg.Log))
	return cfg, func() { _ = closer.Close() }
}

func pilot(c *cli.Context) error {
	cfg, closeLog := setup(c)
	defer closeLog()

	app := enterprise.NewApplication()

	d := utils.Must(drone.New(cfg.Drone, utils.Must(cfg.Schema())))
	app.RegisterRunner(d)
	app.RegisterOnShutdown(func() {
		_ = d.Close()
		logrus.Warnf("drone disconnected")
	})

	// the drone lands by itself after 15s without a command
	app.RegisterRunner(runnerFunc(func(ctx context.Context) {
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(keepAlive):
				if _, err := d.Query(ctx, "battery?"); err != nil && ctx.Err() == nil {
					logrus.Error(fmt.Errorf("error keeping drone alive: %w", err))
				}
			}
		}
	}))

	// position
	nav := navigator.NewNavigator(d.StreamState(cfg.StateBuffer))
	app.RegisterRunner(nav)

	if cfg.HandlerURL == "" {
		logrus.Warnf("no handler url configured, running without relay")
		app.Run()
		return nil
	}

	// connect to interface
	wsClient := wsclient.New(cfg.HandlerURL)
	app.RegisterRunner(wsClient)
	d.OnMessage(func(text string, _ net.Addr) {
		msg, err := wsclient.NewMessage(wsclient.MTMessage, text)
		if err == nil {
			wsClient.SendMessage(msg)
		}
	})

	app.RegisterRunner(flysend.New(wsClient, nav))
	app.RegisterRunner(controller.New(cfg.Controller, wsClient, d, nav))

	app.Run()
	return nil
}

func check(c *cli.Context) error {
	cfg, closeLog := setup(c)
	defer closeLog()
	s, err := cfg.Schema()
	if err != nil {
		return err
	}

	var failed int
	for _, line := range c.Args() {
		name, params, err := command.ParseLine(s, line)
		if err == nil {
			err = command.Verify(s, name, params)
		}
		if err != nil {
			failed++
			fmt.Printf("%-24s invalid: %v\n", line, err)
			continue
		}
		fmt.Printf("%-24s -> %q\n", line, command.Format(name, params))
	}
	if failed > 0 {
		return cli.NewExitError(fmt.Sprintf("%d of %d lines invalid", failed, len(c.Args())), 1)
	}
	return nil
}

func send(c *cli.Context) error {
	cfg, closeLog := setup(c)
	defer closeLog()

	d, err := drone.New(cfg.Drone, utils.Must(cfg.Schema()))
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		d.Run(ctx)
	}()
	defer func() {
		cancel()
		<-stopped
	}()

	d.OnMessage(func(text string, addr net.Addr) {
		logrus.Infof("%s: %s", addr, text)
	})

	if err := d.Connect(ctx); err != nil {
		return fmt.Errorf("error connecting to drone: %w", err)
	}

	split := func(line string) (string, command.Params, error) {
		return command.ParseLine(d.Schema(), line)
	}
	sendParsed := d.Send
	if c.Bool("force") {
		split, sendParsed = command.SplitLine, d.ForceSend
	}

	for _, line := range c.Args() {
		name, params, err := split(line)
		if err == nil {
			err = sendParsed(ctx, name, params)
		}
		if err != nil {
			return fmt.Errorf("error sending %q: %w", line, err)
		}
		logrus.Infof("sent %q", strings.TrimSpace(line))
	}
	return nil
}

func state(c *cli.Context) error {
	cfg, closeLog := setup(c)
	defer closeLog()

	d, err := drone.New(cfg.Drone, utils.Must(cfg.Schema()))
	if err != nil {
		return err
	}
	d.OnState(func(record telemetry.Record, _ net.Addr) {
		st := record.State()
		fmt.Printf("%s bat=%d%% h=%dcm tof=%dcm yaw=%d pad=%d\n",
			time.Now().Format(time.TimeOnly), st.Battery, st.Height, st.TimeOfFlight, st.Yaw, st.MissionPadID)
	})

	app := enterprise.NewApplication()
	app.RegisterRunner(d)
	app.Run()
	return nil
}

type runnerFunc func(ctx context.Context)

func (r runnerFunc) Run(ctx context.Context) {
	r(ctx)
}
