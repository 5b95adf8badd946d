// Command fieldctl runs the control-loop process: it loads tuning
// configuration, wires the world model to vision ingestion and referee
// dispatch, drives the fixed-rate control loop, and republishes snapshots
// to the telemetry broadcaster. Decoding a real SSL-Vision/Game Controller
// feed and driving a real radio link are both out of scope here; frames
// and referee messages are expected to be fed onto the channels this
// binary owns, and outbound packets are simply drained.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"fieldctl/config"
	"fieldctl/control"
	"fieldctl/controller"
	"fieldctl/motion"
	"fieldctl/referee"
	"fieldctl/telemetry"
	"fieldctl/vision"
	"fieldctl/worldmodel"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file; defaults are used when omitted")
	flag.Parse()

	cfg, err := config.FromYaml(*configPath)
	if err != nil {
		log.Fatalf("fieldctl: loading config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("fieldctl: building logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	motion.SetTuning(motion.Tuning{
		VMax:                   cfg.Motion.VMax,
		AMax:                   cfg.Motion.AMax,
		AlphaTolerancePath:     cfg.Motion.AlphaTolerancePath,
		AlphaToleranceSetpoint: cfg.Motion.AlphaToleranceSetpoint,
		Lookahead:              cfg.Motion.Lookahead,
		CollisionStep:          cfg.Motion.CollisionStep,
		RRTStepLength:          cfg.Motion.RRTStepLength,
		RRTMaxIterations:       cfg.Motion.RRTMaxIterations,
		PosEpsilon:             cfg.Motion.PosEpsilon,
		AngleEpsilon:           cfg.Motion.AngleEpsilon,
		VelEpsilon:             cfg.Motion.VelEpsilon,
	})

	w := worldmodel.New(cfg.Color())
	w.Field.SetDimensions(cfg.Field.Length, cfg.Field.Width, cfg.Field.GoalWidth, cfg.Field.GoalDepth)

	dispatcher := referee.NewDispatcher()
	frames := make(chan vision.Frame, 1)
	refMessages := make(chan referee.Message, 1)
	outbound := make(chan controller.Packet, 1)
	snapshots := make(chan telemetry.Snapshot, 1)

	done := ctx.Done()
	go vision.Run(done, w, sugar, frames)
	go dispatcher.Run(done, w, refMessages)
	go drainOutbound(done, outbound)

	broadcaster := telemetry.NewBroadcaster(cfg.Network.TelemetryAddr, snapshots, sugar)
	go func() {
		if err := broadcaster.Run(ctx); err != nil {
			sugar.Errorw("telemetry broadcaster exited", "err", err)
		}
	}()

	loop := &control.Loop{
		World:     w,
		Adapter:   controller.DirectAdapter{},
		Referee:   dispatcher,
		Out:       outbound,
		Snapshots: snapshots,
		Period:    control.DefaultPeriod,
		Logger:    sugar,
	}

	sugar.Infow("fieldctl starting",
		"color", cfg.Color().String(),
		"telemetryAddr", cfg.Network.TelemetryAddr,
	)
	loop.Run(ctx)
	sugar.Info("fieldctl stopped")
}

// drainOutbound consumes the control loop's outbound packets until done
// fires, standing in for the radio link this binary has no driver for.
func drainOutbound(done <-chan struct{}, out <-chan controller.Packet) {
	for {
		select {
		case <-done:
			return
		case <-out:
		}
	}
}
