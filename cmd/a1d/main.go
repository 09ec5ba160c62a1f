// a1d - posture control daemon for a simulated Unitree A1
//
// Connects to the physics-sim bridge, captures a reference posture, and runs
// the attitude control loop with the web dashboard and optional MQTT
// telemetry.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/quadrupedlab/go-a1/internal/config"
	"github.com/quadrupedlab/go-a1/internal/log"
	"github.com/quadrupedlab/go-a1/pkg/control"
	"github.com/quadrupedlab/go-a1/pkg/posture"
	"github.com/quadrupedlab/go-a1/pkg/robot"
	"github.com/quadrupedlab/go-a1/pkg/telemetry"
	"github.com/quadrupedlab/go-a1/pkg/web"
)

// settleDelay gives the motors time to reach the standing pose before the
// reference posture is captured.
const settleDelay = time.Second

func main() {
	log.Init(config.LogLevel())

	host := config.SimHost("127.0.0.1")
	bridge := robot.NewHTTPController(config.SimAPIURL(host))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := waitForBridge(ctx, bridge); err != nil {
		fmt.Fprintf(os.Stderr, "bridge at %s not reachable: %v\n", config.SimAPIURL(host), err)
		os.Exit(1)
	}

	// Stand up, then let the motors settle before capturing the reference.
	if err := bridge.SetPosture(robot.StandingPosture()); err != nil {
		log.Error("failed to command standing posture", "error", err)
		os.Exit(1)
	}
	select {
	case <-time.After(settleDelay):
	case <-ctx.Done():
		return
	}

	body := posture.Geometry{L: config.HalfLength, W: config.HalfWidth}
	adjuster := control.NewA1Adjuster(body)
	rate := time.Second / time.Duration(config.ControlHz())
	mgr := control.NewManager(bridge, adjuster, rate)
	if err := mgr.CaptureReference(); err != nil {
		log.Error("failed to capture reference posture", "error", err)
		os.Exit(1)
	}

	// Live joint-state stream from the simulator, used by telemetry so it
	// does not add HTTP polling load to the bridge.
	live := newLivePosture(bridge)
	go func() {
		stream := robot.NewStreamClient(config.SimStreamURL(host))
		stream.OnPosture = live.set
		stream.Run(ctx)
	}()

	srv := web.NewServer(config.WebPort(), mgr, bridge, adjuster)
	srv.StartAsync()
	defer srv.Shutdown()

	if broker := config.MQTTBroker(); broker != "" {
		pub, err := telemetry.New(broker, "a1d")
		if err != nil {
			log.Warn("telemetry disabled", "error", err)
		} else {
			defer pub.Close()
			go pub.Run(ctx, mgr, live)
		}
	}

	if err := mgr.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("control loop failed", "error", err)
		os.Exit(1)
	}
}

// waitForBridge polls the bridge status until it reports running.
func waitForBridge(ctx context.Context, bridge robot.StatusController) error {
	var lastErr error
	for i := 0; i < 10; i++ {
		state, err := bridge.GetBridgeStatus()
		if err == nil && state == "running" {
			return nil
		}
		lastErr = err
		if err == nil {
			lastErr = fmt.Errorf("bridge state %q", state)
			log.Info("waiting for bridge", "state", state)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	return lastErr
}

// livePosture caches the newest stream frame and falls back to an HTTP read
// when no frame has arrived yet.
type livePosture struct {
	mu       sync.RWMutex
	p        robot.Posture
	received bool
	fallback robot.PostureReader
}

func newLivePosture(fallback robot.PostureReader) *livePosture {
	return &livePosture{fallback: fallback}
}

func (l *livePosture) set(p robot.Posture) {
	l.mu.Lock()
	l.p = p
	l.received = true
	l.mu.Unlock()
}

func (l *livePosture) GetPosture() (robot.Posture, error) {
	l.mu.RLock()
	p, ok := l.p, l.received
	l.mu.RUnlock()
	if ok {
		return p, nil
	}
	return l.fallback.GetPosture()
}
