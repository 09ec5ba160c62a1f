// rolling - side-to-side roll demo
//
// Stands the robot up, captures a reference posture, then sweeps the body
// roll angle through ±amplitude for a number of cycles while the feet stay
// planted. This is the classic demo run against the physics simulator.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quadrupedlab/go-a1/internal/config"
	"github.com/quadrupedlab/go-a1/internal/log"
	"github.com/quadrupedlab/go-a1/pkg/control"
	"github.com/quadrupedlab/go-a1/pkg/posture"
	"github.com/quadrupedlab/go-a1/pkg/robot"
)

func main() {
	amplitude := flag.Float64("amplitude", 0.5, "roll amplitude in radians")
	period := flag.Duration("period", 8*time.Second, "time for one full roll cycle")
	cycles := flag.Int("cycles", 3, "number of cycles (0 = run until interrupted)")
	flag.Parse()

	log.Init(config.LogLevel())

	host := config.SimHost("127.0.0.1")
	bridge := robot.NewHTTPController(config.SimAPIURL(host))

	ctx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	fmt.Printf("rolling demo: amplitude=%.2f rad, period=%s, cycles=%d\n", *amplitude, *period, *cycles)

	if err := bridge.SetPosture(robot.StandingPosture()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to reach bridge at %s: %v\n", config.SimAPIURL(host), err)
		os.Exit(1)
	}
	// Motor initialisation is asynchronous; give the legs a second to reach
	// the standing pose before reading the reference.
	select {
	case <-time.After(time.Second):
	case <-ctx.Done():
		return
	}

	body := posture.Geometry{L: config.HalfLength, W: config.HalfWidth}
	mgr := control.NewManager(bridge, control.NewA1Adjuster(body), time.Second/time.Duration(config.ControlHz()))
	if err := mgr.CaptureReference(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	sweep := &control.RollSweep{Amplitude: *amplitude, Period: *period, Cycles: *cycles}
	mgr.QueueSweep(sweep)

	// Cancel the loop once the sweep finishes.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				if snap := mgr.Snapshot(); snap.Sweep == "" && snap.Ticks > 0 {
					cancel()
					return
				}
			}
		}
	}()

	mgr.Run(runCtx)

	snap := mgr.Snapshot()
	fmt.Printf("done: %d commands sent, %d skipped, %d aborted\n", snap.Ticks, snap.Skipped, snap.Errors)
}
