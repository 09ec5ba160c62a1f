// posectl - one-shot posture adjustment
//
// Reads the current posture from the simulator bridge, applies the requested
// attitude, and sends the adjusted motor targets. Useful for checking sign
// conventions against the simulator without running the daemon.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/quadrupedlab/go-a1/internal/config"
	"github.com/quadrupedlab/go-a1/internal/log"
	"github.com/quadrupedlab/go-a1/pkg/control"
	"github.com/quadrupedlab/go-a1/pkg/posture"
	"github.com/quadrupedlab/go-a1/pkg/robot"
)

func main() {
	yaw := flag.Float64("yaw", 0, "yaw angle in radians")
	pitch := flag.Float64("pitch", 0, "pitch angle in radians")
	roll := flag.Float64("roll", 0, "roll angle in radians")
	deltaZ := flag.Float64("dz", 0, "height offset in millimetres")
	dryRun := flag.Bool("n", false, "compute targets but do not send them")
	flag.Parse()

	log.Init(config.LogLevel())

	host := config.SimHostRequired()
	bridge := robot.NewHTTPController(config.SimAPIURL(host))

	ref, err := bridge.GetPosture()
	if err != nil {
		fmt.Fprintf(os.Stderr, "read posture: %v\n", err)
		os.Exit(1)
	}

	body := posture.Geometry{L: config.HalfLength, W: config.HalfWidth}
	att := posture.Attitude{Yaw: *yaw, Pitch: *pitch, Roll: *roll}

	target, err := control.NewA1Adjuster(body).Adjust(ref, att, *deltaZ)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	for _, leg := range posture.Legs() {
		j := target.Leg(leg)
		fmt.Printf("%-12s hip_aa=%+.4f hip_fe=%+.4f knee=%+.4f\n", leg, j.HipAA, j.HipFE, j.Knee)
	}

	if *dryRun {
		return
	}
	if err := bridge.SetPosture(target); err != nil {
		fmt.Fprintf(os.Stderr, "send posture: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("posture sent")
}
