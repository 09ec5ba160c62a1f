package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/quadrupedlab/go-a1/pkg/control"
	"github.com/quadrupedlab/go-a1/pkg/hub"
	"github.com/quadrupedlab/go-a1/pkg/kinematics"
	"github.com/quadrupedlab/go-a1/pkg/posture"
)

// LegTarget is one leg's transformed foot target and motor angles, relative
// to its hip.
type LegTarget struct {
	Leg    string                 `json:"leg"`
	X      float64                `json:"x"`
	Y      float64                `json:"y"`
	Z      float64                `json:"z"`
	Joints kinematics.JointAngles `json:"joints"`
}

// handleState returns the current dashboard state
func (s *Server) handleState(c *fiber.Ctx) error {
	return c.JSON(s.currentState())
}

// handleLegs returns the per-leg foot targets for the current attitude
func (s *Server) handleLegs(c *fiber.Ctx) error {
	return c.JSON(s.legTargets())
}

// legTargets computes where the current attitude puts each toe.
func (s *Server) legTargets() []LegTarget {
	ref, err := s.mgr.Reference()
	if err != nil {
		return nil
	}

	snap := s.mgr.Snapshot()
	out := make([]LegTarget, 0, 4)
	for _, leg := range posture.Legs() {
		toe := kinematics.Forward(leg, s.adjuster.Leg, ref.Leg(leg))
		toe.Z -= snap.DeltaZ
		toe = posture.AdjustFoot(leg, snap.Attitude, s.adjuster.Body, toe)

		lt := LegTarget{Leg: leg.String(), X: toe.X, Y: toe.Y, Z: toe.Z}
		if j, err := kinematics.Inverse(leg, s.adjuster.Leg, toe); err == nil {
			lt.Joints = j
		}
		out = append(out, lt)
	}
	return out
}

// AttitudeRequest is the request body for setting the target attitude
type AttitudeRequest struct {
	Yaw    float64 `json:"yaw"`
	Pitch  float64 `json:"pitch"`
	Roll   float64 `json:"roll"`
	DeltaZ float64 `json:"delta_z"`
}

// handleSetAttitude sets the manual target attitude
func (s *Server) handleSetAttitude(c *fiber.Ctx) error {
	var req AttitudeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid attitude payload"})
	}

	s.mgr.SetAttitude(posture.Attitude{Yaw: req.Yaw, Pitch: req.Pitch, Roll: req.Roll}, req.DeltaZ)
	return c.JSON(fiber.Map{"ok": true})
}

// SweepRequest is the request body for starting a scripted sweep
type SweepRequest struct {
	Mode      string  `json:"mode"` // "roll" or "pitch"
	Amplitude float64 `json:"amplitude"`
	PeriodSec float64 `json:"period_s"`
	Cycles    int     `json:"cycles"`
}

// handleStartSweep queues a scripted attitude sweep
func (s *Server) handleStartSweep(c *fiber.Ctx) error {
	var req SweepRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid sweep payload"})
	}

	if req.Amplitude < 0 || req.PeriodSec < 0 || req.Cycles < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "amplitude, period_s and cycles must not be negative"})
	}
	if req.Amplitude == 0 {
		req.Amplitude = 0.3
	}
	if req.PeriodSec == 0 {
		req.PeriodSec = 4
	}
	period := time.Duration(req.PeriodSec * float64(time.Second))

	var sweep control.Sweep
	switch req.Mode {
	case "roll":
		sweep = &control.RollSweep{Amplitude: req.Amplitude, Period: period, Cycles: req.Cycles}
	case "pitch":
		sweep = &control.PitchSweep{Amplitude: req.Amplitude, Period: period, Cycles: req.Cycles}
	default:
		return c.Status(400).JSON(fiber.Map{"error": "unknown sweep mode: " + req.Mode})
	}

	s.mgr.QueueSweep(sweep)
	return c.JSON(fiber.Map{"ok": true, "sweep": sweep.Name()})
}

// handleStopSweep stops the running sweep
func (s *Server) handleStopSweep(c *fiber.Ctx) error {
	s.mgr.StopSweep()
	return c.JSON(fiber.Map{"ok": true})
}

// handleReset resets the robot base in the simulator and re-captures the
// reference posture
func (s *Server) handleReset(c *fiber.Ctx) error {
	if err := s.bridge.ResetBase(); err != nil {
		return c.Status(502).JSON(fiber.Map{"error": err.Error()})
	}

	s.mgr.SetAttitude(posture.Attitude{}, 0)
	if err := s.mgr.CaptureReference(); err != nil {
		return c.Status(502).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"ok": true})
}

// handleStateWS handles WebSocket connections for live state
func (s *Server) handleStateWS(c *websocket.Conn) {
	client := hub.NewClient(s.stateHub, c)
	client.Run() // Blocks until connection closes
}
