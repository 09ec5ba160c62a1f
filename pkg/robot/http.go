package robot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/quadrupedlab/go-a1/internal/httpc"
)

// httpClient is a shared HTTP client with a short timeout so a wedged bridge
// cannot block the control loop.
var httpClient = httpc.NewClient(2 * time.Second)

// HTTPController implements Controller using the bridge daemon's HTTP API.
// This is the primary controller used by the posture control loop.
type HTTPController struct {
	BaseURL string
}

// NewHTTPController creates a new HTTP-based bridge controller.
func NewHTTPController(baseURL string) *HTTPController {
	return &HTTPController{BaseURL: baseURL}
}

// motorTargets is the wire form of a posture command. Legs are keyed the way
// the bridge names them.
type motorTargets struct {
	FrontRight legTarget `json:"front_right"`
	FrontLeft  legTarget `json:"front_left"`
	HindRight  legTarget `json:"hind_right"`
	HindLeft   legTarget `json:"hind_left"`
}

type legTarget struct {
	HipAA float64 `json:"hip_aa"`
	HipFE float64 `json:"hip_fe"`
	Knee  float64 `json:"knee"`
}

func toWire(p Posture) motorTargets {
	leg := func(i int) legTarget {
		return legTarget{HipAA: p[i].HipAA, HipFE: p[i].HipFE, Knee: p[i].Knee}
	}
	return motorTargets{
		FrontRight: leg(0),
		FrontLeft:  leg(1),
		HindRight:  leg(2),
		HindLeft:   leg(3),
	}
}

func fromWire(t motorTargets) Posture {
	var p Posture
	for i, lt := range []legTarget{t.FrontRight, t.FrontLeft, t.HindRight, t.HindLeft} {
		p[i].HipAA = lt.HipAA
		p[i].HipFE = lt.HipFE
		p[i].Knee = lt.Knee
	}
	return p
}

// SetPosture sends position targets for all 12 motors in one call.
func (c *HTTPController) SetPosture(p Posture) error {
	return c.postJSON("/api/motors/set_targets", toWire(p))
}

// GetPosture reads the current motor angular positions from the simulator.
func (c *HTTPController) GetPosture() (Posture, error) {
	resp, err := httpClient.Get(c.BaseURL + "/api/motors/positions")
	if err != nil {
		return Posture{}, fmt.Errorf("motor positions request failed: %w", err)
	}
	defer resp.Body.Close()

	var t motorTargets
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		return Posture{}, fmt.Errorf("failed to decode motor positions: %w", err)
	}
	return fromWire(t), nil
}

// GetBridgeStatus returns the bridge daemon status.
func (c *HTTPController) GetBridgeStatus() (string, error) {
	resp, err := httpClient.Get(c.BaseURL + "/api/bridge/status")
	if err != nil {
		return "", fmt.Errorf("bridge status request failed: %w", err)
	}
	defer resp.Body.Close()

	var status struct {
		State string `json:"state"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return "", fmt.Errorf("failed to decode bridge status: %w", err)
	}
	return status.State, nil
}

// ResetBase resets the robot base position and orientation in the simulator.
func (c *HTTPController) ResetBase() error {
	return c.postJSON("/api/base/reset", struct{}{})
}

// postJSON sends a JSON payload to the bridge API.
func (c *HTTPController) postJSON(path string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	resp, err := httpClient.Post(c.BaseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("bridge request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("bridge returned %s for %s", resp.Status, path)
	}
	return nil
}
