// Package web provides a real-time dashboard for the posture controller: the
// attitude sliders, reset button and live state readout that the original
// simulator exposed as debug widgets.
package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/quadrupedlab/go-a1/internal/log"
	"github.com/quadrupedlab/go-a1/pkg/control"
	"github.com/quadrupedlab/go-a1/pkg/hub"
	"github.com/quadrupedlab/go-a1/pkg/robot"
)

// broadcastInterval is how often the live state is pushed to websocket
// clients.
const broadcastInterval = 100 * time.Millisecond

// DashState is the dashboard's view of the whole system.
type DashState struct {
	BridgeState string           `json:"bridge_state"`
	Control     control.Snapshot `json:"control"`
	Legs        []LegTarget      `json:"legs"`
}

// Server is the web dashboard server
type Server struct {
	app  *fiber.App
	port string

	mgr      *control.Manager
	bridge   robot.Controller
	adjuster control.Adjuster

	stateHub *hub.Hub
	stop     chan struct{}
}

// NewServer creates a new dashboard server wired to the control loop.
func NewServer(port string, mgr *control.Manager, bridge robot.Controller, adjuster control.Adjuster) *Server {
	s := &Server{
		port:     port,
		mgr:      mgr,
		bridge:   bridge,
		adjuster: adjuster,
		stateHub: hub.New("state"),
		stop:     make(chan struct{}),
	}

	app := fiber.New(fiber.Config{
		AppName:               "A1 Posture Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// Static files
	app.Static("/", "./web")

	// API routes
	api := app.Group("/api")
	api.Get("/state", s.handleState)
	api.Get("/legs", s.handleLegs)
	api.Post("/attitude", s.handleSetAttitude)
	api.Post("/sweep", s.handleStartSweep)
	api.Post("/sweep/stop", s.handleStopSweep)
	api.Post("/reset", s.handleReset)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket routes
	app.Get("/ws/state", websocket.New(s.handleStateWS))

	s.app = app
	return s
}

// Start starts the web server. Blocks until Shutdown.
func (s *Server) Start() error {
	log.Info("web dashboard listening", "url", "http://localhost:"+s.port)

	go s.stateHub.Run()
	go s.broadcastLoop()

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("web server error", "error", err)
		}
	}()
}

// broadcastLoop pushes the live state to websocket clients.
func (s *Server) broadcastLoop() {
	ticker := time.NewTicker(broadcastInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if s.stateHub.ClientCount() == 0 {
				continue
			}
			s.stateHub.BroadcastJSON(s.currentState())
		}
	}
}

// currentState assembles the dashboard state from the bridge and the control
// loop.
func (s *Server) currentState() DashState {
	state := DashState{Control: s.mgr.Snapshot()}

	if st, err := s.bridge.GetBridgeStatus(); err == nil {
		state.BridgeState = st
	} else {
		state.BridgeState = "unreachable"
	}

	state.Legs = s.legTargets()
	return state
}

// Shutdown gracefully stops the web server
func (s *Server) Shutdown() error {
	close(s.stop)
	return s.app.Shutdown()
}
