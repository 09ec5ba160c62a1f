// Package config provides configuration helpers for go-a1 commands.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Default simulator bridge configuration.
const (
	DefaultSimPort   = "8300"
	DefaultWebPort   = "8080"
	DefaultControlHz = 30
)

// A1 body dimensions in millimetres, measured from the URDF/STL.
// L and W are the half length and half width used by the posture transforms.
const (
	BodyLength = 360.0
	BodyWidth  = 200.0
	HalfLength = BodyLength / 2
	HalfWidth  = BodyWidth / 2
)

// SimHost returns the simulator bridge host from SIM_HOST env var.
// Falls back to the provided default if not set.
func SimHost(defaultHost string) string {
	if h := os.Getenv("SIM_HOST"); h != "" {
		return h
	}
	return defaultHost
}

// SimHostRequired returns the simulator bridge host from SIM_HOST env var.
// Exits with usage help if not set.
func SimHostRequired() string {
	h := os.Getenv("SIM_HOST")
	if h == "" {
		fmt.Fprintln(os.Stderr, "Error: SIM_HOST environment variable is required")
		fmt.Fprintln(os.Stderr, "Usage: SIM_HOST=127.0.0.1 go run ./cmd/...")
		os.Exit(1)
	}
	return h
}

// SimPort returns the simulator bridge port from SIM_PORT env var or default.
func SimPort() string {
	if p := os.Getenv("SIM_PORT"); p != "" {
		return p
	}
	return DefaultSimPort
}

// SimAPIURL returns the simulator bridge HTTP API URL.
func SimAPIURL(host string) string {
	return fmt.Sprintf("http://%s:%s", host, SimPort())
}

// SimStreamURL returns the simulator bridge websocket stream URL.
func SimStreamURL(host string) string {
	return fmt.Sprintf("ws://%s:%s/ws/joints", host, SimPort())
}

// WebPort returns the dashboard port from WEB_PORT env var or default.
func WebPort() string {
	if p := os.Getenv("WEB_PORT"); p != "" {
		return p
	}
	return DefaultWebPort
}

// ControlHz returns the control loop rate from CONTROL_HZ env var or default.
func ControlHz() int {
	if v := os.Getenv("CONTROL_HZ"); v != "" {
		if hz, err := strconv.Atoi(v); err == nil && hz > 0 {
			return hz
		}
	}
	return DefaultControlHz
}

// MQTTBroker returns the telemetry broker URL from MQTT_BROKER env var.
// Empty means telemetry is disabled.
func MQTTBroker() string {
	return os.Getenv("MQTT_BROKER")
}

// LogLevel returns the log level from LOG_LEVEL env var or "info".
func LogLevel() string {
	if l := os.Getenv("LOG_LEVEL"); l != "" {
		return l
	}
	return "info"
}
