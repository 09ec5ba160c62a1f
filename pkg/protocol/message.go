// Package protocol defines the WebSocket message types for the simulator
// bridge stream. This package is shared between go-a1 and the bridge daemon.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	// Bridge → Controller messages
	TypeJoints MessageType = "joints" // Motor angular positions
	TypeStatus MessageType = "status" // Simulation state change

	// Bidirectional
	TypePing MessageType = "ping" // Health check
	TypePong MessageType = "pong" // Health check response
)

// Message is the base wrapper for all WebSocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	return &msg, nil
}

// JointAngles is one leg's motor positions in radians.
type JointAngles struct {
	HipAA float64 `json:"hip_aa"`
	HipFE float64 `json:"hip_fe"`
	Knee  float64 `json:"knee"`
}

// JointsData contains the angular positions of all 12 motors.
type JointsData struct {
	FrontRight JointAngles `json:"front_right"`
	FrontLeft  JointAngles `json:"front_left"`
	HindRight  JointAngles `json:"hind_right"`
	HindLeft   JointAngles `json:"hind_left"`
}

// StatusData reports a simulation state change.
type StatusData struct {
	State string `json:"state"` // "loading", "running", "paused"
	Error string `json:"error,omitempty"`
}

// NewJointsMessage creates a joints message
func NewJointsMessage(joints JointsData) (*Message, error) {
	return NewMessage(TypeJoints, joints)
}

// NewStatusMessage creates a status message
func NewStatusMessage(state, errMsg string) (*Message, error) {
	return NewMessage(TypeStatus, StatusData{State: state, Error: errMsg})
}

// NewPingMessage creates a ping message
func NewPingMessage() (*Message, error) {
	return NewMessage(TypePing, nil)
}

// NewPongMessage creates a pong message
func NewPongMessage() (*Message, error) {
	return NewMessage(TypePong, nil)
}
