package robot

import (
	"context"
	"time"

	"github.com/gorilla/websocket"

	"github.com/quadrupedlab/go-a1/internal/log"
	"github.com/quadrupedlab/go-a1/pkg/protocol"
)

// reconnectDelay is how long to wait before redialing a dropped stream.
const reconnectDelay = 2 * time.Second

// StreamClient subscribes to the bridge daemon's joint-state websocket stream
// and delivers updates through a callback. It reconnects automatically until
// the context is cancelled.
type StreamClient struct {
	url string

	// OnPosture is called for every joint-state frame. It runs on the stream
	// goroutine; keep it fast.
	OnPosture func(Posture)
}

// NewStreamClient creates a stream client for the given websocket URL.
func NewStreamClient(url string) *StreamClient {
	return &StreamClient{url: url}
}

// Run dials the stream and pumps frames until ctx is done. Dial and read
// failures are logged and retried.
func (s *StreamClient) Run(ctx context.Context) error {
	for {
		if err := s.pump(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn("joint stream dropped, reconnecting", "url", s.url, "error", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reconnectDelay):
		}
	}
}

func (s *StreamClient) pump(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, _, err := dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	log.Info("joint stream connected", "url", s.url)

	// Close the connection when the context ends so ReadMessage unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		msg, err := protocol.ParseMessage(data)
		if err != nil {
			log.Warn("bad joint stream frame", "error", err)
			continue
		}

		switch msg.Type {
		case protocol.TypeJoints:
			var joints protocol.JointsData
			if err := msg.ParseData(&joints); err != nil {
				log.Warn("bad joints payload", "error", err)
				continue
			}
			if s.OnPosture != nil {
				s.OnPosture(postureFromJoints(joints))
			}
		case protocol.TypeStatus:
			var status protocol.StatusData
			if err := msg.ParseData(&status); err != nil {
				continue
			}
			log.Info("simulation state changed", "state", status.State, "error", status.Error)
		case protocol.TypePing:
			if reply, err := protocol.NewPongMessage(); err == nil {
				if data, err := reply.Bytes(); err == nil {
					conn.WriteMessage(websocket.TextMessage, data)
				}
			}
		}
	}
}

// postureFromJoints converts a stream payload into a Posture.
func postureFromJoints(j protocol.JointsData) Posture {
	var p Posture
	for i, leg := range []protocol.JointAngles{j.FrontRight, j.FrontLeft, j.HindRight, j.HindLeft} {
		p[i].HipAA = leg.HipAA
		p[i].HipFE = leg.HipFE
		p[i].Knee = leg.Knee
	}
	return p
}
