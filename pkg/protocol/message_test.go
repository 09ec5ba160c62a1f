package protocol

import (
	"testing"
)

func TestNewMessage(t *testing.T) {
	tests := []struct {
		name    string
		msgType MessageType
		data    interface{}
	}{
		{
			name:    "joints message",
			msgType: TypeJoints,
			data:    JointsData{FrontRight: JointAngles{HipFE: 0.7, Knee: -1.4}},
		},
		{
			name:    "status message",
			msgType: TypeStatus,
			data:    StatusData{State: "running"},
		},
		{
			name:    "nil data",
			msgType: TypePing,
			data:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := NewMessage(tt.msgType, tt.data)
			if err != nil {
				t.Fatalf("NewMessage() error = %v", err)
			}
			if msg.Type != tt.msgType {
				t.Errorf("NewMessage() type = %v, want %v", msg.Type, tt.msgType)
			}
			if msg.Timestamp == 0 {
				t.Error("NewMessage() timestamp should be set")
			}
		})
	}
}

func TestMessageRoundTrip(t *testing.T) {
	original := JointsData{
		FrontRight: JointAngles{HipAA: 0.1, HipFE: 0.7, Knee: -1.4},
		HindLeft:   JointAngles{HipAA: -0.1, HipFE: 0.8, Knee: -1.5},
	}

	msg, err := NewJointsMessage(original)
	if err != nil {
		t.Fatalf("NewJointsMessage() error = %v", err)
	}

	data, err := msg.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	parsed, err := ParseMessage(data)
	if err != nil {
		t.Fatalf("ParseMessage() error = %v", err)
	}
	if parsed.Type != TypeJoints {
		t.Errorf("parsed type = %v, want %v", parsed.Type, TypeJoints)
	}

	var joints JointsData
	if err := parsed.ParseData(&joints); err != nil {
		t.Fatalf("ParseData() error = %v", err)
	}
	if joints != original {
		t.Errorf("round trip: got %+v, want %+v", joints, original)
	}
}

func TestParseMessageRejectsGarbage(t *testing.T) {
	if _, err := ParseMessage([]byte("not json")); err == nil {
		t.Error("ParseMessage() should fail on invalid JSON")
	}
}
