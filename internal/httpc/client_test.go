package httpc

import (
	"net/http"
	"testing"
	"time"
)

func TestNewClientSetsTimeouts(t *testing.T) {
	c := NewClient(2 * time.Second)

	if c.Timeout != 2*time.Second {
		t.Errorf("timeout: got %v, want 2s", c.Timeout)
	}
	tr, ok := c.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("transport: got %T, want *http.Transport", c.Transport)
	}
	if tr.IdleConnTimeout != DefaultIdleConnTimeout {
		t.Errorf("idle conn timeout: got %v, want %v", tr.IdleConnTimeout, DefaultIdleConnTimeout)
	}
}
