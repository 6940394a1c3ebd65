package realtime

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialHub(t *testing.T, srv *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub([]string{"*"}, nil)
	go hub.Run()

	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn := dialHub(t, srv, "")
	defer conn.Close()

	// Give the hub a moment to register the client.
	time.Sleep(50 * time.Millisecond)

	hub.Broadcast("customer_created", map[string]string{"name": "Acme Corp"})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, frame, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var evt Event
	if err := json.Unmarshal(frame, &evt); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if evt.Event != "customer_created" {
		t.Errorf("event = %q, want customer_created", evt.Event)
	}
	data, ok := evt.Data.(map[string]interface{})
	if !ok || data["name"] != "Acme Corp" {
		t.Errorf("unexpected data: %#v", evt.Data)
	}
}

func TestHubBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub([]string{"*"}, nil)
	go hub.Run()

	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	first := dialHub(t, srv, "")
	defer first.Close()
	second := dialHub(t, srv, "")
	defer second.Close()

	time.Sleep(50 * time.Millisecond)

	hub.Broadcast("lead_deleted", map[string]string{"id": "abc"})

	for i, conn := range []*websocket.Conn{first, second} {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, frame, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("client %d read: %v", i, err)
		}
		var evt Event
		if err := json.Unmarshal(frame, &evt); err != nil {
			t.Fatalf("client %d unmarshal: %v", i, err)
		}
		if evt.Event != "lead_deleted" {
			t.Errorf("client %d event = %q", i, evt.Event)
		}
	}
}

func TestHubRejectsInvalidToken(t *testing.T) {
	hub := NewHub([]string{"*"}, func(token string) error {
		if token != "good" {
			return errors.New("bad token")
		}
		return nil
	})
	go hub.Run()

	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?token=bad"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("expected dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 response, got %+v", resp)
	}

	// The valid token still connects.
	conn := dialHub(t, srv, "good")
	conn.Close()
}
