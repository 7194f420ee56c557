package stream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"cell-society/internal/config"
	"cell-society/internal/core"
	"cell-society/internal/factory"
)

func buildGrid(t *testing.T) *core.Grid {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Rows, cfg.Cols = 6, 6
	g, err := factory.Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for condition")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestHubBroadcastsCommittedGenerations(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv, "/")
	waitFor(t, func() bool { return hub.Clients() == 1 })

	g := buildGrid(t)
	g.Observe(hub)
	if err := g.Step(); err != nil {
		t.Fatal(err)
	}

	f := readFrame(t, conn)
	if f.Generation != 1 || f.Variant != "GameOfLife" || len(f.States) != 36 {
		t.Fatalf("frame = %+v", f)
	}
	if f.Counts["Dead"]+f.Counts["Alive"] != 36 {
		t.Fatalf("counts = %v", f.Counts)
	}
}

func TestHubSendsLastFrameToLateClients(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	g := buildGrid(t)
	g.Observe(hub)
	if err := g.Run(2); err != nil {
		t.Fatal(err)
	}
	// Let the broadcaster drain both frames before anyone connects.
	time.Sleep(20 * time.Millisecond)

	conn := dial(t, srv, "/")
	if f := readFrame(t, conn); f.Generation != 2 {
		t.Fatalf("late client got generation %d", f.Generation)
	}
}

func TestHubDropsClosedClients(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv, "/")
	waitFor(t, func() bool { return hub.Clients() == 1 })
	conn.Close()
	waitFor(t, func() bool { return hub.Clients() == 0 })
}

func TestServerEndpoints(t *testing.T) {
	s := NewServer(buildGrid(t), 10, 0)
	defer s.Close()
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/step?n=3", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	var f Frame
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if f.Generation != 3 {
		t.Fatalf("generation after step = %d", f.Generation)
	}

	resp, err = http.Post(srv.URL+"/step?n=zero", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad n: status %d", resp.StatusCode)
	}

	resp, err = http.Post(srv.URL+"/cycle?row=9&col=0", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("out of range cycle: status %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/parameters")
	if err != nil {
		t.Fatal(err)
	}
	var params core.ParameterSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&params); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if v, ok := params.Lookup("rows"); !ok || v != "6" {
		t.Fatalf("rows parameter = %q", v)
	}

	resp, err = http.Get(srv.URL + "/plot.png")
	if err != nil {
		t.Fatal(err)
	}
	var png bytes.Buffer
	png.ReadFrom(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")) {
		t.Fatalf("plot: status %d", resp.StatusCode)
	}
}

func TestServerRunHonoursLimit(t *testing.T) {
	g := buildGrid(t)
	s := NewServer(g, 200, 3)
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	if err := s.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run returned %v", err)
	}
	if g.Generation() != 3 {
		t.Fatalf("ran to generation %d, want 3", g.Generation())
	}
}
