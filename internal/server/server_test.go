package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/EVAnunit1307/citysync/pkg/geo"
	"github.com/EVAnunit1307/citysync/pkg/registry"
	"github.com/EVAnunit1307/citysync/pkg/site"
)

func newTestServer(t *testing.T) (*httptest.Server, *registry.Memory) {
	t.Helper()
	cfg := &site.Config{Name: "test", WorldBound: 200, RoadBuffer: 2}
	reg := registry.NewMemory()
	srv := New(cfg, reg, 0, log.New(io.Discard))
	ts := httptest.NewServer(srv.routes())
	t.Cleanup(ts.Close)
	return ts, reg
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestSiteEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/site")
	if err != nil {
		t.Fatal(err)
	}
	got := decode[site.Config](t, resp)
	if got.Name != "test" || got.WorldBound != 200 {
		t.Fatalf("site = %+v", got)
	}
}

func TestSingleFlow(t *testing.T) {
	ts, reg := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/mode", map[string]string{"mode": "single", "type": "detached"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("mode status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, ts.URL+"/api/click", map[string]float64{"x": 12.2, "y": 0.02, "z": -7.8})
	out := decode[map[string]any](t, resp)
	committed, _ := out["committed"].([]any)
	if len(committed) != 1 {
		t.Fatalf("click outcome = %v", out)
	}

	all, _ := reg.All()
	if len(all) != 1 {
		t.Fatalf("registry has %d buildings", len(all))
	}

	// Buildings endpoint reflects the commit.
	resp2, err := http.Get(ts.URL + "/api/buildings")
	if err != nil {
		t.Fatal(err)
	}
	list := decode[map[string]any](t, resp2)
	if int(list["count"].(float64)) != 1 {
		t.Fatalf("buildings = %v", list)
	}
}

func TestBatchFlow(t *testing.T) {
	ts, reg := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/mode", map[string]any{
		"mode": "batch",
		"batch": map[string]any{
			"total_buildings": 8,
			"spacing":         20,
			"footprint_scale": 1,
			"mix":             map[string]int{"detached_pct": 100},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("mode status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, ts.URL+"/api/click", map[string]float64{"x": 0, "y": 0.02, "z": 0})
	out := decode[map[string]any](t, resp)
	if msg, _ := out["message"].(string); !strings.HasPrefix(msg, "8/8") {
		t.Fatalf("message = %v", out["message"])
	}
	all, _ := reg.All()
	if len(all) != 8 {
		t.Fatalf("registry has %d buildings, want 8", len(all))
	}
}

func TestModeValidation(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/mode", map[string]string{"mode": "bulldoze"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown mode status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, ts.URL+"/api/mode", map[string]string{"mode": "batch"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("batch without config status = %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestValidationEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/mode", map[string]string{"mode": "single", "type": "midrise"})
	resp.Body.Close()

	resp2, err := http.Get(ts.URL + "/api/validation?x=10&z=10")
	if err != nil {
		t.Fatal(err)
	}
	out := decode[map[string]any](t, resp2)
	if out["active"] != true {
		t.Fatalf("validation = %v", out)
	}
	res := out["result"].(map[string]any)
	if res["ok"] != true {
		t.Fatalf("result = %v", res)
	}
}

func TestDeleteBuilding(t *testing.T) {
	ts, reg := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/mode", map[string]string{"mode": "single", "type": "detached"})
	resp.Body.Close()
	resp = postJSON(t, ts.URL+"/api/click", map[string]float64{"x": 0, "y": 0.02, "z": 0})
	resp.Body.Close()

	all, _ := reg.All()
	if len(all) != 1 {
		t.Fatalf("setup: %d buildings", len(all))
	}

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/buildings/"+all[0].ID, nil)
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp2.Body.Close()

	all, _ = reg.All()
	if len(all) != 0 {
		t.Fatalf("after delete: %d buildings", len(all))
	}
}

func TestPointerSocket(t *testing.T) {
	ts, reg := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/mode", map[string]string{"mode": "single", "type": "detached"})
	resp.Body.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/pointer"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Move: camera straight down over (15, -20).
	ray := geo.Ray{Origin: geo.Pt3(15, 80, -20), Dir: geo.Pt3(0, -1, 0)}
	if err := conn.WriteJSON(map[string]any{"kind": "move", "ray": ray}); err != nil {
		t.Fatal(err)
	}
	var fb pointerFeedback
	if err := conn.ReadJSON(&fb); err != nil {
		t.Fatal(err)
	}
	if fb.Kind != "feedback" || !fb.Active || !fb.Result.OK {
		t.Fatalf("feedback = %+v", fb)
	}
	if fb.Point.X != 15 || fb.Point.Z != -20 {
		t.Fatalf("projected point = %+v", fb.Point)
	}

	// Click commits at the projected point.
	if err := conn.WriteJSON(map[string]any{"kind": "click", "ray": ray}); err != nil {
		t.Fatal(err)
	}
	var reply clickReply
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatal(err)
	}
	if reply.Kind != "commit" || len(reply.Outcome.Committed) != 1 {
		t.Fatalf("reply = %+v", reply)
	}

	all, _ := reg.All()
	if len(all) != 1 {
		t.Fatalf("registry has %d buildings", len(all))
	}
}

func TestPointerSocketUnknownKind(t *testing.T) {
	ts, _ := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/pointer"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(map[string]any{"kind": "hover"}); err != nil {
		t.Fatal(err)
	}
	var out map[string]string
	if err := conn.ReadJSON(&out); err != nil {
		t.Fatal(err)
	}
	if out["kind"] != "error" {
		t.Fatalf("got %v, want error reply", out)
	}
}
