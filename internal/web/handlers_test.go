package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/intelligrit/salesmap/internal/aggregator"
	"github.com/intelligrit/salesmap/internal/choropleth"
	"github.com/intelligrit/salesmap/internal/config"
	"github.com/intelligrit/salesmap/internal/geometry"
	"github.com/intelligrit/salesmap/internal/mockdata"
	"github.com/intelligrit/salesmap/internal/selection"
	"github.com/intelligrit/salesmap/internal/store"
)

func testServer(t *testing.T, mutate func(*config.Config)) (*Server, http.Handler) {
	t.Helper()
	cfg := config.Defaults()
	cfg.Zones = config.DefaultZones()
	cfg.Regions = config.DefaultRegions()
	cfg.Labels.Delay = 0
	if mutate != nil {
		mutate(cfg)
	}

	idx := cfg.Index()
	m, err := geometry.Nigeria()
	if err != nil {
		t.Fatalf("loading geometry: %v", err)
	}
	st := store.New(mockdata.New(idx, cfg.Data.Seed, mockdata.WithColors(cfg.RegionColors())))

	srv := New(cfg, st, idx, m, nil, nil)
	t.Cleanup(srv.Close)
	h, err := srv.Handler()
	if err != nil {
		t.Fatalf("building handler: %v", err)
	}
	return srv, h
}

// client replays the view cookie like a browser would.
type client struct {
	t      *testing.T
	h      http.Handler
	cookie *http.Cookie
}

func (c *client) do(method, target, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.h.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == CookieName {
			c.cookie = ck
		}
	}
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return v
}

func TestHandleMap(t *testing.T) {
	_, h := testServer(t, nil)
	c := &client{t: t, h: h}

	w := c.do("GET", "/api/map.svg", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("unexpected content type %q", ct)
	}
	if !strings.Contains(w.Body.String(), `data-state="Lagos"`) {
		t.Error("expected Lagos path in SVG")
	}
	if c.cookie == nil {
		t.Fatal("expected a view cookie")
	}
}

func TestHandleEventsFlow(t *testing.T) {
	srv, h := testServer(t, nil)
	c := &client{t: t, h: h}

	w := c.do("POST", "/api/events", `{"type":"enter","state":"Oyo"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	resp := decode[eventResponse](t, w)
	if resp.Selection.HoveredRegion != "Ibadan" {
		t.Errorf("expected hovered region Ibadan, got %q", resp.Selection.HoveredRegion)
	}
	if resp.Tooltip == nil || resp.Tooltip.Headline != "West Zone" {
		t.Fatalf("expected West Zone tooltip, got %+v", resp.Tooltip)
	}
	if !resp.Tooltip.HasSales || !strings.HasPrefix(resp.Tooltip.SalesLine, "Sales: ₦") {
		t.Errorf("expected a sales line, got %+v", resp.Tooltip)
	}

	resp = decode[eventResponse](t, c.do("POST", "/api/events", `{"type":"click","state":"Oyo"}`))
	if resp.Selection.SelectedRegion != "Ibadan" {
		t.Errorf("expected Ibadan selected, got %q", resp.Selection.SelectedRegion)
	}

	resp = decode[eventResponse](t, c.do("POST", "/api/events", `{"type":"mode","mode":"state"}`))
	if resp.Selection.Mode.String() != "state" {
		t.Errorf("expected state mode, got %s", resp.Selection.Mode)
	}
	if resp.Selection.SelectedRegion != "Ibadan" {
		t.Error("expected selection to survive the mode switch")
	}

	resp = decode[eventResponse](t, c.do("POST", "/api/events", `{"type":"clear"}`))
	if resp.Selection.SelectedRegion != "" || resp.Selection.SelectedState != "" {
		t.Errorf("expected cleared selection, got %+v", resp.Selection)
	}

	resp = decode[eventResponse](t, c.do("POST", "/api/events", `{"type":"theme","dark":true}`))
	if !resp.Dark {
		t.Error("expected dark theme")
	}

	if n := srv.Views(); n != 1 {
		t.Errorf("expected 1 mounted view, got %d", n)
	}
}

func TestHandleEventsReturnsFills(t *testing.T) {
	_, h := testServer(t, nil)
	c := &client{t: t, h: h}

	resp := decode[eventResponse](t, c.do("POST", "/api/events", `{"type":"enter","state":"Oyo"}`))
	if len(resp.Fills) != 37 {
		t.Fatalf("expected fills for 37 states, got %d", len(resp.Fills))
	}
	if got := resp.Fills["Osun"].Highlight; got != choropleth.HighlightHoveredRegion {
		t.Errorf("expected Osun to show the hovered region, got %q", got)
	}
	if got := resp.Fills["Kano"].Highlight; got != choropleth.HighlightNone {
		t.Errorf("expected Kano untouched, got %q", got)
	}
}

func TestModeEventKeepsModeWhenInvalid(t *testing.T) {
	_, h := testServer(t, nil)
	c := &client{t: t, h: h}

	c.do("POST", "/api/events", `{"type":"mode","mode":"state"}`)
	if w := c.do("POST", "/api/events", `{"type":"mode"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	resp := decode[eventResponse](t, c.do("POST", "/api/events", `{"type":"leave"}`))
	if resp.Selection.Mode != selection.ModeState {
		t.Errorf("expected state mode to stick, got %s", resp.Selection.Mode)
	}
}

func TestViewsAreIsolated(t *testing.T) {
	srv, h := testServer(t, nil)
	a := &client{t: t, h: h}
	b := &client{t: t, h: h}

	a.do("POST", "/api/events", `{"type":"click","state":"Oyo"}`)
	resp := decode[eventResponse](t, b.do("POST", "/api/events", `{"type":"leave"}`))
	if resp.Selection.SelectedRegion != "" {
		t.Errorf("selection leaked between views: %+v", resp.Selection)
	}
	if n := srv.Views(); n != 2 {
		t.Errorf("expected 2 mounted views, got %d", n)
	}
}

func TestHandleEventsInvalid(t *testing.T) {
	_, h := testServer(t, nil)
	c := &client{t: t, h: h}

	for _, body := range []string{`{"type":"zoom"}`, `{"type":"click"}`, `not json`, `{"type":"mode","mode":"zone"}`, `{"type":"mode"}`} {
		if w := c.do("POST", "/api/events", body); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestHandleEventsThrottled(t *testing.T) {
	_, h := testServer(t, func(cfg *config.Config) { cfg.Server.EventsPerSecond = 0.001 })
	c := &client{t: t, h: h}

	if w := c.do("POST", "/api/events", `{"type":"leave"}`); w.Code != http.StatusOK {
		t.Fatalf("expected first event to pass, got %d", w.Code)
	}
	if w := c.do("POST", "/api/events", `{"type":"leave"}`); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}

	body := c.do("GET", "/metrics", "").Body.String()
	if !strings.Contains(body, "salesmap_events_throttled_total 1") {
		t.Errorf("expected throttle counter in metrics, got:\n%s", body)
	}
}

func TestThrottleIsPerView(t *testing.T) {
	srv, h := testServer(t, func(cfg *config.Config) { cfg.Server.EventsPerSecond = 0.001 })
	busy := &client{t: t, h: h}
	quiet := &client{t: t, h: h}

	busy.do("POST", "/api/events", `{"type":"enter","state":"Oyo"}`)
	for i := 0; i < 5; i++ {
		if w := busy.do("POST", "/api/events", `{"type":"leave"}`); w.Code != http.StatusTooManyRequests {
			t.Fatalf("expected busy browser to be throttled, got %d", w.Code)
		}
	}
	if w := quiet.do("POST", "/api/events", `{"type":"click","state":"Lagos"}`); w.Code != http.StatusOK {
		t.Fatalf("expected other browser to pass, got %d", w.Code)
	}
	if n := srv.Views(); n != 2 {
		t.Errorf("expected 2 mounted views, got %d", n)
	}
}

func TestHandleTooltip(t *testing.T) {
	_, h := testServer(t, nil)
	c := &client{t: t, h: h}

	resp := decode[tooltipResponse](t, c.do("GET", "/api/tooltip?state=Kano", ""))
	if resp.Region != "N/A" || resp.Zone != "N/A" || resp.HasSales {
		t.Errorf("expected N/A tooltip for unmapped state, got %+v", resp)
	}

	if w := c.do("GET", "/api/tooltip", ""); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without state, got %d", w.Code)
	}
}

func TestHandleLegend(t *testing.T) {
	_, h := testServer(t, nil)
	c := &client{t: t, h: h}

	resp := decode[legendResponse](t, c.do("GET", "/api/legend?dark=true", ""))
	if resp.Title != "Performance (% Change)" {
		t.Errorf("unexpected title %q", resp.Title)
	}
	if len(resp.Entries) != 6 {
		t.Errorf("expected 6 legend entries, got %d", len(resp.Entries))
	}
	if w := c.do("GET", "/api/legend?dark=maybe", ""); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad dark flag, got %d", w.Code)
	}
}

func TestHandleLabels(t *testing.T) {
	_, h := testServer(t, nil)
	c := &client{t: t, h: h}

	resp := decode[labelsResponse](t, c.do("GET", "/api/labels?wait=1", ""))
	if !resp.Ready || len(resp.Labels) == 0 {
		t.Fatalf("expected placed labels, got %+v", resp)
	}

	c.do("POST", "/api/events", `{"type":"labels","show":false}`)
	resp = decode[labelsResponse](t, c.do("GET", "/api/labels", ""))
	if resp.Ready || len(resp.Labels) != 0 {
		t.Errorf("expected no labels when hidden, got %+v", resp)
	}
}

func TestHandleDatasetRefresh(t *testing.T) {
	_, h := testServer(t, nil)
	c := &client{t: t, h: h}

	before := decode[store.Snapshot](t, c.do("GET", "/api/dataset", ""))
	if before.Version != 1 || len(before.Dataset) != 15 {
		t.Fatalf("unexpected initial snapshot: version %d, %d regions", before.Version, len(before.Dataset))
	}

	after := decode[store.Snapshot](t, c.do("POST", "/api/dataset/refresh", ""))
	if after.Version != 2 || after.Seed != before.Seed+1 {
		t.Errorf("expected version 2 with next seed, got %d seed %d", after.Version, after.Seed)
	}

	if w := c.do("DELETE", "/api/dataset/refresh", ""); w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for DELETE refresh, got %d", w.Code)
	}
}

func TestHandleZones(t *testing.T) {
	_, h := testServer(t, nil)
	c := &client{t: t, h: h}

	zones := decode[[]aggregator.ZoneTotal](t, c.do("GET", "/api/zones", ""))
	if len(zones) != 3 {
		t.Fatalf("expected 3 zones, got %d", len(zones))
	}
	for _, z := range zones {
		if z.TotalSales <= 0 {
			t.Errorf("expected sales in zone %s", z.Zone)
		}
	}
}

func TestStaticIndex(t *testing.T) {
	_, h := testServer(t, nil)
	c := &client{t: t, h: h}

	w := c.do("GET", "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "/api/events") {
		t.Error("expected index page to talk to the event API")
	}
}

func TestEvictsOldestView(t *testing.T) {
	srv, h := testServer(t, nil)
	first := &client{t: t, h: h}
	first.do("GET", "/api/labels", "")

	for i := 0; i < MaxViews; i++ {
		(&client{t: t, h: h}).do("GET", "/api/labels", "")
	}
	if n := srv.Views(); n != MaxViews {
		t.Fatalf("expected %d views, got %d", MaxViews, n)
	}

	id := first.cookie.Value
	first.do("GET", "/api/labels", "")
	if first.cookie.Value == id {
		t.Error("expected the oldest view to be evicted and remounted")
	}
}

func TestEvictionDoesNotWaitForBusyView(t *testing.T) {
	srv, h := testServer(t, nil)
	busy := &client{t: t, h: h}
	busy.do("GET", "/api/labels", "")

	srv.mu.Lock()
	sess := srv.views[busy.cookie.Value]
	srv.mu.Unlock()
	sess.mu.Lock()
	defer sess.mu.Unlock()

	for i := 1; i < MaxViews; i++ {
		(&client{t: t, h: h}).do("GET", "/api/labels", "")
	}

	done := make(chan int, 1)
	go func() {
		// A fresh browser evicts the busy view while it is still locked.
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("GET", "/api/labels", nil))
		done <- w.Code
	}()
	select {
	case code := <-done:
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("mounting a view blocked on the evicted busy view")
	}
	if n := srv.Views(); n != MaxViews {
		t.Errorf("expected %d views, got %d", MaxViews, n)
	}
}
