package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/intelligrit/salesmap/internal/aggregator"
	"github.com/intelligrit/salesmap/internal/choropleth"
	"github.com/intelligrit/salesmap/internal/model"
	"github.com/intelligrit/salesmap/internal/palette"
	"github.com/intelligrit/salesmap/internal/selection"
	"github.com/intelligrit/salesmap/internal/tooltip"
	"github.com/intelligrit/salesmap/internal/view"
)

// labelWait bounds how long /api/labels?wait=1 blocks for a pending pass.
const labelWait = 2 * time.Second

// eventRequest is one interaction posted by the page. Type is one of enter,
// leave, click, mode, clear, theme or labels.
type eventRequest struct {
	Type  string          `json:"type"`
	State model.State     `json:"state,omitempty"`
	Mode  *selection.Mode `json:"mode,omitempty"`
	Dark  bool            `json:"dark,omitempty"`
	Show  bool            `json:"show,omitempty"`
}

type tooltipResponse struct {
	tooltip.Info
	Headline   string `json:"headline"`
	Subline    string `json:"subline"`
	HasSales   bool   `json:"has_sales"`
	SalesLine  string `json:"sales_line,omitempty"`
	ChangeLine string `json:"change_line,omitempty"`
}

// eventResponse carries the fills of every state so the page can repaint
// without fetching the whole SVG again.
type eventResponse struct {
	Selection selection.State                 `json:"selection"`
	Dark      bool                            `json:"dark"`
	Labels    bool                            `json:"labels"`
	Tooltip   *tooltipResponse                `json:"tooltip"`
	Fills     map[model.State]choropleth.Fill `json:"fills"`
}

type legendResponse struct {
	Title   string                `json:"title"`
	Entries []palette.LegendEntry `json:"entries"`
}

type labelsResponse struct {
	Ready  bool                  `json:"ready"`
	Labels []model.LabelPosition `json:"labels"`
}

func newTooltip(info tooltip.Info, mode selection.Mode) *tooltipResponse {
	t := &tooltipResponse{
		Info:     info,
		Headline: info.Headline(mode),
		Subline:  info.Subline(mode),
		HasSales: info.HasSales(),
	}
	if t.HasSales {
		t.SalesLine = info.SalesLine()
		t.ChangeLine = info.ChangeLine()
	}
	return t
}

func (req eventRequest) event() (selection.Event, error) {
	switch req.Type {
	case "enter":
		if req.State == "" {
			return nil, fmt.Errorf("enter needs a state")
		}
		return selection.Enter{State: req.State}, nil
	case "leave":
		return selection.Leave{}, nil
	case "click":
		if req.State == "" {
			return nil, fmt.Errorf("click needs a state")
		}
		return selection.Click{State: req.State}, nil
	case "mode":
		if req.Mode == nil {
			return nil, fmt.Errorf("mode needs a mode")
		}
		return selection.SetMode{Mode: *req.Mode}, nil
	case "clear":
		return selection.ClearSelection{}, nil
	}
	return nil, fmt.Errorf("unknown event type %q", req.Type)
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	var err error
	s.withView(w, r, func(v *view.View) { err = v.Render(&buf) })
	if err != nil {
		s.Logger.Error("rendering map", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid event: "+err.Error(), http.StatusBadRequest)
		return
	}

	var resp eventResponse
	var bad error
	s.withView(w, r, func(v *view.View) {
		switch req.Type {
		case "theme":
			v.SetDark(req.Dark)
		case "labels":
			v.SetLabels(req.Show)
		default:
			ev, err := req.event()
			if err != nil {
				bad = err
				return
			}
			v.Dispatch(ev)
		}
		resp.Selection = v.State()
		resp.Dark = v.Dark()
		resp.Labels = v.LabelsOn()
		resp.Fills = v.Fills()
		if info, ok := v.Tooltip(); ok {
			resp.Tooltip = newTooltip(info, resp.Selection.Mode)
		}
	})
	if bad != nil {
		http.Error(w, bad.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, resp)
}

func (s *Server) handleTooltip(w http.ResponseWriter, r *http.Request) {
	state := model.State(r.URL.Query().Get("state"))
	if state == "" {
		http.Error(w, "missing 'state' parameter", http.StatusBadRequest)
		return
	}
	var resp *tooltipResponse
	s.withView(w, r, func(v *view.View) {
		resp = newTooltip(v.Describe(state), v.State().Mode)
	})
	writeJSON(w, resp)
}

func (s *Server) handleLegend(w http.ResponseWriter, r *http.Request) {
	dark := s.Config.Map.Dark
	if v := r.URL.Query().Get("dark"); v != "" {
		d, err := strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "invalid 'dark' parameter", http.StatusBadRequest)
			return
		}
		dark = d
	}
	writeJSON(w, legendResponse{Title: tooltip.LegendTitle, Entries: tooltip.Legend(dark)})
}

func (s *Server) handleLabels(w http.ResponseWriter, r *http.Request) {
	wait := r.URL.Query().Get("wait") != ""
	var resp labelsResponse
	s.withView(w, r, func(v *view.View) {
		if wait {
			ctx, cancel := context.WithTimeout(r.Context(), labelWait)
			defer cancel()
			resp.Labels, resp.Ready = v.WaitLabels(ctx)
			return
		}
		resp.Labels, resp.Ready = v.Labels()
	})
	if resp.Labels == nil {
		resp.Labels = []model.LabelPosition{}
	}
	writeJSON(w, resp)
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Store.Snapshot())
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	snap := s.Store.Refresh()
	s.Logger.Info("dataset refreshed", zap.Uint64("seed", snap.Seed), zap.Uint64("version", snap.Version))
	writeJSON(w, snap)
}

func (s *Server) handleZones(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, aggregator.ZoneTotals(s.Index, s.Store.Dataset()))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if v == nil {
		_, _ = w.Write([]byte("null"))
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}
