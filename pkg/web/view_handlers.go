package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"mini-livechart/pkg/chart"
	"mini-livechart/pkg/feed"
	"mini-livechart/pkg/view"
)

type errorResponse struct {
	Error string `json:"error"`
}

type intervalRequest struct {
	IntervalMS int64 `json:"interval_ms"`
}

type policyResponse struct {
	MinMS  int64 `json:"min_ms"`
	MaxMS  int64 `json:"max_ms"`
	StepMS int64 `json:"step_ms"`
}

type stateResponse struct {
	Name       string `json:"name"`
	State      string `json:"state"`
	IntervalMS int64  `json:"interval_ms"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	// Encode will never fail with known data.
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, errorResponse{Error: err.Error()})
}

// lookup resolves {name}, writing a 404 when it is unknown.
func lookup(views ViewRegistry, w http.ResponseWriter, r *http.Request) (*view.View, bool) {
	name, ok := mux.Vars(r)["name"]
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return nil, false
	}
	v, err := views.Get(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	return v, true
}

func controlError(w http.ResponseWriter, err error) {
	if errors.Is(err, view.ErrDisposed) {
		writeError(w, http.StatusGone, err)
		return
	}
	writeError(w, http.StatusInternalServerError, err)
}

func stateOf(v *view.View) stateResponse {
	st := v.Snapshot()
	return stateResponse{Name: st.Name, State: st.State, IntervalMS: st.IntervalMS}
}

// PolicyShow reports the interval bounds so clients can constrain their
// input field.
func PolicyShow(policy feed.IntervalPolicy) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, policyResponse{
			MinMS:  policy.Min.Milliseconds(),
			MaxMS:  policy.Max.Milliseconds(),
			StepMS: policy.Step.Milliseconds(),
		})
	})
}

// ViewsIndex lists the status of every registered view.
func ViewsIndex(views ViewRegistry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		out := make([]view.Status, 0)
		for _, name := range views.Names() {
			v, err := views.Get(name)
			if err != nil {
				continue
			}
			st := v.Snapshot()
			st.Config = nil
			out = append(out, st)
		}
		writeJSON(w, http.StatusOK, out)
	})
}

// ViewShow renders the chart config and feed status of a single view.
func ViewShow(views ViewRegistry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, ok := lookup(views, w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, v.Snapshot())
	})
}

// ViewDelete disposes a view and unregisters it.
func ViewDelete(views ViewRegistry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]
		if err := views.Remove(name); err != nil {
			if errors.Is(err, view.ErrViewNotFound) {
				writeError(w, http.StatusNotFound, err)
				return
			}
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func ViewStart(views ViewRegistry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, ok := lookup(views, w, r)
		if !ok {
			return
		}
		if err := v.Start(); err != nil {
			controlError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stateOf(v))
	})
}

func ViewStop(views ViewRegistry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, ok := lookup(views, w, r)
		if !ok {
			return
		}
		v.Stop()
		writeJSON(w, http.StatusOK, stateOf(v))
	})
}

func ViewToggle(views ViewRegistry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, ok := lookup(views, w, r)
		if !ok {
			return
		}
		if _, err := v.Toggle(); err != nil {
			controlError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stateOf(v))
	})
}

// ViewInterval changes the tick period. Values outside the policy are
// rejected with 400 and leave the view untouched, unless ?clamp=1 asks for
// them to be snapped onto the policy like a bounded input field would.
func ViewInterval(views ViewRegistry, policy feed.IntervalPolicy) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, ok := lookup(views, w, r)
		if !ok {
			return
		}
		var req intervalRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		d := time.Duration(req.IntervalMS) * time.Millisecond
		if clamp, _ := strconv.ParseBool(r.URL.Query().Get("clamp")); clamp {
			d = policy.Clamp(d)
		}
		if err := policy.Validate(d); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := v.SetInterval(d); err != nil {
			controlError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stateOf(v))
	})
}

func ViewExport(views ViewRegistry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, ok := lookup(views, w, r)
		if !ok {
			return
		}
		w.Header().Set("Content-Disposition", `attachment; filename="`+v.Name()+`-export.json"`)
		writeJSON(w, http.StatusOK, v.Export(time.Now()))
	})
}

// ViewPNG renders the current window server side.
func ViewPNG(views ViewRegistry, logger *slog.Logger) http.Handler {
	png := chart.NewPNGSink(chart.WithPNGLogger(logger))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, ok := lookup(views, w, r)
		if !ok {
			return
		}
		var buf bytes.Buffer
		if err := png.Render(v.Config(), &buf); err != nil {
			if errors.Is(err, chart.ErrNoData) {
				writeError(w, http.StatusNotFound, err)
				return
			}
			logger.Warn("png render failed", "view", v.Name(), "error", err)
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = buf.WriteTo(w)
	})
}
