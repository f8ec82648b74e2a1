package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"simvator/src/sim"
	"simvator/src/traffic"
	"simvator/src/types"
)

type stepRequest struct {
	Ticks int `json:"ticks"`
}

type stepResponse struct {
	Tick   int                     `json:"tick"`
	Events []types.SimulationEvent `json:"events"`
}

type goToFloorRequest struct {
	Floor     int  `json:"floor"`
	Immediate bool `json:"immediate"`
}

type trafficNextRequest struct {
	FullReset bool `json:"full_reset"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	state, err := s.engine.GetState()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	req := stepRequest{Ticks: 1}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	tick, events, err := s.engine.Step(req.Ticks)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stepResponse{Tick: tick, Events: events})
}

func (s *Server) handleGoToFloor(w http.ResponseWriter, r *http.Request) {
	elevatorID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, sim.ErrNotFound)
		return
	}
	var req goToFloorRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.engine.GoToFloor(elevatorID, req.Floor, req.Immediate); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Reset(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleTrafficNext(w http.ResponseWriter, r *http.Request) {
	var req trafficNextRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.engine.NextTrafficRound(req.FullReset); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleTrafficInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.TrafficInfo())
}

// decodeBody parses an optional JSON body; an empty body keeps defaults.
func decodeBody(r *http.Request, dst any) error {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return sim.ErrInvalidArgument
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return sim.ErrInvalidArgument
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, sim.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, sim.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, traffic.ErrNoMoreScenarios):
		status = http.StatusConflict
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
