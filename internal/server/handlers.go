package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/hazzler78/sd-motion-generator/internal/logger"
	"github.com/hazzler78/sd-motion-generator/internal/statistics"
)

// MotionRequest is the body of POST /api/generate-motion. Year defaults to
// the current year and municipality to karlstad.
type MotionRequest struct {
	Topic        string            `json:"topic" validate:"required"`
	Statistics   []statistics.Type `json:"statistics" validate:"omitempty,dive,statistic_type"`
	Year         int               `json:"year" validate:"omitempty,gte=1900,lte=2100"`
	Municipality string            `json:"municipality" validate:"omitempty,municipality"`
}

// StatisticMetadata describes one statistic woven into a generated motion.
type StatisticMetadata struct {
	Type         statistics.Type `json:"type"`
	Year         int             `json:"year"`
	Municipality string          `json:"municipality"`
	Data         any             `json:"data"`
}

// MotionMetadata accompanies a generated motion.
type MotionMetadata struct {
	Topic        string              `json:"topic"`
	Municipality string              `json:"municipality"`
	Generated    string              `json:"generated"`
	AIModel      string              `json:"ai_model"`
	Statistics   []StatisticMetadata `json:"statistics"`
}

// MotionResponse is the body of a successful generation.
type MotionResponse struct {
	Motion   string         `json:"motion"`
	Metadata MotionMetadata `json:"metadata"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Välkommen till SD Motion Generator API",
		"endpoints": map[string]string{
			"generate_motion": "/api/generate-motion",
			"statistics":      "/api/statistics",
			"health":          "/health",
			"metrics":         "/metrics",
		},
	})
}

func (s *Server) handleGenerateMotion(w http.ResponseWriter, r *http.Request) {
	var req MotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "ogiltig JSON i förfrågan")
		return
	}

	req.Topic = strings.TrimSpace(req.Topic)
	req.Municipality = strings.ToLower(strings.TrimSpace(req.Municipality))
	if req.Municipality == "" {
		req.Municipality = "karlstad"
	}
	if req.Year == 0 {
		req.Year = s.clock.Now().Year()
	}

	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	ctx := r.Context()

	stats := make([]statistics.Statistic, 0, len(req.Statistics))
	for _, t := range req.Statistics {
		stats = append(stats, s.stats.FetchStatistic(ctx, t, req.Year, req.Municipality))
	}

	result, err := s.motions.Generate(ctx, req.Topic, stats)
	if err != nil {
		logger.Error("motion generation failed", "topic", req.Topic, "error", err)
		writeError(w, http.StatusInternalServerError, "Ett fel uppstod vid generering av motionen")
		return
	}

	meta := MotionMetadata{
		Topic:        req.Topic,
		Municipality: req.Municipality,
		Generated:    "success",
		AIModel:      result.Model,
		Statistics:   make([]StatisticMetadata, 0, len(result.Statistics)),
	}
	for _, stat := range result.Statistics {
		entry := StatisticMetadata{
			Type:         stat.Type,
			Year:         req.Year,
			Municipality: req.Municipality,
		}
		switch {
		case stat.Data != nil:
			entry.Data = stat.Data
		case stat.Crime != nil:
			entry.Data = stat.Crime
		}
		meta.Statistics = append(meta.Statistics, entry)
	}

	writeJSON(w, http.StatusOK, MotionResponse{Motion: result.Motion, Metadata: meta})
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	t := statistics.Type(q.Get("type"))
	if t == "" {
		writeError(w, http.StatusBadRequest, "parametern type saknas")
		return
	}
	if _, ok := s.stats.Registry().Config(t); !ok {
		writeError(w, http.StatusBadRequest, "okänd statistiktyp: "+string(t))
		return
	}

	municipality := strings.ToLower(q.Get("municipality"))
	if municipality == "" {
		municipality = "karlstad"
	}
	if _, ok := statistics.MunicipalityID(municipality); !ok && t != statistics.TypeBraStatistik {
		writeError(w, http.StatusBadRequest, "okänd kommun: "+municipality)
		return
	}

	year := s.clock.Now().Year()
	if raw := q.Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "ogiltigt år: "+raw)
			return
		}
		year = parsed
	}

	stat := s.stats.FetchStatistic(r.Context(), t, year, municipality)
	writeJSON(w, http.StatusOK, stat)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := map[string]string{
		"api":        "healthy",
		"kolada":     "unknown",
		"ai_service": "unknown",
	}

	if s.kolada != nil {
		// Previous year; the current year is often not published yet.
		_, err := s.kolada.MunicipalityData(ctx, "N01900", "1715", s.clock.Now().Year()-1)
		if err != nil {
			logger.Warn("kolada health probe failed", "error", err)
			status["kolada"] = "error"
		} else {
			status["kolada"] = "ok"
		}
	}

	if err := s.motions.Probe(ctx); err != nil {
		logger.Warn("LLM health probe failed", "error", err)
		status["ai_service"] = "error"
	} else {
		status["ai_service"] = "ok"
	}

	writeJSON(w, http.StatusOK, status)
}

func validationMessage(err error) string {
	return "ogiltig förfrågan: " + err.Error()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encoding response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
