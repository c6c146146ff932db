package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/socialsentrix/sentrix/internal/reputation"
	"github.com/socialsentrix/sentrix/internal/storage"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// CredentialHeader carries an optional platform access token. Its presence
// switches the baseline fetch to the authenticated rate budget.
const CredentialHeader = "X-Platform-Token"

// ScoreHandler handles scoring endpoints.
type ScoreHandler struct {
	db      storage.Client
	engines map[string]*reputation.Engine
	logger  *zap.Logger
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(db storage.Client, engines map[string]*reputation.Engine, logger *zap.Logger) *ScoreHandler {
	return &ScoreHandler{
		db:      db,
		engines: engines,
		logger:  logger,
	}
}

// GetScore scores the most recent snapshot of a profile. With dryRun=true it
// returns a fetch cost estimate instead of performing any baseline fetches.
func (h *ScoreHandler) GetScore(w http.ResponseWriter, req bunrouter.Request) error {
	engine, ok := h.engines[strings.ToLower(req.Param("platform"))]
	if !ok {
		http.Error(w, "Unknown platform", http.StatusNotFound)
		return nil
	}

	window, err := parseWindow(req.Request)
	if err != nil {
		http.Error(w, "Invalid time window", http.StatusBadRequest)
		return nil
	}

	payload, err := h.db.GetSnapshot(req.Context(), engine.Platform().Name, req.Param("username"))
	if err != nil {
		if errors.Is(err, storage.ErrSnapshotNotFound) {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return nil
		}

		h.logger.Error("Failed to load snapshot", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	credential := req.Header.Get(CredentialHeader)
	scoreReq := &reputation.Request{
		Activity:      payload.Activity,
		Account:       payload.Account,
		Window:        window,
		Credential:    credential,
		Authenticated: credential != "" || req.Header.Get("Authorization") != "",
	}

	if dryRun, _ := strconv.ParseBool(req.URL.Query().Get("dryRun")); dryRun {
		return bunrouter.JSON(w, engine.Estimate(scoreReq))
	}

	result, err := engine.Score(req.Context(), scoreReq)
	if err != nil {
		h.logger.Error("Failed to score profile",
			zap.String("username", req.Param("username")),
			zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, result)
}

// parseWindow reads the optional start/end query parameters. A missing bound
// stays zero and defaults inside the engine.
func parseWindow(req *http.Request) (reputation.TimeWindow, error) {
	var window reputation.TimeWindow

	query := req.URL.Query()

	if start := query.Get("start"); start != "" {
		parsed, err := time.Parse(time.RFC3339, start)
		if err != nil {
			return reputation.TimeWindow{}, err
		}

		window.Start = parsed
	}

	if end := query.Get("end"); end != "" {
		parsed, err := time.Parse(time.RFC3339, end)
		if err != nil {
			return reputation.TimeWindow{}, err
		}

		window.End = parsed
	}

	return window, nil
}
