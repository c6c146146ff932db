package handler

import (
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/socialsentrix/sentrix/internal/reputation"
	"github.com/socialsentrix/sentrix/internal/rest/types"
	"github.com/socialsentrix/sentrix/internal/storage"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// ProfileHandler handles snapshot ingestion endpoints.
type ProfileHandler struct {
	db     storage.Client
	logger *zap.Logger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(db storage.Client, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		db:     db,
		logger: logger,
	}
}

// SubmitProfile stores a new activity snapshot for a profile.
func (h *ProfileHandler) SubmitProfile(w http.ResponseWriter, req bunrouter.Request) error {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return nil
	}

	var submission types.SubmitProfileRequest
	if err := sonic.Unmarshal(body, &submission); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil
	}

	if _, err := reputation.LookupPlatform(submission.Platform); err != nil {
		http.Error(w, "Unknown platform", http.StatusBadRequest)
		return nil
	}

	if submission.Username == "" {
		http.Error(w, "Username is required", http.StatusBadRequest)
		return nil
	}

	id, err := h.db.SaveSnapshot(req.Context(), submission.Platform, submission.Username, &storage.SnapshotPayload{
		Activity: submission.Activity,
		Account:  submission.Account,
	})
	if err != nil {
		h.logger.Error("Failed to save snapshot",
			zap.String("username", submission.Username),
			zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, types.SubmitProfileResponse{ID: id})
}
