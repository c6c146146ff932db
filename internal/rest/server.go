// Package rest exposes snapshot ingestion and scoring over HTTP.
package rest

import (
	"net/http"

	"github.com/socialsentrix/sentrix/internal/reputation"
	"github.com/socialsentrix/sentrix/internal/rest/handler"
	"github.com/socialsentrix/sentrix/internal/storage"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// Server implements the REST API service.
type Server struct {
	scoreHandler   *handler.ScoreHandler
	profileHandler *handler.ProfileHandler
}

// NewServer creates a new REST API server. Engines are keyed by lowercase
// platform name.
func NewServer(db storage.Client, engines map[string]*reputation.Engine, logger *zap.Logger) http.Handler {
	server := &Server{
		scoreHandler:   handler.NewScoreHandler(db, engines, logger),
		profileHandler: handler.NewProfileHandler(db, logger),
	}

	router := bunrouter.New()

	router.WithGroup("/v1", func(g *bunrouter.Group) {
		g.POST("/profiles", server.profileHandler.SubmitProfile)
		g.GET("/profiles/:platform/:username/score", server.scoreHandler.GetScore)
	})

	return router
}
