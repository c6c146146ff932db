package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/socialsentrix/sentrix/internal/rest"
	"github.com/socialsentrix/sentrix/internal/setup"
	"go.uber.org/zap"
)

// RESTLogDir specifies where REST server log files are stored.
const RESTLogDir = "logs/rest_logs"

// Server timeouts. Write timeout is generous because a scoring call may sit
// out several throttle backoffs while fetching baselines.
const (
	ReadTimeout     = 5 * time.Second
	WriteTimeout    = 10 * time.Minute
	ShutdownTimeout = 30 * time.Second
)

func main() {
	app, err := setup.InitializeApp(context.Background(), RESTLogDir, true)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.Cleanup()

	handler := rest.NewServer(app.DB, app.Engines(), app.Logger)

	addr := fmt.Sprintf("%s:%d", app.Config.Server.Host, app.Config.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}

	go func() {
		log.Printf("REST server started on %s", addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.Logger.Error("Failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	app.Logger.Info("Shutting down REST server...")

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		app.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	app.Logger.Info("Server gracefully stopped")
}
