package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/devflowhq/devflow-server/internal/api"
	"github.com/devflowhq/devflow-server/internal/auth"
	"github.com/devflowhq/devflow-server/internal/config"
	"github.com/devflowhq/devflow-server/internal/logger"
	"github.com/devflowhq/devflow-server/internal/service"
)

// HTTPServerHandle ties the http.Server lifecycle to the injector.
type HTTPServerHandle struct {
	*http.Server
	handler *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := h.Server.Shutdown(ctx)
	h.handler.Close()
	return err
}

// ProvideHTTPServer assembles the API handler and starts listening.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)

	services := &api.Services{
		Auth:        do.MustInvoke[*service.AuthService](i),
		Questions:   do.MustInvoke[*service.QuestionService](i),
		Answers:     do.MustInvoke[*service.AnswerService](i),
		Votes:       do.MustInvoke[*service.VoteService](i),
		Collections: do.MustInvoke[*service.CollectionService](i),
		Tags:        do.MustInvoke[*service.TagService](i),
		Users:       do.MustInvoke[*service.UserService](i),
	}

	handler := api.NewServer(cfg, services, tokenService, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv, handler: handler}, nil
}
