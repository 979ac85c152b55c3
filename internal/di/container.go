// Package di provides dependency injection configuration for the DevFlow server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/devflowhq/devflow-server/internal/auth"
	"github.com/devflowhq/devflow-server/internal/config"
	"github.com/devflowhq/devflow-server/internal/di/providers"
	"github.com/devflowhq/devflow-server/internal/logger"
	"github.com/devflowhq/devflow-server/internal/service"
	"github.com/devflowhq/devflow-server/internal/validation"
)

// NewContainer registers every provider with a fresh injector.
// Nothing is constructed until Bootstrap invokes it.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Config, logging, and request validation.
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)
	do.Provide(injector, providers.ProvideValidator)

	// Persistence.
	do.Provide(injector, providers.ProvideStore)

	// Token issuance.
	do.Provide(injector, providers.ProvideTokenService)

	// Domain services.
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideQuestionService)
	do.Provide(injector, providers.ProvideAnswerService)
	do.Provide(injector, providers.ProvideVoteService)
	do.Provide(injector, providers.ProvideCollectionService)
	do.Provide(injector, providers.ProvideTagService)
	do.Provide(injector, providers.ProvideUserService)

	// HTTP front end.
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap eagerly constructs the full dependency graph so that any
// misconfiguration fails at startup instead of on first request. The
// HTTP server comes last and begins listening as a side effect.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.QuestionService](injector)
	_ = do.MustInvoke[*service.AnswerService](injector)
	_ = do.MustInvoke[*service.VoteService](injector)
	_ = do.MustInvoke[*service.CollectionService](injector)
	_ = do.MustInvoke[*service.TagService](injector)
	_ = do.MustInvoke[*service.UserService](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
