package api

import "github.com/devflowhq/devflow-server/internal/service"

// Services bundles the application services consumed by the handlers.
type Services struct {
	Auth        *service.AuthService
	Questions   *service.QuestionService
	Answers     *service.AnswerService
	Votes       *service.VoteService
	Collections *service.CollectionService
	Tags        *service.TagService
	Users       *service.UserService
}
