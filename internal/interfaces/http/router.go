package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	userusecases "stagedesk/internal/application/user/usecases"
	"stagedesk/internal/domain/ticket"
	"stagedesk/internal/infrastructure/auth"
	"stagedesk/internal/infrastructure/config"
	"stagedesk/internal/infrastructure/notification"
	"stagedesk/internal/infrastructure/permission"
	"stagedesk/internal/infrastructure/ratelimit"
	assignmenthandlers "stagedesk/internal/interfaces/http/handlers/assignment"
	attachmenthandlers "stagedesk/internal/interfaces/http/handlers/attachment"
	tickethandlers "stagedesk/internal/interfaces/http/handlers/ticket"
	userhandlers "stagedesk/internal/interfaces/http/handlers/user"
	"stagedesk/internal/interfaces/http/middleware"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/logger"
)

// Router owns the gin engine and the wired handler graph.
type Router struct {
	engine            *gin.Engine
	userHandler       *userhandlers.UserHandler
	ticketHandler     *tickethandlers.TicketHandler
	assignmentHandler *assignmenthandlers.AssignmentHandler
	attachmentHandler *attachmenthandlers.AttachmentHandler
	authMiddleware    *middleware.AuthMiddleware
	rateLimiter       *middleware.RateLimitMiddleware
	policy            *authorization.Policy
	logger            logger.Interface
}

// tokenIssuerAdapter bridges the JWT service into the login use case.
type tokenIssuerAdapter struct {
	*auth.JWTService
}

func (a *tokenIssuerAdapter) Issue(userUUID string, role authorization.UserRole, isManager bool) (*userusecases.TokenPair, error) {
	pair, err := a.JWTService.Generate(userUUID, role, isManager)
	if err != nil {
		return nil, err
	}
	return &userusecases.TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

// notifier is the union of the notification surfaces the use cases need, so
// the SMTP and noop implementations stay swappable behind one variable.
type notifier interface {
	NotifyTicketAssigned(to string, t *ticket.Ticket, assignedByName string) error
	NotifyTicketResolved(to string, t *ticket.Ticket) error
	NotifyDeletionApproved(to, ticketNumber, fileName, otpCode string) error
	NotifyDeletionRejected(to, ticketNumber, fileName, reason string) error
}

// NewRouter wires repositories, use cases and handlers onto a gin engine.
func NewRouter(gdb *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	engine := gin.New()

	repos := newRepositories(gdb)

	enforcer, err := permission.NewEnforcer(gdb, cfg.Casbin.ModelPath, log)
	if err != nil {
		return nil, err
	}
	if err := permission.InitAllPermissions(enforcer.Casbin(), log); err != nil {
		return nil, err
	}
	policy := authorization.NewPolicy(enforcer)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)

	var mailer notifier = notification.NewNoopNotifier()
	if cfg.Email.Enabled {
		mailer = notification.NewSMTPNotifier(&cfg.Email)
	}

	store, err := newFileStore(&cfg.Storage)
	if err != nil {
		return nil, err
	}

	var limiter ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter = ratelimit.NewRedisRateLimiter(redisClient)
	}

	ucs := newUseCases(repos, &tokenIssuerAdapter{jwtService}, hasher, mailer, store, log)

	return &Router{
		engine:            engine,
		userHandler:       newUserHandler(ucs),
		ticketHandler:     newTicketHandler(ucs),
		assignmentHandler: newAssignmentHandler(ucs),
		attachmentHandler: newAttachmentHandler(ucs),
		authMiddleware:    middleware.NewAuthMiddleware(jwtService, repos.users, log),
		rateLimiter:       middleware.NewRateLimitMiddleware(limiter, &cfg.RateLimit),
		policy:            policy,
		logger:            log,
	}, nil
}

// Engine exposes the underlying gin engine, mainly for tests and the server
// command.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
