package handlers

import (
	"WikiGo/internal/config"
	"WikiGo/internal/middleware"
	"WikiGo/internal/repo"
	"WikiGo/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	receiver *service.Receiver,
	pusher *service.Pusher,
	keys repo.TransferKeyRepository,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	transferHandler := NewTransferHandler(receiver, pusher, logger, config)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)

	r.Route("/api/transfer", func(r chi.Router) {
		// эндпоинты, защищённые трансфер-ключом (их зовёт Pusher другого инстанса)
		r.Group(func(r chi.Router) {
			r.Use(middleware.WithTransferKey(keys))
			r.Post("/", transferHandler.IngestArchive)
			r.Get("/instance-info", transferHandler.InstanceInfo)
			r.Post("/attachment", transferHandler.IngestAttachment)
		})

		// эндпоинты оператора этого инстанса (cookie-аутентификация)
		r.Post("/generate-key", transferHandler.GenerateKey)
		r.Post("/transfer", transferHandler.Push)
	})

	return &Handler{Router: r}
}
