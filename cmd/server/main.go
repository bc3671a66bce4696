package main

import (
	"WikiGo/internal/archive"
	"WikiGo/internal/config"
	"WikiGo/internal/handlers"
	"WikiGo/internal/middleware"
	"WikiGo/internal/progress"
	"WikiGo/internal/repo"
	"WikiGo/internal/service"
	"WikiGo/internal/storage"
	"net/http"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	fileStorage, err := storage.New(cfg)
	if err != nil {
		sugar.Fatalw("failed to initialize file storage", "error", err)
	}

	keyRepo := repo.NewTransferKeyRepository(gormDB)
	attachmentRepo := repo.NewAttachmentRepository(gormDB)
	userService := service.NewUserService(repo.NewUserRepository(gormDB))

	notifier := progress.NewLogNotifier(sugar)
	importer := archive.NewImporter(gormDB, cfg.AppVersion, sugar)
	exporter := archive.NewExporter(gormDB, cfg.ArchiveDir, cfg.AppVersion, sugar)

	receiver := service.NewReceiver(cfg, keyRepo, importer, fileStorage, notifier, sugar)
	pusher := service.NewPusher(cfg, exporter, attachmentRepo, fileStorage, nil, notifier, sugar)

	h := handlers.NewHandler(userService, receiver, pusher, keyRepo, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"SiteURL", cfg.SiteURL,
		"AppVersion", cfg.AppVersion,
		"FileUploadType", cfg.FileUploadType,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
