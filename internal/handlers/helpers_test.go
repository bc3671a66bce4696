package handlers_test

import (
	"WikiGo/internal/archive"
	"WikiGo/internal/config"
	"WikiGo/internal/handlers"
	"WikiGo/internal/middleware"
	"WikiGo/internal/model"
	"WikiGo/internal/progress"
	"WikiGo/internal/repo"
	"WikiGo/internal/service"
	"WikiGo/internal/storage"
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// testEnv — полный инстанс поверх in-memory SQLite и локального хранилища.
type testEnv struct {
	cfg      *config.Config
	db       *gorm.DB
	router   http.Handler
	receiver *service.Receiver
	storage  storage.FileStorage
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: "file::memory:"}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Page{},
		&model.Revision{},
		&model.Attachment{},
		&model.Config{},
		&model.TransferKey{},
	); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}

func newTestEnv(t *testing.T, mutate func(*config.Config)) *testEnv {
	t.Helper()
	cfg := &config.Config{
		AuthSecret:     "test-secret",
		AppVersion:     "5.0.0",
		Installed:      true,
		SiteURL:        "http://wiki.local",
		FileUploadType: "local",
		LocalFileDir:   t.TempDir(),
		ArchiveDir:     t.TempDir(),
	}
	if mutate != nil {
		mutate(cfg)
	}

	db := newTestDB(t)
	logger := zap.NewNop().Sugar()
	st, err := storage.New(cfg)
	require.NoError(t, err)

	keys := repo.NewTransferKeyRepository(db)
	notifier := progress.NewLogNotifier(logger)
	importer := archive.NewImporter(db, cfg.AppVersion, logger)
	exporter := archive.NewExporter(db, cfg.ArchiveDir, cfg.AppVersion, logger)

	receiver := service.NewReceiver(cfg, keys, importer, st, notifier, logger)
	pusher := service.NewPusher(cfg, exporter, repo.NewAttachmentRepository(db), st, nil, notifier, logger)
	userSvc := service.NewUserService(repo.NewUserRepository(db))

	h := handlers.NewHandler(userSvc, receiver, pusher, keys, logger, cfg)
	return &testEnv{cfg: cfg, db: db, router: h.Router, receiver: receiver, storage: st}
}

func addAuthCookie(t *testing.T, req *http.Request, userID int64, admin bool) {
	t.Helper()
	rr := httptest.NewRecorder()
	require.NoError(t, middleware.SetLoginCookie(rr, userID, admin, "test-secret"))
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}

// issueKey выдаёт через Receiver ключ, привязанный к siteURL.
func issueKey(t *testing.T, env *testEnv, siteURL string) string {
	t.Helper()
	u, err := url.Parse(siteURL)
	require.NoError(t, err)
	keyString, err := env.receiver.CreateTransferKey(context.Background(), u)
	require.NoError(t, err)
	return keyString
}

// multipartBody собирает multipart-форму с одним файлом и полями.
func multipartBody(t *testing.T, fileField, fileName string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	part, err := mw.CreateFormFile(fileField, fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}
