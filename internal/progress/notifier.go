package progress

import "go.uber.org/zap"

// Фазы трансфера, о которых уведомляется административный клиент.
const (
	PhaseNegotiating    = "negotiating"
	PhaseExporting      = "exporting"
	PhaseUploading      = "uploading-archive"
	PhaseAttachments    = "transferring-attachments"
	PhaseImporting      = "importing"
	PhaseComplete       = "complete"
	PhaseAbortedPrefix  = "aborted:" // + машинный код причины
)

// Event — одно событие прогресса трансфера.
type Event struct {
	Phase      string
	Collection string
	Current    int
	Total      int
	Message    string
}

// Notifier — push-канал прогресса. Потребляется, но не принадлежит ядру
// трансфера; реализация может слать события в админский клиент.
type Notifier interface {
	Publish(e Event)
}

// LogNotifier — реализация по умолчанию: события уходят в лог.
type LogNotifier struct {
	logger *zap.SugaredLogger
}

// NewLogNotifier создаёт нотификатор поверх логгера.
func NewLogNotifier(logger *zap.SugaredLogger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Publish(e Event) {
	n.logger.Infow("transfer progress",
		"phase", e.Phase,
		"collection", e.Collection,
		"current", e.Current,
		"total", e.Total,
		"message", e.Message,
	)
}

// Aborted собирает фазу останова с машинным кодом причины.
func Aborted(code string) string { return PhaseAbortedPrefix + code }
