// internal/app/system/workers/outboxdispatch.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gourmetta/haccphub/internal/app/store/outbox"
	"github.com/gourmetta/haccphub/internal/app/store/settings"
	"github.com/gourmetta/haccphub/internal/app/system/mailer"
	"github.com/gourmetta/haccphub/internal/app/system/telegram"
	"github.com/gourmetta/haccphub/internal/domain/models"
)

// batchSize caps how many entries one drain pass picks up.
const batchSize = 50

// OutboxDispatch is a background worker that drains pending outbox
// entries. Each entry gets exactly one delivery attempt; the attempt's
// outcome is recorded on the entry and a failure is never retried.
type OutboxDispatch struct {
	outbox   *outbox.Store
	settings *settings.Store
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewOutboxDispatch creates a new outbox dispatch worker.
func NewOutboxDispatch(outboxStore *outbox.Store, settingsStore *settings.Store, logger *zap.Logger, interval time.Duration) *OutboxDispatch {
	return &OutboxDispatch{
		outbox:   outboxStore,
		settings: settingsStore,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background dispatch loop.
func (w *OutboxDispatch) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("outbox dispatch worker started",
		zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *OutboxDispatch) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("outbox dispatch worker stopped")
}

func (w *OutboxDispatch) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.drain()
		}
	}
}

func (w *OutboxDispatch) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pending, err := w.outbox.ListPending(ctx, batchSize)
	if err != nil {
		w.log.Error("failed to list pending outbox entries", zap.Error(err))
		return
	}
	if len(pending) == 0 {
		return
	}

	cfg, err := w.settings.Get(ctx)
	if err != nil {
		w.log.Error("failed to load notification settings", zap.Error(err))
		return
	}

	var sent, failed int
	for i := range pending {
		entry := &pending[i]
		attemptErr := w.deliver(ctx, entry, &cfg)
		if attemptErr != nil {
			failed++
			w.log.Error("outbox delivery failed",
				zap.String("kind", entry.Kind),
				zap.String("token", entry.Token),
				zap.Error(attemptErr))
		} else {
			sent++
		}
		if err := w.outbox.MarkDone(ctx, entry.ID, attemptErr); err != nil {
			w.log.Error("failed to mark outbox entry done",
				zap.String("token", entry.Token),
				zap.Error(err))
		}
	}

	w.log.Info("drained outbox",
		zap.Int("sent", sent),
		zap.Int("failed", failed))
}

// deliver makes the single attempt for one entry. A channel whose
// configuration went blank since enqueue is skipped without error.
func (w *OutboxDispatch) deliver(ctx context.Context, entry *models.OutboxEntry, cfg *models.NotificationSettings) error {
	switch entry.Kind {
	case models.OutboxEmail:
		if !cfg.EmailConfigured() {
			return nil
		}
		m := mailer.New(mailer.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.MailFrom,
		})
		return m.Send(mailer.Email{
			To:       entry.Recipient,
			Subject:  entry.Subject,
			TextBody: entry.Body,
		})
	case models.OutboxTelegram:
		if !cfg.TelegramConfigured() {
			return nil
		}
		return telegram.New(cfg.TelegramToken, cfg.TelegramChatID).SendMessage(ctx, entry.Body)
	default:
		w.log.Warn("unknown outbox entry kind", zap.String("kind", entry.Kind))
		return nil
	}
}
