package notifier

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Worker drains the notification queue in the background. Delivery to mail
// or SMS gateways happens downstream, this worker records and acks events.
type Worker struct {
	service  *Service
	log      *zap.Logger
	batch    int
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewWorker(service *Service, log *zap.Logger, batch int) *Worker {
	if batch <= 0 {
		batch = 10
	}
	return &Worker{
		service:  service,
		log:      log,
		batch:    batch,
		interval: 2 * time.Second,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (w *Worker) Start() {
	go w.run()
}

// Stop blocks until the current tick finishes.
func (w *Worker) Stop() {
	close(w.stop)
	<-w.done
}

func (w *Worker) run() {
	defer close(w.done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.tick()
		}
	}
}

func (w *Worker) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()

	items, err := w.service.FetchN(ctx, w.batch)
	if err != nil {
		w.log.Error("notifier.Worker error fetching messages", zap.Error(err))
		return
	}

	for _, item := range items {
		w.log.Info("notifier.Worker delivering event",
			zap.String("event_id", item.Message.ID),
			zap.String("event_type", string(item.Message.EventType)),
			zap.Time("occurred_at", item.Message.OccurredAt),
		)
		if err := w.service.AckMessage(item.DeliveryTag); err != nil {
			w.log.Error("notifier.Worker error acking message",
				zap.String("event_id", item.Message.ID),
				zap.Error(err),
			)
		}
	}
}
