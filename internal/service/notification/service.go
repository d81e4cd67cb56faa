package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/sse"
)

// EventName is the SSE event name used for every notification.
const EventName = "notification"

// Config holds notification service configuration
type Config struct {
	WorkerCount int // default: 2
	QueueSize   int // default: 1000
}

type service struct {
	hub    *sse.Hub
	config Config

	queue    chan notification.Notification
	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewNotificationService creates a new notification service with background workers
func NewNotificationService(hub *sse.Hub, cfg Config) notification.Service {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		hub:    hub,
		config: cfg,
		queue:  make(chan notification.Notification, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("notification service started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)

	return s
}

// worker drains the queue and pushes each notification to the hub.
func (s *service) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case n := <-s.queue:
			s.deliver(id, n)
		case <-s.stopCh:
			// flush what is already queued
			for {
				select {
				case n := <-s.queue:
					s.deliver(id, n)
				default:
					return
				}
			}
		}
	}
}

func (s *service) deliver(worker int, n notification.Notification) {
	delivered := s.hub.PublishToMany(n.Recipients, sse.Event{
		Name: EventName,
		Data: n.Payload(),
	})
	slog.Debug("notification delivered",
		"worker", worker,
		"type", n.Type,
		"recipients", len(n.Recipients),
		"streams", delivered,
	)
}

func (s *service) Queue(ctx context.Context, n notification.Notification) {
	if len(n.Recipients) == 0 {
		return
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	select {
	case s.queue <- n:
	case <-s.stopCh:
	default:
		slog.WarnContext(ctx, "notification queue full, dropping notification", "type", n.Type)
	}
}

func (s *service) Subscribe(ctx context.Context, username string) (<-chan sse.Event, func()) {
	ch, cleanup := s.hub.Subscribe(username)
	slog.DebugContext(ctx, "event stream opened", "username", username, "streams", s.hub.SubscriberCount(username), "total_streams", s.hub.TotalSubscribers())
	return ch, cleanup
}

// Stop gracefully stops the notification service
func (s *service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.wg.Wait()
		slog.Info("notification service stopped")
	})
}
