package notification

import (
	"context"

	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/sse"
)

// Service defines the notification service interface
type Service interface {
	// Queue hands the notification to the background workers. It never blocks
	// on slow subscribers and drops the notification when the queue is full.
	Queue(ctx context.Context, n Notification)

	// SSE subscription
	Subscribe(ctx context.Context, username string) (<-chan sse.Event, func())

	// Lifecycle
	Stop()
}
