package http

import (
	"context"
	"net"
	"net/http"
	"time"
)

// NewServer returns an http.Server whose request contexts derive from ctx.
// Cancelling ctx ends long-lived event streams so Shutdown does not wait on
// them.
func NewServer(ctx context.Context, addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
}
