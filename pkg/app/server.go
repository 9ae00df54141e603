package app

import (
	"context"
	"net"

	"github.com/shashiranjanraj/shopservice/config"
	"github.com/shashiranjanraj/shopservice/internal/kernel"
	"github.com/shashiranjanraj/shopservice/internal/server"
)

// Kernel builds the HTTP kernel over the application's resources.
func (a *Application) Kernel() *kernel.HTTPKernel {
	opts := kernel.Options{
		DB:                 a.ORM,
		AllowedOrigins:     config.CORSAllowedOrigins(),
		RateLimitPerMinute: config.RateLimitPerMinute(),
	}
	if a.Cache != nil {
		opts.Cache = a.Cache
	}
	return kernel.NewHTTPKernel(opts)
}

// Serve runs the HTTP server on APP_PORT until ctx is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	k := a.Kernel()
	defer k.Close()

	addr := net.JoinHostPort("", config.AppPort())
	return server.Start(ctx, addr, k.Handler(), config.ShutdownTimeout())
}
