// Package httpserver wraps net/http with timeouts taken from Config,
// graceful shutdown on context cancellation or SIGINT/SIGTERM, and a
// liveness/readiness handler.
//
//	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
//
// Run wraps listen errors with ErrStart; Shutdown wraps errors with ErrShutdown.
package httpserver
