// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package listener accepts TCP voting clients.

Each accepted connection gets its own goroutine running a
handlers.SessionHandler against the shared election:

	srv, err := listener.Listen(":5000", e, cfg, logger)
	if err != nil {
		return err
	}
	err = srv.Serve(ctx)

A failed Accept is logged and retried with backoff. Cancelling ctx (or
calling Close) stops the listener and closes every open connection; Serve
returns once all sessions have finished.
*/
package listener
