package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// NotifyContext is cancelled on SIGINT, SIGTERM or any extra signal given.
func NotifyContext(parent context.Context, extra ...os.Signal) (context.Context, context.CancelFunc) {
	sigs := append([]os.Signal{syscall.SIGINT, syscall.SIGTERM}, extra...)
	return signal.NotifyContext(parent, sigs...)
}
