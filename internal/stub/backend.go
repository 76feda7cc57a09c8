package stub

import (
	"context"
	"time"

	"debater/internal/transport"
)

// Backend is the in-memory transport.Backend used by offline mode and
// tests. An optional Delay simulates backend latency so spinner and busy
// states are visible during demos.
type Backend struct {
	Delay time.Duration
}

var _ transport.Backend = (*Backend)(nil)

func (b *Backend) Classify(ctx context.Context, idea string) (transport.Intent, error) {
	if err := b.wait(ctx); err != nil {
		return 0, &transport.Error{Op: "classify", Message: "interrupted", Err: err}
	}
	return Classify(idea), nil
}

func (b *Backend) Chat(ctx context.Context, idea string) (string, error) {
	if err := b.wait(ctx); err != nil {
		return "", &transport.Error{Op: "chat", Message: "interrupted", Err: err}
	}
	return Reply(idea), nil
}

func (b *Backend) Analyze(ctx context.Context, idea string) (transport.Report, error) {
	if err := b.wait(ctx); err != nil {
		return transport.Report{}, &transport.Error{Op: "analyze", Message: "interrupted", Err: err}
	}
	return ReportFor(idea), nil
}

func (b *Backend) wait(ctx context.Context) error {
	if b.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(b.Delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
