package logger

import (
	"context"

	"github.com/getsentry/sentry-go"
)

type runIDKey struct{}

// WithRunID returns a context carrying the run id of a monitoring pass.
// When sentry is enabled the id is also set as a tag on a hub cloned for the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	ctx = context.WithValue(ctx, runIDKey{}, runID)

	if sentryClient == nil {
		return ctx
	}

	hub := sentry.CurrentHub().Clone()
	hub.BindClient(sentryClient)
	hub.Scope().SetTag("run_id", runID)
	return sentry.SetHubOnContext(ctx, hub)
}

// RunID returns the run id stored by WithRunID
func RunID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	runID, ok := ctx.Value(runIDKey{}).(string)
	return runID, ok && runID != ""
}
