package v1

import (
	"context"
	"testing"
	"time"

	"github.com/harborgrid/gridiq/internal/adapter/assist"
	"github.com/harborgrid/gridiq/internal/config"
	"github.com/harborgrid/gridiq/internal/service"
	"github.com/harborgrid/gridiq/internal/transport/ws"
	"github.com/harborgrid/gridiq/policy"
	"github.com/harborgrid/gridiq/tests/helpers"
)

// testScale compresses session timelines for handler tests.
const testScale = 0.02

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	st := helpers.NewTestSQLiteStore(t)
	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("failed to create policy engine: %v", err)
	}
	client := assist.NewClient("http://127.0.0.1:1", 200*time.Millisecond)

	hub := ws.NewHub()
	stop := make(chan struct{})
	go hub.Run(stop)
	t.Cleanup(func() { close(stop) })

	svc := service.New(st, client, config.Load(), engine, hub)
	svc.SetTimeScale(testScale)
	t.Cleanup(svc.Shutdown)

	return NewHandler(svc, hub)
}
