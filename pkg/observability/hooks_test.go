package observability

import (
	"context"
	"testing"
	"time"
)

type recordingBuildHooks struct {
	fetchStarts int
	fetchDone   int
	transforms  int
}

func (h *recordingBuildHooks) OnFetchStart(context.Context, string, string) { h.fetchStarts++ }
func (h *recordingBuildHooks) OnFetchComplete(context.Context, string, string, time.Duration, error) {
	h.fetchDone++
}
func (h *recordingBuildHooks) OnTransformComplete(context.Context, string, int, time.Duration, error) {
	h.transforms++
}

func TestBuildHooksRegistration(t *testing.T) {
	defer Reset()

	rec := &recordingBuildHooks{}
	SetBuildHooks(rec)

	ctx := context.Background()
	Build().OnFetchStart(ctx, "signal", "a.bw")
	Build().OnFetchComplete(ctx, "signal", "a.bw", time.Millisecond, nil)
	Build().OnTransformComplete(ctx, "subtract", 200, time.Millisecond, nil)

	if rec.fetchStarts != 1 || rec.fetchDone != 1 || rec.transforms != 1 {
		t.Errorf("hook counts = %+v, want one of each", rec)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	defer Reset()

	rec := &recordingBuildHooks{}
	SetBuildHooks(rec)
	SetBuildHooks(nil)

	Build().OnFetchStart(context.Background(), "signal", "a.bw")
	if rec.fetchStarts != 1 {
		t.Errorf("nil registration should keep the current hooks")
	}
}

func TestResetRestoresNoop(t *testing.T) {
	rec := &recordingBuildHooks{}
	SetBuildHooks(rec)
	Reset()

	if _, ok := Build().(NoopBuildHooks); !ok {
		t.Errorf("Reset() did not restore no-op build hooks")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Errorf("Reset() did not restore no-op render hooks")
	}
}
