package simos_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/simos"
	"github.com/viant/simos/model"
	"github.com/viant/simos/service/event"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newService(t *testing.T, options ...simos.Option) *simos.Service {
	t.Helper()
	srv, err := simos.New(append([]simos.Option{simos.WithMemory(1024, 100), simos.WithDisks(3)}, options...)...)
	require.NoError(t, err)
	return srv
}

func TestService_OutOfMemoryScenario(t *testing.T) {
	ctx := context.Background()
	srv := newService(t)

	assert.True(t, srv.NewProcess(ctx, 500, 1))
	assert.Equal(t, model.PID(2), srv.CPU())

	assert.False(t, srv.NewProcess(ctx, 1000, 1))
	assert.Equal(t, []model.Region{
		{Address: 0, Size: 100, PID: model.OSPID},
		{Address: 100, Size: 500, PID: 2},
	}, srv.Memory())
	assert.Empty(t, srv.ReadyQueue())
	assert.Len(t, srv.Processes(ctx), 2)
}

func TestService_ForkExitScenario(t *testing.T) {
	ctx := context.Background()
	srv := newService(t)

	assert.True(t, srv.NewProcess(ctx, 100, 1))
	assert.True(t, srv.Fork(ctx))
	assert.Equal(t, model.PID(2), srv.CPU())
	assert.Equal(t, []model.PID{3}, srv.ReadyQueue())
	child, ok := srv.Process(ctx, 3)
	require.True(t, ok)
	assert.Equal(t, model.PID(2), child.Parent)

	srv.Exit(ctx)
	for _, pid := range []model.PID{2, 3} {
		p, _ := srv.Process(ctx, pid)
		assert.True(t, p.Zombie, "pid %v", pid)
	}
	assert.Equal(t, model.NoPID, srv.CPU())
	assert.Len(t, srv.Memory(), 1)
}

func TestService_Rejections(t *testing.T) {
	ctx := context.Background()
	srv := newService(t)

	assert.False(t, srv.Fork(ctx), "the OS cannot fork")
	srv.Exit(ctx)
	srv.Wait(ctx)
	srv.DiskReadRequest(ctx, 0, "x")
	srv.DiskJobCompleted(ctx, 0)
	assert.Equal(t, model.NoPID, srv.Dispatch(ctx))

	assert.Equal(t, model.OSPID, srv.CPU())
	assert.Len(t, srv.Memory(), 1)
	assert.True(t, srv.Disk(0).IsEmpty())
	for _, e := range srv.Events() {
		assert.Equal(t, event.TypeRejected, e.Context.EventType)
	}
	assert.Len(t, srv.Events(), 6)
}

func TestService_WaitAndDisk(t *testing.T) {
	ctx := context.Background()
	srv := newService(t)

	srv.NewProcess(ctx, 10, 1)
	srv.Fork(ctx)
	srv.Wait(ctx)
	assert.Equal(t, model.NoPID, srv.CPU())
	assert.Equal(t, []model.PID{3, 2}, srv.ReadyQueue())
	assert.Equal(t, model.PID(3), srv.Dispatch(ctx))

	srv.DiskReadRequest(ctx, 2, "data.txt")
	assert.Equal(t, model.NoPID, srv.CPU())
	assert.Equal(t, "data.txt", srv.Disk(2).FileName)
	assert.Len(t, srv.DiskQueue(2), 1)

	srv.DiskJobCompleted(ctx, 2)
	assert.Equal(t, model.PID(3), srv.CPU())

	srv.Exit(ctx)
	assert.Equal(t, model.PID(2), srv.CPU(), "waiting parent resumes")
	assert.Empty(t, srv.ReadyQueue())
	parent, _ := srv.Process(ctx, 2)
	assert.False(t, parent.Waiting)
}

func TestService_State(t *testing.T) {
	ctx := context.Background()
	srv := newService(t)
	srv.NewProcess(ctx, 10, 1)
	srv.NewProcess(ctx, 20, 1)
	srv.DiskReadRequest(ctx, 1, "f.bin")

	state := srv.State(ctx)
	assert.Equal(t, model.NoPID, state.CPU)
	assert.Equal(t, []model.PID{3}, state.Ready)
	assert.Equal(t, simos.Size(1024-100-30), state.Free)
	require.Len(t, state.Disks[1], 1)
	assert.Equal(t, model.PID(2), state.Disks[1][0].PID)
	assert.Len(t, state.Processes, 3)

	report := state.String()
	assert.Contains(t, report, "cpu: none")
	assert.Contains(t, report, "ready: [3]")
	assert.Contains(t, report, "disk 1: 2:f.bin")
}

func TestService_Listener(t *testing.T) {
	ctx := context.Background()
	var pids []model.PID
	srv := newService(t, simos.WithListener(func(_ context.Context, e *event.Event[model.Process]) {
		if e.Context.EventType == event.TypeCreated {
			pids = append(pids, e.Data.PID)
		}
	}))
	srv.NewProcess(ctx, 10, 1)
	srv.Fork(ctx)
	assert.Equal(t, []model.PID{2, 3}, pids)
}

func TestService_Concurrent(t *testing.T) {
	ctx := context.Background()
	srv := newService(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				srv.NewProcess(ctx, 1, 1)
				_ = srv.ReadyQueue()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, srv.Processes(ctx), 81)
	assert.Len(t, srv.ReadyQueue(), 79)
}

func TestService_InvalidConfig(t *testing.T) {
	_, err := simos.New(simos.WithMemory(100, 200))
	assert.Error(t, err)
	_, err = simos.New(simos.WithDisks(-1))
	assert.Error(t, err)
}

func TestService_Tracing(t *testing.T) {
	ctx := context.Background()
	exporter := tracetest.NewInMemoryExporter()
	srv := newService(t, simos.WithTracingExporter("simos", "test", exporter))

	srv.NewProcess(ctx, 10, 1)
	srv.Fork(ctx)
	srv.Exit(ctx)

	spans := exporter.GetSpans()
	require.Len(t, spans, 3)
	assert.Equal(t, "simos.create", spans[0].Name)
	assert.Equal(t, "simos.fork", spans[1].Name)
	assert.Equal(t, "simos.exit", spans[2].Name)

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "2", attrs["pid"])
	assert.Equal(t, "10", attrs["size"])

	require.NoError(t, srv.Shutdown(ctx))
	require.NoError(t, srv.Shutdown(ctx))
	srv.NewProcess(ctx, 10, 1)
	assert.Empty(t, exporter.GetSpans())
}
