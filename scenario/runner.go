package scenario

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/viant/simos"
	"github.com/viant/simos/model"
	"github.com/viant/simos/service/event"
)

// ErrMismatch is returned when a step does not meet its expectation
var ErrMismatch = errors.New("expectation mismatch")

// Result describes one executed step
type Result struct {
	Index int
	Call  string
	OK    bool
	State *simos.State
	Diff  string
}

// StepFunc observes every executed step
type StepFunc func(result *Result)

// Run executes all steps against service and stops at the first unmet expectation
func (s *Scenario) Run(ctx context.Context, service *simos.Service, observers ...StepFunc) ([]*Result, error) {
	var results []*Result
	for i, step := range s.Steps {
		call, err := step.Call()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i, err)
		}
		ok, err := execute(ctx, service, call)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i, err)
		}
		result := &Result{Index: i, Call: call.String(), OK: ok, State: service.State(ctx)}
		results = append(results, result)
		for _, observer := range observers {
			observer(result)
		}
		if step.Expect == nil {
			continue
		}
		if diff := step.Expect.compare(result); diff != "" {
			result.Diff = diff
			return results, fmt.Errorf("%v: step %d %v: %w\n%s", s.Name, i, result.Call, ErrMismatch, diff)
		}
	}
	return results, nil
}

func execute(ctx context.Context, service *simos.Service, call *Call) (bool, error) {
	switch call.Name {
	case "create", "new":
		size, err := call.Uint(0)
		if err != nil {
			return false, err
		}
		priority, err := call.Int(1)
		if err != nil {
			return false, err
		}
		return service.NewProcess(ctx, size, priority), nil
	case "fork":
		return service.Fork(ctx), nil
	case "exit":
		return accepted(service, func() { service.Exit(ctx) }), nil
	case "wait":
		return accepted(service, func() { service.Wait(ctx) }), nil
	case "read", "diskReadRequest":
		device, err := call.Int(0)
		if err != nil {
			return false, err
		}
		fileName, err := call.Str(1)
		if err != nil {
			return false, err
		}
		return accepted(service, func() { service.DiskReadRequest(ctx, device, fileName) }), nil
	case "complete", "diskJobCompleted":
		device, err := call.Int(0)
		if err != nil {
			return false, err
		}
		return accepted(service, func() { service.DiskJobCompleted(ctx, device) }), nil
	case "dispatch":
		return service.Dispatch(ctx) != model.NoPID, nil
	}
	return false, fmt.Errorf("unsupported call: %v", call.Name)
}

// accepted runs a void operation and reports whether it was rejected, judged by the last journal entry
func accepted(service *simos.Service, fn func()) bool {
	before := lastEventID(service.Events())
	fn()
	events := service.Events()
	if len(events) == 0 {
		return false
	}
	last := events[len(events)-1]
	if last.ID == before {
		return false
	}
	return last.Context == nil || last.Context.EventType != event.TypeRejected
}

func lastEventID(events []event.Event[model.Process]) string {
	if len(events) == 0 {
		return ""
	}
	return events[len(events)-1].ID
}

// compare renders asserted fields for both sides and returns a unified diff, or "" when they agree
func (e *Expect) compare(result *Result) string {
	expected, actual := e.render(result)
	if expected == actual {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	})
	if err != nil {
		return fmt.Sprintf("expected:\n%vactual:\n%v", expected, actual)
	}
	return diff
}

func (e *Expect) render(result *Result) (string, string) {
	expected := &strings.Builder{}
	actual := &strings.Builder{}
	state := result.State
	if e.OK != nil {
		fmt.Fprintf(expected, "ok: %v\n", *e.OK)
		fmt.Fprintf(actual, "ok: %v\n", result.OK)
	}
	if e.CPU != nil {
		fmt.Fprintf(expected, "cpu: %d\n", *e.CPU)
		fmt.Fprintf(actual, "cpu: %d\n", int(state.CPU))
	}
	if e.Ready != nil {
		fmt.Fprintf(expected, "ready: %v\n", *e.Ready)
		ready := make([]int, 0, len(state.Ready))
		for _, pid := range state.Ready {
			ready = append(ready, int(pid))
		}
		fmt.Fprintf(actual, "ready: %v\n", ready)
	}
	if e.Memory != nil {
		fmt.Fprintf(expected, "memory: %v\n", *e.Memory)
		regions := make([]string, 0, len(state.Memory))
		for _, region := range state.Memory {
			regions = append(regions, fmt.Sprintf("%d:%d", region.PID, region.Size))
		}
		fmt.Fprintf(actual, "memory: %v\n", regions)
	}
	if e.Disk != nil {
		devices := make([]int, 0, len(e.Disk))
		for device := range e.Disk {
			devices = append(devices, device)
		}
		sort.Ints(devices)
		for _, device := range devices {
			pids := e.Disk[device]
			if pids == nil {
				pids = []int{}
			}
			fmt.Fprintf(expected, "disk %d: %v\n", device, pids)
			queued := []int{}
			for _, request := range state.Disks[device] {
				queued = append(queued, int(request.PID))
			}
			fmt.Fprintf(actual, "disk %d: %v\n", device, queued)
		}
	}
	return expected.String(), actual.String()
}
