package simos

import (
	"fmt"
	"sort"
	"strings"

	"github.com/viant/simos/model"
)

// State is a point-in-time snapshot of the simulator
type State struct {
	CPU       model.PID                   `json:"cpu" yaml:"cpu"`
	Ready     []model.PID                 `json:"ready" yaml:"ready"`
	Memory    []model.Region              `json:"memory" yaml:"memory"`
	Free      Size                        `json:"free" yaml:"free"`
	Disks     map[int][]model.ReadRequest `json:"disks,omitempty" yaml:"disks,omitempty"`
	Processes []*model.Process            `json:"processes" yaml:"processes"`
}

// String renders the state as a compact multi-line report
func (s *State) String() string {
	builder := &strings.Builder{}
	fmt.Fprintf(builder, "cpu: %v\n", s.CPU)
	fmt.Fprintf(builder, "ready: %v\n", s.Ready)
	fmt.Fprintf(builder, "memory (free %v):\n", s.Free)
	for _, region := range s.Memory {
		fmt.Fprintf(builder, "  %v\n", region)
	}
	devices := make([]int, 0, len(s.Disks))
	for device := range s.Disks {
		devices = append(devices, device)
	}
	sort.Ints(devices)
	for _, device := range devices {
		var pending []string
		for _, request := range s.Disks[device] {
			pending = append(pending, fmt.Sprintf("%v:%v", request.PID, request.FileName))
		}
		fmt.Fprintf(builder, "disk %d: %v\n", device, strings.Join(pending, " "))
	}
	return builder.String()
}
