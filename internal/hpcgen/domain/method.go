package domain

import "fmt"

// HPCMethod is one of the four mutually exclusive submission strategies a
// job can be dispatched under. The integer codes are part of the descriptor
// wire format and must never be renumbered.
type HPCMethod int

const (
	MethodTasksAndCores  HPCMethod = 0
	MethodRAMConstrained HPCMethod = 1
	MethodNodesAndCores  HPCMethod = 2
	MethodAutoHPC        HPCMethod = 3
)

// Code returns the wire-format integer written into the descriptor's
// Method field.
func (m HPCMethod) Code() int {
	return int(m)
}

func (m HPCMethod) String() string {
	switch m {
	case MethodTasksAndCores:
		return "TasksAndCores"
	case MethodRAMConstrained:
		return "RAMConstrained"
	case MethodNodesAndCores:
		return "NodesAndCores"
	case MethodAutoHPC:
		return "AutoHPC"
	default:
		return fmt.Sprintf("HPCMethod(%d)", int(m))
	}
}

// MethodFromCode maps a wire-format integer back to its method.
func MethodFromCode(code int) (HPCMethod, error) {
	m := HPCMethod(code)
	switch m {
	case MethodTasksAndCores, MethodRAMConstrained, MethodNodesAndCores, MethodAutoHPC:
		return m, nil
	default:
		return 0, fmt.Errorf("unknown HPC method code: %d", code)
	}
}

// SelectMethod picks the active submission strategy from the current
// configuration state. AutoHPC wins outright; a distributed task count
// selects the tasks/cores strategy; everything else runs on nodes and
// cores. MethodRAMConstrained is never auto-selected: its schema block is
// still rendered because the descriptor's shape is fixed, but only an
// explicit downstream override activates it.
func SelectMethod(autoHPC bool, rc *ResourceConfig) HPCMethod {
	if autoHPC {
		return MethodAutoHPC
	}
	if rc.NumTasks() > 1 {
		return MethodTasksAndCores
	}
	return MethodNodesAndCores
}
