package domain

import (
	"hpcgen/pkg/errors"
	"hpcgen/pkg/logger"
)

// Default resource parameters applied by NewResourceConfig.
const (
	DefaultNumCores   = 4
	DefaultNumNodes   = 1
	DefaultNumTasks   = 1
	DefaultRAMLimit   = 90
	DefaultRAMPerCore = 2.0

	// DefaultNumGPUs fills an absent GPU count during alignment.
	DefaultNumGPUs = 0
	// NoTaskLimit fills an absent per-node task cap during alignment
	// and disables the tasks-per-node consistency check.
	NoTaskLimit = 0
)

// ResourceConfig holds the numeric and boolean resource knobs of a single
// batch job. All mutation goes through validated setters, so a value is
// never partially invalid after any single call returns. Cross-field
// invariants are checked only by the explicit CheckConsistency call.
type ResourceConfig struct {
	exclusive       bool
	numCores        int
	numNodes        int
	numTasks        int
	numGPUs         *int
	maxTasksPerNode *int
	ramLimit        int     // percentage of available RAM
	ramPerCore      float64 // GB

	// last value passed to SetNumCores; restored when the task count
	// drops back to 1 and the derivation is undone
	explicitCores int

	coresPerTask int
}

// NewResourceConfig returns a configuration with the documented defaults.
// NumGPUs and MaxTasksPerNode start absent until set or aligned.
func NewResourceConfig() *ResourceConfig {
	return &ResourceConfig{
		numCores:      DefaultNumCores,
		numNodes:      DefaultNumNodes,
		numTasks:      DefaultNumTasks,
		ramLimit:      DefaultRAMLimit,
		ramPerCore:    DefaultRAMPerCore,
		explicitCores: DefaultNumCores,
		coresPerTask:  DefaultNumCores / DefaultNumTasks,
	}
}

func (r *ResourceConfig) Exclusive() bool     { return r.exclusive }
func (r *ResourceConfig) NumCores() int       { return r.numCores }
func (r *ResourceConfig) NumNodes() int       { return r.numNodes }
func (r *ResourceConfig) NumTasks() int       { return r.numTasks }
func (r *ResourceConfig) RAMLimit() int       { return r.ramLimit }
func (r *ResourceConfig) RAMPerCore() float64 { return r.ramPerCore }
func (r *ResourceConfig) CoresPerTask() int   { return r.coresPerTask }

// NumGPUs returns the GPU count and whether it has been set.
func (r *ResourceConfig) NumGPUs() (int, bool) {
	if r.numGPUs == nil {
		return 0, false
	}
	return *r.numGPUs, true
}

// MaxTasksPerNode returns the per-node task cap and whether it has been set.
func (r *ResourceConfig) MaxTasksPerNode() (int, bool) {
	if r.maxTasksPerNode == nil {
		return 0, false
	}
	return *r.maxTasksPerNode, true
}

func (r *ResourceConfig) SetExclusive(v bool) {
	r.exclusive = v
}

// SetNumCores records an explicit core count and recomputes the derived
// cores-per-task quantity. Unlike SetNumTasks it never rewrites other
// fields, so an inconsistent core/task pair survives until the next
// consistency check.
func (r *ResourceConfig) SetNumCores(v int) error {
	if v <= 0 {
		return errors.NewFieldRangeError("num_cores", "> 0", v)
	}
	r.numCores = v
	r.explicitCores = v
	r.coresPerTask = v / r.numTasks
	return nil
}

func (r *ResourceConfig) SetNumNodes(v int) error {
	if v <= 0 {
		return errors.NewFieldRangeError("num_nodes", "> 0", v)
	}
	r.numNodes = v
	return nil
}

// SetNumTasks updates the task count and runs the dependent-attribute
// derivation atomically. For t > 1 the core count is rounded to a whole
// multiple of tasks; for t == 1 the derivation is undone and the core
// count reverts to the last explicitly set value.
func (r *ResourceConfig) SetNumTasks(t int) error {
	if t <= 0 {
		return errors.NewFieldRangeError("num_tasks", "> 0", t)
	}

	r.numTasks = t
	if t == 1 {
		r.numCores = r.explicitCores
		r.coresPerTask = r.numCores
		return nil
	}

	cpt := r.numCores / t
	if cpt < 1 {
		cpt = 1
	}
	cores := cpt * t
	if cores != r.numCores {
		logger.Info("adjusted core count to fit task distribution",
			"num_tasks", t, "num_cores", cores, "cores_per_task", cpt)
	}
	r.numCores = cores
	r.coresPerTask = cpt
	return nil
}

func (r *ResourceConfig) SetNumGPUs(v int) error {
	if v < 0 {
		return errors.NewFieldRangeError("num_gpus", ">= 0", v)
	}
	r.numGPUs = &v
	return nil
}

// ClearNumGPUs marks the GPU count as absent. Always legal.
func (r *ResourceConfig) ClearNumGPUs() {
	r.numGPUs = nil
}

func (r *ResourceConfig) SetMaxTasksPerNode(v int) error {
	if v < 0 {
		return errors.NewFieldRangeError("max_tasks_per_node", ">= 0", v)
	}
	r.maxTasksPerNode = &v
	return nil
}

// ClearMaxTasksPerNode marks the per-node task cap as absent, meaning
// "no limit". Always legal.
func (r *ResourceConfig) ClearMaxTasksPerNode() {
	r.maxTasksPerNode = nil
}

// SetRAMLimit sets the RAM limit as a percentage of available RAM. The
// documented domain is 1-100 but only positivity is enforced, matching
// the dispatch daemon's own tolerance.
func (r *ResourceConfig) SetRAMLimit(v int) error {
	if v <= 0 {
		return errors.NewFieldRangeError("ram_limit", "> 0", v)
	}
	r.ramLimit = v
	return nil
}

func (r *ResourceConfig) SetRAMPerCore(v float64) error {
	if v <= 0 {
		return errors.NewFieldRangeError("ram_per_core", "> 0", v)
	}
	r.ramPerCore = v
	return nil
}

// AlignDependentAttributes fills absent optional fields with their
// documented defaults and recomputes the derived cores-per-task quantity.
// Call before rendering so the descriptor never carries absent numerics.
func (r *ResourceConfig) AlignDependentAttributes() {
	if r.numGPUs == nil {
		v := DefaultNumGPUs
		r.numGPUs = &v
		logger.Info("num_gpus not set, defaulting", "num_gpus", v)
	}
	if r.maxTasksPerNode == nil {
		v := NoTaskLimit
		r.maxTasksPerNode = &v
		logger.Info("max_tasks_per_node not set, defaulting to no limit")
	}
	r.coresPerTask = r.numCores / r.numTasks
}

// CheckConsistency evaluates the cross-field invariants. It is an explicit,
// on-demand pass, distinct from the per-field validation done by setters;
// callers performing multi-field updates run it before serialization.
func (r *ResourceConfig) CheckConsistency() error {
	if r.numCores < r.numTasks {
		return errors.NewConsistencyError(
			"number of cores (%d) must be greater than or equal to number of tasks (%d)",
			r.numCores, r.numTasks)
	}
	if r.maxTasksPerNode != nil && *r.maxTasksPerNode > NoTaskLimit {
		tasksPerNode := float64(r.numTasks) / float64(r.numNodes)
		if tasksPerNode > float64(*r.maxTasksPerNode) {
			return errors.NewConsistencyError(
				"tasks per node (%g) exceeds max tasks per node (%d)",
				tasksPerNode, *r.maxTasksPerNode)
		}
	}
	return nil
}
