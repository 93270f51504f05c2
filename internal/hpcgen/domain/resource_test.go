package domain

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hpcgen/pkg/errors"
)

func TestNewResourceConfigDefaults(t *testing.T) {
	rc := NewResourceConfig()

	assert.Equal(t, DefaultNumCores, rc.NumCores())
	assert.Equal(t, DefaultNumNodes, rc.NumNodes())
	assert.Equal(t, DefaultNumTasks, rc.NumTasks())
	assert.Equal(t, DefaultRAMLimit, rc.RAMLimit())
	assert.Equal(t, DefaultRAMPerCore, rc.RAMPerCore())
	assert.Equal(t, DefaultNumCores, rc.CoresPerTask())
	assert.False(t, rc.Exclusive())

	_, set := rc.NumGPUs()
	assert.False(t, set)
	_, set = rc.MaxTasksPerNode()
	assert.False(t, set)
}

func TestSetterDomainValidation(t *testing.T) {
	tests := []struct {
		name  string
		field string
		set   func(rc *ResourceConfig) error
	}{
		{"zero cores", "num_cores", func(rc *ResourceConfig) error { return rc.SetNumCores(0) }},
		{"negative cores", "num_cores", func(rc *ResourceConfig) error { return rc.SetNumCores(-4) }},
		{"zero nodes", "num_nodes", func(rc *ResourceConfig) error { return rc.SetNumNodes(0) }},
		{"zero tasks", "num_tasks", func(rc *ResourceConfig) error { return rc.SetNumTasks(0) }},
		{"negative tasks", "num_tasks", func(rc *ResourceConfig) error { return rc.SetNumTasks(-1) }},
		{"negative gpus", "num_gpus", func(rc *ResourceConfig) error { return rc.SetNumGPUs(-1) }},
		{"negative task cap", "max_tasks_per_node", func(rc *ResourceConfig) error { return rc.SetMaxTasksPerNode(-2) }},
		{"zero ram limit", "ram_limit", func(rc *ResourceConfig) error { return rc.SetRAMLimit(0) }},
		{"zero ram per core", "ram_per_core", func(rc *ResourceConfig) error { return rc.SetRAMPerCore(0) }},
		{"negative ram per core", "ram_per_core", func(rc *ResourceConfig) error { return rc.SetRAMPerCore(-1.5) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := NewResourceConfig()
			err := tt.set(rc)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, errors.ErrValueOutOfRange))

			field, ok := errors.GetField(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, field)
		})
	}
}

func TestSetterLeavesStateValidOnError(t *testing.T) {
	rc := NewResourceConfig()
	require.NoError(t, rc.SetNumCores(8))

	require.Error(t, rc.SetNumCores(-1))
	assert.Equal(t, 8, rc.NumCores())

	require.Error(t, rc.SetNumTasks(0))
	assert.Equal(t, 1, rc.NumTasks())
}

func TestTaskDerivationExpandsCores(t *testing.T) {
	rc := NewResourceConfig()
	require.NoError(t, rc.SetNumCores(2))

	// 2 cores cannot cover 8 tasks: one core per task, cores grow to 8.
	require.NoError(t, rc.SetNumTasks(8))
	assert.Equal(t, 1, rc.CoresPerTask())
	assert.Equal(t, 8, rc.NumCores())
	assert.Equal(t, rc.NumCores(), rc.CoresPerTask()*rc.NumTasks())
}

func TestTaskDerivationRoundsCoresDown(t *testing.T) {
	rc := NewResourceConfig()
	require.NoError(t, rc.SetNumCores(10))

	require.NoError(t, rc.SetNumTasks(4))
	assert.Equal(t, 2, rc.CoresPerTask())
	assert.Equal(t, 8, rc.NumCores())
	assert.Equal(t, rc.NumCores(), rc.CoresPerTask()*rc.NumTasks())
}

func TestSingleTaskRestoresExplicitCores(t *testing.T) {
	rc := NewResourceConfig()
	require.NoError(t, rc.SetNumCores(2))
	require.NoError(t, rc.SetNumTasks(8))
	require.Equal(t, 8, rc.NumCores())

	require.NoError(t, rc.SetNumTasks(1))
	assert.Equal(t, 2, rc.NumCores())
	assert.Equal(t, 2, rc.CoresPerTask())
}

func TestSetNumCoresRecomputesCoresPerTask(t *testing.T) {
	rc := NewResourceConfig()
	require.NoError(t, rc.SetNumTasks(4))
	require.NoError(t, rc.SetNumCores(12))

	assert.Equal(t, 12, rc.NumCores())
	assert.Equal(t, 3, rc.CoresPerTask())
}

func TestOptionalFieldsAlwaysClearable(t *testing.T) {
	rc := NewResourceConfig()

	require.NoError(t, rc.SetNumGPUs(2))
	rc.ClearNumGPUs()
	_, set := rc.NumGPUs()
	assert.False(t, set)

	// clearing an already absent field is legal too
	rc.ClearNumGPUs()

	require.NoError(t, rc.SetMaxTasksPerNode(4))
	rc.ClearMaxTasksPerNode()
	_, set = rc.MaxTasksPerNode()
	assert.False(t, set)
	rc.ClearMaxTasksPerNode()
}

func TestAlignDependentAttributes(t *testing.T) {
	rc := NewResourceConfig()
	rc.AlignDependentAttributes()

	gpus, set := rc.NumGPUs()
	require.True(t, set)
	assert.Equal(t, DefaultNumGPUs, gpus)

	taskCap, set := rc.MaxTasksPerNode()
	require.True(t, set)
	assert.Equal(t, NoTaskLimit, taskCap)

	assert.Equal(t, rc.NumCores()/rc.NumTasks(), rc.CoresPerTask())
}

func TestAlignKeepsExplicitValues(t *testing.T) {
	rc := NewResourceConfig()
	require.NoError(t, rc.SetNumGPUs(2))
	require.NoError(t, rc.SetMaxTasksPerNode(3))

	rc.AlignDependentAttributes()

	gpus, _ := rc.NumGPUs()
	assert.Equal(t, 2, gpus)
	taskCap, _ := rc.MaxTasksPerNode()
	assert.Equal(t, 3, taskCap)
}

func TestCheckConsistencyCoresVersusTasks(t *testing.T) {
	rc := NewResourceConfig()
	require.NoError(t, rc.SetNumTasks(4))
	// explicit core count below the task count survives the setter and
	// is only caught by the consistency pass
	require.NoError(t, rc.SetNumCores(2))

	err := rc.CheckConsistency()
	require.Error(t, err)
	assert.True(t, errors.IsConsistencyError(err))
	assert.Contains(t, err.Error(), "number of cores (2)")
	assert.Contains(t, err.Error(), "greater than or equal to number of tasks (4)")
}

func TestCheckConsistencyTasksPerNode(t *testing.T) {
	rc := NewResourceConfig()
	require.NoError(t, rc.SetNumTasks(4))
	require.NoError(t, rc.SetMaxTasksPerNode(3))

	err := rc.CheckConsistency()
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInconsistentConfig))
	assert.Contains(t, err.Error(), "tasks per node (4) exceeds max tasks per node (3)")
}

func TestCheckConsistencyTasksSpreadOverNodes(t *testing.T) {
	rc := NewResourceConfig()
	require.NoError(t, rc.SetNumTasks(4))
	require.NoError(t, rc.SetNumNodes(2))
	require.NoError(t, rc.SetMaxTasksPerNode(2))

	assert.NoError(t, rc.CheckConsistency())
}

func TestCheckConsistencyNoTaskLimit(t *testing.T) {
	rc := NewResourceConfig()
	require.NoError(t, rc.SetNumTasks(4))

	// absent cap: no limit
	assert.NoError(t, rc.CheckConsistency())

	// aligned cap of zero means no limit as well
	rc.AlignDependentAttributes()
	assert.NoError(t, rc.CheckConsistency())
}
