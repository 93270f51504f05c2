package render

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hpcgen/internal/hpcgen/domain"
	"hpcgen/pkg/errors"
)

// goldenJob builds the fully-specified configuration behind the golden
// fixture. Values chosen to exercise quote and backslash escaping and the
// core/task derivation.
func goldenJob(t *testing.T) *domain.JobConfig {
	t.Helper()

	job := domain.New(func() string { return "/opt/AnsysEM/v242/Linux64/ansysedt" })
	job.SetJobName("O'Brien patch array")
	job.SetClusterName("hpc-cluster-01")
	job.SetCustomSubmissionString("-queue electronics")
	job.SetNGSolve(true)
	job.SetWaitForLicense(true)
	job.SetSharedDirectoryLinux("/mnt/shared/jobs")
	job.SetSharedDirectoryWindows(`\\fileserver\jobs`)

	rc := job.Resource()
	require.NoError(t, rc.SetNumCores(16))
	require.NoError(t, rc.SetNumNodes(2))
	require.NoError(t, job.SetNumTasks(4))
	require.NoError(t, rc.SetNumGPUs(1))
	require.NoError(t, rc.SetMaxTasksPerNode(2))
	require.NoError(t, rc.SetRAMLimit(90))
	require.NoError(t, rc.SetRAMPerCore(2.5))
	rc.SetExclusive(true)

	require.NoError(t, job.CheckConsistency())
	return job
}

func TestNewRendererRejectsUnknownToken(t *testing.T) {
	_, err := NewRenderer("'Field'={{no_such_field}}")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrUnresolvedToken))
	assert.True(t, errors.IsTemplateError(err))
	assert.Contains(t, err.Error(), "no_such_field")
}

func TestNewRendererRejectsStrayBraces(t *testing.T) {
	_, err := NewRenderer("'Field'={{NotLowercase}}")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrBadTemplate))
}

func TestDefaultTemplateResolves(t *testing.T) {
	r, err := NewRenderer(DefaultTemplate)
	require.NoError(t, err)
	assert.Contains(t, r.Tokens(), "method")
	assert.Contains(t, r.Tokens(), "cores_per_task")
}

func TestRenderFormatting(t *testing.T) {
	r, err := NewRenderer("{{auto_hpc}}|{{num_gpus}}|{{max_tasks_per_node}}|{{method}}|{{ram_per_core}}|{{job_name}}")
	require.NoError(t, err)

	job := domain.New(func() string { return "/opt/solver" })
	job.SetJobName("it's a job")

	// absent optionals render as empty strings
	assert.Equal(t, `false|||2|2|it\'s a job`, r.Render(job))

	job.SetAutoHPC(true)
	require.NoError(t, job.Resource().SetNumGPUs(0))
	require.NoError(t, job.Resource().SetMaxTasksPerNode(8))
	require.NoError(t, job.Resource().SetRAMPerCore(1.5))

	assert.Equal(t, `true|0|8|3|1.5|it\'s a job`, r.Render(job))
}

func TestRenderIsDeterministic(t *testing.T) {
	job := goldenJob(t)
	r, err := NewRenderer(DefaultTemplate)
	require.NoError(t, err)

	first := r.Render(job)
	second := r.Render(job)
	assert.Equal(t, first, second)
}

func TestSaveAregGolden(t *testing.T) {
	job := goldenJob(t)

	path, err := SaveAreg(job, filepath.Join(t.TempDir(), "job.acf"))
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)

	want, err := os.ReadFile(filepath.Join("testdata", "job_settings_golden.acf"))
	require.NoError(t, err)

	assert.Equal(t, string(want), string(got))
}

func TestSaveAregDefaultsExtension(t *testing.T) {
	job := goldenJob(t)

	base := filepath.Join(t.TempDir(), "my_job")
	path, err := SaveAreg(job, base)
	require.NoError(t, err)
	assert.Equal(t, base+DefaultDescriptorExt, path)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSaveAregKeepsExplicitExtension(t *testing.T) {
	job := goldenJob(t)

	target := filepath.Join(t.TempDir(), "job.descriptor")
	path, err := SaveAreg(job, target)
	require.NoError(t, err)
	assert.Equal(t, target, path)
}

func TestAllFourBlocksAlwaysRendered(t *testing.T) {
	r, err := NewRenderer(DefaultTemplate)
	require.NoError(t, err)

	// Regardless of the selected method, the descriptor carries all four
	// schema blocks in fixed order.
	for _, mutate := range []func(*domain.JobConfig){
		func(j *domain.JobConfig) {},
		func(j *domain.JobConfig) { j.SetAutoHPC(true) },
		func(j *domain.JobConfig) { _ = j.SetNumTasks(4) },
	} {
		job := domain.New(func() string { return "/opt/solver" })
		mutate(job)
		job.AlignDependentAttributes()

		out := r.Render(job)
		idxTasks := indexOf(t, out, "$begin 'TasksAndCoresBlock'")
		idxRAM := indexOf(t, out, "$begin 'RAMConstrainedBlock'")
		idxNodes := indexOf(t, out, "$begin 'NodesAndCoresBlock'")
		idxList := indexOf(t, out, "$begin 'NodeListBlock'")

		assert.Less(t, idxTasks, idxRAM)
		assert.Less(t, idxRAM, idxNodes)
		assert.Less(t, idxNodes, idxList)
	}
}

func indexOf(t *testing.T, s, sub string) int {
	t.Helper()
	idx := strings.Index(s, sub)
	require.GreaterOrEqual(t, idx, 0, "%q not found in rendered output", sub)
	return idx
}
