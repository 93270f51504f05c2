// Package domain implements the job configuration data model: the
// resource block with its validators and derivations, the submission
// method selection, and the aggregate job object with its serialized
// forms.
package domain

// DefaultJobName is the sentinel meaning "unset, pick a name at
// submission time".
const DefaultJobName = "auto"

// PathResolver supplies the default product executable path when a job is
// constructed without one. Discovery itself lives outside this core; the
// caller injects whatever lookup it has.
type PathResolver func() string

// JobConfig aggregates one ResourceConfig with the job-level metadata the
// dispatch daemon needs. It exclusively owns its resource block; the
// stored active method is refreshed inside every mutation that can change
// it, so reads never observe a stale selection.
type JobConfig struct {
	jobName                string
	clusterName            string
	customSubmissionString string // empty means none
	productFullPath        string
	autoHPC                bool
	monitor                bool
	ngSolve                bool
	usePPE                 bool
	waitForLicense         bool
	sharedDirectoryLinux   *string
	sharedDirectoryWindows *string

	resource *ResourceConfig
	method   HPCMethod
}

// Option mutates a JobConfig during construction.
type Option func(*JobConfig)

func WithJobName(name string) Option {
	return func(j *JobConfig) { j.jobName = name }
}

func WithClusterName(name string) Option {
	return func(j *JobConfig) { j.clusterName = name }
}

func WithProductFullPath(path string) Option {
	return func(j *JobConfig) { j.productFullPath = path }
}

func WithMonitor(v bool) Option {
	return func(j *JobConfig) { j.monitor = v }
}

func WithWaitForLicense(v bool) Option {
	return func(j *JobConfig) { j.waitForLicense = v }
}

// New constructs a job configuration with documented defaults. The
// product path is resolved exactly once, at construction, via resolve —
// unless WithProductFullPath supplies it explicitly.
func New(resolve PathResolver, opts ...Option) *JobConfig {
	j := &JobConfig{
		jobName:     DefaultJobName,
		clusterName: "localhost",
		monitor:     true,
		resource:    NewResourceConfig(),
	}
	for _, opt := range opts {
		opt(j)
	}
	if j.productFullPath == "" && resolve != nil {
		j.productFullPath = resolve()
	}
	j.refreshMethod()
	return j
}

func (j *JobConfig) JobName() string                { return j.jobName }
func (j *JobConfig) ClusterName() string            { return j.clusterName }
func (j *JobConfig) CustomSubmissionString() string { return j.customSubmissionString }
func (j *JobConfig) ProductFullPath() string        { return j.productFullPath }
func (j *JobConfig) AutoHPC() bool                  { return j.autoHPC }
func (j *JobConfig) Monitor() bool                  { return j.monitor }
func (j *JobConfig) NGSolve() bool                  { return j.ngSolve }
func (j *JobConfig) UsePPE() bool                   { return j.usePPE }
func (j *JobConfig) WaitForLicense() bool           { return j.waitForLicense }

// SharedDirectoryLinux returns the Linux-side shared directory and whether
// one has been set.
func (j *JobConfig) SharedDirectoryLinux() (string, bool) {
	if j.sharedDirectoryLinux == nil {
		return "", false
	}
	return *j.sharedDirectoryLinux, true
}

// SharedDirectoryWindows returns the Windows-side shared directory and
// whether one has been set.
func (j *JobConfig) SharedDirectoryWindows() (string, bool) {
	if j.sharedDirectoryWindows == nil {
		return "", false
	}
	return *j.sharedDirectoryWindows, true
}

// Resource exposes the owned resource block. Task-count changes must go
// through SetNumTasks on the job so the stored method stays current.
func (j *JobConfig) Resource() *ResourceConfig { return j.resource }

// Method returns the currently selected submission strategy.
func (j *JobConfig) Method() HPCMethod { return j.method }

func (j *JobConfig) refreshMethod() {
	j.method = SelectMethod(j.autoHPC, j.resource)
}

func (j *JobConfig) SetJobName(name string)             { j.jobName = name }
func (j *JobConfig) SetClusterName(name string)         { j.clusterName = name }
func (j *JobConfig) SetCustomSubmissionString(s string) { j.customSubmissionString = s }
func (j *JobConfig) SetProductFullPath(path string)     { j.productFullPath = path }
func (j *JobConfig) SetMonitor(v bool)                  { j.monitor = v }
func (j *JobConfig) SetNGSolve(v bool)                  { j.ngSolve = v }
func (j *JobConfig) SetUsePPE(v bool)                   { j.usePPE = v }
func (j *JobConfig) SetWaitForLicense(v bool)           { j.waitForLicense = v }

// SetAutoHPC flips the automatic-allocation flag and refreshes the stored
// method before returning.
func (j *JobConfig) SetAutoHPC(v bool) {
	j.autoHPC = v
	j.refreshMethod()
}

// SetNumTasks delegates to the resource block and refreshes the stored
// method, since a task count crossing 1 changes the selection.
func (j *JobConfig) SetNumTasks(t int) error {
	if err := j.resource.SetNumTasks(t); err != nil {
		return err
	}
	j.refreshMethod()
	return nil
}

func (j *JobConfig) SetSharedDirectoryLinux(dir string) {
	j.sharedDirectoryLinux = &dir
}

func (j *JobConfig) ClearSharedDirectoryLinux() {
	j.sharedDirectoryLinux = nil
}

func (j *JobConfig) SetSharedDirectoryWindows(dir string) {
	j.sharedDirectoryWindows = &dir
}

func (j *JobConfig) ClearSharedDirectoryWindows() {
	j.sharedDirectoryWindows = nil
}

// AlignDependentAttributes fills the resource block's absent optionals
// with their documented defaults and recomputes derived quantities.
func (j *JobConfig) AlignDependentAttributes() {
	j.resource.AlignDependentAttributes()
}

// CheckConsistency runs the cross-field invariants of the owned resource
// block.
func (j *JobConfig) CheckConsistency() error {
	return j.resource.CheckConsistency()
}
