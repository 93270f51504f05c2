package domain

import (
	"fmt"
	"math"

	"hpcgen/pkg/errors"
)

// Mapping keys. The flat schema is shared by ToMap/FromMap and the JSON
// files; renaming a key is a breaking change for archived configurations.
const (
	keyJobName                = "job_name"
	keyClusterName            = "cluster_name"
	keyCustomSubmissionString = "custom_submission_string"
	keyProductFullPath        = "product_full_path"
	keyAutoHPC                = "auto_hpc"
	keyMonitor                = "monitor"
	keyNGSolve                = "ng_solve"
	keyUsePPE                 = "use_ppe"
	keyWaitForLicense         = "wait_for_license"
	keySharedDirectoryLinux   = "shared_directory_linux"
	keySharedDirectoryWindows = "shared_directory_windows"
	keyExclusive              = "exclusive"
	keyNumCores               = "num_cores"
	keyNumNodes               = "num_nodes"
	keyNumTasks               = "num_tasks"
	keyNumGPUs                = "num_gpus"
	keyMaxTasksPerNode        = "max_tasks_per_node"
	keyRAMLimit               = "ram_limit"
	keyRAMPerCore             = "ram_per_core"
)

// ToMap serializes the full configuration into a flat mapping. Absent
// optional fields are carried as nil so the schema never changes shape.
func (j *JobConfig) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		keyJobName:                j.jobName,
		keyClusterName:            j.clusterName,
		keyCustomSubmissionString: j.customSubmissionString,
		keyProductFullPath:        j.productFullPath,
		keyAutoHPC:                j.autoHPC,
		keyMonitor:                j.monitor,
		keyNGSolve:                j.ngSolve,
		keyUsePPE:                 j.usePPE,
		keyWaitForLicense:         j.waitForLicense,
		keyExclusive:              j.resource.exclusive,
		keyNumCores:               j.resource.numCores,
		keyNumNodes:               j.resource.numNodes,
		keyNumTasks:               j.resource.numTasks,
		keyRAMLimit:               j.resource.ramLimit,
		keyRAMPerCore:             j.resource.ramPerCore,
	}

	if j.sharedDirectoryLinux != nil {
		m[keySharedDirectoryLinux] = *j.sharedDirectoryLinux
	} else {
		m[keySharedDirectoryLinux] = nil
	}
	if j.sharedDirectoryWindows != nil {
		m[keySharedDirectoryWindows] = *j.sharedDirectoryWindows
	} else {
		m[keySharedDirectoryWindows] = nil
	}
	if j.resource.numGPUs != nil {
		m[keyNumGPUs] = *j.resource.numGPUs
	} else {
		m[keyNumGPUs] = nil
	}
	if j.resource.maxTasksPerNode != nil {
		m[keyMaxTasksPerNode] = *j.resource.maxTasksPerNode
	} else {
		m[keyMaxTasksPerNode] = nil
	}

	return m
}

// FromMap rebuilds a configuration from the flat mapping produced by
// ToMap. Every value is type-checked and range-checked, but the stored
// core/task pair is restored verbatim — no derivation runs, so the result
// is observationally equal to the serialized object even when that object
// would fail a consistency check. Missing keys keep their defaults.
func FromMap(m map[string]interface{}) (*JobConfig, error) {
	j := New(nil)

	var err error
	if j.jobName, err = stringValue(m, keyJobName, j.jobName); err != nil {
		return nil, err
	}
	if j.clusterName, err = stringValue(m, keyClusterName, j.clusterName); err != nil {
		return nil, err
	}
	if j.customSubmissionString, err = stringValue(m, keyCustomSubmissionString, ""); err != nil {
		return nil, err
	}
	if j.productFullPath, err = stringValue(m, keyProductFullPath, ""); err != nil {
		return nil, err
	}
	if j.autoHPC, err = boolValue(m, keyAutoHPC, false); err != nil {
		return nil, err
	}
	if j.monitor, err = boolValue(m, keyMonitor, j.monitor); err != nil {
		return nil, err
	}
	if j.ngSolve, err = boolValue(m, keyNGSolve, false); err != nil {
		return nil, err
	}
	if j.usePPE, err = boolValue(m, keyUsePPE, false); err != nil {
		return nil, err
	}
	if j.waitForLicense, err = boolValue(m, keyWaitForLicense, false); err != nil {
		return nil, err
	}
	if j.sharedDirectoryLinux, err = optionalString(m, keySharedDirectoryLinux); err != nil {
		return nil, err
	}
	if j.sharedDirectoryWindows, err = optionalString(m, keySharedDirectoryWindows); err != nil {
		return nil, err
	}

	rc := j.resource
	if rc.exclusive, err = boolValue(m, keyExclusive, false); err != nil {
		return nil, err
	}

	cores, err := intValue(m, keyNumCores, rc.numCores)
	if err != nil {
		return nil, err
	}
	if cores <= 0 {
		return nil, errors.NewFieldRangeError(keyNumCores, "> 0", cores)
	}
	tasks, err := intValue(m, keyNumTasks, rc.numTasks)
	if err != nil {
		return nil, err
	}
	if tasks <= 0 {
		return nil, errors.NewFieldRangeError(keyNumTasks, "> 0", tasks)
	}
	rc.numCores = cores
	rc.explicitCores = cores
	rc.numTasks = tasks
	rc.coresPerTask = cores / tasks

	nodes, err := intValue(m, keyNumNodes, rc.numNodes)
	if err != nil {
		return nil, err
	}
	if err := rc.SetNumNodes(nodes); err != nil {
		return nil, err
	}

	ramLimit, err := intValue(m, keyRAMLimit, rc.ramLimit)
	if err != nil {
		return nil, err
	}
	if err := rc.SetRAMLimit(ramLimit); err != nil {
		return nil, err
	}

	ramPerCore, err := floatValue(m, keyRAMPerCore, rc.ramPerCore)
	if err != nil {
		return nil, err
	}
	if err := rc.SetRAMPerCore(ramPerCore); err != nil {
		return nil, err
	}

	gpus, err := optionalInt(m, keyNumGPUs)
	if err != nil {
		return nil, err
	}
	if gpus != nil {
		if err := rc.SetNumGPUs(*gpus); err != nil {
			return nil, err
		}
	}

	taskCap, err := optionalInt(m, keyMaxTasksPerNode)
	if err != nil {
		return nil, err
	}
	if taskCap != nil {
		if err := rc.SetMaxTasksPerNode(*taskCap); err != nil {
			return nil, err
		}
	}

	j.refreshMethod()
	return j, nil
}

// Coercion helpers. JSON has no integer kind, so an integral float64 is
// accepted for int fields; a fractional one is a type error naming the
// field and the received Go type.

func intValue(m map[string]interface{}, key string, def int) (int, error) {
	v, ok := m[key]
	if !ok {
		return def, nil
	}
	return coerceInt(key, v)
}

func coerceInt(field string, v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, errors.NewFieldTypeError(field, "float64")
		}
		return int(n), nil
	case float32:
		if float64(n) != math.Trunc(float64(n)) {
			return 0, errors.NewFieldTypeError(field, "float32")
		}
		return int(n), nil
	default:
		return 0, errors.NewFieldTypeError(field, fmt.Sprintf("%T", v))
	}
}

func floatValue(m map[string]interface{}, key string, def float64) (float64, error) {
	v, ok := m[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, errors.NewFieldTypeError(key, fmt.Sprintf("%T", v))
	}
}

func boolValue(m map[string]interface{}, key string, def bool) (bool, error) {
	v, ok := m[key]
	if !ok {
		return def, nil
	}
	b, isBool := v.(bool)
	if !isBool {
		return false, errors.NewFieldTypeError(key, fmt.Sprintf("%T", v))
	}
	return b, nil
}

func stringValue(m map[string]interface{}, key, def string) (string, error) {
	v, ok := m[key]
	if !ok {
		return def, nil
	}
	s, isString := v.(string)
	if !isString {
		return "", errors.NewFieldTypeError(key, fmt.Sprintf("%T", v))
	}
	return s, nil
}

func optionalInt(m map[string]interface{}, key string) (*int, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	n, err := coerceInt(key, v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func optionalString(m map[string]interface{}, key string) (*string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, isString := v.(string)
	if !isString {
		return nil, errors.NewFieldTypeError(key, fmt.Sprintf("%T", v))
	}
	return &s, nil
}
