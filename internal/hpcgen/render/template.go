package render

// DefaultDescriptorExt is appended to descriptor paths given without an
// extension.
const DefaultDescriptorExt = ".acf"

// DefaultTemplate is the built-in descriptor template. The output grammar
// is a hard contract with the dispatch daemon: nested $begin/$end blocks,
// one tab per nesting level, a backslash continuation on every line but
// the last, single-quoted string values with quotes backslash-escaped.
//
// All four method schema blocks (TasksAndCoresBlock, RAMConstrainedBlock,
// NodesAndCoresBlock, NodeListBlock) are always present in this fixed
// order; the daemon reads the active one from the Method field. Do not
// narrow the template to the selected block — the daemon rejects
// descriptors missing any of the four.
const DefaultTemplate = `$begin 'Job_Settings'\
	'JobName'='{{job_name}}'\
	'ClusterName'='{{cluster_name}}'\
	'ProductFullPath'='{{product_full_path}}'\
	'CustomSubmissionString'='{{custom_submission_string}}'\
	'AutoHPC'={{auto_hpc}}\
	'Monitor'={{monitor}}\
	'NGSolve'={{ng_solve}}\
	'UsePPE'={{use_ppe}}\
	'WaitForLicense'={{wait_for_license}}\
	'SharedDirectoryLinux'='{{shared_directory_linux}}'\
	'SharedDirectoryWindows'='{{shared_directory_windows}}'\
	'Method'={{method}}\
	$begin 'ResourceSettings'\
		'Exclusive'={{exclusive}}\
		'NumCores'={{num_cores}}\
		'NumNodes'={{num_nodes}}\
		'NumTasks'={{num_tasks}}\
		'NumGPUs'={{num_gpus}}\
		'MaxTasksPerNode'={{max_tasks_per_node}}\
		'RAMLimit'={{ram_limit}}\
		'RAMPerCore'={{ram_per_core}}\
	$end 'ResourceSettings'\
	$begin 'TasksAndCoresBlock'\
		'NumTasks'={{num_tasks}}\
		'NumCores'={{num_cores}}\
		'CoresPerTask'={{cores_per_task}}\
		'Exclusive'={{exclusive}}\
	$end 'TasksAndCoresBlock'\
	$begin 'RAMConstrainedBlock'\
		'RAMLimit'={{ram_limit}}\
		'RAMPerCore'={{ram_per_core}}\
	$end 'RAMConstrainedBlock'\
	$begin 'NodesAndCoresBlock'\
		'NumNodes'={{num_nodes}}\
		'NumCores'={{num_cores}}\
		'Exclusive'={{exclusive}}\
	$end 'NodesAndCoresBlock'\
	$begin 'NodeListBlock'\
		'NumNodes'={{num_nodes}}\
		'NumGPUs'={{num_gpus}}\
		'MaxTasksPerNode'={{max_tasks_per_node}}\
	$end 'NodeListBlock'\
$end 'Job_Settings'
`
