package metrickeys

const (
	Prefix = "cancel."

	// Worker groups
	TasksStarted   = Prefix + "worker.tasks.started"
	TasksCompleted = Prefix + "worker.tasks.completed"
	TasksCanceled  = Prefix + "worker.tasks.canceled"
	TasksFailed    = Prefix + "worker.tasks.failed"
	TasksPanicked  = Prefix + "worker.tasks.panicked"

	GroupWait = Prefix + "worker.group.wait"
)

// Tag names
const (
	// Group the task belongs to
	Group = "group"
)
