package log

const (
	NamespaceKey = "cancel"

	OperationIDKey = NamespaceKey + ".operation.id"

	GroupNameKey = NamespaceKey + ".group.name"
	TaskIDKey    = NamespaceKey + ".task.id"

	// DeadlineKey is the time at which a token expires
	DeadlineKey = NamespaceKey + ".token.deadline"

	// EvictionReasonKey is the reason a registration was evicted
	EvictionReasonKey = NamespaceKey + ".eviction.reason"
)
