package models

// Workflow is the business workflow assigned to an inbound email.
type Workflow string

const (
	WorkflowOrder        Workflow = "order"
	WorkflowTask         Workflow = "task"
	WorkflowNotification Workflow = "notification"
)
