package classify

import (
	"strings"

	"github.com/jwillems/mailintake/pkg/models"
)

var (
	orderKeywords = []string{"order", "bestelling"}
	taskKeywords  = []string{"task", "todo", "taak"}
)

// Classify assigns a workflow to an email based on subject and body
// keywords. Matching is case-insensitive and priority-ordered: order
// beats task beats notification, which is the fallback for anything
// unmatched.
func Classify(subject, body string) models.Workflow {
	subject = strings.ToLower(subject)
	body = strings.ToLower(body)

	if containsAny(subject, orderKeywords) || containsAny(body, orderKeywords) {
		return models.WorkflowOrder
	}
	if containsAny(subject, taskKeywords) {
		return models.WorkflowTask
	}
	return models.WorkflowNotification
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
