package helpers

import (
	"fmt"

	"github.com/achrafato/MarkDown-App/pkg/mailer"
)

// EnsureRecipientAndEmail makes the recipient address available to templates as .Email.
func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
}
