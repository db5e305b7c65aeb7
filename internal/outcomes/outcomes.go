// Package outcomes partitions a final candidate list into accept and regret
// sets and renders the corresponding notification bodies.
package outcomes

import (
	"fmt"

	"github.com/jonathan/hiring-agent/internal/types"
)

// Status labels recorded per candidate in the "Outcome" audit tab.
const (
	StatusSentAccept   = "sent_accept"
	StatusSentRegret   = "sent_regret"
	StatusSkippedEmail = "skipped_invalid_email"
)

// Partition splits candidates by the accepted set. Matching is by exact,
// case-sensitive email string. Candidates without an email are routed to
// neither set and returned as skipped.
func Partition(candidates []types.CandidateRecord, accepted map[string]bool) (acceptedList, rejected, skipped []types.CandidateRecord) {
	for _, c := range candidates {
		switch {
		case c.Email == "":
			skipped = append(skipped, c)
		case accepted[c.Email]:
			acceptedList = append(acceptedList, c)
		default:
			rejected = append(rejected, c)
		}
	}
	return acceptedList, rejected, skipped
}

// AcceptedSet builds the lookup set for Partition from a list of emails.
func AcceptedSet(emails []string) map[string]bool {
	set := make(map[string]bool, len(emails))
	for _, e := range emails {
		if e != "" {
			set[e] = true
		}
	}
	return set
}

// AcceptanceSubject returns the subject line of the offer email.
func AcceptanceSubject(role string) string {
	return fmt.Sprintf("Offer — %s", role)
}

// RegretSubject returns the subject line of the regret email.
func RegretSubject(role string) string {
	return fmt.Sprintf("Thank you — %s", role)
}

// AcceptanceBody renders the offer email body. Pure function of its inputs.
func AcceptanceBody(candidateName, role, organizerName string) string {
	return fmt.Sprintf(`Hi %s,

Congratulations! We'd love to move forward with you for the %s role.

Next steps:
- We'll share offer details and onboarding info.
- If you have any questions, just reply to this email.

Welcome aboard!
%s
`, candidateName, role, organizerName)
}

// RegretBody renders the regret email body. Pure function of its inputs.
func RegretBody(candidateName, role, organizerName string) string {
	return fmt.Sprintf(`Hi %s,

Thank you for interviewing for the %s role. We truly appreciate the time you invested.

After careful consideration, we will not be moving ahead this time.
Please don't be discouraged — we'll keep your profile in mind for future roles.

Wishing you all the best,
%s
`, candidateName, role, organizerName)
}
