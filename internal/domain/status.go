package domain

// ApplicationStatus represents the current stage of a candidate's
// application. The set of statuses is fixed and closed.
type ApplicationStatus string

// Possible application status values.
const (
	StatusSubmitted          ApplicationStatus = "submitted"
	StatusUnderReview        ApplicationStatus = "under_review"
	StatusInterviewScheduled ApplicationStatus = "interview_scheduled"
	StatusRejected           ApplicationStatus = "rejected"
	StatusAccepted           ApplicationStatus = "accepted"
)

// AllStatuses lists every valid application status in lifecycle order.
var AllStatuses = []ApplicationStatus{
	StatusSubmitted,
	StatusUnderReview,
	StatusInterviewScheduled,
	StatusRejected,
	StatusAccepted,
}

// statusTransitions is the fixed transition table for the application
// workflow. Statuses absent from the map or mapped to an empty slice
// have no outgoing edges and are terminal.
var statusTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusSubmitted:   {StatusUnderReview, StatusRejected},
	StatusUnderReview: {StatusInterviewScheduled, StatusRejected},
	StatusInterviewScheduled: {
		StatusAccepted,
		StatusRejected,
		StatusUnderReview, // allow going back for re-evaluation
	},
	StatusRejected: {},
	StatusAccepted: {},
}

// IsValid reports whether s is a member of the status enumeration.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusSubmitted, StatusUnderReview, StatusInterviewScheduled,
		StatusRejected, StatusAccepted:
		return true
	}
	return false
}

// Display returns the human-readable form of the status.
func (s ApplicationStatus) Display() string {
	switch s {
	case StatusSubmitted:
		return "Submitted"
	case StatusUnderReview:
		return "Under Review"
	case StatusInterviewScheduled:
		return "Interview Scheduled"
	case StatusRejected:
		return "Rejected"
	case StatusAccepted:
		return "Accepted"
	}
	return string(s)
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s ApplicationStatus) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}

// CanTransitionTo reports whether the workflow permits moving from s to
// target. Unknown statuses have no outgoing edges.
func (s ApplicationStatus) CanTransitionTo(target ApplicationStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ValidTransitions returns the statuses reachable from s. The returned
// slice is a copy; callers may modify it freely. It is empty (never nil)
// for terminal or unknown statuses.
func ValidTransitions(s ApplicationStatus) []ApplicationStatus {
	allowed := statusTransitions[s]
	out := make([]ApplicationStatus, len(allowed))
	copy(out, allowed)
	return out
}
