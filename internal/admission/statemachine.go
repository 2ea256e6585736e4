package admission

import "portal/pkg/domain"

// transitions is the full admission state machine: for each current status,
// the target statuses each actor class may move the record to. Terminal
// states (admitted, rejected, withdrawn) have no outgoing edges.
var transitions = map[domain.ApplicationStatus]map[domain.Role][]domain.ApplicationStatus{ //nolint: gochecknoglobals
	domain.ApplicationStatusPending: {
		domain.RoleStudent: {
			domain.ApplicationStatusWithdrawn,
		},
		domain.RoleInstitute: {
			domain.ApplicationStatusUnderReview,
			domain.ApplicationStatusAdmitted,
			domain.ApplicationStatusRejected,
		},
		domain.RoleAdmin: {
			domain.ApplicationStatusUnderReview,
			domain.ApplicationStatusAdmitted,
			domain.ApplicationStatusRejected,
		},
	},
	domain.ApplicationStatusUnderReview: {
		domain.RoleInstitute: {
			domain.ApplicationStatusAdmitted,
			domain.ApplicationStatusRejected,
		},
		domain.RoleAdmin: {
			domain.ApplicationStatusAdmitted,
			domain.ApplicationStatusRejected,
		},
	},
}

// CanTransition reports whether actor may move an application from current to
// target. Any pair not present in the transition table is disallowed,
// including everything out of a terminal state.
func CanTransition(current domain.ApplicationStatus, actor domain.Role, target domain.ApplicationStatus) bool {
	byActor, ok := transitions[current]
	if !ok {
		return false
	}

	for _, allowed := range byActor[actor] {
		if allowed == target {
			return true
		}
	}

	return false
}
