package admission_test

import (
	"testing"

	"portal/internal/admission"
	"portal/pkg/domain"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		current domain.ApplicationStatus
		actor   domain.Role
		target  domain.ApplicationStatus
		want    bool
	}{
		{
			name:    "student withdraws pending",
			current: domain.ApplicationStatusPending,
			actor:   domain.RoleStudent,
			target:  domain.ApplicationStatusWithdrawn,
			want:    true,
		},
		{
			name:    "student cannot admit",
			current: domain.ApplicationStatusPending,
			actor:   domain.RoleStudent,
			target:  domain.ApplicationStatusAdmitted,
			want:    false,
		},
		{
			name:    "institute starts review",
			current: domain.ApplicationStatusPending,
			actor:   domain.RoleInstitute,
			target:  domain.ApplicationStatusUnderReview,
			want:    true,
		},
		{
			name:    "institute admits straight from pending",
			current: domain.ApplicationStatusPending,
			actor:   domain.RoleInstitute,
			target:  domain.ApplicationStatusAdmitted,
			want:    true,
		},
		{
			name:    "institute rejects from review",
			current: domain.ApplicationStatusUnderReview,
			actor:   domain.RoleInstitute,
			target:  domain.ApplicationStatusRejected,
			want:    true,
		},
		{
			name:    "admin admits from review",
			current: domain.ApplicationStatusUnderReview,
			actor:   domain.RoleAdmin,
			target:  domain.ApplicationStatusAdmitted,
			want:    true,
		},
		{
			name:    "student cannot withdraw under review",
			current: domain.ApplicationStatusUnderReview,
			actor:   domain.RoleStudent,
			target:  domain.ApplicationStatusWithdrawn,
			want:    false,
		},
		{
			name:    "institute cannot move review back to pending",
			current: domain.ApplicationStatusUnderReview,
			actor:   domain.RoleInstitute,
			target:  domain.ApplicationStatusPending,
			want:    false,
		},
		{
			name:    "company may not touch applications",
			current: domain.ApplicationStatusPending,
			actor:   domain.RoleCompany,
			target:  domain.ApplicationStatusUnderReview,
			want:    false,
		},
	}

	for _, tc := range cases {
		if got := admission.CanTransition(tc.current, tc.actor, tc.target); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

// Every terminal status must absorb: no actor may leave it for any target.
func TestTerminalStatusesAbsorb(t *testing.T) {
	terminals := []domain.ApplicationStatus{
		domain.ApplicationStatusAdmitted,
		domain.ApplicationStatusRejected,
		domain.ApplicationStatusWithdrawn,
	}
	all := []domain.ApplicationStatus{
		domain.ApplicationStatusPending,
		domain.ApplicationStatusUnderReview,
		domain.ApplicationStatusAdmitted,
		domain.ApplicationStatusRejected,
		domain.ApplicationStatusWithdrawn,
	}
	roles := []domain.Role{
		domain.RoleStudent,
		domain.RoleInstitute,
		domain.RoleCompany,
		domain.RoleAdmin,
	}

	for _, current := range terminals {
		for _, role := range roles {
			for _, target := range all {
				if admission.CanTransition(current, role, target) {
					t.Errorf("terminal %q allows %q -> %q for role %q", current, current, target, role)
				}
			}
		}
	}
}
