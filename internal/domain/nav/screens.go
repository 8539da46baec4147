package nav

// Package nav defines the screen graph and the role-gated authorization
// rules for it. Everything here is pure: no I/O, no side effects.

import "github.com/tpo-portal/tpo-ui-api/internal/domain/auth"

// ScreenID names a UI state the dispatcher can be in. Screens are distinct
// from URL routes, though the HTTP layer maps most of them one-to-one.
type ScreenID string

const (
	ScreenWelcome  ScreenID = "welcome"
	ScreenLogin    ScreenID = "login"
	ScreenRegister ScreenID = "register"

	ScreenStudentOnboarding  ScreenID = "student_onboarding"
	ScreenStudentDashboard   ScreenID = "student_dashboard"
	ScreenResumeOptimizer    ScreenID = "resume_optimizer"
	ScreenMockInterview      ScreenID = "mock_interview"
	ScreenJobListings        ScreenID = "job_listings"
	ScreenApplicationTracker ScreenID = "application_tracker"
	ScreenStudentProfile     ScreenID = "student_profile"

	ScreenRecruiterDashboard ScreenID = "recruiter_dashboard"
	ScreenCreateJob          ScreenID = "create_job"
	ScreenManageJobs         ScreenID = "manage_jobs"
	ScreenCandidateReview    ScreenID = "candidate_review"
	ScreenMessaging          ScreenID = "messaging"
	ScreenCompanyProfile     ScreenID = "company_profile"

	ScreenAdminDashboard    ScreenID = "admin_dashboard"
	ScreenJobApproval       ScreenID = "job_approval"
	ScreenUserManagement    ScreenID = "user_management"
	ScreenContentManagement ScreenID = "content_management"
)

// screenRoles maps restricted screens to the roles allowed to reach them.
// Screens absent from this map are public (welcome, login, register).
var screenRoles = map[ScreenID][]auth.Role{
	ScreenStudentOnboarding:  {auth.RoleStudent},
	ScreenStudentDashboard:   {auth.RoleStudent},
	ScreenResumeOptimizer:    {auth.RoleStudent},
	ScreenMockInterview:      {auth.RoleStudent},
	ScreenJobListings:        {auth.RoleStudent},
	ScreenApplicationTracker: {auth.RoleStudent},
	ScreenStudentProfile:     {auth.RoleStudent},

	ScreenRecruiterDashboard: {auth.RoleRecruiter},
	ScreenCreateJob:          {auth.RoleRecruiter},
	ScreenManageJobs:         {auth.RoleRecruiter},
	ScreenCandidateReview:    {auth.RoleRecruiter},
	ScreenMessaging:          {auth.RoleRecruiter},
	ScreenCompanyProfile:     {auth.RoleRecruiter},

	ScreenAdminDashboard:    {auth.RoleAdmin},
	ScreenJobApproval:       {auth.RoleAdmin},
	ScreenUserManagement:    {auth.RoleAdmin},
	ScreenContentManagement: {auth.RoleAdmin},
}

// publicScreens is the set of screens reachable without a session.
var publicScreens = map[ScreenID]bool{
	ScreenWelcome:  true,
	ScreenLogin:    true,
	ScreenRegister: true,
}

// Known reports whether the screen id is part of the screen graph.
func Known(id ScreenID) bool {
	if publicScreens[id] {
		return true
	}
	_, ok := screenRoles[id]
	return ok
}

// Normalize resolves unknown screen ids to the landing screen.
// Unmapped identifiers never produce an error state.
func Normalize(id ScreenID) ScreenID {
	if Known(id) {
		return id
	}
	return ScreenWelcome
}

// RequiredRoles returns the roles allowed for a screen and whether the
// screen is restricted at all.
func RequiredRoles(id ScreenID) ([]auth.Role, bool) {
	roles, ok := screenRoles[id]
	return roles, ok
}

// DefaultDashboard is where an authenticated user lands when they try to
// revisit a public screen.
func DefaultDashboard(role auth.Role) ScreenID {
	switch role {
	case auth.RoleStudent:
		return ScreenStudentDashboard
	case auth.RoleRecruiter:
		return ScreenRecruiterDashboard
	case auth.RoleAdmin:
		return ScreenAdminDashboard
	default:
		return ScreenWelcome
	}
}

// InitialScreen is the first screen after a successful login.
// Students go through onboarding; other roles land on their dashboard.
func InitialScreen(role auth.Role) ScreenID {
	if role == auth.RoleStudent {
		return ScreenStudentOnboarding
	}
	return DefaultDashboard(role)
}
