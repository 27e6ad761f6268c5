package constants

// Role permissions
const (
	// Admin permissions
	PermSuperAdminFull   = "pod-tracker.super-admin.full-permit"
	PermControlTowerFull = "pod-tracker.control-tower.full-permit"
	PermRunnerFull       = "pod-tracker.runner.full-permit"
	PermAuditorFull      = "pod-tracker.auditor.full-permit"

	// Special permissions
	PermAny = "any"
)

// Permission groups for convenience
var (
	DispatcherPermissions = []string{
		PermSuperAdminFull,
		PermControlTowerFull,
	}
)
