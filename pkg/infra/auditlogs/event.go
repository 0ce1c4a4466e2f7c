package auditlogs

// Event describes an admin action worth keeping a trail of.
type Event struct {
	Action     string
	Resource   string
	ResourceID string
	Details    map[string]interface{}
}

const (
	ActionLogin          = "login"
	ActionLoginFailed    = "login_failed"
	ActionLogout         = "logout"
	ActionFeedbackUpdate = "feedback_update"
	ActionFeedbackDelete = "feedback_delete"
	ActionDeviceBlock    = "device_block"
	ActionDeviceUnblock  = "device_unblock"
	ActionExport         = "export"
)
