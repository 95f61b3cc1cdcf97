package log

// Common field names for structured logging
const (
	FieldComponent    = "component"
	FieldRequestID    = "request_id"
	FieldClientIP     = "client_ip"
	FieldMethod       = "method"
	FieldPath         = "path"
	FieldStatusCode   = "status_code"
	FieldDuration     = "duration_ms"
	FieldUserAgent    = "user_agent"
	FieldError        = "error"
	FieldOperation    = "operation"
	FieldHabitID      = "habit_id"
	FieldHabitName    = "habit_name"
	FieldDateID       = "date_id"
	FieldReminderTime = "reminder_time"
	FieldAlertCount   = "alert_count"
	FieldHabitCount   = "habit_count"
	FieldBackend      = "backend"
	FieldStateKey     = "state_key"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentCore     = "core"
	ComponentStorage  = "storage"
	ComponentAMQP     = "amqp"
	ComponentReminder = "reminder"
	ComponentWorker   = "worker"
	ComponentBackend  = "backend"
	ComponentCache    = "cache"
)

// Operations defines standard operation names
const (
	OpToggle   = "toggle"
	OpCreate   = "create"
	OpDelete   = "delete"
	OpLoad     = "load"
	OpSave     = "save"
	OpEvaluate = "evaluate"
	OpPublish  = "publish"
	OpConsume  = "consume"
	OpDismiss  = "dismiss"
)
