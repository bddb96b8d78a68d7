package log

// Common field names for structured logging.
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldClientIP      = "client_ip"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldTransactionID = "transaction_id"
	FieldDescription   = "description"
	FieldAmount        = "amount"
	FieldCategory      = "category"
	FieldCurrency      = "currency"
	FieldBudget        = "budget"
	FieldUsername      = "username"
	FieldBackend       = "backend"
	FieldKey           = "key"
)

// Components defines standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentAuth    = "auth"
	ComponentKV      = "kv"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentExport  = "export"
	ComponentBackend = "backend"
)

// Operations defines standard operation names.
const (
	OpAdd      = "add"
	OpUpdate   = "update"
	OpRemove   = "remove"
	OpLoad     = "load"
	OpPersist  = "persist"
	OpSignup   = "signup"
	OpLogin    = "login"
	OpLogout   = "logout"
	OpExport   = "export"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
