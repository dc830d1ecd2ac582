package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldExpenseID  = "expense_id"
	FieldAmount     = "amount_cents"
	FieldCategory   = "category"
	FieldDate       = "date"
	FieldDataPoints = "data_points"
	FieldModelPath  = "model_path"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentStorage  = "storage"
	ComponentForecast = "forecast"
	ComponentChart    = "chart"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentService  = "service"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpDelete   = "delete"
	OpList     = "list"
	OpClear    = "clear"
	OpSeed     = "seed"
	OpTrain    = "train"
	OpPredict  = "predict"
	OpRender   = "render"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
