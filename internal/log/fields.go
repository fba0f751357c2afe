package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldSheetID    = "sheet_id"
	FieldEventID    = "event_id"
	FieldDayIndex   = "day_index"
	FieldGeneration = "load_generation"
	FieldModel      = "model"
	FieldAmount     = "amount_per_person"
	FieldPeople     = "people_count"
	FieldLatitude   = "lat"
	FieldLongitude  = "lng"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentAPI     = "api"
	ComponentSource  = "source"
	ComponentExtract = "extract"
	ComponentWeather = "weather"
	ComponentSession = "session"
	ComponentLedger  = "ledger"
)

// Operations defines standard operation names
const (
	OpFetch     = "fetch"
	OpExtract   = "extract"
	OpParse     = "parse"
	OpUpdate    = "update"
	OpAggregate = "aggregate"
	OpForecast  = "forecast"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
