package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

var registry = map[string]ErrorTemplate{
	// Protocol (E101-E119)

	"E101": {
		Category: CategoryProtocol,
		Message:  "Handler not found",
		Detail:   "No handler is registered for this element. The widget may have re-rendered since the client last received markup.",
	},
	"E102": {
		Category: CategoryProtocol,
		Message:  "Malformed client frame",
		Detail:   "The client sent a frame that is not valid JSON or lacks an hid.",
	},
	"E103": {
		Category: CategoryProtocol,
		Message:  "Unsupported event",
		Detail:   "Only click events are dispatched to the dropdown.",
	},
	"E104": {
		Category: CategoryRuntime,
		Message:  "Handler panicked",
		Detail:   "An event handler panicked while the host dispatched a client event.",
	},

	// Catalog (E201-E219)

	"E201": {
		Category: CategoryCatalog,
		Message:  "Catalog source unreadable",
		Detail:   "The option catalog could not be read from its file or object store.",
	},
	"E202": {
		Category: CategoryCatalog,
		Message:  "Catalog decode failed",
		Detail:   "The option catalog is not a JSON list of {value, label} objects.",
	},
	"E203": {
		Category: CategoryCatalog,
		Message:  "Duplicate option value",
		Detail:   "Option values must be unique within a catalog.",
	},
	"E204": {
		Category: CategoryCatalog,
		Message:  "Unsupported catalog source",
		Detail:   "Catalog sources are local paths or s3://bucket/key URIs.",
	},

	// Config (E301-E319)

	"E301": {
		Category: CategoryConfig,
		Message:  "Invalid dropdown.json",
		Detail:   "The dropdown.json configuration file is malformed.",
	},
	"E302": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range.",
	},
	"E303": {
		Category: CategoryConfig,
		Message:  "Config file already exists",
		Detail:   "dropdown init does not overwrite an existing dropdown.json.",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
