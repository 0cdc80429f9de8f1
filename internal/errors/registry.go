package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Outline Errors (M001-M019)
	// ============================================

	"M001": {
		Category: CategoryOutline,
		Message:  "Outline syntax error",
		Detail:   "The outline could not be parsed as YAML or JSON.",
	},
	"M002": {
		Category: CategoryOutline,
		Message:  "Invalid outline structure",
		Detail:   "The outline parsed, but an element has a field of the wrong type or a field that does not exist.",
	},
	"M003": {
		Category: CategoryOutline,
		Message:  "Unknown dialect",
		Detail:   "Supported dialects are html, xhtml and xml.",
	},
	"M004": {
		Category: CategoryOutline,
		Message:  "Invalid tag or attribute name",
		Detail:   "Names must start with a letter, '_' or ':' and contain only letters, digits, '-', '_', '.' and ':'.",
	},
	"M005": {
		Category: CategoryOutline,
		Message:  "Empty outline",
		Detail:   "The input contained no document.",
	},

	// ============================================
	// I/O Errors (M020-M039)
	// ============================================

	"M020": {
		Category: CategoryIO,
		Message:  "Input file not found",
	},
	"M021": {
		Category: CategoryIO,
		Message:  "Cannot read input",
	},
	"M022": {
		Category: CategoryIO,
		Message:  "Cannot write output",
	},

	// ============================================
	// Config Errors (M040-M059)
	// ============================================

	"M040": {
		Category: CategoryConfig,
		Message:  "Config file not found",
	},
	"M041": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "markup.json must be a valid JSON object.",
	},
	"M042": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
	},

	// ============================================
	// Server Errors (M060-M079)
	// ============================================

	"M060": {
		Category: CategoryServer,
		Message:  "Server failed",
	},
	"M061": {
		Category: CategoryServer,
		Message:  "Invalid request parameter",
	},
	"M062": {
		Category: CategoryServer,
		Message:  "Request body too large",
	},

	// ============================================
	// CLI Errors (M080-M099)
	// ============================================

	"M080": {
		Category: CategoryCLI,
		Message:  "Unknown template",
	},
	"M081": {
		Category: CategoryCLI,
		Message:  "File already exists",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
