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
	// Store Errors (D001-D019)
	// ============================================

	"D001": {
		Category: CategoryStore,
		Message:  "Panel not found",
	},
	"D002": {
		Category: CategoryStore,
		Message:  "Preset not found",
	},
	"D003": {
		Category: CategoryStore,
		Message:  "Control not found",
		Detail:   "The path does not name a leaf control of the panel.",
	},
	"D004": {
		Category: CategoryStore,
		Message:  "Store closed",
	},

	// ============================================
	// Transport Errors (D060-D079)
	// ============================================

	"D060": {
		Category: CategoryTransport,
		Message:  "Invalid request body",
	},
	"D061": {
		Category: CategoryTransport,
		Message:  "Value rejected",
		Detail:   "The value cannot be converted to the control's type.",
	},
	"D062": {
		Category: CategoryTransport,
		Message:  "WebSocket upgrade failed",
	},
	"D063": {
		Category: CategoryTransport,
		Message:  "Unknown message type",
	},

	// ============================================
	// Config Errors (D120-D139)
	// ============================================

	"D120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "dialkit.json could not be read or parsed.",
	},
	"D121": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
	},
	"D122": {
		Category: CategoryConfig,
		Message:  "Invalid port",
	},
	"D123": {
		Category: CategoryConfig,
		Message:  "Invalid log level",
	},
	"D124": {
		Category: CategoryConfig,
		Message:  "Invalid duration",
	},
	"D125": {
		Category: CategoryConfig,
		Message:  "Invalid panel entry",
	},
	"D126": {
		Category: CategoryConfig,
		Message:  "Configuration file already exists",
	},

	// ============================================
	// Loader Errors (D140-D159)
	// ============================================

	"D140": {
		Category: CategoryLoader,
		Message:  "Panel file not found",
	},
	"D141": {
		Category: CategoryLoader,
		Message:  "Panel file could not be parsed",
	},
	"D142": {
		Category: CategoryLoader,
		Message:  "Unsupported panel file format",
		Detail:   "Panel files must end in .json or .toml.",
	},
	"D143": {
		Category: CategoryLoader,
		Message:  "Panel root must be an object",
	},

	// ============================================
	// Export Errors (D160-D179)
	// ============================================

	"D160": {
		Category: CategoryExport,
		Message:  "Export encoding failed",
	},
	"D161": {
		Category: CategoryExport,
		Message:  "Export write failed",
	},
	"D162": {
		Category: CategoryExport,
		Message:  "No export sink configured",
	},

	// ============================================
	// CLI Errors (D180-D199)
	// ============================================

	"D180": {
		Category: CategoryCLI,
		Message:  "Missing argument",
	},
	"D181": {
		Category: CategoryCLI,
		Message:  "Panel not configured",
	},
}
