package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Render Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryRender,
		Message:  "Host tree rejected a mutation",
		Detail:   "The host tree returned an error while a list was rendered or patched. Mutations applied before the failure are not rolled back; the mount starts from an empty container on its next render.",
	},
	"E101": {
		Category: CategoryRender,
		Message:  "Node used after it was consumed",
		Detail:   "A node passed as the old tree of a patch, or removed, cannot be used again. Build a fresh tree for every render.",
	},
	"E102": {
		Category: CategoryRender,
		Message:  "Node patched against itself",
		Detail:   "The new tree and the previous tree must be distinct values.",
	},

	// ============================================
	// Config Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid vlist.json",
		Detail:   "The configuration file contains invalid JSON.",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid server settings",
		Detail:   "The server port must be between 1 and 65535 and the shutdown timeout a positive Go duration such as \"10s\".",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid log level",
		Detail:   "The log level must be one of debug, info, warn or error.",
	},
	"E123": {
		Category: CategoryConfig,
		Message:  "Invalid snapshot storage",
		Detail:   "Snapshots go to an S3 bucket or a Redis server when one is configured, otherwise to a local directory. A bucket needs a region.",
	},

	// ============================================
	// CLI Errors (E140-E149)
	// ============================================

	"E140": {
		Category: CategoryCLI,
		Message:  "Missing script argument",
		Detail:   "The render command needs the path of a patch script.",
	},
	"E141": {
		Category: CategoryCLI,
		Message:  "No vlist.json found",
		Detail:   "The config file was not found in the current directory.",
	},

	// ============================================
	// Script Errors (E150-E169)
	// ============================================

	"E150": {
		Category: CategoryScript,
		Message:  "Invalid script syntax",
		Detail:   "The patch script is not a valid YAML or JSON document.",
	},
	"E151": {
		Category: CategoryScript,
		Message:  "Node must set exactly one of text, element or list",
		Detail:   "Every node in a step describes a single text node, a single element or a nested list.",
	},
	"E152": {
		Category: CategoryScript,
		Message:  "Invalid node field",
		Detail:   "Attributes and children are only allowed on element nodes.",
	},
	"E153": {
		Category: CategoryScript,
		Message:  "Script has no steps",
		Detail:   "A patch script needs at least one step to render.",
	},

	// ============================================
	// Storage Errors (E170-E179)
	// ============================================

	"E170": {
		Category: CategoryStorage,
		Message:  "Snapshot store unavailable",
		Detail:   "The snapshot store could not be opened with the configured settings.",
	},
	"E171": {
		Category: CategoryStorage,
		Message:  "Snapshot write failed",
	},

	// ============================================
	// Transport Errors (E180-E189)
	// ============================================

	"E180": {
		Category: CategoryTransport,
		Message:  "Server failed to start",
		Detail:   "The HTTP listener could not be bound. Check that the port is free.",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
