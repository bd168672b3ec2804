package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Declaration Errors (L001-L009)
	// ============================================

	"L001": {
		Category: CategoryConfig,
		Message:  "State declares no values",
		Detail:   "A state needs at least one logical value to map onto the DOM.",
		DocURL:   "https://lu.dev/docs/errors/L001",
	},
	"L002": {
		Category: CategoryConfig,
		Message:  "Representation not aligned with state values",
		Detail:   "Representation value lists are index-aligned with the state's values and cannot be longer.",
		DocURL:   "https://lu.dev/docs/errors/L002",
	},
	"L003": {
		Category: CategoryConfig,
		Message:  "Duplicate state value",
		Detail:   "Each logical value may appear only once in a state's value list.",
		DocURL:   "https://lu.dev/docs/errors/L003",
	},
	"L004": {
		Category: CategoryConfig,
		Message:  "Invalid representation filter",
		Detail:   "The filter of an aria or property representation must be a valid CSS selector.",
		DocURL:   "https://lu.dev/docs/errors/L004",
	},
	"L005": {
		Category: CategoryConfig,
		Message:  "Widget has no element",
		Detail:   "Widgets are bound to exactly one element and cannot be created without one.",
		DocURL:   "https://lu.dev/docs/errors/L005",
	},

	// ============================================
	// Runtime Errors (L010-L029)
	// ============================================

	"L010": {
		Category: CategoryRuntime,
		Message:  "Unknown state",
		Detail:   "The widget does not declare a state with this name.",
		DocURL:   "https://lu.dev/docs/errors/L010",
	},
	"L011": {
		Category: CategoryRuntime,
		Message:  "Value not in state enumeration",
		Detail:   "The value was recorded but no DOM representation could express it.",
		DocURL:   "https://lu.dev/docs/errors/L011",
	},
	"L012": {
		Category: CategoryRuntime,
		Message:  "Widget destroyed",
		Detail:   "The widget was torn down and can no longer route events.",
		DocURL:   "https://lu.dev/docs/errors/L012",
	},
	"L013": {
		Category: CategoryRuntime,
		Message:  "Unsupported observer target",
		Detail:   "Observers are given as a selector string, an element or a selection.",
		DocURL:   "https://lu.dev/docs/errors/L013",
	},

	// ============================================
	// DOM Errors (L030-L049)
	// ============================================

	"L030": {
		Category: CategoryDOM,
		Message:  "Markup could not be parsed",
		Detail:   "The HTML document could not be read.",
		DocURL:   "https://lu.dev/docs/errors/L030",
	},
	"L031": {
		Category: CategoryDOM,
		Message:  "Invalid selector",
		Detail:   "The CSS selector could not be compiled.",
		DocURL:   "https://lu.dev/docs/errors/L031",
	},

	// ============================================
	// Binding Errors (L050-L069)
	// ============================================

	"L050": {
		Category: CategoryBinding,
		Message:  "Widget factory failed",
		Detail:   "A registered factory returned an error while binding an element.",
		DocURL:   "https://lu.dev/docs/errors/L050",
	},
	"L051": {
		Category: CategoryBinding,
		Message:  "Unknown widget kind",
		Detail:   "No factory is registered under this name.",
		DocURL:   "https://lu.dev/docs/errors/L051",
	},
	"L052": {
		Category: CategoryBinding,
		Message:  "Malformed event replay",
		Detail:   `Event replays are written as "<selector>:<event>", e.g. "#tab2:click".`,
		DocURL:   "https://lu.dev/docs/errors/L052",
	},

	// ============================================
	// CLI Errors (L080-L099)
	// ============================================

	"L080": {
		Category: CategoryCLI,
		Message:  "Invalid configuration file",
		Detail:   "lu.json or lu.yaml could not be parsed.",
		DocURL:   "https://lu.dev/docs/errors/L080",
	},
	"L081": {
		Category: CategoryCLI,
		Message:  "Configuration file not found",
		Detail:   "No lu.json or lu.yaml was found.",
		DocURL:   "https://lu.dev/docs/errors/L081",
	},
	"L082": {
		Category: CategoryCLI,
		Message:  "Publishing failed",
		Detail:   "The rendered page could not be written to its destination.",
		DocURL:   "https://lu.dev/docs/errors/L082",
	},
	"L083": {
		Category: CategoryCLI,
		Message:  "Unknown project template",
		Detail:   "lu create knows the templates listed by 'lu create --list'.",
		DocURL:   "https://lu.dev/docs/errors/L083",
	},
	"L084": {
		Category: CategoryCLI,
		Message:  "Project already exists",
		Detail:   "lu create does not overwrite existing files.",
		DocURL:   "https://lu.dev/docs/errors/L084",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
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
