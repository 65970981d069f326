package constants

// Common string constants used throughout the codebase
const (
	// ServiceName is attached to every production log line
	ServiceName = "cyphera-tax"

	// Environments
	ProdEnvironment  = "prod"
	DevEnvironment   = "dev"
	TestEnvironment  = "test"
	LocalEnvironment = "local"

	// Output formats for the CLI and API
	FormatJSON = "json"
	FormatYAML = "yaml"

	// Queue message attributes
	AttrReturnID      = "ReturnID"
	AttrTaxYear       = "TaxYear"
	AttrCorrelationID = "CorrelationID"
)
