// Package domain defines the core domain models for the LearnHub backend.
package domain

// DatasetName identifies one of the store collections fed to the assistant.
type DatasetName string

const (
	DatasetCatalog     DatasetName = "catalog"
	DatasetTasks       DatasetName = "tasks"
	DatasetEnrollments DatasetName = "enrollments"
	DatasetCartItems   DatasetName = "cartItems"
)

// DatasetNames lists every dataset in the order they are issued.
var DatasetNames = []DatasetName{
	DatasetCatalog,
	DatasetTasks,
	DatasetEnrollments,
	DatasetCartItems,
}

// Row caps applied to each dataset.
const (
	CatalogRowLimit     = 50
	TasksRowLimit       = 50
	EnrollmentsRowLimit = 10
	CartItemsRowLimit   = 10
)

// RowLimit returns the cap for the named dataset, or 0 for unknown names.
func (n DatasetName) RowLimit() int {
	switch n {
	case DatasetCatalog:
		return CatalogRowLimit
	case DatasetTasks:
		return TasksRowLimit
	case DatasetEnrollments:
		return EnrollmentsRowLimit
	case DatasetCartItems:
		return CartItemsRowLimit
	}
	return 0
}

// Conditional reports whether the dataset is scoped to a caller identity.
func (n DatasetName) Conditional() bool {
	return n == DatasetEnrollments || n == DatasetCartItems
}

// ErrorKind classifies a failed assistant request.
type ErrorKind string

const (
	ErrorKindInvalidRequest     ErrorKind = "InvalidRequest"
	ErrorKindPolicyDenied       ErrorKind = "PolicyDenied"
	ErrorKindUpstreamDependency ErrorKind = "UpstreamDependencyError"
	ErrorKindConfiguration      ErrorKind = "ConfigurationError"
	ErrorKindUpstreamService    ErrorKind = "UpstreamServiceError"
	ErrorKindUpstreamProtocol   ErrorKind = "UpstreamProtocolError"
	ErrorKindInternal           ErrorKind = "Internal"
)

// PolicyDecision is the outcome of the assistant admission policy.
type PolicyDecision string

const (
	PolicyDecisionAllow PolicyDecision = "allow"
	PolicyDecisionBlock PolicyDecision = "block"
)
