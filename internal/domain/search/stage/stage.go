// Package stage names the phases of the hybrid search pipeline. Stage tags
// classify failures in outcomes and label trace entries.
package stage

// Stage identifies the pipeline phase at which a failure occurred.
type Stage string

const (
	// InputValidation tags an empty or whitespace-only query.
	InputValidation Stage = "input_validation"
	// EmbeddingGeneration tags an embedding provider failure.
	EmbeddingGeneration Stage = "embedding_generation"
	// DataStoreOperation tags a document store connectivity or query failure.
	DataStoreOperation Stage = "data_store_operation"
	// UnexpectedError tags anything not caught by an inner stage.
	UnexpectedError Stage = "unexpected_error"
)

// String returns the stage tag.
func (s Stage) String() string { return string(s) }

// UserMessage returns a short, session-presentable message for a failed
// stage. The internal diagnostic message stays in logs and the outcome.
func (s Stage) UserMessage() string {
	switch s {
	case InputValidation:
		return "Please tell me what kind of property you are looking for."
	case EmbeddingGeneration:
		return "Search is temporarily unavailable, please try again."
	case DataStoreOperation:
		return "Property listings are temporarily unavailable, please try again."
	default:
		return "Something went wrong with the search, please try again."
	}
}
