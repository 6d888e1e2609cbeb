package constants

// DocumentStatus is the canonical lifecycle status of an uploaded document.
type DocumentStatus string

// Stable values (these exact strings go over the wire).
const (
	DocumentPending    DocumentStatus = "pending"
	DocumentProcessing DocumentStatus = "processing"
	DocumentCompleted  DocumentStatus = "completed"
	DocumentError      DocumentStatus = "error"
)

// ResultStatus is the aggregate status of a vehicle title or of a whole
// extraction result.
type ResultStatus string

const (
	ResultCompleted    ResultStatus = "completed"
	ResultWithWarnings ResultStatus = "completed_with_warnings"
	ResultError        ResultStatus = "error"
)

// StepStatus is the status of one stage of the processing pipeline.
type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepActive    StepStatus = "active"
	StepCompleted StepStatus = "completed"
)

// Phase is the lifecycle of the extraction pipeline itself. Transitions are
// driven by the backend call outcome: idle -> running -> succeeded | failed,
// and failed -> running on retry.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseRunning   Phase = "running"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
)
