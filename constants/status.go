package constants

// Status is the terminal outcome of one pipeline invocation.
type Status string

// Stable values (these exact strings appear in responses and ledger rows).
const (
	StatusSuccess Status = "success" // statement extracted
	StatusIgnored Status = "ignored" // event decoded but not processable (non-PDF)
	StatusError   Status = "error"   // terminal failure
)

// Reason qualifies a non-success outcome.
type Reason string

const (
	ReasonDecodeError      Reason = "decode-error"     // empty or malformed notification
	ReasonUnsupportedType  Reason = "unsupported-type" // object is not a PDF
	ReasonExtractionFailed Reason = "extraction-failed"
	ReasonUnexpectedError  Reason = "unexpected-error"
)
