package wall

// SubmissionError wraps a relay failure during submit. The guest keeps their
// draft; no viewer's ledger gained the message because the local append only
// happens after the relay accepts.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return "message submission failed: " + e.Err.Error()
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
