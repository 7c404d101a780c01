package format

// Status classifies the outcome of one formatter invocation.
type Status int

const (
	StatusOK          Status = iota // file formatted or already conforming
	StatusNeedsFormat               // check mode: file does not conform
	StatusChanged                   // fix mode: content differed after formatting
	StatusError                     // I/O failure or formatter crash
)

// String returns the report label for a status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNeedsFormat:
		return "needs-format"
	case StatusChanged:
		return "changed"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Result records the outcome of running the formatter on a single file.
type Result struct {
	Path   string
	SeqNum int
	Status Status
	// Detail carries the formatter's stderr or the underlying error text.
	// Empty on success.
	Detail string
}

// OK returns true if the file needed no corrective action and nothing failed.
func (r *Result) OK() bool {
	return r.Status == StatusOK
}
