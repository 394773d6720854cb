package exitcode

const (
	Success         = 0
	UsageError      = 1
	ValidationError = 2
	DBConnError     = 3
	DecodeError     = 4
	ComputeError    = 5
	PartialSuccess  = 6
)
