// Package exitcode defines the process exit statuses of datenorm.
package exitcode

const (
	Success         = 0
	UsageError      = 1
	ValidationError = 2
	ReadError       = 3
	NormalizeError  = 4
	WriteError      = 5
	AuditError      = 6
	// PartialSuccess means output was written but some sheets were skipped.
	PartialSuccess = 7
)

// ForPhase maps a pipeline phase name to its exit code.
func ForPhase(phase string) int {
	switch phase {
	case "read":
		return ReadError
	case "normalize":
		return NormalizeError
	case "write", "export":
		return WriteError
	case "audit":
		return AuditError
	}
	return UsageError
}
