package domain

import "fmt"

type Status string

const (
	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

type Reason string

const (
	ReasonNone             Reason = ""
	ReasonSourceMissing    Reason = "source_missing"
	ReasonPermissionDenied Reason = "permission_denied"
	ReasonIOError          Reason = "io_error"
)

// CopyOutcome is the result of copying a single FileEntry.
type CopyOutcome struct {
	Entry  FileEntry
	Status Status
	Reason Reason
	Target string
	Err    error
}

func Success(entry FileEntry, target string) CopyOutcome {
	return CopyOutcome{Entry: entry, Status: StatusSuccess, Target: target}
}

func Skipped(entry FileEntry, err error) CopyOutcome {
	return CopyOutcome{Entry: entry, Status: StatusSkipped, Reason: ReasonSourceMissing, Err: err}
}

func Failed(entry FileEntry, reason Reason, target string, err error) CopyOutcome {
	return CopyOutcome{Entry: entry, Status: StatusFailed, Reason: reason, Target: target, Err: err}
}

func (o CopyOutcome) String() string {
	switch o.Status {
	case StatusSuccess:
		return fmt.Sprintf("copied %s -> %s", o.Entry.Path, o.Target)
	case StatusSkipped:
		return fmt.Sprintf("skipped %s (%s)", o.Entry.Path, o.Reason)
	default:
		if o.Err != nil {
			return fmt.Sprintf("failed %s (%s): %v", o.Entry.Path, o.Reason, o.Err)
		}
		return fmt.Sprintf("failed %s (%s)", o.Entry.Path, o.Reason)
	}
}
