package model

import "fmt"

// SyncStatus classifies a single mapped file pair.
type SyncStatus int

const (
	// InSync indicates both files exist and their digests match.
	InSync SyncStatus = iota
	// Modified indicates both files exist but their digests differ.
	Modified
	// MissingLocally indicates the destination file has not been created yet.
	MissingLocally
	// ModifiedRemoved indicates the source file was removed but the destination still exists.
	ModifiedRemoved
	// MissingBoth indicates neither file exists.
	MissingBoth
)

// Classify derives the status of a pair from its existence flags and, when
// both sides exist, whether their digests are equal.
func Classify(sourceExists, destinationExists, hashesEqual bool) SyncStatus {
	switch {
	case sourceExists && destinationExists:
		if hashesEqual {
			return InSync
		}

		return Modified
	case sourceExists:
		return MissingLocally
	case destinationExists:
		return ModifiedRemoved
	default:
		return MissingBoth
	}
}

// String returns the identifier form of the status.
func (s SyncStatus) String() string {
	switch s {
	case InSync:
		return "in-sync"
	case Modified:
		return "modified"
	case MissingLocally:
		return "missing-locally"
	case ModifiedRemoved:
		return "modified-removed"
	case MissingBoth:
		return "missing-both"
	default:
		return "unknown"
	}
}

// Label returns the column shown in status output: SYNC or MODIFIED.
func (s SyncStatus) Label() string {
	switch s {
	case InSync, MissingBoth:
		return "SYNC"
	default:
		return "MODIFIED"
	}
}

// NeedsAttention reports whether the pair has to be synced by hand.
func (s SyncStatus) NeedsAttention() bool {
	return s.Label() == "MODIFIED"
}

// Reason returns the short phrase explaining the status.
func (s SyncStatus) Reason() string {
	switch s {
	case InSync:
		return "file hashes match"
	case Modified:
		return "file hashes DO NOT match"
	case MissingLocally:
		return "local file does not exist, needs to be copied from source repo"
	case ModifiedRemoved:
		return "has been removed in the source repo"
	case MissingBoth:
		return "does not exist in either repo"
	default:
		return "unknown"
	}
}

// MarshalText renders the status by name so json and yaml reports stay readable.
func (s SyncStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status written by MarshalText.
func (s *SyncStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseSyncStatus(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

// ParseSyncStatus converts the identifier form back to a SyncStatus.
func ParseSyncStatus(value string) (SyncStatus, error) {
	for _, status := range []SyncStatus{InSync, Modified, MissingLocally, ModifiedRemoved, MissingBoth} {
		if status.String() == value {
			return status, nil
		}
	}

	return 0, fmt.Errorf("unknown sync status %q", value)
}
