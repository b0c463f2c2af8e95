package model

// Entry is the evaluated status of one mapping.
type Entry struct {
	Mapping         Mapping    `json:"mapping" yaml:"mapping"`
	SourcePath      Path       `json:"source_path" yaml:"source_path"`
	DestinationPath Path       `json:"destination_path" yaml:"destination_path"`
	Status          SyncStatus `json:"status" yaml:"status"`
	SourceHash      string     `json:"source_hash,omitempty" yaml:"source_hash,omitempty"`
	DestinationHash string     `json:"destination_hash,omitempty" yaml:"destination_hash,omitempty"`
	SourceSize      int64      `json:"source_size,omitempty" yaml:"source_size,omitempty"`
	DestinationSize int64      `json:"destination_size,omitempty" yaml:"destination_size,omitempty"`
}

// RepoReport holds the entries produced for one SourceRepo block. Error is set
// instead of Entries when the block could not be evaluated.
type RepoReport struct {
	Name    string  `json:"name" yaml:"name"`
	Root    Path    `json:"root" yaml:"root"`
	Entries []Entry `json:"entries" yaml:"entries"`
	Error   string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the block was skipped.
func (r RepoReport) Failed() bool {
	return r.Error != ""
}

// Report is the result of one status scan, in manifest order.
type Report struct {
	RepoRoot Path         `json:"repo_root" yaml:"repo_root"`
	Manifest Path         `json:"manifest" yaml:"manifest"`
	Repos    []RepoReport `json:"repos" yaml:"repos"`
}

// Summary counts entries per status across the whole report.
func (r Report) Summary() map[SyncStatus]int {
	counts := make(map[SyncStatus]int)

	for _, repo := range r.Repos {
		for _, entry := range repo.Entries {
			counts[entry.Status]++
		}
	}

	return counts
}

// FailedRepos returns the number of blocks that could not be evaluated.
func (r Report) FailedRepos() int {
	failed := 0

	for _, repo := range r.Repos {
		if repo.Failed() {
			failed++
		}
	}

	return failed
}
