package domain

import "time"

// Archive score weights and normalisation ranges.
const (
	archiveWeightAge          = 0.4
	archiveWeightFrequency    = 0.3
	archiveWeightDependencies = 0.2
	archiveWeightSize         = 0.1

	archiveAgeDays         = 180.0
	archiveFrequencyCount  = 50.0
	archiveDependencyCount = 5.0
	archiveSizeGB          = 500.0
)

// Dataset is an entry of the data catalog.
type Dataset struct {
	ID                  int64         `json:"id,omitempty"`
	Name                string        `json:"name"`
	Department          string        `json:"department"`
	SizeGB              float64       `json:"size_gb"`
	RowsMillions        float64       `json:"rows_millions"`
	UploadDate          time.Time     `json:"upload_date"`
	LastAccessed        time.Time     `json:"last_accessed"`
	DaysSinceAccess     int           `json:"days_since_access"`
	QualityStatus       QualityStatus `json:"quality_status"`
	Dependencies        int           `json:"dependencies"`
	AccessFrequency30d  int           `json:"access_frequency_30d"`
	StorageCostPerMonth float64       `json:"storage_cost_per_month"`
	// ArchiveScore stays nil until ComputeArchiveScore runs.
	ArchiveScore *float64 `json:"archive_score,omitempty"`
}

// NewDataset validates d and returns it.
func NewDataset(d Dataset) (Dataset, error) {
	if err := d.Validate(); err != nil {
		return Dataset{}, err
	}
	return d, nil
}

// Validate checks the dataset invariants.
func (d Dataset) Validate() error {
	if d.Name == "" {
		return invalid("dataset", "name", nil, "cannot be empty")
	}
	if !d.QualityStatus.Valid() {
		return invalid("dataset", "quality_status", d.QualityStatus, "is not one of Passed, Failed, Pending")
	}
	if d.SizeGB < 0 {
		return invalid("dataset", "size_gb", d.SizeGB, "cannot be negative")
	}
	if d.DaysSinceAccess < 0 {
		return invalid("dataset", "days_since_access", d.DaysSinceAccess, "cannot be negative")
	}
	if d.Dependencies < 0 {
		return invalid("dataset", "dependencies", d.Dependencies, "cannot be negative")
	}
	if d.AccessFrequency30d < 0 {
		return invalid("dataset", "access_frequency_30d", d.AccessFrequency30d, "cannot be negative")
	}
	return nil
}

// IsStale reports whether the dataset has gone unread for more than thresholdDays.
func (d Dataset) IsStale(thresholdDays int) bool {
	return d.DaysSinceAccess > thresholdDays
}

// IsRarelyAccessed reports whether the 30 day access count is below threshold.
func (d Dataset) IsRarelyAccessed(threshold int) bool {
	return d.AccessFrequency30d < threshold
}

// ArchiveScore computes the archive suitability of d without touching it.
// Higher is a stronger candidate. The result is deliberately unclamped:
// inputs beyond the normalisation ranges push it outside [0, 100].
func ArchiveScore(d Dataset) float64 {
	return 100 * (archiveWeightAge*(float64(d.DaysSinceAccess)/archiveAgeDays) +
		archiveWeightFrequency*(1-float64(d.AccessFrequency30d)/archiveFrequencyCount) +
		archiveWeightDependencies*(1-float64(d.Dependencies)/archiveDependencyCount) +
		archiveWeightSize*(d.SizeGB/archiveSizeGB))
}

// ComputeArchiveScore computes the score and caches it on the dataset.
func (d *Dataset) ComputeArchiveScore() float64 {
	score := ArchiveScore(*d)
	d.ArchiveScore = &score
	return score
}

// Score returns the cached archive score, or 0 when it has not been computed.
func (d Dataset) Score() float64 {
	if d.ArchiveScore == nil {
		return 0
	}
	return *d.ArchiveScore
}

// Clone returns a copy that shares no memory with the receiver.
func (d Dataset) Clone() Dataset {
	if d.ArchiveScore != nil {
		v := *d.ArchiveScore
		d.ArchiveScore = &v
	}
	return d
}

// DaysBetween returns the number of whole days from since to now, never negative.
func DaysBetween(since, now time.Time) int {
	days := int(now.Sub(since).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
