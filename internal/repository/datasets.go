package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mdip/internal/domain"
	"mdip/internal/store"

	"github.com/rs/zerolog/log"
)

// DatasetPatch lists the dataset fields an update may change. Nil fields are left alone.
type DatasetPatch struct {
	Department          *string
	SizeGB              *float64
	QualityStatus       *domain.QualityStatus
	LastAccessed        *time.Time
	Dependencies        *int
	AccessFrequency30d  *int
	StorageCostPerMonth *float64
}

// DatasetRepository holds a snapshot of the data catalog, keyed by dataset name.
type DatasetRepository struct {
	mu       sync.RWMutex
	store    store.Store[store.DatasetRecord]
	now      func() time.Time
	datasets []domain.Dataset
	failures []DecodeError
}

// NewDatasetRepository creates an empty repository over s. Call Load to fill it.
func NewDatasetRepository(s store.Store[store.DatasetRecord], opts ...Option) *DatasetRepository {
	o := buildOptions(opts)
	return &DatasetRepository{store: s, now: o.now}
}

// Load replaces the snapshot with the store's current contents.
func (r *DatasetRepository) Load(ctx context.Context) error {
	rows, err := r.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load datasets: %w", err)
	}
	now := r.now()
	datasets, failures := decodeAll(store.EntityDataset, rows, func(row store.Row[store.DatasetRecord]) (domain.Dataset, error) {
		return DecodeDataset(row, now)
	})

	r.mu.Lock()
	r.datasets = datasets
	r.failures = failures
	r.mu.Unlock()

	log.Debug().Int("loaded", len(datasets)).Int("skipped", len(failures)).Msg("Loaded datasets")
	return nil
}

// DecodeErrors returns the rows skipped by the last Load.
func (r *DatasetRepository) DecodeErrors() []DecodeError {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]DecodeError(nil), r.failures...)
}

// All returns a copy of every dataset in snapshot order.
func (r *DatasetRepository) All() []domain.Dataset {
	return r.where(func(domain.Dataset) bool { return true })
}

// Get returns the dataset with the given name.
func (r *DatasetRepository) Get(name string) (domain.Dataset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if idx := r.indexOf(name); idx >= 0 {
		return r.datasets[idx].Clone(), true
	}
	return domain.Dataset{}, false
}

// ByDepartment returns datasets owned by department.
func (r *DatasetRepository) ByDepartment(department string) []domain.Dataset {
	return r.where(func(d domain.Dataset) bool { return d.Department == department })
}

// ByQualityStatus returns datasets whose quality check ended in status.
func (r *DatasetRepository) ByQualityStatus(status domain.QualityStatus) []domain.Dataset {
	return r.where(func(d domain.Dataset) bool { return d.QualityStatus == status })
}

// Stale returns datasets not accessed for more than thresholdDays.
func (r *DatasetRepository) Stale(thresholdDays int) []domain.Dataset {
	return r.where(func(d domain.Dataset) bool { return d.IsStale(thresholdDays) })
}

// RarelyAccessed returns datasets read fewer than threshold times in the last 30 days.
func (r *DatasetRepository) RarelyAccessed(threshold int) []domain.Dataset {
	return r.where(func(d domain.Dataset) bool { return d.IsRarelyAccessed(threshold) })
}

// TopConsumers returns the n largest datasets. Equal sizes keep snapshot order.
func (r *DatasetRepository) TopConsumers(n int) []domain.Dataset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneDatasets(topN(r.datasets, n, func(d domain.Dataset) float64 { return d.SizeGB }))
}

// MostDependent returns the n datasets with the most dependencies. Equal counts keep snapshot order.
func (r *DatasetRepository) MostDependent(n int) []domain.Dataset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneDatasets(topN(r.datasets, n, func(d domain.Dataset) float64 { return float64(d.Dependencies) }))
}

// ArchiveCandidates computes any missing archive score, then returns the n highest scoring
// datasets. Equal scores keep snapshot order.
func (r *DatasetRepository) ArchiveCandidates(n int) []domain.Dataset {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.datasets {
		if r.datasets[i].ArchiveScore == nil {
			r.datasets[i].ComputeArchiveScore()
		}
	}
	return cloneDatasets(topN(r.datasets, n, domain.Dataset.Score))
}

// TotalStorage sums size_gb over the snapshot.
func (r *DatasetRepository) TotalStorage() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total float64
	for _, d := range r.datasets {
		total += d.SizeGB
	}
	return total
}

// TotalCost sums the monthly storage cost over the snapshot.
func (r *DatasetRepository) TotalCost() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total float64
	for _, d := range r.datasets {
		total += d.StorageCostPerMonth
	}
	return total
}

// Count returns the snapshot size.
func (r *DatasetRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.datasets)
}

// Add validates and persists d, then appends it to the snapshot.
// When LastAccessed is unset it is back-dated from DaysSinceAccess; otherwise
// DaysSinceAccess is derived from it.
func (r *DatasetRepository) Add(ctx context.Context, d domain.Dataset) (domain.Dataset, error) {
	now := r.now()
	if d.LastAccessed.IsZero() {
		d.LastAccessed = now.Add(-time.Duration(d.DaysSinceAccess) * 24 * time.Hour)
	} else {
		d.DaysSinceAccess = domain.DaysBetween(d.LastAccessed, now)
	}
	if d.UploadDate.IsZero() {
		d.UploadDate = d.LastAccessed
	}
	if err := d.Validate(); err != nil {
		return domain.Dataset{}, err
	}

	id, err := r.store.Insert(ctx, EncodeDataset(d))
	if err != nil {
		return domain.Dataset{}, err
	}
	d = d.Clone()
	d.ID = id

	r.mu.Lock()
	r.datasets = append(r.datasets, d)
	r.mu.Unlock()
	return d.Clone(), nil
}

// Remove deletes the named dataset from the store and the snapshot.
func (r *DatasetRepository) Remove(ctx context.Context, name string) error {
	current, ok := r.Get(name)
	if !ok {
		return store.Wrap("delete", store.EntityDataset, 0, fmt.Errorf("%w: %s", store.ErrNotFound, name))
	}
	if err := r.store.Delete(ctx, current.ID); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if idx := r.indexOf(name); idx >= 0 {
		r.datasets = append(r.datasets[:idx], r.datasets[idx+1:]...)
	}
	return nil
}

// Update applies patch to the named dataset. The cached archive score is dropped
// because its inputs may have changed.
func (r *DatasetRepository) Update(ctx context.Context, name string, patch DatasetPatch) (domain.Dataset, error) {
	current, ok := r.Get(name)
	if !ok {
		return domain.Dataset{}, store.Wrap("update", store.EntityDataset, 0, fmt.Errorf("%w: %s", store.ErrNotFound, name))
	}

	fields := store.Fields{}
	if patch.Department != nil {
		current.Department = *patch.Department
		fields[store.ColDepartment] = *patch.Department
	}
	if patch.SizeGB != nil {
		current.SizeGB = *patch.SizeGB
		fields[store.ColSizeGB] = *patch.SizeGB
	}
	if patch.QualityStatus != nil {
		current.QualityStatus = *patch.QualityStatus
		fields[store.ColQualityStatus] = string(*patch.QualityStatus)
	}
	if patch.LastAccessed != nil {
		current.LastAccessed = *patch.LastAccessed
		current.DaysSinceAccess = domain.DaysBetween(*patch.LastAccessed, r.now())
		fields[store.ColLastAccessed] = *patch.LastAccessed
	}
	if patch.Dependencies != nil {
		current.Dependencies = *patch.Dependencies
		fields[store.ColDependencies] = *patch.Dependencies
	}
	if patch.AccessFrequency30d != nil {
		current.AccessFrequency30d = *patch.AccessFrequency30d
		fields[store.ColAccessFrequency30d] = *patch.AccessFrequency30d
	}
	if patch.StorageCostPerMonth != nil {
		current.StorageCostPerMonth = *patch.StorageCostPerMonth
		fields[store.ColStorageCostPerMonth] = *patch.StorageCostPerMonth
	}
	if len(fields) == 0 {
		return domain.Dataset{}, fmt.Errorf("dataset %s: nothing to update", name)
	}
	if err := current.Validate(); err != nil {
		return domain.Dataset{}, err
	}
	current.ArchiveScore = nil

	if err := r.store.Update(ctx, current.ID, fields); err != nil {
		return domain.Dataset{}, err
	}
	r.mu.Lock()
	if idx := r.indexOf(name); idx >= 0 {
		r.datasets[idx] = current.Clone()
	}
	r.mu.Unlock()
	return current, nil
}

func (r *DatasetRepository) where(keep func(domain.Dataset) bool) []domain.Dataset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filter(r.datasets, keep, domain.Dataset.Clone)
}

func (r *DatasetRepository) indexOf(name string) int {
	for i, d := range r.datasets {
		if d.Name == name {
			return i
		}
	}
	return -1
}

func cloneDatasets(in []domain.Dataset) []domain.Dataset {
	out := make([]domain.Dataset, len(in))
	for i, d := range in {
		out[i] = d.Clone()
	}
	return out
}
