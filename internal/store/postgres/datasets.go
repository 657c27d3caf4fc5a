package postgres

import (
	"context"

	"mdip/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DatasetStore persists the data catalog in datasets_metadata.
type DatasetStore struct {
	t table
}

// NewDatasetStore creates a dataset store on pool.
func NewDatasetStore(pool *pgxpool.Pool) *DatasetStore {
	return &DatasetStore{t: table{
		pool:   pool,
		name:   "datasets_metadata",
		entity: store.EntityDataset,
		writable: columns(store.ColDatasetName, store.ColDepartment, store.ColSizeGB, store.ColRowsMillions,
			store.ColUploadDate, store.ColLastAccessed, store.ColQualityStatus, store.ColDependencies,
			store.ColAccessFrequency30d, store.ColStorageCostPerMonth),
	}}
}

// LoadAll returns every dataset row ordered by id.
func (s *DatasetStore) LoadAll(ctx context.Context) ([]store.Row[store.DatasetRecord], error) {
	rows, err := s.t.pool.Query(ctx, `
		SELECT id, dataset_name, department, size_gb, rows_millions, upload_date, last_accessed,
		       quality_status, dependencies, access_frequency_30d, storage_cost_per_month
		FROM datasets_metadata
		ORDER BY id
	`)
	if err != nil {
		return nil, store.Wrap("load", s.t.entity, 0, mapError(err))
	}
	defer rows.Close()

	var out []store.Row[store.DatasetRecord]
	for rows.Next() {
		var row store.Row[store.DatasetRecord]
		r := &row.Record
		if err := rows.Scan(&row.ID, &r.DatasetName, &r.Department, &r.SizeGB, &r.RowsMillions,
			&r.UploadDate, &r.LastAccessed, &r.QualityStatus, &r.Dependencies,
			&r.AccessFrequency30d, &r.StorageCostPerMonth); err != nil {
			return nil, store.Wrap("load", s.t.entity, 0, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Wrap("load", s.t.entity, 0, mapError(err))
	}
	return out, nil
}

// Insert adds a dataset row.
func (s *DatasetStore) Insert(ctx context.Context, r store.DatasetRecord) (int64, error) {
	return s.t.insert(ctx, `
		INSERT INTO datasets_metadata (dataset_name, department, size_gb, rows_millions, upload_date,
			last_accessed, quality_status, dependencies, access_frequency_30d, storage_cost_per_month)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, r.DatasetName, r.Department, r.SizeGB, r.RowsMillions, r.UploadDate, r.LastAccessed,
		r.QualityStatus, r.Dependencies, r.AccessFrequency30d, r.StorageCostPerMonth)
}

// Update patches a dataset row.
func (s *DatasetStore) Update(ctx context.Context, id int64, fields store.Fields) error {
	return s.t.update(ctx, id, fields)
}

// Delete removes a dataset row.
func (s *DatasetStore) Delete(ctx context.Context, id int64) error {
	return s.t.delete(ctx, id)
}
