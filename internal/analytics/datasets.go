package analytics

import (
	"mdip/internal/domain"
)

// highDependencyLimit is how many datasets DependencyAnalysis lists.
const highDependencyLimit = 5

// DatasetMetrics are the headline numbers of the data catalog tab.
type DatasetMetrics struct {
	TotalDatasets        int     `json:"total_datasets"`
	TotalStorageGB       float64 `json:"total_storage_gb"`
	TotalStorageCost     float64 `json:"total_storage_cost"`
	PendingQualityChecks int     `json:"pending_quality_checks"`
}

// DepartmentUsage is the storage footprint of one department.
type DepartmentUsage struct {
	Department   string  `json:"department"`
	SizeGB       float64 `json:"size_gb"`
	RowsMillions float64 `json:"rows_millions"`
}

// RiskLevels buckets datasets by how many others depend on them.
type RiskLevels struct {
	High   int `json:"High"`   // dependencies >= 3
	Medium int `json:"Medium"` // 1 or 2
	Low    int `json:"Low"`    // none
}

// Total returns the number of datasets classified.
func (r RiskLevels) Total() int {
	return r.High + r.Medium + r.Low
}

// DependencyAnalysis lists the most depended-on datasets and the risk spread of the catalog.
type DependencyAnalysis struct {
	HighDependency      []domain.Dataset `json:"high_dependency_datasets"`
	RiskLevels          RiskLevels       `json:"risk_levels"`
	AverageDependencies float64          `json:"average_dependencies"`
	MaxDependencies     int              `json:"max_dependencies"`
}

// ArchivingRecommendations are the top archive candidates and what archiving them would free.
type ArchivingRecommendations struct {
	Candidates                  []domain.Dataset `json:"candidates"`
	PotentialSavingsGB          float64          `json:"potential_savings_gb"`
	PotentialCostSavingsMonthly float64          `json:"potential_cost_savings_monthly"`
	PotentialCostSavingsAnnual  float64          `json:"potential_cost_savings_annual"`
}

// DatasetService computes data governance analytics.
type DatasetService struct {
	source DatasetSource
}

// NewDatasetService creates a service over source.
func NewDatasetService(source DatasetSource) *DatasetService {
	return &DatasetService{source: source}
}

// Metrics returns the headline catalog numbers.
func (s *DatasetService) Metrics() DatasetMetrics {
	all := s.source.All()
	m := DatasetMetrics{
		TotalDatasets:    len(all),
		TotalStorageGB:   s.source.TotalStorage(),
		TotalStorageCost: s.source.TotalCost(),
	}
	for _, d := range all {
		if d.QualityStatus == domain.QualityPending {
			m.PendingQualityChecks++
		}
	}
	return m
}

// ResourceConsumptionByDepartment sums size and rows per department in first-seen order.
func (s *DatasetService) ResourceConsumptionByDepartment() []DepartmentUsage {
	out := []DepartmentUsage{}
	index := make(map[string]int)
	for _, d := range s.source.All() {
		i, ok := index[d.Department]
		if !ok {
			i = len(out)
			index[d.Department] = i
			out = append(out, DepartmentUsage{Department: d.Department})
		}
		out[i].SizeGB += d.SizeGB
		out[i].RowsMillions += d.RowsMillions
	}
	return out
}

// DependencyAnalysis returns the five datasets with the most dependencies (ties keep snapshot
// order) and classifies every dataset into exactly one risk bucket.
func (s *DatasetService) DependencyAnalysis() DependencyAnalysis {
	all := s.source.All()
	res := DependencyAnalysis{
		HighDependency: s.source.MostDependent(highDependencyLimit),
	}

	var total int
	for i, d := range all {
		switch {
		case d.Dependencies >= 3:
			res.RiskLevels.High++
		case d.Dependencies >= 1:
			res.RiskLevels.Medium++
		default:
			res.RiskLevels.Low++
		}
		total += d.Dependencies
		if i == 0 || d.Dependencies > res.MaxDependencies {
			res.MaxDependencies = d.Dependencies
		}
	}
	if len(all) > 0 {
		res.AverageDependencies = float64(total) / float64(len(all))
	}
	return res
}

// ArchivingRecommendations returns the top limit archive candidates and the storage and
// cost they account for. An empty catalog yields no candidates and zero savings.
func (s *DatasetService) ArchivingRecommendations(limit int) ArchivingRecommendations {
	candidates := s.source.ArchiveCandidates(limit)
	res := ArchivingRecommendations{Candidates: candidates}
	if len(candidates) == 0 {
		res.Candidates = []domain.Dataset{}
		return res
	}
	for _, d := range candidates {
		res.PotentialSavingsGB += d.SizeGB
		res.PotentialCostSavingsMonthly += d.StorageCostPerMonth
	}
	res.PotentialCostSavingsAnnual = res.PotentialCostSavingsMonthly * 12
	return res
}

// Stale returns datasets not accessed for more than thresholdDays.
func (s *DatasetService) Stale(thresholdDays int) []domain.Dataset {
	return s.source.Stale(thresholdDays)
}

// RarelyAccessed returns datasets read fewer than threshold times in 30 days.
func (s *DatasetService) RarelyAccessed(threshold int) []domain.Dataset {
	return s.source.RarelyAccessed(threshold)
}
