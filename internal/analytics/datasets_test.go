package analytics

import (
	"context"
	"testing"
	"time"

	"mdip/internal/repository"
	"mdip/internal/store"
	"mdip/internal/store/memory"
)

func datasetRepo(t *testing.T, records ...store.DatasetRecord) *repository.DatasetRepository {
	t.Helper()
	ctx := context.Background()
	s := memory.NewDatasetStore()
	for _, rec := range records {
		if _, err := s.Insert(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}
	repo := repository.NewDatasetRepository(s, repository.WithClock(func() time.Time { return now }))
	if err := repo.Load(ctx); err != nil {
		t.Fatal(err)
	}
	return repo
}

func dataset(name, dept string, sizeGB float64, daysAgo, freq, deps int, cost float64) store.DatasetRecord {
	return store.DatasetRecord{
		DatasetName:         name,
		Department:          dept,
		SizeGB:              sizeGB,
		RowsMillions:        sizeGB / 2,
		UploadDate:          now.AddDate(-1, 0, 0),
		LastAccessed:        now.AddDate(0, 0, -daysAgo),
		QualityStatus:       "Passed",
		Dependencies:        deps,
		AccessFrequency30d:  freq,
		StorageCostPerMonth: cost,
	}
}

func TestDatasetService_DependencyAnalysis(t *testing.T) {
	records := []store.DatasetRecord{
		dataset("a", "Finance", 10, 1, 10, 0, 1),
		dataset("b", "Finance", 10, 1, 10, 1, 1),
		dataset("c", "Research", 10, 1, 10, 2, 1),
		dataset("d", "Research", 10, 1, 10, 3, 1),
		dataset("e", "Research", 10, 1, 10, 7, 1),
		dataset("f", "Ops", 10, 1, 10, 3, 1),
		dataset("g", "Ops", 10, 1, 10, 0, 1),
	}
	res := NewDatasetService(datasetRepo(t, records...)).DependencyAnalysis()

	if res.RiskLevels.Total() != len(records) {
		t.Errorf("Expected buckets to cover all %d datasets, got %d", len(records), res.RiskLevels.Total())
	}
	want := RiskLevels{High: 3, Medium: 2, Low: 2}
	if res.RiskLevels != want {
		t.Errorf("Expected %+v, got %+v", want, res.RiskLevels)
	}

	var got []string
	for _, d := range res.HighDependency {
		got = append(got, d.Name)
	}
	wantNames := []string{"e", "d", "f", "c", "b"}
	if len(got) != len(wantNames) {
		t.Fatalf("Expected %v, got %v", wantNames, got)
	}
	for i := range wantNames {
		if got[i] != wantNames[i] {
			t.Errorf("Expected %v, got %v", wantNames, got)
			break
		}
	}
	if res.MaxDependencies != 7 || res.AverageDependencies != 16.0/7.0 {
		t.Errorf("Expected max 7 avg %v, got max %d avg %v", 16.0/7.0, res.MaxDependencies, res.AverageDependencies)
	}
}

func TestDatasetService_ArchivingRecommendations(t *testing.T) {
	t.Run("empty catalog", func(t *testing.T) {
		res := NewDatasetService(datasetRepo(t)).ArchivingRecommendations(5)
		if len(res.Candidates) != 0 || res.PotentialSavingsGB != 0 || res.PotentialCostSavingsMonthly != 0 {
			t.Errorf("Expected zero recommendations, got %+v", res)
		}
	})

	t.Run("sums over the returned candidates only", func(t *testing.T) {
		repo := datasetRepo(t,
			dataset("hot", "Ops", 100, 0, 50, 5, 10),
			dataset("cold", "Ops", 200, 180, 0, 0, 20),
			dataset("warm", "Ops", 50, 90, 10, 1, 5),
		)
		res := NewDatasetService(repo).ArchivingRecommendations(2)

		if len(res.Candidates) != 2 || res.Candidates[0].Name != "cold" || res.Candidates[1].Name != "warm" {
			t.Fatalf("Unexpected candidates: %+v", res.Candidates)
		}
		if res.PotentialSavingsGB != 250 {
			t.Errorf("Expected 250 GB, got %v", res.PotentialSavingsGB)
		}
		if res.PotentialCostSavingsMonthly != 25 || res.PotentialCostSavingsAnnual != 300 {
			t.Errorf("Expected 25 monthly and 300 annual, got %v and %v",
				res.PotentialCostSavingsMonthly, res.PotentialCostSavingsAnnual)
		}
	})
}

func TestDatasetService_MetricsAndDepartments(t *testing.T) {
	pending := dataset("p", "Research", 30, 1, 1, 0, 3)
	pending.QualityStatus = "Pending"
	svc := NewDatasetService(datasetRepo(t,
		dataset("a", "Finance", 10, 1, 1, 0, 1),
		pending,
		dataset("b", "Finance", 20, 1, 1, 0, 2),
	))

	m := svc.Metrics()
	want := DatasetMetrics{TotalDatasets: 3, TotalStorageGB: 60, TotalStorageCost: 6, PendingQualityChecks: 1}
	if m != want {
		t.Errorf("Expected %+v, got %+v", want, m)
	}

	usage := svc.ResourceConsumptionByDepartment()
	if len(usage) != 2 || usage[0].Department != "Finance" || usage[0].SizeGB != 30 || usage[1].RowsMillions != 15 {
		t.Errorf("Unexpected department usage: %+v", usage)
	}
}
