// Package generator produces reproducible synthetic incidents, datasets and tickets for demos
// and seeding an empty database.
package generator

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"mdip/internal/domain"
)

// DefaultSeed keeps generated data stable across runs.
const DefaultSeed = 42

var (
	threatCategories = []string{"Phishing", "Malware", "DDoS", "Unauthorized Access", "Data Breach", "Ransomware"}

	catalog = []struct {
		name       string
		department string
	}{
		{"Network_Logs_2024", "IT"},
		{"Security_Incidents_Q1", "Cyber"},
		{"Server_Metrics_Daily", "IT"},
		{"Phishing_Attempts_Log", "Cyber"},
		{"Database_Backup_Metadata", "IT"},
		{"Firewall_Rules_Export", "Cyber"},
		{"Application_Logs_Production", "IT"},
		{"User_Access_Logs", "Finance"},
		{"Employee_Data_Export", "HR"},
		{"System_Performance_Metrics", "IT"},
		{"Threat_Intelligence_Feed", "Cyber"},
		{"Infrastructure_Monitoring", "IT"},
	}

	staffMembers = []string{"John Smith", "Sarah Johnson", "Mike Davis", "Emily Chen", "David Wilson", "Lisa Anderson"}

	// SlowStaff is the staff member whose tickets are generated with a delay multiplier.
	SlowStaff = "John Smith"

	processStages = []string{"New", "Assigned", "In Progress", "Waiting for User", "Waiting for Vendor", "Escalated", "Resolved"}
)

// storageCostPerGB is the monthly storage price used for generated datasets.
const storageCostPerGB = 0.023

// Generator draws synthetic records from a seeded source.
type Generator struct {
	rng *rand.Rand
	now time.Time
}

// New creates a generator. A zero now uses the current time.
func New(seed int64, now time.Time) *Generator {
	if now.IsZero() {
		now = time.Now()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed)), now: now}
}

// Incidents generates incidents for each of the last days days. Phishing volume ramps up
// towards the present so the surge analysis has something to find.
func (g *Generator) Incidents(days int) []domain.Incident {
	var out []domain.Incident
	start := g.now.AddDate(0, 0, -days)

	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		daysAgo := float64(days - i)

		// 1. Phishing, weighted towards High severity and open statuses
		multiplier := math.Max(1, 3-daysAgo/10)
		phishing := int(2*multiplier) + g.rng.Intn(5)
		for n := 0; n < phishing; n++ {
			sev := domain.Severity(g.choice([]string{"High", "Medium", "Low"}, []float64{0.6, 0.3, 0.1}))
			status := domain.IncidentStatus(g.choice([]string{"Unresolved", "In Progress", "Resolved"}, []float64{0.5, 0.3, 0.2}))
			out = append(out, g.incident(date, domain.CategoryPhishing, sev, status, 2, 72))
		}

		// 2. Background noise for every other category
		baseOthers := g.between(1, 4)
		for _, category := range threatCategories[1:] {
			count := g.rng.Intn(baseOthers)
			for n := 0; n < count; n++ {
				sev := domain.Severity(g.choice([]string{"High", "Medium", "Low"}, []float64{0.4, 0.4, 0.2}))
				status := domain.IncidentStatus(g.choice([]string{"Unresolved", "In Progress", "Resolved"}, []float64{0.3, 0.3, 0.4}))
				out = append(out, g.incident(date, category, sev, status, 1, 48))
			}
		}
	}
	return out
}

func (g *Generator) incident(date time.Time, category string, sev domain.Severity, status domain.IncidentStatus, minHours, maxHours int) domain.Incident {
	inc := domain.Incident{Date: date, ThreatCategory: category, Severity: sev, Status: status}
	if status == domain.StatusResolved {
		inc.ResolutionTimeHours = domain.Hours(float64(g.between(minHours, maxHours)))
	}
	return inc
}

// Datasets generates the twelve catalog entries with their archive scores computed.
func (g *Generator) Datasets() []domain.Dataset {
	out := make([]domain.Dataset, 0, len(catalog))
	for _, entry := range catalog {
		var size float64
		if entry.department == "IT" || entry.department == "Cyber" {
			size = g.uniform(50, 500)
		} else {
			size = g.uniform(5, 50)
		}
		rows := size * g.uniform(0.5, 2.0)

		uploadedDaysAgo := g.between(1, 180)
		accessedDaysAgo := g.rng.Intn(uploadedDaysAgo)

		d := domain.Dataset{
			Name:                entry.name,
			Department:          entry.department,
			SizeGB:              round2(size),
			RowsMillions:        round2(rows),
			UploadDate:          g.now.Add(-time.Duration(uploadedDaysAgo) * 24 * time.Hour),
			LastAccessed:        g.now.Add(-time.Duration(accessedDaysAgo) * 24 * time.Hour),
			DaysSinceAccess:     accessedDaysAgo,
			QualityStatus:       domain.QualityStatus(g.choice([]string{"Passed", "Failed", "Pending"}, []float64{0.6, 0.2, 0.2})),
			Dependencies:        g.rng.Intn(5),
			AccessFrequency30d:  g.rng.Intn(50),
			StorageCostPerMonth: round2(size * storageCostPerGB),
		}
		d.ComputeArchiveScore()
		out = append(out, d)
	}
	return out
}

// Tickets generates n tickets spread over the last 60 days. Tickets younger than three days
// are still open; the rest are resolved after the sum of their stage times.
func (g *Generator) Tickets(n int) []domain.Ticket {
	out := make([]domain.Ticket, 0, n)
	for id := 1; id <= n; id++ {
		staff := staffMembers[g.rng.Intn(len(staffMembers))]

		delay := g.uniform(0.8, 1.2)
		if staff == SlowStaff {
			delay = g.uniform(1.5, 2.5)
		}

		priority := domain.Priority(g.choice([]string{"Critical", "High", "Medium", "Low"}, []float64{0.1, 0.2, 0.5, 0.2}))
		daysAgo := g.between(1, 60)
		created := g.now.AddDate(0, 0, -daysAgo)

		stages := make(domain.StageTimes, 0, len(processStages))
		var total float64
		for _, stage := range processStages {
			hours := g.stageHours(stage) * delay
			stages = append(stages, domain.StageTime{Stage: stage, Hours: round2(hours)})
			total += hours
		}

		t := domain.Ticket{
			TicketID:                 fmt.Sprintf("TKT-%04d", id),
			AssignedStaff:            staff,
			Priority:                 priority,
			CreatedDate:              created,
			TotalResolutionTimeHours: round2(total),
			StageTimes:               stages,
		}
		if daysAgo < 3 {
			t.Status = g.choice([]string{"In Progress", domain.TicketWaitingForUser, "Waiting for Vendor"}, []float64{0.4, 0.4, 0.2})
		} else {
			t.Status = domain.TicketResolved
			resolved := created.Add(time.Duration(total * float64(time.Hour)))
			t.ResolutionDate = &resolved
		}
		out = append(out, t)
	}
	return out
}

func (g *Generator) stageHours(stage string) float64 {
	switch stage {
	case "New":
		return g.uniform(0.5, 2)
	case "Assigned":
		return g.uniform(1, 4)
	case "In Progress":
		return g.uniform(2, 8)
	case "Waiting for User":
		if g.rng.Float64() < 0.4 {
			return g.uniform(12, 48)
		}
		return g.uniform(2, 8)
	case "Waiting for Vendor":
		if g.rng.Float64() < 0.2 {
			return g.uniform(24, 72)
		}
		return g.uniform(4, 12)
	case "Escalated":
		return g.uniform(4, 16)
	default:
		return g.uniform(1, 4)
	}
}

// between returns an int in [lo, hi).
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo)
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// choice picks one option with the given probabilities, which must sum to 1.
func (g *Generator) choice(options []string, weights []float64) string {
	r := g.rng.Float64()
	var acc float64
	for i, w := range weights {
		acc += w
		if r < acc {
			return options[i]
		}
	}
	return options[len(options)-1]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
