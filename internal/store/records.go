package store

import (
	"fmt"
	"time"
)

// Entity names used in errors and logs.
const (
	EntityIncident = "incident"
	EntityDataset  = "dataset"
	EntityTicket   = "ticket"
	EntityUser     = "user"
)

// Column names accepted by Fields patches.
const (
	ColDate                = "date"
	ColIncidentType        = "incident_type"
	ColSeverity            = "severity"
	ColStatus              = "status"
	ColDescription         = "description"
	ColReportedBy          = "reported_by"
	ColResolutionTimeHours = "resolution_time_hours"

	ColDatasetName         = "dataset_name"
	ColDepartment          = "department"
	ColSizeGB              = "size_gb"
	ColRowsMillions        = "rows_millions"
	ColUploadDate          = "upload_date"
	ColLastAccessed        = "last_accessed"
	ColQualityStatus       = "quality_status"
	ColDependencies        = "dependencies"
	ColAccessFrequency30d  = "access_frequency_30d"
	ColStorageCostPerMonth = "storage_cost_per_month"

	ColPriority             = "priority"
	ColCategory             = "category"
	ColSubject              = "subject"
	ColCreatedDate          = "created_date"
	ColResolvedDate         = "resolved_date"
	ColAssignedTo           = "assigned_to"
	ColTotalResolutionHours = "total_resolution_time_hours"
	ColStageTimes           = "stage_times"

	ColPasswordHash = "password_hash"
	ColRole         = "role"
)

// IncidentRecord mirrors a cyber_incidents row.
type IncidentRecord struct {
	Date                time.Time
	IncidentType        string
	Severity            string
	Status              string
	Description         string
	ReportedBy          string
	ResolutionTimeHours *float64
}

// DatasetRecord mirrors a datasets_metadata row.
type DatasetRecord struct {
	DatasetName         string
	Department          string
	SizeGB              float64
	RowsMillions        float64
	UploadDate          time.Time
	LastAccessed        time.Time
	QualityStatus       string
	Dependencies        int
	AccessFrequency30d  int
	StorageCostPerMonth float64
}

// StageTimeRecord is one element of the it_tickets.stage_times JSON column.
type StageTimeRecord struct {
	Stage string  `json:"stage"`
	Hours float64 `json:"hours"`
}

// TicketRecord mirrors an it_tickets row.
type TicketRecord struct {
	TicketID             string
	Priority             string
	Status               string
	Category             string
	Subject              string
	Description          string
	CreatedDate          time.Time
	ResolvedDate         *time.Time
	AssignedTo           string
	TotalResolutionHours *float64
	StageTimes           []StageTimeRecord
}

// UserRecord mirrors a users row.
type UserRecord struct {
	Username     string
	PasswordHash string
	Role         string
}

// ApplyIncident applies a patch to an incident record.
func ApplyIncident(r *IncidentRecord, f Fields) error {
	for col, v := range f {
		var err error
		switch col {
		case ColDate:
			err = assign(&r.Date, col, v)
		case ColIncidentType:
			err = assign(&r.IncidentType, col, v)
		case ColSeverity:
			err = assign(&r.Severity, col, v)
		case ColStatus:
			err = assign(&r.Status, col, v)
		case ColDescription:
			err = assign(&r.Description, col, v)
		case ColReportedBy:
			err = assign(&r.ReportedBy, col, v)
		case ColResolutionTimeHours:
			err = assign(&r.ResolutionTimeHours, col, v)
		default:
			err = unknownColumn(EntityIncident, col)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ApplyDataset applies a patch to a dataset record.
func ApplyDataset(r *DatasetRecord, f Fields) error {
	for col, v := range f {
		var err error
		switch col {
		case ColDatasetName:
			err = assign(&r.DatasetName, col, v)
		case ColDepartment:
			err = assign(&r.Department, col, v)
		case ColSizeGB:
			err = assign(&r.SizeGB, col, v)
		case ColRowsMillions:
			err = assign(&r.RowsMillions, col, v)
		case ColUploadDate:
			err = assign(&r.UploadDate, col, v)
		case ColLastAccessed:
			err = assign(&r.LastAccessed, col, v)
		case ColQualityStatus:
			err = assign(&r.QualityStatus, col, v)
		case ColDependencies:
			err = assign(&r.Dependencies, col, v)
		case ColAccessFrequency30d:
			err = assign(&r.AccessFrequency30d, col, v)
		case ColStorageCostPerMonth:
			err = assign(&r.StorageCostPerMonth, col, v)
		default:
			err = unknownColumn(EntityDataset, col)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ApplyTicket applies a patch to a ticket record.
func ApplyTicket(r *TicketRecord, f Fields) error {
	for col, v := range f {
		var err error
		switch col {
		case ColPriority:
			err = assign(&r.Priority, col, v)
		case ColStatus:
			err = assign(&r.Status, col, v)
		case ColCategory:
			err = assign(&r.Category, col, v)
		case ColSubject:
			err = assign(&r.Subject, col, v)
		case ColDescription:
			err = assign(&r.Description, col, v)
		case ColCreatedDate:
			err = assign(&r.CreatedDate, col, v)
		case ColResolvedDate:
			err = assign(&r.ResolvedDate, col, v)
		case ColAssignedTo:
			err = assign(&r.AssignedTo, col, v)
		case ColTotalResolutionHours:
			err = assign(&r.TotalResolutionHours, col, v)
		case ColStageTimes:
			err = assign(&r.StageTimes, col, v)
		default:
			err = unknownColumn(EntityTicket, col)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ApplyUser applies a patch to a user record.
func ApplyUser(r *UserRecord, f Fields) error {
	for col, v := range f {
		var err error
		switch col {
		case ColPasswordHash:
			err = assign(&r.PasswordHash, col, v)
		case ColRole:
			err = assign(&r.Role, col, v)
		default:
			err = unknownColumn(EntityUser, col)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// assign stores v into dst when the dynamic type matches exactly.
func assign[T any](dst *T, col string, v interface{}) error {
	typed, ok := v.(T)
	if !ok {
		return fmt.Errorf("column %s: cannot assign %T", col, v)
	}
	*dst = typed
	return nil
}

func unknownColumn(entity, col string) error {
	return fmt.Errorf("%s has no writable column %q", entity, col)
}
