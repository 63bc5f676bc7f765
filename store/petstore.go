package store

import (
	"fmt"
	"math"

	"github.com/jinzhu/gorm"

	"github.com/jurandifr/AcheiPet/schema"
)

var (
	ErrReportNotFound = fmt.Errorf("animal report not found")
	ErrUserNotFound   = fmt.Errorf("user not found")
	ErrInvalidReport  = fmt.Errorf("report is missing required fields")
)

// CreateReportParams is everything the ingestion pipeline supplies for a new
// report. ID and Datetime are assigned by the store.
type CreateReportParams struct {
	Latitude   float64
	Longitude  float64
	Address    schema.AddressInfo
	Comentario string
	Contato    string
	PathPhoto  string
	AnimalTipo schema.Species
	AnimalRaca string
	ReporterID string
}

// Validate enforces the report invariants before anything is written.
func (p CreateReportParams) Validate() error {
	if p.PathPhoto == "" {
		return fmt.Errorf("%w: path_photo", ErrInvalidReport)
	}
	if !p.AnimalTipo.Valid() {
		return fmt.Errorf("%w: animal_tipo %q", ErrInvalidReport, p.AnimalTipo)
	}
	if p.AnimalRaca == "" {
		return fmt.Errorf("%w: animal_raca", ErrInvalidReport)
	}
	if !isFinite(p.Latitude) || !isFinite(p.Longitude) {
		return fmt.Errorf("%w: coordinates", ErrInvalidReport)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// PetCore is the main datastore contract. The ingestion pipeline and the API
// are storage-agnostic; both the gorm-backed PetStore and the in-memory
// MemStore implement it.
type PetCore interface {
	Ping() error

	// Reports
	CreateReport(params CreateReportParams) (*schema.AnimalReport, error)
	GetReport(id string) (*schema.AnimalReport, error)
	ListReports(filter schema.ReportFilter) ([]schema.AnimalReport, error)
	ListReportsByReporter(reporterID string) ([]schema.AnimalReport, error)
	UpdateReport(id string, updates map[string]interface{}) (*schema.AnimalReport, error)

	// Users
	UpsertUser(user schema.User) (*schema.User, error)
	GetUser(id string) (*schema.User, error)
}

// PetStore is the relational implementation of PetCore.
type PetStore struct {
	ormDB *gorm.DB
}

func NewPetStore(ormDB *gorm.DB) *PetStore {
	return &PetStore{
		ormDB: ormDB,
	}
}

// Ping is to check the storage health status
func (s *PetStore) Ping() error {
	return s.ormDB.DB().Ping()
}
