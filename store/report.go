package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"

	"github.com/jurandifr/AcheiPet/schema"
)

// CreateReport inserts one report row with a server-assigned id and
// timestamp. The row is written in full or not at all.
func (s *PetStore) CreateReport(params CreateReportParams) (*schema.AnimalReport, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	report := schema.AnimalReport{
		ID:         uuid.New(),
		Datetime:   time.Now().UTC(),
		Latitude:   params.Latitude,
		Longitude:  params.Longitude,
		Rua:        params.Address.Rua,
		Bairro:     params.Address.Bairro,
		Cidade:     params.Address.Cidade,
		Estado:     params.Address.Estado,
		Comentario: params.Comentario,
		Contato:    params.Contato,
		PathPhoto:  params.PathPhoto,
		AnimalTipo: params.AnimalTipo,
		AnimalRaca: params.AnimalRaca,
		ReporterID: params.ReporterID,
	}

	if err := s.ormDB.Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *PetStore) GetReport(id string) (*schema.AnimalReport, error) {
	var report schema.AnimalReport

	if err := s.ormDB.Where("id = ?", id).First(&report).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	return &report, nil
}

// ListReports returns reports matching the filter, most recent first. A tipo
// of "" or "all" matches every species; filters combine with AND.
func (s *PetStore) ListReports(filter schema.ReportFilter) ([]schema.AnimalReport, error) {
	reports := []schema.AnimalReport{}

	query := s.ormDB.Model(schema.AnimalReport{})
	if filter.Tipo != "" && filter.Tipo != schema.SpeciesAll {
		query = query.Where("animal_tipo = ?", filter.Tipo)
	}
	if filter.Raca != "" {
		query = query.Where("animal_raca = ?", filter.Raca)
	}

	if err := query.Order("datetime desc").Find(&reports).Error; err != nil {
		return nil, err
	}

	return reports, nil
}

func (s *PetStore) ListReportsByReporter(reporterID string) ([]schema.AnimalReport, error) {
	reports := []schema.AnimalReport{}

	if err := s.ormDB.
		Where("reporter_id = ?", reporterID).
		Order("datetime desc").
		Find(&reports).Error; err != nil {
		return nil, err
	}

	return reports, nil
}

// UpdateReport merges the given column updates into an existing report. It is
// a correction path, not part of the primary ingestion flow.
func (s *PetStore) UpdateReport(id string, updates map[string]interface{}) (*schema.AnimalReport, error) {
	result := s.ormDB.Model(schema.AnimalReport{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, ErrReportNotFound
	}

	return s.GetReport(id)
}
