package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jurandifr/AcheiPet/schema"
)

// MemStore keeps everything in process memory. It backs tests and the
// offline/demo mode and honors the same contract as the relational store.
type MemStore struct {
	mu      sync.RWMutex
	reports map[uuid.UUID]schema.AnimalReport
	users   map[string]schema.User
}

func NewMemStore() *MemStore {
	return &MemStore{
		reports: map[uuid.UUID]schema.AnimalReport{},
		users:   map[string]schema.User{},
	}
}

func (s *MemStore) Ping() error {
	return nil
}

func (s *MemStore) CreateReport(params CreateReportParams) (*schema.AnimalReport, error) {
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

	s.mu.Lock()
	s.reports[report.ID] = report
	s.mu.Unlock()

	return &report, nil
}

func (s *MemStore) GetReport(id string) (*schema.AnimalReport, error) {
	reportID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrReportNotFound
	}

	s.mu.RLock()
	report, ok := s.reports[reportID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrReportNotFound
	}

	return &report, nil
}

func (s *MemStore) ListReports(filter schema.ReportFilter) ([]schema.AnimalReport, error) {
	s.mu.RLock()
	reports := make([]schema.AnimalReport, 0, len(s.reports))
	for _, report := range s.reports {
		if filter.Tipo != "" && filter.Tipo != schema.SpeciesAll && string(report.AnimalTipo) != filter.Tipo {
			continue
		}
		if filter.Raca != "" && report.AnimalRaca != filter.Raca {
			continue
		}
		reports = append(reports, report)
	}
	s.mu.RUnlock()

	sortReportsNewestFirst(reports)
	return reports, nil
}

func (s *MemStore) ListReportsByReporter(reporterID string) ([]schema.AnimalReport, error) {
	s.mu.RLock()
	reports := []schema.AnimalReport{}
	for _, report := range s.reports {
		if report.ReporterID == reporterID {
			reports = append(reports, report)
		}
	}
	s.mu.RUnlock()

	sortReportsNewestFirst(reports)
	return reports, nil
}

func (s *MemStore) UpdateReport(id string, updates map[string]interface{}) (*schema.AnimalReport, error) {
	reportID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrReportNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	report, ok := s.reports[reportID]
	if !ok {
		return nil, ErrReportNotFound
	}

	for column, value := range updates {
		switch column {
		case "rua":
			report.Rua, _ = value.(string)
		case "bairro":
			report.Bairro, _ = value.(string)
		case "cidade":
			report.Cidade, _ = value.(string)
		case "estado":
			report.Estado, _ = value.(string)
		case "comentario":
			report.Comentario, _ = value.(string)
		case "contato":
			report.Contato, _ = value.(string)
		case "animal_tipo":
			if tipo, ok := value.(schema.Species); ok && tipo.Valid() {
				report.AnimalTipo = tipo
			} else if tipo, ok := value.(string); ok && schema.Species(tipo).Valid() {
				report.AnimalTipo = schema.Species(tipo)
			}
		case "animal_raca":
			if raca, ok := value.(string); ok && raca != "" {
				report.AnimalRaca = raca
			}
		}
	}

	s.reports[reportID] = report
	return &report, nil
}

func (s *MemStore) UpsertUser(user schema.User) (*schema.User, error) {
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.users[user.ID]; ok {
		user.CreatedAt = existing.CreatedAt
	} else {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	s.users[user.ID] = user

	return &user, nil
}

func (s *MemStore) GetUser(id string) (*schema.User, error) {
	s.mu.RLock()
	user, ok := s.users[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrUserNotFound
	}

	return &user, nil
}

func sortReportsNewestFirst(reports []schema.AnimalReport) {
	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].Datetime.Equal(reports[j].Datetime) {
			// stable tie-break so repeated listings are identical
			return reports[i].ID.String() < reports[j].ID.String()
		}
		return reports[i].Datetime.After(reports[j].Datetime)
	})
}
