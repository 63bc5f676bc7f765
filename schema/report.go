package schema

import (
	"time"

	"github.com/google/uuid"
)

// Species is the closed set of animal types a report can carry. The values
// are the Portuguese labels used on the wire and in the database.
type Species string

const (
	SpeciesDog   Species = "Cão"
	SpeciesCat   Species = "Gato"
	SpeciesOther Species = "Outro"

	// SpeciesAll is a filter-only value meaning "no species filter".
	SpeciesAll = "all"
)

// UndefinedBreed is recorded when the classifier cannot identify a breed
// (sem raça definida).
const UndefinedBreed = "SRD"

// Valid reports whether s is one of the storable species values.
func (s Species) Valid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesOther:
		return true
	}
	return false
}

// AnimalReport is one stray-animal sighting. Image bytes are not embedded;
// PathPhoto references the normalized JPEG in the upload store.
type AnimalReport struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Datetime   time.Time `json:"datetime" gorm:"not null"`
	Latitude   float64   `json:"latitude" gorm:"not null"`
	Longitude  float64   `json:"longitude" gorm:"not null"`
	Rua        string    `json:"rua"`
	Bairro     string    `json:"bairro"`
	Cidade     string    `json:"cidade"`
	Estado     string    `json:"estado"`
	Comentario string    `json:"comentario"`
	Contato    string    `json:"contato"`
	PathPhoto  string    `json:"pathPhoto" gorm:"column:path_photo;not null"`
	AnimalTipo Species   `json:"animalTipo" gorm:"column:animal_tipo;not null"`
	AnimalRaca string    `json:"animalRaca" gorm:"column:animal_raca;not null"`
	ReporterID string    `json:"reporterId,omitempty" gorm:"column:reporter_id"`
}

func (AnimalReport) TableName() string {
	return "animal_reports"
}

// AddressInfo is the best-effort result of reverse geocoding. All fields are
// optional; an empty value means the geocoder had nothing for that field.
type AddressInfo struct {
	Rua    string `json:"rua,omitempty"`
	Bairro string `json:"bairro,omitempty"`
	Cidade string `json:"cidade,omitempty"`
	Estado string `json:"estado,omitempty"`
}

// AnimalAnalysis is the normalized classifier output.
type AnimalAnalysis struct {
	Tipo Species `json:"tipo"`
	Raca string  `json:"raca"`
}

// ReportFilter narrows ListReports. An empty or "all" Tipo matches every
// species; an empty Raca matches every breed. Filters combine with AND.
type ReportFilter struct {
	Tipo string `form:"tipo"`
	Raca string `form:"raca"`
}
