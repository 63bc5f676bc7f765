package ingest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/jurandifr/AcheiPet/external/gemini"
	"github.com/jurandifr/AcheiPet/geo"
	"github.com/jurandifr/AcheiPet/imageproc"
	"github.com/jurandifr/AcheiPet/schema"
	"github.com/jurandifr/AcheiPet/store"
)

var (
	ErrMissingPhoto       = fmt.Errorf("photo is required")
	ErrInvalidCoordinates = fmt.Errorf("valid latitude and longitude required")
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "ingest")
}

// IsValidationError reports whether err is a submission problem the caller
// can fix, as opposed to an internal failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingPhoto) || errors.Is(err, ErrInvalidCoordinates)
}

// Submission is one incoming report before any enrichment.
type Submission struct {
	Photo      []byte
	Latitude   float64
	Longitude  float64
	Comentario string
	Contato    string
	ReporterID string
}

// Ingestor turns a submission into one persisted report.
type Ingestor interface {
	Ingest(ctx context.Context, sub Submission) (*schema.AnimalReport, error)
}

type imageNormalizer interface {
	Process(raw []byte) (*imageproc.ProcessedImage, error)
}

// Pipeline orchestrates the image normalizer, the geocoder and the classifier
// against one submission. It holds no state between calls.
type Pipeline struct {
	images     imageNormalizer
	resolver   geo.LocationResolver
	classifier gemini.Classifier
	store      store.PetCore
}

func NewPipeline(images imageNormalizer, resolver geo.LocationResolver, classifier gemini.Classifier, petStore store.PetCore) *Pipeline {
	return &Pipeline{
		images:     images,
		resolver:   resolver,
		classifier: classifier,
		store:      petStore,
	}
}

// Ingest validates the submission, normalizes the photo, enriches the report
// with address and classification data and persists exactly one row.
//
// Only validation and image normalization are fatal. Geocoding and
// classification run concurrently and degrade to defaults on failure; a
// partially enriched report is an expected outcome, not an error.
func (p *Pipeline) Ingest(ctx context.Context, sub Submission) (*schema.AnimalReport, error) {
	if len(sub.Photo) == 0 {
		return nil, ErrMissingPhoto
	}
	if !isFinite(sub.Latitude) || !isFinite(sub.Longitude) {
		return nil, ErrInvalidCoordinates
	}

	processed, err := p.images.Process(sub.Photo)
	if err != nil {
		return nil, err
	}

	var (
		wg       sync.WaitGroup
		address  schema.AddressInfo
		analysis schema.AnimalAnalysis
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		info, err := p.resolver.ReverseGeocode(ctx, sub.Latitude, sub.Longitude)
		if err != nil {
			log.WithError(err).Warn("reverse geocoding failed, storing report without address")
			info = schema.AddressInfo{}
		}
		address = info
	}()
	go func() {
		defer wg.Done()
		result, err := p.classifier.Classify(ctx, processed.Bytes)
		if err != nil {
			log.WithError(err).Warn("animal classification failed, storing report with defaults")
			result = gemini.DefaultAnalysis()
		}
		analysis = result
	}()
	wg.Wait()

	// a cancelled request must not leave an orphaned row behind
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report, err := p.store.CreateReport(store.CreateReportParams{
		Latitude:   sub.Latitude,
		Longitude:  sub.Longitude,
		Address:    address,
		Comentario: sub.Comentario,
		Contato:    sub.Contato,
		PathPhoto:  processed.Filename,
		AnimalTipo: analysis.Tipo,
		AnimalRaca: analysis.Raca,
		ReporterID: sub.ReporterID,
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"id":   report.ID,
		"tipo": report.AnimalTipo,
	}).Info("animal report created")

	return report, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
