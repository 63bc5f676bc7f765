package ingest_test

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurandifr/AcheiPet/external/gemini"
	"github.com/jurandifr/AcheiPet/imageproc"
	"github.com/jurandifr/AcheiPet/ingest"
	"github.com/jurandifr/AcheiPet/schema"
	"github.com/jurandifr/AcheiPet/store"
)

type stubResolver struct {
	info schema.AddressInfo
	err  error
}

func (r stubResolver) ReverseGeocode(context.Context, float64, float64) (schema.AddressInfo, error) {
	return r.info, r.err
}

type stubClassifier struct {
	analysis schema.AnimalAnalysis
	err      error
}

func (c stubClassifier) Classify(context.Context, []byte) (schema.AnimalAnalysis, error) {
	return c.analysis, c.err
}

func makeJPEG(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 64, 48)), nil))
	return buf.Bytes()
}

func newTestPipeline(t *testing.T, resolver stubResolver, classifier stubClassifier) (*ingest.Pipeline, *store.MemStore) {
	t.Helper()

	images, err := imageproc.NewProcessor(t.TempDir())
	require.NoError(t, err)

	memStore := store.NewMemStore()
	return ingest.NewPipeline(images, resolver, classifier, memStore), memStore
}

func TestIngest(t *testing.T) {
	p, memStore := newTestPipeline(t,
		stubResolver{info: schema.AddressInfo{
			Rua:    "Avenida Paulista",
			Bairro: "Bela Vista",
			Cidade: "São Paulo",
			Estado: "São Paulo",
		}},
		stubClassifier{analysis: schema.AnimalAnalysis{Tipo: schema.SpeciesDog, Raca: "Labrador"}},
	)

	report, err := p.Ingest(context.Background(), ingest.Submission{
		Photo:     makeJPEG(t),
		Latitude:  -23.5505,
		Longitude: -46.6333,
	})
	require.NoError(t, err)

	assert.Equal(t, -23.5505, report.Latitude)
	assert.Equal(t, -46.6333, report.Longitude)
	assert.NotEqual(t, "", report.ID.String())
	assert.False(t, report.Datetime.IsZero())
	assert.NotEqual(t, "", report.PathPhoto)
	assert.Equal(t, schema.SpeciesDog, report.AnimalTipo)
	assert.Equal(t, "Labrador", report.AnimalRaca)
	assert.Equal(t, "São Paulo", report.Cidade)

	stored, err := memStore.GetReport(report.ID.String())
	require.NoError(t, err)
	assert.Equal(t, report, stored)
}

func TestIngestMissingPhoto(t *testing.T) {
	p, memStore := newTestPipeline(t, stubResolver{}, stubClassifier{})

	_, err := p.Ingest(context.Background(), ingest.Submission{
		Latitude:  -23.5505,
		Longitude: -46.6333,
	})
	assert.ErrorIs(t, err, ingest.ErrMissingPhoto)
	assert.True(t, ingest.IsValidationError(err))

	reports, err := memStore.ListReports(schema.ReportFilter{})
	require.NoError(t, err)
	assert.Empty(t, reports, "nothing may be persisted on validation failure")
}

func TestIngestInvalidCoordinates(t *testing.T) {
	p, memStore := newTestPipeline(t, stubResolver{}, stubClassifier{})

	for _, coords := range [][2]float64{
		{math.NaN(), -46.6333},
		{-23.5505, math.NaN()},
		{math.Inf(1), -46.6333},
		{-23.5505, math.Inf(-1)},
	} {
		_, err := p.Ingest(context.Background(), ingest.Submission{
			Photo:     makeJPEG(t),
			Latitude:  coords[0],
			Longitude: coords[1],
		})
		assert.ErrorIs(t, err, ingest.ErrInvalidCoordinates)
		assert.True(t, ingest.IsValidationError(err))
	}

	reports, err := memStore.ListReports(schema.ReportFilter{})
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestIngestInvalidImageIsFatal(t *testing.T) {
	p, memStore := newTestPipeline(t, stubResolver{}, stubClassifier{})

	_, err := p.Ingest(context.Background(), ingest.Submission{
		Photo:     []byte("not an image"),
		Latitude:  -23.5505,
		Longitude: -46.6333,
	})
	assert.ErrorIs(t, err, imageproc.ErrInvalidImage)
	assert.False(t, ingest.IsValidationError(err))

	reports, err := memStore.ListReports(schema.ReportFilter{})
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestIngestGeocodingFailureDegrades(t *testing.T) {
	p, _ := newTestPipeline(t,
		stubResolver{err: fmt.Errorf("geocoding service unavailable")},
		stubClassifier{analysis: schema.AnimalAnalysis{Tipo: schema.SpeciesCat, Raca: "Siamês"}},
	)

	report, err := p.Ingest(context.Background(), ingest.Submission{
		Photo:     makeJPEG(t),
		Latitude:  -23.5505,
		Longitude: -46.6333,
	})
	require.NoError(t, err, "geocoding failure must not fail ingestion")

	assert.Equal(t, schema.AddressInfo{}, schema.AddressInfo{
		Rua:    report.Rua,
		Bairro: report.Bairro,
		Cidade: report.Cidade,
		Estado: report.Estado,
	}, "address fields absent together on geocoding failure")
	assert.Equal(t, schema.SpeciesCat, report.AnimalTipo)
}

func TestIngestClassificationFailureDegrades(t *testing.T) {
	p, _ := newTestPipeline(t,
		stubResolver{info: schema.AddressInfo{Cidade: "São Paulo"}},
		stubClassifier{err: fmt.Errorf("model timeout")},
	)

	report, err := p.Ingest(context.Background(), ingest.Submission{
		Photo:     makeJPEG(t),
		Latitude:  -23.5505,
		Longitude: -46.6333,
	})
	require.NoError(t, err, "classification failure must not fail ingestion")

	assert.Equal(t, gemini.DefaultAnalysis().Tipo, report.AnimalTipo)
	assert.Equal(t, gemini.DefaultAnalysis().Raca, report.AnimalRaca)
	assert.Equal(t, "São Paulo", report.Cidade)
}

func TestIngestAlwaysYieldsValidSpeciesAndBreed(t *testing.T) {
	p, _ := newTestPipeline(t,
		stubResolver{},
		stubClassifier{err: fmt.Errorf("capability offline")},
	)

	report, err := p.Ingest(context.Background(), ingest.Submission{
		Photo:     makeJPEG(t),
		Latitude:  10.0,
		Longitude: 20.0,
	})
	require.NoError(t, err)
	assert.True(t, report.AnimalTipo.Valid())
	assert.NotEqual(t, "", report.AnimalRaca)
}

func TestIngestCancelledContext(t *testing.T) {
	p, memStore := newTestPipeline(t, stubResolver{}, stubClassifier{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Ingest(ctx, ingest.Submission{
		Photo:     makeJPEG(t),
		Latitude:  -23.5505,
		Longitude: -46.6333,
	})
	assert.Error(t, err)

	reports, err := memStore.ListReports(schema.ReportFilter{})
	require.NoError(t, err)
	assert.Empty(t, reports, "cancelled requests must not leave orphaned rows")
}
