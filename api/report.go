package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jurandifr/AcheiPet/imageproc"
	"github.com/jurandifr/AcheiPet/ingest"
	"github.com/jurandifr/AcheiPet/schema"
	"github.com/jurandifr/AcheiPet/store"
)

// The API boundary bounds the upload; the normalizer itself does not.
const maxPhotoSize = 10 << 20 // 10MB

// createReport ingests one multipart submission: photo + coordinates plus
// optional comentario/contato.
func (s *Server) createReport(c *gin.Context) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorPhotoRequired, err)
		return
	}
	if fileHeader.Size > maxPhotoSize {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}
	defer file.Close()

	photo, err := io.ReadAll(io.LimitReader(file, maxPhotoSize+1))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	latitude, latErr := strconv.ParseFloat(c.PostForm("latitude"), 64)
	longitude, lngErr := strconv.ParseFloat(c.PostForm("longitude"), 64)
	if latErr != nil || lngErr != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidCoordinates)
		return
	}

	report, err := s.pipeline.Ingest(c.Request.Context(), ingest.Submission{
		Photo:      photo,
		Latitude:   latitude,
		Longitude:  longitude,
		Comentario: c.PostForm("comentario"),
		Contato:    c.PostForm("contato"),
		ReporterID: c.GetString("requester"),
	})
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrMissingPhoto):
			abortWithEncoding(c, http.StatusBadRequest, errorPhotoRequired, err)
		case errors.Is(err, ingest.ErrInvalidCoordinates):
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidCoordinates, err)
		case errors.Is(err, imageproc.ErrInvalidImage):
			abortWithEncoding(c, http.StatusInternalServerError, errorInvalidImage, err)
		case errors.Is(err, imageproc.ErrStoreImage):
			abortWithEncoding(c, http.StatusInternalServerError, errorStoreImage, err)
		default:
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		}
		return
	}

	c.JSON(http.StatusOK, report)
}

// listReports returns all reports matching the optional tipo/raca filters,
// most recent first.
func (s *Server) listReports(c *gin.Context) {
	var filter schema.ReportFilter
	if err := c.BindQuery(&filter); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	reports, err := s.store.ListReports(filter)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, reports)
}

func (s *Server) getReport(c *gin.Context) {
	report, err := s.store.GetReport(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrReportNotFound) {
			abortWithEncoding(c, http.StatusNotFound, errorReportNotFound)
		} else {
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		}
		return
	}

	c.JSON(http.StatusOK, report)
}

// myReports lists the reports submitted by the authenticated user.
func (s *Server) myReports(c *gin.Context) {
	requester := c.GetString("requester")

	reports, err := s.store.ListReportsByReporter(requester)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, reports)
}
