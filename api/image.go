package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jurandifr/AcheiPet/imageproc"
)

// getImage serves a previously processed photo as raw JPEG bytes.
func (s *Server) getImage(c *gin.Context) {
	data, err := s.images.Read(c.Param("filename"))
	if err != nil {
		if errors.Is(err, imageproc.ErrImageNotFound) {
			abortWithEncoding(c, http.StatusNotFound, errorImageNotFound)
		} else {
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		}
		return
	}

	c.Data(http.StatusOK, "image/jpeg", data)
}
