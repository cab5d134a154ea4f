package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rabnifoundation/rabni-api/internal/application"
	"github.com/rabnifoundation/rabni-api/internal/infrastructure/storage"
	"github.com/rabnifoundation/rabni-api/internal/interface/middleware"
	"github.com/rabnifoundation/rabni-api/pkg/response"
	"github.com/rabnifoundation/rabni-api/pkg/validation"
)

func clientIP(c *gin.Context) string {
	if ip := c.GetString(middleware.CtxRealIPKey); ip != "" {
		return ip
	}
	return c.ClientIP()
}

func requestMeta(c *gin.Context) application.RequestMeta {
	return application.RequestMeta{
		IP:        clientIP(c),
		UserAgent: c.GetHeader("User-Agent"),
		Path:      c.Request.URL.Path,
	}
}

// bindError answers a failed bind, telling an oversized body apart from a
// malformed one.
func bindError(c *gin.Context, err error) {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		response.Error[any](c, http.StatusRequestEntityTooLarge, "payload too large", validation.ToDetails(err))
		return
	}
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}

// serviceError maps application errors onto the response envelope. Anything
// unexpected is logged and reported as a plain 500.
func serviceError(c *gin.Context, logger *logrus.Logger, err error, action string) {
	switch {
	case errors.Is(err, application.ErrFileRequired):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", gin.H{"file": "is required"})
	case errors.Is(err, application.ErrInvalidInput):
		msg := strings.TrimPrefix(err.Error(), application.ErrInvalidInput.Error()+": ")
		response.Error[any](c, http.StatusBadRequest, "invalid payload", gin.H{"payload": msg})
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, storage.ErrUnavailable):
		response.Error[any](c, http.StatusServiceUnavailable, "uploads unavailable", nil)
	default:
		if logger != nil {
			logger.WithError(err).WithField("path", c.Request.URL.Path).Error(action + " failed")
		}
		response.Error[any](c, http.StatusInternalServerError, action+" failed", nil)
	}
}

// pathID reads the :id parameter. Record ids are uuids, so anything else
// cannot name a stored record and is answered 404 without a lookup.
func pathID(c *gin.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "not found", nil)
		return "", false
	}
	return id.String(), true
}

// limitBody caps the request body before a multipart form is parsed.
func limitBody(c *gin.Context, max int64) {
	if max > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
	}
}

// formFile opens an optional multipart file. A missing field is not an
// error; the returned upload is nil and close is a no-op.
func formFile(c *gin.Context, field string) (*application.Upload, func(), error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	up := &application.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	}
	return up, func() { _ = f.Close() }, nil
}
