package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	portfolioUC "github.com/spotme/spotme-api/internal/application/usecase/portfolio"
	"github.com/spotme/spotme-api/internal/render"
	"github.com/spotme/spotme-api/pkg/apperror"
	"github.com/spotme/spotme-api/pkg/logger"
)

type ViewerHandler struct {
	getPublishedUC  *portfolioUC.GetPublishedUseCase
	listPublishedUC *portfolioUC.ListPublishedUseCase
	logger          logger.Logger
}

func NewViewerHandler(getPublishedUC *portfolioUC.GetPublishedUseCase, listPublishedUC *portfolioUC.ListPublishedUseCase, log logger.Logger) *ViewerHandler {
	return &ViewerHandler{
		getPublishedUC:  getPublishedUC,
		listPublishedUC: listPublishedUC,
		logger:          log,
	}
}

// ViewPage serves the published portfolio as a readonly HTML page. Visitors
// never see an error payload here: no row, unpublished, deleted, and lookup
// failures all render the same not-found page.
func (h *ViewerHandler) ViewPage(c *gin.Context) {
	slug := c.Param("slug")

	output, err := h.getPublishedUC.Execute(c.Request.Context(), portfolioUC.GetPublishedInput{Slug: slug})
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) && !errors.Is(err, apperror.ErrInvalidInput) {
			h.logger.Error("Failed to load published portfolio", err, zap.String("slug", slug))
		}
		h.notFoundPage(c)
		return
	}

	title := output.Record.Title
	if output.OwnerName != "" {
		title = output.OwnerName
	}

	html, err := render.Preview(output.Record.Content, render.Options{Readonly: true, PageTitle: title})
	if err != nil {
		h.logger.Error("Failed to render portfolio", err, zap.String("slug", slug))
		h.notFoundPage(c)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *ViewerHandler) notFoundPage(c *gin.Context) {
	c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(render.NotFound()))
}

// ViewJSON serves the published document for API consumers.
func (h *ViewerHandler) ViewJSON(c *gin.Context) {
	slug := c.Param("slug")

	output, err := h.getPublishedUC.Execute(c.Request.Context(), portfolioUC.GetPublishedInput{Slug: slug})
	if err != nil {
		c.Error(err)
		return
	}

	rec := output.Record
	c.JSON(http.StatusOK, gin.H{
		"slug":         rec.Slug,
		"title":        rec.Title,
		"owner_name":   output.OwnerName,
		"document":     rec.Content,
		"published_at": rec.PublishedAt,
	})
}

// ListJSON serves recently published portfolios, newest first.
func (h *ViewerHandler) ListJSON(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	output, err := h.listPublishedUC.Execute(c.Request.Context(), portfolioUC.ListPublishedInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolios": output.Items})
}
