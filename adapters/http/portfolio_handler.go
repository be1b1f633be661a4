package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portfolioUC "github.com/spotme/spotme-api/internal/application/usecase/portfolio"
	"github.com/spotme/spotme-api/pkg/apperror"
)

type PortfolioHandler struct {
	saveDraftUC *portfolioUC.SaveDraftUseCase
	publishUC   *portfolioUC.PublishUseCase
	deleteUC    *portfolioUC.DeletePortfolioUseCase
}

func NewPortfolioHandler(
	saveDraftUC *portfolioUC.SaveDraftUseCase,
	publishUC *portfolioUC.PublishUseCase,
	deleteUC *portfolioUC.DeletePortfolioUseCase,
) *PortfolioHandler {
	return &PortfolioHandler{
		saveDraftUC: saveDraftUC,
		publishUC:   publishUC,
		deleteUC:    deleteUC,
	}
}

func (h *PortfolioHandler) SaveDraft(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	output, err := h.saveDraftUC.Execute(c.Request.Context(), portfolioUC.SaveDraftInput{UserID: userID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio_id": output.PortfolioID, "message": "Draft saved."})
}

func (h *PortfolioHandler) Publish(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	output, err := h.publishUC.Execute(c.Request.Context(), portfolioUC.PublishInput{UserID: userID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"portfolio_id": output.PortfolioID,
		"slug":         output.Slug,
		"public_url":   output.PublicURL,
	})
}

func (h *PortfolioHandler) Delete(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), portfolioUC.DeletePortfolioInput{UserID: userID}); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Portfolio deleted."})
}
