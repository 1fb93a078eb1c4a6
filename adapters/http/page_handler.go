package http

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	portfolioUC "github.com/khoahotran/portfolio-builder/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio-builder/internal/render"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
)

// PageHandler serves the public HTML page for a portfolio.
type PageHandler struct {
	getPublicUseCase *portfolioUC.GetPublicPortfolioUseCase
	renderer         *render.Renderer
	renderCtx        render.Context
}

func NewPageHandler(getPublicUC *portfolioUC.GetPublicPortfolioUseCase, renderer *render.Renderer, baseURL string) *PageHandler {
	return &PageHandler{
		getPublicUseCase: getPublicUC,
		renderer:         renderer,
		renderCtx:        render.Context{BaseURL: baseURL},
	}
}

func (h *PageHandler) Show(c *gin.Context) {
	output, err := h.getPublicUseCase.Execute(c.Request.Context(), portfolioUC.GetPublicPortfolioInput{
		Username: c.Param("username"),
	})
	if err != nil {
		c.Error(err)
		return
	}

	// Render into a buffer so a template failure can still become a clean 500.
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, output.Portfolio, h.renderCtx); err != nil {
		c.Error(apperror.NewInternal("failed to render portfolio page", err))
		return
	}

	c.Header("Cache-Control", "public, max-age=60")
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
