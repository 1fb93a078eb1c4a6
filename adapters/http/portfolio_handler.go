package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mediaUC "github.com/khoahotran/portfolio-builder/internal/application/usecase/media"
	portfolioUC "github.com/khoahotran/portfolio-builder/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
)

type PortfolioHandler struct {
	publishUseCase       *portfolioUC.PublishPortfolioUseCase
	getPublicUseCase     *portfolioUC.GetPublicPortfolioUseCase
	uploadPictureUseCase *mediaUC.UploadProfilePictureUseCase
}

func NewPortfolioHandler(
	publishUC *portfolioUC.PublishPortfolioUseCase,
	getPublicUC *portfolioUC.GetPublicPortfolioUseCase,
	uploadUC *mediaUC.UploadProfilePictureUseCase,
) *PortfolioHandler {
	return &PortfolioHandler{
		publishUseCase:       publishUC,
		getPublicUseCase:     getPublicUC,
		uploadPictureUseCase: uploadUC,
	}
}

// Publish is not behind AuthMiddleware: the raw token is handed to the use
// case. It is verified before the body is read.
func (h *PortfolioHandler) Publish(c *gin.Context) {
	token, ok := BearerToken(c.GetHeader("Authorization"))
	if !ok {
		c.Error(apperror.NewUnauthorized("Unauthorized", "missing or malformed Authorization header", nil))
		return
	}
	if _, err := h.publishUseCase.Authorize(token); err != nil {
		c.Error(err)
		return
	}

	var req PublishPortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("Invalid request body", err))
		return
	}

	output, err := h.publishUseCase.Execute(c.Request.Context(), portfolioUC.PublishPortfolioInput{
		Token:     token,
		Portfolio: req.ToDomain(),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToPortfolioDTO(output.Portfolio))
}

func (h *PortfolioHandler) GetByUsername(c *gin.Context) {
	output, err := h.getPublicUseCase.Execute(c.Request.Context(), portfolioUC.GetPublicPortfolioInput{
		Username: c.Param("username"),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToPortfolioDTO(output.Portfolio))
}

func (h *PortfolioHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, portfolio.Templates())
}

func (h *PortfolioHandler) UploadProfilePicture(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("Unauthorized", "user id missing from context", nil))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("'file' is required", err))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("cannot open uploaded file", err))
		return
	}
	defer file.Close()

	output, err := h.uploadPictureUseCase.Execute(c.Request.Context(), mediaUC.UploadProfilePictureInput{
		UserID: userID,
		File:   file,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, UploadProfilePictureResponse{URL: output.URL})
}
