package controller

import (
	"path/filepath"

	"quiz_backend/internal/model"
	"quiz_backend/internal/service"
	"quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

type CertificateController struct {
	CertificateService *service.CertificateService
	HistoryService     *service.HistoryService
	Storage            *service.StorageService
}

func NewCertificateController(certService *service.CertificateService, historyService *service.HistoryService, storage *service.StorageService) *CertificateController {
	return &CertificateController{
		CertificateService: certService,
		HistoryService:     historyService,
		Storage:            storage,
	}
}

// @Summary Issue (or re-issue) a certificate for a scored attempt
// @Tags Certificates
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "history id"
// @Success 200 {object} util.Response
// @Router /api/histories/{id}/certificate [post]
func (c *CertificateController) IssueCertificate(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	// Ownership check rides on the history lookup.
	if _, err := c.HistoryService.GetHistory(user.UserID, user.Role, ctx.Param("id")); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	if !c.CertificateService.Enabled() {
		util.Error(ctx, 503, "certificate issuer not configured")
		return
	}

	objectName, err := c.CertificateService.IssueForHistory(ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"certificate": objectName})
}

// @Summary Resolve a certificate to a short-lived download URL
// @Tags Certificates
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "history id"
// @Success 200 {object} util.Response
// @Router /api/histories/{id}/certificate [get]
func (c *CertificateController) GetCertificateURL(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if _, err := c.HistoryService.GetHistory(user.UserID, user.Role, ctx.Param("id")); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	url, err := c.CertificateService.ResolveURL(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

// @Summary Upload a .docx certificate template
// @Tags Certificates
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "template file"
// @Success 201 {object} util.Response
// @Router /api/admin/certificates/template [post]
func (c *CertificateController) UploadTemplate(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil || user.Role != model.RoleAdmin {
		util.Forbidden(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if fileHeader.Header.Get("Content-Type") != docxContentType {
		util.BadRequest(ctx, "invalid file type, please upload a .docx file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	objectName := "certificate_templates/" + filepath.Base(fileHeader.Filename)
	if _, err := c.Storage.Upload(ctx.Request.Context(), objectName, file, fileHeader.Size, docxContentType); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"objectName": objectName})
}
