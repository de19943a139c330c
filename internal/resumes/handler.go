package resumes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-generator/internal/accounts"
	"resume-generator/internal/shared/archive"
	"resume-generator/internal/shared/metrics"
	"resume-generator/internal/shared/server/respond"
	"resume-generator/internal/shared/telemetry"
	"resume-generator/resume/render"
)

// Handler wires HTTP handlers to the lifecycle service.
type Handler struct {
	Svc      *Service
	PageSize int
}

// NewHandler constructs a Handler with the default page size.
func NewHandler(svc *Service, pageSize int) *Handler {
	if pageSize < 1 {
		pageSize = 10
	}
	return &Handler{Svc: svc, PageSize: pageSize}
}

// RegisterBidderRoutes attaches routes operating on the caller's own
// artifacts.
func (h *Handler) RegisterBidderRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate/resume-finalize", h.finalize)
	rg.GET("/files", h.listOwn)
	rg.DELETE("/delete-file", h.deleteOwn)
	rg.GET("/download", h.downloadOwn)
	rg.GET("/download-folder", h.downloadOwnBucket)
}

// RegisterDevRoutes attaches routes a developer uses against supervised
// bidders' artifacts, plus template management.
func (h *Handler) RegisterDevRoutes(rg *gin.RouterGroup) {
	rg.GET("/bidder-files/:id", h.listBidder)
	rg.DELETE("/delete-bidder-file/:id", h.deleteBidder)
	rg.GET("/download-resume/:id", h.downloadBidder)
	rg.GET("/download-folder/:id", h.downloadBidderBucket)
	rg.POST("/template", h.uploadTemplate)
	rg.GET("/template", h.fetchTemplate)
	rg.DELETE("/template", h.deleteTemplate)
}

func (h *Handler) finalize(c *gin.Context) {
	var req FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	actor := accounts.ActorFromContext(c)
	resume, err := h.Svc.Finalize(c.Request.Context(), actor, actor.ID, req.Content, req.JobDescription, req.JDURL)
	if err != nil {
		h.writeError(c, err, "failed to finalize resume")
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{
		"filename": resume.Name + DocExt,
		"date":     resume.BucketDate,
	})
}

func (h *Handler) listOwn(c *gin.Context) {
	actor := accounts.ActorFromContext(c)
	h.list(c, actor.ID)
}

func (h *Handler) listBidder(c *gin.Context) {
	h.list(c, c.Param("id"))
}

func (h *Handler) list(c *gin.Context, ownerID string) {
	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "limit", h.PageSize)

	out, err := h.Svc.List(c.Request.Context(), accounts.ActorFromContext(c), ownerID, page, pageSize)
	if err != nil {
		h.writeError(c, err, "failed to list files")
		return
	}
	respond.OK(c, out)
}

func (h *Handler) deleteOwn(c *gin.Context) {
	actor := accounts.ActorFromContext(c)
	h.delete(c, actor.ID)
}

func (h *Handler) deleteBidder(c *gin.Context) {
	h.delete(c, c.Param("id"))
}

func (h *Handler) delete(c *gin.Context, ownerID string) {
	name := c.Query("filename")
	if name == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "filename is required", nil)
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), accounts.ActorFromContext(c), ownerID, name); err != nil {
		h.writeError(c, err, "failed to delete file")
		return
	}
	respond.OK(c, gin.H{"success": true})
}

func (h *Handler) downloadOwn(c *gin.Context) {
	actor := accounts.ActorFromContext(c)
	h.download(c, actor.ID)
}

func (h *Handler) downloadBidder(c *gin.Context) {
	h.download(c, c.Param("id"))
}

func (h *Handler) download(c *gin.Context, ownerID string) {
	name := c.Query("filename")
	if name == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "filename is required", nil)
		return
	}
	variant := VariantDocument
	if c.Query("type") == string(VariantDescription) {
		variant = VariantDescription
	}

	dl, err := h.Svc.DownloadOne(c.Request.Context(), accounts.ActorFromContext(c), ownerID, name, variant)
	if err != nil {
		h.writeError(c, err, "failed to download file")
		return
	}
	c.FileAttachment(dl.Path, dl.FileName)
}

func (h *Handler) downloadOwnBucket(c *gin.Context) {
	actor := accounts.ActorFromContext(c)
	h.downloadBucket(c, actor.ID)
}

func (h *Handler) downloadBidderBucket(c *gin.Context) {
	h.downloadBucket(c, c.Param("id"))
}

func (h *Handler) downloadBucket(c *gin.Context, ownerID string) {
	date := c.Query("date")
	if date == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "date is required", nil)
		return
	}

	bucket, err := h.Svc.DownloadBucket(c.Request.Context(), accounts.ActorFromContext(c), ownerID, date)
	if err != nil {
		h.writeError(c, err, "failed to download folder")
		return
	}

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", `attachment; filename="`+bucket.FileName+`"`)
	if err := archive.StreamZip(c.Request.Context(), bucket.Dir, c.Writer); err != nil {
		telemetry.Error("resume.download_folder.stream_failed", map[string]any{
			"ownerId": ownerID,
			"date":    date,
			"error":   err.Error(),
		})
		// Part of the body may already be out. Tear the connection down
		// so the client sees a transport failure, not a short response
		// that reads as a complete success.
		panic(http.ErrAbortHandler)
	}
	metrics.IncArchiveStreamed()
}

func (h *Handler) uploadTemplate(c *gin.Context) {
	fileHeader, err := c.FormFile("template")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "template file is required", nil)
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "cannot read uploaded file", nil)
		return
	}
	defer f.Close()

	stored, err := h.Svc.UploadTemplate(c.Request.Context(), accounts.ActorFromContext(c), fileHeader.Filename, f)
	if err != nil {
		h.writeError(c, err, "failed to store template")
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{"filename": stored})
}

func (h *Handler) fetchTemplate(c *gin.Context) {
	dl, err := h.Svc.FetchTemplate(c.Request.Context(), accounts.ActorFromContext(c))
	if err != nil {
		h.writeError(c, err, "failed to fetch template")
		return
	}
	c.FileAttachment(dl.Path, dl.FileName)
}

func (h *Handler) deleteTemplate(c *gin.Context) {
	if err := h.Svc.DeleteTemplate(c.Request.Context(), accounts.ActorFromContext(c)); err != nil {
		h.writeError(c, err, "failed to delete template")
		return
	}
	respond.OK(c, gin.H{"success": true})
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, accounts.ErrUnauthorized):
		respond.Error(c, http.StatusForbidden, "forbidden", "not allowed", nil)
	case errors.Is(err, ErrConflict):
		respond.Error(c, http.StatusConflict, "conflict", err.Error(), nil)
	case errors.Is(err, ErrMissingTemplate):
		respond.Error(c, http.StatusNotFound, "missing_template", err.Error(), nil)
	case errors.Is(err, ErrNotFound), errors.Is(err, accounts.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
	case errors.Is(err, render.ErrTemplate):
		respond.Error(c, http.StatusUnprocessableEntity, "template_error", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
