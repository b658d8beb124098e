package analyses

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cvscore-backend/internal/documents"
	"cvscore-backend/internal/extract"
	"cvscore-backend/internal/shared/server/middleware"
	"cvscore-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyzeText)
	rg.POST("/analyze/batch", h.analyzeBatch)
	rg.POST("/documents/:id/analyze", h.analyzeDocument)
	rg.GET("/analyses", h.listAnalyses)
	rg.GET("/analyses/:id", h.getAnalysis)
	rg.GET("/profiles", h.listProfiles)
}

// bodyLimit leaves room for the CV, the job description and JSON framing.
func (h *Handler) bodyLimit(items int) int64 {
	return int64(items)*int64(2*h.Svc.maxBytes()) + 64<<10
}

func (h *Handler) analyzeText(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.bodyLimit(1))

	var req analyzeRequest
	if !bindJSON(c, &req, true) {
		return
	}

	a, err := h.Svc.AnalyzeText(c.Request.Context(), AnalyzeTextInput{
		UserID:         middleware.UserIDFromContext(c),
		Text:           req.Text,
		JobDescription: req.JobDescription,
		Profile:        req.Profile,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.AnalysisIDKey, a.ID)
	respond.Created(c, toResponse(a))
}

func (h *Handler) analyzeDocument(c *gin.Context) {
	documentID := strings.TrimSpace(c.Param("id"))
	if documentID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "document id is required", nil)
		return
	}
	c.Set(middleware.DocumentIDKey, documentID)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.bodyLimit(1))

	var req analyzeDocumentRequest
	if !bindJSON(c, &req, false) {
		return
	}

	a, err := h.Svc.AnalyzeDocument(c.Request.Context(), middleware.UserIDFromContext(c), documentID, req.JobDescription, req.Profile)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.AnalysisIDKey, a.ID)
	respond.Created(c, toResponse(a))
}

func (h *Handler) analyzeBatch(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.bodyLimit(MaxBatchItems))

	var req batchRequest
	if !bindJSON(c, &req, true) {
		return
	}
	c.Set(middleware.BatchSizeKey, len(req.Items))

	items := make([]BatchItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, BatchItem{Label: item.Label, Text: item.Text})
	}

	results, err := h.Svc.AnalyzeBatch(c.Request.Context(), middleware.UserIDFromContext(c), items, req.JobDescription, req.Profile)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]batchResultResponse, 0, len(results))
	for _, r := range results {
		entry := batchResultResponse{Index: r.Index, Label: r.Label}
		if r.Err != nil {
			_, code := statusFor(r.Err)
			entry.Error = &itemError{Code: code, Message: r.Err.Error()}
		} else if r.Analysis != nil {
			ar := toResponse(*r.Analysis)
			entry.Analysis = &ar
		}
		resp = append(resp, entry)
	}
	respond.OK(c, gin.H{"results": resp})
}

func (h *Handler) getAnalysis(c *gin.Context) {
	analysisID := c.Param("id")
	if analysisID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "analysis id is required", nil)
		return
	}

	a, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), analysisID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, toResponse(a))
}

func (h *Handler) listAnalyses(c *gin.Context) {
	limit, offset := documents.Pagination(c)

	list, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]AnalysisSummary, 0, len(list))
	for _, a := range list {
		resp = append(resp, toSummary(a))
	}
	respond.OK(c, resp)
}

func (h *Handler) listProfiles(c *gin.Context) {
	def, _ := h.Svc.ResolveProfile("")
	profiles := h.Svc.ProfileList()
	resp := make([]profileResponse, 0, len(profiles))
	for _, p := range profiles {
		resp = append(resp, profileResponse{Name: p.Name, Weights: p.Weights, Default: p.Name == def.Name})
	}
	respond.OK(c, resp)
}

// bindJSON decodes the request body. An empty body is accepted when required is false.
func bindJSON(c *gin.Context, dst any, required bool) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		respond.Error(c, http.StatusRequestEntityTooLarge, "text_too_large", "request body too large", nil)
	case errors.Is(err, io.EOF) && !required:
		return true
	default:
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
	}
	return false
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, documents.ErrInvalidInput):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, ErrUnknownProfile):
		return http.StatusBadRequest, "unknown_profile"
	case errors.Is(err, ErrBatchTooLarge):
		return http.StatusBadRequest, "batch_too_large"
	case errors.Is(err, ErrTextTooLarge):
		return http.StatusRequestEntityTooLarge, "text_too_large"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, documents.ErrNotFound):
		return http.StatusNotFound, "document_not_found"
	case errors.Is(err, extract.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType, "unsupported_type"
	case errors.Is(err, extract.ErrNoText):
		return http.StatusUnprocessableEntity, "no_text"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func writeError(c *gin.Context, err error) {
	status, code := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "analysis failed"
	}
	respond.Error(c, status, code, message, nil)
}
