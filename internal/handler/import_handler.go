package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ridwanfathin/ai-invoice-import/internal/domain"
	"github.com/ridwanfathin/ai-invoice-import/internal/middleware"
	"github.com/ridwanfathin/ai-invoice-import/internal/model"
	"github.com/ridwanfathin/ai-invoice-import/internal/view"
	"github.com/ridwanfathin/ai-invoice-import/internal/workflow"
)

// ImageField is the multipart field carrying the invoice image
const ImageField = "image"

// ImportService is the invoice import workflow as used by the HTTP layer
type ImportService interface {
	Start(ctx context.Context) (*workflow.Session, error)
	Get(ctx context.Context, id string) (*workflow.Session, error)
	SelectBusiness(ctx context.Context, id, businessID string) (*workflow.Session, error)
	Process(ctx context.Context, id string, upload *domain.Upload) (*workflow.Session, error)
	Edit(ctx context.Context, id string, edits ...workflow.Edit) (*workflow.Session, error)
	Create(ctx context.Context, id string) (*workflow.Session, error)
	Reset(ctx context.Context, id string) (*workflow.Session, error)
}

// ImportConfig holds the handler settings
type ImportConfig struct {
	// InvoiceViewURL is the base of links to created invoices
	InvoiceViewURL string
	Cookie         middleware.SessionConfig
}

// ImportHandler serves the AI invoice import pages
type ImportHandler struct {
	service ImportService
	logger  logrus.FieldLogger
	config  ImportConfig
}

// NewImportHandler creates a new invoice import handler
func NewImportHandler(service ImportService, logger logrus.FieldLogger, cfg ImportConfig) *ImportHandler {
	return &ImportHandler{
		service: service,
		logger:  logger,
		config:  cfg,
	}
}

// RegisterRoutes registers the handler's routes with the given router
func (h *ImportHandler) RegisterRoutes(router gin.IRouter) {
	group := router.Group("/ai-invoice", middleware.SessionID())
	group.GET("", h.ShowPage)
	group.GET("/state", h.GetState)
	group.POST("/business", h.SelectBusiness)
	group.POST("/process", h.ProcessImage)
	group.POST("/edit", h.EditInvoice)
	group.POST("/create", h.CreateInvoice)
	group.POST("/reset", h.Reset)
}

// ShowPage renders the import page for the current session
// @Summary Show the invoice import page
// @Description Render the upload, review or summary step of the caller's import session
// @Tags ai-invoice
// @Produce html
// @Success 200 {string} string "Import page"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /ai-invoice [get]
func (h *ImportHandler) ShowPage(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	h.render(c, http.StatusOK, sess)
}

// GetState returns the current session as JSON
// @Summary Get the import session state
// @Description Return the workflow step, reference data and invoice data of the caller's import session
// @Tags ai-invoice
// @Produce json
// @Success 200 {object} model.SessionDTO "Current session"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /ai-invoice/state [get]
func (h *ImportHandler) GetState(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	h.respondSession(c, sess)
}

// SelectBusiness changes the selected business and reloads its customers
// @Summary Select a business
// @Description Select the business the invoice is created under and load its customers
// @Tags ai-invoice
// @Accept x-www-form-urlencoded
// @Produce json,html
// @Param business_id formData string false "Business id, empty to clear"
// @Success 200 {object} model.SessionDTO "Updated session"
// @Success 303 "Redirect to the import page"
// @Failure 409 {object} model.ErrorResponse "A backend call is in flight"
// @Router /ai-invoice/business [post]
func (h *ImportHandler) SelectBusiness(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	sess, err := h.service.SelectBusiness(c.Request.Context(), sess.ID, c.PostForm("business_id"))
	h.finish(c, sess, err)
}

// ProcessImage sends an uploaded invoice image for extraction
// @Summary Process an invoice image
// @Description Validate the uploaded image and extract its invoice data with AI
// @Tags ai-invoice
// @Accept multipart/form-data
// @Produce json,html
// @Param image formData file true "Invoice image (JPEG, PNG or WebP, max 10MB)"
// @Param business_id formData string false "Business id, defaults to the selected one"
// @Success 200 {object} model.SessionDTO "Updated session, check error for validation failures"
// @Success 303 "Redirect to the import page"
// @Failure 409 {object} model.ErrorResponse "A backend call is in flight or the step does not allow uploads"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /ai-invoice/process [post]
func (h *ImportHandler) ProcessImage(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	upload, err := readUpload(c, ImageField)
	if err != nil {
		h.logger.WithError(err).WithField("session", sess.ID).Error("Error reading upload")
		respondBadRequest(c, err.Error())
		return
	}

	if businessID, posted := c.GetPostForm("business_id"); posted && businessID != sess.BusinessID {
		if sess, err = h.service.SelectBusiness(ctx, sess.ID, businessID); err != nil {
			h.finish(c, sess, err)
			return
		}
	}

	sess, err = h.service.Process(ctx, sess.ID, upload)
	h.finish(c, sess, err)
}

// EditInvoice applies edits to the invoice under review
// @Summary Edit the extracted invoice
// @Description Apply field edits to the working copy of the extracted invoice. All edits apply or none do.
// @Tags ai-invoice
// @Accept x-www-form-urlencoded,json
// @Produce json,html
// @Param edits body model.EditRequest false "Edits, when sent as JSON"
// @Success 200 {object} model.SessionDTO "Updated session"
// @Success 303 "Redirect to the import page"
// @Failure 400 {object} model.ErrorResponse "Malformed request"
// @Failure 409 {object} model.ErrorResponse "No invoice under review"
// @Failure 422 {object} model.ErrorResponse "Invalid field edit"
// @Router /ai-invoice/edit [post]
func (h *ImportHandler) EditInvoice(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	edits, ok := h.edits(c)
	if !ok {
		return
	}

	sess, err := h.service.Edit(c.Request.Context(), sess.ID, edits...)
	h.finish(c, sess, err)
}

// CreateInvoice applies any posted edits and creates the invoice
// @Summary Create the invoice
// @Description Apply posted edits, then create the invoice from the reviewed data under the selected business
// @Tags ai-invoice
// @Accept x-www-form-urlencoded,json
// @Produce json,html
// @Param edits body model.EditRequest false "Final edits, when sent as JSON"
// @Success 200 {object} model.SessionDTO "Updated session, check error for backend failures"
// @Success 303 "Redirect to the import page"
// @Failure 409 {object} model.ErrorResponse "No invoice under review"
// @Failure 422 {object} model.ErrorResponse "Invalid field edit"
// @Router /ai-invoice/create [post]
func (h *ImportHandler) CreateInvoice(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	edits, ok := h.edits(c)
	if !ok {
		return
	}
	if len(edits) > 0 {
		if sess, err := h.service.Edit(ctx, sess.ID, edits...); err != nil {
			h.finish(c, sess, err)
			return
		}
	}

	sess, err := h.service.Create(ctx, sess.ID)
	h.finish(c, sess, err)
}

// Reset discards the current upload and extracted data
// @Summary Start over
// @Description Discard the extracted data and return to the upload step
// @Tags ai-invoice
// @Produce json,html
// @Success 200 {object} model.SessionDTO "Updated session"
// @Success 303 "Redirect to the import page"
// @Failure 409 {object} model.ErrorResponse "Invoice creation in flight"
// @Router /ai-invoice/reset [post]
func (h *ImportHandler) Reset(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	sess, err := h.service.Reset(c.Request.Context(), sess.ID)
	h.finish(c, sess, err)
}

// session returns the caller's session, starting a new one when the cookie is
// missing or the session expired
func (h *ImportHandler) session(c *gin.Context) (*workflow.Session, bool) {
	ctx := c.Request.Context()

	if id := c.GetString(middleware.SessionKey); id != "" {
		sess, err := h.service.Get(ctx, id)
		if err == nil {
			return sess, true
		}
		if !errors.Is(err, workflow.ErrSessionNotFound) {
			h.logger.WithError(err).WithField("session", id).Error("Error loading session")
			respondInternalServerError(c, ErrInternalServer)
			return nil, false
		}
	}

	sess, err := h.service.Start(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Error starting session")
		respondInternalServerError(c, ErrInternalServer)
		return nil, false
	}
	middleware.SetSessionCookie(c, h.config.Cookie, sess.ID)
	return sess, true
}

// edits reads the edits of a JSON or form request
func (h *ImportHandler) edits(c *gin.Context) ([]workflow.Edit, bool) {
	if c.ContentType() == gin.MIMEJSON {
		if c.Request.ContentLength == 0 {
			return nil, true
		}
		var req model.EditRequest
		if err := bindJSON(c, &req); err != nil {
			respondBadRequest(c, ErrInvalidInput, newErrorDetail("edits", err.Error()))
			return nil, false
		}
		return editsFromRequest(&req), true
	}

	edits, err := parseEditForm(c)
	if err != nil {
		respondBadRequest(c, ErrInvalidInput, newErrorDetail("form", err.Error()))
		return nil, false
	}
	return edits, true
}

// finish answers a workflow action: the session as JSON, or a redirect back to
// the page for browsers
func (h *ImportHandler) finish(c *gin.Context, sess *workflow.Session, err error) {
	if err == nil {
		if wantsJSON(c) {
			h.respondSession(c, sess)
			return
		}
		c.Redirect(StatusSeeOther, "/ai-invoice")
		return
	}

	var editErr *workflow.EditError
	switch {
	case errors.As(err, &editErr):
		if wantsJSON(c) {
			respondUnprocessableEntity(c, ErrInvalidEdit, newErrorDetail(editFieldName(editErr), editErr.Err.Error()))
			return
		}
		page := *sess
		page.Error = ErrInvalidEdit + ": " + editErr.Error()
		h.render(c, StatusUnprocessableEntity, &page)
	case errors.Is(err, workflow.ErrBusy), errors.Is(err, workflow.ErrInvalidTransition):
		if wantsJSON(c) {
			message := ErrNotAllowed
			if errors.Is(err, workflow.ErrBusy) {
				message = ErrBusy
			}
			respondConflict(c, message)
			return
		}
		c.Redirect(StatusSeeOther, "/ai-invoice")
	default:
		h.logger.WithError(err).Error("Error running import workflow")
		respondInternalServerError(c, ErrInternalServer)
	}
}

func (h *ImportHandler) render(c *gin.Context, status int, sess *workflow.Session) {
	c.HTML(status, view.PageTemplate, view.NewPage(sess, h.config.InvoiceViewURL))
}

func (h *ImportHandler) respondSession(c *gin.Context, sess *workflow.Session) {
	var dto model.SessionDTO
	dto.FromDomain(sess, h.config.InvoiceViewURL)
	respondOK(c, dto)
}

// editFieldName renders the form key an edit error refers to
func editFieldName(e *workflow.EditError) string {
	if e.Item >= 0 {
		return lineItemFieldName(e.Item, e.Field)
	}
	return e.Field
}

func lineItemFieldName(index int, field string) string {
	return "line_items[" + strconv.Itoa(index) + "][" + field + "]"
}
