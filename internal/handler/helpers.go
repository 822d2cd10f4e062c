package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/ridwanfathin/ai-invoice-import/internal/domain"
	"github.com/ridwanfathin/ai-invoice-import/internal/model"
	"github.com/ridwanfathin/ai-invoice-import/internal/workflow"
)

// lineItemField matches form keys like line_items[3][rate]
var lineItemField = regexp.MustCompile(`^line_items\[(\d+)\]\[(\w+)\]$`)

// wantsJSON reports whether the client asked for JSON rather than a page
func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

// getFormFile retrieves a file from multipart form data
func getFormFile(c *gin.Context, fieldName string) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := c.Request.FormFile(fieldName)
	if err != nil {
		return nil, nil, fmt.Errorf("no %s provided: %w", fieldName, err)
	}
	return file, header, nil
}

// readUpload reads the image part of a multipart request. A missing part yields
// nil so the workflow reports it like any other invalid upload.
func readUpload(c *gin.Context, fieldName string) (*domain.Upload, error) {
	file, header, err := getFormFile(c, fieldName)
	if err != nil {
		return nil, nil
	}
	defer file.Close()

	// Oversized files are read only up to the limit; Size keeps the real size
	data, err := io.ReadAll(io.LimitReader(file, workflow.MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return &domain.Upload{
		Filename:    header.Filename,
		ContentType: detectContentType(header.Header.Get("Content-Type"), data),
		Size:        header.Size,
		Data:        data,
	}, nil
}

// detectContentType keeps the declared type unless the client sent none
func detectContentType(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && !strings.HasPrefix(strings.ToLower(declared), "application/octet-stream") {
		return declared
	}
	if len(data) == 0 {
		return declared
	}
	return mimetype.Detect(data).String()
}

// bindJSON binds JSON request body to a struct
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return fmt.Errorf("invalid JSON format: %v", err)
	}
	return nil
}

// parseEditForm turns posted review form fields into edits, in key order
func parseEditForm(c *gin.Context) ([]workflow.Edit, error) {
	if err := c.Request.ParseForm(); err != nil {
		return nil, fmt.Errorf("failed to parse form data: %w", err)
	}

	keys := make([]string, 0, len(c.Request.PostForm))
	for key := range c.Request.PostForm {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	edits := make([]workflow.Edit, 0, len(keys))
	for _, key := range keys {
		value := c.Request.PostForm.Get(key)
		if m := lineItemField.FindStringSubmatch(key); m != nil {
			index, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, fmt.Errorf("invalid line item index in %q", key)
			}
			edits = append(edits, workflow.LineItemEdit(index, m[2], value))
			continue
		}
		edits = append(edits, workflow.InvoiceEdit(key, value))
	}
	return edits, nil
}

// editsFromRequest converts a JSON edit request into edits
func editsFromRequest(req *model.EditRequest) []workflow.Edit {
	edits := make([]workflow.Edit, 0, len(req.Edits))
	for _, e := range req.Edits {
		if e.Item == nil {
			edits = append(edits, workflow.InvoiceEdit(e.Field, e.Value))
		} else {
			edits = append(edits, workflow.LineItemEdit(*e.Item, e.Field, e.Value))
		}
	}
	return edits
}
