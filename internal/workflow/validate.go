package workflow

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ridwanfathin/ai-invoice-import/internal/domain"
)

// MaxImageSize is the largest image accepted for extraction
const MaxImageSize = 10 << 20

// AllowedImageTypes lists the media types accepted for extraction
var AllowedImageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}

// ValidationError is a failed upload check; Message is shown to the user as is
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type uploadRule struct {
	field   string
	value   func() interface{}
	tag     string
	message string
}

var validate = validator.New()

// ValidateUpload checks an upload before it is sent for extraction.
// Rules run in order and the first failure is returned.
func ValidateUpload(upload *domain.Upload, businessID string) *ValidationError {
	rules := []uploadRule{
		{
			field:   "image",
			value: func() interface{} {
				if upload == nil {
					return nil
				}
				return upload.Data
			},
			tag:     "required,min=1",
			message: "Please select an image file",
		},
		{
			field:   "image",
			value:   func() interface{} { return normalizeMediaType(upload.ContentType) },
			tag:     "oneof=" + strings.Join(AllowedImageTypes, " "),
			message: "Please select a valid image file (JPEG, PNG, or WebP)",
		},
		{
			field:   "image",
			value:   func() interface{} { return upload.Size },
			tag:     "lte=" + itoa(MaxImageSize),
			message: "File size too large. Please upload an image smaller than 10MB",
		},
		{
			field:   "business_id",
			value:   func() interface{} { return businessID },
			tag:     "required",
			message: "Please select a business",
		},
	}

	for _, rule := range rules {
		if err := validate.Var(rule.value(), rule.tag); err != nil {
			return &ValidationError{Field: rule.field, Message: rule.message}
		}
	}
	return nil
}

func normalizeMediaType(contentType string) string {
	mediaType, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mediaType))
}
