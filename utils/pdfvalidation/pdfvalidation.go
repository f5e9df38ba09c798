package pdfvalidation

import (
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFLimits defines the validation limits for PDF uploads
type PDFLimits struct {
	MaxFileSizeMB    int
	MaxPages         int
	DocumentTypeName string // For error messages
}

// BrochureLimits bounds university/course brochure uploads
var BrochureLimits = PDFLimits{
	MaxFileSizeMB:    25,
	MaxPages:         100,
	DocumentTypeName: "brochure",
}

// ValidationResult contains the result of PDF validation
type ValidationResult struct {
	Valid     bool
	PageCount int
	FileSize  int64
	Error     string
}

// ValidatePDFFile validates a PDF file against the given limits
func ValidatePDFFile(file *multipart.FileHeader, limits PDFLimits) (*ValidationResult, error) {
	result := &ValidationResult{
		FileSize: file.Size,
	}

	// 1. Validate file size
	maxSize := int64(limits.MaxFileSizeMB) * 1024 * 1024
	if file.Size > maxSize {
		result.Error = fmt.Sprintf("File size exceeds maximum allowed size of %dMB", limits.MaxFileSizeMB)
		return result, nil
	}

	// 2. Validate file extension
	filename := strings.ToLower(file.Filename)
	if !strings.HasSuffix(filename, ".pdf") {
		result.Error = "Only PDF files are supported"
		return result, nil
	}

	// 3. Open and count pages
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	reader, err := pdf.NewReader(src, file.Size)
	if err != nil {
		result.Error = fmt.Sprintf("File is not a readable PDF %s", limits.DocumentTypeName)
		return result, nil
	}

	result.PageCount = reader.NumPage()
	if result.PageCount > limits.MaxPages {
		result.Error = fmt.Sprintf("PDF exceeds maximum of %d pages for a %s",
			limits.MaxPages, limits.DocumentTypeName)
		return result, nil
	}

	result.Valid = true
	return result, nil
}
