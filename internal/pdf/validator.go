package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// Validator handles PDF file validation operations
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a new PDF validator with the specified constraints
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{
		maxFileSize: maxFileSize,
	}
}

// ValidateFile checks that a file is a readable PDF within the size limit
func (v *Validator) ValidateFile(req PDFValidateFileRequest) (*PDFValidateFileResult, error) {
	result := &PDFValidateFileResult{Path: req.Path}

	data, err := v.ReadFile(req.Path)
	if err != nil {
		result.Message = err.Error()
		return result, nil //nolint:nilerr // validation failures are reported in the result
	}
	result.Size = int64(len(data))

	res := ValidateBytes(data)
	result.Valid = res.Valid
	result.Pages = res.Pages
	result.Message = res.Message
	return result, nil
}

// ReadFile reads a PDF file after checking its type and size
func (v *Validator) ReadFile(filePath string) ([]byte, error) {
	if filePath == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	if !strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
		return nil, fmt.Errorf("file is not a PDF: %s", filePath)
	}
	if fileInfo.Size() == 0 {
		return nil, fmt.Errorf("file is empty: %s", filePath)
	}
	if fileInfo.Size() > v.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", fileInfo.Size(), v.maxFileSize)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}
	return data, nil
}

// ValidationResult is the structural check of an in-memory PDF.
type ValidationResult struct {
	Valid   bool
	Pages   int
	Message string
}

// ValidateBytes checks the header and validates the document structure with
// pdfcpu in relaxed mode.
func ValidateBytes(data []byte) (res ValidationResult) {
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), []byte("%PDF-")) {
		return ValidationResult{Message: "missing %PDF- header"}
	}

	defer func() {
		if r := recover(); r != nil {
			res = ValidationResult{Message: fmt.Sprintf("pdf structure check panicked: %v", r)}
		}
	}()

	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return ValidationResult{Message: fmt.Sprintf("failed to read PDF context: %v", err)}
	}
	if err := api.ValidateContext(ctx); err != nil {
		return ValidationResult{Message: fmt.Sprintf("invalid PDF structure: %v", err)}
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return ValidationResult{Message: fmt.Sprintf("failed to ensure page count: %v", err)}
	}
	return ValidationResult{Valid: true, Pages: ctx.PageCount}
}
