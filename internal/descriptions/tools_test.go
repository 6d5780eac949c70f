package descriptions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetToolDescription(t *testing.T) {
	assert.Equal(t, ComplaintListDescription, GetToolDescription("complaint_list"))
	assert.Equal(t, "Tool description not available", GetToolDescription("pdf_read_file"))
}

func TestGetAllToolNames(t *testing.T) {
	names := GetAllToolNames()
	assert.Len(t, names, len(ToolDescriptions))
	assert.IsIncreasing(t, names)
	for _, name := range names {
		assert.NotEmpty(t, ToolDescriptions[name])
	}
}
