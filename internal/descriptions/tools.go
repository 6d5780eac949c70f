// Package descriptions holds the long-form MCP tool descriptions.
package descriptions

import "sort"

const (
	ComplaintProcessFileDescription = `Extract the fields of an NCRP acknowledgement report PDF and store the record.

**When to use:** A complaint report from the National Cyber Crime Reporting Portal needs to be entered into the complaints database.

**What you get:** The stored record with its id: acknowledgement number, category and sub category, incident and complaint dates, complainant details, suspect phone and social media id, platform, total amount lost and the narrative. Fields that could not be found are shown as "-".

**Examples:**
• Ingest a report: "Process reports/31205250012345.pdf"
• Re-check a file: processing the same report twice is rejected as a duplicate of the acknowledgement number

**Notes:** Paths are resolved against the configured directory and may not leave it. A report without an acknowledgement number cannot be stored.`

	ComplaintValidateFileDescription = `Check that a file is a readable PDF before processing it.

**When to use:** A file fails to process, or you want to confirm a scan is a structurally valid PDF.

**What you get:** Whether the file is valid, its page count and size, or the reason validation failed.`

	ComplaintListDescription = `List every stored complaint, newest first.

**What you get:** One line per record with its id, acknowledgement number, category and total loss. Use complaint_get with the id for the full record.`

	ComplaintGetDescription = `Show the full stored record for one complaint id as JSON, using the portal's column names as keys.`

	ComplaintDeleteDescription = `Delete one stored complaint by id. Deleting an id that does not exist succeeds.`

	ComplaintServerInfoDescription = `Show the server name and version, the configured directory, the database in use, the number of stored complaints and the available tools.

**When to use:** At the start of a session, to find where complaint PDFs are expected.`
)

// ToolDescriptions maps tool names to their descriptions
var ToolDescriptions = map[string]string{
	"complaint_process_file":  ComplaintProcessFileDescription,
	"complaint_validate_file": ComplaintValidateFileDescription,
	"complaint_list":          ComplaintListDescription,
	"complaint_get":           ComplaintGetDescription,
	"complaint_delete":        ComplaintDeleteDescription,
	"complaint_server_info":   ComplaintServerInfoDescription,
}

// GetToolDescription returns the description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns the described tool names in sorted order
func GetAllToolNames() []string {
	names := make([]string, 0, len(ToolDescriptions))
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
