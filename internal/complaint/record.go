package complaint

import "strings"

// Record is one parsed complaint. Every field is a string and empty means the
// value was not found. ID is set by the store.
type Record struct {
	ID                int64  `json:"id,omitempty"`
	CSRNo             string `json:"CSR No"`
	AckNo             string `json:"NCRP Acknowledgement No."`
	Category          string `json:"Category"`
	SubCategory       string `json:"Sub Category"`
	Platform          string `json:"Social Media Platform"`
	IncidentDate      string `json:"Incident Date"`
	IncidentTime      string `json:"Incident Time"`
	ComplaintDate     string `json:"Complaint Date"`
	ComplainantName   string `json:"Complaint Name"`
	ComplainantAddr   string `json:"Complaint Address"`
	ComplainantPhone  string `json:"Complaint Phone No."`
	ComplainantEmail  string `json:"Complaint Mail Id"`
	SuspectPhone      string `json:"Suspect phone No."`
	SuspectIdentifier string `json:"Suspect social Media Id"`
	TotalLoss         string `json:"Total Amount Loss"`
	AdditionalDetails string `json:"Additional details"`
}

// WithID returns a copy of the record carrying the storage id.
func (r Record) WithID(id int64) Record {
	r.ID = id
	return r
}

// NameAddress joins name and address the way the complaints table stores them.
func (r Record) NameAddress() string {
	return strings.Trim(r.ComplainantName+", "+r.ComplainantAddr, ", ")
}

// Columns lists the exported columns in display order.
var Columns = []string{
	"id", "CSR No", "NCRP Acknowledgement No.", "Category", "Sub Category", "Social Media Platform",
	"Incident Date", "Incident Time", "Complaint Date", "Complaint Name", "Complaint Address",
	"Complaint Phone No.", "Complaint Mail Id", "Suspect phone No.", "Suspect social Media Id",
	"Total Amount Loss", "Additional details",
}

// Values returns the field values aligned with Columns, without the id.
func (r Record) Values() []string {
	return []string{
		r.CSRNo, r.AckNo, r.Category, r.SubCategory, r.Platform,
		r.IncidentDate, r.IncidentTime, r.ComplaintDate, r.ComplainantName, r.ComplainantAddr,
		r.ComplainantPhone, r.ComplainantEmail, r.SuspectPhone, r.SuspectIdentifier,
		r.TotalLoss, r.AdditionalDetails,
	}
}

// MissingFields names the extracted fields left empty.
func (r Record) MissingFields() []Field {
	var missing []Field
	for _, f := range AllFields {
		if r.Get(f) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}
