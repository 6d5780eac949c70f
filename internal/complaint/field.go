package complaint

// Field identifies one resolved value of a record.
type Field string

const (
	FieldAckNo             Field = "ack_no"
	FieldIncidentDate      Field = "incident_date"
	FieldIncidentTime      Field = "incident_time"
	FieldComplaintDate     Field = "complaint_date"
	FieldCategory          Field = "category"
	FieldSubCategory       Field = "sub_category"
	FieldComplainantName   Field = "complainant_name"
	FieldComplainantPhone  Field = "complainant_phone"
	FieldComplainantEmail  Field = "complainant_email"
	FieldComplainantAddr   Field = "complainant_address"
	FieldSuspectPhone      Field = "suspect_phone"
	FieldSuspectIdentifier Field = "suspect_identifier"
	FieldPlatform          Field = "platform"
	FieldTotalLoss         Field = "total_loss"
	FieldAdditionalDetails Field = "additional_details"
	FieldCSRNo             Field = "csr_no"
)

// AllFields lists every field in resolution order.
var AllFields = []Field{
	FieldAckNo, FieldIncidentDate, FieldIncidentTime, FieldComplaintDate,
	FieldCategory, FieldSubCategory,
	FieldComplainantName, FieldComplainantPhone, FieldComplainantEmail, FieldComplainantAddr,
	FieldSuspectPhone, FieldSuspectIdentifier, FieldPlatform,
	FieldTotalLoss, FieldAdditionalDetails, FieldCSRNo,
}

// Get returns the value of a field.
func (r Record) Get(f Field) string {
	if p := r.slot(f); p != nil {
		return *p
	}
	return ""
}

// set assigns a field; unknown fields are ignored.
func (r *Record) set(f Field, v string) {
	if p := r.slot(f); p != nil {
		*p = v
	}
}

func (r *Record) slot(f Field) *string {
	switch f {
	case FieldAckNo:
		return &r.AckNo
	case FieldIncidentDate:
		return &r.IncidentDate
	case FieldIncidentTime:
		return &r.IncidentTime
	case FieldComplaintDate:
		return &r.ComplaintDate
	case FieldCategory:
		return &r.Category
	case FieldSubCategory:
		return &r.SubCategory
	case FieldComplainantName:
		return &r.ComplainantName
	case FieldComplainantPhone:
		return &r.ComplainantPhone
	case FieldComplainantEmail:
		return &r.ComplainantEmail
	case FieldComplainantAddr:
		return &r.ComplainantAddr
	case FieldSuspectPhone:
		return &r.SuspectPhone
	case FieldSuspectIdentifier:
		return &r.SuspectIdentifier
	case FieldPlatform:
		return &r.Platform
	case FieldTotalLoss:
		return &r.TotalLoss
	case FieldAdditionalDetails:
		return &r.AdditionalDetails
	case FieldCSRNo:
		return &r.CSRNo
	}
	return nil
}
