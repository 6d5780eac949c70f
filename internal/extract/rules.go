package extract

// Keyword tables, in priority order. Lookups are case-insensitive.
var (
	AckKeywords           = []string{"Acknowledgement Number", "Acknowledgement No", "Ack No", "Complaint ID"}
	IncidentDateKeywords  = []string{"Incident Date", "Date of Incident"}
	IncidentTimeKeywords  = []string{"Incident Date", "Incident Time", "Time of Incident"}
	ComplaintDateKeywords = []string{"Complaint Date", "Date of Complaint"}
	CategoryKeywords      = []string{"Category of complaint", "Category"}
	SubCategoryKeywords   = []string{"Sub Category of Complaint", "Sub Category", "Sub-Category"}
	NameKeywords          = []string{"Complainant Name", "Name of Complainant", "Victim Name", "Name"}
	PhoneKeywords         = []string{"Mobile No", "Mobile Number", "Mobile", "Contact No", "Phone No", "Phone"}
	EmailKeywords         = []string{"Email", "E-mail", "Mail Id"}
	AddressKeywords       = []string{"Address", "Correspondence Address"}
	PlatformKeywords      = []string{"Social Media Platform", "Platform Name", "Platform"}

	SuspectIDKeywords = []string{
		"Suspect Username", "Suspect Social Media Id", "Suspect ID", "Username", "User Name", "Profile Link", "URL",
	}
)

// AddressPart is one component of a complainant address.
type AddressPart struct {
	Name     string
	Keywords []string
	// Prefix replaces the ", " separator in front of this part.
	Prefix string
}

// AddressParts lists address components in the order they are joined.
var AddressParts = []AddressPart{
	{Name: "house", Keywords: []string{"House No", "House Number", "Door No", "Flat No"}},
	{Name: "street", Keywords: []string{"Street Name", "Street", "Road", "Lane"}},
	{Name: "colony", Keywords: []string{"Colony", "Locality", "Area", "Village", "Town"}},
	{Name: "tehsil", Keywords: []string{"Tehsil", "Taluka"}},
	{Name: "district", Keywords: []string{"District", "City"}},
	{Name: "state", Keywords: []string{"State"}},
	{Name: "pincode", Keywords: []string{"Pincode", "Pin Code", "Pin"}, Prefix: " - "},
}

// Table-row markers. A row containing any of these (lowercased) belongs to a
// bank, evidence or transaction listing and never names the suspect.
var RowMarkers = []string{"bank", "account", "evidence", "transaction"}

// TransactionTerms disqualify a cell from being a suspect identifier.
var TransactionTerms = []string{
	"transaction", "txn", "merchant", "payment", "paid", "refund", "amount",
	"debit", "credit", "ifsc", "neft", "imps", "rtgs", "reference",
}

// SupportMailboxPatterns match automated and government mailboxes.
var SupportMailboxPatterns = []string{
	`^(?:no-?reply|do-?not-?reply|support|help(?:desk)?|care|customercare|info|admin|alerts?|complaints?|grievance)@`,
	`@(?:[a-z0-9-]+\.)*(?:gov|nic)\.in$`,
	`@cybercrime\.`,
}

// URLMarkers identify profile links.
var URLMarkers = []string{"http", "www."}

const (
	maxIdentifierLen   = 120
	maxIdentifierWords = 3
)

// PlatformFragment maps a fragment of an identifier to a platform name.
type PlatformFragment struct {
	Fragment string
	Platform string
}

// PlatformFragments are tried in order, first match wins.
var PlatformFragments = []PlatformFragment{
	{Fragment: "instagram", Platform: "Instagram"},
	{Fragment: "instagr.am", Platform: "Instagram"},
	{Fragment: "facebook", Platform: "Facebook"},
	{Fragment: "fb.com", Platform: "Facebook"},
	{Fragment: "youtube", Platform: "YouTube"},
	{Fragment: "youtu.be", Platform: "YouTube"},
	{Fragment: "whatsapp", Platform: "WhatsApp"},
	{Fragment: "wa.me", Platform: "WhatsApp"},
	{Fragment: "telegram", Platform: "Telegram"},
	{Fragment: "t.me/", Platform: "Telegram"},
	{Fragment: "twitter", Platform: "X (Twitter)"},
	{Fragment: "//x.com", Platform: "X (Twitter)"},
	{Fragment: "www.x.com", Platform: "X (Twitter)"},
}

// Complaint categories.
const (
	CategoryFinancialFraud = "Online Financial Fraud"
	CategorySocialMedia    = "Online and Social Media Related Crime"
)

// CategoryMarker maps substring markers to a category.
type CategoryMarker struct {
	Category string
	Terms    []string
}

// CategoryMarkers are checked in order against the lowercased corpus.
var CategoryMarkers = []CategoryMarker{
	{
		Category: CategoryFinancialFraud,
		Terms: []string{
			"financial fraud", "upi", "debited", "fraudulent amount", "bank account",
			"transaction id", "otp", "loan", "investment",
		},
	},
	{
		Category: CategorySocialMedia,
		Terms: []string{
			"social media", "instagram", "facebook", "whatsapp", "fake profile", "fake account",
			"impersonat", "morphed", "harass", "stalking", "cyber bullying",
		},
	},
}

// Strict amount patterns, tried in order.
var AmountPatterns = []string{
	`(?i)Total Fraudulent Amount reported by complainant[:\s]*([\d,]+\.?\d*)`,
	`(?i)Total Amount Loss[:\s]*([\d,]+\.?\d*)`,
	`(?i)Loss Amount[:\s]*([\d,]+\.?\d*)`,
}

// AmountMarkers start the windowed amount scan. Matched case-sensitively.
var AmountMarkers = []string{"Total Fraudulent Amount", "Total Amount"}

// Years that look like amounts on these reports.
var AmountExcludedYears = []int64{2024, 2025, 2026}

// Narrative delimiters.
var (
	NarrativeStartMarkers = []string{"Brief Facts", "Gist of Complaint", "Additional Information", "Additional Info"}
	NarrativeEndMarkers   = []string{
		"Platform", "Action Taken", "Court", "Fraudulent Transaction", "Debited Transaction", "Complainant Details",
	}
)

// Boilerplate holds header and title lines excluded from the narrative fallback.
var Boilerplate = []string{
	"national cyber crime reporting portal",
	"ministry of home affairs",
	"government of india",
	"indian cyber crime coordination centre",
	"this is a system generated",
}

const (
	minNarrativeLen     = 10
	minNarrativeLineLen = 50
)
