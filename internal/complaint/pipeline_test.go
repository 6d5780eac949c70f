package complaint

import (
	"context"
	"testing"
	"unicode/utf8"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	plain  string
	layout string
	tables [][][]string
}

func (f fakeSource) PlainText() string       { return f.plain }
func (f fakeSource) LayoutText() string      { return f.layout }
func (f fakeSource) AllTables() [][][]string { return f.tables }

const firstComplaint = `Acknowledgement Number: 3998123456781
Category of complaint: Online Financial Fraud
Sub Category of Complaint: Internet Banking Related Fraud
Additional Information: N/A
UserId: 88123912312
Incident Date/Time: 15/05/2025 10:30 AM
Complaint Date: 16/05/2025
Complainant Details
Name: Rajesh Kumar
Mobile: 9876543210
Email: rajesh.dummy@email.com
Address: Flat 101, Sunshine Apts
District/State: Pune, Maharashtra
Fraudulent Transaction Details
Total Fraudulent Amount: 250,000.00
`

var firstComplaintTables = [][][]string{
	{
		{"S No.", "Bank/Merchant", "Account No.", "Trans Id", "Amount", "Date"},
		{"1", "HDFC Bank", "XXXXXX1234", "772901234567", "100000", "15/05/2025"},
		{"2", "HDFC Bank", "XXXXXX1234", "772901234568", "150000", "15/05/2025"},
	},
	{
		{"S No.", "Action Taken", "Bank", "Account No", "Amount", "Remarks"},
		{"1", "Money Transfer to", "ICICI Bank", "001234567890", "100000", "-"},
		{"2", "Txn on hold", "SBI", "009876543211", "150000", "Frozen"},
	},
}

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	p, err := NewPipeline(PipelineConfig{Refs: StaticRef("1234")})
	require.NoError(t, err)
	return p
}

func TestPipelineResolve(t *testing.T) {
	p := newTestPipeline(t)

	rec := p.Resolve(context.Background(), fakeSource{plain: firstComplaint, tables: firstComplaintTables})

	assert.Equal(t, Record{
		CSRNo:            "1234",
		AckNo:            "3998123456781",
		Category:         "Online Financial Fraud",
		SubCategory:      "Internet Banking Related Fraud",
		IncidentDate:     "15/05/2025",
		IncidentTime:     "10:30 AM",
		ComplaintDate:    "16/05/2025",
		ComplainantName:  "Rajesh Kumar",
		ComplainantAddr:  "Pune, Maharashtra",
		ComplainantPhone: "9876543210",
		ComplainantEmail: "rajesh.dummy@email.com",
		TotalLoss:        "250,000.00",
		AdditionalDetails: "N/A UserId: 88123912312 Incident Date/Time: 15/05/2025 10:30 AM " +
			"Complaint Date: 16/05/2025",
	}, rec)
}

func TestPipelineSuspectFromTransactionListing(t *testing.T) {
	p := newTestPipeline(t)
	tables := [][][]string{{
		{"S No.", "Bank/Merchant", "Account No.", "Trans Id", "Amount", "Date"},
		{"1", "PhonePe", "9123456789@ybl", "T230822141512", "20000", "22/08/2025"},
	}}

	rec := p.Resolve(context.Background(), fakeSource{
		plain:  "Acknowledgement Number: 4112345678999\nMobile: 9123456789\n",
		tables: tables,
	})

	assert.Equal(t, "9123456789@ybl", rec.SuspectIdentifier)
	assert.Empty(t, rec.Platform)
	assert.Empty(t, rec.SuspectPhone)
}

func TestPipelineComplaintDateOrdinalFallback(t *testing.T) {
	p := newTestPipeline(t)

	rec := p.Resolve(context.Background(), fakeSource{
		plain: "Acknowledgement Number: 1234567890123\nIncident Date: 15/05/2025\nReceived 16/05/2025\n",
	})

	assert.Equal(t, "15/05/2025", rec.IncidentDate)
	assert.Equal(t, "16/05/2025", rec.ComplaintDate)
}

func TestPipelineEmptySource(t *testing.T) {
	p := newTestPipeline(t)

	for _, src := range []Source{nil, fakeSource{}} {
		rec := p.Resolve(context.Background(), src)
		assert.Equal(t, Record{CSRNo: "1234"}, rec)
		assert.Len(t, rec.MissingFields(), len(AllFields)-1)
	}
}

func TestPipelineCancelled(t *testing.T) {
	p := newTestPipeline(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := p.Resolve(ctx, fakeSource{plain: firstComplaint})

	assert.Equal(t, Record{}, rec)
}

func TestPipelineStepPanicLeavesFieldEmpty(t *testing.T) {
	p := &Pipeline{
		logger: log.Log,
		steps: []step{
			{field: FieldAckNo, resolve: func(*corpus) string { panic("boom") }},
			{field: FieldCategory, resolve: func(*corpus) string { return "Online Financial Fraud" }},
		},
	}

	rec := p.Resolve(context.Background(), fakeSource{plain: firstComplaint})

	assert.Empty(t, rec.AckNo)
	assert.Equal(t, "Online Financial Fraud", rec.Category)
}

func TestValidateOrder(t *testing.T) {
	noop := func(*corpus) string { return "" }

	tests := []struct {
		name    string
		steps   []step
		wantErr string
	}{
		{
			name:  "dependency resolved earlier",
			steps: []step{{field: FieldCategory, resolve: noop}, {field: FieldSubCategory, reads: []Field{FieldCategory}, resolve: noop}},
		},
		{
			name:    "dependency resolved later",
			steps:   []step{{field: FieldSubCategory, reads: []Field{FieldCategory}, resolve: noop}, {field: FieldCategory, resolve: noop}},
			wantErr: "step sub_category reads category before it is resolved",
		},
		{
			name:    "duplicate field",
			steps:   []step{{field: FieldAckNo, resolve: noop}, {field: FieldAckNo, resolve: noop}},
			wantErr: "field ack_no resolved twice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOrder(tt.steps)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}

	assert.NoError(t, validateOrder(defaultSteps(PipelineConfig{Refs: StaticRef("1")})))
}

func TestResolveProducesValidUTF8(t *testing.T) {
	p := newTestPipeline(t)
	text := "Acknowledgement Number: 3998123456781\nName: Raj\xffesh Kumar\nBrief Facts: Caller \xfeasked for the OTP of my card\n"
	rec := p.Resolve(context.Background(), fakeSource{plain: text, layout: text})

	assert.Equal(t, "Rajesh Kumar", rec.ComplainantName)
	for i, v := range rec.Values() {
		assert.True(t, utf8.ValidString(v), "column %s", Columns[i+1])
	}
}
