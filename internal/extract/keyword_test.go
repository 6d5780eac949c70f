package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"only whitespace", " \t\n ", ""},
		{"collapses runs", "  Rajesh \n\t Kumar  ", "Rajesh Kumar"},
		{"already clean", "Pune, Maharashtra", "Pune, Maharashtra"},
		{"invalid utf-8 dropped", "Raj\xffesh  Kumar", "Rajesh Kumar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestFindAfterKeyword(t *testing.T) {
	tests := []struct {
		name     string
		corpus   string
		keywords []string
		want     string
	}{
		{"ack number", reportText, AckKeywords, "3998123456781"},
		{"category", reportText, CategoryKeywords, "Online Financial Fraud"},
		{"sub category", reportText, SubCategoryKeywords, "Internet Banking Related Fraud"},
		{"name skips longer labels", reportText, NameKeywords, "Rajesh Kumar"},
		{"phone falls through to Mobile", reportText, PhoneKeywords, "9876543210"},
		{"email", reportText, EmailKeywords, "rajesh.dummy@email.com"},
		{"case insensitive", "ACK NO - 1234567890123", AckKeywords, "1234567890123"},
		{"keyword absent", reportText, []string{"Police Station"}, ""},
		{"trivial value skipped", "Ack No: 7\nComplaint ID: 42", AckKeywords, "42"},
		{"punctuation only", "Name: --", []string{"Name"}, ""},
		{"empty corpus", "", AckKeywords, ""},
		{"word start only", "Username: someone", []string{"Name"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindAfterKeyword(tt.corpus, tt.keywords))
		})
	}
}

func TestFindInLayout(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		keywords []string
		want     string
	}{
		{"wide gap", reportLayout, NameKeywords, "Rajesh Kumar"},
		{"value stops at next column", "Name:      Rajesh Kumar      Mobile:   9876543210", []string{"Name"}, "Rajesh Kumar"},
		{"loose separator", "State: Pune, Maharashtra", []string{"State"}, "Pune, Maharashtra"},
		{"loose separator stops at next column", "Name: Rajesh Kumar            Mobile: 9876543210", NameKeywords, "Rajesh Kumar"},
		{"first keyword with value wins", reportLayout, []string{"Victim Name", "Email"}, "rajesh.dummy@email.com"},
		{"missing", reportLayout, []string{"Pincode"}, ""},
		{"slash is not a separator", reportLayout, []string{"District"}, ""},
		{"empty layout", "", NameKeywords, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindInLayout(tt.layout, tt.keywords))
		})
	}
}

func TestFindInLayoutThenText(t *testing.T) {
	assert.Equal(t, "Rajesh Kumar", FindInLayoutThenText(reportLayout, reportText, NameKeywords))
	assert.Equal(t, "Flat 101, Sunshine Apts", FindInLayoutThenText(reportLayout, reportText, AddressKeywords))
	assert.Empty(t, FindInLayoutThenText("", "", AddressKeywords))
}
