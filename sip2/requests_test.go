package sip2

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAt = time.Date(2026, 8, 30, 10, 15, 0, 0, time.UTC)

const testStamp = "20260830    101500"

func mustEncode(t *testing.T, b interface {
	Build() (*Message, error)
},
) string {
	t.Helper()

	m, err := b.Build()
	require.NoError(t, err)

	return m.Encode(NewEncodeConfig())
}

func TestLoginRequest(t *testing.T) {
	req := &LoginRequest{UserID: "scuser", Password: "scpass", Location: "circ_desk"}

	assert.Equal(t, "9300CNscuser|COscpass|CPcirc_desk|\r", mustEncode(t, req))
}

func TestLoginRequest_LocationOmitted(t *testing.T) {
	req := &LoginRequest{UserID: "scuser", Password: "scpass"}

	assert.Equal(t, "9300CNscuser|COscpass|\r", mustEncode(t, req))
}

func TestSCStatusRequest(t *testing.T) {
	req := &SCStatusRequest{StatusCode: 2, MaxPrintWidth: 80}

	assert.Equal(t, "9920802.00\r", mustEncode(t, req))
}

func TestSCStatusRequest_InvalidStatusCode(t *testing.T) {
	for _, code := range []int{-1, 3, 10} {
		req := &SCStatusRequest{StatusCode: code, MaxPrintWidth: 80}

		_, err := req.Build()
		assert.ErrorIs(t, err, ErrInvalidStatusCode, "status code %d", code)
	}
}

func TestPatronStatusRequest(t *testing.T) {
	req := &PatronStatusRequest{
		At:               testAt,
		InstitutionID:    "UWOLS",
		PatronID:         "patron1",
		TerminalPassword: "tpwd",
		PatronPassword:   "ppwd",
	}

	assert.Equal(t, "23000"+testStamp+"AOUWOLS|AApatron1|ACtpwd|ADppwd|\r", mustEncode(t, req))
}

func TestPatronStatusRequest_EmptyPasswordsStillEmitted(t *testing.T) {
	req := &PatronStatusRequest{At: testAt, InstitutionID: "UWOLS", PatronID: "patron1"}

	// AC and AD are required fields for this message type: emitted even
	// when empty.
	assert.Equal(t, "23000"+testStamp+"AOUWOLS|AApatron1|AC|AD|\r", mustEncode(t, req))
}

func TestPatronStatusRequest_InvalidLanguage(t *testing.T) {
	req := &PatronStatusRequest{Language: 1000}

	_, err := req.Build()
	assert.ErrorIs(t, err, ErrInvalidLanguage)
}

func TestCheckoutRequest(t *testing.T) {
	req := &CheckoutRequest{
		SCRenewalPolicy:  true,
		At:               testAt,
		InstitutionID:    "UWOLS",
		PatronID:         "patron1",
		ItemID:           "item42",
		TerminalPassword: "tpwd",
	}

	// NB due date defaults to the transaction date.
	want := "11YN" + testStamp + testStamp + "AOUWOLS|AApatron1|ABitem42|ACtpwd|\r"
	assert.Equal(t, want, mustEncode(t, req))
}

func TestCheckoutRequest_OptionalFields(t *testing.T) {
	req := &CheckoutRequest{
		At:              testAt,
		InstitutionID:   "UWOLS",
		PatronID:        "patron1",
		ItemID:          "item42",
		ItemProperties:  "fragile",
		PatronPassword:  "ppwd",
		FeeAcknowledged: true,
		Cancel:          true,
	}

	wire := mustEncode(t, req)

	assert.Contains(t, wire, "CHfragile|")
	assert.Contains(t, wire, "ADppwd|")
	assert.Contains(t, wire, "BOY|")
	assert.Contains(t, wire, "BIY|")
}

func TestCheckinRequest(t *testing.T) {
	req := &CheckinRequest{
		At:               testAt,
		CurrentLocation:  "branch1",
		InstitutionID:    "UWOLS",
		ItemID:           "item42",
		TerminalPassword: "tpwd",
	}

	want := "09N" + testStamp + testStamp + "APbranch1|AOUWOLS|ABitem42|ACtpwd|\r"
	assert.Equal(t, want, mustEncode(t, req))
}

func TestBlockPatronRequest(t *testing.T) {
	req := &BlockPatronRequest{
		CardRetained:     true,
		At:               testAt,
		InstitutionID:    "UWOLS",
		BlockedCardMsg:   "card retained by terminal",
		PatronID:         "patron1",
		TerminalPassword: "tpwd",
	}

	want := "01Y" + testStamp + "AOUWOLS|ALcard retained by terminal|AApatron1|ACtpwd|\r"
	assert.Equal(t, want, mustEncode(t, req))
}

func TestEndPatronSessionRequest(t *testing.T) {
	req := &EndPatronSessionRequest{At: testAt, InstitutionID: "UWOLS", PatronID: "patron1"}

	assert.Equal(t, "35"+testStamp+"AOUWOLS|AApatron1|\r", mustEncode(t, req))
}

func TestFeePaidRequest(t *testing.T) {
	req := &FeePaidRequest{
		At:            testAt,
		FeeType:       1,
		PaymentType:   0,
		CurrencyType:  "USD",
		FeeAmount:     "2.50",
		InstitutionID: "UWOLS",
		PatronID:      "patron1",
	}

	want := "37" + testStamp + "0100USDBV2.50|AOUWOLS|AApatron1|\r"
	assert.Equal(t, want, mustEncode(t, req))
}

func TestFeePaidRequest_Validation(t *testing.T) {
	tests := []struct {
		name        string
		feeType     int
		paymentType int
		expected    error
	}{
		{"fee type too low", 0, 0, ErrInvalidFeeType},
		{"fee type too high", 100, 0, ErrInvalidFeeType},
		{"payment type negative", 1, -1, ErrInvalidPaymentType},
		{"payment type too high", 1, 3, ErrInvalidPaymentType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &FeePaidRequest{FeeType: tt.feeType, PaymentType: tt.paymentType}

			_, err := req.Build()
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestItemInformationRequest(t *testing.T) {
	req := &ItemInformationRequest{At: testAt, InstitutionID: "UWOLS", ItemID: "item42"}

	assert.Equal(t, "17"+testStamp+"AOUWOLS|ABitem42|\r", mustEncode(t, req))
}

func TestItemStatusUpdateRequest(t *testing.T) {
	req := &ItemStatusUpdateRequest{
		At:             testAt,
		InstitutionID:  "UWOLS",
		ItemID:         "item42",
		ItemProperties: "damaged spine",
	}

	assert.Equal(t, "19"+testStamp+"AOUWOLS|ABitem42|CHdamaged spine|\r", mustEncode(t, req))
}

func TestHoldRequest(t *testing.T) {
	req := &HoldRequest{
		Mode:           HoldModeAdd,
		At:             testAt,
		PickupLocation: "branch2",
		HoldType:       2,
		InstitutionID:  "UWOLS",
		PatronID:       "patron1",
		ItemID:         "item42",
	}

	want := "15+" + testStamp + "BSbranch2|BY2|AOUWOLS|AApatron1|ABitem42|\r"
	assert.Equal(t, want, mustEncode(t, req))
}

func TestHoldRequest_Validation(t *testing.T) {
	_, err := (&HoldRequest{Mode: 'x'}).Build()
	assert.ErrorIs(t, err, ErrInvalidHoldMode)

	_, err = (&HoldRequest{Mode: HoldModeAdd, HoldType: 10}).Build()
	assert.ErrorIs(t, err, ErrInvalidHoldType)

	_, err = (&HoldRequest{Mode: HoldModeDelete}).Build()
	assert.NoError(t, err, "zero hold type omits the BY field")
}

func TestRenewRequest(t *testing.T) {
	req := &RenewRequest{
		At:            testAt,
		InstitutionID: "UWOLS",
		PatronID:      "patron1",
		ItemID:        "item42",
	}

	want := "29NN" + testStamp + testStamp + "AOUWOLS|AApatron1|ABitem42|\r"
	assert.Equal(t, want, mustEncode(t, req))
}

func TestRenewAllRequest(t *testing.T) {
	req := &RenewAllRequest{At: testAt, InstitutionID: "UWOLS", PatronID: "patron1"}

	assert.Equal(t, "65"+testStamp+"AOUWOLS|AApatron1|\r", mustEncode(t, req))
}

func TestPatronInformationRequest(t *testing.T) {
	req := &PatronInformationRequest{
		At:            testAt,
		Summary:       1,
		InstitutionID: "UWOLS",
		PatronID:      "patron1",
	}

	want := "63000" + testStamp + " Y        AOUWOLS|AApatron1|\r"
	assert.Equal(t, want, mustEncode(t, req))
}

func TestPatronInformationRequest_NoSummary(t *testing.T) {
	req := &PatronInformationRequest{
		At:            testAt,
		Summary:       -1,
		InstitutionID: "UWOLS",
		PatronID:      "patron1",
	}

	wire := mustEncode(t, req)
	assert.Contains(t, wire, testStamp+strings.Repeat(" ", 10)+"AO")
}

func TestPatronInformationRequest_InvalidSummary(t *testing.T) {
	_, err := (&PatronInformationRequest{Summary: 10}).Build()
	assert.ErrorIs(t, err, ErrInvalidSummaryIndex)
}

func TestPatronEnableRequest(t *testing.T) {
	req := &PatronEnableRequest{At: testAt, InstitutionID: "UWOLS", PatronID: "patron1"}

	assert.Equal(t, "25"+testStamp+"AOUWOLS|AApatron1|\r", mustEncode(t, req))
}

func TestNewResendRequest(t *testing.T) {
	m := NewResendRequest()

	assert.Equal(t, CodeRequestACSResend, m.Code())
	assert.Equal(t, "97\r", m.Encode(NewEncodeConfig()))
}
