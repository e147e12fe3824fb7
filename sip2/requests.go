package sip2

import (
	"fmt"
	"strconv"
	"time"
)

// Request builders.
//
// Each SIP2 request type has a dedicated builder that appends fields in the
// exact order the protocol mandates and validates numeric argument domains
// before producing any message text. Validation failures are returned as
// typed errors; no partially built message escapes.
//
// Timestamps: every builder that carries a transaction date renders the
// 18-character stamp from At, or from the current local time when At is the
// zero Time.

// yn renders a boolean flag as the protocol's one-character Y/N field.
func yn(v bool) string {
	if v {
		return "Y"
	}

	return "N"
}

func timestampAt(at time.Time) string {
	if at.IsZero() {
		return Timestamp()
	}

	return FormatTimestamp(at)
}

// LoginRequest builds a Login (93) message.
//
// UserID and Password are sent in the clear (algorithm fields "0"); SIP2's
// optional encryption algorithms are not implemented by any ACS this
// package has been tested against.
type LoginRequest struct {
	UserID   string
	Password string
	Location string // CP, omitted when empty
}

// Build constructs the wire message.
func (r *LoginRequest) Build() (*Message, error) {
	m := NewMessage(CodeLogin)
	m.AppendFixed("0", 1) // UID algorithm: plain text
	m.AppendFixed("0", 1) // PWD algorithm: plain text
	m.AppendVariable(FieldLoginUserID, r.UserID, false)
	m.AppendVariable(FieldLoginPassword, r.Password, false)
	m.AppendVariable(FieldLocationCode, r.Location, true)

	return m, nil
}

// SCStatusRequest builds an SC Status (99) message.
type SCStatusRequest struct {
	// StatusCode: 0 = SC unit is OK, 1 = SC printer is out of paper,
	// 2 = SC is about to shut down.
	StatusCode int

	// MaxPrintWidth is the widest print line the SC can handle.
	MaxPrintWidth int
}

// Build constructs the wire message.
func (r *SCStatusRequest) Build() (*Message, error) {
	if r.StatusCode < 0 || r.StatusCode > 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidStatusCode, r.StatusCode)
	}

	m := NewMessage(CodeSCStatus)
	m.AppendFixed(strconv.Itoa(r.StatusCode), 1)
	m.AppendFixed(fmt.Sprintf("%03d", r.MaxPrintWidth), 3)
	m.AppendFixed(ProtocolVersion, 4)

	return m, nil
}

// PatronStatusRequest builds a Patron Status Request (23) message.
type PatronStatusRequest struct {
	Language         int // 3-digit language code, 0 = unknown
	At               time.Time
	InstitutionID    string
	PatronID         string
	TerminalPassword string
	PatronPassword   string
}

// Build constructs the wire message.
func (r *PatronStatusRequest) Build() (*Message, error) {
	if r.Language < 0 || r.Language > 999 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLanguage, r.Language)
	}

	m := NewMessage(CodePatronStatusRequest)
	m.AppendFixed(fmt.Sprintf("%03d", r.Language), 3)
	m.AppendFixed(timestampAt(r.At), 18)
	m.AppendVariable(FieldInstitutionID, r.InstitutionID, false)
	m.AppendVariable(FieldPatronID, r.PatronID, false)
	m.AppendVariable(FieldTerminalPassword, r.TerminalPassword, false)
	m.AppendVariable(FieldPatronPassword, r.PatronPassword, false)

	return m, nil
}

// CheckoutRequest builds a Checkout (11) message.
type CheckoutRequest struct {
	SCRenewalPolicy  bool // Y: SC may renew an already charged item
	NoBlock          bool // Y: offline transaction being uploaded
	At               time.Time
	NBDueDate        time.Time // due date for no-block transactions; defaults to At
	InstitutionID    string
	PatronID         string
	ItemID           string
	TerminalPassword string
	ItemProperties   string // CH, omitted when empty
	PatronPassword   string // AD, omitted when empty
	FeeAcknowledged  bool   // BO, emitted only when true
	Cancel           bool   // BI, emitted only when true
}

// Build constructs the wire message.
func (r *CheckoutRequest) Build() (*Message, error) {
	nbDue := r.NBDueDate
	if nbDue.IsZero() {
		nbDue = r.At
	}

	m := NewMessage(CodeCheckout)
	m.AppendFixed(yn(r.SCRenewalPolicy), 1)
	m.AppendFixed(yn(r.NoBlock), 1)
	m.AppendFixed(timestampAt(r.At), 18)
	m.AppendFixed(timestampAt(nbDue), 18)
	m.AppendVariable(FieldInstitutionID, r.InstitutionID, false)
	m.AppendVariable(FieldPatronID, r.PatronID, false)
	m.AppendVariable(FieldItemID, r.ItemID, false)
	m.AppendVariable(FieldTerminalPassword, r.TerminalPassword, false)
	m.AppendVariable(FieldItemProperties, r.ItemProperties, true)
	m.AppendVariable(FieldPatronPassword, r.PatronPassword, true)
	if r.FeeAcknowledged {
		m.AppendVariable(FieldFeeAcknowledged, "Y", false)
	}
	if r.Cancel {
		m.AppendVariable(FieldCancel, "Y", false)
	}

	return m, nil
}

// CheckinRequest builds a Checkin (09) message.
type CheckinRequest struct {
	NoBlock          bool
	At               time.Time
	ReturnDate       time.Time // defaults to At
	CurrentLocation  string
	InstitutionID    string
	ItemID           string
	TerminalPassword string
	ItemProperties   string // CH, omitted when empty
	Cancel           bool   // BI, emitted only when true
}

// Build constructs the wire message.
func (r *CheckinRequest) Build() (*Message, error) {
	returned := r.ReturnDate
	if returned.IsZero() {
		returned = r.At
	}

	m := NewMessage(CodeCheckin)
	m.AppendFixed(yn(r.NoBlock), 1)
	m.AppendFixed(timestampAt(r.At), 18)
	m.AppendFixed(timestampAt(returned), 18)
	m.AppendVariable(FieldCurrentLocation, r.CurrentLocation, false)
	m.AppendVariable(FieldInstitutionID, r.InstitutionID, false)
	m.AppendVariable(FieldItemID, r.ItemID, false)
	m.AppendVariable(FieldTerminalPassword, r.TerminalPassword, false)
	m.AppendVariable(FieldItemProperties, r.ItemProperties, true)
	if r.Cancel {
		m.AppendVariable(FieldCancel, "Y", false)
	}

	return m, nil
}

// BlockPatronRequest builds a Block Patron (01) message.
type BlockPatronRequest struct {
	CardRetained     bool
	At               time.Time
	InstitutionID    string
	BlockedCardMsg   string
	PatronID         string
	TerminalPassword string
}

// Build constructs the wire message.
func (r *BlockPatronRequest) Build() (*Message, error) {
	m := NewMessage(CodeBlockPatron)
	m.AppendFixed(yn(r.CardRetained), 1)
	m.AppendFixed(timestampAt(r.At), 18)
	m.AppendVariable(FieldInstitutionID, r.InstitutionID, false)
	m.AppendVariable(FieldBlockedCardMsg, r.BlockedCardMsg, false)
	m.AppendVariable(FieldPatronID, r.PatronID, false)
	m.AppendVariable(FieldTerminalPassword, r.TerminalPassword, false)

	return m, nil
}

// EndPatronSessionRequest builds an End Patron Session (35) message.
type EndPatronSessionRequest struct {
	At               time.Time
	InstitutionID    string
	PatronID         string
	TerminalPassword string // AC, omitted when empty
	PatronPassword   string // AD, omitted when empty
}

// Build constructs the wire message.
func (r *EndPatronSessionRequest) Build() (*Message, error) {
	m := NewMessage(CodeEndPatronSession)
	m.AppendFixed(timestampAt(r.At), 18)
	m.AppendVariable(FieldInstitutionID, r.InstitutionID, false)
	m.AppendVariable(FieldPatronID, r.PatronID, false)
	m.AppendVariable(FieldTerminalPassword, r.TerminalPassword, true)
	m.AppendVariable(FieldPatronPassword, r.PatronPassword, true)

	return m, nil
}

// FeePaidRequest builds a Fee Paid (37) message.
type FeePaidRequest struct {
	At               time.Time
	FeeType          int    // 01-99 per the protocol's fee type table
	PaymentType      int    // 00 = cash, 01 = VISA, 02 = credit card
	CurrencyType     string // 3-letter ISO code, e.g. "USD"
	FeeAmount        string // BV, decimal string, required
	InstitutionID    string
	PatronID         string
	TerminalPassword string // AC, omitted when empty
	PatronPassword   string // AD, omitted when empty
	FeeIdentifier    string // CG, omitted when empty
	TransactionID    string // BK, omitted when empty
}

// Build constructs the wire message.
func (r *FeePaidRequest) Build() (*Message, error) {
	if r.FeeType < 1 || r.FeeType > 99 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidFeeType, r.FeeType)
	}
	if r.PaymentType < 0 || r.PaymentType > 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPaymentType, r.PaymentType)
	}

	m := NewMessage(CodeFeePaid)
	m.AppendFixed(timestampAt(r.At), 18)
	m.AppendFixed(fmt.Sprintf("%02d", r.FeeType), 2)
	m.AppendFixed(fmt.Sprintf("%02d", r.PaymentType), 2)
	m.AppendFixed(r.CurrencyType, 3)
	m.AppendVariable(FieldFeeAmount, r.FeeAmount, false)
	m.AppendVariable(FieldInstitutionID, r.InstitutionID, false)
	m.AppendVariable(FieldPatronID, r.PatronID, false)
	m.AppendVariable(FieldTerminalPassword, r.TerminalPassword, true)
	m.AppendVariable(FieldPatronPassword, r.PatronPassword, true)
	m.AppendVariable(FieldFeeIdentifier, r.FeeIdentifier, true)
	m.AppendVariable(FieldTransactionID, r.TransactionID, true)

	return m, nil
}

// ItemInformationRequest builds an Item Information (17) message.
type ItemInformationRequest struct {
	At               time.Time
	InstitutionID    string
	ItemID           string
	TerminalPassword string // AC, omitted when empty
}

// Build constructs the wire message.
func (r *ItemInformationRequest) Build() (*Message, error) {
	m := NewMessage(CodeItemInformation)
	m.AppendFixed(timestampAt(r.At), 18)
	m.AppendVariable(FieldInstitutionID, r.InstitutionID, false)
	m.AppendVariable(FieldItemID, r.ItemID, false)
	m.AppendVariable(FieldTerminalPassword, r.TerminalPassword, true)

	return m, nil
}

// ItemStatusUpdateRequest builds an Item Status Update (19) message.
type ItemStatusUpdateRequest struct {
	At               time.Time
	InstitutionID    string
	ItemID           string
	TerminalPassword string // AC, omitted when empty
	ItemProperties   string // CH, required by the protocol for this message
}

// Build constructs the wire message.
func (r *ItemStatusUpdateRequest) Build() (*Message, error) {
	m := NewMessage(CodeItemStatusUpdate)
	m.AppendFixed(timestampAt(r.At), 18)
	m.AppendVariable(FieldInstitutionID, r.InstitutionID, false)
	m.AppendVariable(FieldItemID, r.ItemID, false)
	m.AppendVariable(FieldTerminalPassword, r.TerminalPassword, true)
	m.AppendVariable(FieldItemProperties, r.ItemProperties, false)

	return m, nil
}

// PatronEnableRequest builds a Patron Enable (25) message.
type PatronEnableRequest struct {
	At               time.Time
	InstitutionID    string
	PatronID         string
	TerminalPassword string // AC, omitted when empty
	PatronPassword   string // AD, omitted when empty
}

// Build constructs the wire message.
func (r *PatronEnableRequest) Build() (*Message, error) {
	m := NewMessage(CodePatronEnable)
	m.AppendFixed(timestampAt(r.At), 18)
	m.AppendVariable(FieldInstitutionID, r.InstitutionID, false)
	m.AppendVariable(FieldPatronID, r.PatronID, false)
	m.AppendVariable(FieldTerminalPassword, r.TerminalPassword, true)
	m.AppendVariable(FieldPatronPassword, r.PatronPassword, true)

	return m, nil
}

// Hold modes for HoldRequest.
const (
	HoldModeAdd    = '+'
	HoldModeDelete = '-'
	HoldModeChange = '*'
)

// HoldRequest builds a Hold (15) message.
type HoldRequest struct {
	Mode             byte // one of HoldModeAdd, HoldModeDelete, HoldModeChange
	At               time.Time
	ExpirationDate   time.Time // BW, omitted when zero
	PickupLocation   string    // BS, omitted when empty
	HoldType         int       // BY, 1-9; 0 omits the field
	InstitutionID    string
	PatronID         string
	PatronPassword   string // AD, omitted when empty
	ItemID           string // AB, omitted when empty
	Title            string // AJ, omitted when empty
	TerminalPassword string // AC, omitted when empty
	FeeAcknowledged  bool   // BO, emitted only when true
}

// Build constructs the wire message.
func (r *HoldRequest) Build() (*Message, error) {
	switch r.Mode {
	case HoldModeAdd, HoldModeDelete, HoldModeChange:
	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidHoldMode, string(r.Mode))
	}

	if r.HoldType != 0 && (r.HoldType < 1 || r.HoldType > 9) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidHoldType, r.HoldType)
	}

	var expiration string
	if !r.ExpirationDate.IsZero() {
		expiration = FormatTimestamp(r.ExpirationDate)
	}

	var holdType string
	if r.HoldType != 0 {
		holdType = strconv.Itoa(r.HoldType)
	}

	m := NewMessage(CodeHold)
	m.AppendFixed(string(r.Mode), 1)
	m.AppendFixed(timestampAt(r.At), 18)
	m.AppendVariable(FieldExpirationDate, expiration, true)
	m.AppendVariable(FieldPickupLocation, r.PickupLocation, true)
	m.AppendVariable(FieldHoldType, holdType, true)
	m.AppendVariable(FieldInstitutionID, r.InstitutionID, false)
	m.AppendVariable(FieldPatronID, r.PatronID, false)
	m.AppendVariable(FieldPatronPassword, r.PatronPassword, true)
	m.AppendVariable(FieldItemID, r.ItemID, true)
	m.AppendVariable(FieldTitle, r.Title, true)
	m.AppendVariable(FieldTerminalPassword, r.TerminalPassword, true)
	if r.FeeAcknowledged {
		m.AppendVariable(FieldFeeAcknowledged, "Y", false)
	}

	return m, nil
}

// RenewRequest builds a Renew (29) message.
type RenewRequest struct {
	ThirdPartyAllowed bool
	NoBlock           bool
	At                time.Time
	NBDueDate         time.Time // defaults to At
	InstitutionID     string
	PatronID          string
	PatronPassword    string // AD, omitted when empty
	ItemID            string // AB, omitted when empty
	Title             string // AJ, omitted when empty
	TerminalPassword  string // AC, omitted when empty
	ItemProperties    string // CH, omitted when empty
	FeeAcknowledged   bool   // BO, emitted only when true
}

// Build constructs the wire message.
func (r *RenewRequest) Build() (*Message, error) {
	nbDue := r.NBDueDate
	if nbDue.IsZero() {
		nbDue = r.At
	}

	m := NewMessage(CodeRenew)
	m.AppendFixed(yn(r.ThirdPartyAllowed), 1)
	m.AppendFixed(yn(r.NoBlock), 1)
	m.AppendFixed(timestampAt(r.At), 18)
	m.AppendFixed(timestampAt(nbDue), 18)
	m.AppendVariable(FieldInstitutionID, r.InstitutionID, false)
	m.AppendVariable(FieldPatronID, r.PatronID, false)
	m.AppendVariable(FieldPatronPassword, r.PatronPassword, true)
	m.AppendVariable(FieldItemID, r.ItemID, true)
	m.AppendVariable(FieldTitle, r.Title, true)
	m.AppendVariable(FieldTerminalPassword, r.TerminalPassword, true)
	m.AppendVariable(FieldItemProperties, r.ItemProperties, true)
	if r.FeeAcknowledged {
		m.AppendVariable(FieldFeeAcknowledged, "Y", false)
	}

	return m, nil
}

// RenewAllRequest builds a Renew All (65) message.
type RenewAllRequest struct {
	At               time.Time
	InstitutionID    string
	PatronID         string
	PatronPassword   string // AD, omitted when empty
	TerminalPassword string // AC, omitted when empty
	FeeAcknowledged  bool   // BO, emitted only when true
}

// Build constructs the wire message.
func (r *RenewAllRequest) Build() (*Message, error) {
	m := NewMessage(CodeRenewAll)
	m.AppendFixed(timestampAt(r.At), 18)
	m.AppendVariable(FieldInstitutionID, r.InstitutionID, false)
	m.AppendVariable(FieldPatronID, r.PatronID, false)
	m.AppendVariable(FieldPatronPassword, r.PatronPassword, true)
	m.AppendVariable(FieldTerminalPassword, r.TerminalPassword, true)
	if r.FeeAcknowledged {
		m.AppendVariable(FieldFeeAcknowledged, "Y", false)
	}

	return m, nil
}

// PatronInformationRequest builds a Patron Information (63) message.
type PatronInformationRequest struct {
	Language int
	At       time.Time

	// Summary selects which detailed list the ACS should include, as an
	// index into the 10-character summary field (0 = hold items,
	// 1 = overdue items, ... 5 = unavailable holds). A negative value
	// requests no detail list.
	Summary int

	InstitutionID    string
	PatronID         string
	TerminalPassword string // AC, omitted when empty
	PatronPassword   string // AD, omitted when empty
	StartItem        string // BP, omitted when empty
	EndItem          string // BQ, omitted when empty
}

// Build constructs the wire message.
func (r *PatronInformationRequest) Build() (*Message, error) {
	if r.Language < 0 || r.Language > 999 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLanguage, r.Language)
	}
	if r.Summary > 9 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSummaryIndex, r.Summary)
	}

	summary := make([]byte, 10)
	for i := range summary {
		summary[i] = ' '
	}
	if r.Summary >= 0 {
		summary[r.Summary] = 'Y'
	}

	m := NewMessage(CodePatronInformation)
	m.AppendFixed(fmt.Sprintf("%03d", r.Language), 3)
	m.AppendFixed(timestampAt(r.At), 18)
	m.AppendFixed(string(summary), 10)
	m.AppendVariable(FieldInstitutionID, r.InstitutionID, false)
	m.AppendVariable(FieldPatronID, r.PatronID, false)
	m.AppendVariable(FieldTerminalPassword, r.TerminalPassword, true)
	m.AppendVariable(FieldPatronPassword, r.PatronPassword, true)
	m.AppendVariable(FieldStartItem, r.StartItem, true)
	m.AppendVariable(FieldEndItem, r.EndItem, true)

	return m, nil
}

// NewResendRequest builds a Request ACS Resend (97) message, which asks the
// remote side to retransmit its last response.
//
// Per the protocol, this message never carries the sequence or checksum
// trailer: it must be parseable even when the error-detection state of the
// two ends disagrees. Encode it with both trailer toggles off.
func NewResendRequest() *Message {
	return NewMessage(CodeRequestACSResend)
}
