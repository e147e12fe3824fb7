package client

import (
	"fmt"

	"github.com/libsip/go-sip2/logger"
	"github.com/libsip/go-sip2/sip2"
)

// Builder is anything that can produce one SIP2 request message. All the
// request types in the sip2 package satisfy it.
type Builder interface {
	Build() (*sip2.Message, error)
}

// responseCodeFor maps a request message code to the response code the ACS
// is required to answer with.
var responseCodeFor = map[string]string{
	sip2.CodeBlockPatron:         sip2.CodePatronStatusResponse,
	sip2.CodeCheckin:             sip2.CodeCheckinResponse,
	sip2.CodeCheckout:            sip2.CodeCheckoutResponse,
	sip2.CodeHold:                sip2.CodeHoldResponse,
	sip2.CodeItemInformation:     sip2.CodeItemInformationResponse,
	sip2.CodeItemStatusUpdate:    sip2.CodeItemStatusUpdateResponse,
	sip2.CodePatronStatusRequest: sip2.CodePatronStatusResponse,
	sip2.CodePatronEnable:        sip2.CodePatronEnableResponse,
	sip2.CodeRenew:               sip2.CodeRenewResponse,
	sip2.CodeEndPatronSession:    sip2.CodeEndSessionResponse,
	sip2.CodeFeePaid:             sip2.CodeFeePaidResponse,
	sip2.CodePatronInformation:   sip2.CodePatronInformationResponse,
	sip2.CodeRenewAll:            sip2.CodeRenewAllResponse,
	sip2.CodeLogin:               sip2.CodeLoginResponse,
	sip2.CodeSCStatus:            sip2.CodeACSStatus,
}

// Session is a convenience facade over one Connection, sequencing typed
// request/response pairs and filling institution, terminal password and
// location defaults from the connection's configuration.
//
// Session inherits the Connection's single-threaded model: one call at a
// time.
type Session struct {
	conn *Connection
	cfg  *Config
	log  logger.Logger
}

// NewSession creates a Session over an already constructed Connection.
func NewSession(conn *Connection) *Session {
	return &Session{
		conn: conn,
		cfg:  conn.Config(),
		log:  conn.Config().GetLogger(),
	}
}

// Connection returns the underlying Connection.
func (s *Session) Connection() *Connection { return s.conn }

// Do builds the request, performs the exchange, and decodes the response
// against the schema of the expected response type.
//
// When the ACS answers with a Request SC Resend (96), Do retransmits the
// byte-identical request; the number of resends is bounded by the
// connection's retry limit.
func (s *Session) Do(req Builder) (*sip2.ParsedResponse, error) {
	msg, err := req.Build()
	if err != nil {
		return nil, err
	}

	wire := s.conn.EncodeMessage(msg)

	frame, err := s.conn.ExchangeText(wire)
	if err != nil {
		return nil, err
	}

	// A 96 response is not an answer but a request to retransmit.
	for resends := 0; hasCode(frame, sip2.CodeRequestSCResend); resends++ {
		if resends >= s.cfg.retryLimit {
			return nil, fmt.Errorf("%w: ACS kept requesting resend", ErrRetriesExhausted)
		}

		s.log.Debug("sip2: ACS requested resend", "request", msg.Code())

		frame, err = s.conn.ExchangeText(wire)
		if err != nil {
			return nil, err
		}
	}

	resp, err := sip2.DecodeResponse(frame, s.conn.DecodeConfig())
	if err != nil {
		return nil, err
	}

	if expected, ok := responseCodeFor[msg.Code()]; ok && resp.Code != expected {
		return nil, fmt.Errorf("%w: request %s expects %s, got %s",
			ErrUnexpectedResponse, msg.Code(), expected, resp.Code)
	}

	return resp, nil
}

func hasCode(frame, code string) bool {
	return len(frame) >= 2 && frame[:2] == code
}

// --- Typed workflows ---

// Login authenticates the SC with the ACS. It reports whether the ACS
// accepted the credentials.
func (s *Session) Login(userID, password string) (bool, error) {
	resp, err := s.Do(&sip2.LoginRequest{
		UserID:   userID,
		Password: password,
		Location: s.cfg.location,
	})
	if err != nil {
		return false, err
	}

	return resp.OK(), nil
}

// SCStatus reports the SC's state and retrieves the ACS status response,
// including the supported-messages field and the ACS protocol version.
func (s *Session) SCStatus(statusCode, maxPrintWidth int) (*sip2.ParsedResponse, error) {
	return s.Do(&sip2.SCStatusRequest{
		StatusCode:    statusCode,
		MaxPrintWidth: maxPrintWidth,
	})
}

// PatronStatus fetches the 14-character patron status and fee summary for
// one patron.
func (s *Session) PatronStatus(patronID, patronPassword string) (*sip2.ParsedResponse, error) {
	return s.Do(&sip2.PatronStatusRequest{
		InstitutionID:    s.cfg.institutionID,
		PatronID:         patronID,
		TerminalPassword: s.cfg.terminalPassword,
		PatronPassword:   patronPassword,
	})
}

// PatronInformation fetches patron details plus the item list selected by
// summary (a negative summary requests counts only).
func (s *Session) PatronInformation(patronID, patronPassword string, summary int) (*sip2.ParsedResponse, error) {
	return s.Do(&sip2.PatronInformationRequest{
		Summary:          summary,
		InstitutionID:    s.cfg.institutionID,
		PatronID:         patronID,
		TerminalPassword: s.cfg.terminalPassword,
		PatronPassword:   patronPassword,
	})
}

// Checkout charges an item to a patron.
func (s *Session) Checkout(patronID, itemID, patronPassword string) (*sip2.ParsedResponse, error) {
	return s.Do(&sip2.CheckoutRequest{
		SCRenewalPolicy:  true,
		InstitutionID:    s.cfg.institutionID,
		PatronID:         patronID,
		ItemID:           itemID,
		TerminalPassword: s.cfg.terminalPassword,
		PatronPassword:   patronPassword,
	})
}

// Checkin discharges an item. currentLocation is the SC's location at
// checkin time; when empty the configured location is used.
func (s *Session) Checkin(itemID, currentLocation string) (*sip2.ParsedResponse, error) {
	if currentLocation == "" {
		currentLocation = s.cfg.location
	}

	return s.Do(&sip2.CheckinRequest{
		CurrentLocation:  currentLocation,
		InstitutionID:    s.cfg.institutionID,
		ItemID:           itemID,
		TerminalPassword: s.cfg.terminalPassword,
	})
}

// Renew renews one charged item.
func (s *Session) Renew(patronID, itemID, patronPassword string) (*sip2.ParsedResponse, error) {
	return s.Do(&sip2.RenewRequest{
		InstitutionID:    s.cfg.institutionID,
		PatronID:         patronID,
		PatronPassword:   patronPassword,
		ItemID:           itemID,
		TerminalPassword: s.cfg.terminalPassword,
	})
}

// RenewAll renews every item charged to the patron.
func (s *Session) RenewAll(patronID, patronPassword string) (*sip2.ParsedResponse, error) {
	return s.Do(&sip2.RenewAllRequest{
		InstitutionID:    s.cfg.institutionID,
		PatronID:         patronID,
		PatronPassword:   patronPassword,
		TerminalPassword: s.cfg.terminalPassword,
	})
}

// Hold places, deletes or changes a hold; mode is one of sip2.HoldModeAdd,
// sip2.HoldModeDelete, sip2.HoldModeChange.
func (s *Session) Hold(mode byte, patronID, itemID string) (*sip2.ParsedResponse, error) {
	return s.Do(&sip2.HoldRequest{
		Mode:             mode,
		InstitutionID:    s.cfg.institutionID,
		PatronID:         patronID,
		ItemID:           itemID,
		TerminalPassword: s.cfg.terminalPassword,
	})
}

// FeePaid reports a fee payment. amount is a decimal string in the given
// 3-letter currency.
func (s *Session) FeePaid(patronID string, feeType, paymentType int, currency, amount string) (*sip2.ParsedResponse, error) {
	return s.Do(&sip2.FeePaidRequest{
		FeeType:          feeType,
		PaymentType:      paymentType,
		CurrencyType:     currency,
		FeeAmount:        amount,
		InstitutionID:    s.cfg.institutionID,
		PatronID:         patronID,
		TerminalPassword: s.cfg.terminalPassword,
	})
}

// ItemInformation fetches details for one item.
func (s *Session) ItemInformation(itemID string) (*sip2.ParsedResponse, error) {
	return s.Do(&sip2.ItemInformationRequest{
		InstitutionID:    s.cfg.institutionID,
		ItemID:           itemID,
		TerminalPassword: s.cfg.terminalPassword,
	})
}

// ItemStatusUpdate sends new item properties to the ACS.
func (s *Session) ItemStatusUpdate(itemID, properties string) (*sip2.ParsedResponse, error) {
	return s.Do(&sip2.ItemStatusUpdateRequest{
		InstitutionID:    s.cfg.institutionID,
		ItemID:           itemID,
		TerminalPassword: s.cfg.terminalPassword,
		ItemProperties:   properties,
	})
}

// PatronEnable re-enables a patron blocked by a Block Patron message.
func (s *Session) PatronEnable(patronID string) (*sip2.ParsedResponse, error) {
	return s.Do(&sip2.PatronEnableRequest{
		InstitutionID:    s.cfg.institutionID,
		PatronID:         patronID,
		TerminalPassword: s.cfg.terminalPassword,
	})
}

// BlockPatron asks the ACS to block a patron's card, e.g. after the SC
// retained it.
func (s *Session) BlockPatron(patronID, blockedCardMsg string, cardRetained bool) (*sip2.ParsedResponse, error) {
	return s.Do(&sip2.BlockPatronRequest{
		CardRetained:     cardRetained,
		InstitutionID:    s.cfg.institutionID,
		BlockedCardMsg:   blockedCardMsg,
		PatronID:         patronID,
		TerminalPassword: s.cfg.terminalPassword,
	})
}

// EndPatronSession closes the patron session on the ACS side.
func (s *Session) EndPatronSession(patronID, patronPassword string) (*sip2.ParsedResponse, error) {
	return s.Do(&sip2.EndPatronSessionRequest{
		InstitutionID:    s.cfg.institutionID,
		PatronID:         patronID,
		TerminalPassword: s.cfg.terminalPassword,
		PatronPassword:   patronPassword,
	})
}
