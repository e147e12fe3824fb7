package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libsip/go-sip2/sip2"
)

func newTestSession(t *testing.T, ft *fakeTransport, opts ...Option) *Session {
	t.Helper()

	opts = append([]Option{
		WithInstitutionID("UWOLS"),
		WithTerminalPassword("tpass"),
		WithLocation("circ_desk"),
	}, opts...)

	return NewSession(newTestConn(t, ft, opts...))
}

func TestSession_Login(t *testing.T) {
	ft := &fakeTransport{responses: []string{validFrame("941AY0AZ")}}
	s := newTestSession(t, ft)

	ok, err := s.Login("scuser", "scpass")
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, ft.writes, 1)
	assert.Contains(t, ft.writes[0], "CNscuser|")
	assert.Contains(t, ft.writes[0], "COscpass|")
	assert.Contains(t, ft.writes[0], "CPcirc_desk|")
}

func TestSession_Login_Rejected(t *testing.T) {
	ft := &fakeTransport{responses: []string{validFrame("940AY0AZ")}}
	s := newTestSession(t, ft)

	ok, err := s.Login("scuser", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSession_Do_ResendRequested(t *testing.T) {
	valid := validFrame("941AY0AZ")
	resend := validFrame("96AZ")

	ft := &fakeTransport{responses: []string{resend, valid}}
	s := newTestSession(t, ft)

	ok, err := s.Login("scuser", "scpass")
	require.NoError(t, err)
	assert.True(t, ok)

	// The retransmission must be byte-identical, sequence digit included.
	require.Len(t, ft.writes, 2)
	assert.Equal(t, ft.writes[0], ft.writes[1])
}

func TestSession_Do_ResendLoopBounded(t *testing.T) {
	resend := validFrame("96AZ")

	ft := &fakeTransport{responses: []string{resend, resend, resend, resend, resend}}
	s := newTestSession(t, ft, WithRetryLimit(3))

	_, err := s.Login("scuser", "scpass")
	require.ErrorIs(t, err, ErrRetriesExhausted)
	assert.Len(t, ft.writes, 4, "original send plus retryLimit resends")
}

func TestSession_Do_UnexpectedResponse(t *testing.T) {
	// A checkin response to a login request is a protocol violation.
	ft := &fakeTransport{responses: []string{validFrame("101YNN20260830    101500AY0AZ")}}
	s := newTestSession(t, ft)

	_, err := s.Login("scuser", "scpass")
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestSession_SCStatus(t *testing.T) {
	body := "98YYYYNN10000320260830    1015002.00AOUWOLS|BXYYYYYYYYYYYYYYYY|AY0AZ"
	ft := &fakeTransport{responses: []string{validFrame(body)}}
	s := newTestSession(t, ft)

	resp, err := s.SCStatus(0, 80)
	require.NoError(t, err)

	assert.Equal(t, sip2.CodeACSStatus, resp.Code)
	assert.Equal(t, "Y", resp.FixedField("OnlineStatus"))
	assert.Equal(t, "2.00", resp.FixedField("ProtocolVersion"))
	assert.Equal(t, "UWOLS", resp.Field(sip2.FieldInstitutionID))

	assert.Contains(t, ft.writes[0], "9900802.00")
}

func TestSession_Checkout(t *testing.T) {
	body := "121NNY20260830    101500AOUWOLS|AApatron007|ABitem42|AJWar and Peace|AH20260913    235959|AY0AZ"
	ft := &fakeTransport{responses: []string{validFrame(body)}}
	s := newTestSession(t, ft)

	resp, err := s.Checkout("patron007", "item42", "ppass")
	require.NoError(t, err)

	assert.True(t, resp.OK())
	assert.Equal(t, "item42", resp.Field(sip2.FieldItemID))
	assert.Equal(t, "War and Peace", resp.Field(sip2.FieldTitle))

	// Request carries the session defaults and both identifiers.
	assert.Contains(t, ft.writes[0], "AOUWOLS|")
	assert.Contains(t, ft.writes[0], "AApatron007|")
	assert.Contains(t, ft.writes[0], "ABitem42|")
	assert.Contains(t, ft.writes[0], "ACtpass|")
	assert.Contains(t, ft.writes[0], "ADppass|")
}

func TestSession_Checkin_DefaultLocation(t *testing.T) {
	body := "101YNN20260830    101500AOUWOLS|ABitem42|AY0AZ"
	ft := &fakeTransport{responses: []string{validFrame(body)}}
	s := newTestSession(t, ft)

	resp, err := s.Checkin("item42", "")
	require.NoError(t, err)

	assert.True(t, resp.OK())
	assert.Contains(t, ft.writes[0], "APcirc_desk|",
		"empty current location falls back to the configured one")
}

func TestSession_PatronInformation(t *testing.T) {
	body := "64              00120260830    101500000200000000010000000000AOUWOLS|AApatron007|AEJane Reader|AY0AZ"
	ft := &fakeTransport{responses: []string{validFrame(body)}}
	s := newTestSession(t, ft)

	resp, err := s.PatronInformation("patron007", "ppass", 2)
	require.NoError(t, err)

	assert.Equal(t, "0002", resp.FixedField("HoldItemsCount"))
	assert.Equal(t, "Jane Reader", resp.Field(sip2.FieldPersonalName))
}

func TestSession_Hold(t *testing.T) {
	body := "161N20260830    101500AY0AZ"
	ft := &fakeTransport{responses: []string{validFrame(body)}}
	s := newTestSession(t, ft)

	resp, err := s.Hold(sip2.HoldModeAdd, "patron007", "item42")
	require.NoError(t, err)

	assert.True(t, resp.OK())
	assert.Equal(t, "15+", ft.writes[0][:3])
}

func TestSession_FeePaid(t *testing.T) {
	body := "38Y20260830    101500AOUWOLS|AApatron007|AY0AZ"
	ft := &fakeTransport{responses: []string{validFrame(body)}}
	s := newTestSession(t, ft)

	resp, err := s.FeePaid("patron007", 1, 0, "USD", "2.50")
	require.NoError(t, err)

	assert.Equal(t, "Y", resp.FixedField("PaymentAccepted"))
	assert.Contains(t, ft.writes[0], "BV2.50|")
	assert.Equal(t, "37", ft.writes[0][:2])
}

func TestSession_EndPatronSession(t *testing.T) {
	body := "36Y20260830    101500AOUWOLS|AApatron007|AY0AZ"
	ft := &fakeTransport{responses: []string{validFrame(body)}}
	s := newTestSession(t, ft)

	resp, err := s.EndPatronSession("patron007", "ppass")
	require.NoError(t, err)
	assert.Equal(t, "Y", resp.FixedField("EndSession"))
}

func TestSession_Do_BuildErrorShortCircuits(t *testing.T) {
	ft := &fakeTransport{}
	s := newTestSession(t, ft)

	_, err := s.Do(&sip2.SCStatusRequest{StatusCode: 7, MaxPrintWidth: 80})
	require.ErrorIs(t, err, sip2.ErrInvalidStatusCode)
	assert.Empty(t, ft.writes, "nothing is sent when the request fails to build")
}
