package sip2

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaFor_Builtins(t *testing.T) {
	codes := []string{
		CodeCheckinResponse, CodeCheckoutResponse, CodeHoldResponse,
		CodeItemInformationResponse, CodeItemStatusUpdateResponse,
		CodePatronStatusResponse, CodePatronEnableResponse, CodeRenewResponse,
		CodeEndSessionResponse, CodeFeePaidResponse,
		CodePatronInformationResponse, CodeRenewAllResponse,
		CodeLoginResponse, CodeRequestSCResend, CodeACSStatus,
	}

	for _, code := range codes {
		s, ok := SchemaFor(code)
		require.True(t, ok, "missing schema for %s", code)
		assert.Equal(t, code, s.Code)
	}
}

func TestRegisterSchema_Custom(t *testing.T) {
	custom := &Schema{
		Code:          "XZ",
		Fixed:         []FieldSpec{{"Flag", 2, 1}},
		VariableStart: 3,
	}
	RegisterSchema(custom)

	got, ok := SchemaFor("XZ")
	require.True(t, ok)
	assert.Equal(t, custom, got)
}

func TestSchema_Decode_FixedPrefixSlices(t *testing.T) {
	// Every fixed field must come back as the exact source slice at its
	// declared offset and length.
	stamp := "20260830    101500"
	raw := "24" + strings.Repeat(" ", 14) + "001" + stamp

	schema, ok := SchemaFor(CodePatronStatusResponse)
	require.True(t, ok)

	resp, err := schema.Decode(raw, nil)
	require.NoError(t, err)

	assert.Equal(t, raw[2:16], resp.Fixed["PatronStatus"])
	assert.Equal(t, raw[16:19], resp.Fixed["Language"])
	assert.Equal(t, raw[19:37], resp.Fixed["TransactionDate"])
	assert.Equal(t, "001", resp.FixedField("Language"))
}

func TestSchema_Decode_CheckoutResponse(t *testing.T) {
	stamp := "20260830    101500"
	raw := "121NUY" + stamp + "AOUWOLS|AApatron1|ABitem42|AJThe Poky Little Puppy|AH20260920    235900|\r"

	schema, ok := SchemaFor(CodeCheckoutResponse)
	require.True(t, ok)

	resp, err := schema.Decode(raw, nil)
	require.NoError(t, err)

	assert.Equal(t, "1", resp.Fixed["Ok"])
	assert.True(t, resp.OK())
	assert.Equal(t, "N", resp.Fixed["RenewalOk"])
	assert.Equal(t, "U", resp.Fixed["Magnetic"])
	assert.Equal(t, "Y", resp.Fixed["Desensitize"])
	assert.Equal(t, stamp, resp.Fixed["TransactionDate"])

	assert.Equal(t, "UWOLS", resp.Field(FieldInstitutionID))
	assert.Equal(t, "patron1", resp.Field(FieldPatronID))
	assert.Equal(t, "item42", resp.Field(FieldItemID))
	assert.Equal(t, "The Poky Little Puppy", resp.Field(FieldTitle))
	assert.Equal(t, "20260920    235900", resp.Field(FieldDueDate))
}

func TestSchema_Decode_ChecksumMode(t *testing.T) {
	raw := "941AY2AZ" // login response, Ok=1, trailer follows
	raw += Checksum(raw)
	raw += "\r"

	schema, ok := SchemaFor(CodeLoginResponse)
	require.True(t, ok)

	cfg := NewDecodeConfig()
	cfg.WithChecksum = true

	resp, err := schema.Decode(raw, cfg)
	require.NoError(t, err)

	assert.Equal(t, "1", resp.Fixed["Ok"])
	require.Len(t, resp.Checksum, 4)
	assert.Equal(t, Checksum("941AY2AZ"), resp.Checksum)

	// The checksum token stays out of the variable map; the sequence token
	// decodes as an ordinary variable field.
	assert.NotContains(t, resp.Variable, FieldChecksum)
	assert.Equal(t, "2", resp.Field(FieldSequenceNumber))
}

func TestSchema_Decode_RepeatedCodesPreserveOrder(t *testing.T) {
	stamp := "20260830    101500"
	counts := "00030001000200000000000A"
	raw := "64" + strings.Repeat(" ", 14) + "000" + stamp + counts[:24] +
		"AOUWOLS|AApatron1|ASitem1|ASitem2|ASitem3|"

	schema, ok := SchemaFor(CodePatronInformationResponse)
	require.True(t, ok)

	resp, err := schema.Decode(raw, nil)
	require.NoError(t, err)

	assert.Equal(t, "0003", resp.Fixed["HoldItemsCount"])
	assert.Equal(t, []string{"item1", "item2", "item3"}, resp.Fields(FieldHoldItems))
}

func TestSchema_Decode_ControlCharacterStripping(t *testing.T) {
	raw := "941AE\x00\x1fJane Doe\x1f|AF  notice  |"

	schema, ok := SchemaFor(CodeLoginResponse)
	require.True(t, ok)

	resp, err := schema.Decode(raw, nil)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", resp.Field(FieldPersonalName), "leading/trailing control characters stripped")
	assert.Equal(t, "  notice  ", resp.Field(FieldScreenMessage), "interior whitespace preserved")

	// Raw keeps the untouched tokens.
	assert.Equal(t, []string{"AE\x00\x1fJane Doe\x1f", "AF  notice  "}, resp.Raw)
}

func TestSchema_Decode_BlankPayloadDroppedButRawKept(t *testing.T) {
	raw := "941AC|AD \x1f |AApatron1|"

	schema, ok := SchemaFor(CodeLoginResponse)
	require.True(t, ok)

	resp, err := schema.Decode(raw, nil)
	require.NoError(t, err)

	assert.NotContains(t, resp.Variable, FieldTerminalPassword, "empty payload dropped from cleaned map")
	assert.NotContains(t, resp.Variable, FieldPatronPassword, "blank payload dropped from cleaned map")
	assert.Equal(t, "patron1", resp.Field(FieldPatronID))

	assert.Equal(t, []string{"AC", "AD \x1f ", "AApatron1"}, resp.Raw)
}

func TestSchema_Decode_CustomFieldTerminator(t *testing.T) {
	raw := "941AApatron1^AF  hello^"

	schema, ok := SchemaFor(CodeLoginResponse)
	require.True(t, ok)

	cfg := NewDecodeConfig()
	cfg.FieldTerminator = '^'

	resp, err := schema.Decode(raw, cfg)
	require.NoError(t, err)

	assert.Equal(t, "patron1", resp.Field(FieldPatronID))
}

func TestSchema_Decode_Errors(t *testing.T) {
	schema, ok := SchemaFor(CodePatronStatusResponse)
	require.True(t, ok)

	_, err := schema.Decode("940", nil)
	assert.ErrorIs(t, err, ErrResponseCodeMismatch)

	_, err = schema.Decode("24 too short", nil)
	assert.ErrorIs(t, err, ErrResponseTooShort)
}

func TestDecodeResponse(t *testing.T) {
	raw := "941AY1AZ"
	raw += Checksum(raw)

	cfg := NewDecodeConfig()
	cfg.WithChecksum = true

	resp, err := DecodeResponse(raw+"\r", cfg)
	require.NoError(t, err)
	assert.Equal(t, CodeLoginResponse, resp.Code)
	assert.True(t, resp.OK())
}

func TestDecodeResponse_UnknownCode(t *testing.T) {
	_, err := DecodeResponse("ZZ nothing here", nil)
	assert.ErrorIs(t, err, ErrUnknownSchema)

	_, err = DecodeResponse("", nil)
	assert.ErrorIs(t, err, ErrUnknownSchema)
}

func TestDecodeResponse_ACSStatus(t *testing.T) {
	stamp := "20260830    101500"
	raw := "98YYYYNN005003" + stamp + "2.00AOUWOLS|AMCentral Library|BX" +
		"YYYYYYYYYYYYYYYY|"

	resp, err := DecodeResponse(raw, nil)
	require.NoError(t, err)

	assert.Equal(t, "Y", resp.Fixed["OnlineStatus"])
	assert.Equal(t, "N", resp.Fixed["OfflineOk"])
	assert.Equal(t, "005", resp.Fixed["TimeoutPeriod"])
	assert.Equal(t, "003", resp.Fixed["RetriesAllowed"])
	assert.Equal(t, "2.00", resp.Fixed["ProtocolVersion"])
	assert.Equal(t, "Central Library", resp.Field(FieldLibraryName))
}
