package sip2

// Request message codes (SC → ACS).
const (
	CodeBlockPatron         = "01"
	CodeCheckin             = "09"
	CodeCheckout            = "11"
	CodeHold                = "15"
	CodeItemInformation     = "17"
	CodeItemStatusUpdate    = "19"
	CodePatronStatusRequest = "23"
	CodePatronEnable        = "25"
	CodeRenew               = "29"
	CodeEndPatronSession    = "35"
	CodeFeePaid             = "37"
	CodePatronInformation   = "63"
	CodeRenewAll            = "65"
	CodeLogin               = "93"
	CodeRequestACSResend    = "97"
	CodeSCStatus            = "99"
)

// Response message codes (ACS → SC).
const (
	CodeCheckinResponse           = "10"
	CodeCheckoutResponse          = "12"
	CodeHoldResponse              = "16"
	CodeItemInformationResponse   = "18"
	CodeItemStatusUpdateResponse  = "20"
	CodePatronStatusResponse      = "24"
	CodePatronEnableResponse      = "26"
	CodeRenewResponse             = "30"
	CodeEndSessionResponse        = "36"
	CodeFeePaidResponse           = "38"
	CodePatronInformationResponse = "64"
	CodeRenewAllResponse          = "66"
	CodeLoginResponse             = "94"
	CodeRequestSCResend           = "96"
	CodeACSStatus                 = "98"
)

// Variable field codes.
//
// A variable field on the wire is the 2-letter code immediately followed by
// its value and a field terminator. The same code may legitimately appear
// multiple times in one message (e.g. AS hold items in a patron information
// response); order of repetition is significant.
const (
	FieldPatronID          = "AA" // patron identifier (barcode)
	FieldItemID            = "AB" // item identifier (barcode)
	FieldTerminalPassword  = "AC"
	FieldPatronPassword    = "AD"
	FieldPersonalName      = "AE"
	FieldScreenMessage     = "AF"
	FieldPrintLine         = "AG"
	FieldDueDate           = "AH"
	FieldTitle             = "AJ"
	FieldBlockedCardMsg    = "AL"
	FieldLibraryName       = "AM"
	FieldTerminalLocation  = "AN"
	FieldInstitutionID     = "AO"
	FieldCurrentLocation   = "AP"
	FieldPermanentLocation = "AQ"
	FieldHoldItems         = "AS"
	FieldOverdueItems      = "AT"
	FieldChargedItems      = "AU"
	FieldFineItems         = "AV"
	FieldSequenceNumber    = "AY"
	FieldChecksum          = "AZ"
	FieldHomeAddress       = "BD"
	FieldEmailAddress      = "BE"
	FieldHomePhone         = "BF"
	FieldOwner             = "BG"
	FieldCurrencyType      = "BH"
	FieldCancel            = "BI"
	FieldTransactionID     = "BK"
	FieldValidPatron       = "BL"
	FieldRenewedItems      = "BM"
	FieldUnrenewedItems    = "BN"
	FieldFeeAcknowledged   = "BO"
	FieldStartItem         = "BP"
	FieldEndItem           = "BQ"
	FieldQueuePosition     = "BR"
	FieldPickupLocation    = "BS"
	FieldFeeType           = "BT"
	FieldRecallItems       = "BU"
	FieldFeeAmount         = "BV"
	FieldExpirationDate    = "BW"
	FieldSupportedMessages = "BX"
	FieldHoldType          = "BY"
	FieldHoldItemsLimit    = "BZ"
	FieldOverdueItemsLimit = "CA"
	FieldChargedItemsLimit = "CB"
	FieldFeeLimit          = "CC"
	FieldUnavailableHolds  = "CD"
	FieldFeeIdentifier     = "CG"
	FieldItemProperties    = "CH"
	FieldSecurityInhibit   = "CI"
	FieldRecallDate        = "CJ"
	FieldMediaType         = "CK"
	FieldSortBin           = "CL"
	FieldHoldPickupDate    = "CM"
	FieldLoginUserID       = "CN"
	FieldLoginPassword     = "CO"
	FieldLocationCode      = "CP"
	FieldValidPatronPwd    = "CQ"
)

// ProtocolVersion is the static protocol version rendered into SC status
// requests. This implementation speaks SIP 2.00 and performs no version
// negotiation beyond advertising it.
const ProtocolVersion = "2.00"
