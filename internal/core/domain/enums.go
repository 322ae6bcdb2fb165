package domain

import (
	"bytes"
	"strconv"
)

// Status is the shared account/campaign status enum. The upstream API
// encodes it as a small integer; a few report endpoints return the enum
// name as a string instead, so UnmarshalJSON accepts both forms.
type Status int32

const (
	StatusUnspecified Status = iota
	StatusUnknown
	StatusEnabled
	StatusPaused
	StatusRemoved
)

var statusNames = map[Status]string{
	StatusUnspecified: "UNSPECIFIED",
	StatusUnknown:     "UNKNOWN",
	StatusEnabled:     "ENABLED",
	StatusPaused:      "PAUSED",
	StatusRemoved:     "REMOVED",
}

var statusCodes = invert(statusNames)

// String returns the enum label. Codes outside the known range map to
// "UNKNOWN" rather than failing.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseStatus resolves an enum label back to its code. The second return
// value reports whether the label is known.
func ParseStatus(name string) (Status, bool) {
	s, ok := statusCodes[name]
	return s, ok
}

func (s *Status) UnmarshalJSON(data []byte) error {
	code, err := decodeEnum(data, statusCodes)
	if err != nil {
		return err
	}
	*s = Status(code)
	return nil
}

func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(s.String())), nil
}

// BiddingStrategyType enumerates the upstream bidding strategies.
type BiddingStrategyType int32

const (
	BiddingUnspecified BiddingStrategyType = iota
	BiddingUnknown
	BiddingCommission
	BiddingEnhancedCPC
	BiddingManualCPC
	BiddingManualCPM
	BiddingManualCPV
	BiddingMaximizeConversions
	BiddingMaximizeConversionValue
	BiddingPageOnePromoted
	BiddingPercentCPC
	BiddingTargetCPA
	BiddingTargetCPM
	BiddingTargetImpressionShare
	BiddingTargetOutrankShare
	BiddingTargetROAS
	BiddingTargetSpend
)

var biddingStrategyNames = map[BiddingStrategyType]string{
	BiddingUnspecified:             "UNSPECIFIED",
	BiddingUnknown:                 "UNKNOWN",
	BiddingCommission:              "COMMISSION",
	BiddingEnhancedCPC:             "ENHANCED_CPC",
	BiddingManualCPC:               "MANUAL_CPC",
	BiddingManualCPM:               "MANUAL_CPM",
	BiddingManualCPV:               "MANUAL_CPV",
	BiddingMaximizeConversions:     "MAXIMIZE_CONVERSIONS",
	BiddingMaximizeConversionValue: "MAXIMIZE_CONVERSION_VALUE",
	BiddingPageOnePromoted:         "PAGE_ONE_PROMOTED",
	BiddingPercentCPC:              "PERCENT_CPC",
	BiddingTargetCPA:               "TARGET_CPA",
	BiddingTargetCPM:               "TARGET_CPM",
	BiddingTargetImpressionShare:   "TARGET_IMPRESSION_SHARE",
	BiddingTargetOutrankShare:      "TARGET_OUTRANK_SHARE",
	BiddingTargetROAS:              "TARGET_ROAS",
	BiddingTargetSpend:             "TARGET_SPEND",
}

var biddingStrategyCodes = invert(biddingStrategyNames)

func (b BiddingStrategyType) String() string {
	if name, ok := biddingStrategyNames[b]; ok {
		return name
	}
	return "UNKNOWN"
}

func (b *BiddingStrategyType) UnmarshalJSON(data []byte) error {
	code, err := decodeEnum(data, biddingStrategyCodes)
	if err != nil {
		return err
	}
	*b = BiddingStrategyType(code)
	return nil
}

func (b BiddingStrategyType) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(b.String())), nil
}

func invert[E ~int32](names map[E]string) map[string]E {
	codes := make(map[string]E, len(names))
	for code, name := range names {
		codes[name] = code
	}
	return codes
}

// decodeEnum accepts a JSON number, a quoted numeric string or a quoted
// enum name. Unrecognised names decode to the UNKNOWN code (1) instead of
// erroring, matching the tolerant handling the report surface needs.
func decodeEnum[E ~int32](data []byte, codes map[string]E) (int32, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return 0, nil
	}
	if len(data) >= 2 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return 0, err
		}
		if code, ok := codes[s]; ok {
			return int32(code), nil
		}
		if n, err := strconv.ParseInt(s, 10, 32); err == nil {
			return int32(n), nil
		}
		return 1, nil
	}
	n, err := strconv.ParseInt(string(data), 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(n), nil
}
