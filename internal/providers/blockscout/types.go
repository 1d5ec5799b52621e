package blockscout

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
)

// LogsPage is one page of GET /addresses/{address}/logs
type LogsPage struct {
	Items          []LogItem             `json:"items"`
	NextPageParams map[string]ParamValue `json:"next_page_params"`
}

// LogItem is a log entry as returned by the Blockscout v2 API
type LogItem struct {
	BlockNumber     uint64       `json:"block_number"`
	TransactionHash string       `json:"transaction_hash"`
	Index           uint64       `json:"index"`
	Decoded         *DecodedCall `json:"decoded"`
}

// DecodedCall is the ABI decoding Blockscout attaches to a log of a verified contract
type DecodedCall struct {
	MethodCall string             `json:"method_call"`
	MethodID   string             `json:"method_id"`
	Parameters []DecodedParameter `json:"parameters"`
}

// DecodedParameter is a named event argument
type DecodedParameter struct {
	Name    string     `json:"name"`
	Type    string     `json:"type"`
	Indexed bool       `json:"indexed"`
	Value   ParamValue `json:"value"`
}

// EventName returns the text of method_call before the argument list
func (d *DecodedCall) EventName() string {
	if d == nil {
		return ""
	}
	name, _, _ := strings.Cut(d.MethodCall, "(")
	return strings.TrimSpace(name)
}

// ParamValue is a JSON scalar kept as text.
// Strings are unquoted, numbers keep their literal digits and null is not Valid.
type ParamValue struct {
	Text  string
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler
func (v *ParamValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = ParamValue{}
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = ParamValue{Text: s, Valid: true}
		return nil
	}

	*v = ParamValue{Text: string(trimmed), Valid: true}
	return nil
}

// encodeCursor turns next_page_params into query parameters.
// An empty result means there is no next page.
func encodeCursor(params map[string]ParamValue) string {
	if len(params) == 0 {
		return ""
	}

	values := url.Values{}
	for k, v := range params {
		if !v.Valid {
			continue
		}
		values.Set(k, v.Text)
	}
	// Encode sorts by key
	return values.Encode()
}
