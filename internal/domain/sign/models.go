package sign

import (
	"encoding/json"
	"fmt"
)

// Category is the restriction class the recognizer assigned to one sign.
type Category string

const (
	CategoryParking   Category = "PARKING"
	CategoryLoading   Category = "LOADING"
	CategoryDisabled  Category = "DISABLED"
	CategoryNoParking Category = "NOPARKING"
	CategoryTow       Category = "TOW"
)

// Direction is the side of the sign post a restriction applies to. An empty
// value means the sign did not state a side.
type Direction string

const (
	DirectionLeft  Direction = "LEFT"
	DirectionRight Direction = "RIGHT"
	DirectionBoth  Direction = "BOTH"
	DirectionNone  Direction = ""
)

// Hours is the permitted duration as printed on the sign. The recognizer
// emits it as either a JSON number or a string depending on the sign.
type Hours string

func (h *Hours) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*h = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*h = Hours(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("hours must be a number or string: %w", err)
	}
	*h = Hours(n.String())
	return nil
}

// SignItem is one restriction or permission parsed out of a photographed
// parking sign by the recognizer. Items arrive in precedence order.
type SignItem struct {
	Category     Category  `json:"category"`
	Direction    Direction `json:"direction"`
	IsNow        bool      `json:"isnow"`
	Hours        Hours     `json:"hours"`
	ToTime       string    `json:"totime"`
	Metered      bool      `json:"metered"`
	FriendlyDesc string    `json:"friendlydesc"`
}

// UserContext carries what the driver declared before uploading the photo.
type UserContext struct {
	Direction      Direction `json:"direction"`
	Commercial     bool      `json:"commercial"`
	DisabledPermit bool      `json:"disabled_permit"`
}

// Verdict is the outcome of evaluating one sign's items for one user.
// AllSigns always describes every item, whatever the outcome.
type Verdict struct {
	CanPark  bool     `json:"can_park"`
	Heading  string   `json:"heading"`
	Messages []string `json:"messages"`
	Warnings []string `json:"warnings,omitempty"`
	AllSigns []string `json:"all_signs"`
}

type itemsPayload struct {
	Items []SignItem `json:"items"`
}

// ParseItems decodes the recognizer body into an ordered item list. A body
// without an items field, or with items null, means "no signs detected" and
// yields an empty list rather than an error. Item order is preserved, it is
// the precedence order for evaluation.
func ParseItems(body []byte) ([]SignItem, error) {
	var p itemsPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode sign items: %w", err)
	}
	if p.Items == nil {
		return []SignItem{}, nil
	}
	return p.Items, nil
}
