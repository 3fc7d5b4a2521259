package parking

import (
	"restconnect-service/internal/domain/sign"
)

// CheckRequest is the body of a sign check: the photographed sign plus what
// the driver declared about their position and vehicle.
type CheckRequest struct {
	Image          string         `json:"image"`
	Direction      sign.Direction `json:"direction"`
	Commercial     bool           `json:"commercial"`
	DisabledPermit bool           `json:"disabled_permit"`
}

// EvaluateRequest re-runs the decision table over already-recognized items
// without contacting the recognizer.
type EvaluateRequest struct {
	Items          []sign.SignItem `json:"items"`
	Direction      sign.Direction  `json:"direction"`
	Commercial     bool            `json:"commercial"`
	DisabledPermit bool            `json:"disabled_permit"`
}

// CheckResult is returned for a completed check.
type CheckResult struct {
	CheckID   string       `json:"check_id"`
	SignCount int          `json:"sign_count"`
	Verdict   sign.Verdict `json:"verdict"`
}
