package pinentry

import "strconv"

// PromptReason explains why the PIN prompt is shown.
type PromptReason int

const (
	PromptReasonNone PromptReason = iota
	PromptReasonRestart
	PromptReasonTimeout
	PromptReasonDeviceAdmin
	PromptReasonUserRequest
)

// Selector names a display string. SelectorNone means nothing is shown.
type Selector string

const (
	SelectorNone        Selector = ""
	SelectorRestart     Selector = "prompt_reason_restart_pin"
	SelectorTimeout     Selector = "prompt_reason_timeout_pin"
	SelectorDeviceAdmin Selector = "prompt_reason_device_admin"
	SelectorUserRequest Selector = "prompt_reason_user_request"
)

// PromptReasonSelector maps a reason to its display selector. Unknown
// reasons fall back to the timeout selector.
func PromptReasonSelector(reason PromptReason) Selector {
	switch reason {
	case PromptReasonNone:
		return SelectorNone
	case PromptReasonRestart:
		return SelectorRestart
	case PromptReasonTimeout:
		return SelectorTimeout
	case PromptReasonDeviceAdmin:
		return SelectorDeviceAdmin
	case PromptReasonUserRequest:
		return SelectorUserRequest
	default:
		return SelectorTimeout
	}
}

// ParsePromptReason accepts the names used on the command line as well as
// raw numeric codes.
func ParsePromptReason(s string) PromptReason {
	switch s {
	case "", "none":
		return PromptReasonNone
	case "restart":
		return PromptReasonRestart
	case "timeout":
		return PromptReasonTimeout
	case "device-admin":
		return PromptReasonDeviceAdmin
	case "user-request":
		return PromptReasonUserRequest
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return PromptReasonTimeout
	}
	return PromptReason(n)
}
