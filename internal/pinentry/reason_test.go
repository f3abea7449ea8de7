package pinentry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptReasonSelector(t *testing.T) {
	tests := []struct {
		reason PromptReason
		want   Selector
	}{
		{PromptReasonNone, SelectorNone},
		{PromptReasonRestart, SelectorRestart},
		{PromptReasonTimeout, SelectorTimeout},
		{PromptReasonDeviceAdmin, SelectorDeviceAdmin},
		{PromptReasonUserRequest, SelectorUserRequest},
		{PromptReason(42), SelectorTimeout},
		{PromptReason(-1), SelectorTimeout},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, PromptReasonSelector(tc.reason), "reason %d", tc.reason)
		// pure: same answer every time
		assert.Equal(t, PromptReasonSelector(tc.reason), PromptReasonSelector(tc.reason))
	}
}

func TestParsePromptReason(t *testing.T) {
	tests := []struct {
		in   string
		want PromptReason
	}{
		{"", PromptReasonNone},
		{"none", PromptReasonNone},
		{"restart", PromptReasonRestart},
		{"timeout", PromptReasonTimeout},
		{"device-admin", PromptReasonDeviceAdmin},
		{"user-request", PromptReasonUserRequest},
		{"3", PromptReasonDeviceAdmin},
		{"42", PromptReason(42)},
		{"bogus", PromptReasonTimeout},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, ParsePromptReason(tc.in), "input %q", tc.in)
	}
}
