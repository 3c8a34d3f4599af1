package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDeriveFinalPayload covers the status, escalation and path rules on
// records representative of each branch outcome.
func TestDeriveFinalPayload(t *testing.T) {
	score := 95
	lowScore := 40
	resolved := "Dear John Smith, inquiry resolved."
	escalated := true
	autoResolved := false

	testCases := []struct {
		name     string
		record   func() *CaseRecord
		expected FinalPayload
	}{
		{
			name: "auto-resolution closes the ticket",
			record: func() *CaseRecord {
				r := NewCaseRecord("run-1", testInput(), time.Now())
				r.CompletedStages = []string{"intake", "decide", "auto_resolve", "update_close", "complete"}
				r.SolutionScore = &score
				r.EscalationPath = &autoResolved
				r.TicketClosed = true
				r.GeneratedResponse = &resolved
				return r
			},
			expected: FinalPayload{
				TicketID:        "12345",
				CustomerName:    "John Smith",
				Status:          StatusClosed,
				Resolution:      resolved,
				Escalated:       false,
				SolutionScore:   &score,
				PathTaken:       PathAutoResolution,
				CompletedStages: []string{"intake", "decide", "auto_resolve", "update_close", "complete"},
			},
		},
		{
			name: "escalation hands off without closing",
			record: func() *CaseRecord {
				r := NewCaseRecord("run-2", testInput(), time.Now())
				r.CompletedStages = []string{"intake", "decide", "escalate", "create_response", "complete"}
				r.SolutionScore = &lowScore
				r.EscalationRequired = true
				r.EscalationPath = &escalated
				r.GeneratedResponse = &resolved
				return r
			},
			expected: FinalPayload{
				TicketID:        "12345",
				CustomerName:    "John Smith",
				Status:          StatusEscalated,
				Resolution:      resolved,
				Escalated:       true,
				SolutionScore:   &lowScore,
				PathTaken:       PathEscalation,
				CompletedStages: []string{"intake", "decide", "escalate", "create_response", "complete"},
			},
		},
		{
			name: "no branch taken falls back to the decision flag",
			record: func() *CaseRecord {
				r := NewCaseRecord("run-3", testInput(), time.Now())
				r.EscalationRequired = true
				return r
			},
			expected: FinalPayload{
				TicketID:        "12345",
				CustomerName:    "John Smith",
				Status:          StatusEscalated,
				Escalated:       true,
				PathTaken:       PathAutoResolution,
				CompletedStages: []string{},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DeriveFinalPayload(tc.record()))
		})
	}
}

// TestDeriveFinalPayload_Pure verifies deriving twice from an unmodified
// record yields identical payloads.
func TestDeriveFinalPayload_Pure(t *testing.T) {
	record := NewCaseRecord("run-1", testInput(), time.Now())
	record.CompletedStages = []string{"intake", "complete"}
	record.TicketClosed = true

	first := DeriveFinalPayload(record)
	second := DeriveFinalPayload(record)
	assert.Equal(t, first, second)
}

func TestDeriveFinalPayload_CopiesStages(t *testing.T) {
	record := NewCaseRecord("run-1", testInput(), time.Now())
	record.CompletedStages = []string{"intake"}

	payload := DeriveFinalPayload(record)
	record.CompletedStages[0] = "mutated"
	assert.Equal(t, []string{"intake"}, payload.CompletedStages)
}

func TestFinalize_Once(t *testing.T) {
	record := NewCaseRecord("run-1", testInput(), time.Now())
	record.TicketClosed = true
	record.Finalize()
	require.NotNil(t, record.FinalPayload)
	first := record.FinalPayload

	// A second call must not replace or recompute the payload.
	record.TicketClosed = false
	record.Finalize()
	assert.Same(t, first, record.FinalPayload)
	assert.Equal(t, StatusClosed, record.FinalPayload.Status)
}
