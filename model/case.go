package model

import (
	"strings"
	"time"
)

// Input carries the immutable identity fields a workflow run starts from.
type Input struct {
	CustomerName string `json:"customer_name" yaml:"customer_name"`
	Email        string `json:"email" yaml:"email"`
	Query        string `json:"query" yaml:"query"`
	Priority     string `json:"priority" yaml:"priority"`
	TicketID     string `json:"ticket_id" yaml:"ticket_id"`
}

// CaseRecord is the single mutable aggregate of one workflow run. The engine
// owns it exclusively for the duration of the run; stages never write to it
// directly - they return a Patch which the engine merges via Apply.
type CaseRecord struct {
	RunID string `json:"run_id"`

	// Identity fields, immutable after creation.
	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	Query        string `json:"query"`
	Priority     string `json:"priority"`
	TicketID     string `json:"ticket_id"`

	// Stage tracking.
	CurrentStage    string   `json:"current_stage"`
	CompletedStages []string `json:"completed_stages"`

	// Processed data.
	ParsedRequest     map[string]interface{} `json:"parsed_request,omitempty"`
	ExtractedEntities map[string]interface{} `json:"extracted_entities,omitempty"`
	NormalizedData    map[string]interface{} `json:"normalized_data,omitempty"`
	EnrichedData      map[string]interface{} `json:"enriched_data,omitempty"`
	FlagsCalculations map[string]interface{} `json:"flags_calculations,omitempty"`

	// Human interaction.
	ClarificationNeeded   bool    `json:"clarification_needed"`
	ClarificationQuestion *string `json:"clarification_question,omitempty"`
	CustomerResponse      *string `json:"customer_response,omitempty"`

	// Knowledge retrieval.
	KBResults []map[string]interface{} `json:"kb_results,omitempty"`

	// Decision making.
	SolutionScore      *int    `json:"solution_score,omitempty"`
	EscalationRequired bool    `json:"escalation_required"`
	DecisionRationale  *string `json:"decision_rationale,omitempty"`
	EscalationPath     *bool   `json:"escalation_path,omitempty"`

	// Updates and actions.
	TicketUpdated     bool     `json:"ticket_updated"`
	TicketClosed      bool     `json:"ticket_closed"`
	GeneratedResponse *string  `json:"generated_response,omitempty"`
	APICallsExecuted  []string `json:"api_calls_executed"`
	NotificationsSent []string `json:"notifications_sent"`

	// Final output, derived once after the terminal stage.
	FinalPayload *FinalPayload `json:"final_payload,omitempty"`

	// Execution trace, append-only; observability only, never read by logic.
	ExecutionLog []string `json:"execution_log"`

	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewCaseRecord builds the initial record for a run with all derived fields
// unset, false or empty.
func NewCaseRecord(runID string, input Input, startedAt time.Time) *CaseRecord {
	return &CaseRecord{
		RunID:             runID,
		CustomerName:      input.CustomerName,
		Email:             input.Email,
		Query:             input.Query,
		Priority:          input.Priority,
		TicketID:          input.TicketID,
		CompletedStages:   []string{},
		APICallsExecuted:  []string{},
		NotificationsSent: []string{},
		ExecutionLog:      []string{},
		StartedAt:         startedAt,
	}
}

// Patch is the explicit whole-stage update a stage returns. Nil fields are
// untouched; pointer fields are set when non-nil; slice and map fields replace
// the current value when non-nil. Log entries are appended, never replaced.
type Patch struct {
	ParsedRequest     map[string]interface{}
	ExtractedEntities map[string]interface{}
	NormalizedData    map[string]interface{}
	EnrichedData      map[string]interface{}
	FlagsCalculations map[string]interface{}

	ClarificationNeeded   *bool
	ClarificationQuestion *string
	CustomerResponse      *string

	KBResults []map[string]interface{}

	SolutionScore      *int
	EscalationRequired *bool
	DecisionRationale  *string
	EscalationPath     *bool

	TicketUpdated     *bool
	TicketClosed      *bool
	GeneratedResponse *string
	APICallsExecuted  []string
	NotificationsSent []string

	// Log holds the ability-call trace entries collected while the stage ran.
	Log []string
}

// Apply merges a stage update into the record. It is the only mutation path:
// the stage name is appended to CompletedStages exactly once, the ability-call
// log entries land before the stage completion entry, and patch fields win on
// conflict. Message is the stage completion description.
func (r *CaseRecord) Apply(stage, message string, p *Patch) {
	r.CurrentStage = stage
	r.CompletedStages = append(r.CompletedStages, stage)
	if p != nil {
		r.merge(p)
		r.ExecutionLog = append(r.ExecutionLog, p.Log...)
	}
	r.ExecutionLog = append(r.ExecutionLog, "["+strings.ToUpper(stage)+"] "+message)
}

// AppendLog adds a trace entry outside a stage update (e.g. the router's
// decision entry). Engine use only.
func (r *CaseRecord) AppendLog(entry string) {
	r.ExecutionLog = append(r.ExecutionLog, entry)
}

func (r *CaseRecord) merge(p *Patch) {
	if p.ParsedRequest != nil {
		r.ParsedRequest = p.ParsedRequest
	}
	if p.ExtractedEntities != nil {
		r.ExtractedEntities = p.ExtractedEntities
	}
	if p.NormalizedData != nil {
		r.NormalizedData = p.NormalizedData
	}
	if p.EnrichedData != nil {
		r.EnrichedData = p.EnrichedData
	}
	if p.FlagsCalculations != nil {
		r.FlagsCalculations = p.FlagsCalculations
	}
	if p.ClarificationNeeded != nil {
		r.ClarificationNeeded = *p.ClarificationNeeded
	}
	if p.ClarificationQuestion != nil {
		r.ClarificationQuestion = p.ClarificationQuestion
	}
	if p.CustomerResponse != nil {
		r.CustomerResponse = p.CustomerResponse
	}
	if p.KBResults != nil {
		r.KBResults = p.KBResults
	}
	if p.SolutionScore != nil {
		r.SolutionScore = p.SolutionScore
	}
	if p.EscalationRequired != nil {
		r.EscalationRequired = *p.EscalationRequired
	}
	if p.DecisionRationale != nil {
		r.DecisionRationale = p.DecisionRationale
	}
	if p.EscalationPath != nil {
		r.EscalationPath = p.EscalationPath
	}
	if p.TicketUpdated != nil {
		r.TicketUpdated = *p.TicketUpdated
	}
	if p.TicketClosed != nil {
		r.TicketClosed = *p.TicketClosed
	}
	if p.GeneratedResponse != nil {
		r.GeneratedResponse = p.GeneratedResponse
	}
	if p.APICallsExecuted != nil {
		r.APICallsExecuted = p.APICallsExecuted
	}
	if p.NotificationsSent != nil {
		r.NotificationsSent = p.NotificationsSent
	}
}

// HasCompleted reports whether the named stage has returned control to the
// engine in this run.
func (r *CaseRecord) HasCompleted(stage string) bool {
	for _, name := range r.CompletedStages {
		if name == stage {
			return true
		}
	}
	return false
}
