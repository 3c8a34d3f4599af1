package model

const (
	// StatusClosed is reported when the auto-resolution path closed the ticket.
	StatusClosed = "closed"
	// StatusEscalated is reported when the ticket was handed to a human agent.
	StatusEscalated = "escalated"

	// PathEscalation and PathAutoResolution name the two branch outcomes.
	PathEscalation     = "escalation"
	PathAutoResolution = "auto_resolution"
)

// FinalPayload is the caller-facing summary derived once from the completed
// case record.
type FinalPayload struct {
	TicketID        string   `json:"ticket_id"`
	CustomerName    string   `json:"customer_name"`
	Status          string   `json:"status"`
	Resolution      string   `json:"resolution"`
	Escalated       bool     `json:"escalated"`
	SolutionScore   *int     `json:"solution_score"`
	PathTaken       string   `json:"path_taken"`
	CompletedStages []string `json:"completed_stages"`
}

// DeriveFinalPayload computes the terminal summary from the record. It is a
// pure function: deriving it again from an unmodified record yields an
// identical payload.
func DeriveFinalPayload(r *CaseRecord) FinalPayload {
	status := StatusEscalated
	if r.TicketClosed {
		status = StatusClosed
	}
	path := PathAutoResolution
	escalated := r.EscalationRequired
	if r.EscalationPath != nil {
		escalated = *r.EscalationPath
		if *r.EscalationPath {
			path = PathEscalation
		}
	}
	resolution := ""
	if r.GeneratedResponse != nil {
		resolution = *r.GeneratedResponse
	}
	stages := make([]string, len(r.CompletedStages))
	copy(stages, r.CompletedStages)
	return FinalPayload{
		TicketID:        r.TicketID,
		CustomerName:    r.CustomerName,
		Status:          status,
		Resolution:      resolution,
		Escalated:       escalated,
		SolutionScore:   r.SolutionScore,
		PathTaken:       path,
		CompletedStages: stages,
	}
}

// Finalize derives and stores the final payload. The payload is produced
// exactly once per run; subsequent calls are no-ops.
func (r *CaseRecord) Finalize() {
	if r.FinalPayload != nil {
		return
	}
	payload := DeriveFinalPayload(r)
	r.FinalPayload = &payload
}
