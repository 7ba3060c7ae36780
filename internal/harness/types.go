package harness

import "github.com/Epixu/literal-t/literal"

// TraceEvent records the outcome of one scenario step.
type TraceEvent struct {
	Step     int    `json:"step"`
	Op       string `json:"op"`
	Target   string `json:"target"`
	Other    string `json:"other,omitempty"`
	Result   any    `json:"result,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
	Error    string `json:"error,omitempty"`
}

// LiteralSummary describes a literal bound to a scenario name.
type LiteralSummary struct {
	Name     string `json:"name,omitempty"`
	Kind     string `json:"kind"`
	Type     string `json:"type"`
	Capacity int    `json:"capacity"`
	Size     int    `json:"size"`
	Text     string `json:"text"`
}

// Summarize describes l under the given name.
func Summarize(name string, l literal.Literal) LiteralSummary {
	return LiteralSummary{
		Name:     name,
		Kind:     l.Kind().String(),
		Type:     l.TypeName(),
		Capacity: l.Cap(),
		Size:     l.Len(),
		Text:     l.String(),
	}
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every step expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace contains one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Literals summarizes every bound literal after the last step, in
	// binding order.
	Literals []LiteralSummary `json:"literals"`

	// Errors contains expectation and assertion failures.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:     true,
		Trace:    []TraceEvent{},
		Literals: []LiteralSummary{},
		Errors:   []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a step event.
func (r *Result) AddTrace(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
}
