package domain

// CommandOp names a surface primitive the host must apply.
type CommandOp string

const (
	OpScroll         CommandOp = "scroll"
	OpExpand         CommandOp = "expand"
	OpCollapse       CommandOp = "collapse"
	OpShowTooltip    CommandOp = "show_tooltip"
	OpDisposeTooltip CommandOp = "dispose_tooltip"
)

// Command is a surface operation recorded for a remote host (e.g. a browser).
// Commands must be applied in order; an expand completes before the tooltip that follows it.
type Command struct {
	Op         CommandOp `json:"op"`
	Target     Target    `json:"target"`
	Message    string    `json:"message,omitempty"`
	DurationMS int64     `json:"duration_ms,omitempty"`
}
