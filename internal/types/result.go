package types

// Mode identifies which optimization path produced the result.
type Mode string

// Pipeline modes
const (
	ModeStandard Mode = "standard"
	ModePivot    Mode = "pivot"
	ModeCreative Mode = "creative"
)

// PipelineResult is the final aggregate returned to the caller. Exactly one
// of Optimization or Creative is set on success, tagged by Mode. PDFURL is
// empty when no renderer is configured or rendering failed.
type PipelineResult struct {
	Success       bool                  `json:"success"`
	Content       string                `json:"content"`
	PDFURL        string                `json:"pdf_url,omitempty"`
	Compatibility *CompatibilityVerdict `json:"compatibility,omitempty"`
	Optimization  *OptimizationResult   `json:"optimization,omitempty"`
	Creative      *CreativeResult       `json:"creative,omitempty"`
	Mode          Mode                  `json:"mode"`
}
