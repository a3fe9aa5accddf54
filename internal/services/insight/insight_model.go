package insight

// Origin tags whether a result came from the model or from the canned
// fallback, so callers can always tell them apart.
type Origin string

const (
	OriginModel    Origin = "model"
	OriginFallback Origin = "fallback"
)

// Summary is a short free-text insight for a report.
type Summary struct {
	Origin  Origin `json:"origin"`
	Summary string `json:"summary"`
}

// RiskAssessment is the structured insight variant. Field names follow the
// established client contract.
type RiskAssessment struct {
	Origin     Origin   `json:"origin"`
	Risk       string   `json:"riesgo"`
	Conclusion string   `json:"conclusion"`
	Pros       []string `json:"pros"`
	Cons       []string `json:"contras"`
}

// GenerateRequest captures payload for both insight endpoints. ReportID is
// optional; when present the caller must be allowed to read that report.
type GenerateRequest struct {
	KeyData  string `json:"keyData"`
	ReportID string `json:"report_id,omitempty"`
}
