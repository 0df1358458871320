package compliance

import "time"

// ControlStatus is the implementation state of a control for one client.
type ControlStatus string

const (
	ControlImplemented    ControlStatus = "implemented"
	ControlInProgress     ControlStatus = "in_progress"
	ControlNotImplemented ControlStatus = "not_implemented"
	ControlNotApplicable  ControlStatus = "not_applicable"
)

// PolicyStatus is the review state of a client policy. Transitions are
// advisory; any status may follow any other.
type PolicyStatus string

const (
	PolicyDraft    PolicyStatus = "draft"
	PolicyReview   PolicyStatus = "review"
	PolicyApproved PolicyStatus = "approved"
	PolicyArchived PolicyStatus = "archived"
)

// EvidenceStatus is the verification state of an evidence artifact.
type EvidenceStatus string

const (
	EvidenceVerified EvidenceStatus = "verified"
	EvidencePending  EvidenceStatus = "pending"
	EvidenceExpired  EvidenceStatus = "expired"
)

// Control is a framework-agnostic master record of a compliance requirement.
type Control struct {
	ID                string `json:"id" db:"id"`
	ExternalControlID string `json:"external_control_id" db:"external_control_id"`
	Name              string `json:"name" db:"name"`
	Framework         string `json:"framework" db:"framework"`
	Description       string `json:"description" db:"description"`
	Category          string `json:"category" db:"category"`
}

// ClientControl is one client's adoption of a control, joined with its
// master record. One row per (client, control) pair.
type ClientControl struct {
	ID        string        `json:"id" db:"id"`
	ClientID  string        `json:"client_id" db:"client_id"`
	ControlID string        `json:"control_id" db:"control_id"`
	Status    ControlStatus `json:"status" db:"status"`
	Owner     string        `json:"owner" db:"owner"`
	Control   Control       `json:"control"`
}

// ClientPolicy is a governance document owned by a client.
type ClientPolicy struct {
	ID        string       `json:"id" db:"id"`
	ClientID  string       `json:"client_id" db:"client_id"`
	Name      string       `json:"name" db:"name"`
	Status    PolicyStatus `json:"status" db:"status"`
	Version   int          `json:"version" db:"version"`
	UpdatedAt time.Time    `json:"updated_at" db:"updated_at"`
}

// Evidence is an artifact proving a control's implementation.
type Evidence struct {
	ID                  string         `json:"id" db:"id"`
	ClientID            string         `json:"client_id" db:"client_id"`
	Title               string         `json:"title" db:"title"`
	Status              EvidenceStatus `json:"status" db:"status"`
	CollectionFrequency string         `json:"collection_frequency" db:"collection_frequency"`
}

// PolicyControlLink records that a policy addresses a control. The relation
// is undirected for coverage purposes: existence is what matters.
type PolicyControlLink struct {
	PolicyID  string `json:"policy_id" db:"policy_id"`
	ControlID string `json:"control_id" db:"control_id"`
}

// QuestionType distinguishes how a wizard question is presented.
type QuestionType string

const (
	QuestionBoolean QuestionType = "boolean"
	QuestionSelect  QuestionType = "select"
	QuestionScale   QuestionType = "scale"
)

// WizardQuestion is one readiness-questionnaire question for a regulation.
type WizardQuestion struct {
	ID              string       `json:"id" yaml:"id"`
	Text            string       `json:"text" yaml:"text"`
	Type            QuestionType `json:"type" yaml:"type"`
	RelatedArticles []string     `json:"related_articles,omitempty" yaml:"related_articles,omitempty"`
	FailureGuidance string       `json:"failure_guidance,omitempty" yaml:"failure_guidance,omitempty"`
}

// Article is one article of a regulation. MappedControls carries the
// control references in either the legacy flat-list shape ([]string) or the
// current per-framework map shape (map[string][]string); it is decoded as-is
// and normalized by ResolveMappedControls, never branched on elsewhere.
type Article struct {
	ID             string    `json:"id" yaml:"id"`
	NumericID      int       `json:"numeric_id" yaml:"numeric_id"`
	Title          string    `json:"title" yaml:"title"`
	Description    string    `json:"description" yaml:"description"`
	SubArticles    []Article `json:"sub_articles,omitempty" yaml:"sub_articles,omitempty"`
	MappedControls any       `json:"mapped_controls,omitempty" yaml:"mapped_controls,omitempty"`
}

// Regulation is static reference data: a named framework with its articles
// and optional readiness questionnaire.
type Regulation struct {
	ID        string           `json:"id" yaml:"id"`
	Name      string           `json:"name" yaml:"name"`
	Articles  []Article        `json:"articles" yaml:"articles"`
	Questions []WizardQuestion `json:"questions,omitempty" yaml:"questions,omitempty"`
}

// ReadinessResponse is one client's answer to one wizard question. Only the
// literal answer "yes" counts as compliant.
type ReadinessResponse struct {
	ClientID     string `json:"client_id" db:"client_id"`
	RegulationID string `json:"regulation_id" db:"regulation_id"`
	QuestionID   string `json:"question_id" db:"question_id"`
	Response     string `json:"response" db:"response"`
}

// Snapshot is one client's entity state fetched in a single pass by the
// persistence layer. The engine reads it; it never writes back.
type Snapshot struct {
	ClientID string              `json:"client_id"`
	Controls []ClientControl     `json:"controls"`
	Policies []ClientPolicy      `json:"policies"`
	Evidence []Evidence          `json:"evidence"`
	Links    []PolicyControlLink `json:"links"`
}

// ComplianceScoreSnapshot is the aggregate score for one client at one
// point in time. Recomputed from inputs on every request, never mutated.
type ComplianceScoreSnapshot struct {
	Overall             int `json:"overall"`
	ControlsImplemented int `json:"controls_implemented"`
	TotalControls       int `json:"total_controls"`
	PoliciesApproved    int `json:"policies_approved"`
	TotalPolicies       int `json:"total_policies"`
	EvidenceVerified    int `json:"evidence_verified"`
	TotalEvidence       int `json:"total_evidence"`
}

// PolicyCoverageEntry counts the distinct controls one policy addresses.
type PolicyCoverageEntry struct {
	PolicyName   string `json:"policy_name"`
	ControlCount int    `json:"control_count"`
}

// UnmappedControl identifies a control with no policy link.
type UnmappedControl struct {
	ControlID string `json:"control_id"`
	Name      string `json:"name"`
}

// CoverageSnapshot is the control-to-policy coverage picture for one client.
type CoverageSnapshot struct {
	TotalControls        int                   `json:"total_controls"`
	MappedControls       int                   `json:"mapped_controls"`
	UnmappedControls     int                   `json:"unmapped_controls"`
	CoveragePercentage   int                   `json:"coverage_percentage"`
	PolicyCoverage       []PolicyCoverageEntry `json:"policy_coverage"`
	UnmappedControlsList []UnmappedControl     `json:"unmapped_controls_list"`
}

// GapSeverity classifies how urgent a detected gap is.
type GapSeverity string

const (
	SeverityCritical GapSeverity = "critical"
	SeverityWarning  GapSeverity = "warning"
	SeverityInfo     GapSeverity = "info"
)

// ActionKind tags the remediation a gap alert recommends.
type ActionKind string

const (
	ActionLinkPolicy       ActionKind = "link_policy"
	ActionImplementControl ActionKind = "implement_control"
	ActionMitigateRisk     ActionKind = "mitigate_risk"
)

// GapAlert is one detected deficiency with its recommended remediation.
type GapAlert struct {
	Severity          GapSeverity `json:"severity"`
	Message           string      `json:"message"`
	RecommendedAction string      `json:"recommended_action"`
	ActionKind        ActionKind  `json:"action_kind"`
}

// ControlStatusBreakdown counts client controls per status. The four fields
// always sum to Total.
type ControlStatusBreakdown struct {
	Implemented    int `json:"implemented"`
	InProgress     int `json:"in_progress"`
	NotImplemented int `json:"not_implemented"`
	NotApplicable  int `json:"not_applicable"`
	Total          int `json:"total"`
}

// PolicyStatusBreakdown counts client policies per status.
type PolicyStatusBreakdown struct {
	Draft    int `json:"draft"`
	Review   int `json:"review"`
	Approved int `json:"approved"`
	Archived int `json:"archived"`
	Total    int `json:"total"`
}

// QuestionVerdict is the per-question outcome of a readiness assessment.
type QuestionVerdict struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
	Compliant  bool   `json:"compliant"`
	Guidance   string `json:"guidance,omitempty"`
}

// ReadinessResult is the outcome of assessing one client against one
// regulation's questionnaire.
type ReadinessResult struct {
	RegulationID string            `json:"regulation_id"`
	Score        int               `json:"score"`
	PerQuestion  []QuestionVerdict `json:"per_question"`
}
