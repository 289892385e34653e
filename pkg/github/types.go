package github

// Visibility is the visibility level of a repository.
type Visibility string

const (
	VisibilityPrivate  Visibility = "private"
	VisibilityInternal Visibility = "internal"
	VisibilityPublic   Visibility = "public"
)

// Permission is the access level granted to a team on a repository.
type Permission string

const (
	PermissionPull     Permission = "pull"
	PermissionPush     Permission = "push"
	PermissionAdmin    Permission = "admin"
	PermissionMaintain Permission = "maintain"
	PermissionTriage   Permission = "triage"
)

// Category classifies a repository for access control purposes. Repositories
// in the sox and banking categories get code owners as admin collaborators
// instead of team grants.
type Category string

const (
	CategoryNormal  Category = "normal"
	CategorySox     Category = "sox"
	CategoryBanking Category = "banking"
)

// Region is the deployment region a repository is served from. It is
// recorded in the README and the audit log.
type Region string

const (
	RegionChina        Region = "china"
	RegionNorthAmerica Region = "north-america"
)

// Repository represents a GitHub repository
type Repository struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	FullName      string     `json:"full_name"`
	Description   string     `json:"description"`
	Visibility    Visibility `json:"visibility"`
	HTMLURL       string     `json:"html_url"`
	DefaultBranch string     `json:"default_branch"`
	Topics        []string   `json:"topics"`
}

// TeamAccess represents a team permission grant on a repository
type TeamAccess struct {
	TeamSlug   string     `json:"team_slug" yaml:"team"`
	Permission Permission `json:"permission" yaml:"permission"`
}

// Label represents an issue/pull request label
type Label struct {
	Name        string `json:"name" yaml:"name"`
	Color       string `json:"color" yaml:"color"` // 6 hex digits, no leading #
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Webhook represents a repository webhook
type Webhook struct {
	URL    string   `json:"url" yaml:"url"`
	Events []string `json:"events" yaml:"events"`
	Secret string   `json:"secret,omitempty" yaml:"secret,omitempty"`
	Active bool     `json:"active" yaml:"active"`
}

// BranchProtectionRule defines branch protection settings for the default branch
type BranchProtectionRule struct {
	RequiredReviews        int      `json:"required_reviews" yaml:"required_reviews"`
	DismissStaleReviews    bool     `json:"dismiss_stale_reviews" yaml:"dismiss_stale_reviews"`
	RequireCodeOwnerReview bool     `json:"require_code_owner_review" yaml:"require_code_owner_review"`
	RequiredStatusChecks   []string `json:"required_status_checks,omitempty" yaml:"required_status_checks,omitempty"`
	RequireUpToDate        bool     `json:"require_up_to_date" yaml:"require_up_to_date"`
	RestrictPushes         []string `json:"restrict_pushes,omitempty" yaml:"restrict_pushes,omitempty"`
}

// DefaultBranchProtection returns the standard protection rule applied when
// a front end asks for protection without specifying details: one approving
// review, stale reviews dismissed, code-owner review required.
func DefaultBranchProtection() *BranchProtectionRule {
	return &BranchProtectionRule{
		RequiredReviews:        1,
		DismissStaleReviews:    true,
		RequireCodeOwnerReview: true,
	}
}

// Provisioning step names as they appear in ProvisioningResult.Errors.
const (
	StepValidateConfig   = "validate-config"
	StepCreateRepository = "create-repository"
	StepSetTopics        = "set-topics"
	StepAssignTeams      = "assign-teams"
	StepCreateLabels     = "create-labels"
	StepRegisterWebhook  = "register-webhook"
	StepProtectBranch    = "protect-branch"
	StepSeedFiles        = "seed-files"
)

// StepError records a single step failure during provisioning
type StepError struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// ProvisioningResult accumulates the outcome of one provisioning run
type ProvisioningResult struct {
	RepositoryURL      string      `json:"repository_url"`
	CreatedLabels      []string    `json:"created_labels"`
	AssignedTeams      []string    `json:"assigned_teams"`
	AddedCollaborators []string    `json:"added_collaborators,omitempty"`
	WebhookRegistered  bool        `json:"webhook_registered"`
	ProtectionApplied  bool        `json:"protection_applied"`
	SeededFiles        []string    `json:"seeded_files,omitempty"`
	Errors             []StepError `json:"errors"`
}

// Succeeded reports whether every step completed without error.
func (r *ProvisioningResult) Succeeded() bool {
	return len(r.Errors) == 0
}

// recordError appends a step failure to the result.
func (r *ProvisioningResult) recordError(step string, err error) {
	r.Errors = append(r.Errors, StepError{Step: step, Message: err.Error()})
}
