package github

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// labelColorPattern matches a 6 hex digit color code without the leading #.
var labelColorPattern = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)

// repoNamePattern matches valid GitHub repository names.
var repoNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// StarterFiles selects which starter files to seed into the new repository.
type StarterFiles struct {
	Readme              bool `yaml:"readme"`
	CodeOwners          bool `yaml:"codeowners"`
	CloudBuild          bool `yaml:"cloudbuild"`
	License             bool `yaml:"license"`
	IssueTemplate       bool `yaml:"issue_template"`
	PullRequestTemplate bool `yaml:"pull_request_template"`
	Security            bool `yaml:"security"`
	Contributing        bool `yaml:"contributing"`
	Tekton              bool `yaml:"tekton"`
}

// Any reports whether at least one starter file is requested.
func (s StarterFiles) Any() bool {
	return s.Readme || s.CodeOwners || s.CloudBuild || s.License ||
		s.IssueTemplate || s.PullRequestTemplate || s.Security ||
		s.Contributing || s.Tekton
}

// RepositoryConfig represents the desired configuration of a new repository.
// It is constructed once per invocation, from interactive prompts, a web form
// submission, or a YAML file, and consumed by the Provisioner.
type RepositoryConfig struct {
	Name                   string                `yaml:"name"`
	Organization           string                `yaml:"organization"`
	Visibility             Visibility            `yaml:"visibility,omitempty"`
	Description            string                `yaml:"description,omitempty"`
	Topics                 []string              `yaml:"topics,omitempty"`
	DefaultBranch          string                `yaml:"default_branch,omitempty"`
	Category               Category              `yaml:"category,omitempty"`
	Region                 Region                `yaml:"region,omitempty"`
	CodeOwners             []string              `yaml:"code_owners,omitempty"`
	Teams                  []TeamAccess          `yaml:"teams,omitempty"`
	Labels                 []Label               `yaml:"labels,omitempty"`
	EnableBuildIntegration bool                  `yaml:"enable_build_integration"`
	BranchProtection       *BranchProtectionRule `yaml:"branch_protection,omitempty"`
	StarterFiles           StarterFiles          `yaml:"starter_files,omitempty"`
}

// ApplyDefaults fills in the defaults for optional fields.
func (r *RepositoryConfig) ApplyDefaults() {
	if r.Visibility == "" {
		r.Visibility = VisibilityPrivate
	}
	if r.DefaultBranch == "" {
		r.DefaultBranch = "main"
	}
	if r.Category == "" {
		r.Category = CategoryNormal
	}
}

// Restricted reports whether the repository category routes access through
// code owners instead of team grants.
func (r *RepositoryConfig) Restricted() bool {
	return r.Category == CategorySox || r.Category == CategoryBanking
}

// Validate validates the repository configuration
func (r *RepositoryConfig) Validate() error {
	var validationErrors ValidationErrors

	if err := r.validateName(); err != nil {
		validationErrors = append(validationErrors, *err)
	}

	if r.Organization == "" {
		validationErrors.Add("organization", "", "organization is required")
	}

	switch r.Visibility {
	case "", VisibilityPrivate, VisibilityInternal, VisibilityPublic:
	default:
		validationErrors.Add("visibility", string(r.Visibility),
			"visibility must be one of: private, internal, public")
	}

	switch r.Category {
	case "", CategoryNormal, CategorySox, CategoryBanking:
	default:
		validationErrors.Add("category", string(r.Category),
			"category must be one of: normal, sox, banking")
	}

	switch r.Region {
	case "", RegionChina, RegionNorthAmerica:
	default:
		validationErrors.Add("region", string(r.Region),
			"region must be one of: china, north-america")
	}

	for _, team := range r.Teams {
		if team.TeamSlug == "" {
			validationErrors.Add("teams", "", "team slug cannot be empty")
			continue
		}
		if !validPermission(team.Permission) {
			validationErrors.Add("teams", string(team.Permission),
				fmt.Sprintf("invalid permission for team %s: must be one of pull, push, admin, maintain, triage", team.TeamSlug))
		}
	}

	for _, label := range r.Labels {
		if label.Name == "" {
			validationErrors.Add("labels", "", "label name cannot be empty")
			continue
		}
		if !labelColorPattern.MatchString(label.Color) {
			validationErrors.Add("labels", label.Color,
				fmt.Sprintf("label %s color must be exactly 6 hex digits", label.Name))
		}
	}

	if r.Restricted() && len(r.CodeOwners) == 0 {
		validationErrors.Add("code_owners", "",
			fmt.Sprintf("category %s requires at least one code owner", r.Category))
	}

	if validationErrors.HasErrors() {
		return &GitHubError{
			Type:    ErrorTypeValidation,
			Message: validationErrors.Error(),
			Cause:   validationErrors,
		}
	}

	return nil
}

// validateName validates the repository name according to GitHub rules
func (r *RepositoryConfig) validateName() *ValidationError {
	if r.Name == "" {
		return &ValidationError{
			Field:   "name",
			Message: "repository name is required",
		}
	}

	if len(r.Name) > 100 {
		return &ValidationError{
			Field:   "name",
			Value:   r.Name,
			Message: "repository name must be 100 characters or less",
		}
	}

	if !repoNamePattern.MatchString(r.Name) {
		return &ValidationError{
			Field:   "name",
			Value:   r.Name,
			Message: "repository name can only contain alphanumeric characters, periods, hyphens, and underscores",
		}
	}

	if strings.HasPrefix(r.Name, ".") || strings.HasSuffix(r.Name, ".") {
		return &ValidationError{
			Field:   "name",
			Value:   r.Name,
			Message: "repository name cannot start or end with a period",
		}
	}

	return nil
}

func validPermission(p Permission) bool {
	switch p {
	case PermissionPull, PermissionPush, PermissionAdmin, PermissionMaintain, PermissionTriage:
		return true
	}
	return false
}

// LoadRepositoryConfig loads a repository configuration from a YAML file.
func LoadRepositoryConfig(path string) (*RepositoryConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read repository config: %w", err)
	}

	var config RepositoryConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse repository config: %w", err)
	}

	config.ApplyDefaults()
	return &config, nil
}

// ParseTeamGrants parses a comma-separated list of team slugs into team
// access grants carrying the given permission. Empty entries are skipped.
func ParseTeamGrants(slugs string, permission Permission) []TeamAccess {
	var teams []TeamAccess
	for _, slug := range strings.Split(slugs, ",") {
		slug = strings.TrimSpace(slug)
		if slug == "" {
			continue
		}
		teams = append(teams, TeamAccess{TeamSlug: slug, Permission: permission})
	}
	return teams
}

// ParseLabels parses a comma-separated list of name:color label pairs
// (e.g. "bug:d73a4a,feature:a2eeef"). Color validity is checked later by
// RepositoryConfig.Validate.
func ParseLabels(pairs string) ([]Label, error) {
	var labels []Label
	for _, pair := range strings.Split(pairs, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, color, found := strings.Cut(pair, ":")
		if !found {
			return nil, fmt.Errorf("invalid label %q: expected name:color (e.g. bug:d73a4a)", pair)
		}
		labels = append(labels, Label{
			Name:  strings.TrimSpace(name),
			Color: strings.TrimSpace(color),
		})
	}
	return labels, nil
}

// ParseList splits a comma-separated list, trimming whitespace and dropping
// empty entries.
func ParseList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
