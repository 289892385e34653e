package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// Client implements the APIClient interface using the GitHub REST API
type Client struct {
	client *github.Client
	ctx    context.Context
}

// NewClient creates a new GitHub API client with the provided token
func NewClient(token string) *Client {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &Client{
		client: github.NewClient(tc),
		ctx:    ctx,
	}
}

// GetRepository retrieves a repository by owner and name
func (c *Client) GetRepository(owner, name string) (*Repository, error) {
	repo, _, err := c.client.Repositories.Get(c.ctx, owner, name)
	if err != nil {
		return nil, WrapGitHubError(err, fmt.Sprintf("repository %s/%s", owner, name))
	}

	return c.convertGitHubRepository(repo), nil
}

// CreateRepository creates a new repository under the given organization.
// The repository is auto-initialized so branch protection and starter files
// can be applied to the default branch immediately.
func (c *Client) CreateRepository(org string, config RepositoryConfig) (*Repository, error) {
	repo := &github.Repository{
		Name:          github.String(config.Name),
		Description:   github.String(config.Description),
		Private:       github.Bool(config.Visibility != VisibilityPublic),
		Visibility:    github.String(string(config.Visibility)),
		DefaultBranch: github.String(config.DefaultBranch),
		AutoInit:      github.Bool(true),
	}

	createdRepo, _, err := c.client.Repositories.Create(c.ctx, org, repo)
	if err != nil {
		return nil, WrapGitHubError(err, fmt.Sprintf("repository %s/%s", org, config.Name))
	}

	return c.convertGitHubRepository(createdRepo), nil
}

// ReplaceTopics replaces the full set of topics on a repository
func (c *Client) ReplaceTopics(owner, name string, topics []string) error {
	_, _, err := c.client.Repositories.ReplaceAllTopics(c.ctx, owner, name, topics)
	if err != nil {
		return WrapGitHubError(err, fmt.Sprintf("topics for repository %s/%s", owner, name))
	}
	return nil
}

// AddTeamAccess grants a team the given permission on a repository. GitHub
// treats this as an upsert, so re-granting updates the permission level.
func (c *Client) AddTeamAccess(org, name string, team TeamAccess) error {
	opts := &github.TeamAddTeamRepoOptions{
		Permission: string(team.Permission),
	}

	_, err := c.client.Teams.AddTeamRepoBySlug(c.ctx, org, team.TeamSlug, org, name, opts)
	if err != nil {
		return WrapGitHubError(err, fmt.Sprintf("team %s for %s/%s", team.TeamSlug, org, name))
	}
	return nil
}

// AddCollaborator adds a collaborator to a repository with the given permission
func (c *Client) AddCollaborator(owner, name, username string, permission Permission) error {
	opts := &github.RepositoryAddCollaboratorOptions{
		Permission: string(permission),
	}

	_, _, err := c.client.Repositories.AddCollaborator(c.ctx, owner, name, username, opts)
	if err != nil {
		return WrapGitHubError(err, fmt.Sprintf("collaborator %s for %s/%s", username, owner, name))
	}
	return nil
}

// ListTeamSlugs lists the slugs of all teams in an organization
func (c *Client) ListTeamSlugs(org string) ([]string, error) {
	opts := &github.ListOptions{PerPage: 100}

	var slugs []string
	for {
		teams, resp, err := c.client.Teams.ListTeams(c.ctx, org, opts)
		if err != nil {
			return nil, WrapGitHubError(err, fmt.Sprintf("teams for organization %s", org))
		}

		for _, team := range teams {
			slugs = append(slugs, team.GetSlug())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return slugs, nil
}

// CreateOrUpdateLabel creates a label, or overwrites its color and
// description when a label with the same name already exists.
func (c *Client) CreateOrUpdateLabel(owner, name string, label Label) error {
	ghLabel := &github.Label{
		Name:        github.String(label.Name),
		Color:       github.String(label.Color),
		Description: github.String(label.Description),
	}

	_, _, err := c.client.Issues.CreateLabel(c.ctx, owner, name, ghLabel)
	if err == nil {
		return nil
	}

	wrapped := WrapGitHubError(err, fmt.Sprintf("label %s for %s/%s", label.Name, owner, name))
	if wrapped.Type != ErrorTypeConflict {
		return wrapped
	}

	_, _, err = c.client.Issues.EditLabel(c.ctx, owner, name, label.Name, ghLabel)
	if err != nil {
		return WrapGitHubError(err, fmt.Sprintf("label %s for %s/%s", label.Name, owner, name))
	}
	return nil
}

// CreateWebhook creates a new webhook for a repository
func (c *Client) CreateWebhook(owner, name string, webhook Webhook) error {
	config := &github.HookConfig{
		URL:         github.String(webhook.URL),
		ContentType: github.String("json"),
	}

	if webhook.Secret != "" {
		config.Secret = github.String(webhook.Secret)
	}

	hook := &github.Hook{
		Name:   github.String("web"),
		Config: config,
		Events: webhook.Events,
		Active: github.Bool(webhook.Active),
	}

	_, _, err := c.client.Repositories.CreateHook(c.ctx, owner, name, hook)
	if err != nil {
		return WrapGitHubError(err, fmt.Sprintf("webhook for %s/%s", owner, name))
	}
	return nil
}

// ProtectBranch applies branch protection rules to a branch
func (c *Client) ProtectBranch(owner, name, branch string, rules BranchProtectionRule) error {
	protection := c.buildProtectionRequest(rules)

	_, _, err := c.client.Repositories.UpdateBranchProtection(c.ctx, owner, name, branch, protection)
	if err != nil {
		return WrapGitHubError(err, fmt.Sprintf("branch protection %s/%s:%s", owner, name, branch))
	}
	return nil
}

// CreateFile commits a new file to a branch via the contents API
func (c *Client) CreateFile(owner, name, path, message, branch string, content []byte) error {
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: content,
		Branch:  github.String(branch),
	}

	_, _, err := c.client.Repositories.CreateFile(c.ctx, owner, name, path, opts)
	if err != nil {
		return WrapGitHubError(err, fmt.Sprintf("file %s for %s/%s", path, owner, name))
	}
	return nil
}

// buildProtectionRequest builds a GitHub API ProtectionRequest from our BranchProtectionRule
func (c *Client) buildProtectionRequest(rules BranchProtectionRule) *github.ProtectionRequest {
	protection := &github.ProtectionRequest{
		EnforceAdmins: true,
	}

	if len(rules.RequiredStatusChecks) > 0 || rules.RequireUpToDate {
		protection.RequiredStatusChecks = &github.RequiredStatusChecks{
			Strict:   rules.RequireUpToDate,
			Contexts: &rules.RequiredStatusChecks,
		}
	}

	if rules.RequiredReviews > 0 {
		protection.RequiredPullRequestReviews = &github.PullRequestReviewsEnforcementRequest{
			RequiredApprovingReviewCount: rules.RequiredReviews,
			DismissStaleReviews:          rules.DismissStaleReviews,
			RequireCodeOwnerReviews:      rules.RequireCodeOwnerReview,
		}
	}

	if len(rules.RestrictPushes) > 0 {
		protection.Restrictions = &github.BranchRestrictionsRequest{
			Users: rules.RestrictPushes,
		}
	}

	return protection
}

// convertGitHubRepository converts a GitHub API repository to our internal type
func (c *Client) convertGitHubRepository(repo *github.Repository) *Repository {
	visibility := Visibility(repo.GetVisibility())
	if visibility == "" {
		if repo.GetPrivate() {
			visibility = VisibilityPrivate
		} else {
			visibility = VisibilityPublic
		}
	}

	return &Repository{
		ID:            repo.GetID(),
		Name:          repo.GetName(),
		FullName:      repo.GetFullName(),
		Description:   repo.GetDescription(),
		Visibility:    visibility,
		HTMLURL:       repo.GetHTMLURL(),
		DefaultBranch: repo.GetDefaultBranch(),
		Topics:        repo.Topics,
	}
}
