package github

import "fmt"

// Provisioner executes the repository provisioning workflow: an ordered
// sequence of best-effort setup calls against the GitHub API. A failure in
// one step is recorded in the result and does not abort later steps; each
// step is attempted exactly once with no retries.
type Provisioner struct {
	client          APIClient
	buildWebhookURL string
}

// NewProvisioner creates a Provisioner that registers build webhooks against
// the given trigger endpoint.
func NewProvisioner(client APIClient, buildWebhookURL string) *Provisioner {
	return &Provisioner{
		client:          client,
		buildWebhookURL: buildWebhookURL,
	}
}

// Provision runs the full provisioning workflow for one repository
// configuration. The returned result always carries the outcome of every
// attempted step; only an invalid configuration prevents any API call from
// being made.
func (p *Provisioner) Provision(config RepositoryConfig) *ProvisioningResult {
	config.ApplyDefaults()
	result := &ProvisioningResult{}

	if err := config.Validate(); err != nil {
		result.recordError(StepValidateConfig, err)
		return result
	}

	p.createRepository(config, result)
	p.assignTeams(config, result)
	p.createLabels(config, result)
	p.registerWebhook(config, result)
	p.protectBranch(config, result)
	p.seedFiles(config, result)

	return result
}

// createRepository creates the repository and sets its topics. When the name
// is already taken, the failure is recorded and the remaining steps run
// against the pre-existing repository.
func (p *Provisioner) createRepository(config RepositoryConfig, result *ProvisioningResult) {
	repo, err := p.client.CreateRepository(config.Organization, config)
	if err != nil {
		result.recordError(StepCreateRepository, err)
		result.RepositoryURL = p.lookupRepositoryURL(config)
		return
	}

	result.RepositoryURL = repo.HTMLURL

	if len(config.Topics) > 0 {
		if err := p.client.ReplaceTopics(config.Organization, config.Name, config.Topics); err != nil {
			result.recordError(StepSetTopics, err)
		}
	}
}

// lookupRepositoryURL resolves the URL of a repository that could not be
// created, falling back to the canonical form when the lookup fails too.
func (p *Provisioner) lookupRepositoryURL(config RepositoryConfig) string {
	if existing, err := p.client.GetRepository(config.Organization, config.Name); err == nil && existing.HTMLURL != "" {
		return existing.HTMLURL
	}
	return fmt.Sprintf("https://github.com/%s/%s", config.Organization, config.Name)
}

// assignTeams grants each configured team its permission on the repository.
// Restricted categories (sox, banking) add code owners as admin
// collaborators instead. An unknown team slug or username is recorded and
// does not stop the remaining grants.
func (p *Provisioner) assignTeams(config RepositoryConfig, result *ProvisioningResult) {
	if config.Restricted() {
		for _, owner := range config.CodeOwners {
			if err := p.client.AddCollaborator(config.Organization, config.Name, owner, PermissionAdmin); err != nil {
				result.recordError(StepAssignTeams, err)
				continue
			}
			result.AddedCollaborators = append(result.AddedCollaborators, owner)
		}
		return
	}

	for _, team := range config.Teams {
		if err := p.client.AddTeamAccess(config.Organization, config.Name, team); err != nil {
			result.recordError(StepAssignTeams, err)
			continue
		}
		result.AssignedTeams = append(result.AssignedTeams, team.TeamSlug)
	}
}

// createLabels creates or overwrites each configured label.
func (p *Provisioner) createLabels(config RepositoryConfig, result *ProvisioningResult) {
	for _, label := range config.Labels {
		if err := p.client.CreateOrUpdateLabel(config.Organization, config.Name, label); err != nil {
			result.recordError(StepCreateLabels, err)
			continue
		}
		result.CreatedLabels = append(result.CreatedLabels, label.Name)
	}
}

// registerWebhook registers the build-trigger webhook when build
// integration is enabled.
func (p *Provisioner) registerWebhook(config RepositoryConfig, result *ProvisioningResult) {
	if !config.EnableBuildIntegration {
		return
	}

	webhook := Webhook{
		URL:    p.buildWebhookURL,
		Events: []string{"push", "pull_request"},
		Active: true,
	}

	if err := p.client.CreateWebhook(config.Organization, config.Name, webhook); err != nil {
		result.recordError(StepRegisterWebhook, err)
		return
	}
	result.WebhookRegistered = true
}

// protectBranch applies branch protection to the default branch when
// configured.
func (p *Provisioner) protectBranch(config RepositoryConfig, result *ProvisioningResult) {
	if config.BranchProtection == nil {
		return
	}

	if err := p.client.ProtectBranch(config.Organization, config.Name, config.DefaultBranch, *config.BranchProtection); err != nil {
		result.recordError(StepProtectBranch, err)
		return
	}
	result.ProtectionApplied = true
}

// seedFiles commits the requested starter files to the default branch.
func (p *Provisioner) seedFiles(config RepositoryConfig, result *ProvisioningResult) {
	if !config.StarterFiles.Any() {
		return
	}

	for _, file := range starterFiles(config) {
		if err := p.client.CreateFile(config.Organization, config.Name, file.Path, file.Message, config.DefaultBranch, file.Content); err != nil {
			result.recordError(StepSeedFiles, err)
			continue
		}
		result.SeededFiles = append(result.SeededFiles, file.Path)
	}
}
