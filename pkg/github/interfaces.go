package github

// APIClient defines the interface for GitHub API operations used by the
// provisioning workflow. Implementations are expected to wrap failures in
// GitHubError via WrapGitHubError.
type APIClient interface {
	// Repository operations
	GetRepository(owner, name string) (*Repository, error)
	CreateRepository(org string, config RepositoryConfig) (*Repository, error)
	ReplaceTopics(owner, name string, topics []string) error

	// Access operations
	AddTeamAccess(org, name string, team TeamAccess) error
	AddCollaborator(owner, name, username string, permission Permission) error
	ListTeamSlugs(org string) ([]string, error)

	// Label operations
	CreateOrUpdateLabel(owner, name string, label Label) error

	// Webhook operations
	CreateWebhook(owner, name string, webhook Webhook) error

	// Branch protection operations
	ProtectBranch(owner, name, branch string, rules BranchProtectionRule) error

	// Content operations
	CreateFile(owner, name, path, message, branch string, content []byte) error
}
