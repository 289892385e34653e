package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rsivaseshu/ghec-to-githubcloud/internal/audit"
	"github.com/rsivaseshu/ghec-to-githubcloud/pkg/config"
	"github.com/rsivaseshu/ghec-to-githubcloud/pkg/fuzzy"
	"github.com/rsivaseshu/ghec-to-githubcloud/pkg/github"
)

var (
	createConfigFile string
	createOrg        string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create and configure a new organization repository",
	Long: `Create a new GitHub organization repository and run the full setup
workflow: repository creation, team or code-owner access, labels, the
optional Cloud Build webhook, branch protection, and starter files.

Without flags the command prompts interactively for the repository
configuration. With --config the configuration is loaded from a YAML file
instead.

Steps are best-effort: a failure in one step is reported in the summary and
does not stop the remaining steps. The command exits 0 once the workflow has
run, even when individual steps failed.

Examples:
  # Interactive prompts
  repocreator create

  # From a YAML file
  repocreator create --config my-repo.yaml

  # Override the organization from the config file
  repocreator create --config my-repo.yaml --org acme`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createConfigFile, "config", "", "Repository configuration YAML file (skips interactive prompts)")
	createCmd.Flags().StringVar(&createOrg, "org", "", "Organization to create the repository in (overrides configuration)")
}

func runCreate(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load repocreator config: %w", err)
	}

	// Failure to obtain credentials is the only fatal condition; every
	// provisioning step after this point is best-effort.
	authManager := github.NewAuthManager()
	token, err := authManager.GetToken(cfg)
	if err != nil {
		token, err = promptToken()
		if err != nil {
			return err
		}
	}

	if err := authManager.Authenticate(token); err != nil {
		return err
	}

	tokenInfo, err := authManager.ValidateToken(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Authentication failed: %v\n\n", err)
		fmt.Fprintf(os.Stderr, "%s\n", github.GetAuthInstructions())
		return err
	}

	fmt.Printf("✓ Authenticated as %s\n", tokenInfo.User)

	client := github.NewClient(token)

	var repoCfg *github.RepositoryConfig
	if createConfigFile != "" {
		repoCfg, err = github.LoadRepositoryConfig(createConfigFile)
		if err != nil {
			return err
		}
	} else {
		repoCfg, err = promptRepositoryConfig(client, defaultOrganization(cfg))
		if err != nil {
			return err
		}
	}

	if createOrg != "" {
		repoCfg.Organization = createOrg
	}
	if repoCfg.Organization == "" {
		repoCfg.Organization = cfg.GitHub.Organization
	}
	if repoCfg.Organization == "" {
		return fmt.Errorf("organization not specified: use --org, the config file, or set github.organization in ~/.repocreator/config.yaml")
	}

	provisioner := github.NewProvisioner(client, cfg.BuildWebhookURL())
	result := provisioner.Provision(*repoCfg)

	printResult(result)

	if err := audit.Append(cfg.AuditLogPath(), audit.Entry{
		Time:         time.Now(),
		Repository:   repoCfg.Name,
		Organization: repoCfg.Organization,
		Category:     string(repoCfg.Category),
		Region:       string(repoCfg.Region),
		CodeOwners:   repoCfg.CodeOwners,
		Succeeded:    result.Succeeded(),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  failed to write audit log: %v\n", err)
	}

	// Steps are best-effort; the summary above reports any failures.
	return nil
}

func defaultOrganization(cfg *config.Config) string {
	if createOrg != "" {
		return createOrg
	}
	return cfg.GitHub.Organization
}

// promptToken reads the GitHub token from the terminal without echoing it.
func promptToken() (string, error) {
	fmt.Print("Enter your GitHub token: ")

	if term.IsTerminal(int(os.Stdin.Fd())) {
		tokenBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}
		token := strings.TrimSpace(string(tokenBytes))
		if token == "" {
			return "", fmt.Errorf("no GitHub token provided")
		}
		return token, nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	token := strings.TrimSpace(line)
	if token == "" {
		return "", fmt.Errorf("no GitHub token provided")
	}
	return token, nil
}

// promptRepositoryConfig interactively builds a RepositoryConfig.
func promptRepositoryConfig(client github.APIClient, defaultOrg string) (*github.RepositoryConfig, error) {
	reader := bufio.NewReader(os.Stdin)
	repoCfg := &github.RepositoryConfig{}

	org, err := promptLine(reader, fmt.Sprintf("Enter your GitHub organization name%s: ", defaultHint(defaultOrg)))
	if err != nil {
		return nil, err
	}
	if org == "" {
		org = defaultOrg
	}
	repoCfg.Organization = org

	if repoCfg.Name, err = promptLine(reader, "Enter the new repository name: "); err != nil {
		return nil, err
	}

	if repoCfg.Description, err = promptLine(reader, "Enter repository description: "); err != nil {
		return nil, err
	}

	topics, err := promptLine(reader, "Enter topics/tags (comma-separated): ")
	if err != nil {
		return nil, err
	}
	repoCfg.Topics = github.ParseList(topics)

	branch, err := promptLine(reader, "Enter default branch name (default: main): ")
	if err != nil {
		return nil, err
	}
	repoCfg.DefaultBranch = branch

	visibility, err := chooseOption("Select repository visibility:", []fuzzy.Option{
		{Value: string(github.VisibilityPrivate), Description: "visible to organization members with access"},
		{Value: string(github.VisibilityInternal), Description: "visible to all organization members"},
		{Value: string(github.VisibilityPublic), Description: "visible to everyone"},
	})
	if err != nil {
		return nil, err
	}
	repoCfg.Visibility = github.Visibility(visibility)

	category, err := chooseOption("Select repository category:", []fuzzy.Option{
		{Value: string(github.CategoryNormal), Description: "team-based access"},
		{Value: string(github.CategorySox), Description: "code owners only, admin access"},
		{Value: string(github.CategoryBanking), Description: "code owners only, admin access"},
	})
	if err != nil {
		return nil, err
	}
	repoCfg.Category = github.Category(category)

	region, err := chooseOption("Select region:", []fuzzy.Option{
		{Value: string(github.RegionChina), Description: "served from the China region"},
		{Value: string(github.RegionNorthAmerica), Description: "served from the North America region"},
	})
	if err != nil {
		return nil, err
	}
	repoCfg.Region = github.Region(region)

	if repoCfg.Restricted() {
		owners, err := promptLine(reader, "Enter code owners (comma-separated GitHub usernames): ")
		if err != nil {
			return nil, err
		}
		repoCfg.CodeOwners = github.ParseList(owners)
	} else {
		if slugs, err := client.ListTeamSlugs(org); err == nil && len(slugs) > 0 {
			fmt.Printf("Available teams: %s\n", strings.Join(slugs, ", "))
		}

		teams, err := promptLine(reader, "Enter team slugs (comma-separated): ")
		if err != nil {
			return nil, err
		}

		if teams != "" {
			permission, err := chooseOption("Select team permission:", []fuzzy.Option{
				{Value: string(github.PermissionPull), Description: "read-only access"},
				{Value: string(github.PermissionTriage), Description: "manage issues and pull requests"},
				{Value: string(github.PermissionPush), Description: "read and write access"},
				{Value: string(github.PermissionMaintain), Description: "write access plus repository settings"},
				{Value: string(github.PermissionAdmin), Description: "full administrative access"},
			})
			if err != nil {
				return nil, err
			}
			repoCfg.Teams = github.ParseTeamGrants(teams, github.Permission(permission))
		}
	}

	for {
		pairs, err := promptLine(reader, "Enter labels (format: name:color, comma-separated, blank for none): ")
		if err != nil {
			return nil, err
		}
		labels, err := github.ParseLabels(pairs)
		if err != nil {
			fmt.Printf("Invalid format: %v\n", err)
			continue
		}
		repoCfg.Labels = labels
		break
	}

	if repoCfg.EnableBuildIntegration, err = promptYesNo(reader, "Add Google Cloud Build integration? (y/n): "); err != nil {
		return nil, err
	}

	protect, err := promptYesNo(reader, "Protect the default branch? (y/n): ")
	if err != nil {
		return nil, err
	}
	if protect {
		repoCfg.BranchProtection = github.DefaultBranchProtection()
	}

	if repoCfg.StarterFiles.Readme, err = promptYesNo(reader, "Create README.md in the new repo? (y/n): "); err != nil {
		return nil, err
	}
	if len(repoCfg.CodeOwners) > 0 {
		if repoCfg.StarterFiles.CodeOwners, err = promptYesNo(reader, "Create CODEOWNERS file in the new repo? (y/n): "); err != nil {
			return nil, err
		}
	}
	if repoCfg.EnableBuildIntegration {
		if repoCfg.StarterFiles.CloudBuild, err = promptYesNo(reader, "Create default cloudbuild.yaml in the new repo? (y/n): "); err != nil {
			return nil, err
		}
	}
	if repoCfg.StarterFiles.License, err = promptYesNo(reader, "Add LICENSE file? (y/n): "); err != nil {
		return nil, err
	}
	if repoCfg.StarterFiles.IssueTemplate, err = promptYesNo(reader, "Add default ISSUE_TEMPLATE? (y/n): "); err != nil {
		return nil, err
	}
	if repoCfg.StarterFiles.PullRequestTemplate, err = promptYesNo(reader, "Add default PULL_REQUEST_TEMPLATE? (y/n): "); err != nil {
		return nil, err
	}
	if repoCfg.StarterFiles.Security, err = promptYesNo(reader, "Add SECURITY.md? (y/n): "); err != nil {
		return nil, err
	}
	if repoCfg.StarterFiles.Contributing, err = promptYesNo(reader, "Add CONTRIBUTING.md? (y/n): "); err != nil {
		return nil, err
	}
	if repoCfg.StarterFiles.Tekton, err = promptYesNo(reader, "Add tekton.yaml for Tekton CI/CD? (y/n): "); err != nil {
		return nil, err
	}

	repoCfg.ApplyDefaults()
	return repoCfg, nil
}

func defaultHint(value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf(" (default: %s)", value)
}

func promptLine(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func promptYesNo(reader *bufio.Reader, label string) (bool, error) {
	answer, err := promptLine(reader, label)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes"), nil
}

// chooseOption selects one value from the options, using fzf on a terminal
// and a numbered list otherwise.
func chooseOption(prompt string, options []fuzzy.Option) (string, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		finder := fuzzy.NewFzf(prompt)
		finder.SetOptions(options)
		return finder.Select()
	}

	finder := fuzzy.New(prompt)
	finder.SetOptions(options)
	return finder.Select()
}

// printResult prints the provisioning summary.
func printResult(result *github.ProvisioningResult) {
	fmt.Printf("\n📋 Provisioning summary for %s\n", result.RepositoryURL)

	if len(result.AssignedTeams) > 0 {
		fmt.Printf("✓ Teams assigned: %s\n", strings.Join(result.AssignedTeams, ", "))
	}
	if len(result.AddedCollaborators) > 0 {
		fmt.Printf("✓ Code owners added as collaborators: %s\n", strings.Join(result.AddedCollaborators, ", "))
	}
	if len(result.CreatedLabels) > 0 {
		fmt.Printf("✓ Labels created: %s\n", strings.Join(result.CreatedLabels, ", "))
	}
	if result.WebhookRegistered {
		fmt.Println("✓ Build webhook registered")
	}
	if result.ProtectionApplied {
		fmt.Println("✓ Default branch protected")
	}
	if len(result.SeededFiles) > 0 {
		fmt.Printf("✓ Starter files added: %s\n", strings.Join(result.SeededFiles, ", "))
	}

	for _, stepErr := range result.Errors {
		fmt.Printf("❌ %s: %s\n", stepErr.Step, stepErr.Message)
	}

	if result.Succeeded() {
		fmt.Println("\n✅ Repository fully configured.")
	} else {
		fmt.Printf("\n⚠️  Provisioning completed with %d failed step(s). See errors above.\n", len(result.Errors))
	}
}
