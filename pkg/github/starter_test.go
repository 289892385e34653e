package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStarterFiles_AllEnabled(t *testing.T) {
	config := RepositoryConfig{
		Name:        "widget",
		Description: "A widget service",
		Category:    CategorySox,
		CodeOwners:  []string{"alice", "bob"},
		StarterFiles: StarterFiles{
			Readme:              true,
			CodeOwners:          true,
			CloudBuild:          true,
			License:             true,
			IssueTemplate:       true,
			PullRequestTemplate: true,
			Security:            true,
			Contributing:        true,
			Tekton:              true,
		},
	}

	files := starterFiles(config)
	require.Len(t, files, 9)

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	assert.Equal(t, []string{
		"README.md",
		".github/CODEOWNERS",
		"cloudbuild.yaml",
		"LICENSE",
		".github/ISSUE_TEMPLATE/bug_report.md",
		".github/PULL_REQUEST_TEMPLATE.md",
		".github/SECURITY.md",
		".github/CONTRIBUTING.md",
		"tekton.yaml",
	}, paths)

	for _, f := range files {
		assert.NotEmpty(t, f.Message)
		assert.NotEmpty(t, f.Content)
	}
}

func TestStarterFiles_NoneEnabled(t *testing.T) {
	assert.Empty(t, starterFiles(RepositoryConfig{Name: "widget"}))
}

func TestStarterFiles_Any(t *testing.T) {
	assert.False(t, StarterFiles{}.Any())
	assert.True(t, StarterFiles{Tekton: true}.Any())
	assert.True(t, StarterFiles{Security: true}.Any())
}

func TestStarterFiles_CodeOwnersSkippedWithoutOwners(t *testing.T) {
	config := RepositoryConfig{
		Name:         "widget",
		StarterFiles: StarterFiles{CodeOwners: true},
	}

	assert.Empty(t, starterFiles(config))
}

func TestReadmeContent(t *testing.T) {
	content := readmeContent(RepositoryConfig{
		Name:        "widget",
		Description: "A widget service",
		Region:      RegionChina,
		Category:    CategoryBanking,
	})

	assert.Contains(t, content, "# widget\n")
	assert.Contains(t, content, "A widget service")
	assert.Contains(t, content, "## Region\nchina")
	assert.Contains(t, content, "## Category\nbanking")
}

func TestReadmeContent_Minimal(t *testing.T) {
	content := readmeContent(RepositoryConfig{Name: "widget", Category: CategoryNormal})

	assert.Equal(t, "# widget\n", content)
}

func TestCodeownersContent(t *testing.T) {
	assert.Equal(t, "* @alice @bob\n", codeownersContent([]string{"alice", "bob"}))

	// Leading @ and whitespace are normalized.
	assert.Equal(t, "* @alice\n", codeownersContent([]string{" @alice "}))
}

func TestCloudBuildContent(t *testing.T) {
	content := cloudBuildContent()

	assert.Contains(t, content, "gcr.io/cloud-builders/docker")
	assert.Contains(t, content, "$PROJECT_ID/$REPO_NAME:$COMMIT_SHA")
}

func TestTemplateContents(t *testing.T) {
	assert.Contains(t, licenseContent(), "MIT License")
	assert.Contains(t, issueTemplateContent(), "name: Bug report")
	assert.Contains(t, pullRequestTemplateContent(), "## Checklist")
	assert.Contains(t, securityContent(), "Reporting a Vulnerability")
	assert.Contains(t, contributingContent(), "## How to contribute")
	assert.Contains(t, tektonContent(), "kind: Pipeline")
}
