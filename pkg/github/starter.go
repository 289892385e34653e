package github

import (
	"fmt"
	"strings"
)

// starterFile is one file seeded into a freshly created repository.
type starterFile struct {
	Path    string
	Message string
	Content []byte
}

// starterFiles builds the list of starter files requested by the
// configuration, in the order they are committed.
func starterFiles(config RepositoryConfig) []starterFile {
	var files []starterFile

	if config.StarterFiles.Readme {
		files = append(files, starterFile{
			Path:    "README.md",
			Message: "Add README.md file",
			Content: []byte(readmeContent(config)),
		})
	}

	if config.StarterFiles.CodeOwners && len(config.CodeOwners) > 0 {
		files = append(files, starterFile{
			Path:    ".github/CODEOWNERS",
			Message: "Add CODEOWNERS file",
			Content: []byte(codeownersContent(config.CodeOwners)),
		})
	}

	if config.StarterFiles.CloudBuild {
		files = append(files, starterFile{
			Path:    "cloudbuild.yaml",
			Message: "Add default cloudbuild.yaml",
			Content: []byte(cloudBuildContent()),
		})
	}

	if config.StarterFiles.License {
		files = append(files, starterFile{
			Path:    "LICENSE",
			Message: "Add LICENSE file",
			Content: []byte(licenseContent()),
		})
	}

	if config.StarterFiles.IssueTemplate {
		files = append(files, starterFile{
			Path:    ".github/ISSUE_TEMPLATE/bug_report.md",
			Message: "Add default bug report issue template",
			Content: []byte(issueTemplateContent()),
		})
	}

	if config.StarterFiles.PullRequestTemplate {
		files = append(files, starterFile{
			Path:    ".github/PULL_REQUEST_TEMPLATE.md",
			Message: "Add default pull request template",
			Content: []byte(pullRequestTemplateContent()),
		})
	}

	if config.StarterFiles.Security {
		files = append(files, starterFile{
			Path:    ".github/SECURITY.md",
			Message: "Add SECURITY.md file",
			Content: []byte(securityContent()),
		})
	}

	if config.StarterFiles.Contributing {
		files = append(files, starterFile{
			Path:    ".github/CONTRIBUTING.md",
			Message: "Add CONTRIBUTING.md file",
			Content: []byte(contributingContent()),
		})
	}

	if config.StarterFiles.Tekton {
		files = append(files, starterFile{
			Path:    "tekton.yaml",
			Message: "Add Tekton pipeline template",
			Content: []byte(tektonContent()),
		})
	}

	return files
}

func readmeContent(config RepositoryConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", config.Name)
	if config.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", config.Description)
	}
	if config.Region != "" {
		fmt.Fprintf(&b, "\n## Region\n%s\n", config.Region)
	}
	if config.Category != "" && config.Category != CategoryNormal {
		fmt.Fprintf(&b, "\n## Category\n%s\n", config.Category)
	}
	return b.String()
}

// codeownersContent makes every code owner an owner of the whole tree.
func codeownersContent(owners []string) string {
	handles := make([]string, 0, len(owners))
	for _, owner := range owners {
		owner = strings.TrimSpace(owner)
		if owner == "" {
			continue
		}
		handles = append(handles, "@"+strings.TrimPrefix(owner, "@"))
	}
	return "* " + strings.Join(handles, " ") + "\n"
}

func cloudBuildContent() string {
	return `steps:
  - name: 'gcr.io/cloud-builders/docker'
    args: ['build', '-t', 'gcr.io/$PROJECT_ID/$REPO_NAME:$COMMIT_SHA', '.']
  - name: 'gcr.io/cloud-builders/docker'
    args: ['push', 'gcr.io/$PROJECT_ID/$REPO_NAME:$COMMIT_SHA']

images:
  - 'gcr.io/$PROJECT_ID/$REPO_NAME:$COMMIT_SHA'
`
}

// licenseContent is a placeholder the repository owners replace with the
// company license text.
func licenseContent() string {
	return `MIT License

Copyright (c) 2025 <Your Company>

Permission is hereby granted, free of charge, to any person obtaining a copy...
`
}

func issueTemplateContent() string {
	return `---
name: Bug report
about: Create a report to help us improve
title: ''
labels: bug
assignees: ''

---

**Describe the bug**
A clear and concise description of what the bug is.

**To Reproduce**
Steps to reproduce the behavior:
1. Go to '...'
`
}

func pullRequestTemplateContent() string {
	return `# Pull Request

## Description
Please include a summary of the change and which issue is fixed.

## Type of change
- [ ] Bug fix
- [ ] New feature
- [ ] Breaking change
- [ ] Documentation update

## Checklist
- [ ] My code follows the style guidelines
- [ ] I have performed a self-review
- [ ] I have commented my code
- [ ] I have made corresponding changes to the documentation
- [ ] My changes generate no new warnings
`
}

func securityContent() string {
	return `# Security Policy

## Reporting a Vulnerability
Please report security issues to security@example.com.
`
}

func contributingContent() string {
	return `# Contributing

Thank you for considering contributing!

## How to contribute
- Fork the repo
- Create a feature branch
- Submit a pull request
`
}

func tektonContent() string {
	return `apiVersion: tekton.dev/v1beta1
kind: Pipeline
metadata:
  name: sample-pipeline
spec:
  tasks:
    - name: echo
      taskSpec:
        steps:
          - name: echo
            image: ubuntu
            script: |
              echo Hello Tekton!
`
}
