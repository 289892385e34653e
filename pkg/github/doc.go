// Package github provides GitHub repository provisioning functionality for
// repocreator. It wraps the GitHub REST API behind an APIClient interface and
// implements the ordered, best-effort provisioning workflow that creates a
// repository, grants team or code-owner access, creates labels, registers the
// build webhook, protects the default branch, and seeds starter files.
//
// The package includes:
// - APIClient interface for GitHub API operations
// - Provisioner implementing the sequential provisioning workflow
// - RepositoryConfig model with validation and YAML loading
// - Structured error types for GitHub API failures
package github
