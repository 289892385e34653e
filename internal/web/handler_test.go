package web

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsivaseshu/ghec-to-githubcloud/pkg/github"
)

// stubProvisioner records the config it was called with and returns a canned
// result.
type stubProvisioner struct {
	config github.RepositoryConfig
	result *github.ProvisioningResult
	called bool
}

func (s *stubProvisioner) Provision(config github.RepositoryConfig) *github.ProvisioningResult {
	s.called = true
	s.config = config
	return s.result
}

func newTestHandler(t *testing.T, provisioner *stubProvisioner) (*Handler, string) {
	t.Helper()
	auditPath := filepath.Join(t.TempDir(), "repo_audit.log")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(provisioner, "acme", auditPath, logger), auditPath
}

func postForm(t *testing.T, h *Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	RegisterRoutes(mux, h)

	req := httptest.NewRequest("POST", "/provision", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Form(t *testing.T) {
	h, _ := newTestHandler(t, &stubProvisioner{})

	mux := http.NewServeMux()
	RegisterRoutes(mux, h)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "acme")
	assert.Contains(t, rec.Body.String(), "repo_name")
}

func TestHandler_FormRejectsOtherPaths(t *testing.T) {
	h, _ := newTestHandler(t, &stubProvisioner{})

	mux := http.NewServeMux()
	RegisterRoutes(mux, h)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/unknown", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Provision(t *testing.T) {
	provisioner := &stubProvisioner{
		result: &github.ProvisioningResult{
			RepositoryURL:     "https://github.com/acme/widget",
			AssignedTeams:     []string{"core"},
			CreatedLabels:     []string{"bug"},
			WebhookRegistered: true,
		},
	}
	h, auditPath := newTestHandler(t, provisioner)

	rec := postForm(t, h, url.Values{
		"org_name":       {"acme"},
		"repo_name":      {"widget"},
		"description":    {"A widget service"},
		"visibility":     {"private"},
		"category":       {"normal"},
		"region":         {"china"},
		"topics":         {"go, tooling"},
		"team_slugs":     {"core"},
		"labels":         {"bug:d73a4a"},
		"add_cloudbuild": {"on"},
		"protect_branch": {"on"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, provisioner.called)

	assert.Equal(t, "widget", provisioner.config.Name)
	assert.Equal(t, "acme", provisioner.config.Organization)
	assert.Equal(t, github.RegionChina, provisioner.config.Region)
	assert.Equal(t, []string{"go", "tooling"}, provisioner.config.Topics)
	require.Len(t, provisioner.config.Teams, 1)
	assert.Equal(t, github.PermissionPush, provisioner.config.Teams[0].Permission)
	assert.True(t, provisioner.config.EnableBuildIntegration)
	require.NotNil(t, provisioner.config.BranchProtection)

	body := rec.Body.String()
	assert.Contains(t, body, "acme/widget")
	assert.Contains(t, body, "https://github.com/acme/widget")
	assert.Contains(t, body, "Team assigned: core")

	// Each run is recorded in the audit log.
	data, err := os.ReadFile(auditPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "widget | acme")
	assert.Contains(t, string(data), "| china |")
	assert.Contains(t, string(data), "| ok")
}

func TestHandler_Provision_DefaultOrganization(t *testing.T) {
	provisioner := &stubProvisioner{result: &github.ProvisioningResult{}}
	h, _ := newTestHandler(t, provisioner)

	rec := postForm(t, h, url.Values{"repo_name": {"widget"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "acme", provisioner.config.Organization)
}

func TestHandler_Provision_InvalidLabelsRerendersForm(t *testing.T) {
	provisioner := &stubProvisioner{result: &github.ProvisioningResult{}}
	h, _ := newTestHandler(t, provisioner)

	rec := postForm(t, h, url.Values{
		"repo_name": {"widget"},
		"labels":    {"bug"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, provisioner.called)
	assert.Contains(t, rec.Body.String(), "name:color")
}

func TestHandler_Provision_FailedStepsShownInResult(t *testing.T) {
	provisioner := &stubProvisioner{
		result: &github.ProvisioningResult{
			RepositoryURL: "https://github.com/acme/widget",
			Errors: []github.StepError{
				{Step: github.StepAssignTeams, Message: "Team not found"},
			},
		},
	}
	h, auditPath := newTestHandler(t, provisioner)

	rec := postForm(t, h, url.Values{"repo_name": {"widget"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "assign-teams: Team not found")

	data, err := os.ReadFile(auditPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "| failed")
}
