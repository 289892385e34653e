// Package web implements the web form front end over the provisioning
// workflow. It is a thin adapter: it parses the form into a
// RepositoryConfig and renders the ProvisioningResult; all sequencing lives
// in the Provisioner.
package web

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rsivaseshu/ghec-to-githubcloud/internal/audit"
	"github.com/rsivaseshu/ghec-to-githubcloud/pkg/github"
)

// Provisioner runs the repository provisioning workflow.
type Provisioner interface {
	Provision(config github.RepositoryConfig) *github.ProvisioningResult
}

// Handler serves the repository creation form and runs provisioning on
// submission.
type Handler struct {
	provisioner Provisioner
	defaultOrg  string
	auditPath   string
	logger      *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(provisioner Provisioner, defaultOrg, auditPath string, logger *slog.Logger) *Handler {
	return &Handler{
		provisioner: provisioner,
		defaultOrg:  defaultOrg,
		auditPath:   auditPath,
		logger:      logger,
	}
}

// RegisterRoutes registers the web form routes on the provided mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /{$}", h.Form)
	mux.HandleFunc("POST /provision", h.Provision)
}

// formView is the template data for the form page.
type formView struct {
	DefaultOrg string
	Error      string
}

// resultView is the template data for the result page.
type resultView struct {
	Repository string
	Result     *github.ProvisioningResult
}

// Form renders the repository creation form.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.render(w, "form.html", formView{DefaultOrg: h.defaultOrg}, http.StatusOK)
}

// Provision parses the submitted form, runs the provisioning workflow and
// renders the result page.
func (h *Handler) Provision(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	config, err := h.parseRepositoryForm(r)
	if err != nil {
		h.render(w, "form.html", formView{DefaultOrg: h.defaultOrg, Error: err.Error()}, http.StatusBadRequest)
		return
	}

	result := h.provisioner.Provision(*config)

	h.logger.Info("provisioning finished",
		"repository", config.Name,
		"organization", config.Organization,
		"succeeded", result.Succeeded(),
		"failed_steps", len(result.Errors),
	)

	if err := audit.Append(h.auditPath, audit.Entry{
		Time:         time.Now(),
		Repository:   config.Name,
		Organization: config.Organization,
		Category:     string(config.Category),
		Region:       string(config.Region),
		CodeOwners:   config.CodeOwners,
		Succeeded:    result.Succeeded(),
	}); err != nil {
		h.logger.Error("failed to write audit log", "error", err)
	}

	h.render(w, "result.html", resultView{
		Repository: config.Organization + "/" + config.Name,
		Result:     result,
	}, http.StatusOK)
}

// parseRepositoryForm builds a RepositoryConfig from the submitted form
// fields. Field-level validation beyond parsing is left to the Provisioner.
func (h *Handler) parseRepositoryForm(r *http.Request) (*github.RepositoryConfig, error) {
	config := &github.RepositoryConfig{
		Name:         strings.TrimSpace(r.FormValue("repo_name")),
		Organization: strings.TrimSpace(r.FormValue("org_name")),
		Description:  strings.TrimSpace(r.FormValue("description")),
		Visibility:   github.Visibility(r.FormValue("visibility")),
		Category:     github.Category(r.FormValue("category")),
		Region:       github.Region(r.FormValue("region")),
		Topics:       github.ParseList(r.FormValue("topics")),
		CodeOwners:   github.ParseList(r.FormValue("codeowners")),
		Teams:        github.ParseTeamGrants(r.FormValue("team_slugs"), github.PermissionPush),
	}

	if config.Organization == "" {
		config.Organization = h.defaultOrg
	}

	labels, err := github.ParseLabels(r.FormValue("labels"))
	if err != nil {
		return nil, err
	}
	config.Labels = labels

	config.EnableBuildIntegration = r.FormValue("add_cloudbuild") != ""
	if r.FormValue("protect_branch") != "" {
		config.BranchProtection = github.DefaultBranchProtection()
	}

	config.ApplyDefaults()
	return config, nil
}

func (h *Handler) render(w http.ResponseWriter, name string, data any, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("failed to render page", "template", name, "error", err)
	}
}
