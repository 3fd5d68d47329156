package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/constructsafe/constructsafe/pkg/domain/model"
	"github.com/constructsafe/constructsafe/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
)

type projectResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toProjectResponse(p *model.Project) projectResponse {
	return projectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status.String(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	project, err := s.uc.CreateProject(r.Context(), req.Name, req.Description)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, toProjectResponse(project))
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.uc.ListProjects(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp := struct {
		Projects []projectResponse `json:"projects"`
	}{
		Projects: make([]projectResponse, len(projects)),
	}
	for i, p := range projects {
		resp.Projects[i] = toProjectResponse(p)
	}

	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "projectID")
	if err != nil {
		respondError(w, r, err)
		return
	}

	project, err := s.uc.GetProject(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toProjectResponse(project))
}

func (s *Server) updateProjectStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "projectID")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	project, err := s.uc.UpdateProjectStatus(r.Context(), id, req.Status)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toProjectResponse(project))
}

// pathID parses a positive int64 URL parameter
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, goerr.Wrap(usecase.ErrInvalidInput, "invalid ID in URL", goerr.V("param", name), goerr.V("value", raw))
	}
	return id, nil
}
