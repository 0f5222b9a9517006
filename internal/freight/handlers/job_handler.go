package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"carreto-freight-api/internal/freight/models"
	"carreto-freight-api/internal/freight/repositories"
	"carreto-freight-api/internal/freight/services"
	"carreto-freight-api/internal/session"
	"carreto-freight-api/pkg/response"
	"carreto-freight-api/pkg/storage"
)

// JobHandler handles job queue HTTP requests
type JobHandler struct {
	lifecycle *services.LifecycleService
	uploads   *storage.R2Client
	archive   *repositories.JobRepository
	logger    *slog.Logger
}

// NewJobHandler creates a new job handler. uploads and archive are
// optional; the matching endpoints degrade when absent.
func NewJobHandler(lifecycle *services.LifecycleService, uploads *storage.R2Client, archive *repositories.JobRepository, logger *slog.Logger) *JobHandler {
	return &JobHandler{
		lifecycle: lifecycle,
		uploads:   uploads,
		archive:   archive,
		logger:    logger,
	}
}

// ListJobs godoc
//
//	@Summary		List the session's job queue
//	@Description	Returns all jobs in route order, regardless of status
//	@Tags			jobs
//	@Produce		json
//	@Success		200	{array}	models.FreightJob
//	@Router			/jobs [get]
func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	s.Lock()
	defer s.Unlock()
	response.Success(w, s.Jobs())
}

// GetStats godoc
//
//	@Summary		Job queue statistics
//	@Description	Per-status counts plus total earnings over delivered jobs
//	@Tags			jobs
//	@Produce		json
//	@Success		200	{object}	models.Stats
//	@Router			/jobs/stats [get]
func (h *JobHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	s.Lock()
	defer s.Unlock()
	response.Success(w, h.lifecycle.Stats(s.Jobs()))
}

// UpdateStatus godoc
//
//	@Summary		Advance a job through its lifecycle
//	@Description	Allowed transitions: pending→in_transit, pending→canceled, in_transit→delivered, in_transit→canceled
//	@Tags			jobs
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Job ID"
//	@Param			request	body		models.TransitionRequest	true	"Target status"
//	@Success		200		{object}	models.FreightJob
//	@Failure		404		{object}	response.Response	"Unknown job"
//	@Failure		409		{object}	response.Response	"Job already in a terminal status"
//	@Failure		422		{object}	response.Response	"Transition not allowed"
//	@Router			/jobs/{id} [patch]
func (h *JobHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, response.ValidationError("body", "invalid request format"))
		return
	}

	s := session.FromContext(r.Context())
	s.Lock()
	job, err := h.lifecycle.Transition(s.Jobs(), r.PathValue("id"), req.Status)
	s.Unlock()
	if err != nil {
		switch {
		case errors.Is(err, services.ErrJobNotFound):
			response.NotFound(w, response.ValidationError("id", "job not found"))
		case errors.Is(err, services.ErrTerminalStatus):
			response.Conflict(w, response.ValidationError("status", err.Error()))
		default:
			response.UnprocessableEntity(w, response.ValidationError("status", err.Error()))
		}
		return
	}

	if h.archive != nil {
		if err := h.archive.UpdateStatus(r.Context(), job.ID, job.Status); err != nil {
			h.logger.Warn("job archive update failed", slog.String("job_id", job.ID), slog.String("error", err.Error()))
		}
	}

	response.Success(w, job)
}

// History godoc
//
//	@Summary		Recently archived bookings
//	@Description	Reads the persistent archive, not the in-memory session queue
//	@Tags			jobs
//	@Produce		json
//	@Success		200	{array}	models.FreightJob
//	@Failure		503	{object}	response.Response	"No database configured"
//	@Router			/jobs/history [get]
func (h *JobHandler) History(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		response.ServiceUnavailable(w, "job history is not configured")
		return
	}

	jobs, err := h.archive.ListRecent(r.Context(), 50)
	if err != nil {
		h.logger.Error("job history query failed", slog.String("error", err.Error()))
		response.InternalError(w, "failed to load job history")
		return
	}
	response.Success(w, jobs)
}

// UploadPhoto godoc
//
//	@Summary		Attach a cargo photo to a job
//	@Tags			jobs
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id		path		string	true	"Job ID"
//	@Param			photo	formData	file	true	"Image file (jpeg, png, webp)"
//	@Success		200		{object}	models.FreightJob
//	@Failure		404		{object}	response.Response
//	@Failure		503		{object}	response.Response	"Object storage not configured"
//	@Router			/jobs/{id}/photo [post]
func (h *JobHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if h.uploads == nil {
		response.ServiceUnavailable(w, "photo storage is not configured")
		return
	}

	s := session.FromContext(r.Context())
	jobID := r.PathValue("id")

	s.Lock()
	job := services.Find(s.Jobs(), jobID)
	s.Unlock()
	if job == nil {
		response.NotFound(w, response.ValidationError("id", "job not found"))
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		response.BadRequest(w, response.ValidationError("photo", "invalid multipart payload"))
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		response.BadRequest(w, response.ValidationError("photo", "photo file is required"))
		return
	}
	defer file.Close()

	url, err := h.uploads.UploadJobPhoto(r.Context(), jobID, file, header)
	if err != nil {
		h.logger.Error("photo upload failed", slog.String("job_id", jobID), slog.String("error", err.Error()))
		response.InternalError(w, "failed to store photo")
		return
	}

	s.Lock()
	job.PhotoURL = url
	s.Unlock()
	response.Success(w, job)
}
