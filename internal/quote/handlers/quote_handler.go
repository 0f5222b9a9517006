package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	freight "carreto-freight-api/internal/freight/models"
	"carreto-freight-api/internal/freight/repositories"
	notifications "carreto-freight-api/internal/notifications/services"
	"carreto-freight-api/internal/quote/models"
	"carreto-freight-api/internal/quote/services"
	"carreto-freight-api/internal/session"
	"carreto-freight-api/pkg/gmaps"
	"carreto-freight-api/pkg/middleware"
	"carreto-freight-api/pkg/response"
	"carreto-freight-api/pkg/sms"
)

// QuoteHandler drives the quote wizard over HTTP. Every route operates
// on the session's single current draft.
type QuoteHandler struct {
	geocoder *gmaps.Client
	texter   *sms.Sender
	push     *notifications.PushService
	archive  *repositories.JobRepository
	logger   *slog.Logger
}

// NewQuoteHandler creates a new quote handler. All collaborators besides
// the logger are optional.
func NewQuoteHandler(geocoder *gmaps.Client, texter *sms.Sender, push *notifications.PushService, archive *repositories.JobRepository, logger *slog.Logger) *QuoteHandler {
	return &QuoteHandler{
		geocoder: geocoder,
		texter:   texter,
		push:     push,
		archive:  archive,
		logger:   logger,
	}
}

// updateRequest extends the wizard update with place IDs the handler
// resolves to addresses and coordinates before applying.
type updateRequest struct {
	services.Update
	PickupPlaceID *string `json:"pickup_place_id"`
	DestPlaceID   *string `json:"dest_place_id"`
}

type startRequest struct {
	PickupAddress string `json:"pickup_address"`
}

// StartQuote godoc
//
//	@Summary		Start a fresh quote draft
//	@Description	Discards any draft in progress and opens a new one at step 1, optionally pre-filled with a pickup address
//	@Tags			quotes
//	@Accept			json
//	@Produce		json
//	@Param			request	body		startRequest	false	"Optional initial pickup address"
//	@Success		201	{object}	models.Draft
//	@Router			/quotes [post]
func (h *QuoteHandler) StartQuote(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if r.Body != nil {
		// Body is optional
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	s := session.FromContext(r.Context())
	draft := s.Wizard.Reset()
	if req.PickupAddress != "" {
		draft, _ = s.Wizard.Apply(r.Context(), services.Update{PickupAddress: &req.PickupAddress})
	}
	response.Created(w, draft)
}

// GetCurrent godoc
//
//	@Summary	Current draft snapshot
//	@Tags		quotes
//	@Produce	json
//	@Success	200	{object}	models.Draft
//	@Router		/quotes/current [get]
func (h *QuoteHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	response.Success(w, s.Wizard.Snapshot())
}

// UpdateCurrent godoc
//
//	@Summary		Update draft fields
//	@Description	Partial update; addresses may be given as Google place IDs which are resolved server-side. The price quote is recomputed before the response is written.
//	@Tags			quotes
//	@Accept			json
//	@Produce		json
//	@Param			request	body		handlers.updateRequest	true	"Fields to change"
//	@Success		200		{object}	models.Draft
//	@Failure		409		{object}	response.Response	"Draft already submitted"
//	@Router			/quotes/current [patch]
func (h *QuoteHandler) UpdateCurrent(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, response.ValidationError("body", "invalid request format"))
		return
	}

	h.resolvePlaces(r.Context(), &req)

	s := session.FromContext(r.Context())
	draft, err := s.Wizard.Apply(r.Context(), req.Update)
	if err != nil {
		response.Conflict(w, response.ValidationError("draft", err.Error()))
		return
	}
	response.Success(w, draft)
}

// resolvePlaces turns place IDs into addresses and coordinates. Lookup
// failures leave the typed text as-is with no coordinates, so the quote
// simply stays pending.
func (h *QuoteHandler) resolvePlaces(ctx context.Context, req *updateRequest) {
	if h.geocoder == nil {
		return
	}

	if req.PickupPlaceID != nil && req.DestPlaceID != nil {
		pickup, dest, err := h.geocoder.ResolvePair(ctx, *req.PickupPlaceID, *req.DestPlaceID)
		if err != nil {
			h.logger.Warn("place pair resolution failed", slog.String("error", err.Error()))
			return
		}
		req.PickupAddress = &pickup.FormattedAddress
		req.PickupLocation = &pickup.Location
		req.Address = &dest.FormattedAddress
		req.DestLocation = &dest.Location
		return
	}
	if req.PickupPlaceID != nil {
		if resolved, err := h.geocoder.Resolve(ctx, *req.PickupPlaceID); err != nil {
			h.logger.Warn("pickup place resolution failed", slog.String("error", err.Error()))
		} else {
			req.PickupAddress = &resolved.FormattedAddress
			req.PickupLocation = &resolved.Location
		}
	}
	if req.DestPlaceID != nil {
		if resolved, err := h.geocoder.Resolve(ctx, *req.DestPlaceID); err != nil {
			h.logger.Warn("destination place resolution failed", slog.String("error", err.Error()))
		} else {
			req.Address = &resolved.FormattedAddress
			req.DestLocation = &resolved.Location
		}
	}
}

// DiscardCurrent godoc
//
//	@Summary	Abandon the current draft
//	@Tags		quotes
//	@Success	204
//	@Router		/quotes/current [delete]
func (h *QuoteHandler) DiscardCurrent(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	s.Wizard.Reset()
	response.NoContent(w)
}

// SuggestAddresses godoc
//
//	@Summary	Autocomplete address predictions
//	@Tags		quotes
//	@Produce	json
//	@Param		input	query	string	true	"Partial address or CEP"
//	@Success	200	{array}	gmaps.Prediction
//	@Failure	503	{object}	response.Response	"Geocoding not configured"
//	@Router		/quotes/addresses [get]
func (h *QuoteHandler) SuggestAddresses(w http.ResponseWriter, r *http.Request) {
	if h.geocoder == nil {
		response.ServiceUnavailable(w, "address lookup is not configured")
		return
	}
	input := r.URL.Query().Get("input")
	if input == "" {
		response.BadRequest(w, response.ValidationError("input", "input is required"))
		return
	}

	predictions, err := h.geocoder.Predict(r.Context(), input)
	if err != nil {
		h.logger.Warn("address prediction failed", slog.String("error", err.Error()))
		response.Success(w, []gmaps.Prediction{})
		return
	}
	response.Success(w, predictions)
}

// LocateAddress godoc
//
//	@Summary		Resolve coordinates to the nearest address
//	@Description	Backs the "use my current location" shortcut on the route step
//	@Tags			quotes
//	@Produce		json
//	@Param			lat	query	number	true	"Latitude"
//	@Param			lng	query	number	true	"Longitude"
//	@Success		200	{object}	gmaps.ResolvedAddress
//	@Failure		503	{object}	response.Response	"Geocoding not configured"
//	@Router			/quotes/locate [get]
func (h *QuoteHandler) LocateAddress(w http.ResponseWriter, r *http.Request) {
	if h.geocoder == nil {
		response.ServiceUnavailable(w, "address lookup is not configured")
		return
	}

	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if errLat != nil || errLng != nil {
		response.BadRequest(w, response.ValidationError("coordinates", "lat and lng are required"))
		return
	}

	resolved, err := h.geocoder.ReverseGeocode(r.Context(), gmaps.Location{Latitude: lat, Longitude: lng})
	if err != nil {
		h.logger.Warn("reverse geocoding failed", slog.String("error", err.Error()))
		response.NotFound(w, response.ValidationError("coordinates", "no address found"))
		return
	}
	response.Success(w, resolved)
}

// Next godoc
//
//	@Summary		Advance the wizard one step
//	@Description	Step 1 requires both addresses and a resolved route distance
//	@Tags			quotes
//	@Produce		json
//	@Success		200	{object}	models.Draft
//	@Failure		422	{object}	response.Response	"Step gate not satisfied"
//	@Router			/quotes/current/next [post]
func (h *QuoteHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, func(wz *services.Wizard) (models.Draft, error) { return wz.Next() })
}

// Back godoc
//
//	@Summary	Go back one step
//	@Tags		quotes
//	@Produce	json
//	@Success	200	{object}	models.Draft
//	@Router		/quotes/current/back [post]
func (h *QuoteHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, func(wz *services.Wizard) (models.Draft, error) { return wz.Back() })
}

// Submit godoc
//
//	@Summary		Submit the draft for confirmation
//	@Description	Only valid from the review step; locks the draft against edits
//	@Tags			quotes
//	@Produce		json
//	@Success		200	{object}	models.Draft
//	@Failure		422	{object}	response.Response
//	@Router			/quotes/current/submit [post]
func (h *QuoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, func(wz *services.Wizard) (models.Draft, error) { return wz.Submit() })
}

// Edit godoc
//
//	@Summary	Reopen a submitted draft at the review step
//	@Tags		quotes
//	@Produce	json
//	@Success	200	{object}	models.Draft
//	@Failure	422	{object}	response.Response
//	@Router		/quotes/current/edit [post]
func (h *QuoteHandler) Edit(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, func(wz *services.Wizard) (models.Draft, error) { return wz.Edit() })
}

func (h *QuoteHandler) step(w http.ResponseWriter, r *http.Request, fn func(*services.Wizard) (models.Draft, error)) {
	s := session.FromContext(r.Context())
	draft, err := fn(s.Wizard)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadySubmitted):
			response.Conflict(w, response.ValidationError("draft", err.Error()))
		default:
			response.UnprocessableEntity(w, response.ValidationError("draft", err.Error()))
		}
		return
	}
	response.Success(w, draft)
}

type finalizeRequest struct {
	Phone string `json:"phone"`
	// Destination is where the client navigates after booking
	// ("dashboard" or "home"). The booking itself is identical either
	// way; it is echoed back for the client to act on.
	Destination string `json:"destination"`
}

type finalizeResponse struct {
	Job         *freight.FreightJob `json:"job"`
	Destination string              `json:"destination"`
}

// Finalize godoc
//
//	@Summary		Book the submitted draft as a job
//	@Description	Converts the draft into a pending job at the front of the queue, then fires best-effort booking SMS and driver push.
//	@Tags			quotes
//	@Accept			json
//	@Produce		json
//	@Param			request	body		finalizeRequest	false	"Optional contact phone and post-booking destination"
//	@Success		201		{object}	finalizeResponse
//	@Failure		422		{object}	response.Response	"Draft not submitted yet"
//	@Router			/quotes/current/finalize [post]
func (h *QuoteHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	var req finalizeRequest
	if r.Body != nil {
		// Body is optional
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	s := session.FromContext(r.Context())
	clientName := ""
	if claims := middleware.GetClaims(r.Context()); claims != nil {
		clientName = claims.Name
	}

	timeSlot := s.Wizard.Snapshot().TimeSlot
	job, err := s.Wizard.Finalize(clientName)
	if err != nil {
		response.UnprocessableEntity(w, response.ValidationError("draft", err.Error()))
		return
	}

	s.Lock()
	s.AppendJob(job)
	s.Unlock()

	h.afterBooking(r.Context(), req.Phone, timeSlot, job)

	destination := req.Destination
	if destination != "home" {
		destination = "dashboard"
	}
	response.Created(w, finalizeResponse{Job: job, Destination: destination})
}

// afterBooking runs the best-effort side effects of a confirmed booking:
// archive row, confirmation SMS and driver push. None of them can fail
// the booking.
func (h *QuoteHandler) afterBooking(ctx context.Context, phone, timeSlot string, job *freight.FreightJob) {
	if h.archive != nil {
		if err := h.archive.Archive(ctx, job); err != nil {
			h.logger.Warn("job archive failed", slog.String("job_id", job.ID), slog.String("error", err.Error()))
		}
	}
	if h.texter != nil && phone != "" {
		if err := h.texter.SendBookingConfirmation(phone, job.ID, job.Price, timeSlot); err != nil {
			h.logger.Warn("booking sms failed", slog.String("job_id", job.ID), slog.String("error", err.Error()))
		}
	}
	if h.push != nil {
		h.push.NotifyNewJob(ctx, job)
	}
}
