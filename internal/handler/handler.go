package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/tutor-service/internal/integrations/gemini"
	"github.com/Dan9191/tutor-service/internal/locale"
	"github.com/Dan9191/tutor-service/internal/paystatus"
	"github.com/Dan9191/tutor-service/internal/service"
)

type Handler struct {
	svc     *service.Service
	catalog *locale.Catalog
	log     *logrus.Logger
}

func NewHandler(svc *service.Service, catalog *locale.Catalog, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, catalog: catalog, log: log}
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// respondMessage writes a localized error message
func (h *Handler) respondMessage(w http.ResponseWriter, r *http.Request, status int, key string) {
	trans := h.catalog.Translator(r.Header.Get("Accept-Language"))
	respondJSON(w, status, errorResponse{Error: h.catalog.Message(trans, key)})
}

// respondError maps a service error onto a status code and localized message
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	trans := h.catalog.Translator(r.Header.Get("Accept-Language"))

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		respondJSON(w, http.StatusBadRequest, errorResponse{
			Error:  h.catalog.Message(trans, locale.MsgValidationFailed),
			Fields: h.catalog.Fields(trans, verr.Errs),
		})
		return
	}

	var upstream *gemini.UpstreamError
	status, key := http.StatusInternalServerError, locale.MsgInternal
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		status, key = http.StatusUnauthorized, locale.MsgUnauthorized
	case errors.Is(err, service.ErrInvalidCredentials):
		status, key = http.StatusUnauthorized, locale.MsgInvalidCredentials
	case errors.Is(err, service.ErrAccountNotConfirmed):
		status, key = http.StatusForbidden, locale.MsgAccountNotConfirmed
	case errors.Is(err, service.ErrPhoneTaken):
		status, key = http.StatusConflict, locale.MsgPhoneTaken
	case errors.Is(err, service.ErrInvalidGuestCode):
		status, key = http.StatusUnauthorized, locale.MsgInvalidGuestCode
	case errors.Is(err, service.ErrGuestSessionRevoked):
		status, key = http.StatusUnauthorized, locale.MsgGuestRevoked
	case errors.Is(err, service.ErrGuestForbidden):
		status, key = http.StatusForbidden, locale.MsgGuestReadOnly
	case errors.Is(err, service.ErrNotFound):
		status, key = http.StatusNotFound, locale.MsgNotFound
	case errors.Is(err, service.ErrGroupExists):
		status, key = http.StatusConflict, locale.MsgGroupExists
	case errors.Is(err, service.ErrLastGroup):
		status, key = http.StatusConflict, locale.MsgLastGroup
	case errors.Is(err, service.ErrNoDataForAnalysis):
		status, key = http.StatusUnprocessableEntity, locale.MsgNoAnalysisData
	case errors.Is(err, paystatus.ErrNegativeWindow):
		status, key = http.StatusBadRequest, locale.MsgInvalidRequest
	case errors.Is(err, gemini.ErrMissingAPIKey):
		status, key = http.StatusServiceUnavailable, locale.MsgAIMissingKey
	case errors.As(err, &upstream):
		status, key = http.StatusBadGateway, locale.MsgAIUpstream
	case errors.Is(err, gemini.ErrEmptyCompletion):
		status, key = http.StatusBadGateway, locale.MsgAIEmpty
	}

	if status >= http.StatusInternalServerError {
		h.log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	}
	respondJSON(w, status, errorResponse{Error: h.catalog.Message(trans, key)})
}

// decode reads a JSON body into v, answering 400 on malformed input
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.respondMessage(w, r, http.StatusBadRequest, locale.MsgInvalidRequest)
		return false
	}
	return true
}

// pathID parses the {id} route variable
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.respondMessage(w, r, http.StatusBadRequest, locale.MsgInvalidRequest)
		return uuid.Nil, false
	}
	return id, true
}
