package handler

import (
	"net/http"

	"github.com/Dan9191/tutor-service/internal/service"
)

// Register handles tutor registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if !h.decode(w, r, &in) {
		return
	}
	user, err := h.svc.Register(r.Context(), in)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

// Login handles tutor authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	if !h.decode(w, r, &in) {
		return
	}
	token, err := h.svc.Login(r.Context(), in)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// GuestLogin exchanges a guest code for a read-only token
func (h *Handler) GuestLogin(w http.ResponseWriter, r *http.Request) {
	var in service.GuestLoginInput
	if !h.decode(w, r, &in) {
		return
	}
	token, err := h.svc.LoginAsGuest(r.Context(), in)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"token": token, "guest": true})
}

// Me returns the profile of the session
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Profile(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UpdateSettings stores the reminder window and digest address
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var in service.SettingsInput
	if !h.decode(w, r, &in) {
		return
	}
	user, err := h.svc.UpdateSettings(r.Context(), in)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// CreateGuestCode issues a new guest code
func (h *Handler) CreateGuestCode(w http.ResponseWriter, r *http.Request) {
	code, err := h.svc.GenerateGuestCode(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"code": code})
}

// RevokeGuestCode clears the guest code
func (h *Handler) RevokeGuestCode(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RevokeGuestCode(r.Context()); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
