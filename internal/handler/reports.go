package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Dan9191/tutor-service/internal/export"
	"github.com/Dan9191/tutor-service/internal/locale"
	"github.com/Dan9191/tutor-service/internal/service"
)

// PaymentStatus lists overdue and upcoming students
func (h *Handler) PaymentStatus(w http.ResponseWriter, r *http.Request) {
	var window *int
	if raw := r.URL.Query().Get("reminder_days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			h.respondMessage(w, r, http.StatusBadRequest, locale.MsgInvalidRequest)
			return
		}
		window = &days
	}

	report, err := h.svc.PaymentStatuses(r.Context(), window)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *Handler) AvailableMonths(w http.ResponseWriter, r *http.Request) {
	months, err := h.svc.AvailableMonths(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, months)
}

func (h *Handler) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.MonthlySummary(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *Handler) PaymentReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := h.svc.PaymentReport(r.Context(), q.Get("month"), q.Get("search"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *Handler) ExpenseReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := h.svc.ExpenseReport(r.Context(), q.Get("month"), q.Get("search"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// ExportPayments streams the payment report as xlsx, pdf or SpreadsheetML
func (h *Handler) ExportPayments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format, err := export.ParseFormat(q.Get("format"))
	if err != nil {
		h.respondMessage(w, r, http.StatusBadRequest, locale.MsgInvalidRequest)
		return
	}

	report, err := h.svc.PaymentReport(r.Context(), q.Get("month"), q.Get("search"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var buf bytes.Buffer
	table := export.Table{
		Title:    fmt.Sprintf("Payments %s", report.Month),
		Payments: report.Payments,
		Total:    report.Total,
	}
	if err := export.Write(&buf, format, table); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payments-%s.%s"`, report.Month, format))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

// Analyze returns a generated commentary on a month
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var in service.MonthInput
	if !h.decode(w, r, &in) {
		return
	}
	analysis, err := h.svc.Analyze(r.Context(), in.Month)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, analysis)
}

// Generate proxies a raw prompt to the text generator
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var in service.PromptInput
	if !h.decode(w, r, &in) {
		return
	}
	text, err := h.svc.Generate(r.Context(), in.Prompt)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"text": text})
}
