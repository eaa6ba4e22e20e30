package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/NICOL-XPDK/weba-backend/internal/models"
	"github.com/NICOL-XPDK/weba-backend/internal/services"
	"github.com/NICOL-XPDK/weba-backend/pkg/clientip"
)

// SubmitRequest represents the body of a submit request. The same fields are
// accepted as a urlencoded form.
type SubmitRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// SubmissionHandler serves the feedback submit and listing endpoints.
type SubmissionHandler struct {
	svc *services.SubmissionService
	log *zap.SugaredLogger
}

func NewSubmissionHandler(svc *services.SubmissionService, log *zap.SugaredLogger) *SubmissionHandler {
	return &SubmissionHandler{svc: svc, log: log}
}

// Submit handles POST /api/submit. Validation failures return 400; storage
// failures are reported inside a 200 envelope with success=false.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	req, err := parseSubmitRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.SubmitResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	in := services.SubmitInput{
		Name:      req.Name,
		Email:     req.Email,
		Category:  req.Category,
		Message:   req.Message,
		UserAgent: r.UserAgent(),
		IP:        clientip.FromRequest(r),
	}

	resp, err := h.svc.Submit(r.Context(), in)
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusBadRequest, models.SubmitResponse{
				Success: false,
				Message: ve.Message,
			})
			return
		}
		h.log.Errorf("Unexpected error handling submission: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.SubmitResponse{
			Success: false,
			Message: "Internal server error",
		})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// List handles GET /api/submissions. An absent or non-numeric limit falls
// back to the default of 10.
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := services.DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	subs, err := h.svc.List(r.Context(), limit)
	if err != nil {
		h.log.Errorf("Failed to fetch submissions: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ListResponse{
			Success: false,
			Message: "Failed to fetch submissions",
			Data:    []models.Submission{},
			Count:   0,
		})
		return
	}

	writeJSON(w, http.StatusOK, models.ListResponse{
		Success: true,
		Data:    subs,
		Count:   len(subs),
	})
}

// parseSubmitRequest accepts either a JSON body or a urlencoded/multipart
// form, matching what landing pages actually send.
func parseSubmitRequest(r *http.Request) (*SubmitRequest, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "application/json") {
		var req SubmitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, err
		}
		return &req, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &SubmitRequest{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Category: r.FormValue("category"),
		Message:  r.FormValue("message"),
	}, nil
}
