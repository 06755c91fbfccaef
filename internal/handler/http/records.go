package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-diary/internal/logger"
	"github.com/MKhiriev/go-diary/internal/utils"
	"github.com/MKhiriev/go-diary/models"
)

// queryRecords serves POST /api/records/query.
func (h *Handler) queryRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID, ok := utils.GetOwnerIDFromContext(ctx)
	if !ok {
		h.writeError(w, r, ErrNoOwnerInContext, "Handler.queryRecords")
		return
	}

	var q models.Query
	if err := h.decodeJSON(w, r, &q); err != nil {
		h.writeError(w, r, err, "Handler.queryRecords")
		return
	}

	page, err := h.services.RecordService.Query(ctx, ownerID, q)
	if err != nil {
		h.writeError(w, r, err, "Handler.queryRecords")
		return
	}
	if page.Records == nil {
		page.Records = []models.Record{}
	}

	if _, err = utils.WriteJSON(w, page, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "Handler.queryRecords").Msg("failed to write response")
	}
}

// modifyRecords serves POST /api/records/modify.
func (h *Handler) modifyRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID, ok := utils.GetOwnerIDFromContext(ctx)
	if !ok {
		h.writeError(w, r, ErrNoOwnerInContext, "Handler.modifyRecords")
		return
	}

	var req models.ModifyRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err, "Handler.modifyRecords")
		return
	}

	result, err := h.services.RecordService.Modify(ctx, ownerID, req)
	if err != nil {
		h.writeError(w, r, err, "Handler.modifyRecords")
		return
	}

	if _, err = utils.WriteJSON(w, result, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "Handler.modifyRecords").Msg("failed to write response")
	}
}

// decodeJSON reads a single JSON document into dst. Numbers in record
// fields are kept as json.Number so integers survive unchanged.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBody))
	decoder.UseNumber()
	if err := decoder.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: limit is %d bytes", ErrRequestTooLarge, tooLarge.Limit)
		}
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}
