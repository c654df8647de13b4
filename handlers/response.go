package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/jalad-shrimali/cdr-billing/cdr"
	"github.com/jalad-shrimali/cdr-billing/desk"
	"github.com/jalad-shrimali/cdr-billing/logger"
)

// ErrorBody: {"error":{"code":"...","message":"...","request_id":"..."}}
type ErrorBody struct {
	Error ErrorPayload `json:"error"`
}

type ErrorPayload struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func ok(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func fail(w http.ResponseWriter, r *http.Request, status int, code, message, detail string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorBody{Error: ErrorPayload{
		Code:      code,
		Message:   message,
		Detail:    detail,
		RequestID: logger.RequestID(r.Context()),
	}})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, desk.ErrInvalidCity):
		return http.StatusBadRequest, "city.invalid"
	case errors.Is(err, desk.ErrPositionOutOfRange):
		return http.StatusUnprocessableEntity, "position.out_of_range"
	case errors.Is(err, desk.ErrListEmpty):
		return http.StatusConflict, "list.empty"
	case errors.Is(err, desk.ErrNothingToExport):
		return http.StatusConflict, "export.empty"
	case errors.Is(err, desk.ErrNotFound):
		return http.StatusNotFound, "cdr.not_found"
	case errors.Is(err, cdr.ErrIO):
		return http.StatusInternalServerError, "io.fault"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// reply writes res on success, or maps err and uses res.Status as the message.
func reply(w http.ResponseWriter, r *http.Request, res desk.Result, err error) {
	if err == nil {
		ok(w, r, http.StatusOK, res)
		return
	}
	status, code := statusFor(err)
	msg := res.Status
	if msg == "" {
		msg = http.StatusText(status)
	}
	if status >= http.StatusInternalServerError {
		logger.WithCtx(r.Context()).Error().Err(err).Str("code", code).Msg("request failed")
	}
	fail(w, r, status, code, msg, err.Error())
}
