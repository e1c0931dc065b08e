package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/pos-backoffice/internal/app"
	"github.com/MKhiriev/pos-backoffice/internal/logger"
	"github.com/MKhiriev/pos-backoffice/internal/service"
)

type errorResponse struct {
	target  error
	status  int
	message string
}

// errorResponses is checked in order; more specific errors come first.
var errorResponses = []errorResponse{
	{service.ErrPasswordTooShort, http.StatusBadRequest, app.MsgPasswordTooShort},
	{service.ErrRoleMismatch, http.StatusBadRequest, app.MsgRoleMismatch},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},

	{service.ErrInvalidCredentials, http.StatusUnauthorized, app.MsgInvalidCredentials},
	{service.ErrTokenIsExpired, http.StatusUnauthorized, app.MsgTokenIsExpired},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	{service.ErrNoUserID, http.StatusUnauthorized, app.MsgNoUserIDProvided},

	{service.ErrAccountInactive, http.StatusForbidden, app.MsgAccountInactive},
	{service.ErrSelfDeactivation, http.StatusForbidden, app.MsgSelfDeactivation},
	{service.ErrAdminRequired, http.StatusForbidden, app.MsgAdminRequired},

	{service.ErrUserNotFound, http.StatusNotFound, app.MsgUserNotFound},
	{service.ErrUserAlreadyExists, http.StatusConflict, app.MsgUserAlreadyExists},
}

func statusFromError(err error) (int, string) {
	for _, resp := range errorResponses {
		if errors.Is(err, resp.target) {
			return resp.status, resp.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeError logs err and answers with its mapped status and message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Info().Err(err).Int("status", status).Msg("request rejected")
	}

	http.Error(w, message, status)
}
