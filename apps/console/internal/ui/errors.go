package ui

import (
	"errors"

	"github.com/lvdund/ueprofiles/apps/console/internal/api"
	"github.com/lvdund/ueprofiles/apps/console/internal/profilesync"
	"github.com/lvdund/ueprofiles/apps/console/internal/store"
	"github.com/lvdund/ueprofiles/pkg/apperr"
)

// ErrorMessage はエラーを分類して表示用の文字列を返す。
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *api.APIError
	var ve *apperr.ValidationError
	switch {
	case errors.Is(err, profilesync.ErrReloadFailed):
		return "saved, but list reload failed: " + err.Error()
	case errors.Is(err, api.ErrNotAuthenticated), errors.Is(err, store.ErrCredentialNotFound):
		return "not logged in"
	case errors.Is(err, api.ErrCircuitOpen):
		return "service unavailable, retry later"
	case api.IsTransport(err):
		return "cannot reach service: " + err.Error()
	case errors.As(err, &apiErr):
		if apiErr.IsUnauthorized() {
			return "session expired or invalid credentials"
		}
		return "rejected by service: " + apiErr.Message
	case errors.As(err, &ve):
		return ve.Field + " " + ve.Message
	case apperr.IsPrecondition(err):
		return "invalid edit: " + err.Error()
	}
	return err.Error()
}
