package httpx

import (
	"net/http"

	"github.com/veritas-cms/veritas-cms/internal/shared"
)

// RespondError maps a classified application error to an HTTP failure
// envelope. Unclassified errors collapse to a generic 500 so internal
// detail never reaches the client.
func RespondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch shared.KindOf(err) {
	case shared.KindValidation:
		status = http.StatusBadRequest
	case shared.KindAuthentication:
		status = http.StatusUnauthorized
	case shared.KindAuthorization:
		status = http.StatusForbidden
	case shared.KindConflict:
		status = http.StatusConflict
	case shared.KindNotFound:
		status = http.StatusNotFound
	}
	Fail(w, status, shared.UserSafeMessage(err))
}
