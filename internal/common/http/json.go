package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "funnelzip-demo/internal/common/errors"
)

const maxBodyBytes = 64 << 10

// DecodeJSON reads a bounded JSON body into v. An empty body leaves v
// untouched. Errors are INVALID_REQUEST StandardErrors.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.NewInvalidRequestError("malformed JSON body: " + err.Error())
	}
	return nil
}
