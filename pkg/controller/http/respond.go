package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/constructsafe/constructsafe/pkg/domain/model"
	"github.com/constructsafe/constructsafe/pkg/usecase"
	"github.com/constructsafe/constructsafe/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

func respondJSON(w http.ResponseWriter, r *http.Request, statusCode int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(data) //nolint:errcheck // header already committed
}

// respondError maps domain error kinds onto HTTP status codes
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrProjectNotFound), errors.Is(err, model.ErrRiskNotFound):
		status = http.StatusNotFound
	}
	errutil.HandleHTTP(r.Context(), w, err, status)
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return goerr.Wrap(usecase.ErrInvalidInput, "invalid JSON request body", goerr.V("cause", err.Error()))
	}
	return nil
}
