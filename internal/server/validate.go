package server

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kolah/humbler/internal/logz"
	"github.com/pb33f/libopenapi"
	validator "github.com/pb33f/libopenapi-validator"
	validatorErrors "github.com/pb33f/libopenapi-validator/errors"
	"go.uber.org/zap"
)

// OpenAPIDocument describes the JSON API served under /api.
//
//go:embed openapi.yaml
var OpenAPIDocument []byte

// requestValidator rejects requests that do not match OpenAPIDocument.
type requestValidator struct {
	validator validator.Validator
}

func newRequestValidator(spec []byte) (*requestValidator, error) {
	doc, err := libopenapi.NewDocument(spec)
	if err != nil {
		return nil, fmt.Errorf("parsing api document: %w", err)
	}

	v, errs := validator.NewValidator(doc)
	if len(errs) > 0 {
		return nil, fmt.Errorf("creating request validator: %w", errs[0])
	}

	return &requestValidator{validator: v}, nil
}

func (v *requestValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		valid, errs := v.validator.ValidateHttpRequestSync(r)
		if !valid {
			handleValidationError(w, r, errs)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type validationDetail struct {
	Message  string `json:"message"`
	Reason   string `json:"reason,omitempty"`
	HowToFix string `json:"howToFix,omitempty"`
}

type validationBody struct {
	Error   string             `json:"error"`
	Message string             `json:"message"`
	Details []validationDetail `json:"details"`
}

func handleValidationError(w http.ResponseWriter, r *http.Request, errs []*validatorErrors.ValidationError) {
	details := make([]validationDetail, 0, len(errs))
	for _, e := range errs {
		details = append(details, validationDetail{Message: e.Message, Reason: e.Reason, HowToFix: e.HowToFix})
	}

	logz.FromContext(r.Context()).Info("Request validation failed", zap.Int("errors", len(errs)))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(validationBody{ // nolint
		Error:   "validation_error",
		Message: "request validation failed",
		Details: details,
	})
}
