package api

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

const genericUpstreamMessage = "An error occurred while fetching data"

// ConfigError reports a missing or unusable credential. No upstream call
// has been made when it is returned.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

// NotFoundError reports a search or channel lookup without results
type NotFoundError struct {
	Resource string
	Query    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Query)
}

// UpstreamError reports a failed Data API call. Message is the upstream
// error message when the API supplied one.
type UpstreamError struct {
	Operation string
	Status    int
	Message   string
	Err       error
}

func (e *UpstreamError) Error() string { return e.Message }
func (e *UpstreamError) Unwrap() error { return e.Err }

// upstreamError classifies err from a Data API call
func upstreamError(operation string, err error) error {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return err
	}
	ue := &UpstreamError{Operation: operation, Message: genericUpstreamMessage, Err: err}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		ue.Status = gerr.Code
		if gerr.Message != "" {
			ue.Message = gerr.Message
		}
	}
	return ue
}

// StatusCode maps an error returned by the resolver or aggregator to an
// HTTP status.
func StatusCode(err error) int {
	var (
		ce *ConfigError
		nf *NotFoundError
		ue *UpstreamError
	)
	switch {
	case errors.As(err, &ce):
		return http.StatusServiceUnavailable
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &ue):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
