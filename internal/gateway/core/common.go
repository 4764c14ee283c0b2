package core

import (
	"fmt"
	"net/http"

	"carebook/pkg/client"
	apperrors "carebook/pkg/errors"
)

const (
	MAX_CONCURRENT_API_CALLS = 40
)

var (
	RequestLimiter = make(chan struct{}, MAX_CONCURRENT_API_CALLS)
)

// RunWithRateLimitedConcurrency executes fn while holding one of the shared
// downstream-call slots. The slot is released even if fn panics; the panic
// is re-raised for the caller's recover.
func RunWithRateLimitedConcurrency(fn func()) {
	RequestLimiter <- struct{}{}

	var released bool
	defer func() {
		if !released {
			<-RequestLimiter
		}
		if r := recover(); r != nil {
			panic(r)
		}
	}()

	defer func() {
		<-RequestLimiter
		released = true
	}()

	fn()
}

func IsMissing(str string) bool {
	return len(str) == 0
}

func MissingParamErr(paramName string) error {
	return apperrors.InvalidInput(fmt.Sprintf("required param [%v] is missing", paramName))
}

// DownstreamError surfaces a failed downstream call, keeping the downstream
// status code so conflicts and validation failures propagate to the caller.
func DownstreamError(service string, resp *client.Response) error {
	message := client.GetErrorMessage(resp)
	if IsMissing(message) {
		message = fmt.Sprintf("%s request failed with status %d", service, resp.StatusCode)
	}
	status := resp.StatusCode
	if status < http.StatusBadRequest {
		status = http.StatusBadGateway
	}
	return apperrors.New("DOWNSTREAM_ERROR", message, status)
}
