// Package results defines the structured result every service operation
// returns to its caller. Business-rule rejections travel in Failure payloads
// rather than Go errors; Error is reserved for infrastructure problems.
package results

// OperationResult is the outcome of a single service operation.
// Exactly one of Success or Failure is set on a normal return.
type OperationResult struct {
	Success any
	Failure any
	Error   error
}

// SuccessResult wraps a success payload.
func SuccessResult(payload any) OperationResult {
	return OperationResult{Success: payload}
}

// FailureResult wraps a business-failure payload.
func FailureResult(payload any) OperationResult {
	return OperationResult{Failure: payload}
}

// ErrorResult wraps an infrastructure error, optionally with a failure
// payload describing it for the command surface.
func ErrorResult(payload any, err error) OperationResult {
	return OperationResult{Failure: payload, Error: err}
}
