package feedback

import "fmt"

// ConnectivityError covers transport failures and non-2xx responses that
// carry no structured validation detail.
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("feedback service unreachable during %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("feedback service unreachable during %s", e.Op)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// ServiceValidationError is a well-formed request the service rejected with
// a detail message. The detail is surfaced to the operator verbatim.
type ServiceValidationError struct {
	Detail string
}

func (e *ServiceValidationError) Error() string { return e.Detail }
