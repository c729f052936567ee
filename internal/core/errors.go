package core

import "fmt"

// The core distinguishes two failure classes. ConnectivityError means the
// transport or protocol layer failed and the connection state flips to
// Disconnected; OperationError means the service answered but reported a
// logical failure, which never alters connectivity state.

// ConnectivityError wraps a probe or fetch failure at the transport layer.
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("connectivity: %s: %v", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// OperationError wraps a logical failure reported by the service, including
// a structurally successful response whose success flag is false.
type OperationError struct {
	Op      string
	Message string
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
}

// genericFailureMessage is used when the service reports failure without
// supplying a message.
const genericFailureMessage = "the operation could not be completed"
