// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

package trace

import (
	"context"
	"errors"
	"net"
	"syscall"

	"github.com/hoptrace/hoptrace/resolver"
	"github.com/hoptrace/hoptrace/transport"
)

// ErrorCode classifies a fatal trace failure for callers that need more
// than an error string (exit codes, HTTP statuses).
type ErrorCode string

const (
	// ErrCodeDNS indicates the destination could not be resolved.
	ErrCodeDNS ErrorCode = "DNS"
	// ErrCodeTransport indicates probe endpoint setup or sending failed.
	ErrCodeTransport ErrorCode = "TRANSPORT"
	// ErrCodeTimeout indicates the operation timed out or was canceled.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeDenied indicates a permission error (e.g. raw sockets without privilege).
	ErrCodeDenied ErrorCode = "DENIED"
	// ErrCodeHostUnreach indicates the target host is unreachable.
	ErrCodeHostUnreach ErrorCode = "HOSTUNREACH"
	// ErrCodeNetUnreach indicates the target network is unreachable.
	ErrCodeNetUnreach ErrorCode = "NETUNREACH"
	// ErrCodeInvalidRequest indicates bad parameters from the caller.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeUnknown is the catch-all for unclassified errors.
	ErrCodeUnknown ErrorCode = "UNKNOWN"
)

// TraceError is a classified fatal error from a trace run.
type TraceError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *TraceError) Error() string {
	return e.Message
}

func (e *TraceError) Unwrap() error {
	return e.Err
}

func newTraceError(code ErrorCode, err error) *TraceError {
	return &TraceError{Code: code, Message: err.Error(), Err: err}
}

// ClassifyError inspects an error chain and returns a TraceError with the
// appropriate code. Hop timeouts never reach this path; they are recorded as
// sentinel hops, not errors.
func ClassifyError(err error) *TraceError {
	if err == nil {
		return nil
	}

	var dnsErr *resolver.DNSError
	if errors.As(err, &dnsErr) {
		return newTraceError(ErrCodeDNS, err)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return newTraceError(ErrCodeTimeout, err)
	}

	var netDNSErr *net.DNSError
	if errors.As(err, &netDNSErr) {
		if netDNSErr.IsTimeout {
			return newTraceError(ErrCodeTimeout, err)
		}
		return newTraceError(ErrCodeDNS, err)
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		return classifyErrno(errno, err)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Timeout() {
		return newTraceError(ErrCodeTimeout, err)
	}

	var transportErr *transport.TransportError
	if errors.As(err, &transportErr) {
		return newTraceError(ErrCodeTransport, err)
	}

	return newTraceError(ErrCodeUnknown, err)
}

func classifyErrno(errno syscall.Errno, original error) *TraceError {
	switch errno {
	case syscall.EACCES, syscall.EPERM:
		return newTraceError(ErrCodeDenied, original)
	case syscall.EHOSTUNREACH:
		return newTraceError(ErrCodeHostUnreach, original)
	case syscall.ENETUNREACH:
		return newTraceError(ErrCodeNetUnreach, original)
	case syscall.ETIMEDOUT:
		return newTraceError(ErrCodeTimeout, original)
	default:
		var transportErr *transport.TransportError
		if errors.As(original, &transportErr) {
			return newTraceError(ErrCodeTransport, original)
		}
		return newTraceError(ErrCodeUnknown, original)
	}
}
