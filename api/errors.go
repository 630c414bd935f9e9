// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"errors"

	"github.com/gorilla/rpc/v2/json2"

	"github.com/luxfi/ethbridge/bridge"
)

// Ledger rejections are reported with these JSON-RPC error codes.
const (
	CodeZeroValueDeposit json2.ErrorCode = -32010 - iota
	CodeUnknownAuthority
	CodeInvalidSignature
	CodeAlreadyExecuted
	CodePayloadMismatch
	CodeIndexOutOfRange
	CodePayoutFailed
	CodeValueOverflow
	CodeUnknownDeposit
	CodeUnknownRequest
	CodeInvalidMessage
)

var errInvalidAmount = errors.New("invalid amount")

var errorCodes = []struct {
	err  error
	code json2.ErrorCode
}{
	{err: bridge.ErrZeroValueDeposit, code: CodeZeroValueDeposit},
	{err: bridge.ErrUnknownAuthority, code: CodeUnknownAuthority},
	{err: bridge.ErrInvalidSignature, code: CodeInvalidSignature},
	{err: bridge.ErrAlreadyExecuted, code: CodeAlreadyExecuted},
	{err: bridge.ErrPayloadMismatch, code: CodePayloadMismatch},
	{err: bridge.ErrIndexOutOfRange, code: CodeIndexOutOfRange},
	{err: bridge.ErrPayoutFailed, code: CodePayoutFailed},
	{err: bridge.ErrValueOverflow, code: CodeValueOverflow},
	{err: bridge.ErrUnknownDeposit, code: CodeUnknownDeposit},
	{err: bridge.ErrUnknownRequest, code: CodeUnknownRequest},
	{err: bridge.ErrInvalidMessage, code: CodeInvalidMessage},
	{err: errInvalidAmount, code: json2.E_BAD_PARAMS},
}

// toRPCError attaches the error code of a ledger rejection to [err]. Any
// other failure is reported as an internal error.
func toRPCError(err error) error {
	if err == nil {
		return nil
	}
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return &json2.Error{
				Code:    c.code,
				Message: err.Error(),
			}
		}
	}
	return &json2.Error{
		Code:    json2.E_INTERNAL,
		Message: err.Error(),
	}
}

// remoteError is a ledger rejection reported by a remote service.
type remoteError struct {
	message string
	err     error
}

func (e *remoteError) Error() string {
	return e.message
}

func (e *remoteError) Unwrap() error {
	return e.err
}

// fromRPCError maps an error code back to the ledger rejection it reports,
// so callers can keep using errors.Is.
func fromRPCError(err error) error {
	var rpcErr *json2.Error
	if !errors.As(err, &rpcErr) {
		return err
	}
	for _, c := range errorCodes {
		if rpcErr.Code == c.code {
			return &remoteError{
				message: rpcErr.Message,
				err:     c.err,
			}
		}
	}
	return err
}
