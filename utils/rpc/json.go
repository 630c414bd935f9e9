// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/rpc/v2/json2"
)

const contentType = "application/json"

// EndpointRequester issues JSON-RPC 2.0 calls against a single endpoint.
type EndpointRequester interface {
	SendRequest(ctx context.Context, method string, params interface{}, reply interface{}) error
}

type endpointRequester struct {
	uri    string
	client *http.Client
}

// NewEndpointRequester returns a requester for [uri]. A nil client means
// http.DefaultClient.
func NewEndpointRequester(uri string, client *http.Client) EndpointRequester {
	if client == nil {
		client = http.DefaultClient
	}
	return &endpointRequester{
		uri:    uri,
		client: client,
	}
}

func (e *endpointRequester) SendRequest(ctx context.Context, method string, params interface{}, reply interface{}) error {
	return SendJSONRequest(ctx, e.client, e.uri, method, params, reply)
}

// SendJSONRequest posts [method] with [params] to [uri] and decodes the
// result into [reply]. Server side errors are returned as *json2.Error so
// callers can inspect the error code.
func SendJSONRequest(
	ctx context.Context,
	client *http.Client,
	uri string,
	method string,
	params interface{},
	reply interface{},
) error {
	requestBody, err := json2.EncodeClientRequest(method, params)
	if err != nil {
		return fmt.Errorf("failed to encode client params: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, bytes.NewReader(requestBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("Content-Type", contentType)

	resp, err := client.Do(request)
	if err != nil {
		return fmt.Errorf("failed to issue request: %w", err)
	}
	defer func() {
		_ = CleanlyCloseBody(resp.Body)
	}()

	if err := json2.DecodeClientResponse(resp.Body, reply); err != nil {
		if _, ok := err.(*json2.Error); !ok && resp.StatusCode != http.StatusOK {
			return fmt.Errorf("received status code %d: %w", resp.StatusCode, err)
		}
		return err
	}
	return nil
}

// CleanlyCloseBody drains and closes [body] so the underlying connection can
// be reused.
func CleanlyCloseBody(body io.ReadCloser) error {
	if body == nil {
		return nil
	}

	_, _ = io.Copy(io.Discard, body)
	return body.Close()
}
