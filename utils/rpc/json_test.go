// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/ethbridge/utils/json"
)

var errEchoEmpty = errors.New("empty message")

type mockReadCloser struct {
	reader  io.Reader
	closed  bool
	readAll bool
}

func (m *mockReadCloser) Read(p []byte) (n int, err error) {
	n, err = m.reader.Read(p)
	if err == io.EOF {
		m.readAll = true
	}
	return n, err
}

func (m *mockReadCloser) Close() error {
	m.closed = true
	return nil
}

type EchoArgs struct {
	Message string `json:"message"`
}

type EchoReply struct {
	Message string `json:"message"`
}

type echoService struct{}

func (*echoService) Echo(_ *http.Request, args *EchoArgs, reply *EchoReply) error {
	if args.Message == "" {
		return &json2.Error{Code: -32042, Message: errEchoEmpty.Error()}
	}
	reply.Message = args.Message
	return nil
}

func newEchoServer(t *testing.T) *httptest.Server {
	server := rpc.NewServer()
	server.RegisterCodec(json.NewCodec(), "application/json")
	require.NoError(t, server.RegisterService(&echoService{}, "echo"))

	s := httptest.NewServer(server)
	t.Cleanup(s.Close)
	return s
}

func TestCleanlyCloseBody(t *testing.T) {
	tests := []struct {
		name string
		body []byte
	}{
		{name: "empty", body: []byte{}},
		{name: "small", body: []byte("This is test data that should be drained")},
		{name: "large", body: bytes.Repeat([]byte("x"), 1024*1024)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			mock := &mockReadCloser{
				reader: bytes.NewReader(test.body),
			}
			require.NoError(CleanlyCloseBody(mock))
			require.True(mock.closed)
			require.True(mock.readAll)
		})
	}
}

func TestCleanlyCloseBodyNil(t *testing.T) {
	require.NoError(t, CleanlyCloseBody(nil))
}

func TestCleanlyCloseBodyPartiallyRead(t *testing.T) {
	require := require.New(t)

	mock := &mockReadCloser{
		reader: strings.NewReader("This is test data"),
	}
	buf := make([]byte, 4)
	_, err := mock.Read(buf)
	require.NoError(err)
	require.False(mock.readAll)

	require.NoError(CleanlyCloseBody(mock))
	require.True(mock.closed)
	require.True(mock.readAll)
}

func TestSendRequest(t *testing.T) {
	require := require.New(t)

	s := newEchoServer(t)
	requester := NewEndpointRequester(s.URL, nil)

	var reply EchoReply
	require.NoError(requester.SendRequest(context.Background(), "echo.echo", &EchoArgs{Message: "hello"}, &reply))
	require.Equal("hello", reply.Message)
}

func TestSendRequestServiceError(t *testing.T) {
	require := require.New(t)

	s := newEchoServer(t)
	requester := NewEndpointRequester(s.URL, nil)

	var reply EchoReply
	err := requester.SendRequest(context.Background(), "echo.echo", &EchoArgs{}, &reply)

	var jsonErr *json2.Error
	require.ErrorAs(err, &jsonErr)
	require.Equal(json2.ErrorCode(-32042), jsonErr.Code)
	require.Equal(errEchoEmpty.Error(), jsonErr.Message)
}

func TestSendRequestCanceled(t *testing.T) {
	s := newEchoServer(t)
	requester := NewEndpointRequester(s.URL, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var reply EchoReply
	err := requester.SendRequest(ctx, "echo.echo", &EchoArgs{Message: "hello"}, &reply)
	require.ErrorIs(t, err, context.Canceled)
}
