// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package json

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUint64JSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Uint64
		wantErr  bool
	}{
		{name: "quoted", input: `"18446744073709551615"`, expected: 18446744073709551615},
		{name: "bare", input: `42`, expected: 42},
		{name: "null", input: `null`, expected: 7},
		{name: "negative", input: `"-1"`, wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			v := Uint64(7)
			err := json.Unmarshal([]byte(test.input), &v)
			if test.wantErr {
				require.Error(err) //nolint:forbidigo // strconv error
				return
			}
			require.NoError(err)
			require.Equal(test.expected, v)
		})
	}
}

func TestUint32MarshalJSON(t *testing.T) {
	require := require.New(t)

	b, err := json.Marshal(struct {
		Threshold Uint32 `json:"threshold"`
	}{Threshold: 3})
	require.NoError(err)
	require.JSONEq(`{"threshold":"3"}`, string(b))

	var v Uint32
	require.Error(json.Unmarshal([]byte(`"4294967296"`), &v)) //nolint:forbidigo // strconv error
}
