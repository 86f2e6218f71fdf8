// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package client

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignerSign(t *testing.T) {
	params := url.Values{}
	// inserted out of order; the signature sorts by key.
	params.Set("upsert", "1")
	params.Set("prefixes", `["a"]`)
	params.Set("key", "k")
	params.Set("item", `{"id":1}`)

	tests := []struct {
		name   string
		signer Signer
		params url.Values
		exp    string
	}{
		{
			name:   "defaults",
			signer: Signer{Secret: "s3cret", Delimiter: DefaultSignDelimiter, Hyphen: DefaultSignHyphen},
			params: params,
			exp:    "c0cd0e16201c2ced99f00e96142a127d",
		},
		{
			name:   "custom separators",
			signer: Signer{Secret: "s3cret", Delimiter: ";", Hyphen: ":"},
			params: params,
			exp:    "bde968885fa87c9166020ede7f555a19",
		},
		{
			name:   "no params",
			signer: Signer{Secret: "s3cret", Delimiter: DefaultSignDelimiter, Hyphen: DefaultSignHyphen},
			params: url.Values{},
			exp:    "4e403f8a46f9dbdd04897b9c01493899",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.exp, test.signer.Sign("/attach", "POST", test.params))
		})
	}
}

func TestResponseDescription(t *testing.T) {
	assert.Equal(t, "custom", (&Response{Code: CodeNoPrefixes, Desc: "custom"}).Description())
	assert.Equal(t, "no prefixes", (&Response{Code: CodeNoPrefixes}).Description())
	assert.Equal(t, "unknown error", (&Response{Code: 7}).Description())
	assert.True(t, (&Response{}).OK())
}
