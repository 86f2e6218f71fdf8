// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package client

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"net/url"
	"sort"
)

const (
	DefaultSignDelimiter = "|"
	DefaultSignHyphen    = "="
)

// Signer computes request signatures the way the manage server checks
// them: md5 over the path, the method and the secret, followed by every
// parameter as key, hyphen, value, in key order, all joined by the
// delimiter.
type Signer struct {
	Secret    string
	Delimiter string
	Hyphen    string
}

// Sign returns the hex signature for a request. params must not contain the
// signature itself. Only the first value of a repeated parameter is signed.
func (s Signer) Sign(path, method string, params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := md5.New()
	io.WriteString(h, path)
	io.WriteString(h, s.Delimiter)
	io.WriteString(h, method)
	io.WriteString(h, s.Delimiter)
	io.WriteString(h, s.Secret)
	for _, k := range keys {
		io.WriteString(h, s.Delimiter)
		io.WriteString(h, k)
		io.WriteString(h, s.Hyphen)
		io.WriteString(h, params.Get(k))
	}
	return hex.EncodeToString(h.Sum(nil))
}
