// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package client

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 1 << 20

// Response is the envelope of every manage API reply.
type Response struct {
	Code    int             `json:"code"`
	Desc    string          `json:"desc"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// OK reports whether the server accepted the request.
func (r *Response) OK() bool {
	return r.Code == CodeOK
}

// Description prefers the server's own description and falls back to the
// text the client knows for the code.
func (r *Response) Description() string {
	if r.Desc != "" {
		return r.Desc
	}
	if text := CodeText(r.Code); text != "" {
		return text
	}
	return "unknown error"
}

func decodeResponse(r io.Reader) (*Response, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxResponseSize))
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}
	resp := &Response{}
	if err := json.Unmarshal(body, resp); err != nil {
		return nil, errors.Wrapf(err, "decoding response %q", truncate(string(body), 200))
	}
	return resp, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
