// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package client

import (
	"github.com/pkg/errors"
)

// Predefined client errors.
var (
	ErrEmptyHost   = errors.New("host is required")
	ErrInvalidPort = errors.New("port must be between 1 and 65535")
	ErrEmptyKey    = errors.New("manage key is required")
)

// Result codes returned in the response envelope of the manage API.
const (
	CodeOK = 0

	CodeNoPrefixes            = 10001
	CodeCreateItemFailed      = 10002
	CodeAttachPrefixesFailed  = 10003
	CodeAttachItemFailed      = 10004
	CodeBadRequestOrSignature = 200001
	CodeBadParam              = 200002
)

// CodeText returns a short description of a manage API result code, or ""
// for codes the client does not know.
func CodeText(code int) string {
	switch code {
	case CodeOK:
		return "ok"
	case CodeNoPrefixes:
		return "no prefixes"
	case CodeCreateItemFailed:
		return "failed on create item"
	case CodeAttachPrefixesFailed:
		return "failed on attach prefixes"
	case CodeAttachItemFailed:
		return "failed on attach item"
	case CodeBadRequestOrSignature:
		return "bad request method or signature"
	case CodeBadParam:
		return "bad param"
	}
	return ""
}
