// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0

/*
Package client talks to the manage API of a taboo prefix index.

Every request is a form-encoded POST carrying the manage key and an MD5
signature computed from the request path, the method, the manage secret and
the remaining parameters. The server answers with a JSON envelope whose
"code" is 0 on success.

Usage:

	import (
		"context"

		"github.com/featurebasedb/taboo"
		"github.com/featurebasedb/taboo/client"
	)

	cli, err := client.NewClient("127.0.0.1", 1079, "your-key", "your-secret",
		client.OptClientRetries(3),
	)
	if err != nil {
		panic(err)
	}

	item := &taboo.Item{ID: 42, AccountID: "u123", Name: "John"}
	err = cli.Attach(context.Background(), taboo.Prefixes{"John", "Jo"}, item)
*/
package client
