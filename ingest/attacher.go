// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package ingest

import (
	"context"
	"encoding/json"

	"github.com/featurebasedb/taboo"
	"github.com/featurebasedb/taboo/logger"
	"github.com/pkg/errors"
)

// LogAttacher logs every attach call instead of sending it. It backs
// --dry-run.
type LogAttacher struct {
	Log logger.Logger
}

func (a LogAttacher) Attach(ctx context.Context, prefixes taboo.Prefixes, item *taboo.Item) error {
	b, err := json.Marshal(item)
	if err != nil {
		return taboo.NewErrAttach(item, errors.Wrap(err, "encoding item"))
	}
	if prefixes == nil {
		prefixes = taboo.Prefixes{}
	}
	p, err := json.Marshal(prefixes)
	if err != nil {
		return taboo.NewErrAttach(item, errors.Wrap(err, "encoding prefixes"))
	}
	a.Log.Infof("attach prefixes=%s item=%s", p, b)
	return nil
}
