// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0

// Package taboo holds the record model for loading items into a taboo
// prefix index: the Item sent with each attach call, the prefixes it is
// attached under, and the parser that derives both from a tab-separated
// source line.
package taboo

import "context"

// Item is one entity attached to the index under a set of prefixes.
type Item struct {
	ID        int64  `json:"id"`
	AccountID string `json:"account_id"`
	Name      string `json:"name"`

	// Avatar is only set for records that carry an avatar column. A nil
	// Avatar is left out of the encoded item entirely; a non-nil empty one
	// is sent as "".
	Avatar *string `json:"avatar,omitempty"`
}

// HasAvatar reports whether the item was parsed from a six-field record.
func (it *Item) HasAvatar() bool {
	return it.Avatar != nil
}

// Prefixes is an ordered list of prefixes, most general first.
type Prefixes []string

// Attacher registers an item under every one of the given prefixes.
type Attacher interface {
	Attach(ctx context.Context, prefixes Prefixes, item *Item) error
}

// AttacherFunc adapts an ordinary function to the Attacher interface.
type AttacherFunc func(ctx context.Context, prefixes Prefixes, item *Item) error

func (f AttacherFunc) Attach(ctx context.Context, prefixes Prefixes, item *Item) error {
	return f(ctx, prefixes, item)
}
