// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package taboo_test

import (
	"encoding/json"
	"testing"

	"github.com/featurebasedb/taboo"
	"github.com/featurebasedb/taboo/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		item     *taboo.Item
		prefixes taboo.Prefixes
	}{
		{
			name: "six fields",
			line: "u123\t42\tJohn\tJo\tJoh\tavatar.png",
			item: &taboo.Item{ID: 42, AccountID: "u123", Name: "John", Avatar: strp("avatar.png")},
			prefixes: taboo.Prefixes{
				"John", "Jo", "Joh",
			},
		},
		{
			name:     "five fields",
			line:     "u123\t42\tJohn\tJo\tJoh",
			item:     &taboo.Item{ID: 42, AccountID: "u123", Name: "John"},
			prefixes: taboo.Prefixes{"John", "Jo", "Joh"},
		},
		{
			name:     "empty prefix fields",
			line:     "u9\t7\tAlice\t\t\t",
			item:     &taboo.Item{ID: 7, AccountID: "u9", Name: "Alice", Avatar: strp("")},
			prefixes: taboo.Prefixes{"Alice"},
		},
		{
			name:     "no prefixes at all",
			line:     "u9\t7\t\t\t",
			item:     &taboo.Item{ID: 7, AccountID: "u9"},
			prefixes: taboo.Prefixes{},
		},
		{
			name:     "gaps keep order",
			line:     "a\t1\t\tmid\t",
			item:     &taboo.Item{ID: 1, AccountID: "a"},
			prefixes: taboo.Prefixes{"mid"},
		},
		{
			name:     "duplicates kept",
			line:     "a\t1\tx\tx\tx",
			item:     &taboo.Item{ID: 1, AccountID: "a", Name: "x"},
			prefixes: taboo.Prefixes{"x", "x", "x"},
		},
		{
			name:     "trailing newline",
			line:     "u1\t3\tBob\tB\tBo\tb.png\n",
			item:     &taboo.Item{ID: 3, AccountID: "u1", Name: "Bob", Avatar: strp("b.png")},
			prefixes: taboo.Prefixes{"Bob", "B", "Bo"},
		},
		{
			name:     "crlf",
			line:     "u1\t3\tBob\tB\tBo\r\n",
			item:     &taboo.Item{ID: 3, AccountID: "u1", Name: "Bob"},
			prefixes: taboo.Prefixes{"Bob", "B", "Bo"},
		},
		{
			name:     "empty account id accepted",
			line:     "\t5\tn\t\t",
			item:     &taboo.Item{ID: 5, Name: "n"},
			prefixes: taboo.Prefixes{"n"},
		},
		{
			name:     "negative id",
			line:     "acct\t-12\tn\t\t",
			item:     &taboo.Item{ID: -12, AccountID: "acct", Name: "n"},
			prefixes: taboo.Prefixes{"n"},
		},
		{
			name:     "seven fields has no avatar",
			line:     "a\t1\tn\tp\tq\tav\textra",
			item:     &taboo.Item{ID: 1, AccountID: "a", Name: "n"},
			prefixes: taboo.Prefixes{"n", "p", "q"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			item, prefixes, err := taboo.ParseRecord(test.line)
			require.NoError(t, err)
			assert.Equal(t, test.item, item)
			assert.Equal(t, test.prefixes, prefixes)
			assert.NotNil(t, prefixes)
		})
	}
}

func TestParseRecordErrors(t *testing.T) {
	for _, line := range []string{
		"",
		"a\t1\tn\tp",
		"abc\tacct\tn\t\t",
		"a\t\tn\t\t",
		"a\t4.2\tn\t\t",
		"a\t 42\tn\t\t",
		"a\t99999999999999999999\tn\t\t",
	} {
		t.Run(line, func(t *testing.T) {
			item, prefixes, err := taboo.ParseRecord(line)
			require.Error(t, err)
			assert.True(t, errors.Is(err, taboo.ErrParse), "unexpected error: %v", err)
			assert.Nil(t, item)
			assert.Nil(t, prefixes)
		})
	}
}

func TestItemJSON(t *testing.T) {
	item, _, err := taboo.ParseRecord("u1\t3\tBob\tB\tBo")
	require.NoError(t, err)
	b, err := json.Marshal(item)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"account_id":"u1","name":"Bob"}`, string(b))
	assert.False(t, item.HasAvatar())

	item, _, err = taboo.ParseRecord("u1\t3\tBob\tB\tBo\t")
	require.NoError(t, err)
	b, err = json.Marshal(item)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"account_id":"u1","name":"Bob","avatar":""}`, string(b))
	assert.True(t, item.HasAvatar())
}
