// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package taboo

import (
	"strconv"
	"strings"
)

// FieldDelimiter separates the fields of a source record.
const FieldDelimiter = "\t"

// Field positions within a source record.
const (
	fieldAccountID = 0
	fieldID        = 1
	fieldName      = 2
	fieldAvatar    = 5

	// Prefixes are taken from fields [prefixFirst, prefixEnd).
	prefixFirst = 2
	prefixEnd   = 5

	minFields    = 5
	avatarFields = 6
)

// ParseRecord converts one source line into an Item and the prefixes it is
// attached under. A trailing line terminator is ignored. The line must have
// at least five tab-separated fields and an integer in its second field;
// otherwise an error coded ErrParse is returned. Nothing else is validated,
// so empty account ids or names are passed through as-is.
func ParseRecord(line string) (*Item, Prefixes, error) {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.Split(line, FieldDelimiter)
	if len(fields) < minFields {
		return nil, nil, NewErrParse(line, "expected at least %d fields, got %d", minFields, len(fields))
	}

	id, err := strconv.ParseInt(fields[fieldID], 10, 64)
	if err != nil {
		return nil, nil, NewErrParse(line, "invalid id %q", fields[fieldID])
	}

	item := &Item{
		ID:        id,
		AccountID: fields[fieldAccountID],
		Name:      fields[fieldName],
	}
	if len(fields) == avatarFields {
		avatar := fields[fieldAvatar]
		item.Avatar = &avatar
	}

	prefixes := make(Prefixes, 0, prefixEnd-prefixFirst)
	for _, f := range fields[prefixFirst:prefixEnd] {
		if f != "" {
			prefixes = append(prefixes, f)
		}
	}
	return item, prefixes, nil
}
