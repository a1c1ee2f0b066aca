// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package cache

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/terry/pkg/ticket"
)

// idNamespace scopes entry ids so the same record content hashed
// elsewhere cannot collide with a terry cache entry.
var idNamespace = uuid.MustParse("6a7c3b52-9e1d-4f08-b1a4-2d5e8c9f0a31")

// EntryID derives the stable entry id for a record: a SHA1-based UUID
// over the canonical record content. CreatedAt is part of the record,
// so identical text submitted at different times yields distinct ids,
// and the same record always maps back to the same id. Ids are never
// reused.
func EntryID(rec ticket.Record) string {
	// Marshal cannot fail for Record: all fields are plain data.
	content, _ := json.Marshal(rec)
	return uuid.NewSHA1(idNamespace, content).String()
}
