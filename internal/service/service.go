// Package service implements the contact and group use cases on top of the
// repositories. Every write runs in its own transaction carried by the context.
package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/kutbudev/contactbook/internal/apperr"
	"github.com/kutbudev/contactbook/internal/metrics"
	"github.com/kutbudev/contactbook/pkg/repository"
	"github.com/sirupsen/logrus"
)

// Messages rendered to API callers.
const (
	MsgContactNotFound   = "Contact not found"
	MsgGroupNotFound     = "Group not found"
	MsgEmailNotUnique    = "Email must be unique"
	MsgGroupCreateFailed = "Error creating the group"
	MsgInvalidPayload    = "Some data failed"
)

// relationLinker commits memberships one at a time. A failing relation is rolled back,
// logged and skipped so the remaining ones still get created.
type relationLinker struct {
	db        *repository.Database
	relations *repository.RelationRepository
	metrics   *metrics.Metrics
	log       logrus.FieldLogger
}

func (l *relationLinker) link(ctx context.Context, owner string, contactID, groupID uint) bool {
	err := l.db.TxFn(ctx, func(ctx context.Context) error {
		_, err := l.relations.Create(ctx, contactID, groupID)
		return err
	})
	if err != nil {
		l.metrics.RelationFailure(owner)
		l.log.WithError(err).WithFields(logrus.Fields{
			"owner":       owner,
			"contact_id":  contactID,
			"group_id":    groupID,
			"foreign_key": repository.IsForeignKeyViolation(err),
		}).Warn("Error creating the relation")
		return false
	}
	return true
}

// jsonKeys returns the top-level keys of a JSON object, lower-cased to match the
// case-insensitive field matching of encoding/json.
func jsonKeys(b []byte) (map[string]bool, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	keys := make(map[string]bool, len(raw))
	for k := range raw {
		keys[strings.ToLower(k)] = true
	}
	return keys, nil
}

// optionalColumn is one field of a partial update.
type optionalColumn struct {
	name     string
	value    *string
	nullable bool
}

// buildColumns keeps the fields that were sent. A field counts as sent when its value
// is set or its key is in present; a sent null writes NULL or, for a NOT NULL column,
// fails with 400.
func buildColumns(fields []optionalColumn, present map[string]bool) (map[string]any, error) {
	columns := make(map[string]any, len(fields))
	for _, f := range fields {
		switch {
		case f.value != nil:
			columns[f.name] = *f.value
		case !present[f.name]:
		case f.nullable:
			columns[f.name] = nil
		default:
			return nil, apperr.BadRequest(MsgInvalidPayload)
		}
	}
	return columns, nil
}
