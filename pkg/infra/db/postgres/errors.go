package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	common "github.com/rivio-api/rivio-api/pkg/domain"
)

// uniqueViolation is Postgres error code 23505.
const uniqueViolation = "23505"

// TranslateWriteError maps a unique-constraint violation on a known
// constraint name to common.NewErrAlreadyExists / common.NewErrConflict,
// leaving every other error untouched for the caller to wrap. resourceType
// and field are only used to shape the message when the constraint does
// fire; they are ignored otherwise.
func TranslateWriteError(err error, resourceType common.ResourceType, field string, value interface{}) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return common.NewErrAlreadyExists(resourceType, field, value)
	}

	return err
}

// NotFoundOrErr maps sql.ErrNoRows to (nil, nil) — the repository-level
// convention every reader in this package follows: "not found" is a nil
// pointer, not an error, leaving the 404 decision to the use case.
func NotFoundOrErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return err
}

func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
