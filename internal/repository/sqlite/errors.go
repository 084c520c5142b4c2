package sqlite

import (
	"database/sql"
	"errors"

	"modernc.org/sqlite"
)

// SQLite extended result codes for constraint violations.
const (
	codeConstraint           = 19
	codeConstraintForeignKey = 787
	codeConstraintPrimaryKey = 1555
	codeConstraintUnique     = 2067
)

func constraintCode(err error) (int, bool) {
	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		if code&0xff == codeConstraint {
			return code, true
		}
	}
	return 0, false
}

// IsUniqueViolation checks if error is a unique or primary key constraint
// violation.
func IsUniqueViolation(err error) bool {
	code, ok := constraintCode(err)
	return ok && (code == codeConstraintUnique || code == codeConstraintPrimaryKey)
}

// IsForeignKeyViolation checks if error is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	code, ok := constraintCode(err)
	return ok && code == codeConstraintForeignKey
}

// IsNoRows checks if error is a "no rows" error.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
