package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uwrite-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrOrderMismatch is returned by Reorder when the supplied ids are not
// exactly the project's current chapter ids
var ErrOrderMismatch = errors.New("chapter ids do not match the project's chapters")

const (
	// pgUniqueViolation is the SQLSTATE postgres reports for unique index conflicts
	pgUniqueViolation = "23505"
	// extended sqlite result codes for UNIQUE and PRIMARY KEY violations
	sqliteConstraintUnique     = 2067
	sqliteConstraintPrimaryKey = 1555
)

// codedError matches driver errors exposing a numeric result code
type codedError interface {
	Code() int
}

// isDuplicateKey reports whether err is a unique constraint violation
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var coded codedError
	if errors.As(err, &coded) {
		return coded.Code() == sqliteConstraintUnique || coded.Code() == sqliteConstraintPrimaryKey
	}
	return false
}

// lockProject takes a row lock on the project for the rest of tx and fails
// with gorm.ErrRecordNotFound when it does not exist. sqlite ignores the
// locking clause; its single writer already serializes transactions.
func lockProject(tx *gorm.DB, projectID string) error {
	var project models.Project
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", projectID).
		Take(&project).Error
}
