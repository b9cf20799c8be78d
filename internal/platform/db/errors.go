package db

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

const (
	errDuplicateEntry  = 1062
	errNoReferencedRow = 1452
)

// IsDuplicateKey: UNIQUE 制約違反（check-then-act の負け側はこれで検出する）
func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == errDuplicateEntry
}

// IsForeignKey: 参照先の行が存在しない
func IsForeignKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == errNoReferencedRow
}
