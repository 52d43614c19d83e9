package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// 23505 = unique_violation
const pgUniqueViolation = "23505"

// 一意制約違反か（同時作成・二重チェックアウトの検出に使う）
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}
