package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// unique_violation, el único SQLSTATE que los repos traducen a error de dominio.
const codeUniqueViolation = "23505"

// isUniqueViolation verifica si un error es una violación de constraint único,
// incluso cuando el driver lo entrega envuelto en otro error.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}
