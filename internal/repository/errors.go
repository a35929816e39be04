package repository

import "errors"

// ErrNotFound is returned when a query for a single task finds no rows. The
// service layer translates it into app_errors.ErrNotFound so callers never
// see driver errors like sql.ErrNoRows or pgx.ErrNoRows.
var ErrNotFound = errors.New("repository: not found")
