// Package sqlerr translates database driver errors into API errors.
//
// Raw SQLSTATE codes are mapped to a small set of categories which are then
// turned into *errs.HTTPError values with user facing messages (a unique
// violation becomes a 409, a missing row becomes a 404 and so on).
package sqlerr
