// Package model holds the domain types shared by the repository, service
// and HTTP layers, together with the request payloads they validate.
//
// Struct tags serve three readers: `json` for the wire format, `db` for
// pgx row scanning and `doc`/`example` for the generated OpenAPI schemas.
package model
