// Package openapi exposes the contracts for turning the parameters of an
// OpenAPI operation into a param form. Loader and parser implementations live
// under internal/openapi so kin-openapi types stay out of the public API.
package openapi
