// Package form implements the parameter form renderer core. A Form binds an
// ordered list of params to a session state seeded from a value record, and
// exposes one Control per param for output surfaces to draw. Edits arrive as
// Change (or SelectOption) calls, each replacing exactly one session entry.
// Output surfaces never write values back to the caller's record.
package form
