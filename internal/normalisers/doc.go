// Package normalisers provides implementations that extract plain text
// from uploaded document bytes, selected by MIME type.
package normalisers
