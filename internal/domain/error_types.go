package domain

import "strings"

// ErrorTypes is the canonical quality-control flag vocabulary.
var ErrorTypes = []string{
	"Clustered Interview",
	"Duplicate Phone",
	"High LOI",
	"Interwoven",
	"Low LOI",
	"Odd Hour",
	"Outside LGA Boundary",
	"Short Gap",
	"Terminated",
}

// ErrorCode derives the machine code of a flag label, e.g. "High LOI" -> "HIGH_LOI".
func ErrorCode(label string) string {
	return strings.ToUpper(strings.ReplaceAll(label, " ", "_"))
}
