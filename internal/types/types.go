// Package types defines the closed semantic type system of the source
// scripting language. Every expression the backend sees carries exactly one
// of these tags; anything outside the set is a front-end contract violation.
package types

import "fmt"

// Tag is a semantic type tag.
type Tag int

const (
	None Tag = iota
	Integer
	Float
	String
	Key
	Vector
	Quaternion
	List
	Error

	numTags
)

// Source-language spellings, used in diagnostics and debug output.
var sourceNames = [numTags]string{
	"void",
	"integer",
	"float",
	"string",
	"key",
	"vector",
	"quaternion",
	"list",
	"<error>",
}

// Python spellings, used for emitted annotations and typecast targets.
var pyNames = [numTags]string{
	"None",
	"int",
	"float",
	"str",
	"Key",
	"Vector",
	"Quaternion",
	"list",
	"<ERROR>",
}

func (t Tag) String() string {
	if t < 0 || t >= numTags {
		return fmt.Sprintf("Tag(%d)", int(t))
	}
	return sourceNames[t]
}

// PyName returns the Python-side name for the tag.
func (t Tag) PyName() string {
	if t < 0 || t >= numTags {
		panic(fmt.Sprintf("types: tag %d outside the closed set", int(t)))
	}
	return pyNames[t]
}

// Valid reports whether t belongs to the closed set.
func (t Tag) Valid() bool {
	return t >= None && t < numTags
}

// Numeric reports whether t is one of the scalar numeric tags.
func (t Tag) Numeric() bool {
	return t == Integer || t == Float
}

// Coordinate reports whether t is a fixed-arity coordinate type whose
// components are addressed by offset and which is never mutated in place.
func (t Tag) Coordinate() bool {
	return t == Vector || t == Quaternion
}
