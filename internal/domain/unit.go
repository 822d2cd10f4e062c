package domain

// Unit is the measurement unit of a line item quantity
type Unit string

const (
	UnitGram   Unit = "gm"
	UnitKilo   Unit = "kg"
	UnitPieces Unit = "pcs"
)

// DefaultUnit is used when a line item carries no unit
const DefaultUnit = UnitGram

var unitDisplay = map[Unit]string{
	UnitGram:   "g",
	UnitKilo:   "kg",
	UnitPieces: "pc",
}

// Units returns the selectable units in display order
func Units() []Unit {
	return []Unit{UnitGram, UnitKilo, UnitPieces}
}

// Valid reports whether u is one of the known unit codes
func (u Unit) Valid() bool {
	_, ok := unitDisplay[u]
	return ok
}

// OrDefault returns u, or DefaultUnit when u is empty
func (u Unit) OrDefault() Unit {
	if u == "" {
		return DefaultUnit
	}
	return u
}

// DisplayUnit maps a unit code to its short label.
// Unrecognized codes fall back to the gram label.
func DisplayUnit(u Unit) string {
	if label, ok := unitDisplay[u]; ok {
		return label
	}
	return unitDisplay[DefaultUnit]
}

// RateSuffix returns the per-unit suffix shown next to a rate
func RateSuffix(u Unit) string {
	return DisplayUnit(u)
}
