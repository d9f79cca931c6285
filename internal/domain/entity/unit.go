package entity

// Unidades de medida conocidas por el motor de stock.
// Cualquier otra unidad en una petición se rechaza como entrada inválida.
const (
	UnitKg    = "kg"
	UnitG     = "g"
	UnitL     = "l"
	UnitCl    = "cl"
	UnitMl    = "ml"
	UnitPiece = "piece"
)

var knownUnits = map[string]struct{}{
	UnitKg:    {},
	UnitG:     {},
	UnitL:     {},
	UnitCl:    {},
	UnitMl:    {},
	UnitPiece: {},
}

// IsKnownUnit indica si la unidad pertenece al catálogo de unidades soportadas.
func IsKnownUnit(unit string) bool {
	_, ok := knownUnits[unit]
	return ok
}
