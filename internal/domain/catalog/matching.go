package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tu-usuario/catering-pro/internal/domain/entity"
)

// Normalización determinista de libellés de ingredientes para el matching
// de catálogos de proveedor. Reglas estrictas, aplicadas en orden:
//   - minúsculas
//   - supresión de acentos
//   - supresión de contenido entre paréntesis
//   - supresión de puntuación
//   - supresión de unidades (g, kg, ml, cl, l, %, mg), sueltas o pegadas al número
//   - supresión de cifras
//   - supresión de palabras parásitas culinarias
//   - espacios colapsados

var (
	reParens  = regexp.MustCompile(`\([^)]*\)`)
	rePunct   = regexp.MustCompile(`[^a-z0-9\s]+`)
	reNumUnit = regexp.MustCompile(`\b\d+(?:[.,]\d+)?\s*(?:g|kg|ml|cl|l|%|mg)\b`)
	reUnits   = regexp.MustCompile(`\b(?:g|kg|ml|cl|l|%|mg)\b`)
	reNumbers = regexp.MustCompile(`\d+`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

var stopWords = map[string]struct{}{
	"frais": {}, "fraiche": {}, "fresco": {}, "fresca": {},
	"hache": {}, "hachee": {}, "emince": {}, "eminces": {}, "cisele": {},
	"bio": {}, "surgele": {}, "surgelee": {}, "congelado": {},
	"environ": {}, "petit": {}, "gros": {}, "moyen": {},
}

// stripAccents elimina las marcas diacríticas (é -> e, ñ -> n).
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeLabel normaliza un libellé de ingrediente.
// Misma entrada => misma salida, sin acceso a datos externos.
func NormalizeLabel(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))

	if out, _, err := transform.String(stripAccents, s); err == nil {
		s = out
	}

	s = reParens.ReplaceAllString(s, " ")
	s = reNumUnit.ReplaceAllString(s, " ")
	s = rePunct.ReplaceAllString(s, " ")
	s = reUnits.ReplaceAllString(s, " ")
	s = reNumbers.ReplaceAllString(s, " ")

	words := strings.Fields(s)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if _, skip := stopWords[w]; skip {
			continue
		}
		kept = append(kept, w)
	}
	return reSpaces.ReplaceAllString(strings.Join(kept, " "), " ")
}

// Matcher resuelve libellés externos hacia IDs de ingredientes internos.
// Se construye con el referencial actual (nombres + alias) y matchea en memoria.
type Matcher struct {
	byNormalized map[string]string // libellé normalizado -> ingredientID
}

// NewMatcher indexa ingredientes y alias por su forma normalizada.
// Los nombres se indexan antes que los alias; en colisiones gana la primera
// entrada en el orden recibido (los repos devuelven listas ordenadas, así el
// índice es determinista).
func NewMatcher(ingredients []entity.Ingredient, aliases []entity.IngredientAlias) *Matcher {
	idx := make(map[string]string, len(ingredients)+len(aliases))
	add := func(label, id string) {
		key := NormalizeLabel(label)
		if key == "" {
			return
		}
		if _, exists := idx[key]; !exists {
			idx[key] = id
		}
	}
	for _, ing := range ingredients {
		add(ing.Name, ing.ID)
	}
	for _, alias := range aliases {
		add(alias.Label, alias.IngredientID)
	}
	return &Matcher{byNormalized: idx}
}

// Match devuelve el ingrediente correspondiente al libellé externo, si existe.
func (m *Matcher) Match(label string) (ingredientID string, ok bool) {
	id, ok := m.byNormalized[NormalizeLabel(label)]
	return id, ok
}
