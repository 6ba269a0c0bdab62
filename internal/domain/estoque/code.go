package estoque

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NormalizeCode normaliza códigos de insumo e inventario antes de verificar unicidad
// por tenant: NFC, sin espacios en los extremos, en mayúsculas.
// cases.Caser guarda estado, por eso se crea uno por llamada.
func NormalizeCode(code string) string {
	return cases.Upper(language.BrazilianPortuguese).String(norm.NFC.String(strings.TrimSpace(code)))
}
