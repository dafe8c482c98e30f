package format

import (
	"fmt"
	"strings"
	"time"
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FmtDate formats t as a long date in lang. Unknown languages use English.
// Example: FmtDate(t, "es") => "15 de enero de 2026"
func FmtDate(t time.Time, lang string) string {
	switch strings.ToLower(lang) {
	case "es":
		return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
	default:
		return t.Format("January 2, 2006")
	}
}
