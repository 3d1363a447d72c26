// Package transform cleans raw table rows before loading: per-table type
// fixups, dropping rows with more than one missing field, and removing
// exact duplicates.
package transform

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shoplore/ordersynth/internal/schema"
)

var titleCaser = cases.Title(language.BrazilianPortuguese)

// StateNames maps Brazilian state initials to full names.
var StateNames = map[string]string{
	"SP": "São Paulo", "RJ": "Rio de Janeiro", "MG": "Minas Gerais",
	"RS": "Rio Grande do Sul", "PR": "Paraná", "SC": "Santa Catarina",
	"BA": "Bahia", "DF": "Distrito Federal", "ES": "Espírito Santo",
	"GO": "Goiás", "PE": "Pernambuco", "CE": "Ceará", "PA": "Pará",
	"MT": "Mato Grosso", "MA": "Maranhão", "MS": "Mato Grosso do Sul",
	"PB": "Paraíba", "PI": "Piauí", "RN": "Rio Grande do Norte",
	"AL": "Alagoas", "SE": "Sergipe", "TO": "Tocantins", "RO": "Rondônia",
	"AM": "Amazonas", "AC": "Acre", "AP": "Amapá", "RR": "Roraima",
}

var fixups = map[string]func(map[string]any){
	"customers":   fixCustomer,
	"geolocation": fixGeolocation,
}

// Clean normalizes rows for one table. Unknown tables pass through the
// generic missing-field and duplicate filters only.
func Clean(table string, rows []map[string]any) []map[string]any {
	fix := fixups[table]
	cols := columnsFor(table)

	out := make([]map[string]any, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if fix != nil {
			fix(row)
		}
		if missing(row, cols) > 1 {
			continue
		}
		fp := fingerprint(row, cols)
		if _, dup := seen[fp]; dup {
			continue
		}
		seen[fp] = struct{}{}
		out = append(out, row)
	}
	return out
}

func fixCustomer(row map[string]any) {
	if city, ok := row["customer_city"].(string); ok {
		row["customer_city"] = titleCaser.String(city)
	}
	if state, ok := row["customer_state"].(string); ok {
		row["customer_state_initials"] = state
		if full, known := StateNames[state]; known {
			row["customer_state"] = full
		}
	}
}

func fixGeolocation(row map[string]any) {
	if city, ok := row["geolocation_city"].(string); ok {
		row["geolocation_city"] = titleCaser.String(city)
	}
	if state, ok := row["geolocation_state"].(string); ok {
		if full, known := StateNames[state]; known {
			row["geolocation_state"] = full
		}
	}
}

func columnsFor(table string) []string {
	if t, ok := schema.Get(table); ok {
		return t.Columns
	}
	return nil
}

func missing(row map[string]any, cols []string) int {
	n := 0
	if cols == nil {
		for _, v := range row {
			if v == nil {
				n++
			}
		}
		return n
	}
	for _, c := range cols {
		if v, ok := row[c]; !ok || v == nil {
			n++
		}
	}
	return n
}

// fingerprint renders a row in schema column order so duplicate detection
// does not depend on map iteration order.
func fingerprint(row map[string]any, cols []string) string {
	var b strings.Builder
	if cols == nil {
		return fmt.Sprintf("%d:%v", len(row), row)
	}
	for _, c := range cols {
		fmt.Fprintf(&b, "%v\x1f", row[c])
	}
	return b.String()
}
