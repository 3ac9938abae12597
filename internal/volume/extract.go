// Package volume pulls service and country piece counts out of the
// semi-structured "Volume per SVC" sheet. The sheet mixes a service pivot
// section and a country matrix with no boundary marker, so extraction is a
// best-effort row classifier, not a schema parser: blank rows, subtotal rows
// and stray text are skipped without failing the sheet.
package volume

import (
	"strings"

	"tms-insights-go/internal/workbook"
)

// ServiceTypes are the service codes the TMS reports volume for.
var ServiceTypes = []string{"CTX", "CX", "EF", "EGD", "FF", "RGD", "ROU", "SF"}

// Countries are the country codes appearing in the volume and lane sheets.
// The two code sets are disjoint by construction; a row key can never be
// both a service and a country, so classification needs no precedence rule.
var Countries = []string{"AT", "AU", "BE", "DE", "DK", "ES", "FR", "GB", "IT", "N1", "NL", "NZ", "SE", "US"}

var (
	serviceSet = toSet(ServiceTypes)
	countrySet = toSet(Countries)
)

func toSet(codes []string) map[string]struct{} {
	s := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

type RowKind uint8

const (
	Skip RowKind = iota
	Service
	Country
)

// Classified is the verdict on one sheet row.
type Classified struct {
	Kind  RowKind
	Code  string
	Value float64
}

// Classify reads a row's first cell as a candidate code. Service rows take
// the second cell as their piece count; country rows sum every positive
// number after the first cell. Rows with an empty first or second cell, an
// unknown code, a non-numeric service count or a zero country total are
// skipped.
func Classify(row []workbook.Cell) Classified {
	if len(row) < 2 || row[0].IsEmpty() || row[1].IsEmpty() {
		return Classified{Kind: Skip}
	}
	code := strings.TrimSpace(row[0].String())

	if _, ok := serviceSet[code]; ok {
		v, ok := row[1].Float()
		if !ok {
			return Classified{Kind: Skip}
		}
		return Classified{Kind: Service, Code: code, Value: v}
	}

	if _, ok := countrySet[code]; ok {
		total := 0.0
		for _, c := range row[1:] {
			if v, ok := c.Float(); ok && v > 0 {
				total += v
			}
		}
		if total <= 0 {
			return Classified{Kind: Skip}
		}
		return Classified{Kind: Country, Code: code, Value: total}
	}

	return Classified{Kind: Skip}
}

// Extract folds row classifications into the two volume maps.
func Extract(t *workbook.Table) (services, countries map[string]float64) {
	services = make(map[string]float64)
	countries = make(map[string]float64)
	for _, row := range t.Rows {
		switch c := Classify(row); c.Kind {
		case Service:
			services[c.Code] = c.Value
		case Country:
			countries[c.Code] = c.Value
		}
	}
	return services, countries
}
