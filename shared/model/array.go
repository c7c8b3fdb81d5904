package model

import (
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Strings converts values for a NOT NULL text[] column; nil becomes '{}'.
func Strings(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}

	return pq.StringArray(values)
}
