package transport

import (
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/shopspring/decimal"
)

// decimalType transports arbitrary-precision decimals as strings so that
// monetary values survive the round trip without float rounding. Numeric
// literals are also accepted on input.
var decimalType = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Decimal",
	Description: "An arbitrary-precision decimal number, serialized as a string.",
	Serialize: func(value interface{}) interface{} {
		switch v := value.(type) {
		case decimal.Decimal:
			return v.String()
		case *decimal.Decimal:
			if v == nil {
				return nil
			}
			return v.String()
		}
		return nil
	},
	ParseValue: func(value interface{}) interface{} {
		switch v := value.(type) {
		case string:
			d, err := decimal.NewFromString(v)
			if err != nil {
				return nil
			}
			return d
		case float64:
			return decimal.NewFromFloat(v)
		case int:
			return decimal.NewFromInt(int64(v))
		}
		return nil
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		switch v := valueAST.(type) {
		case *ast.StringValue:
			d, err := decimal.NewFromString(v.Value)
			if err != nil {
				return nil
			}
			return d
		case *ast.FloatValue:
			d, err := decimal.NewFromString(v.Value)
			if err != nil {
				return nil
			}
			return d
		case *ast.IntValue:
			d, err := decimal.NewFromString(v.Value)
			if err != nil {
				return nil
			}
			return d
		}
		return nil
	},
})
