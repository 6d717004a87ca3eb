package repository

import "github.com/doug-martin/goqu/v9"

// QueryBuilder collects caller-supplied filter criteria and renders them as
// conjunctive goqu conditions. Aliases map request keys onto qualified column
// names at build time.
type QueryBuilder interface {
	AddCondition(key string, value interface{})
	AddSearch(term string, columns ...string)
	BuildConditions(aliases map[string]string) []goqu.Expression
	IsEmpty() bool
}
