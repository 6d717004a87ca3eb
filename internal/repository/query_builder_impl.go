package repository

import (
	"strings"

	"github.com/doug-martin/goqu/v9"
)

type queryBuilderImpl struct {
	conditions    map[string]interface{}
	searchTerm    string
	searchColumns []string
}

func NewQueryBuilder() QueryBuilder {
	return &queryBuilderImpl{
		conditions: make(map[string]interface{}),
	}
}

func (q *queryBuilderImpl) AddCondition(key string, value interface{}) {
	q.conditions[key] = value
}

// AddSearch registers a case-insensitive substring match across columns.
func (q *queryBuilderImpl) AddSearch(term string, columns ...string) {
	q.searchTerm = strings.TrimSpace(term)
	q.searchColumns = columns
}

func (q *queryBuilderImpl) BuildConditions(aliases map[string]string) []goqu.Expression {
	var expressions []goqu.Expression

	conditions := goqu.Ex{}
	for key, value := range q.conditions {
		if alias, ok := aliases[key]; ok {
			conditions[alias] = value
		} else {
			conditions[key] = value
		}
	}
	if len(conditions) > 0 {
		expressions = append(expressions, conditions)
	}

	if q.searchTerm != "" && len(q.searchColumns) > 0 {
		pattern := "%" + q.searchTerm + "%"
		var matches []goqu.Expression
		for _, column := range q.searchColumns {
			if alias, ok := aliases[column]; ok {
				column = alias
			}
			matches = append(matches, goqu.I(column).ILike(pattern))
		}
		expressions = append(expressions, goqu.Or(matches...))
	}

	return expressions
}

func (q *queryBuilderImpl) IsEmpty() bool {
	return len(q.conditions) == 0 && q.searchTerm == ""
}
