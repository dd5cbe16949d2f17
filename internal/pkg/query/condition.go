package query

import (
	"fmt"
	"strings"
)

// Condition represents a WHERE clause condition.
// Implementations must generate SQL fragments and parameter maps
// using Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.)
	SQL(paramIndex int) (string, map[string]interface{})
}

func paramName(paramIndex int) string {
	return fmt.Sprintf("p%d", paramIndex)
}

// comparison implements a binary comparison (field <op> value).
type comparison struct {
	field string
	op    string
	value interface{}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("category", "niche") generates "category = @p0"
func Eq(field string, value interface{}) Condition {
	return &comparison{field: field, op: "=", value: value}
}

// Gte creates a WHERE condition for "field >= value".
func Gte(field string, value interface{}) Condition {
	return &comparison{field: field, op: ">=", value: value}
}

// Lte creates a WHERE condition for "field <= value".
func Lte(field string, value interface{}) Condition {
	return &comparison{field: field, op: "<=", value: value}
}

// SQL generates the SQL fragment for the comparison.
func (c *comparison) SQL(paramIndex int) (string, map[string]interface{}) {
	name := paramName(paramIndex)
	sql := fmt.Sprintf("%s %s @%s", c.field, c.op, name)
	return sql, map[string]interface{}{name: c.value}
}

// foldCondition implements case-insensitive comparisons on STRING columns.
type foldCondition struct {
	field    string
	value    string
	contains bool
}

// EqFold creates a case-insensitive equality condition.
// Example: EqFold("brand", "Dior") generates "LOWER(brand) = @p0" with p0 = "dior"
func EqFold(field string, value string) Condition {
	return &foldCondition{field: field, value: value}
}

// ContainsFold creates a case-insensitive substring condition.
// LIKE wildcards in value are escaped, so the value always matches literally.
// Example: ContainsFold("name", "Oud") generates "LOWER(name) LIKE @p0" with p0 = "%oud%"
func ContainsFold(field string, value string) Condition {
	return &foldCondition{field: field, value: value, contains: true}
}

// SQL generates the SQL fragment for the case-insensitive comparison.
func (c *foldCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := paramName(paramIndex)
	value := strings.ToLower(c.value)
	if c.contains {
		return fmt.Sprintf("LOWER(%s) LIKE @%s", c.field, name),
			map[string]interface{}{name: "%" + EscapeLike(value) + "%"}
	}
	return fmt.Sprintf("LOWER(%s) = @%s", c.field, name), map[string]interface{}{name: value}
}

// EscapeLike escapes the LIKE metacharacters %, _ and the backslash itself.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// inCondition implements membership in an array parameter.
type inCondition struct {
	field  string
	values interface{}
}

// In creates a WHERE condition for array membership.
// Example: In("product_id", []string{"a", "b"}) generates "product_id IN UNNEST(@p0)"
func In(field string, values interface{}) Condition {
	return &inCondition{field: field, values: values}
}

// SQL generates the SQL fragment for array membership.
func (c *inCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := paramName(paramIndex)
	return fmt.Sprintf("%s IN UNNEST(@%s)", c.field, name), map[string]interface{}{name: c.values}
}

// orGroup joins child conditions with OR.
type orGroup struct {
	conditions []Condition
}

// Or combines conditions with OR. The result is parenthesised so it can be
// safely ANDed with sibling conditions.
// Example: Or(Eq("a", 1), Eq("b", 2)) generates "(a = @p0 OR b = @p1)"
func Or(conditions ...Condition) Condition {
	return &orGroup{conditions: conditions}
}

// SQL generates the parenthesised fragment, numbering parameters of each
// child after the ones used by its predecessors.
func (g *orGroup) SQL(paramIndex int) (string, map[string]interface{}) {
	params := make(map[string]interface{})
	parts := make([]string, 0, len(g.conditions))
	for _, condition := range g.conditions {
		fragment, condParams := condition.SQL(paramIndex)
		parts = append(parts, fragment)
		for k, v := range condParams {
			params[k] = v
		}
		paramIndex += len(condParams)
	}
	switch len(parts) {
	case 0:
		return "FALSE", params
	case 1:
		return parts[0], params
	}
	return "(" + strings.Join(parts, " OR ") + ")", params
}
