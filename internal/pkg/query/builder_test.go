package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BasicSelect(t *testing.T) {
	stmt := From("products").
		Select("id", "name", "brand").
		Build()

	assert.Equal(t, "SELECT id, name, brand FROM products", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_SelectAllColumns(t *testing.T) {
	stmt := From("products").Build()

	assert.Equal(t, "SELECT * FROM products", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_MultipleWhereConditions(t *testing.T) {
	stmt := From("products").
		Select("id", "name").
		Where(Eq("category", "niche")).
		Where(Eq("in_stock", true)).
		Build()

	assert.Equal(t, "SELECT id, name FROM products WHERE category = @p0 AND in_stock = @p1", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "niche",
		"p1": true,
	}, stmt.Params)
}

func TestBuilder_OrderByThenBy(t *testing.T) {
	stmt := From("products").
		Select("id").
		OrderBy("created_at", Desc).
		ThenBy("id", Asc).
		Build()

	assert.Equal(t, "SELECT id FROM products ORDER BY created_at DESC, id ASC", stmt.SQL)
}

func TestBuilder_OrderByReplacesPreviousOrdering(t *testing.T) {
	stmt := From("products").
		Select("id").
		OrderBy("name", Asc).
		OrderBy("brand", Desc).
		Build()

	assert.Equal(t, "SELECT id FROM products ORDER BY brand DESC", stmt.SQL)
}

func TestBuilder_LimitAndOffset(t *testing.T) {
	stmt := From("products").
		Select("id", "name").
		Limit(12).
		Offset(24).
		Build()

	assert.Equal(t, "SELECT id, name FROM products LIMIT @limit OFFSET @offset", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"limit":  int64(12),
		"offset": int64(24),
	}, stmt.Params)
}

func TestBuilder_ZeroOffsetIsOmitted(t *testing.T) {
	stmt := From("products").Select("id").Limit(12).Offset(0).Build()

	assert.Equal(t, "SELECT id FROM products LIMIT @limit", stmt.SQL)
}

func TestBuilder_DistinctAndGroupBy(t *testing.T) {
	brands := From("products").
		Select("brand").
		Distinct().
		Where(Eq("in_stock", true)).
		OrderBy("brand", Asc).
		Build()
	assert.Equal(t, "SELECT DISTINCT brand FROM products WHERE in_stock = @p0 ORDER BY brand ASC", brands.SQL)

	counts := From("reviews").
		Select("product_id", "COUNT(*)").
		Where(In("product_id", []string{"a", "b"})).
		Where(Eq("is_published", true)).
		GroupBy("product_id").
		Build()
	assert.Equal(t, "SELECT product_id, COUNT(*) FROM reviews WHERE product_id IN UNNEST(@p0) AND is_published = @p1 GROUP BY product_id", counts.SQL)
	assert.Equal(t, []string{"a", "b"}, counts.Params["p0"])
}

func TestBuilder_Count(t *testing.T) {
	builder := From("products").
		Select("id", "name", "brand").
		Where(EqFold("brand", "Dior")).
		Where(Eq("in_stock", true)).
		OrderBy("created_at", Desc).
		ThenBy("id", Asc).
		Limit(50).
		Offset(100)

	mainStmt := builder.Build()
	assert.Contains(t, mainStmt.SQL, "SELECT id, name, brand FROM products")
	assert.Contains(t, mainStmt.SQL, "LIMIT @limit")
	assert.Contains(t, mainStmt.SQL, "OFFSET @offset")

	// Count reuses WHERE but drops pagination and ordering.
	countStmt := builder.Count().Build()
	assert.Equal(t, "SELECT COUNT(*) FROM products WHERE LOWER(brand) = @p0 AND in_stock = @p1", countStmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "dior",
		"p1": true,
	}, countStmt.Params)

	mainStmt2 := builder.Build()
	assert.Equal(t, mainStmt.SQL, mainStmt2.SQL)
}

func TestBuilder_Immutability(t *testing.T) {
	base := From("products").Select("id")

	stmt1 := base.Where(Eq("gender", "unisex")).Build()
	stmt2 := base.Where(Eq("category", "fresh")).Build()

	assert.Contains(t, stmt1.SQL, "gender = @p0")
	assert.NotContains(t, stmt1.SQL, "category")

	assert.Contains(t, stmt2.SQL, "category = @p0")
	assert.NotContains(t, stmt2.SQL, "gender")
}

func TestBuilder_WhereAllNumbersParamsAcrossGroups(t *testing.T) {
	stmt := From("products").
		Select("id").
		WhereAll([]Condition{
			Or(ContainsFold("name", "oud"), ContainsFold("brand", "oud")),
			Or(Gte("price_2ml", 10.0), Gte("price_5ml", 10.0)),
			Eq("in_stock", true),
		}).
		Build()

	assert.Equal(t,
		"SELECT id FROM products WHERE (LOWER(name) LIKE @p0 OR LOWER(brand) LIKE @p1) AND (price_2ml >= @p2 OR price_5ml >= @p3) AND in_stock = @p4",
		stmt.SQL)
	assert.Len(t, stmt.Params, 5)
	assert.Equal(t, "%oud%", stmt.Params["p0"])
	assert.Equal(t, 10.0, stmt.Params["p3"])
}

func TestCondition_Comparisons(t *testing.T) {
	tests := []struct {
		name      string
		condition Condition
		wantSQL   string
	}{
		{"eq", Eq("category", "niche"), "category = @p3"},
		{"gte", Gte("price_5ml", 12.5), "price_5ml >= @p3"},
		{"lte", Lte("price_10ml", 40.0), "price_10ml <= @p3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, params := tt.condition.SQL(3)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Len(t, params, 1)
			assert.Contains(t, params, "p3")
		})
	}
}

func TestCondition_EqFold(t *testing.T) {
	sql, params := EqFold("brand", "Maison Margiela").SQL(0)

	assert.Equal(t, "LOWER(brand) = @p0", sql)
	assert.Equal(t, map[string]interface{}{"p0": "maison margiela"}, params)
}

func TestCondition_ContainsFoldEscapesWildcards(t *testing.T) {
	sql, params := ContainsFold("name", "100%_Oud").SQL(0)

	assert.Equal(t, "LOWER(name) LIKE @p0", sql)
	assert.Equal(t, `%100\%\_oud%`, params["p0"])
}

func TestCondition_OrGroups(t *testing.T) {
	sql, params := Or(Eq("a", 1), Eq("b", 2)).SQL(0)
	assert.Equal(t, "(a = @p0 OR b = @p1)", sql)
	assert.Len(t, params, 2)

	sql, _ = Or(Eq("a", 1)).SQL(0)
	assert.Equal(t, "a = @p0", sql, "single child is not wrapped")

	sql, _ = Or().SQL(0)
	assert.Equal(t, "FALSE", sql)
}

func TestBuilder_String(t *testing.T) {
	builder := From("products").
		Select("id", "name").
		Where(Eq("in_stock", true))

	str := builder.String()
	require.NotEmpty(t, str)
	assert.Contains(t, str, "SQL:")
	assert.Contains(t, str, "Params:")
	assert.Contains(t, str, "products")
}
