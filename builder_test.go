package query

import (
	"strings"
	"testing"
)

const fullQuery = "userId=123&userName=bob&filter[]=orderId-eq-1&filter[]=price-ge-200&sort=price-desc&limit=10&offset=0"

func mustParse(t *testing.T, raw string, allowed ...string) *UrlQuery {
	t.Helper()
	q, err := ParseURLQuery(raw, allowed...)
	if err != nil {
		t.Fatalf("ParseURLQuery(%q) error: %v", raw, err)
	}
	return q
}

func TestBuilder_FromSQL(t *testing.T) {
	parsed := mustParse(t, fullQuery, "userId", "userName", "orderId", "price")

	sql, args := NewBuilderFromSQL("SELECT * FROM orders", parsed).Build()

	want := "SELECT * FROM orders" +
		" WHERE user_id = $1 AND user_name = $2 AND order_id = $3 AND price >= $4" +
		" ORDER BY price DESC" +
		" LIMIT 10" +
		" OFFSET 0"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 4 {
		t.Errorf("len(args) = %d, want 4", len(args))
	}
}

func TestBuilder_TableAndColumns(t *testing.T) {
	parsed := mustParse(t, fullQuery, "userId", "userName", "orderId", "price")

	sql, args := NewBuilder("orders", []string{"id", "status"}, parsed).Build()

	want := "SELECT id, status FROM orders" +
		" WHERE user_id = $1 AND user_name = $2 AND order_id = $3 AND price >= $4" +
		" ORDER BY price DESC" +
		" LIMIT 10" +
		" OFFSET 0"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}

	wantArgs := []Arg{
		{"userId", "123"},
		{"userName", "bob"},
		{"orderId", "1"},
		{"price", "200"},
	}
	if len(args) != len(wantArgs) {
		t.Fatalf("len(args) = %d, want %d", len(args), len(wantArgs))
	}
	for i, a := range args {
		if a != wantArgs[i] {
			t.Errorf("args[%d] = %+v, want %+v", i, a, wantArgs[i])
		}
	}
}

func TestBuilder_AppendJoins(t *testing.T) {
	parsed := mustParse(t, fullQuery, "userId", "userName", "orderId", "price")

	sql, args := NewBuilder("orders", []string{"id", "status"}, parsed).
		Append("JOIN users ON users.id = orders.user_id").
		Append("JOIN inventory ON inventory.id = orders.inventory_id").
		Build()

	want := "SELECT id, status FROM orders" +
		" JOIN users ON users.id = orders.user_id" +
		" JOIN inventory ON inventory.id = orders.inventory_id" +
		" WHERE user_id = $1 AND user_name = $2 AND order_id = $3 AND price >= $4" +
		" ORDER BY price DESC" +
		" LIMIT 10" +
		" OFFSET 0"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 4 {
		t.Errorf("len(args) = %d, want 4", len(args))
	}
}

func TestBuilder_MapColumns(t *testing.T) {
	parsed := mustParse(t, "id=1&group=id&sort=createdAt-desc", "id", "createdAt")

	sql, args := NewBuilderFromSQL(
		"SELECT orders.id, user_id, status, orders.created_at FROM orders", parsed).
		Append("JOIN order_items ON orders.id = order_items.order_id").
		MapColumns(map[string]string{"id": "orders", "createdAt": "orders"}).
		Build()

	want := "SELECT orders.id, user_id, status, orders.created_at FROM orders" +
		" JOIN order_items ON orders.id = order_items.order_id" +
		" WHERE orders.id = $1" +
		" GROUP BY orders.id" +
		" ORDER BY orders.created_at DESC"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 {
		t.Errorf("len(args) = %d, want 1", len(args))
	}
}

func TestBuilder_ShiftBind(t *testing.T) {
	parsed := mustParse(t, "filter[]=userId-eq-1&filter[]=id-eq-2", "userId", "id")

	sql, args := NewBuilderFromSQL(
		"SELECT id, (SELECT postcode FROM address WHERE id = $1) FROM orders", parsed).
		ShiftBind(1).
		Build()

	want := "SELECT id, (SELECT postcode FROM address WHERE id = $1) FROM orders" +
		" WHERE user_id = $2 AND id = $3"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 2 {
		t.Errorf("len(args) = %d, want 2", len(args))
	}
}

func TestBuilder_MySQLPlaceholders(t *testing.T) {
	parsed := mustParse(t, fullQuery, "userId", "userName", "orderId", "price")

	sql, _ := NewBuilder("orders", []string{"id", "status"}, parsed).
		Dialect(MySQL).
		Build()

	want := "SELECT id, status FROM orders" +
		" WHERE user_id = ? AND user_name = ? AND order_id = ? AND price >= ?" +
		" ORDER BY price DESC" +
		" LIMIT 10" +
		" OFFSET 0"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

func TestBuilder_AppendWhereArgs(t *testing.T) {
	parsed := mustParse(t, "filter[]=userId-eq-1&filter[]=id-eq-2", "userId", "id")

	b := NewBuilderFromSQL("", parsed)
	args := b.AppendWhere()

	if len(args) != 2 {
		t.Fatalf("len(args) = %d, want 2", len(args))
	}
	if args[0].Value != "1" {
		t.Errorf("args[0].Value = %q, want 1", args[0].Value)
	}
	if args[1].Value != "2" {
		t.Errorf("args[1].Value = %q, want 2", args[1].Value)
	}
}

func TestBuilder_NoFilters(t *testing.T) {
	parsed := mustParse(t, "")

	b := NewBuilderFromSQL("SELECT * FROM orders", parsed)
	args := b.AppendWhere()

	if args != nil {
		t.Errorf("AppendWhere() = %v, want nil", args)
	}
	sql, _ := b.Build()
	if sql != "SELECT * FROM orders" {
		t.Errorf("sql = %q, want bare select", sql)
	}
}

func TestBuilder_OffsetRequiresLimit(t *testing.T) {
	// Offset alone must never be appended, and no error surfaces.
	parsed := mustParse(t, "userId=1&offset=20", "userId")

	sql, _ := NewBuilderFromSQL("SELECT * FROM orders", parsed).Build()

	if strings.Contains(sql, "OFFSET") {
		t.Errorf("sql = %q, offset must not appear without limit", sql)
	}
	if strings.Contains(sql, "LIMIT") {
		t.Errorf("sql = %q, limit must not appear when absent", sql)
	}
}

func TestBuilder_InvalidLimitDropsBoth(t *testing.T) {
	parsed := mustParse(t, "userId=1&limit=ten&offset=0", "userId")

	sql, args := NewBuilderFromSQL("SELECT * FROM orders", parsed).Build()

	if strings.Contains(sql, "LIMIT") || strings.Contains(sql, "OFFSET") {
		t.Errorf("sql = %q, invalid limit must drop limit and offset silently", sql)
	}
	if len(args) != 1 {
		t.Errorf("len(args) = %d, want 1 despite dropped clauses", len(args))
	}
}

func TestBuilder_InvalidOffsetDropsOffsetOnly(t *testing.T) {
	parsed := mustParse(t, "userId=1&limit=10&offset=x", "userId")

	sql, _ := NewBuilderFromSQL("SELECT * FROM orders", parsed).Build()

	if !strings.HasSuffix(sql, " LIMIT 10") {
		t.Errorf("sql = %q, want trailing LIMIT 10 with no OFFSET", sql)
	}
}

func TestBuilder_ClauseOrder(t *testing.T) {
	parsed := mustParse(t, "userId=1&group=status&sort=price-asc&limit=5&offset=10",
		"userId", "status", "price")

	sql, _ := NewBuilder("orders", []string{"id"}, parsed).Build()

	order := []string{" WHERE ", " GROUP BY ", " ORDER BY ", " LIMIT ", " OFFSET "}
	last := -1
	for _, clause := range order {
		idx := strings.Index(sql, clause)
		if idx < 0 {
			t.Fatalf("sql = %q missing clause %q", sql, clause)
		}
		if idx < last {
			t.Errorf("sql = %q: clause %q out of order", sql, clause)
		}
		last = idx
	}
}

func TestBuilder_EmptyColumns(t *testing.T) {
	parsed := mustParse(t, "")

	sql, _ := NewBuilder("orders", nil, parsed).Build()

	// Degenerate but accepted output, preserved deliberately.
	if sql != "SELECT  FROM orders" {
		t.Errorf("sql = %q, want %q", sql, "SELECT  FROM orders")
	}
}

func TestBuilder_Deterministic(t *testing.T) {
	build := func() (string, []Arg) {
		parsed := mustParse(t, fullQuery, "userId", "userName", "orderId", "price")
		return NewBuilder("orders", []string{"id", "status"}, parsed).Build()
	}

	sql1, args1 := build()
	sql2, args2 := build()

	if sql1 != sql2 {
		t.Errorf("two builds disagree:\n%q\n%q", sql1, sql2)
	}
	if len(args1) != len(args2) {
		t.Fatalf("arg counts disagree: %d vs %d", len(args1), len(args2))
	}
	for i := range args1 {
		if args1[i] != args2[i] {
			t.Errorf("args[%d] disagree: %+v vs %+v", i, args1[i], args2[i])
		}
	}
}

func TestBuilder_ArgsLenMatchesFilters(t *testing.T) {
	tests := []struct {
		raw     string
		allowed []string
		want    int
	}{
		{"", nil, 0},
		{"userId=1", []string{"userId"}, 1},
		{"userId=1&group=userId&sort=userId-asc&limit=5", []string{"userId"}, 1},
		{"filter[]=a-eq-1&filter[]=b-eq-2&filter[]=c-eq-3", []string{"a", "b", "c"}, 3},
	}

	for _, tt := range tests {
		parsed := mustParse(t, tt.raw, tt.allowed...)
		_, args := NewBuilder("t", []string{"id"}, parsed).Build()
		if len(args) != tt.want {
			t.Errorf("query %q: len(args) = %d, want %d", tt.raw, len(args), tt.want)
		}
	}
}
