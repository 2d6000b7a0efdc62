package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("player_profiles").
		Where(Eq("sport", "Football"), IsNull("deleted_at")).
		OrderBy("name").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM player_profiles WHERE sport = $1 AND deleted_at IS NULL ORDER BY name LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "Football" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_InAndSuffix(t *testing.T) {
	query, args, err := Select("*").
		From("accounts").
		Where(In("role", "player", "club")).
		Suffix("FOR UPDATE").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM accounts WHERE role IN ($1, $2) FOR UPDATE"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		ID       string `db:"id"`
		Name     string `db:"name"`
		Ignored  string `db:"-"`
		internal string
	}

	query, args, err := InsertModel("club_profiles", row{ID: "c1", Name: "FC", internal: "x"}, "RETURNING created_at")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO club_profiles (id, name) VALUES ($1, $2) RETURNING created_at"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "c1" || args[1] != "FC" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateModel_WithRevisionGuard(t *testing.T) {
	type row struct {
		Name     string `db:"name"`
		Revision int64  `db:"revision"`
	}

	b, err := UpdateModel("club_profiles", row{Name: "FC", Revision: 3})
	if err != nil {
		t.Fatalf("build update model: %v", err)
	}
	query, args, err := b.
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "c1"), Expr("revision = ?", int64(2))).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE club_profiles SET name = $1, revision = $2, updated_at = NOW() WHERE id = $3 AND revision = $4"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[3] != int64(2) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("accounts").Where(Eq("id", "a1")).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM accounts WHERE id = $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 || args[0] != "a1" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("accounts").ToSQL(); err == nil {
		t.Fatalf("expected error for delete without conditions")
	}
}

func TestInCondition_EmptyIsAlwaysFalse(t *testing.T) {
	query, args, err := Select("id").From("accounts").Where(In("role")).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM accounts WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}

func TestInsertModel_RejectsEmptyModels(t *testing.T) {
	type noColumns struct {
		Name string
	}
	if _, _, err := InsertModel("accounts", noColumns{Name: "x"}, ""); err == nil {
		t.Fatalf("expected error for model without db tags")
	}
	if _, _, err := InsertModel("accounts", (*noColumns)(nil), ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
}
