package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/talent-scout/internal/domain/profile"
	qb "github.com/riskibarqy/talent-scout/internal/platform/querybuilder"
)

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) FindByID(ctx context.Context, kind profile.Kind, id string) (profile.Profile, bool, error) {
	switch kind {
	case profile.KindPlayer:
		query, args, err := qb.Select("*").From(playerProfilesTable).Where(qb.Eq("id", id)).Limit(1).ToSQL()
		if err != nil {
			return profile.Profile{}, false, fmt.Errorf("build get player profile query: %w", err)
		}
		var row playerProfileTableModel
		if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
			if isNotFound(err) {
				return profile.Profile{}, false, nil
			}
			return profile.Profile{}, false, fmt.Errorf("get player profile: %w", err)
		}
		item, err := playerFromRow(row)
		if err != nil {
			return profile.Profile{}, false, err
		}
		return profile.Profile{Kind: kind, Player: &item}, true, nil
	case profile.KindClub:
		query, args, err := qb.Select("*").From(clubProfilesTable).Where(qb.Eq("id", id)).Limit(1).ToSQL()
		if err != nil {
			return profile.Profile{}, false, fmt.Errorf("build get club profile query: %w", err)
		}
		var row clubProfileTableModel
		if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
			if isNotFound(err) {
				return profile.Profile{}, false, nil
			}
			return profile.Profile{}, false, fmt.Errorf("get club profile: %w", err)
		}
		item := clubFromRow(row)
		return profile.Profile{Kind: kind, Club: &item}, true, nil
	default:
		return profile.Profile{}, false, fmt.Errorf("%w: kind %q", profile.ErrInvalidEnum, kind)
	}
}

// Save rewrites the whole record when the stored revision still equals
// expectedRevision. The revision is bumped in the same statement.
func (r *ProfileRepository) Save(ctx context.Context, p profile.Profile, expectedRevision int64) (profile.Profile, error) {
	var (
		table string
		model any
	)
	switch {
	case p.Kind == profile.KindPlayer && p.Player != nil:
		w, err := playerWriteModel(*p.Player)
		if err != nil {
			return profile.Profile{}, err
		}
		table, model = playerProfilesTable, w
	case p.Kind == profile.KindClub && p.Club != nil:
		table, model = clubProfilesTable, clubWriteModel(*p.Club)
	default:
		return profile.Profile{}, fmt.Errorf("%w: profile variant does not match kind %q", profile.ErrInvalidPayload, p.Kind)
	}

	update, err := qb.UpdateModel(table, model)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("build save %s profile query: %w", p.Kind, err)
	}
	query, args, err := update.
		SetExpr("revision", "revision + 1").
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", p.ID()), qb.Eq("revision", expectedRevision)).
		Suffix("RETURNING *").
		ToSQL()
	if err != nil {
		return profile.Profile{}, fmt.Errorf("build save %s profile query: %w", p.Kind, err)
	}

	var saved profile.Profile
	switch p.Kind {
	case profile.KindPlayer:
		var row playerProfileTableModel
		err = r.db.GetContext(ctx, &row, query, args...)
		if err == nil {
			item, decodeErr := playerFromRow(row)
			if decodeErr != nil {
				return profile.Profile{}, decodeErr
			}
			saved = profile.Profile{Kind: p.Kind, Player: &item}
		}
	case profile.KindClub:
		var row clubProfileTableModel
		err = r.db.GetContext(ctx, &row, query, args...)
		if err == nil {
			item := clubFromRow(row)
			saved = profile.Profile{Kind: p.Kind, Club: &item}
		}
	}
	if err == nil {
		return saved, nil
	}
	if !isNotFound(err) {
		return profile.Profile{}, fmt.Errorf("save %s profile: %w", p.Kind, err)
	}

	// No row matched: either the record is gone or another writer won.
	_, exists, findErr := r.FindByID(ctx, p.Kind, p.ID())
	if findErr != nil {
		return profile.Profile{}, findErr
	}
	if !exists {
		return profile.Profile{}, profile.ErrNotFound
	}
	return profile.Profile{}, fmt.Errorf("%w: expected revision %d", profile.ErrRevisionConflict, expectedRevision)
}

func (r *ProfileRepository) DeleteByID(ctx context.Context, kind profile.Kind, id string) error {
	return deleteProfile(ctx, r.db, kind, id)
}

func (r *ProfileRepository) ListPlayers(ctx context.Context, filter profile.PlayerFilter) ([]profile.Player, error) {
	conditions := make([]qb.Condition, 0, 2)
	if filter.Sport != "" {
		conditions = append(conditions, qb.Eq("sport", string(filter.Sport)))
	}
	if filter.CompletedOnly {
		conditions = append(conditions, qb.Eq("profile_completed", true))
	}

	query, args, err := qb.Select("*").
		From(playerProfilesTable).
		Where(conditions...).
		OrderBy("LOWER(name) ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerProfileTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]profile.Player, 0, len(rows))
	for _, row := range rows {
		item, err := playerFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *ProfileRepository) ListClubs(ctx context.Context) ([]profile.Club, error) {
	query, args, err := qb.Select("*").
		From(clubProfilesTable).
		OrderBy("LOWER(name) ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list clubs query: %w", err)
	}

	var rows []clubProfileTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}

	out := make([]profile.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, clubFromRow(row))
	}
	return out, nil
}

func insertProfile(ctx context.Context, exec sqlx.ExecerContext, p profile.Profile) error {
	var (
		query string
		args  []any
		err   error
	)
	switch {
	case p.Kind == profile.KindPlayer && p.Player != nil:
		model, modelErr := playerInsertModel(*p.Player)
		if modelErr != nil {
			return modelErr
		}
		query, args, err = qb.InsertModel(playerProfilesTable, model, "")
	case p.Kind == profile.KindClub && p.Club != nil:
		query, args, err = qb.InsertModel(clubProfilesTable, clubInsertModel(*p.Club), "")
	default:
		return fmt.Errorf("%w: profile variant does not match kind %q", profile.ErrInvalidPayload, p.Kind)
	}
	if err != nil {
		return fmt.Errorf("build insert %s profile query: %w", p.Kind, err)
	}

	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s profile: %w", p.Kind, err)
	}
	return nil
}

func deleteProfile(ctx context.Context, exec sqlx.ExecerContext, kind profile.Kind, id string) error {
	var table string
	switch kind {
	case profile.KindPlayer:
		table = playerProfilesTable
	case profile.KindClub:
		table = clubProfilesTable
	default:
		return fmt.Errorf("%w: kind %q", profile.ErrInvalidEnum, kind)
	}

	query, args, err := qb.DeleteFrom(table).Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete %s profile query: %w", kind, err)
	}
	res, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete %s profile: %w", kind, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s profile rows affected: %w", kind, err)
	}
	if affected == 0 {
		return profile.ErrNotFound
	}
	return nil
}
