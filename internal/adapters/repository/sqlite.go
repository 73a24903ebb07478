package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/boztas13/footballers-overall-database/internal/domain/model"
	_ "modernc.org/sqlite" // driver: sqlite
)

// DefaultDSN is used when no data source is configured.
const DefaultDSN = "file:football.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"

const schema = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS players (
  player_id   TEXT PRIMARY KEY,
  player_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS player_stats (
  player_id       TEXT PRIMARY KEY REFERENCES players(player_id) ON DELETE CASCADE,
  competition_id  INTEGER NOT NULL,
  age             INTEGER NOT NULL,
  minutes_played  REAL NOT NULL,
  matches_played  INTEGER NOT NULL,
  passes REAL NOT NULL DEFAULT 0,
  completed_passes REAL NOT NULL DEFAULT 0,
  key_passes REAL NOT NULL DEFAULT 0,
  assists REAL NOT NULL DEFAULT 0,
  shots REAL NOT NULL DEFAULT 0,
  shots_on_target REAL NOT NULL DEFAULT 0,
  goals REAL NOT NULL DEFAULT 0,
  xg REAL NOT NULL DEFAULT 0,
  xa REAL NOT NULL DEFAULT 0,
  dribbles REAL NOT NULL DEFAULT 0,
  dribbles_successful REAL NOT NULL DEFAULT 0,
  tackles REAL NOT NULL DEFAULT 0,
  tackles_won REAL NOT NULL DEFAULT 0,
  interceptions REAL NOT NULL DEFAULT 0,
  clearances REAL NOT NULL DEFAULT 0,
  blocks REAL NOT NULL DEFAULT 0,
  aerial_duels REAL NOT NULL DEFAULT 0,
  aerial_duels_won REAL NOT NULL DEFAULT 0,
  pressures REAL NOT NULL DEFAULT 0,
  fouls_committed REAL NOT NULL DEFAULT 0,
  fouls_won REAL NOT NULL DEFAULT 0,
  cards_yellow REAL NOT NULL DEFAULT 0,
  cards_red REAL NOT NULL DEFAULT 0,
  saves REAL NOT NULL DEFAULT 0,
  goals_conceded REAL NOT NULL DEFAULT 0,
  clean_sheets REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS player_attributes (
  player_id TEXT NOT NULL REFERENCES players(player_id) ON DELETE CASCADE,
  attribute TEXT NOT NULL,
  value     REAL NOT NULL,
  PRIMARY KEY (player_id, attribute)
);

CREATE TABLE IF NOT EXISTS player_ratings (
  player_id TEXT PRIMARY KEY REFERENCES players(player_id) ON DELETE CASCADE,
  ca_gk  REAL NOT NULL,
  ca_def REAL NOT NULL,
  ca_mid REAL NOT NULL,
  ca_fwd REAL NOT NULL,
  ca     REAL NOT NULL,
  pa     REAL NOT NULL
);
`

// SQLiteStore persists aggregates and ratings in a sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at dsn and ensures the
// schema exists. An empty dsn uses DefaultDSN.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenDatabase, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpenDatabase, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpenDatabase, err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// PutSeasonAggregate upserts the player row and its season stats.
func (s *SQLiteStore) PutSeasonAggregate(ctx context.Context, agg model.PlayerSeasonAggregate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO players (player_id, player_name) VALUES (?, ?)
		 ON CONFLICT(player_id) DO UPDATE SET player_name = excluded.player_name`,
		agg.PlayerID, agg.PlayerName,
	); err != nil {
		return err
	}

	c := agg.Counts
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO player_stats (
			player_id, competition_id, age, minutes_played, matches_played,
			passes, completed_passes, key_passes, assists,
			shots, shots_on_target, goals, xg, xa,
			dribbles, dribbles_successful,
			tackles, tackles_won, interceptions, clearances, blocks,
			aerial_duels, aerial_duels_won,
			pressures, fouls_committed, fouls_won, cards_yellow, cards_red,
			saves, goals_conceded, clean_sheets
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(player_id) DO UPDATE SET
			competition_id=excluded.competition_id, age=excluded.age,
			minutes_played=excluded.minutes_played, matches_played=excluded.matches_played,
			passes=excluded.passes, completed_passes=excluded.completed_passes,
			key_passes=excluded.key_passes, assists=excluded.assists,
			shots=excluded.shots, shots_on_target=excluded.shots_on_target,
			goals=excluded.goals, xg=excluded.xg, xa=excluded.xa,
			dribbles=excluded.dribbles, dribbles_successful=excluded.dribbles_successful,
			tackles=excluded.tackles, tackles_won=excluded.tackles_won,
			interceptions=excluded.interceptions, clearances=excluded.clearances,
			blocks=excluded.blocks, aerial_duels=excluded.aerial_duels,
			aerial_duels_won=excluded.aerial_duels_won, pressures=excluded.pressures,
			fouls_committed=excluded.fouls_committed, fouls_won=excluded.fouls_won,
			cards_yellow=excluded.cards_yellow, cards_red=excluded.cards_red,
			saves=excluded.saves, goals_conceded=excluded.goals_conceded,
			clean_sheets=excluded.clean_sheets`,
		agg.PlayerID, agg.CompetitionID, agg.Age, agg.MinutesPlayed, agg.MatchesPlayed,
		c.Passes, c.CompletedPasses, c.KeyPasses, c.Assists,
		c.Shots, c.ShotsOnTarget, c.Goals, c.XG, c.XA,
		c.Dribbles, c.DribblesSuccessful,
		c.Tackles, c.TacklesWon, c.Interceptions, c.Clearances, c.Blocks,
		c.AerialDuels, c.AerialDuelsWon,
		c.Pressures, c.FoulsCommitted, c.FoulsWon, c.CardsYellow, c.CardsRed,
		c.Saves, c.GoalsConceded, c.CleanSheets,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// SeasonAggregates returns all stored season aggregates.
func (s *SQLiteStore) SeasonAggregates(ctx context.Context) ([]model.PlayerSeasonAggregate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.player_id, p.player_name, ps.competition_id, ps.age,
			ps.minutes_played, ps.matches_played,
			ps.passes, ps.completed_passes, ps.key_passes, ps.assists,
			ps.shots, ps.shots_on_target, ps.goals, ps.xg, ps.xa,
			ps.dribbles, ps.dribbles_successful,
			ps.tackles, ps.tackles_won, ps.interceptions, ps.clearances, ps.blocks,
			ps.aerial_duels, ps.aerial_duels_won,
			ps.pressures, ps.fouls_committed, ps.fouls_won, ps.cards_yellow, ps.cards_red,
			ps.saves, ps.goals_conceded, ps.clean_sheets
		 FROM player_stats ps JOIN players p ON ps.player_id = p.player_id
		 ORDER BY p.player_id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.PlayerSeasonAggregate
	for rows.Next() {
		var a model.PlayerSeasonAggregate
		c := &a.Counts
		if err := rows.Scan(
			&a.PlayerID, &a.PlayerName, &a.CompetitionID, &a.Age,
			&a.MinutesPlayed, &a.MatchesPlayed,
			&c.Passes, &c.CompletedPasses, &c.KeyPasses, &c.Assists,
			&c.Shots, &c.ShotsOnTarget, &c.Goals, &c.XG, &c.XA,
			&c.Dribbles, &c.DribblesSuccessful,
			&c.Tackles, &c.TacklesWon, &c.Interceptions, &c.Clearances, &c.Blocks,
			&c.AerialDuels, &c.AerialDuelsWon,
			&c.Pressures, &c.FoulsCommitted, &c.FoulsWon, &c.CardsYellow, &c.CardsRed,
			&c.Saves, &c.GoalsConceded, &c.CleanSheets,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// SaveRatings replaces the stored rating set with the given batch.
func (s *SQLiteStore) SaveRatings(ctx context.Context, ratings []model.PlayerRating) error {
	if len(ratings) == 0 {
		return ErrEmptyBatch
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM player_attributes`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM player_ratings`); err != nil {
		return err
	}

	attrStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO player_attributes (player_id, attribute, value) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = attrStmt.Close() }()

	ratingStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO player_ratings (player_id, ca_gk, ca_def, ca_mid, ca_fwd, ca, pa)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = ratingStmt.Close() }()

	for _, r := range ratings {
		for name, value := range r.Attributes {
			if _, err := attrStmt.ExecContext(ctx, r.PlayerID, name, value); err != nil {
				return err
			}
		}
		cr := r.Composite
		if _, err := ratingStmt.ExecContext(ctx,
			r.PlayerID, cr.GK, cr.DEF, cr.MID, cr.FWD, cr.Overall, cr.Potential,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Rating returns one player's stored rating.
func (s *SQLiteStore) Rating(ctx context.Context, playerID string) (model.PlayerRating, error) {
	var r model.PlayerRating
	r.PlayerID = playerID

	err := s.db.QueryRowContext(ctx,
		`SELECT p.player_name, pr.ca_gk, pr.ca_def, pr.ca_mid, pr.ca_fwd, pr.ca, pr.pa
		 FROM player_ratings pr JOIN players p ON pr.player_id = p.player_id
		 WHERE pr.player_id = ?`, playerID,
	).Scan(&r.PlayerName, &r.Composite.GK, &r.Composite.DEF, &r.Composite.MID,
		&r.Composite.FWD, &r.Composite.Overall, &r.Composite.Potential)
	if errors.Is(err, sql.ErrNoRows) {
		return model.PlayerRating{}, ErrNotFound
	}
	if err != nil {
		return model.PlayerRating{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT attribute, value FROM player_attributes WHERE player_id = ?`, playerID)
	if err != nil {
		return model.PlayerRating{}, err
	}
	defer func() { _ = rows.Close() }()

	r.Attributes = make(model.AttributeVector)
	for rows.Next() {
		var name string
		var value float64
		if err := rows.Scan(&name, &value); err != nil {
			return model.PlayerRating{}, err
		}
		r.Attributes[name] = value
	}
	return r, rows.Err()
}

// Ratings returns all stored ratings.
func (s *SQLiteStore) Ratings(ctx context.Context) ([]model.PlayerRating, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id FROM player_ratings ORDER BY player_id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]model.PlayerRating, 0, len(ids))
	for _, id := range ids {
		r, err := s.Rating(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Count returns the number of players with season stats.
func (s *SQLiteStore) Count(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM player_stats`).Scan(&n); err != nil {
		return 0
	}
	return n
}
