package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	common "github.com/rivio-api/rivio-api/pkg/domain"
)

// demoPlayerPassword is the shared login password for every seeded demo
// player, documented here rather than hidden so local/staging logins work
// out of the box.
const demoPlayerPassword = "Padel_Demo_1"

// categorySeed is one skill-category row for a given ladder.
type categorySeed struct {
	Ladder    common.LadderCode
	Code      string
	Name      string
	SortOrder int
}

var seedCategories = []categorySeed{
	{common.LadderHM, "1", "Men's 1st Category", 1},
	{common.LadderHM, "2", "Men's 2nd Category", 2},
	{common.LadderHM, "3", "Men's 3rd Category", 3},
	{common.LadderHM, "4", "Men's 4th Category", 4},
	{common.LadderHM, "5", "Men's 5th Category", 5},
	{common.LadderWM, "1", "Women's 1st Category", 1},
	{common.LadderWM, "2", "Women's 2nd Category", 2},
	{common.LadderWM, "3", "Women's 3rd Category", 3},
	{common.LadderWM, "4", "Women's 4th Category", 4},
	{common.LadderWM, "5", "Women's 5th Category", 5},
	{common.LadderMX, "A", "Mixed A", 1},
	{common.LadderMX, "B", "Mixed B", 2},
	{common.LadderMX, "C", "Mixed C", 3},
}

// mxMapSeed derives a player's Mixed category from their primary (HM/WM)
// category, scored so pairing logic can balance a mixed team.
type mxMapSeed struct {
	Gender      string
	PrimaryCode string
	MxCode      string
	MxScore     int
}

var seedMxMap = []mxMapSeed{
	{"M", "1", "A", 5}, {"M", "2", "A", 4}, {"M", "3", "B", 3}, {"M", "4", "B", 2}, {"M", "5", "C", 1},
	{"F", "1", "A", 5}, {"F", "2", "A", 4}, {"F", "3", "B", 3}, {"F", "4", "B", 2}, {"F", "5", "C", 1},
}

var seedClubs = []struct {
	Name    string
	City    string
	Country string
}{
	{"Club de Padel Central", "Madrid", "ES"},
	{"Riverside Padel Courts", "Lisbon", "PT"},
	{"Sunset Padel Club", "Buenos Aires", "AR"},
	{"Northside Padel Arena", "Stockholm", "SE"},
}

// demoPlayer seeds a user, identity, credential, profile, and a starting
// ladder state so rankings and history have something to display.
type demoPlayer struct {
	Phone      string
	Alias      string
	Gender     string
	Country    string
	City       string
	Ladder     common.LadderCode
	CategoryID int // index into seedCategories for this ladder's first category
	Rating     int
}

var seedPlayers = []demoPlayer{
	{"+34600000001", "Carlos M.", "M", "ES", "Madrid", common.LadderHM, 0, 1650},
	{"+34600000002", "Diego R.", "M", "ES", "Madrid", common.LadderHM, 0, 1590},
	{"+351900000003", "Ines S.", "F", "PT", "Lisbon", common.LadderWM, 0, 1610},
	{"+351900000004", "Mariana P.", "F", "PT", "Lisbon", common.LadderWM, 0, 1480},
	{"+54900000005", "Tomas L.", "M", "AR", "Buenos Aires", common.LadderHM, 1, 1420},
	{"+54900000006", "Sofia G.", "F", "AR", "Buenos Aires", common.LadderWM, 1, 1390},
}

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if os.Getenv("DEV_ENV") == "true" || os.Getenv("DATABASE_URL") == "" {
		if err := godotenv.Load(); err != nil {
			slog.Warn("no .env file found, using environment variables")
		}
	}

	config := common.LoadConfig()

	db, err := sqlx.ConnectContext(ctx, "postgres", config.DB.URL)
	if err != nil {
		slog.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slog.Info("connected to postgres", "db", config.DB.URL)

	categoryIDs, err := seedCategoriesData(ctx, db)
	if err != nil {
		slog.Error("failed to seed categories", "error", err)
		os.Exit(1)
	}

	if err := seedMxMapData(ctx, db); err != nil {
		slog.Error("failed to seed mx category map", "error", err)
		os.Exit(1)
	}

	if err := seedClubsData(ctx, db); err != nil {
		slog.Error("failed to seed clubs", "error", err)
		os.Exit(1)
	}

	if err := seedPlayersData(ctx, db, categoryIDs); err != nil {
		slog.Error("failed to seed players", "error", err)
		os.Exit(1)
	}

	slog.Info("seed completed successfully",
		"categories", len(seedCategories),
		"mx_map_rows", len(seedMxMap),
		"clubs", len(seedClubs),
		"players", len(seedPlayers),
	)
}

// seedCategoriesData returns, for each (ladder, category index) seeded,
// the category's generated id, keyed as "LADDER:index".
func seedCategoriesData(ctx context.Context, db *sqlx.DB) (map[string]uuid.UUID, error) {
	ids := make(map[string]uuid.UUID)
	countByLadder := make(map[common.LadderCode]int)

	for _, cat := range seedCategories {
		var existingID uuid.UUID
		err := db.GetContext(ctx, &existingID,
			`SELECT id FROM categories WHERE ladder_code=$1 AND code=$2`, cat.Ladder, cat.Code)
		if err == nil {
			ids[key(cat.Ladder, countByLadder[cat.Ladder])] = existingID
			countByLadder[cat.Ladder]++
			continue
		}

		id := uuid.New()
		_, err = db.ExecContext(ctx,
			`INSERT INTO categories (id, ladder_code, code, name, sort_order) VALUES ($1, $2, $3, $4, $5)`,
			id, cat.Ladder, cat.Code, cat.Name, cat.SortOrder)
		if err != nil {
			return nil, err
		}
		ids[key(cat.Ladder, countByLadder[cat.Ladder])] = id
		countByLadder[cat.Ladder]++
		slog.Info("created category", "ladder", cat.Ladder, "code", cat.Code)
	}

	return ids, nil
}

func key(ladder common.LadderCode, index int) string {
	return fmt.Sprintf("%s:%d", ladder, index)
}

func seedMxMapData(ctx context.Context, db *sqlx.DB) error {
	for _, m := range seedMxMap {
		var exists bool
		err := db.GetContext(ctx, &exists,
			`SELECT true FROM mx_category_map WHERE gender=$1 AND primary_code=$2`, m.Gender, m.PrimaryCode)
		if err == nil {
			continue
		}

		_, err = db.ExecContext(ctx,
			`INSERT INTO mx_category_map (gender, primary_code, mx_code, mx_score) VALUES ($1, $2, $3, $4)`,
			m.Gender, m.PrimaryCode, m.MxCode, m.MxScore)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedClubsData(ctx context.Context, db *sqlx.DB) error {
	for _, c := range seedClubs {
		var exists bool
		err := db.GetContext(ctx, &exists, `SELECT true FROM clubs WHERE name=$1`, c.Name)
		if err == nil {
			slog.Info("club already exists, skipping", "name", c.Name)
			continue
		}

		_, err = db.ExecContext(ctx,
			`INSERT INTO clubs (id, name, city, country, is_active) VALUES ($1, $2, $3, $4, true)`,
			uuid.New(), c.Name, c.City, c.Country)
		if err != nil {
			return err
		}
		slog.Info("created club", "name", c.Name)
	}
	return nil
}

func seedPlayersData(ctx context.Context, db *sqlx.DB, categoryIDs map[string]uuid.UUID) error {
	for _, p := range seedPlayers {
		var existingUserID uuid.UUID
		err := db.GetContext(ctx, &existingUserID, `SELECT id FROM users WHERE phone=$1`, p.Phone)
		if err == nil {
			slog.Info("player already exists, skipping", "alias", p.Alias)
			continue
		}

		userID := uuid.New()
		now := time.Now()

		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, phone, status, created_at, updated_at) VALUES ($1, $2, 'active', $3, $3)`,
			userID, p.Phone, now); err != nil {
			tx.Rollback()
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO auth_identities (id, user_id, kind, value, is_verified, verified_at, created_at, updated_at)
			 VALUES ($1, $2, 'phone', $3, true, $4, $4, $4)`,
			uuid.New(), userID, p.Phone, now); err != nil {
			tx.Rollback()
			return err
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(demoPlayerPassword), bcrypt.DefaultCost)
		if err != nil {
			tx.Rollback()
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO auth_credentials (user_id, password_hash, password_updated_at) VALUES ($1, $2, $3)`,
			userID, string(passwordHash), now); err != nil {
			tx.Rollback()
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_profiles (user_id, alias, gender, is_public, country, city, created_at, updated_at)
			 VALUES ($1, $2, $3, true, $4, $5, $6, $6)`,
			userID, p.Alias, p.Gender, p.Country, p.City, now); err != nil {
			tx.Rollback()
			return err
		}

		categoryID := categoryIDs[key(p.Ladder, p.CategoryID)]
		if categoryID == uuid.Nil {
			if err := tx.Commit(); err != nil {
				return err
			}
			slog.Warn("no seeded category for player, ladder state skipped", "alias", p.Alias)
			continue
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_ladder_states (user_id, ladder_code, category_id, rating, verified_matches, is_provisional, trust_score, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, 10, false, 100, $5, $5)`,
			userID, p.Ladder, categoryID, p.Rating, now); err != nil {
			tx.Rollback()
			return err
		}

		if err := tx.Commit(); err != nil {
			return err
		}

		slog.Info("created demo player", "alias", p.Alias, "ladder", p.Ladder, "rating", p.Rating)
	}

	return nil
}
