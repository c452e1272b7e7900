//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/flapabay/flapabay-engine/internal/domain"
	mysqlrepo "github.com/flapabay/flapabay-engine/internal/storage/mysql"
)

// ---------- small helpers ----------
func pstr(s string) *string     { return &s }
func pfloat(f float64) *float64 { return &f }

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/migrations)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=flapabay",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "flapabay")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func sampleInput(title string, price float64, verified bool, ptype string) domain.NewPropertyInput {
	return domain.NewPropertyInput{
		Title:        title,
		Description:  "desc",
		Location:     "Kinglake",
		Address:      "1 Main St",
		County:       "Kinglake",
		Country:      "Australia",
		CheckInHour:  "15:00",
		CheckOutHour: "10:00",
		Currency:     "AUD",
		Price:        price,
		Verified:     verified,
		PropertyType: ptype,
		Amenities:    []string{"wifi"},
		Images:       []string{"a.jpg", "b.jpg"},
		Lat:          pfloat(-37.5),
		Lon:          pfloat(145.3),
		PriceRange:   &domain.PriceRange{Min: 100, Max: 200},
		VideoLink:    pstr("https://example.com/v.mp4"),
	}
}

// ---------- the tests ----------

func TestRepo_MySQL_InsertGetAndFilter(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	id1, err := repo.InsertProperty(ctx, sampleInput("Cabin", 120, true, "cabin"))
	if err != nil {
		t.Fatalf("InsertProperty: %v", err)
	}
	if _, err := repo.InsertProperty(ctx, sampleInput("Villa", 400, true, "villa")); err != nil {
		t.Fatalf("InsertProperty: %v", err)
	}
	if _, err := repo.InsertProperty(ctx, sampleInput("Shed", 90, false, "cabin")); err != nil {
		t.Fatalf("InsertProperty: %v", err)
	}

	// round-trip, including optionals and JSON columns
	p, err := repo.GetProperty(ctx, id1)
	if err != nil {
		t.Fatalf("GetProperty: %v", err)
	}
	if p.Title != "Cabin" || p.Lat == nil || *p.Lat != -37.5 || len(p.Images) != 2 {
		t.Fatalf("unexpected property: %+v", p)
	}
	if p.PriceRange == nil || p.PriceRange.Min != 100 || p.PriceRange.Max != 200 {
		t.Fatalf("price range lost: %+v", p.PriceRange)
	}
	if p.VideoLink == nil || *p.VideoLink != "https://example.com/v.mp4" {
		t.Fatalf("video link lost: %+v", p.VideoLink)
	}

	// composed filter: verified cabins in 50..150
	got, err := repo.ListProperties(ctx, domain.PropertyFilter{}.Verified().OfType("cabin").WithinPriceRange(50, 150))
	if err != nil {
		t.Fatalf("ListProperties: %v", err)
	}
	if len(got) != 1 || got[0].ID != id1 {
		t.Fatalf("unexpected filtered result: %+v", got)
	}

	if _, err := repo.GetProperty(ctx, 999999); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_MySQL_UpsertFeedProperty(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	id, err := repo.UpsertFeedProperty(ctx, 5001, sampleInput("Cabin", 120, true, "cabin"))
	if err != nil {
		t.Fatalf("UpsertFeedProperty: %v", err)
	}
	id2, err := repo.UpsertFeedProperty(ctx, 5001, sampleInput("Cabin Renamed", 130, true, "cabin"))
	if err != nil {
		t.Fatalf("UpsertFeedProperty again: %v", err)
	}
	if id != id2 {
		t.Fatalf("re-import created a new row: %d vs %d", id, id2)
	}

	p, err := repo.GetProperty(ctx, id)
	if err != nil {
		t.Fatalf("GetProperty: %v", err)
	}
	if p.Title != "Cabin Renamed" || p.Price != 130 {
		t.Fatalf("upsert did not update: %+v", p)
	}
	if p.FeedID == nil || *p.FeedID != 5001 {
		t.Fatalf("feed id lost: %+v", p.FeedID)
	}

	if err := repo.LogMiss(ctx, 5002, 404, "not found"); err != nil {
		t.Fatalf("LogMiss: %v", err)
	}
	// re-logging the same feed id only touches seen_at
	if err := repo.LogMiss(ctx, 5002, 403, "inactive"); err != nil {
		t.Fatalf("LogMiss again: %v", err)
	}
}

func TestRepo_MySQL_ListReviewsByUser(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// reviews are written by the account platform; seed them directly
	seed := `INSERT INTO user_reviews (user_id, rating, title, ` + "`text`" + `, raw) VALUES
	  (7, 4.5, 'Great host', 'Would stay again', '{}'),
	  (7, NULL, NULL, NULL, NULL),
	  (8, 3.0, 'Fine', 'ok', '{}')`
	if _, err := db.ExecContext(ctx, seed); err != nil {
		t.Fatalf("seed reviews: %v", err)
	}

	rs, err := repo.ListReviewsByUser(ctx, 7)
	if err != nil {
		t.Fatalf("ListReviewsByUser: %v", err)
	}
	if len(rs) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(rs))
	}
	if rs[0].ID > rs[1].ID {
		t.Fatalf("insertion order not preserved: %+v", rs)
	}
	if rs[0].Rating == nil || *rs[0].Rating != 4.5 || rs[0].Title == nil || *rs[0].Title != "Great host" {
		t.Fatalf("unexpected first review: %+v", rs[0])
	}
	if rs[1].Rating != nil || rs[1].Title != nil || rs[1].Text != nil {
		t.Fatalf("NULL columns should map to nil: %+v", rs[1])
	}

	none, err := repo.ListReviewsByUser(ctx, 99)
	if err != nil {
		t.Fatalf("ListReviewsByUser: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no reviews, got %+v", none)
	}
}
