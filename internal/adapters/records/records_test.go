package records

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
	_ "modernc.org/sqlite"

	"company-map-service/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func TestSeedAndListPreservesOrder(t *testing.T) {
	db := openTestDB(t)

	companies := []domain.Company{
		{ID: "b", Name: "Beta", AnnualTurnover: "€1", CompanySize: "1", Address: "B St", Country: "DE", City: "Berlin"},
		{ID: "a", Name: "Alpha", AnnualTurnover: "€2", CompanySize: "2", Address: "A St", Country: "FR", City: "Paris",
			Position: domain.Coordinates{Lat: 48.85, Lng: 2.35}},
	}

	if err := Seed(db, companies); err != nil {
		t.Fatalf("seed: %v", err)
	}

	repo := NewSqliteCompanyRepository(db)
	got, err := repo.ListCompanies(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("listed %d companies, want 2", len(got))
	}
	// Load order, not alphabetical order.
	if got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("order = [%s %s], want [b a]", got[0].ID, got[1].ID)
	}
	if got[1].Position.Lat != 48.85 || got[1].Position.Lng != 2.35 {
		t.Fatalf("coordinates not round-tripped: %+v", got[1].Position)
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.json")
	seed := `[
	  {"name":"Spree Logistik","annual_turnover":"€6,000,000","company_size":"250 employees",
	   "address":"Alt-Moabit 12","zip":"10557","city":"Berlin","country":"DE","lat":52.52,"lng":13.38}
	]`
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	companies, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(companies) != 1 {
		t.Fatalf("loaded %d companies, want 1", len(companies))
	}

	c := companies[0]
	if c.ID != RecordID("Spree Logistik", "Alt-Moabit 12") {
		t.Errorf("synthetic ID must be derived from the record identity, got %q", c.ID)
	}
	if c.Name != "Spree Logistik" || c.City != "Berlin" || c.Position.Lat != 52.52 {
		t.Errorf("unexpected record: %+v", c)
	}
	if c.Turnover() != 6000000 {
		t.Errorf("turnover = %d, want 6000000", c.Turnover())
	}
}

func TestLoadJSONSkipsNamelessRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.json")
	seed := `[
	  {"name":"  ","annual_turnover":"€1","company_size":"1","address":"A","zip":"0","city":"X","country":"Y","lat":1,"lng":1},
	  {"name":"Isar Metall","annual_turnover":"€4,000,000","company_size":"80 employees",
	   "address":"Ringstr. 4","zip":"80331","city":"Munich","country":"DE","lat":48.137,"lng":11.575}
	]`
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	companies, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("a nameless record must not fail the load: %v", err)
	}
	if len(companies) != 1 || companies[0].Name != "Isar Metall" {
		t.Fatalf("loaded = %+v, want only Isar Metall", companies)
	}
}

// Seeding is a full refresh: running the startup load twice against the same
// database file must not grow the record set.
func TestReseedDoesNotDuplicate(t *testing.T) {
	db := openTestDB(t)

	path := filepath.Join(t.TempDir(), "locations.json")
	seed := `[
	  {"name":"Spree Logistik","annual_turnover":"€6,000,000","company_size":"250 employees",
	   "address":"Alt-Moabit 12","zip":"10557","city":"Berlin","country":"DE","lat":52.52,"lng":13.38}
	]`
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	var firstID string
	for run := 0; run < 2; run++ {
		companies, err := LoadJSON(path)
		if err != nil {
			t.Fatalf("run %d: load: %v", run, err)
		}
		if err := Seed(db, companies); err != nil {
			t.Fatalf("run %d: seed: %v", run, err)
		}
		if run == 0 {
			firstID = companies[0].ID
		}
	}

	repo := NewSqliteCompanyRepository(db)
	got, err := repo.ListCompanies(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("after two startups the store holds %d rows, want 1", len(got))
	}
	if got[0].ID != firstID {
		t.Fatalf("record ID changed across loads: %q vs %q", got[0].ID, firstID)
	}
}

func TestLoadJSONMissingFile(t *testing.T) {
	if _, err := LoadJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("missing file must surface an error")
	}
}

func TestLoadWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "companies.xlsx")

	f := excelize.NewFile()
	rows := [][]any{
		{"name", "annual_turnover", "company_size", "address", "zip", "city", "country", "lat", "lng"},
		{"Isar Metall", "€4,000,000", "80 employees", "Ringstr. 4", "80331", "Munich", "DE", "48,137", "11,575"},
		{"Broken Row", "€1", "1", "Nowhere 1", "0", "X", "Y", "not-a-number", "0"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}

	companies, err := LoadWorkbook(path, "")
	if err != nil {
		t.Fatalf("load workbook: %v", err)
	}

	// The header and the row with an unparseable coordinate are skipped.
	if len(companies) != 1 {
		t.Fatalf("loaded %d companies, want 1", len(companies))
	}
	c := companies[0]
	if c.Name != "Isar Metall" || c.Position.Lat != 48.137 || c.Position.Lng != 11.575 {
		t.Fatalf("unexpected record: %+v", c)
	}
}
