package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/muesli/gominatim"
	"github.com/urfave/cli/v2"
	_ "modernc.org/sqlite"

	"company-map-service/internal/adapters/records"
	"company-map-service/internal/domain"
	"company-map-service/internal/platform/db"
)

func main() {
	app := &cli.App{
		Name:  "mapctl",
		Usage: "Manage the company map database",
		Commands: []*cli.Command{
			seedCommand(),
			geocodeCommand(),
			exportCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load companies from a JSON or Excel file into the database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "db",
				Usage: "Database file",
				Value: "data/app.db",
			},
			&cli.StringFlag{
				Name:     "from",
				Usage:    "Source file (.json or .xlsx)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "sheet",
				Usage: "Worksheet name for Excel sources",
				Value: "Companies",
			},
		},
		Action: seedAction,
	}
}

func seedAction(c *cli.Context) error {
	companies, err := loadSource(c.String("from"), c.String("sheet"))
	if err != nil {
		return err
	}

	database, err := openDatabase(c.String("db"))
	if err != nil {
		return err
	}
	defer database.Close()

	if err := records.Seed(database, companies); err != nil {
		return fmt.Errorf("seed database: %w", err)
	}

	fmt.Printf("Seeded %d companies into %s\n", len(companies), c.String("db"))
	return nil
}

func geocodeCommand() *cli.Command {
	return &cli.Command{
		Name:  "geocode",
		Usage: "Fill in missing coordinates via Nominatim and rewrite the file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Usage:    "JSON file to geocode in place",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "server",
				Usage: "Nominatim server",
				Value: "https://nominatim.openstreetmap.org/",
			},
			&cli.DurationFlag{
				Name:  "delay",
				Usage: "Pause between lookups",
				Value: time.Second,
			},
		},
		Action: geocodeAction,
	}
}

func geocodeAction(c *cli.Context) error {
	companies, err := records.LoadJSON(c.String("file"))
	if err != nil {
		return err
	}

	gominatim.SetServer(c.String("server"))

	resolved := 0
	for i, company := range companies {
		if company.Position.Lat != 0 || company.Position.Lng != 0 {
			continue
		}
		lat, lng, err := geocodeAddress(company)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %q: %v\n", company.Name, err)
			continue
		}
		companies[i].Position = domain.Coordinates{Lat: lat, Lng: lng}
		resolved++
		// Nominatim's usage policy asks for at most one request per second.
		time.Sleep(c.Duration("delay"))
	}

	if err := records.WriteJSON(c.String("file"), companies); err != nil {
		return err
	}

	fmt.Printf("Geocoded %d of %d companies\n", resolved, len(companies))
	return nil
}

func geocodeAddress(company domain.Company) (lat, lng float64, err error) {
	qry := gominatim.SearchQuery{
		Q: fmt.Sprintf("%s, %s %s, %s", company.Address, company.Zip, company.City, company.Country),
	}

	resp, err := qry.Get()
	if err != nil {
		return 0, 0, err
	}
	if len(resp) == 0 {
		return 0, 0, fmt.Errorf("no results")
	}

	lat, err = strconv.ParseFloat(resp[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("error parsing latitude: %w", err)
	}
	lng, err = strconv.ParseFloat(resp[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("error parsing longitude: %w", err)
	}
	return lat, lng, nil
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write the company database back out as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "db",
				Usage: "Database file",
				Value: "data/app.db",
			},
			&cli.StringFlag{
				Name:     "out",
				Usage:    "Destination JSON file",
				Required: true,
			},
		},
		Action: exportAction,
	}
}

func exportAction(c *cli.Context) error {
	database, err := openDatabase(c.String("db"))
	if err != nil {
		return err
	}
	defer database.Close()

	repo := records.NewSqliteCompanyRepository(database)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	companies, err := repo.ListCompanies(ctx)
	if err != nil {
		return err
	}

	if err := records.WriteJSON(c.String("out"), companies); err != nil {
		return err
	}

	fmt.Printf("Exported %d companies to %s\n", len(companies), c.String("out"))
	return nil
}

func loadSource(path, sheet string) ([]domain.Company, error) {
	switch {
	case strings.HasSuffix(path, ".xlsx"):
		return records.LoadWorkbook(path, sheet)
	case strings.HasSuffix(path, ".json"):
		return records.LoadJSON(path)
	default:
		return nil, fmt.Errorf("unsupported source format: %s", path)
	}
}

func openDatabase(path string) (*sql.DB, error) {
	database, err := db.OpenSqlite(path)
	if err != nil {
		return nil, err
	}
	if err := records.InitSchema(database); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
