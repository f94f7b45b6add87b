package records

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"company-map-service/internal/domain"
)

// Column layout expected in a company workbook:
// name, annual_turnover, company_size, address, zip, city, country, lat, lng.
const workbookColumns = 9

// Tolerate comma decimal separators in coordinate cells.
func parseCoord(val string) (float64, error) {
	val = strings.TrimSpace(strings.ReplaceAll(val, ",", "."))
	if val == "" {
		return 0, fmt.Errorf("empty")
	}
	return strconv.ParseFloat(val, 64)
}

// LoadWorkbook reads company records from an Excel sheet. The first row is
// treated as a header; rows that are too short or carry unparseable
// coordinates are skipped rather than failing the whole import.
func LoadWorkbook(path, sheetName string) ([]domain.Company, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("load workbook: open %q: %w", path, err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("load workbook: read sheet %q: %w", sheetName, err)
	}

	var companies []domain.Company
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < workbookColumns {
			continue
		}

		lat, err1 := parseCoord(row[7])
		lng, err2 := parseCoord(row[8])
		if err1 != nil || err2 != nil {
			continue
		}

		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}

		address := strings.TrimSpace(row[3])
		companies = append(companies, domain.Company{
			ID:             RecordID(name, address),
			Name:           name,
			AnnualTurnover: strings.TrimSpace(row[1]),
			CompanySize:    strings.TrimSpace(row[2]),
			Address:        address,
			Zip:            strings.TrimSpace(row[4]),
			City:           strings.TrimSpace(row[5]),
			Country:        strings.TrimSpace(row[6]),
			Position:       domain.Coordinates{Lat: lat, Lng: lng},
		})
	}

	return companies, nil
}
