// mkfixture writes a sample workbook whose date columns mix every spelling
// datenorm understands, plus a few it does not.
// Usage: go run ./cmd/mkfixture --out testdata/mixed-dates.xlsx --rows 200
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/gyeh/datenorm/internal/normalize"
)

// spelling renders a date as one kind of cell value.
type spelling struct {
	name   string
	render func(d time.Time) any
}

var italianMonths = []string{
	"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno",
	"luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre",
}

var italianWeekdays = []string{
	"domenica", "lunedì", "martedì", "mercoledì", "giovedì", "venerdì", "sabato",
}

var spellings = []spelling{
	{"iso", func(d time.Time) any { return d.Format("2006-01-02") }},
	{"dmy-slash", func(d time.Time) any { return d.Format("02/01/2006") }},
	{"dmy-dash", func(d time.Time) any { return d.Format("2-1-2006") }},
	{"dmy-dot", func(d time.Time) any { return d.Format("02.01.2006") }},
	{"compact", func(d time.Time) any { return d.Format("20060102") }},
	{"english", func(d time.Time) any { return d.Format("2 January 2006") }},
	{"english-us", func(d time.Time) any { return d.Format("Jan 2, 2006") }},
	{"weekday", func(d time.Time) any { return d.Format("Mon, 2 Jan 2006") }},
	{"italian", func(d time.Time) any {
		return fmt.Sprintf("%d %s %d", d.Day(), italianMonths[d.Month()-1], d.Year())
	}},
	{"italian-weekday", func(d time.Time) any {
		return fmt.Sprintf("%s %d %s %d", italianWeekdays[d.Weekday()], d.Day(), italianMonths[d.Month()-1], d.Year())
	}},
	{"rfc3339", func(d time.Time) any { return d.Add(9*time.Hour + 30*time.Minute).Format(time.RFC3339) }},
	{"serial", func(d time.Time) any { return normalize.ToSerial(d) }},
	{"unix", func(d time.Time) any { return d.Unix() }},
	{"native", func(d time.Time) any { return d }},
}

var junk = []any{"", "n/a", "31/02/2024", "soon", true}

func main() {
	out := flag.String("out", "testdata/mixed-dates.xlsx", "output workbook")
	rows := flag.Int("rows", 200, "data rows per sheet")
	junkEvery := flag.Int("junk-every", 17, "every Nth row gets an unparseable value (0 disables)")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), "Orders"); err != nil {
		fail("rename sheet", err)
	}
	if _, err := f.NewSheet("Returns"); err != nil {
		fail("create sheet", err)
	}
	if _, err := f.NewSheet("Notes"); err != nil {
		fail("create sheet", err)
	}

	counts := make(map[string]int)
	writeSheet(f, "Orders", []string{"Order", "Order Date", "Ship Date", "Amount"}, *rows, *junkEvery, rng, counts)
	writeSheet(f, "Returns", []string{"Order", "Order Date", "Reason"}, *rows/4, *junkEvery, rng, counts)
	mustRow(f, "Notes", 1, []any{"Note"})
	mustRow(f, "Notes", 2, []any{"This sheet has no date columns."})

	if err := f.SaveAs(*out); err != nil {
		fail("save workbook", err)
	}

	fmt.Printf("Wrote %s\n", *out)
	fmt.Println("Spelling distribution:")
	for _, sp := range spellings {
		fmt.Printf("  %-16s %d\n", sp.name, counts[sp.name])
	}
	fmt.Printf("  %-16s %d\n", "junk", counts["junk"])
}

func writeSheet(f *excelize.File, sheet string, header []string, n, junkEvery int, rng *rand.Rand, counts map[string]int) {
	h := make([]any, len(header))
	for i, s := range header {
		h[i] = s
	}
	mustRow(f, sheet, 1, h)

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		fail("create style", err)
	}

	base := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	for r := 0; r < n; r++ {
		row := make([]any, len(header))
		row[0] = fmt.Sprintf("%s-%05d", sheet[:3], r+1)
		for c := 1; c < len(header); c++ {
			if header[c] == "Amount" || header[c] == "Reason" {
				row[c] = rng.Intn(1000)
				continue
			}
			if junkEvery > 0 && (r+c)%junkEvery == 0 {
				row[c] = junk[rng.Intn(len(junk))]
				counts["junk"]++
				continue
			}
			d := base.AddDate(0, 0, rng.Intn(3*365))
			sp := spellings[rng.Intn(len(spellings))]
			row[c] = sp.render(d)
			counts[sp.name]++
		}
		mustRow(f, sheet, r+2, row)

		for c := 1; c < len(header); c++ {
			if _, ok := row[c].(time.Time); !ok {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellStyle(sheet, cell, cell, dateStyle); err != nil {
				fail("style cell", err)
			}
		}
	}
}

func mustRow(f *excelize.File, sheet string, row int, values []any) {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		fail("cell name", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		fail("write row", err)
	}
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", what, err)
	os.Exit(1)
}
