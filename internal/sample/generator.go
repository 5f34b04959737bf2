// Package sample generates small synthetic retail datasets. The UI uses them
// as a "try it" starting point and tests use them as fixtures; either way the
// data goes through the same public dataset builder as a real upload would.
package sample

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"datalens/domain/table"
	"datalens/internal/ingest"
)

// Config configures the synthetic dataset generator.
type Config struct {
	Rows      int       `json:"rows"`
	Seed      uint64    `json:"seed"`
	StartDate time.Time `json:"start_date"`
}

// DefaultConfig returns sensible defaults for sample data generation.
func DefaultConfig() Config {
	return Config{
		Rows:      200,
		Seed:      42,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Generator generates deterministic synthetic order data. The same seed
// always produces the same dataset, which keeps fixtures stable.
type Generator struct {
	config Config
	rng    *rand.Rand
	price  distuv.Normal
	units  distuv.Poisson
}

var (
	regions    = []string{"North", "South", "East", "West"}
	categories = []string{"Grocery", "Electronics", "Apparel", "Home", "Toys"}
)

// NewGenerator creates a generator seeded from the config.
func NewGenerator(config Config) *Generator {
	if config.Rows <= 0 {
		config.Rows = DefaultConfig().Rows
	}
	if config.StartDate.IsZero() {
		config.StartDate = DefaultConfig().StartDate
	}
	src := rand.NewSource(config.Seed)
	return &Generator{
		config: config,
		rng:    rand.New(src),
		price:  distuv.Normal{Mu: 24, Sigma: 9, Src: src},
		units:  distuv.Poisson{Lambda: 3, Src: src},
	}
}

// Generate builds the synthetic dataset through the public dataset builder,
// so its columns carry inferred types exactly like a parsed upload.
func (g *Generator) Generate() table.Dataset {
	records := make([][]string, 0, g.config.Rows+1)
	records = append(records, []string{
		"order_id", "order_date", "region", "category", "units", "unit_price", "total", "member",
	})

	for i := 0; i < g.config.Rows; i++ {
		date := g.config.StartDate.AddDate(0, 0, g.rng.Intn(90))

		units := int(g.units.Rand()) + 1
		price := g.price.Rand()
		if price < 0.5 {
			price = 0.5
		}
		price = float64(int(price*100)) / 100
		total := float64(units) * price

		member := "no"
		if g.rng.Float64() < 0.4 {
			member = "yes"
		}

		records = append(records, []string{
			fmt.Sprintf("ORD-%04d", i+1),
			date.Format("2006-01-02"),
			regions[g.rng.Intn(len(regions))],
			categories[g.rng.Intn(len(categories))],
			strconv.Itoa(units),
			strconv.FormatFloat(price, 'f', 2, 64),
			strconv.FormatFloat(total, 'f', 2, 64),
			member,
		})
	}

	return ingest.BuildFromRecords(records, true)
}
