package gen

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/shoplore/ordersynth/internal/extract"
)

// Caps applied during training to bound memory and runtime.
const (
	GeoSampleCap     = 10000
	ReviewCorpusCap  = 5000
	defaultItemPrice = 50.0
)

// Snapshot is the immutable result of one training pass: everything the
// generator samples from. Any field may be empty; the generator falls back
// to synthetic substitutes per field.
type Snapshot struct {
	ProductIDs []string
	SellerIDs  []string

	// Parallel location sequences: index i is one sampled
	// (zip prefix, city, state) triple.
	Zips   []string
	Cities []string
	States []string

	// Observed prices per product, duplicates preserved so uniform
	// sampling biases toward common price points.
	ProductPrices map[string][]float64

	ReviewCorpus []string
}

// Stats describes what was learned, for the inspect command.
func (s *Snapshot) Stats() string {
	var b strings.Builder
	fmt.Fprintf(&b, "products: %d\n", len(s.ProductIDs))
	fmt.Fprintf(&b, "sellers: %d\n", len(s.SellerIDs))
	fmt.Fprintf(&b, "locations: %d\n", len(s.Zips))
	fmt.Fprintf(&b, "priced products: %d\n", len(s.ProductPrices))
	fmt.Fprintf(&b, "review corpus: %d\n", len(s.ReviewCorpus))
	return b.String()
}

// Trainer learns simple empirical distributions from the historical tables.
// A table that cannot be read is a warning, never an error: the matching
// snapshot field stays empty and generation falls back to synthesis.
type Trainer struct {
	Source  extract.Source
	DataDir string
	Rand    *rand.Rand
}

func NewTrainer(dataDir string, rng *rand.Rand) *Trainer {
	return &Trainer{Source: extract.CSVSource{}, DataDir: dataDir, Rand: rng}
}

// Train loads the five historical tables and returns the snapshot plus a
// text model trained on historical review comments.
func (t *Trainer) Train() (*Snapshot, *TextModel) {
	color.Cyan("🎓 Training order generator from %s...", t.DataDir)

	snap := &Snapshot{ProductPrices: make(map[string][]float64)}

	if table, err := t.read("olist_products_dataset.csv"); err != nil {
		color.Yellow("⚠️  Could not load products: %v", err)
	} else {
		snap.ProductIDs = column(table, "product_id")
	}

	if table, err := t.read("olist_sellers_dataset.csv"); err != nil {
		color.Yellow("⚠️  Could not load sellers: %v", err)
	} else {
		snap.SellerIDs = column(table, "seller_id")
	}

	if table, err := t.read("olist_geolocation_dataset.csv"); err != nil {
		color.Yellow("⚠️  Could not load geolocation: %v", err)
	} else {
		t.sampleLocations(snap, table)
	}

	if table, err := t.read("olist_order_items_dataset.csv"); err != nil {
		color.Yellow("⚠️  Could not load order items: %v", err)
	} else {
		for _, row := range table.Rows {
			pid := table.Field(row, "product_id")
			if pid == "" {
				continue
			}
			price, err := strconv.ParseFloat(table.Field(row, "price"), 64)
			if err != nil {
				continue
			}
			snap.ProductPrices[pid] = append(snap.ProductPrices[pid], price)
		}
	}

	if table, err := t.read("olist_order_reviews_dataset.csv"); err != nil {
		color.Yellow("⚠️  Could not load reviews: %v", err)
	} else {
		for _, row := range table.Rows {
			if len(snap.ReviewCorpus) >= ReviewCorpusCap {
				break
			}
			if msg := table.Field(row, "review_comment_message"); msg != "" {
				snap.ReviewCorpus = append(snap.ReviewCorpus, msg)
			}
		}
	}

	model := TrainText(snap.ReviewCorpus, DefaultStateSize)

	color.Green("✅ Training complete.")
	return snap, model
}

func (t *Trainer) read(name string) (*extract.Table, error) {
	return t.Source.Read(filepath.Join(t.DataDir, name))
}

// sampleLocations draws a uniform sample of location triples, capped at
// GeoSampleCap rows to bound memory.
func (t *Trainer) sampleLocations(snap *Snapshot, table *extract.Table) {
	rows := table.Rows
	if len(rows) > GeoSampleCap {
		sampled := make([][]string, 0, GeoSampleCap)
		for _, i := range t.Rand.Perm(len(rows))[:GeoSampleCap] {
			sampled = append(sampled, rows[i])
		}
		rows = sampled
	}
	for _, row := range rows {
		snap.Zips = append(snap.Zips, table.Field(row, "geolocation_zip_code_prefix"))
		snap.Cities = append(snap.Cities, table.Field(row, "geolocation_city"))
		snap.States = append(snap.States, table.Field(row, "geolocation_state"))
	}
}

func column(table *extract.Table, name string) []string {
	var out []string
	for _, row := range table.Rows {
		if v := table.Field(row, name); v != "" {
			out = append(out, v)
		}
	}
	return out
}
