package gen

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

var paymentTypes = []string{"credit_card", "boleto", "voucher", "debit_card"}

// Review score weights, highest score first. Generated data skews positive
// the way the historical reviews do.
var reviewScores = []struct {
	score  int
	weight float64
}{
	{5, 0.5}, {4, 0.2}, {3, 0.1}, {2, 0.1}, {1, 0.1},
}

const (
	reviewChance  = 0.7
	titleChance   = 0.4
	messageChance = 0.6
	maxReviewLen  = 20
)

// DateWindow is a [Start, End) range for purchase timestamps.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// Generator mints order clusters from a trained snapshot and text model.
// All randomness flows through the injected rand so a fixed seed
// reproduces identical batches. The snapshot and model are read-only and
// may be shared; the Generator itself is not safe for concurrent use.
type Generator struct {
	snap  *Snapshot
	model *TextModel
	rng   *rand.Rand
	fake  *Faker
	now   func() time.Time
}

func NewGenerator(snap *Snapshot, model *TextModel, rng *rand.Rand) *Generator {
	return &Generator{
		snap:  snap,
		model: model,
		rng:   rng,
		fake:  NewFaker(rng),
		now:   time.Now,
	}
}

// GenerateOrders produces count order clusters fanned out into the five
// output collections. A nil window means purchases over the trailing
// 30 days.
func (g *Generator) GenerateOrders(count int, window *DateWindow) *Batch {
	batch := &Batch{}
	for i := 0; i < count; i++ {
		batch.add(g.cluster(window))
	}
	return batch
}

func (g *Generator) cluster(window *DateWindow) Cluster {
	var c Cluster

	c.Customer = Customer{
		ID:       g.newID(),
		UniqueID: g.newID(),
	}
	if len(g.snap.Zips) > 0 {
		idx := g.rng.Intn(len(g.snap.Zips))
		c.Customer.ZipCodePrefix = g.snap.Zips[idx]
		c.Customer.City = g.snap.Cities[idx]
		c.Customer.State = g.snap.States[idx]
	} else {
		c.Customer.ZipCodePrefix = g.fake.ZipPrefix()
		c.Customer.City = g.fake.City()
		c.Customer.State = g.fake.StateAbbr()
	}

	purchase := g.purchaseTime(window)
	approved := purchase.Add(time.Duration(g.between(10, 600)) * time.Minute)
	carrier := approved.Add(g.days(g.between(1, 3)))
	delivered := carrier.Add(g.days(g.between(1, 10)))
	// Estimated delivery hangs off the purchase date alone; it can land
	// before or after the actual delivery.
	estimated := purchase.Add(g.days(g.between(10, 20)))

	c.Order = Order{
		ID:                    g.newID(),
		CustomerID:            c.Customer.ID,
		Status:                "delivered",
		PurchaseTimestamp:     purchase,
		ApprovedAt:            approved,
		DeliveredCarrierDate:  carrier,
		DeliveredCustomerDate: delivered,
		EstimatedDeliveryDate: estimated,
	}

	total := 0.0
	numItems := g.between(1, 3)
	for i := 0; i < numItems; i++ {
		productID := g.pick(g.snap.ProductIDs)
		sellerID := g.pick(g.snap.SellerIDs)

		price := defaultItemPrice
		if prices := g.snap.ProductPrices[productID]; len(prices) > 0 {
			price = prices[g.rng.Intn(len(prices))]
		}
		freight := 10 + g.rng.Float64()*40
		total += price + freight

		c.Items = append(c.Items, OrderItem{
			OrderID:           c.Order.ID,
			ItemID:            i + 1,
			ProductID:         productID,
			SellerID:          sellerID,
			ShippingLimitDate: approved.Add(g.days(3)),
			Price:             price,
			FreightValue:      freight,
		})
	}

	c.Payment = OrderPayment{
		OrderID:      c.Order.ID,
		Sequential:   1,
		Type:         paymentTypes[g.rng.Intn(len(paymentTypes))],
		Installments: g.between(1, 10),
		Value:        total,
	}

	if g.rng.Float64() < reviewChance {
		review := &OrderReview{
			ID:              g.newID(),
			OrderID:         c.Order.ID,
			Score:           g.reviewScore(),
			CreationDate:    delivered.Add(g.days(1)),
			AnswerTimestamp: delivered.Add(g.days(2)),
		}
		if g.rng.Float64() < titleChance {
			title := g.fake.ShortSentence()
			review.CommentTitle = &title
		}
		if g.rng.Float64() < messageChance {
			msg := g.model.Generate(g.rng, maxReviewLen)
			review.CommentMessage = &msg
		}
		c.Review = review
	}

	return c
}

func (g *Generator) purchaseTime(window *DateWindow) time.Time {
	if window != nil {
		daysBetween := int(window.End.Sub(window.Start).Hours() / 24)
		if daysBetween < 0 {
			// An inverted window collapses to its start day.
			daysBetween = 0
		}
		return window.Start.
			Add(g.days(g.between(0, daysBetween))).
			Add(time.Duration(g.between(0, 1440)) * time.Minute)
	}
	return g.now().
		Add(-g.days(g.between(0, 30))).
		Add(-time.Duration(g.between(0, 1440)) * time.Minute)
}

// pick samples uniformly from the pool, or mints a fresh id when the pool
// is empty. This is the single fallback policy for every learned field.
func (g *Generator) pick(pool []string) string {
	if len(pool) == 0 {
		return g.newID()
	}
	return pool[g.rng.Intn(len(pool))]
}

func (g *Generator) reviewScore() int {
	r := g.rng.Float64()
	acc := 0.0
	for _, s := range reviewScores {
		acc += s.weight
		if r < acc {
			return s.score
		}
	}
	return reviewScores[len(reviewScores)-1].score
}

// between returns a uniform integer in [lo, hi], both ends inclusive.
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}

func (g *Generator) newID() string {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		// math/rand readers never fail; this guards exotic sources only.
		return uuid.NewString()
	}
	return id.String()
}
