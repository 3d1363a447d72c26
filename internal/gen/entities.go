package gen

import "time"

// One order cluster: the customer, the order, its items, its payment and
// (for roughly 70% of orders) a review, all sharing freshly minted ids.
type Cluster struct {
	Customer Customer
	Order    Order
	Items    []OrderItem
	Payment  OrderPayment
	Review   *OrderReview
}

type Customer struct {
	ID            string
	UniqueID      string
	ZipCodePrefix string
	City          string
	State         string
}

type Order struct {
	ID                    string
	CustomerID            string
	Status                string
	PurchaseTimestamp     time.Time
	ApprovedAt            time.Time
	DeliveredCarrierDate  time.Time
	DeliveredCustomerDate time.Time
	EstimatedDeliveryDate time.Time
}

type OrderItem struct {
	OrderID           string
	ItemID            int // 1-based position within the order
	ProductID         string
	SellerID          string
	ShippingLimitDate time.Time
	Price             float64
	FreightValue      float64
}

type OrderPayment struct {
	OrderID      string
	Sequential   int
	Type         string
	Installments int
	Value        float64
}

type OrderReview struct {
	ID              string
	OrderID         string
	Score           int
	CommentTitle    *string
	CommentMessage  *string
	CreationDate    time.Time
	AnswerTimestamp time.Time
}

// Batch holds the five output collections of one generation call.
// Reviews are sparse; the other four are row-correlated per order
// except items, which carry 1-3 rows per order.
type Batch struct {
	Customers []Customer
	Orders    []Order
	Items     []OrderItem
	Payments  []OrderPayment
	Reviews   []OrderReview
}

func (b *Batch) add(c Cluster) {
	b.Customers = append(b.Customers, c.Customer)
	b.Orders = append(b.Orders, c.Order)
	b.Items = append(b.Items, c.Items...)
	b.Payments = append(b.Payments, c.Payment)
	if c.Review != nil {
		b.Reviews = append(b.Reviews, *c.Review)
	}
}

// Tables fans the batch out into column-keyed rows per warehouse table,
// ready for the transform and load steps.
func (b *Batch) Tables() map[string][]map[string]any {
	out := make(map[string][]map[string]any, 5)
	for _, c := range b.Customers {
		out["customers"] = append(out["customers"], map[string]any{
			"customer_id":              c.ID,
			"customer_unique_id":       c.UniqueID,
			"customer_zip_code_prefix": c.ZipCodePrefix,
			"customer_city":            c.City,
			"customer_state":           c.State,
		})
	}
	for _, o := range b.Orders {
		out["orders"] = append(out["orders"], map[string]any{
			"order_id":                      o.ID,
			"customer_id":                   o.CustomerID,
			"order_status":                  o.Status,
			"order_purchase_timestamp":      o.PurchaseTimestamp,
			"order_approved_at":             o.ApprovedAt,
			"order_delivered_carrier_date":  o.DeliveredCarrierDate,
			"order_delivered_customer_date": o.DeliveredCustomerDate,
			"order_estimated_delivery_date": o.EstimatedDeliveryDate,
		})
	}
	for _, it := range b.Items {
		out["order_items"] = append(out["order_items"], map[string]any{
			"order_id":            it.OrderID,
			"order_item_id":       it.ItemID,
			"product_id":          it.ProductID,
			"seller_id":           it.SellerID,
			"shipping_limit_date": it.ShippingLimitDate,
			"price":               it.Price,
			"freight_value":       it.FreightValue,
		})
	}
	for _, p := range b.Payments {
		out["order_payments"] = append(out["order_payments"], map[string]any{
			"order_id":             p.OrderID,
			"payment_sequential":   p.Sequential,
			"payment_type":         p.Type,
			"payment_installments": p.Installments,
			"payment_value":        p.Value,
		})
	}
	for _, r := range b.Reviews {
		row := map[string]any{
			"review_id":               r.ID,
			"order_id":                r.OrderID,
			"review_score":            r.Score,
			"review_comment_title":    nil,
			"review_comment_message":  nil,
			"review_creation_date":    r.CreationDate,
			"review_answer_timestamp": r.AnswerTimestamp,
		}
		if r.CommentTitle != nil {
			row["review_comment_title"] = *r.CommentTitle
		}
		if r.CommentMessage != nil {
			row["review_comment_message"] = *r.CommentMessage
		}
		out["order_reviews"] = append(out["order_reviews"], row)
	}
	return out
}
