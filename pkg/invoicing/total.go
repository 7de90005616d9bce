package invoicing

import "quickbill/models"

// Total sums quantity times rate over the line items. The computation is
// permissive: a negative quantity or rate contributes 0 instead of failing,
// matching the historical behavior for malformed imported items.
func Total(items []models.InvoiceItem) float64 {
	var total float64
	for _, item := range items {
		q, r := item.Quantity, item.Rate
		if q < 0 || r < 0 {
			continue
		}
		total += q * r
	}
	return total
}
