package service

import (
	"errors"

	"github.com/medixpharma/pharmadmin/internal/models"
)

var (
	// ErrDuplicateProduct rejects a second line for a product already
	// in the draft.
	ErrDuplicateProduct = errors.New("product is already in the sale")
	// ErrInvalidQuantity rejects non-positive line quantities.
	ErrInvalidQuantity = errors.New("quantity must be a positive number")
	// ErrBadItemIndex rejects removal of a line that does not exist.
	ErrBadItemIndex = errors.New("no sale item at that index")
)

// SaleDraft accumulates the line items of a sale before submission.
// The total is never stored; it is recomputed from the lines on every
// read so the displayed amount cannot drift from the items.
type SaleDraft struct {
	Items []models.SaleItem
}

// AddItem appends a line for the product. The line total is derived
// from quantity and unit price here, regardless of what the caller
// sent.
func (d *SaleDraft) AddItem(productID int64, productName string, quantity int, unitPrice float64) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	for _, item := range d.Items {
		if item.ProductID == productID {
			return ErrDuplicateProduct
		}
	}
	d.Items = append(d.Items, models.SaleItem{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  unitPrice * float64(quantity),
	})
	return nil
}

// RemoveItem deletes the line at index; later lines shift down one.
func (d *SaleDraft) RemoveItem(index int) error {
	if index < 0 || index >= len(d.Items) {
		return ErrBadItemIndex
	}
	d.Items = append(d.Items[:index], d.Items[index+1:]...)
	return nil
}

// Total is the sum of the line totals.
func (d *SaleDraft) Total() float64 {
	var total float64
	for _, item := range d.Items {
		total += item.TotalPrice
	}
	return total
}
