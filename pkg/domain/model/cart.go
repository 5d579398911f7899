package model

import "github.com/m-mizutani/goerr/v2"

// Amount is money in minor currency units (öre)
type Amount int64

// Product is a cart item as supplied by the product catalog
type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price Amount `json:"price"`
}

// CartLine is a product and the number of units ordered
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"amount"`
}

// LineTotal returns price times quantity
func (l CartLine) LineTotal() Amount {
	return l.Product.Price * Amount(l.Quantity)
}

// Cart is the ordered list of lines handed over by the shopping cart
type Cart []CartLine

// ItemTotal returns the sum of all line totals
func (c Cart) ItemTotal() Amount {
	var total Amount
	for _, l := range c {
		total += l.LineTotal()
	}
	return total
}

// Clone returns a copy of the cart
func (c Cart) Clone() Cart {
	if c == nil {
		return nil
	}
	copied := make(Cart, len(c))
	copy(copied, c)
	return copied
}

// Validate checks quantities and prices. An empty cart is valid here; it
// is rejected at submission.
func (c Cart) Validate() error {
	for i, l := range c {
		if l.Quantity <= 0 {
			return goerr.Wrap(ErrInvalidCart, "quantity must be positive",
				goerr.V(LineIndexKey, i), goerr.V("quantity", l.Quantity))
		}
		if l.Product.Price < 0 {
			return goerr.Wrap(ErrInvalidCart, "price must not be negative",
				goerr.V(LineIndexKey, i), goerr.V("price", l.Product.Price))
		}
	}
	return nil
}
