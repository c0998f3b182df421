package domain

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Image       string `json:"image,omitempty"`
	Category    string `json:"category"`
	Weight      string `json:"weight,omitempty"`
	Description string `json:"description,omitempty"`
}

// LineItem builds a cart line from the product snapshot.
func (p Product) LineItem(quantity int) LineItem {
	return LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  quantity,
		Image:     p.Image,
		Category:  p.Category,
		Weight:    p.Weight,
	}
}
