package catalog

import "errors"

var ErrNotFound = errors.New("product not found")

type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
}

// Catalog is the storefront's static product list.
type Catalog struct {
	products []Product
}

func New() *Catalog {
	return &Catalog{products: seed()}
}

func (c *Catalog) List() []Product {
	return append([]Product(nil), c.products...)
}

func (c *Catalog) Get(id string) (Product, error) {
	for _, p := range c.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func seed() []Product {
	return []Product{
		{ID: "c1", Name: "Classic Cupcake", Price: 100, Image: "/images/cupcake-classic.jpg", Category: "cupcakes"},
		{ID: "c2", Name: "Red Velvet Cupcake", Price: 120, Image: "/images/cupcake-red-velvet.jpg", Category: "cupcakes"},
		{ID: "c3", Name: "Chocolate Truffle Cake", Price: 550, Image: "/images/cake-truffle.jpg", Category: "cakes"},
		{ID: "c4", Name: "Vanilla Cream Cake", Price: 480, Image: "/images/cake-vanilla.jpg", Category: "cakes"},
		{ID: "c5", Name: "Blueberry Cheesecake", Price: 620, Image: "/images/cheesecake-blueberry.jpg", Category: "cheesecakes"},
		{ID: "c6", Name: "Choco Lava Brownie", Price: 150, Image: "/images/brownie-lava.jpg", Category: "brownies"},
		{ID: "c7", Name: "Walnut Brownie", Price: 140, Image: "/images/brownie-walnut.jpg", Category: "brownies"},
		{ID: "c8", Name: "Assorted Macarons (6)", Price: 360, Image: "/images/macarons-6.jpg", Category: "macarons"},
	}
}
