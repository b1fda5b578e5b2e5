package transfer

type ShopifyProductsResponse struct {
	Products []ShopifyProduct `json:"products"`
}

type ShopifyProduct struct {
	ID       int64                   `json:"id"`
	Title    string                  `json:"title"`
	Handle   string                  `json:"handle"`
	Status   string                  `json:"status"`
	Image    ShopifyProductImage     `json:"image"`
	Variants []ShopifyProductVariant `json:"variants"`
}

type ShopifyProductImage struct {
	Src string `json:"src"`
}

type ShopifyProductVariant struct {
	ID    int64  `json:"id"`
	Price string `json:"price"`
}
