package repositories

// Collection names in the document store
const (
	CollectionProducts     = "products"
	CollectionEvents       = "events"
	CollectionOutlets      = "outlets"
	CollectionCarts        = "carts"
	CollectionProductLikes = "productLikes"
)
