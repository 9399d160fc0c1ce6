package domain

// ItemKind discriminates the two content item variants.
type ItemKind string

// Possible item kinds
const (
	ItemKindPost    ItemKind = "post"
	ItemKindComment ItemKind = "comment"
)

// ContentItem is the discriminated union of the content variants the
// pipeline processes. Discovery constructs the concrete variant exactly
// once; downstream code switches on Kind instead of re-checking shape.
//
// Items are immutable after construction and are discarded once the
// pipeline finishes with them; results live in the annotation store,
// never on the item.
type ContentItem interface {
	// Kind returns the variant discriminator.
	Kind() ItemKind

	// Key returns the stable external identifier used as the cache key.
	// It may be empty, in which case the item cannot be cached.
	Key() string
}
