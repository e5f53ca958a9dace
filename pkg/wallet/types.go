package wallet

import "time"

// Field length bounds enforced before any persistence attempt.
const (
	// MaxLabelLength is the maximum length of a secret's label.
	MaxLabelLength = 120

	// MaxCategoryNameLength is the maximum length of a category name.
	MaxCategoryNameLength = 50
)

// UncategorizedBucket is the display name of the implicit bucket holding
// secrets without a category reference.
const UncategorizedBucket = "Uncategorized"

// Identity is an authenticated principal that owns secrets and categories.
// Ownership is fixed at creation; records are never re-parented.
type Identity struct {
	// ID is the opaque principal handle (UUID).
	ID string `json:"id"`

	// Email identifies the account to humans. Login credentials are managed
	// outside the core.
	Email string `json:"email"`

	// Admin is informational only. It confers no access to other
	// identities' records; every authorization decision is an exact
	// ownership match.
	Admin bool `json:"admin"`

	// CreatedAt is the account creation time.
	CreatedAt time.Time `json:"created_at"`
}

// Secret is an encrypted credential record. The plaintext payload exists
// only transiently inside the cipherbox; everything persisted or returned
// from metadata operations carries ciphertext only.
type Secret struct {
	// ID is the record handle (UUID), assigned at creation.
	ID string `json:"id"`

	// Owner is the owning identity's ID. Immutable.
	Owner string `json:"owner"`

	// Label is the human-readable name. Non-empty, at most MaxLabelLength.
	Label string `json:"label"`

	// Ciphertext is the sealed payload in its base64 text form. Opaque;
	// replaced wholesale on update, never patched.
	Ciphertext string `json:"-"`

	// CategoryID references a category owned by the same identity, or is
	// empty for the Uncategorized state.
	CategoryID string `json:"category_id,omitempty"`

	// CreatedAt is the record creation time. Immutable.
	CreatedAt time.Time `json:"created_at"`
}

// Category is a user-defined grouping label for secrets. Deleting a category
// never deletes its secrets; their references are cleared instead.
type Category struct {
	// ID is the record handle (UUID), assigned at creation.
	ID string `json:"id"`

	// Owner is the owning identity's ID. Immutable.
	Owner string `json:"owner"`

	// Name is the display name. Non-empty, at most MaxCategoryNameLength.
	// Uniqueness per owner is not enforced; buckets are keyed by ID.
	Name string `json:"name"`
}

// Bucket is one group in a grouped listing: a category (or the implicit
// Uncategorized bucket) together with its member secrets ordered by label,
// case-insensitively ascending.
type Bucket struct {
	// CategoryID is empty for the Uncategorized bucket.
	CategoryID string `json:"category_id,omitempty"`

	// Name is the category's display name, or UncategorizedBucket.
	Name string `json:"name"`

	// Secrets holds metadata only; ciphertext is never included.
	Secrets []*Secret `json:"secrets"`
}

// GroupFilter narrows a grouped listing to a single bucket.
type GroupFilter struct {
	// CategoryID selects one category bucket when non-empty.
	CategoryID string

	// Uncategorized selects the implicit bucket. Mutually exclusive with
	// CategoryID.
	Uncategorized bool
}
