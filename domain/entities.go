package domain

import "time"

// User represents a registered marketplace user
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	IsAdmin      bool
	IsBanned     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User    *User
	Session *Session
	Token   string
}

// Session is the server-held proof of authentication bound to an opaque token.
// IsAdmin and IsBanned are snapshots taken at login time.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsAdmin   bool      `json:"is_admin"`
	IsBanned  bool      `json:"is_banned"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ListingStatus is the moderation state of a listing
type ListingStatus string

const (
	StatusAny      ListingStatus = ""
	StatusPending  ListingStatus = "pending"
	StatusApproved ListingStatus = "approved"
	StatusRejected ListingStatus = "rejected"
)

// CategoryPair is the two-level category of a listing
type CategoryPair struct {
	Primary   string
	Secondary string
}

// Listing represents a classified ad
type Listing struct {
	ID              string
	OwnerID         string
	OwnerName       string
	Offer           string
	Phone           string
	HouseNumber     string
	Category        CategoryPair
	Description     string
	Price           int64
	Delivery        bool
	ImageRef        string
	Date            string
	IsApproved      bool
	IsSponsored     bool
	IsRejected      bool
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Status derives the moderation state from the approval flags
func (l *Listing) Status() ListingStatus {
	switch {
	case l.IsApproved:
		return StatusApproved
	case l.IsRejected:
		return StatusRejected
	default:
		return StatusPending
	}
}

// ListingFilter narrows listing queries. An empty Category matches every listing;
// otherwise it matches either the primary or the secondary category.
type ListingFilter struct {
	Category string
	Status   ListingStatus
}

// Matches reports whether the listing satisfies the filter
func (f ListingFilter) Matches(l *Listing) bool {
	if f.Category != "" && l.Category.Primary != f.Category && l.Category.Secondary != f.Category {
		return false
	}
	return f.Status == StatusAny || l.Status() == f.Status
}

// SubmissionForm carries the raw, unvalidated listing fields as received from a form
type SubmissionForm struct {
	Offer       string
	Phone       string
	HouseNumber string
	Primary     string
	Secondary   string
	Description string
	Price       string
	Delivery    bool
}

// ValidatedSubmission is a listing submission whose fields passed validation.
// It can only be produced by the submission validator.
type ValidatedSubmission struct {
	Offer       string
	Phone       string
	HouseNumber string
	Category    CategoryPair
	Description string
	Price       int64
	Delivery    bool
}

// UploadedImage is a raw uploaded file
type UploadedImage struct {
	Filename string
	Data     []byte
}
