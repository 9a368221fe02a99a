package handlers

import (
	"iter"
	"strings"
	"time"

	"github.com/fandressouza/indicacoes/domain"
)

// UserView is the public shape of a user record
type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsAdmin   bool      `json:"is_admin"`
	IsBanned  bool      `json:"is_banned"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserView(u *domain.User) UserView {
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		IsAdmin:   u.IsAdmin,
		IsBanned:  u.IsBanned,
		CreatedAt: u.CreatedAt,
	}
}

// SessionView is what a signed-in user sees on the profile page
type SessionView struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsAdmin   bool      `json:"is_admin"`
	ExpiresAt time.Time `json:"expires_at"`
}

func newSessionView(s *domain.Session) SessionView {
	return SessionView{
		UserID:    s.UserID,
		Email:     s.Email,
		Name:      s.Name,
		IsAdmin:   s.IsAdmin,
		ExpiresAt: s.ExpiresAt,
	}
}

// ListingView is the public shape of a listing
type ListingView struct {
	ID                string `json:"id"`
	OwnerID           string `json:"user_id"`
	OwnerName         string `json:"name"`
	Offer             string `json:"offer"`
	Phone             string `json:"phone"`
	HouseNumber       string `json:"house_number,omitempty"`
	PrimaryCategory   string `json:"category_one"`
	SecondaryCategory string `json:"category_two"`
	Description       string `json:"description"`
	Price             int64  `json:"price"`
	Delivery          bool   `json:"delivery"`
	ImageURL          string `json:"image_url"`
	Date              string `json:"date"`
	Status            string `json:"status"`
	IsSponsored       bool   `json:"is_sponsored"`
	RejectionReason   string `json:"rejection_reason,omitempty"`
}

// imageURLs turns stored image references into links
type imageURLs string

func (base imageURLs) of(ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return strings.TrimRight(string(base), "/") + "/" + ref
}

func (base imageURLs) view(l *domain.Listing) ListingView {
	return ListingView{
		ID:                l.ID,
		OwnerID:           l.OwnerID,
		OwnerName:         l.OwnerName,
		Offer:             l.Offer,
		Phone:             l.Phone,
		HouseNumber:       l.HouseNumber,
		PrimaryCategory:   l.Category.Primary,
		SecondaryCategory: l.Category.Secondary,
		Description:       l.Description,
		Price:             l.Price,
		Delivery:          l.Delivery,
		ImageURL:          base.of(l.ImageRef),
		Date:              l.Date,
		Status:            string(l.Status()),
		IsSponsored:       l.IsSponsored,
		RejectionReason:   l.RejectionReason,
	}
}

// views drains seq. The first iteration error aborts the whole page.
func (base imageURLs) views(seq iter.Seq2[*domain.Listing, error]) ([]ListingView, error) {
	out := []ListingView{}
	for l, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, base.view(l))
	}
	return out, nil
}
