package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fandressouza/indicacoes/domain"
)

// ValidateSubmission checks raw form fields and returns the typed submission. Text
// fields are kept exactly as submitted. It has no side effects.
func ValidateSubmission(form domain.SubmissionForm) (domain.ValidatedSubmission, error) {
	required := []struct {
		field string
		value string
	}{
		{"offer", form.Offer},
		{"phone", form.Phone},
		{"description", form.Description},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return domain.ValidatedSubmission{}, fmt.Errorf("%w: %s is required", domain.ErrInvalidForm, r.field)
		}
	}

	if !domain.IsPrimaryCategory(form.Primary) {
		return domain.ValidatedSubmission{}, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidCategory, form.Primary)
	}
	if !domain.IsSecondaryCategory(form.Secondary) {
		return domain.ValidatedSubmission{}, fmt.Errorf("%w: unknown sub category %q", domain.ErrInvalidCategory, form.Secondary)
	}

	price, err := strconv.ParseInt(strings.TrimSpace(form.Price), 10, 64)
	if err != nil {
		return domain.ValidatedSubmission{}, fmt.Errorf("%w: %q is not a whole number", domain.ErrInvalidPrice, form.Price)
	}
	if price <= 0 {
		return domain.ValidatedSubmission{}, fmt.Errorf("%w: must be positive", domain.ErrInvalidPrice)
	}

	return domain.ValidatedSubmission{
		Offer:       form.Offer,
		Phone:       form.Phone,
		HouseNumber: form.HouseNumber,
		Category:    domain.CategoryPair{Primary: form.Primary, Secondary: form.Secondary},
		Description: form.Description,
		Price:       price,
		Delivery:    form.Delivery,
	}, nil
}
