package netaccess

import (
	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
)

type CreateIPRangeRequest struct {
	Name        string `json:"name"`
	IPRange     string `json:"ip_range"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

func (r *CreateIPRangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.IPRange) {
		errs = append(errs, validator.ValidationError{
			Field:   "ip_range",
			Message: "ip_range is required",
		})
	} else if !IsValidRange(r.IPRange) {
		errs = append(errs, validator.ValidationError{
			Field:   "ip_range",
			Message: "ip_range must be a valid IP address or CIDR (e.g. 192.168.1.0/24)",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateIPRangeRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name,omitempty"`
	IPRange     *string `json:"ip_range,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r *UpdateIPRangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.IPRange != nil && !IsValidRange(*r.IPRange) {
		errs = append(errs, validator.ValidationError{
			Field:   "ip_range",
			Message: "ip_range must be a valid IP address or CIDR (e.g. 192.168.1.0/24)",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type IPRangeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IPRange     string `json:"ip_range"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
