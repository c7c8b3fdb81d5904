package dto

import (
	"hotel/internal/domains/contact/model"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
)

// UpdateContactSettingsRequest replaces only the fields that are present.
// Location and service hours are replaced as whole objects.
type UpdateContactSettingsRequest struct {
	Phone            string                           `db:"phone"             json:"phone"            validate:"omitempty,max=30"`
	Email            string                           `db:"email"             json:"email"            validate:"omitempty,email,max=254"`
	Location         *gModel.JSON[model.Location]     `db:"location"          json:"location"`
	ServiceHours     *gModel.JSON[model.ServiceHours] `db:"service_hours"     json:"serviceHours"`
	EmergencyHotline string                           `db:"emergency_hotline" json:"emergencyHotline" validate:"omitempty,max=30"`
}

type ContactSettingsResponse struct {
	Phone            string             `json:"phone"`
	Email            string             `json:"email"`
	Location         model.Location     `json:"location"`
	ServiceHours     model.ServiceHours `json:"serviceHours"`
	EmergencyHotline string             `json:"emergencyHotline"`
	gDto.Metadata
}

func (r *ContactSettingsResponse) FromModel(m model.ContactSettings) {
	r.Phone = m.Phone
	r.Email = m.Email
	r.Location = m.Location.V
	r.ServiceHours = m.ServiceHours.V
	r.EmergencyHotline = m.EmergencyHotline
	r.Metadata.FromModel(m.Metadata)
}
