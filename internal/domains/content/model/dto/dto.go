package dto

import (
	"hotel/internal/domains/content/model"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"strings"

	"github.com/google/uuid"
)

var errPageTitle = failure.BadRequestFromString("metadata.pageTitle is required")

type UpsertPageRequest struct {
	PageName string          `json:"pageName" validate:"required,oneof=home about rooms blog explore contact site-settings booking-settings"`
	Sections []model.Section `json:"sections" validate:"max=100"`
	Metadata model.PageMeta  `json:"metadata"`
}

func (r *UpsertPageRequest) Validate() (err error) {
	if strings.TrimSpace(r.Metadata.PageTitle) == "" {
		return errPageTitle
	}

	r.Sections, err = model.NormalizeSections(r.Sections)

	return err
}

func (r *UpsertPageRequest) ToModel(username string) model.PageContent {
	now := timezone.Now()

	return model.PageContent{
		ID:       uuid.NewString(),
		PageName: r.PageName,
		Sections: gModel.NewJSON(r.Sections),
		Meta:     gModel.NewJSON(r.Metadata),
		IsActive: true,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

// UpdatePageRequest replaces sections and metadata when present.
type UpdatePageRequest struct {
	Sections *gModel.JSON[[]model.Section] `db:"sections"  json:"sections"`
	Metadata *gModel.JSON[model.PageMeta]  `db:"metadata"  json:"metadata"`
	IsActive *bool                         `db:"is_active" json:"isActive"`
}

func (r *UpdatePageRequest) Validate() error {
	if r.Metadata != nil && strings.TrimSpace(r.Metadata.V.PageTitle) == "" {
		return errPageTitle
	}

	if r.Sections == nil {
		return nil
	}

	sections, err := model.NormalizeSections(r.Sections.V)
	if err != nil {
		return err
	}

	r.Sections.V = sections

	return nil
}

type PageContentResponse struct {
	ID       string          `json:"id"`
	PageName string          `json:"pageName"`
	Sections []model.Section `json:"sections"`
	Meta     model.PageMeta  `json:"metadata"`
	IsActive bool            `json:"isActive"`
	gDto.Metadata
}

func (r *PageContentResponse) FromModel(m model.PageContent) {
	r.ID = m.ID
	r.PageName = m.PageName
	r.Sections = m.SortedSections()
	r.Meta = m.Meta.V
	r.IsActive = m.IsActive
	r.Metadata.FromModel(m.Metadata)
}

type GetPagesResponse struct {
	Pages []PageContentResponse `json:"pages"`
	Count int                   `json:"count"`
}

func (r *GetPagesResponse) FromModels(models []model.PageContent) {
	r.Count = len(models)

	r.Pages = make([]PageContentResponse, len(models))
	for i, m := range models {
		r.Pages[i].FromModel(m)
	}
}
