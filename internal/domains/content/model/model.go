package model

import (
	"cmp"
	"encoding/json"
	"hotel/shared/failure"
	"hotel/shared/model"
	"net/http"
	"slices"
	"strings"
)

const (
	TableName  = "page_contents"
	EntityName = "page content"

	FieldID       = "id"
	FieldPageName = "page_name"
	FieldSections = "sections"
	FieldMetadata = "metadata"
)

const (
	PageHome            = "home"
	PageAbout           = "about"
	PageRooms           = "rooms"
	PageBlog            = "blog"
	PageExplore         = "explore"
	PageContact         = "contact"
	PageSiteSettings    = "site-settings"
	PageBookingSettings = "booking-settings"
)

var PageNames = []string{PageHome, PageAbout, PageRooms, PageBlog, PageExplore, PageContact, PageSiteSettings, PageBookingSettings}

var (
	ErrUnknownPage    = &failure.Failure{Code: http.StatusBadRequest, Message: "unknown page name"}
	ErrPageNotFound   = &failure.Failure{Code: http.StatusNotFound, Message: "page content not found"}
	ErrSectionMissing = &failure.Failure{Code: http.StatusBadRequest, Message: "every section needs a sectionId and sectionName"}
)

type Section struct {
	SectionID   string            `json:"sectionId"`
	SectionName string            `json:"sectionName"`
	Title       string            `json:"title,omitempty"`
	Subtitle    string            `json:"subtitle,omitempty"`
	Description string            `json:"description,omitempty"`
	Content     string            `json:"content,omitempty"`
	HeroImage   string            `json:"heroImage,omitempty"`
	Images      []string          `json:"images,omitempty"`
	ButtonText  string            `json:"buttonText,omitempty"`
	ButtonLink  string            `json:"buttonLink,omitempty"`
	Items       []json.RawMessage `json:"items,omitempty"`
	IsVisible   *bool             `json:"isVisible,omitempty"`
	Order       int               `json:"order"`
}

type PageMeta struct {
	PageTitle       string   `json:"pageTitle"`
	PageDescription string   `json:"pageDescription,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
}

type PageContent struct {
	ID       string                `db:"id"`
	PageName string                `db:"page_name"`
	Sections model.JSON[[]Section] `db:"sections"`
	Meta     model.JSON[PageMeta]  `db:"metadata"`
	IsActive bool                  `db:"is_active"`
	model.Metadata
}

func IsPageName(name string) bool {
	return slices.Contains(PageNames, name)
}

// NormalizeSections checks the required section keys and makes visibility
// explicit. Sections without isVisible are visible.
func NormalizeSections(sections []Section) ([]Section, error) {
	out := make([]Section, len(sections))

	for i, section := range sections {
		if strings.TrimSpace(section.SectionID) == "" || strings.TrimSpace(section.SectionName) == "" {
			return nil, ErrSectionMissing
		}

		if section.IsVisible == nil {
			visible := true
			section.IsVisible = &visible
		}

		out[i] = section
	}

	return out, nil
}

// SortedSections returns the sections ordered by their order field. Ties keep
// their stored order.
func (p PageContent) SortedSections() []Section {
	sections := slices.Clone(p.Sections.V)
	if sections == nil {
		return []Section{}
	}

	slices.SortStableFunc(sections, func(a, b Section) int {
		return cmp.Compare(a.Order, b.Order)
	})

	return sections
}
