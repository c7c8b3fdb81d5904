package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/internal/domains/content/model"
	gModel "hotel/shared/model"
)

func TestNormalizeSections(t *testing.T) {
	hidden := false

	sections, err := model.NormalizeSections([]model.Section{
		{SectionID: "hero", SectionName: "Hero"},
		{SectionID: "cta", SectionName: "CTA", IsVisible: &hidden},
	})
	require.NoError(t, err)
	assert.True(t, *sections[0].IsVisible)
	assert.False(t, *sections[1].IsVisible)

	_, err = model.NormalizeSections([]model.Section{{SectionID: "hero"}})
	assert.ErrorIs(t, err, model.ErrSectionMissing)
}

func TestPageContent_SortedSections(t *testing.T) {
	page := model.PageContent{Sections: gModel.NewJSON([]model.Section{
		{SectionID: "c", Order: 3},
		{SectionID: "a", Order: 1},
		{SectionID: "b1", Order: 2},
		{SectionID: "b2", Order: 2},
	})}

	ids := []string{}
	for _, s := range page.SortedSections() {
		ids = append(ids, s.SectionID)
	}

	assert.Equal(t, []string{"a", "b1", "b2", "c"}, ids)
	assert.Equal(t, "c", page.Sections.V[0].SectionID)

	assert.Empty(t, model.PageContent{}.SortedSections())
	assert.NotNil(t, model.PageContent{}.SortedSections())
}

func TestIsPageName(t *testing.T) {
	assert.True(t, model.IsPageName("site-settings"))
	assert.False(t, model.IsPageName("admin"))
}
