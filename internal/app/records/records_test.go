package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lier-bua/gear-catalog-api/internal/domain"
	"github.com/lier-bua/gear-catalog-api/internal/ports/out/docstore"
)

func strPtr(s string) *string { return &s }

func TestEquipmentDocument_RoundTripsThroughStorageShapes(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	in := domain.Equipment{
		Title:       "Ski Set",
		Category:    "Winter",
		Condition:   "new",
		Description: strPtr("waxed"),
		Location:    "Main",
		Tags:        []string{"snow", "ski"},
		IsActive:    true,
		CreatedAt:   created,
	}

	body, err := docstore.Encode(EquipmentDocument(in))
	require.NoError(t, err)
	doc, err := docstore.Decode("eq-1", body)
	require.NoError(t, err)

	out, err := EquipmentFromDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, domain.EquipmentID("eq-1"), out.ID)
	assert.Equal(t, "Ski Set", out.Title)
	assert.Equal(t, "new", out.Condition)
	require.NotNil(t, out.Description)
	assert.Equal(t, "waxed", *out.Description)
	assert.Nil(t, out.ImageURL)
	assert.Nil(t, out.Size)
	assert.Equal(t, []string{"snow", "ski"}, out.Tags)
	assert.True(t, out.IsActive)
	assert.True(t, created.Equal(out.CreatedAt))
}

func TestEquipmentFromDocument_RejectsMalformed(t *testing.T) {
	t.Parallel()

	_, err := EquipmentFromDocument(docstore.Document{
		docstore.IDField: "eq-1",
		"title":          "Ski",
		"category":       "Winter",
		"location":       "Main",
		"tags":           "not-a-list",
		"is_active":      true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "eq-1")

	_, err = EquipmentFromDocument(docstore.Document{"title": "no id"})
	require.Error(t, err)
}

func TestReservationDocument_DatesAsCalendarStrings(t *testing.T) {
	t.Parallel()

	r, err := domain.ValidateReservation(domain.Payload{
		"member_email": "a@x.org",
		"equipment_id": "eq-1",
		"start_date":   "2024-05-01",
		"end_date":     "2024-05-03",
	})
	require.NoError(t, err)

	d := ReservationDocument(r)
	assert.Equal(t, "2024-05-01", d["start_date"])
	assert.Equal(t, "2024-05-03", d["end_date"])
	assert.Equal(t, "eq-1", d["equipment_id"])
	v, ok := d["notes"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestReportAndMemberDocuments_OptionalsAsNull(t *testing.T) {
	t.Parallel()

	eid := domain.EquipmentID("eq-9")
	rep := ReportDocument(domain.Report{Type: "repair", Name: "Al", Email: "al@x.org", Message: "broken", EquipmentID: &eid})
	assert.Equal(t, "eq-9", rep["equipment_id"])
	rep = ReportDocument(domain.Report{Type: "donation", Name: "Al", Email: "al@x.org", Message: "tent"})
	assert.Nil(t, rep["equipment_id"])

	m := MemberDocument(domain.Member{Name: "Al", Email: "al@x.org", Phone: strPtr("555")})
	assert.Equal(t, "555", m["phone"])
	assert.Nil(t, m["address"])
	assert.Contains(t, m, FieldCreatedAt)
}
