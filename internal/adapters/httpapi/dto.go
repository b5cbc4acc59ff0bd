package httpapi

import (
	"github.com/oapi-codegen/nullable"

	"github.com/lier-bua/gear-catalog-api/internal/domain"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

// EquipmentItem is one catalog result. Optional fields are always present, as null when unset.
type EquipmentItem struct {
	ID          string                    `json:"id"`
	Title       string                    `json:"title"`
	Category    string                    `json:"category"`
	Condition   string                    `json:"condition"`
	Description nullable.Nullable[string] `json:"description"`
	ImageURL    nullable.Nullable[string] `json:"image_url"`
	Size        nullable.Nullable[string] `json:"size"`
	Location    string                    `json:"location"`
	Tags        []string                  `json:"tags"`
	IsActive    bool                      `json:"is_active"`
}

type EquipmentListResponse struct {
	Items []EquipmentItem `json:"items"`
}

type DiagnosticsResponse struct {
	Backend          string   `json:"backend"`
	StorageBackend   string   `json:"storage_backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

func equipmentItemFromDomain(e domain.Equipment) EquipmentItem {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return EquipmentItem{
		ID:          string(e.ID),
		Title:       e.Title,
		Category:    e.Category,
		Condition:   e.Condition,
		Description: nullableString(e.Description),
		ImageURL:    nullableString(e.ImageURL),
		Size:        nullableString(e.Size),
		Location:    e.Location,
		Tags:        tags,
		IsActive:    e.IsActive,
	}
}

func nullableString(p *string) nullable.Nullable[string] {
	if p == nil {
		return nullable.NewNullNullable[string]()
	}
	return nullable.NewNullableWithValue(*p)
}
