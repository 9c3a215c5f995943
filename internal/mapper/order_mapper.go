// FILE: internal/mapper/order_mapper.go
// Mapper for Order/License entity <-> model conversion
package mapper

import (
	"launchforge-be/internal/entity"
	"launchforge-be/internal/model"
)

type OrderMapper struct {
	templateMapper *TemplateMapper
}

func NewOrderMapper() *OrderMapper {
	return &OrderMapper{
		templateMapper: NewTemplateMapper(),
	}
}

func (m *OrderMapper) ToEntity(mdl *model.Order) *entity.Order {
	if mdl == nil {
		return nil
	}
	e := &entity.Order{
		Id:            mdl.Id,
		OrderNumber:   mdl.OrderNumber,
		Tier:          mdl.Tier,
		CustomerName:  mdl.CustomerName,
		CustomerEmail: mdl.CustomerEmail,
		Total:         mdl.Total,
		Currency:      mdl.Currency,
		Status:        entity.OrderStatus(mdl.Status),
		TemplateId:    mdl.TemplateId,
		Template:      m.templateMapper.ToEntity(mdl.Template),
		License:       m.LicenseToEntity(mdl.License),
		CreatedAt:     mdl.CreatedAt,
		UpdatedAt:     mdl.UpdatedAt,
	}
	unmarshalJSON(mdl.SelectedFeatureSlugs, &e.SelectedFeatureSlugs)
	return e
}

func (m *OrderMapper) ToModel(e *entity.Order) *model.Order {
	if e == nil {
		return nil
	}
	return &model.Order{
		Id:                   e.Id,
		OrderNumber:          e.OrderNumber,
		Tier:                 e.Tier,
		SelectedFeatureSlugs: marshalJSON(e.SelectedFeatureSlugs),
		CustomerName:         e.CustomerName,
		CustomerEmail:        e.CustomerEmail,
		Total:                e.Total,
		Currency:             e.Currency,
		Status:               string(e.Status),
		TemplateId:           e.TemplateId,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}

func (m *OrderMapper) ToEntities(models []*model.Order) []*entity.Order {
	entities := make([]*entity.Order, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}

func (m *OrderMapper) LicenseToEntity(mdl *model.License) *entity.License {
	if mdl == nil {
		return nil
	}
	return &entity.License{
		Id:                mdl.Id,
		OrderId:           mdl.OrderId,
		Key:               mdl.Key,
		DownloadTokenHash: mdl.DownloadTokenHash,
		DownloadCount:     mdl.DownloadCount,
		MaxDownloads:      mdl.MaxDownloads,
		Status:            entity.LicenseStatus(mdl.Status),
		ExpiresAt:         mdl.ExpiresAt,
		CreatedAt:         mdl.CreatedAt,
		UpdatedAt:         mdl.UpdatedAt,
	}
}

func (m *OrderMapper) LicenseToModel(e *entity.License) *model.License {
	if e == nil {
		return nil
	}
	return &model.License{
		Id:                e.Id,
		OrderId:           e.OrderId,
		Key:               e.Key,
		DownloadTokenHash: e.DownloadTokenHash,
		DownloadCount:     e.DownloadCount,
		MaxDownloads:      e.MaxDownloads,
		Status:            string(e.Status),
		ExpiresAt:         e.ExpiresAt,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}
