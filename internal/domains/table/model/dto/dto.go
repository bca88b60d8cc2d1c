package dto

import (
	"velvet/internal/domains/table/model"
	"velvet/shared"
	gDto "velvet/shared/dto"
	gModel "velvet/shared/model"
	"velvet/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateTableRequest struct {
	TableNumber  int    `json:"table_number"  validate:"required,gte=1"`
	Floor        string `json:"floor"         validate:"required,oneof=main terrace"`
	CapacityMin  int    `json:"capacity_min"  validate:"required,gte=1"`
	CapacityMax  int    `json:"capacity_max"  validate:"required,gte=1"`
	VIP          bool   `json:"vip"`
	CombinesWith []int  `json:"combines_with" validate:"omitempty,dive,gte=1"`
}

func (c *CreateTableRequest) ToModel(user string) model.Table {
	combines := make(pq.Int64Array, len(c.CombinesWith))
	for i, number := range c.CombinesWith {
		combines[i] = int64(number)
	}

	return model.Table{
		ID:           uuid.NewString(),
		TableNumber:  c.TableNumber,
		Floor:        c.Floor,
		CapacityMin:  c.CapacityMin,
		CapacityMax:  c.CapacityMax,
		VIP:          c.VIP,
		Active:       true,
		CombinesWith: combines,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateTableRequest struct {
	Floor       string `db:"floor"        json:"floor"        validate:"omitempty,oneof=main terrace"`
	CapacityMin int    `db:"capacity_min" json:"capacity_min" validate:"omitempty,gte=1"`
	CapacityMax int    `db:"capacity_max" json:"capacity_max" validate:"omitempty,gte=1"`
	VIP         *bool  `db:"vip"          json:"vip"          validate:"omitempty"`
}

type TableResponse struct {
	ID           string   `json:"id"`
	TableNumber  int      `json:"table_number"`
	Floor        string   `json:"floor"`
	CapacityMin  int      `json:"capacity_min"`
	CapacityMax  int      `json:"capacity_max"`
	VIP          bool     `json:"vip"`
	Active       bool     `json:"active"`
	CombinesWith []int    `json:"combines_with"`
	Features     []string `json:"features"`
	gDto.Metadata
}

func (r *TableResponse) FromModel(mod model.Table) {
	r.ID = mod.ID
	r.TableNumber = mod.TableNumber
	r.Floor = mod.Floor
	r.CapacityMin = mod.CapacityMin
	r.CapacityMax = mod.CapacityMax
	r.VIP = mod.VIP
	r.Active = mod.Active
	r.Features = mod.Features()

	r.CombinesWith = make([]int, len(mod.CombinesWith))
	for i, number := range mod.CombinesWith {
		r.CombinesWith[i] = int(number)
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetTablesResponse struct {
	Tables    []TableResponse `json:"tables"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetTablesResponse) FromModels(models []model.Table, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tables = make([]TableResponse, len(models))
	for i, mod := range models {
		r.Tables[i].FromModel(mod)
	}
}
