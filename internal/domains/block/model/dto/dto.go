package dto

import (
	"velvet/internal/domains/block/model"
	"velvet/shared"
	gDto "velvet/shared/dto"
	gModel "velvet/shared/model"
	"velvet/shared/timezone"

	"github.com/google/uuid"
)

type CreateBlockRequest struct {
	TableID   string `json:"table_id"   validate:"required,uuid"`
	StartDate string `json:"start_date" validate:"required,dateonly"`
	EndDate   string `json:"end_date"   validate:"required,dateonly"`
	Reason    string `json:"reason"     validate:"required,max=255"`
}

func (c *CreateBlockRequest) ToModel(user string) model.Block {
	return model.Block{
		ID:        uuid.NewString(),
		TableID:   c.TableID,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		Reason:    c.Reason,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type BlockResponse struct {
	ID        string `json:"id"`
	TableID   string `json:"table_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
	gDto.Metadata
}

func (r *BlockResponse) FromModel(mod model.Block) {
	r.ID = mod.ID
	r.TableID = mod.TableID
	r.StartDate = mod.StartDate
	r.EndDate = mod.EndDate
	r.Reason = mod.Reason
	r.Metadata.FromModel(mod.Metadata)
}

type GetBlocksResponse struct {
	Blocks    []BlockResponse `json:"blocks"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetBlocksResponse) FromModels(models []model.Block, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Blocks = make([]BlockResponse, len(models))
	for i, mod := range models {
		r.Blocks[i].FromModel(mod)
	}
}
