package httpapi

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/personal-ledger-service/internal/models"
	"github.com/sheikh-saqib/personal-ledger-service/internal/validation"
)

type registerInput struct {
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"min=6,containsany=0123456789"`
}

func (in *registerInput) Normalize() { in.Email = validation.NormalizeEmail(in.Email) }

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (in *loginInput) Normalize() { in.Email = validation.NormalizeEmail(in.Email) }

type createEntryInput struct {
	Title  string          `json:"title" validate:"required,min=1,max=255"`
	Type   string          `json:"type" validate:"required,oneof=income expense"`
	Amount decimal.Decimal `json:"amount" validate:"positive_decimal"`
}

type updateEntryInput struct {
	Title  *string          `json:"title" validate:"omitempty,min=1,max=255"`
	Type   *string          `json:"type" validate:"omitempty,oneof=income expense"`
	Amount *decimal.Decimal `json:"amount" validate:"omitempty,positive_decimal"`
}

func (in updateEntryInput) patch() models.EntryPatch {
	p := models.EntryPatch{Title: in.Title, Amount: in.Amount}
	if in.Type != nil {
		kind := models.Kind(*in.Type)
		p.Kind = &kind
	}
	return p
}

type listInput struct {
	Page  *int   `query:"page" validate:"omitempty,min=1"`
	Limit *int   `query:"limit" validate:"omitempty,min=1"`
	Type  string `query:"type" validate:"omitempty,oneof=income expense"`
}

func (in listInput) query() models.ListQuery {
	var q models.ListQuery
	if in.Page != nil {
		q.Page = *in.Page
	}
	if in.Limit != nil {
		q.Limit = *in.Limit
	}
	if in.Type != "" {
		kind := models.Kind(in.Type)
		q.Kind = &kind
	}
	return q
}

// money renders an amount as a JSON number with two fractional digits.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

type userView struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type entryView struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Title     string      `json:"title"`
	Type      models.Kind `json:"type"`
	Amount    json.Number `json:"amount"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func newEntryView(e models.LedgerEntry) entryView {
	return entryView{
		ID:        e.ID,
		UserID:    e.OwnerID,
		Title:     e.Title,
		Type:      e.Kind,
		Amount:    money(e.Amount),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

type summaryView struct {
	TotalIncome   json.Number `json:"total_income"`
	TotalExpenses json.Number `json:"total_expenses"`
	Balance       json.Number `json:"balance"`
}
