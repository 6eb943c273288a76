package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sheikh-saqib/personal-ledger-service/internal/models"
)

func (a *API) register(c *fiber.Ctx, env *Envelope[registerInput]) error {
	res, err := a.accounts.Register(c.UserContext(), env.Input.Email, env.Input.Password)
	if err != nil {
		return err
	}

	created := res.Account.CreatedAt
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user": userView{
			ID:        res.Account.ID,
			Email:     res.Account.Email,
			CreatedAt: &created,
		},
		"token": res.Token,
	})
}

func (a *API) login(c *fiber.Ctx, env *Envelope[loginInput]) error {
	res, err := a.accounts.Login(c.UserContext(), env.Input.Email, env.Input.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    userView{ID: res.Account.ID, Email: res.Account.Email},
		"token":   res.Token,
	})
}

func (a *API) createEntry(c *fiber.Ctx, env *Envelope[createEntryInput]) error {
	in := env.Input
	entry, err := a.ledger.CreateEntry(c.UserContext(), env.Principal.AccountID, in.Title, models.Kind(in.Type), in.Amount)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Transaction added successfully",
		"transaction": newEntryView(entry),
	})
}

func (a *API) listEntries(c *fiber.Ctx, env *Envelope[listInput]) error {
	page, err := a.ledger.ListEntries(c.UserContext(), env.Principal.AccountID, env.Input.query())
	if err != nil {
		return err
	}

	views := make([]entryView, 0, len(page.Entries))
	for _, e := range page.Entries {
		views = append(views, newEntryView(e))
	}
	return c.JSON(fiber.Map{
		"transactions": views,
		"pagination":   page.Pagination,
	})
}

func (a *API) balance(c *fiber.Ctx, env *Envelope[struct{}]) error {
	sum, err := a.ledger.Summarize(c.UserContext(), env.Principal.AccountID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"summary": summaryView{
			TotalIncome:   money(sum.TotalIncome),
			TotalExpenses: money(sum.TotalExpenses),
			Balance:       money(sum.Balance),
		},
	})
}

func (a *API) updateEntry(c *fiber.Ctx, env *Envelope[updateEntryInput]) error {
	entry, err := a.ledger.UpdateEntry(c.UserContext(), env.Principal.AccountID, env.ID, env.Input.patch())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":     "Transaction updated successfully",
		"transaction": newEntryView(entry),
	})
}

func (a *API) deleteEntry(c *fiber.Ctx, env *Envelope[struct{}]) error {
	if err := a.ledger.DeleteEntry(c.UserContext(), env.Principal.AccountID, env.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Transaction deleted successfully"})
}

func (a *API) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "OK",
		"message":   "Personal ledger API is running",
		"timestamp": a.now().UTC(),
	})
}
