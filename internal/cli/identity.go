package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

type IdentityShowCmd struct{}

func (c *IdentityShowCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	id := t.Identity()
	fmt.Printf("Identity: %s\n", id.Statement)
	if !id.Updated {
		fmt.Println("(default - set your own with 'atomicday identity set')")
	}
	return nil
}

type IdentitySetCmd struct {
	Statement string `arg:"" optional:"" help:"Identity statement. Omit for an interactive prompt."`
}

func (c *IdentitySetCmd) Run(ctx *Context) error {
	t, err := ctx.OpenTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	statement := c.Statement
	if statement == "" {
		statement = t.Identity().Statement
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Who are you becoming?").
				Placeholder("I am someone who...").
				Value(&statement),
		))
		if err := form.Run(); err != nil {
			return err
		}
	}

	if statement == "" {
		return fmt.Errorf("identity statement cannot be empty")
	}

	t.SetIdentity(statement)
	fmt.Printf("Identity saved: %s\n", statement)
	return nil
}
