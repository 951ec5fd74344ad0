package cli

import "fmt"

type CategoryAddCmd struct {
	Title string `arg:"" help:"Category title."`
}

func (c *CategoryAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.Store.AddCategory(c.Title); err != nil {
		return err
	}
	fmt.Printf("Category %q ready\n", c.Title)
	return nil
}

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	categories, err := ctx.Store.GetAllCategories()
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		fmt.Println("No categories yet")
		return nil
	}
	for _, category := range categories {
		fmt.Printf("%s (%d trackers)\n", category.Title, len(category.Trackers))
	}
	return nil
}
