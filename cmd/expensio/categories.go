package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ImAdityaa12/expensio-app/internal/cli"
	"github.com/ImAdityaa12/expensio-app/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage spending categories",
		Long:  `List and create the categories transactions are filed under, and map merchant keywords to them.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(mapMerchantCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categories, err := store.GetCategories(ctx, currentUserID())
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			if len(categories) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories found. Run 'expensio setup' to seed the defaults."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "NAME\tICON\tCOLOR\tDEFAULT\n")
			for _, cat := range categories {
				isDefault := ""
				if cat.IsDefault {
					isDefault = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", cat.Name, cat.Icon, cat.Color, isDefault)
			}
			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			icon, _ := cmd.Flags().GetString("icon")
			color, _ := cmd.Flags().GetString("color")

			category := &model.Category{
				ID:     uuid.New().String(),
				UserID: currentUserID(),
				Name:   args[0],
				Icon:   icon,
				Color:  color,
			}
			if err := store.CreateCategory(ctx, category); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Created category %q.", category.Name)))
			return nil
		},
	}

	cmd.Flags().String("icon", "tag", "icon name")
	cmd.Flags().String("color", "#6B7280", "hex color")

	return cmd
}

func mapMerchantCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "map <keyword> <category>",
		Short: "Map a merchant keyword to a category",
		Long: `Teach the categorizer that merchants matching a keyword belong to a
category. Example: expensio categories map irctc Travel`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			userID := currentUserID()

			category, err := store.GetCategoryByName(ctx, userID, args[1])
			if err != nil {
				return fmt.Errorf("unknown category %q", args[1])
			}

			mapping := &model.MerchantCategoryMap{
				ID:              uuid.New().String(),
				UserID:          userID,
				MerchantKeyword: args[0],
				CategoryID:      category.ID,
			}
			if err := store.SaveMerchantMapping(ctx, mapping); err != nil {
				return fmt.Errorf("failed to save mapping: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Mapped %q to %s.", args[0], category.Name)))
			return nil
		},
	}
}
