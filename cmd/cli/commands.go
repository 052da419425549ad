package main

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sealjuli/Library/internal/store"
	"github.com/sealjuli/Library/pkg/database"
	"github.com/sealjuli/Library/pkg/models"
)

// app carries what every command needs. open is called lazily so that
// --help works without a database.
type app struct {
	out    io.Writer
	logger *zap.Logger
	open   func() (*gorm.DB, error)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "library",
		Short:        "Administer the library database",
		SilenceUsage: true,
	}
	root.SetOut(a.out)
	root.AddCommand(a.migrateCmd(), a.booksCmd(), a.usersCmd())
	return root
}

// withDB opens the database for the duration of one command.
func (a *app) withDB(fn func(db *gorm.DB) error) error {
	db, err := a.open()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close(db) //nolint:errcheck
	return fn(db)
}

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the books, users and user_books tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDB(func(db *gorm.DB) error {
				if err := database.RunMigrations(db, a.logger); err != nil {
					return err
				}
				fmt.Fprintln(a.out, "schema is up to date")
				return nil
			})
		},
	}
}

func (a *app) booksCmd() *cobra.Command {
	books := &cobra.Command{Use: "books", Short: "Inspect books"}

	var title, author string
	var page int
	list := &cobra.Command{
		Use:   "list",
		Short: "List books, optionally filtered by exact title and author",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDB(func(db *gorm.DB) error {
				repo := store.NewBookRepository(db)
				ctx := cmd.Context()

				var (
					rows []models.Book
					err  error
				)
				if title == "" && author == "" {
					rows, err = repo.List(ctx, page)
				} else {
					var p store.Page[models.Book]
					switch {
					case title != "" && author != "":
						p, err = repo.FindByTitleAndAuthor(ctx, title, author, page)
					case title != "":
						p, err = repo.FindByTitle(ctx, title, page)
					default:
						p, err = repo.FindByAuthor(ctx, author, page)
					}
					rows = p.Rows
					if err == nil {
						fmt.Fprintf(a.out, "%d matching\n", p.Count)
					}
				}
				if err != nil {
					return err
				}
				renderBooks(a.out, rows)
				return nil
			})
		},
	}
	list.Flags().StringVar(&title, "title", "", "exact title")
	list.Flags().StringVar(&author, "author", "", "exact author")
	list.Flags().IntVar(&page, "page", store.AllPages, "1-based page of 10, 0 for all")

	count := &cobra.Command{
		Use:   "count",
		Short: "Count books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDB(func(db *gorm.DB) error {
				n, err := store.NewBookRepository(db).Count(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(a.out, n)
				return nil
			})
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDB(func(db *gorm.DB) error {
				book, err := store.NewBookRepository(db).FindByID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				renderBooks(a.out, []models.Book{*book})
				return nil
			})
		},
	}

	books.AddCommand(list, count, get)
	return books
}

func (a *app) usersCmd() *cobra.Command {
	users := &cobra.Command{Use: "users", Short: "Inspect users"}

	var page int
	list := &cobra.Command{
		Use:   "list",
		Short: "List users in registration order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDB(func(db *gorm.DB) error {
				rows, err := store.NewUserRepository(db).List(cmd.Context(), page)
				if err != nil {
					return err
				}
				renderUsers(a.out, rows)
				return nil
			})
		},
	}
	list.Flags().IntVar(&page, "page", store.AllPages, "1-based page of 10, 0 for all")

	count := &cobra.Command{
		Use:   "count",
		Short: "Count users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDB(func(db *gorm.DB) error {
				n, err := store.NewUserRepository(db).Count(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(a.out, n)
				return nil
			})
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDB(func(db *gorm.DB) error {
				user, err := store.NewUserRepository(db).FindByID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				renderUsers(a.out, []models.User{*user})
				return nil
			})
		},
	}

	users.AddCommand(list, count, get)
	return users
}

func renderBooks(w io.Writer, books []models.Book) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Title", "Author", "Year", "Pages"})
	for _, b := range books {
		t.AppendRow(table.Row{b.ID, b.Title, b.Author, b.PublicationYear, b.PagesNumber})
	}
	t.AppendFooter(table.Row{"", "", "", "Total", len(books)})
	t.Render()
}

func renderUsers(w io.Writer, users []models.User) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Email", "Registered"})
	for _, u := range users {
		t.AppendRow(table.Row{u.ID, u.Name, u.Email, u.RegisterDate.Format(time.DateOnly)})
	}
	t.AppendFooter(table.Row{"", "", "Total", len(users)})
	t.Render()
}
