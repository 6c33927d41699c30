package libris

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jkarvo/libris/internal/catalog"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample authors and books into the store",
	Long: `Load a small sample catalog into the configured MongoDB database.
Refuses to run against a store that already contains books.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd.Context())
	},
}

type seedBook struct {
	title     string
	published int
	author    string
	genres    []string
}

var seedAuthors = []struct {
	name string
	born int
}{
	{"Robert Martin", 1952},
	{"Martin Fowler", 1963},
	{"Fyodor Dostoevsky", 1821},
	{"Joshua Kerievsky", 0},
	{"Sandi Metz", 0},
}

var seedBooks = []seedBook{
	{"Clean Code", 2008, "Robert Martin", []string{"refactoring"}},
	{"Agile software development", 2002, "Robert Martin", []string{"agile", "patterns", "design"}},
	{"Refactoring, edition 2", 2018, "Martin Fowler", []string{"refactoring"}},
	{"Refactoring to patterns", 2008, "Joshua Kerievsky", []string{"refactoring", "patterns"}},
	{"Practical Object-Oriented Design", 2012, "Sandi Metz", []string{"refactoring", "design"}},
	{"Crime and punishment", 1866, "Fyodor Dostoevsky", []string{"classic", "crime"}},
	{"Demons", 1872, "Fyodor Dostoevsky", []string{"classic", "revolution"}},
}

func runSeed(ctx context.Context) error {
	store, cleanup, err := openStore(ctx, false)
	if err != nil {
		return err
	}
	defer cleanup()

	n, err := store.CountBooks(ctx)
	if err != nil {
		return fmt.Errorf("inspecting store: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("store already contains %d books, refusing to seed", n)
	}

	authorIDs := make(map[string]string, len(seedAuthors))
	for _, sa := range seedAuthors {
		author := &catalog.Author{Name: sa.name}
		if sa.born != 0 {
			born := sa.born
			author.Born = &born
		}
		if err := store.SaveAuthor(ctx, author); err != nil {
			return fmt.Errorf("seeding author %q: %w", sa.name, err)
		}
		authorIDs[sa.name] = author.ID
	}

	for _, sb := range seedBooks {
		book := &catalog.Book{
			Title:     sb.title,
			Published: sb.published,
			AuthorID:  authorIDs[sb.author],
			Genres:    sb.genres,
		}
		if err := store.SaveBook(ctx, book); err != nil {
			return fmt.Errorf("seeding book %q: %w", sb.title, err)
		}
	}

	fmt.Printf("Seeded %d authors and %d books\n", len(seedAuthors), len(seedBooks))
	return nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
