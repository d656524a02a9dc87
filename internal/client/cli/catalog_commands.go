package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// RunSearch searches movies and series.
func (c *Cli) RunSearch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: trackr search <query>")
	}

	results, err := c.movies.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	for _, m := range results {
		year := ""
		if len(m.ReleaseDate) >= 4 {
			year = " (" + m.ReleaseDate[:4] + ")"
		}
		fmt.Printf("%8d  %-6s %s%s\n", m.ID, m.MediaType, m.Title, year)
	}
	return nil
}

// RunPlaylists dispatches the playlist subcommands.
func (c *Cli) RunPlaylists(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.listPlaylists(ctx)
	}

	switch args[0] {
	case "list":
		return c.listPlaylists(ctx)
	case "create":
		if len(args) < 2 {
			return fmt.Errorf("usage: trackr playlists create <title>")
		}
		playlist, err := c.playlists.Create(ctx, strings.Join(args[1:], " "), "")
		if err != nil {
			return err
		}
		fmt.Printf("Created playlist %q (id %d)\n", playlist.Title, playlist.ID)
		return nil
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: trackr playlists delete <id>")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid playlist id %q", args[1])
		}
		if err := c.playlists.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Println("Playlist deleted.")
		return nil
	default:
		return fmt.Errorf("unknown playlists subcommand: %s", args[0])
	}
}

func (c *Cli) listPlaylists(ctx context.Context) error {
	lists, err := c.playlists.List(ctx)
	if err != nil {
		return err
	}

	if len(lists) == 0 {
		fmt.Println("No playlists yet.")
		return nil
	}

	for _, p := range lists {
		fmt.Printf("%8d  %-24s %3d items  %s\n", p.ID, p.Title, p.ItemCount, p.Description)
	}
	return nil
}

// RunReview submits a review for a movie.
func (c *Cli) RunReview(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: trackr review <movie-id> <rating> [comment]")
	}

	movieID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid movie id %q", args[0])
	}
	rating, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid rating %q", args[1])
	}

	content := ""
	if len(args) > 2 {
		content = strings.Join(args[2:], " ")
	}

	review, err := c.reviews.Submit(ctx, movieID, rating, content)
	if err != nil {
		return err
	}

	fmt.Printf("Review saved (id %d, rating %d/10)\n", review.ID, review.Rating)
	return nil
}
