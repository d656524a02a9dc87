package cli

import (
	"context"
	"fmt"
	"strconv"
)

// RunFavorites dispatches the favorites subcommands.
func (c *Cli) RunFavorites(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "list" {
		favs, err := c.favorites.List(ctx)
		if err != nil {
			return err
		}
		if len(favs) == 0 {
			fmt.Println("No favorites yet.")
			return nil
		}
		for _, f := range favs {
			fmt.Printf("%8d  movie %d\n", f.ID, f.MovieID)
		}
		return nil
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: trackr favorites add <movie-id>")
		}
		movieID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid movie id %q", args[1])
		}
		fav, err := c.favorites.Add(ctx, movieID)
		if err != nil {
			return err
		}
		fmt.Printf("Added favorite (id %d)\n", fav.ID)
		return nil
	case "remove":
		if len(args) < 2 {
			return fmt.Errorf("usage: trackr favorites remove <id>")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid favorite id %q", args[1])
		}
		if err := c.favorites.Remove(ctx, id); err != nil {
			return err
		}
		fmt.Println("Favorite removed.")
		return nil
	default:
		return fmt.Errorf("unknown favorites subcommand: %s", args[0])
	}
}

// RunProgress shows or updates episode progress.
func (c *Cli) RunProgress(ctx context.Context, args []string) error {
	if len(args) == 0 {
		entries, err := c.progress.List(ctx)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No tracked series yet.")
			return nil
		}
		for _, p := range entries {
			fmt.Printf("series %d: S%02dE%02d\n", p.SeriesID, p.Season, p.Episode)
		}
		return nil
	}

	if args[0] != "set" || len(args) < 4 {
		return fmt.Errorf("usage: trackr progress set <series-id> <season> <episode>")
	}

	seriesID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid series id %q", args[1])
	}
	season, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid season %q", args[2])
	}
	episode, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("invalid episode %q", args[3])
	}

	saved, err := c.progress.Save(ctx, seriesID, season, episode, true)
	if err != nil {
		return err
	}

	fmt.Printf("Progress saved: series %d at S%02dE%02d\n", saved.SeriesID, saved.Season, saved.Episode)
	return nil
}
