package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/gnwofoke/portfolio-api/internal/client"
	"github.com/gnwofoke/portfolio-api/internal/domain/model"
)

func newMessageController(c *client.Client) *client.ListController[model.Message] {
	return client.NewListController(client.ResourceOps[model.Message]{
		List:   c.ListMessages,
		Delete: c.DeleteMessage,
		MarkRead: func(ctx context.Context, id string) (model.Message, error) {
			msg, err := c.MarkMessageRead(ctx, id)
			if err != nil {
				return model.Message{}, err
			}
			return *msg, nil
		},
		ID: func(m model.Message) string { return m.ID },
	})
}

func runMessages(appCtx *appContext, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: portfolio-admin messages <list|show|read|delete> [flags]")
	}
	if err := ensureAdmin(appCtx); err != nil {
		return err
	}

	ctrl := newMessageController(appCtx.Client)
	switch args[0] {
	case "list":
		if err := ctrl.Load(appCtx.Ctx); err != nil {
			return err
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		if err := writef(tw, "ID\tFROM\tSUBJECT\tREAD\tRECEIVED\n"); err != nil {
			return err
		}
		for _, m := range ctrl.Items() {
			if err := writef(tw, "%s\t%s <%s>\t%s\t%t\t%s\n",
				m.ID, m.Name, m.Email, m.Subject, m.Read, m.CreatedAt.Format("2006-01-02 15:04")); err != nil {
				return err
			}
		}
		return tw.Flush()
	case "show", "read":
		fs := flag.NewFlagSet("messages "+args[0], flag.ContinueOnError)
		id := fs.String("id", "", "message id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == "" {
			return errors.New("-id is required")
		}
		if err := ctrl.Load(appCtx.Ctx); err != nil {
			return err
		}
		if err := ctrl.MarkRead(appCtx.Ctx, *id); err != nil {
			return err
		}
		for _, m := range ctrl.Items() {
			if m.ID == *id {
				return writef(os.Stdout, "From: %s <%s>\nSubject: %s\nReceived: %s\n\n%s\n",
					m.Name, m.Email, m.Subject, m.CreatedAt.Format("2006-01-02 15:04"), m.Body)
			}
		}
		return fmt.Errorf("message %s not in inbox", *id)
	case "delete":
		fs := flag.NewFlagSet("messages delete", flag.ContinueOnError)
		id := fs.String("id", "", "message id")
		yes := fs.Bool("yes", false, "confirm the delete")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == "" {
			return errors.New("-id is required")
		}
		return confirmDelete(appCtx, ctrl, *id, *yes)
	default:
		return fmt.Errorf("unknown messages subcommand %q", args[0])
	}
}

func runStats(appCtx *appContext, args []string) error {
	if len(args) != 0 {
		return errors.New("stats takes no arguments")
	}
	if err := ensureAdmin(appCtx); err != nil {
		return err
	}

	stats, err := appCtx.Client.Stats(appCtx.Ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	rows := []struct {
		label string
		value int
	}{
		{"projects", stats.Projects},
		{"posts", stats.Posts},
		{"published posts", stats.PublishedPosts},
		{"messages", stats.Messages},
		{"unread messages", stats.UnreadMessages},
		{"skills", stats.Skills},
	}
	for _, row := range rows {
		if err := writef(tw, "%s\t%d\n", row.label, row.value); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func runUpload(appCtx *appContext, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	file := fs.String("file", "", "image file to upload")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return errors.New("-file is required")
	}
	if err := ensureAdmin(appCtx); err != nil {
		return err
	}

	f, err := os.Open(*file)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	url, err := appCtx.Client.UploadImage(appCtx.Ctx, filepath.Base(*file), f)
	if err != nil {
		return err
	}
	return writef(os.Stdout, "%s\n", url)
}
