package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive citizen conversation",
	Long: `Open a session and chat with the grievance assistant.

Type a message and press Enter. Type /quit or press Ctrl-D to end the session.`,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	client := newClientFromFlags(cmd)
	defer client.Close()
	return chat(cmd.Context(), client, cmd.InOrStdin(), cmd.OutOrStdout())
}

func chat(ctx context.Context, client *apiClient, in io.Reader, out io.Writer) error {
	session, err := client.CreateSession(ctx)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer func() {
		// the server may already have expired the session
		_ = client.DeleteSession(context.WithoutCancel(ctx), session.ID)
	}()

	for _, m := range session.Messages {
		fmt.Fprintf(out, "sahayak> %s\n", m.Text)
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		text := strings.TrimSpace(scanner.Text())
		switch text {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		}

		turn, err := client.SendMessage(ctx, session.ID, text)
		var apiErr *apiError
		switch {
		case errors.As(err, &apiErr) && apiErr.Status < 500:
			fmt.Fprintf(out, "sahayak! %s\n", apiErr.Message)
		case err != nil:
			return err
		default:
			fmt.Fprintf(out, "sahayak> %s\n", turn.Reply.Text)
		}
	}
}
