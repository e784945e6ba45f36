package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/contractiq/console/internal/chat"
	"github.com/contractiq/console/internal/console"
)

var chatFlags struct {
	document string
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat about a previously analyzed contract",
	Long: `Chat opens an interactive session scoped to an analyzed document.

Commands inside the session:
  /history   show the persisted turns for this session
  /clear     clear the session on the service and locally
  /exit      leave the session`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatFlags.document, "document", "", "Document ID to chat about (required)")
	chatCmd.MarkFlagRequired("document")
}

func runChat(cmd *cobra.Command, args []string) error {
	c, err := newConsole(nil)
	if err != nil {
		return err
	}
	defer c.Lifecycle.Shutdown(c.Config.ShutdownTimeoutDuration())

	c.Chat.BindDocument(chatFlags.document)
	return chatLoop(cmd, c)
}

// chatLoop runs the interactive prompt until /exit, EOF, or an
// interrupt signal.
func chatLoop(cmd *cobra.Command, c *console.Console) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	for _, turn := range c.Chat.Transcript() {
		fmt.Fprintf(out, "%s: %s\n", turn.Role, turn.Text)
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/exit":
			return nil
		case "/clear":
			if err := c.Chat.Clear(ctx); err != nil {
				fmt.Fprintf(out, "clear failed: %v\n", err)
				continue
			}
			fmt.Fprintln(out, "session cleared")
			continue
		case "/history":
			turns, err := c.Chat.History(ctx, 0)
			if err != nil {
				fmt.Fprintf(out, "history failed: %v\n", err)
				continue
			}
			if len(turns) == 0 {
				fmt.Fprintln(out, "no history yet")
				continue
			}
			for _, t := range turns {
				fmt.Fprintf(out, "[%d] you: %s\n    assistant: %s\n", t.Turn, t.UserQuery, t.Response)
			}
			continue
		}

		turn, err := c.Chat.Send(ctx, line)
		if err != nil {
			if chat.IsValidation(err) {
				fmt.Fprintf(out, "%v\n", err)
				continue
			}
			if ts := c.Chat.Transcript(); len(ts) > 0 {
				fmt.Fprintln(out, ts[len(ts)-1].Text)
			}
			continue
		}
		fmt.Fprintf(out, "%s\n", turn.Text)
		for _, src := range turn.Sources {
			fmt.Fprintf(out, "  source: %s [%s]\n", src.ClauseType, src.RiskLevel)
		}
	}
}
