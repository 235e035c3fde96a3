// ABOUTME: chat and cancel commands posting to the backend thread endpoints
// ABOUTME: Both support --async to run through the asynchronous transport

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/2389/assistant-client/assistant"
)

// newThreadArg asks the chat command to generate a thread ID.
const newThreadArg = "-"

// ChatOptions holds options for the chat command.
type ChatOptions struct {
	*GlobalOptions

	System    string
	State     string
	RunConfig string
	Async     bool
}

// NewChatCommand creates the chat command.
func NewChatCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &ChatOptions{GlobalOptions: globalOpts}

	cmd := &cobra.Command{
		Use:   "chat THREAD_ID MESSAGE",
		Short: "Send a user message to a thread",
		Long: `Send a single user message to a thread and print the raw response.

Pass "-" as THREAD_ID to start a new thread with a generated ID.`,
		Example: `  # Continue a thread
  assistant chat 9f1c2a hello

  # New thread with a system prompt and state
  assistant chat - "what changed?" --system "be brief" --state '{"step":1}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, opts, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&opts.System, "system", "", "system prompt")
	cmd.Flags().StringVar(&opts.State, "state", "", "state as JSON")
	cmd.Flags().StringVar(&opts.RunConfig, "run-config", "", "run config as a JSON object")
	cmd.Flags().BoolVar(&opts.Async, "async", false, "send through the asynchronous transport")

	return cmd
}

// chatOptions converts the command flags into payload options.
func (o *ChatOptions) chatOptions() ([]assistant.ChatOption, error) {
	var out []assistant.ChatOption
	if o.System != "" {
		out = append(out, assistant.WithSystem(o.System))
	}
	if o.State != "" {
		var state any
		if err := json.Unmarshal([]byte(o.State), &state); err != nil {
			return nil, fmt.Errorf("invalid --state: %w", err)
		}
		out = append(out, assistant.WithState(state))
	}
	if o.RunConfig != "" {
		var runConfig map[string]any
		if err := json.Unmarshal([]byte(o.RunConfig), &runConfig); err != nil {
			return nil, fmt.Errorf("invalid --run-config: %w", err)
		}
		out = append(out, assistant.WithRunConfig(runConfig))
	}
	return out, nil
}

func runChat(cmd *cobra.Command, opts *ChatOptions, threadID, text string) error {
	chatOpts, err := opts.chatOptions()
	if err != nil {
		return err
	}

	client, err := setup(cmd, opts.GlobalOptions)
	if err != nil {
		return err
	}

	thread := client.Thread(threadID)
	if threadID == newThreadArg {
		thread = client.NewThread()
		fmt.Fprintf(cmd.ErrOrStderr(), "thread: %s\n", thread.ID())
	}

	ctx := cmd.Context()
	messages := []assistant.Message{assistant.UserMessage(assistant.TextPart(text))}

	if opts.Async {
		return assistant.ScopedAsync(client, func(*assistant.Client) error {
			res := <-thread.ChatAsync(ctx, messages, chatOpts...)
			if res.Err != nil {
				return res.Err
			}
			return printResponse(cmd.OutOrStdout(), res.Response)
		})
	}

	return assistant.Scoped(client, func(*assistant.Client) error {
		resp, err := thread.Chat(ctx, messages, chatOpts...)
		if err != nil {
			return err
		}
		return printResponse(cmd.OutOrStdout(), resp)
	})
}

// CancelOptions holds options for the cancel command.
type CancelOptions struct {
	*GlobalOptions

	Async bool
}

// NewCancelCommand creates the cancel command.
func NewCancelCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &CancelOptions{GlobalOptions: globalOpts}

	cmd := &cobra.Command{
		Use:   "cancel THREAD_ID",
		Short: "Cancel the current run of a thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCancel(cmd, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.Async, "async", false, "send through the asynchronous transport")

	return cmd
}

func runCancel(cmd *cobra.Command, opts *CancelOptions, threadID string) error {
	client, err := setup(cmd, opts.GlobalOptions)
	if err != nil {
		return err
	}

	thread := client.Thread(threadID)
	ctx := cmd.Context()

	if opts.Async {
		return assistant.ScopedAsync(client, func(*assistant.Client) error {
			res := <-thread.CancelAsync(ctx)
			if res.Err != nil {
				return res.Err
			}
			return printResponse(cmd.OutOrStdout(), res.Response)
		})
	}

	return assistant.Scoped(client, func(*assistant.Client) error {
		resp, err := thread.Cancel(ctx)
		if err != nil {
			return err
		}
		return printResponse(cmd.OutOrStdout(), resp)
	})
}

// printResponse writes the status line and raw body, then closes the body.
func printResponse(w io.Writer, resp *http.Response) error {
	defer resp.Body.Close()

	fmt.Fprintln(w, resp.Status)
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	return nil
}
