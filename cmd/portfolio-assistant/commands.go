package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wastrilith2k/portfolio-assistant/internal/config"
	"github.com/wastrilith2k/portfolio-assistant/internal/conversation"
)

// --- chat ---

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Ask the running assistant a question",
	Long: `Ask the running assistant a question.

With a question argument, sends it and prints the answer. With
--interactive, starts a session that carries the conversation history
across turns.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		interactive, _ := cmd.Flags().GetBool("interactive")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		if interactive {
			return runInteractiveChat(cmd, client)
		}

		if len(args) == 0 {
			return fmt.Errorf("a question is required (or use --interactive)")
		}
		answer, err := askOnce(cmd, client, strings.Join(args, " "), nil)
		if err != nil {
			return err
		}
		fmt.Println(answer)
		return nil
	},
}

// askOnce posts one question with optional history and returns the answer
// text. A 500 still carries the contact-information fallback; it is shown,
// not swallowed.
func askOnce(cmd *cobra.Command, client *apiClient, question string, history []conversation.Turn) (string, error) {
	body := map[string]any{"message": question}
	if len(history) > 0 {
		body["conversationHistory"] = history
	}

	resp, err := client.post(cmd.Context(), "/api/chat", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result struct {
		Response string `json:"response"`
		Error    string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if result.Error != "" {
		printWarning("%s", result.Error)
	}
	if result.Response == "" {
		return "", fmt.Errorf("empty response from server")
	}
	return result.Response, nil
}

func runInteractiveChat(cmd *cobra.Command, client *apiClient) error {
	log := conversation.NewLog()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Interactive chat — Ctrl-D to exit.")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}

		answer, err := askOnce(cmd, client, question, log.Recent(conversation.HistoryWindow))
		if err != nil {
			printError("%v", err)
			continue
		}
		fmt.Println(answer)

		log.Append(conversation.RoleUser, question)
		log.Append(conversation.RoleAssistant, answer)
	}
}

// --- seed ---

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the built-in defaults into the content store",
	Long: `Write the built-in defaults into the content store.

Only record kinds with no stored document yet are written; existing edits
are never overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/api/admin/seed", nil)
		if err != nil {
			return err
		}

		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Content store seeded")
		return nil
	},
}

// --- ingest ---

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Import a resume PDF or web page into the chatbot context",
	Long: `Import outside material into the chatbot context override.

Examples:
  portfolio-assistant ingest --resume ./resume.pdf
  portfolio-assistant ingest --url https://example.com/about-me`,
	RunE: func(cmd *cobra.Command, args []string) error {
		resume, _ := cmd.Flags().GetString("resume")
		url, _ := cmd.Flags().GetString("url")

		if resume == "" && url == "" {
			return fmt.Errorf("one of --resume or --url is required")
		}

		req := map[string]string{}
		switch {
		case resume != "":
			abs, err := absPath(resume)
			if err != nil {
				return err
			}
			req["type"] = "resume"
			req["path"] = abs
		case url != "":
			req["type"] = "url"
			req["url"] = url
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/api/admin/ingest", req)
		if err != nil {
			return err
		}

		var result struct {
			Status string `json:"status"`
			Chars  int    `json:"chars"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Ingested %d characters into the chatbot context", result.Chars)
		return nil
	},
}

func absPath(p string) (string, error) {
	info, err := os.Stat(p)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", p, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", p)
	}
	// The server reads the file itself; hand it an absolute path.
	return filepath.Abs(p)
}

// --- context ---

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Manage the chatbot context override",
}

var contextShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current override text",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/api/admin/chatbot-context")
		if err != nil {
			return err
		}

		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		if result["content"] == "" {
			fmt.Println("(no override; the default knowledge base rendering is in effect)")
			return nil
		}
		fmt.Println(result["content"])
		return nil
	},
}

var contextSetCmd = &cobra.Command{
	Use:   "set <text>",
	Short: "Replace the override text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.put(cmd.Context(), "/api/admin/chatbot-context", map[string]string{"content": text})
		if err != nil {
			return err
		}

		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Chatbot context updated")
		return nil
	},
}

var contextClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the override so the default rendering applies again",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.delete(cmd.Context(), "/api/admin/chatbot-context")
		if err != nil {
			return err
		}

		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Chatbot context cleared")
		return nil
	},
}

func init() {
	chatCmd.Flags().BoolP("interactive", "i", false, "start an interactive chat session")

	ingestCmd.Flags().String("resume", "", "path to a PDF resume")
	ingestCmd.Flags().String("url", "", "URL to fetch and ingest")

	contextCmd.AddCommand(contextShowCmd)
	contextCmd.AddCommand(contextSetCmd)
	contextCmd.AddCommand(contextClearCmd)
}

// --- interactions ---

var interactionsCmd = &cobra.Command{
	Use:   "interactions",
	Short: "List recent assistant interactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), fmt.Sprintf("/api/admin/interactions?limit=%d", limit))
		if err != nil {
			return err
		}

		var interactions []struct {
			ID        string `json:"id"`
			CreatedAt string `json:"created_at"`
			Question  string `json:"question"`
			Status    string `json:"status"`
		}
		if err := decodeJSON(resp, &interactions); err != nil {
			return err
		}

		if len(interactions) == 0 {
			fmt.Println("No interactions found.")
			return nil
		}

		for _, ix := range interactions {
			question := ix.Question
			if len(question) > 80 {
				question = question[:80] + "..."
			}
			fmt.Printf("%s  %s  %-9s  %s\n",
				colorize(colorCyan, ix.ID[:8]),
				ix.CreatedAt,
				ix.Status,
				question,
			)
		}
		return nil
	},
}

func init() {
	interactionsCmd.Flags().Int("limit", 20, "maximum number of interactions to list")
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		keys := config.ShowAll(cfg)
		for _, k := range keys {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
