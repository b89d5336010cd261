package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dlms/chatbot/adapters/catalog"
	httpadapter "github.com/dlms/chatbot/adapters/http"
	"github.com/dlms/chatbot/adapters/llm"
	"github.com/dlms/chatbot/config"
	"github.com/dlms/chatbot/domain"
	"github.com/dlms/chatbot/usecase"
	"github.com/dlms/chatbot/utils/log"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "chatbot",
	Short: "DLMS AI chatbot service",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		log.Init(cfg.Debug)
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP chat service",
	RunE:  runServe,
}

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Print the course context block the assistant would see right now",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), newContextProvider().GetContext(cmd.Context()))
		return nil
	},
}

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Chat with a running service from the terminal",
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().String("server", "http://localhost:"+config.DefaultPort, "chatbot service base URL")
	rootCmd.AddCommand(serveCmd, contextCmd, askCmd)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	defer log.Sync()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newContextProvider() *usecase.CourseContext {
	return usecase.NewCourseContext(
		catalog.NewClient(cfg.CatalogURL(), cfg.CatalogTimeout),
		usecase.DefaultMaxContextBytes,
	)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	gen, err := llm.New(ctx, cfg)
	switch {
	case errors.Is(err, domain.ErrMissingCredentials):
		// Startup continues; every chat request will report the config error.
		log.With(zap.String("provider", cfg.LLMProvider)).Error("API credential is missing! Please check your .env file.")
	case err != nil:
		return err
	}

	svc := usecase.NewChatService(gen, newContextProvider())
	e := httpadapter.NewServer(httpadapter.NewChatHandler(svc), cfg.CORSOrigins)

	addr := ":" + cfg.Port
	log.With(
		zap.String("addr", addr),
		zap.String("catalog", cfg.CatalogURL()),
		zap.String("provider", cfg.LLMProvider),
	).Info("Chatbot Service Started")
	log.With().Info("Available endpoints: GET /health, POST /api/chat")

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	log.With().Info("Chatbot Service Stopped")
	return nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	server, _ := cmd.Flags().GetString("server")
	client := httpadapter.NewClient(server, 2*time.Minute)
	out := cmd.OutOrStdout()

	reader := bufio.NewReader(cmd.InOrStdin())
	fmt.Fprintln(out, "Ask the DLMS assistant (type 'exit' to quit):")
	for {
		fmt.Fprint(out, "> ")
		text, err := reader.ReadString('\n')
		text = strings.TrimSpace(text)
		if text == "exit" || (err != nil && text == "") {
			return nil
		}
		if text != "" {
			reply, sendErr := client.Send(cmd.Context(), text)
			if sendErr != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Error:", sendErr)
			} else {
				fmt.Fprintln(out, reply)
			}
		}
		if err != nil {
			return nil
		}
	}
}
