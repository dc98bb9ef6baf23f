package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/julienschmidt/httprouter"
	"github.com/mark3labs/mcp-go/server"

	"joomlamcp/internal/articles/handler"
	"joomlamcp/internal/articles/service"
	"joomlamcp/internal/articles/validator"
	"joomlamcp/internal/config"
	"joomlamcp/pkg/audit"
	"joomlamcp/pkg/joomla"
	"joomlamcp/pkg/logger"
	"joomlamcp/pkg/middleware"
)

const (
	serviceName    = "joomla-articles-mcp"
	serviceVersion = "1.0.0"
)

func main() {
	cfg := config.Load(serviceName)
	log := cfg.Log
	log.Info("Starting Joomla articles MCP server")

	auditProducer := initAudit(cfg, log)
	if auditProducer != nil {
		defer auditProducer.Close()
	}

	articleService := initServices(cfg, auditProducer, log)
	mcpServer := setupMCPServer(cfg, articleService, log)

	switch cfg.Transport {
	case config.TransportStdio:
		runStdio(mcpServer, log)
	default:
		httpServer := setupHTTPServer(cfg, mcpServer, log)
		run(cfg, httpServer, log)
	}
}

func initAudit(cfg *config.Config, log *logger.Logger) *audit.Producer {
	if !cfg.AuditEnabled() {
		return nil
	}
	producer := audit.NewProducer(cfg.KafkaBrokers, cfg.KafkaAuditTopic, log)
	log.Info("Kafka audit trail enabled", "topic", cfg.KafkaAuditTopic)
	return producer
}

func initServices(cfg *config.Config, auditProducer *audit.Producer, log *logger.Logger) service.ArticleService {
	client := joomla.NewClient(cfg.JoomlaBaseURL, cfg.BearerToken, cfg.HTTPTimeout)

	articleService := service.NewArticleService(
		client,
		validator.New(),
		log,
		service.Options{
			SplitBody: cfg.UpdateBodyMode == config.BodyModeSplit,
			Audit:     auditProducer,
		},
	)

	log.Info("Article service initialized", "update_body_mode", cfg.UpdateBodyMode)
	return articleService
}

func setupMCPServer(cfg *config.Config, articleService service.ArticleService, log *logger.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		serviceName,
		serviceVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	toolHandler := handler.NewToolHandler(articleService, log, cfg.UpdateBodyMode == config.BodyModeSplit)
	toolHandler.Register(s)

	log.Info("MCP tools registered")
	return s
}

func setupHTTPServer(cfg *config.Config, mcpServer *server.MCPServer, log *logger.Logger) *http.Server {
	sseServer := server.NewSSEServer(mcpServer,
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/message"),
	)

	router := httprouter.New()
	router.Handler(http.MethodGet, "/sse", sseServer.SSEHandler())
	router.Handler(http.MethodPost, "/message", sseServer.MessageHandler())
	handler.NewHealthHandler(serviceName, serviceVersion, log).RegisterRoutes(router)

	var httpHandler http.Handler = router
	httpHandler = middleware.RequestLogging(log)(httpHandler)
	httpHandler = middleware.Recovery(log)(httpHandler)

	// No WriteTimeout: the SSE stream is long-lived and must not be cut off.
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpHandler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	log.Info("HTTP server configured", "port", cfg.Port, "endpoints", []string{"/sse", "/message", "/health"})
	return httpServer
}

func run(cfg *config.Config, httpServer *http.Server, log *logger.Logger) {
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Starting SSE transport", "address", httpServer.Addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatal("HTTP server failed", "error", err)

	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)
		gracefulShutdown(cfg, httpServer, log)
	}
}

func gracefulShutdown(cfg *config.Config, httpServer *http.Server, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		if err := httpServer.Close(); err != nil {
			log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	log.Info("Server stopped gracefully")
}

func runStdio(mcpServer *server.MCPServer, log *logger.Logger) {
	log.Info("Starting stdio transport")
	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatal("Stdio transport failed", "error", err)
	}
}

func serverInstructions() string {
	return `This server manages articles on a Joomla website.

Use get_categories before create_article when the category is unknown: a
create without a category ID only lists the categories. Articles are
deleted permanently by delete_article; use manage_article_state with
target state -2 to merely trash an article instead.`
}
