package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-tint-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-tint-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		case "render":
			logger := initLogger(false)
			if err := runRender(os.Args[2:], logger); err != nil {
				logger.WithField("error", err).Error("render failed")
				os.Exit(1)
			}
			return
		}
	}

	logger := initLogger(false)
	logger.WithFields(logrus.Fields{
		"version": Version,
		"built":   BuildTime,
		"commit":  GitCommit,
	}).Debug("Image tint MCP server starting")

	server.Version = Version
	srv := server.New(server.WithLogger(logger))
	if err := srv.Run(); err != nil {
		logger.Fatalf("Server error: %v", err)
	}
}

func printUsage() {
	fmt.Println("image-tint-mcp - MCP server for config-driven image tinting and transforms")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  image-tint-mcp [options]            Run the MCP server on stdin/stdout")
	fmt.Println("  image-tint-mcp render [flags]       Render one config section to a PNG file")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Render flags:")
	fmt.Println("  -config FILE     TOML config file (required)")
	fmt.Println("  -section NAME    Config section (required)")
	fmt.Println("  -out FILE        Output PNG file (required)")
	fmt.Println("  -base-dir DIR    Directory for relative image names (default: config directory)")
	fmt.Println("  -watch           Re-render when the config or image file changes")
	fmt.Println("  -debug           Enable debug logging")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  IMAGE_MCP_LOG_LEVEL=debug    Enable debug logging")
	fmt.Println()
	fmt.Println("The server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}

// initLogger logs to stderr; stdout is reserved for the MCP protocol.
func initLogger(debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	logger.SetLevel(logrus.InfoLevel)
	if level, err := logrus.ParseLevel(strings.TrimSpace(os.Getenv("IMAGE_MCP_LOG_LEVEL"))); err == nil {
		logger.SetLevel(level)
	}
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
