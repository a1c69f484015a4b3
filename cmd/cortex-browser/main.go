// Command cortex-browser exposes the accessibility-snapshot/action tool
// surface of spec.md §6 as an MCP server, speaking stdio to whatever agent
// client launches it. It also carries a launch-daemon subcommand that
// backgrounds a long-lived headless Chrome so an agent's short-lived
// cortex-browser invocations can attach to it by CDP port instead of
// paying Chrome's startup cost on every call — the same "keep the browser
// alive across invocations" idea as the teacher's session daemon
// (cpunion-agent-browser-go/daemon.go), just without its socket/RPC
// protocol: here the MCP process itself, not a home-grown wire format, is
// the thing agents talk to.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/sevlyar/go-daemon"

	"github.com/cortexbrowser/cortex-browser/internal/browserclient"
	"github.com/cortexbrowser/cortex-browser/internal/mcpserver"
	"github.com/cortexbrowser/cortex-browser/internal/recording"
	"github.com/cortexbrowser/cortex-browser/internal/session"
)

var version = "0.1.0"

func main() {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "launch-daemon" {
		runLaunchDaemon(args[1:])
		return
	}
	if len(args) > 0 && args[0] == "stop-daemon" {
		runStopDaemon(args[1:])
		return
	}

	cfg := parseFlags(args)
	if err := runServer(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "cortex-browser:", err)
		os.Exit(1)
	}
}

type cliConfig struct {
	cdpPort        int
	headless       bool
	executablePath string
	userDataDir    string
	baseDir        string
}

func parseFlags(args []string) cliConfig {
	cfg := cliConfig{headless: true, baseDir: defaultBaseDir()}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--cdp-port":
			if i+1 < len(args) {
				cfg.cdpPort, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "--headed":
			cfg.headless = false
		case "--executable-path":
			if i+1 < len(args) {
				cfg.executablePath = args[i+1]
				i++
			}
		case "--user-data-dir":
			if i+1 < len(args) {
				cfg.userDataDir = args[i+1]
				i++
			}
		case "--base-dir":
			if i+1 < len(args) {
				cfg.baseDir = args[i+1]
				i++
			}
		case "--version", "-v":
			fmt.Println(version)
			os.Exit(0)
		}
	}
	return cfg
}

func defaultBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cortex-browser"
	}
	return filepath.Join(home, ".cortex-browser")
}

func runServer(cfg cliConfig) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	browser := browserclient.NewChromeBrowser()
	launchOpts := browserclient.LaunchOptions{
		Headless:       cfg.headless,
		CDPPort:        cfg.cdpPort,
		ExecutablePath: cfg.executablePath,
		UserDataDir:    cfg.userDataDir,
		ViewportWidth:  1280,
		ViewportHeight: 800,
	}

	ctx := context.Background()
	if err := browser.Launch(ctx, launchOpts); err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}
	defer browser.Close(ctx)

	sess := session.New(browser, session.DefaultConfig(), logger)
	fileio := recording.OSFileIO{}
	store := recording.NewStore(fileio, cfg.baseDir)
	authStore := recording.NewAuthStore(fileio, cfg.baseDir)

	app := mcpserver.NewApp(sess, store, authStore, logger)
	server := mcpserver.NewServer(app, version)

	logger.Info().Msg("cortex-browser MCP server starting on stdio")
	return server.Run(ctx, &mcp.StdioTransport{})
}

// runLaunchDaemon backgrounds a headless Chrome process listening on
// --cdp-port so a later `cortex-browser --cdp-port N` can attach to it
// instead of launching its own browser.
func runLaunchDaemon(args []string) {
	port := 9222
	headless := true
	userDataDir := ""
	executablePath := "chromium"
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--cdp-port":
			if i+1 < len(args) {
				port, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "--headed":
			headless = false
		case "--user-data-dir":
			if i+1 < len(args) {
				userDataDir = args[i+1]
				i++
			}
		case "--executable-path":
			if i+1 < len(args) {
				executablePath = args[i+1]
				i++
			}
		}
	}

	dir := filepath.Join(os.TempDir(), "cortex-browser")
	os.MkdirAll(dir, 0o755)
	pidFile := filepath.Join(dir, fmt.Sprintf("%d.pid", port))
	logFile := filepath.Join(dir, fmt.Sprintf("%d.log", port))

	ctx := &daemon.Context{
		PidFileName: pidFile,
		PidFilePerm: 0o644,
		LogFileName: logFile,
		LogFilePerm: 0o640,
		Umask:       0o27,
		Args:        os.Args,
	}

	child, err := ctx.Reborn()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to daemonize: %v\n", err)
		os.Exit(1)
	}
	if child != nil {
		fmt.Printf("launched chrome daemon on CDP port %d (pid file %s)\n", port, pidFile)
		return
	}
	defer ctx.Release()

	chromeArgs := []string{
		fmt.Sprintf("--remote-debugging-port=%d", port),
		"--no-first-run",
		"--disable-blink-features=AutomationControlled",
	}
	if headless {
		chromeArgs = append(chromeArgs, "--headless=new")
	}
	if userDataDir != "" {
		chromeArgs = append(chromeArgs, "--user-data-dir="+userDataDir)
	}

	cmd := exec.Command(executablePath, chromeArgs...)
	if err := cmd.Start(); err != nil {
		os.Exit(1)
	}
	_ = cmd.Wait()
}

func runStopDaemon(args []string) {
	port := 9222
	for i := 0; i < len(args); i++ {
		if args[i] == "--cdp-port" && i+1 < len(args) {
			port, _ = strconv.Atoi(args[i+1])
			i++
		}
	}
	pidFile := filepath.Join(os.TempDir(), "cortex-browser", fmt.Sprintf("%d.pid", port))
	data, err := os.ReadFile(pidFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "no daemon recorded for that port")
		os.Exit(1)
	}
	pid, err := strconv.Atoi(trimNewline(string(data)))
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid pid file")
		os.Exit(1)
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		os.Exit(1)
	}
	if err := proc.Kill(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to stop daemon:", err)
		os.Exit(1)
	}
	time.Sleep(100 * time.Millisecond)
	os.Remove(pidFile)
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
