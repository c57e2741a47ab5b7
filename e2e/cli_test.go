package e2e_test

import (
	"bufio"
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PauPin2013/Connect4/internal/api"
	"github.com/PauPin2013/Connect4/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "c4-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/c4")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application with an instant bot so local-game tests don't
	// wait on the think delay
	projectRoot := findProjectRoot(t)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	app, err := factory.New(factory.Config{
		Logger:        logger,
		BotThinkDelay: time.Millisecond,
	})
	require.NoError(t, err)

	// Load vocabulary
	err = app.VocabularyService.LoadFromFile(context.Background(), filepath.Join(projectRoot, "data/vocabulary.txt"))
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		AuthService:       app.AuthService,
		GameController:    app.GameController,
		GameWatcher:       app.GameWatcher,
		OfflineController: app.OfflineController,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// loadTranslations reads the vocabulary file to answer questions
// correctly during game flow tests
func loadTranslations(t *testing.T) map[string]string {
	t.Helper()

	path := filepath.Join(findProjectRoot(t), "data/vocabulary.txt")
	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	translations := make(map[string]string)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, translation, ok := strings.Cut(line, ",")
		if !ok {
			continue
		}
		translations[strings.TrimSpace(word)] = strings.TrimSpace(translation)
	}
	require.NoError(t, scanner.Err())
	return translations
}

// Response types for JSON parsing
type authResponse struct {
	Player struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		IsGuest     bool   `json:"is_guest"`
	} `json:"player"`
	SessionToken string `json:"session_token"`
}

type gameResponse struct {
	ID              string  `json:"id"`
	Status          string  `json:"status"`
	Board           [][]int `json:"board"`
	CurrentPlayerID string  `json:"current_player_id"`
	WinnerID        string  `json:"winner_id"`
	Phase           struct {
		Kind   string `json:"kind"`
		Prompt string `json:"prompt"`
	} `json:"phase"`
	StatusMessage string `json:"status_message"`
}

type localGameResponse struct {
	Status         string  `json:"status"`
	Board          [][]int `json:"board"`
	HumanTurn      bool    `json:"human_turn"`
	Winner         string  `json:"winner"`
	LastMoveColumn int     `json:"last_move_column"`
	LastBotColumn  int     `json:"last_bot_column"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_PlayerCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create guest
	output, err := cli.run("player", "guest", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)

	var authResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	assert.Equal(t, "Alice", authResp.Player.DisplayName)
	assert.True(t, authResp.Player.IsGuest)
	assert.NotEmpty(t, authResp.SessionToken)

	// Get me (token should be saved in token file)
	output, err = cli.run("player", "me")
	require.NoError(t, err, "output: %s", output)

	var player struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		IsGuest     bool   `json:"is_guest"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.Equal(t, "Alice", player.DisplayName)
	assert.Equal(t, authResp.Player.ID, player.ID)
}

// answerIfAsked clears a pending question for the given token, looking
// up the right translation from the word bank
func answerIfAsked(t *testing.T, cli *cliRunner, token, gameID string, translations map[string]string) {
	t.Helper()

	output, err := cli.runWithToken(token, "game", "get", gameID)
	require.NoError(t, err, "output: %s", output)

	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))

	if game.Phase.Kind != "asking_question" {
		return
	}

	answer, ok := translations[game.Phase.Prompt]
	require.True(t, ok, "unknown vocabulary word %q", game.Phase.Prompt)

	output, err = cli.runWithToken(token, "game", "answer", gameID, answer)
	require.NoError(t, err, "output: %s", output)
}

func TestCLI_FullGameFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	translations := loadTranslations(t)

	// Create two CLI runners with separate token files
	cli1 := newCLIRunner(t, ts.addr)
	cli2 := &cliRunner{
		binaryPath: cli1.binaryPath,
		serverURL:  cli1.serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token2"),
	}

	// Create two players
	output, err := cli1.run("player", "guest", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)
	var auth1 authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth1))
	token1 := auth1.SessionToken

	output, err = cli2.run("player", "guest", "--name", "Bob")
	require.NoError(t, err, "output: %s", output)
	var auth2 authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth2))
	token2 := auth2.SessionToken

	// Alice creates a game
	output, err = cli1.runWithToken(token1, "game", "create")
	require.NoError(t, err, "output: %s", output)
	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	assert.Equal(t, "waiting", game.Status)
	gameID := game.ID
	t.Logf("Created game: %s", gameID)

	// Bob joins
	output, err = cli2.runWithToken(token2, "game", "join", gameID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	assert.Equal(t, "playing", game.Status)
	assert.Equal(t, auth1.Player.ID, game.CurrentPlayerID)
	t.Logf("Bob joined, game started")

	// Alice stacks column 0, Bob stacks column 6. Alice's fourth piece
	// wins. Every move requires answering the question first.
	moves := []struct {
		cli    *cliRunner
		token  string
		column string
	}{
		{cli1, token1, "0"},
		{cli2, token2, "6"},
		{cli1, token1, "0"},
		{cli2, token2, "6"},
		{cli1, token1, "0"},
		{cli2, token2, "6"},
		{cli1, token1, "0"},
	}

	for i, move := range moves {
		answerIfAsked(t, move.cli, move.token, gameID, translations)

		output, err = move.cli.runWithToken(move.token, "game", "drop", gameID, move.column)
		require.NoError(t, err, "move %d: %s", i, output)
		require.NoError(t, json.Unmarshal([]byte(output), &game))
		t.Logf("Move %d: column %s", i, move.column)
	}

	assert.Equal(t, "finished", game.Status)
	assert.Equal(t, auth1.Player.ID, game.WinnerID)
	assert.Equal(t, "You won the game!", game.StatusMessage)

	// Bob sees the loss
	output, err = cli2.runWithToken(token2, "game", "get", gameID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	assert.Equal(t, "You lost the game.", game.StatusMessage)
}

func TestCLI_GameDelete(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli1 := newCLIRunner(t, ts.addr)
	cli2 := &cliRunner{
		binaryPath: cli1.binaryPath,
		serverURL:  cli1.serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token2"),
	}

	// Create players
	output, err := cli1.run("player", "guest", "--name", "Alice")
	require.NoError(t, err)
	var auth1 authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth1))
	token1 := auth1.SessionToken

	output, err = cli2.run("player", "guest", "--name", "Bob")
	require.NoError(t, err)
	var auth2 authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth2))
	token2 := auth2.SessionToken

	// Create game and have Bob join
	output, err = cli1.runWithToken(token1, "game", "create")
	require.NoError(t, err)
	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	gameID := game.ID

	_, err = cli2.runWithToken(token2, "game", "join", gameID)
	require.NoError(t, err)

	// Bob tries to delete (should fail - not creator)
	output, err = cli1.runWithToken(token2, "game", "delete", gameID)
	assert.Error(t, err, "non-creator should not be able to delete")
	assert.Contains(t, strings.ToLower(output), "creator")

	// Alice deletes (should succeed)
	output, err = cli1.runWithToken(token1, "game", "delete", gameID)
	require.NoError(t, err, "output: %s", output)

	var msgResp messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msgResp))
	assert.Equal(t, "Game deleted", msgResp.Message)

	// Verify the game is gone
	_, err = cli1.runWithToken(token1, "game", "get", gameID)
	assert.Error(t, err, "should not find game after delete")
}

func TestCLI_LocalGame(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("player", "guest", "--name", "Alice")
	require.NoError(t, err)
	var auth authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth))
	token := auth.SessionToken

	// Start a local game
	output, err = cli.runWithToken(token, "local", "start")
	require.NoError(t, err, "output: %s", output)
	var game localGameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	assert.Equal(t, "playing", game.Status)
	assert.True(t, game.HumanTurn)

	// Drop a piece; the bot replies
	output, err = cli.runWithToken(token, "local", "drop", "3")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	assert.Equal(t, 3, game.LastMoveColumn)
	assert.GreaterOrEqual(t, game.LastBotColumn, 0)

	// Delete it
	output, err = cli.runWithToken(token, "local", "delete")
	require.NoError(t, err, "output: %s", output)

	_, err = cli.runWithToken(token, "local", "get")
	assert.Error(t, err, "should not find local game after delete")
}

func TestCLI_EventsStream(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("player", "guest", "--name", "Alice")
	require.NoError(t, err)
	var auth authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth))
	token := auth.SessionToken

	output, err = cli.runWithToken(token, "game", "create")
	require.NoError(t, err)
	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))

	// Stream events briefly; expect the connected and snapshot events
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, cli.binaryPath,
		"--server", cli.serverURL,
		"--token", token,
		"events", game.ID, "--json",
	)
	streamOutput, _ := cmd.CombinedOutput()

	assert.Contains(t, string(streamOutput), `"event":"connected"`)
	assert.Contains(t, string(streamOutput), `"event":"snapshot"`)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Get player without auth
	output, err := cli.run("player", "me")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "authentication")

	// Get non-existent game
	output, err = cli.run("player", "guest", "--name", "Alice")
	require.NoError(t, err)
	var auth authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth))

	output, err = cli.runWithToken(auth.SessionToken, "game", "get", "NOSUCHGAME12")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")
}
