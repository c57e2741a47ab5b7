package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Game:
		o.printGame(v)
	case LocalGame:
		o.printLocalGame(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Phase response type
type Phase struct {
	Kind   string `json:"kind"`
	Prompt string `json:"prompt,omitempty"`
	Player int    `json:"player,omitempty"`
}

// GamePlayer response type
type GamePlayer struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Game response type
type Game struct {
	ID              string      `json:"id"`
	Status          string      `json:"status"`
	Board           [][]int     `json:"board"`
	Player1         GamePlayer  `json:"player1"`
	Player2         *GamePlayer `json:"player2,omitempty"`
	CurrentPlayerID string      `json:"current_player_id,omitempty"`
	WinnerID        string      `json:"winner_id,omitempty"`
	LastMoveColumn  int         `json:"last_move_column"`
	Revision        int64       `json:"revision"`
	CreatedAt       time.Time   `json:"created_at"`
	Phase           Phase       `json:"phase"`
	StatusMessage   string      `json:"status_message"`
}

// LocalGame response type
type LocalGame struct {
	Status         string  `json:"status"`
	Board          [][]int `json:"board"`
	HumanTurn      bool    `json:"human_turn"`
	Winner         string  `json:"winner,omitempty"`
	LastMoveColumn int     `json:"last_move_column"`
	LastBotColumn  int     `json:"last_bot_column"`
}

// GameEvent response type, one entry on the SSE stream
type GameEvent struct {
	Type          string `json:"type"`
	Game          *Game  `json:"game,omitempty"`
	Phase         Phase  `json:"phase"`
	StatusMessage string `json:"status_message"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Status: %s\n", g.Status)
	fmt.Printf("Player 1 (X): %s\n", g.Player1.DisplayName)
	if g.Player2 != nil {
		fmt.Printf("Player 2 (O): %s\n", g.Player2.DisplayName)
	}

	fmt.Println()
	printBoard(g.Board)
	fmt.Println()

	if g.Phase.Kind == "asking_question" {
		fmt.Printf("Question: translate %q\n", g.Phase.Prompt)
	}
	if g.StatusMessage != "" {
		fmt.Println(g.StatusMessage)
	}
}

func (o *Output) printLocalGame(g LocalGame) {
	fmt.Printf("Status: %s\n", g.Status)

	fmt.Println()
	printBoard(g.Board)
	fmt.Println()

	switch {
	case g.Winner == "human":
		fmt.Println("You won!")
	case g.Winner == "bot":
		fmt.Println("The bot won.")
	case g.Status == "draw":
		fmt.Println("It's a draw.")
	case g.HumanTurn:
		fmt.Println("Your turn.")
	default:
		fmt.Println("Waiting for the bot...")
	}
}

// printBoard renders the 6x7 grid with X for player one and O for
// player two
func printBoard(cells [][]int) {
	if len(cells) == 0 {
		return
	}

	cols := len(cells[0])

	fmt.Print(" ")
	for col := 0; col < cols; col++ {
		fmt.Printf(" %d ", col)
	}
	fmt.Println()

	for _, row := range cells {
		fmt.Print("|")
		for _, cell := range row {
			switch cell {
			case 1:
				fmt.Print(" X ")
			case 2:
				fmt.Print(" O ")
			default:
				fmt.Print(" . ")
			}
		}
		fmt.Println("|")
	}

	fmt.Print("+")
	for col := 0; col < cols; col++ {
		fmt.Print("---")
	}
	fmt.Println("+")
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
