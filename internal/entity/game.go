package entity

const (
	GridRows    = 6
	GridColumns = 7
)

// Cell marks. The numeric values are the stored representation of the grid.
const (
	CellEmpty     = 0
	CellPlayerOne = 1
	CellPlayerTwo = 2
)

// Grid is the 6x7 board, row 0 at the top and row 5 at the bottom. The fixed
// array shape keeps the dimensions invariant by construction.
type Grid [GridRows][GridColumns]int

// IsCellFilled reports whether the cell at the given coordinates holds a mark.
func (that *Grid) IsCellFilled(row, column int) bool {
	return that[row][column] != CellEmpty
}

// IsCellSupported reports whether the cell at the given coordinates sits on
// the bottom row or directly above a filled cell (the gravity rule).
func (that *Grid) IsCellSupported(row, column int) bool {
	return row == GridRows-1 || that[row+1][column] != CellEmpty
}

// InBounds reports whether the coordinates address a cell of the grid.
func (that *Grid) InBounds(row, column int) bool {
	return row >= 0 && row < GridRows && column >= 0 && column < GridColumns
}

// Game is the aggregate a session plays against. SessionID and
// LastTurnPlayedBy use the empty string for "absent": a session only exists
// while the game is in NEW or IN_PROGRESS, and no turn has been recorded
// until the first cell is filled.
type Game struct {
	ID               string `json:"id"`
	FirstPlayer      string `json:"first_player"`
	SecondPlayer     string `json:"second_player"`
	State            State  `json:"state"`
	SessionID        string `json:"session_id,omitempty"`
	LastTurnPlayedBy string `json:"last_turn_played_by,omitempty"`
	Grid             Grid   `json:"grid"`
}

// NewGame returns a game in NEW state with an empty grid. The ID is assigned
// by the repository on create.
func NewGame(firstPlayer, secondPlayer, sessionID string) *Game {
	return &Game{
		FirstPlayer:  firstPlayer,
		SecondPlayer: secondPlayer,
		State:        StateNew,
		SessionID:    sessionID,
	}
}

// HasSession reports whether the game currently carries a session token.
func (that *Game) HasSession() bool {
	return that.SessionID != ""
}

// HasTurnBeenPlayed reports whether any turn has ever been recorded.
func (that *Game) HasTurnBeenPlayed() bool {
	return that.LastTurnPlayedBy != ""
}

// InvalidateSession drops the current session token. Called before every
// transition out of a playable state.
func (that *Game) InvalidateSession() {
	that.SessionID = ""
}
