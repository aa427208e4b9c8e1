package entity

const (
	ResultWin  = "win"
	ResultLoss = "loss"
	ResultDraw = "draw"
)

// GameStats aggregates one player's recorded results for a single game type.
type GameStats struct {
	GameType   string `json:"game_type"`
	TotalGames int    `json:"total_games"`
	Wins       int    `json:"wins"`
	Losses     int    `json:"losses"`
	Draws      int    `json:"draws"`
}

// LeaderboardEntry is one row of the top-players listing.
type LeaderboardEntry struct {
	PlayerName string `json:"player_name"`
	TotalGames int    `json:"total_games"`
	Wins       int    `json:"wins"`
	Losses     int    `json:"losses"`
	Draws      int    `json:"draws"`
}
