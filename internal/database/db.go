package database

import (
	"database/sql"
	"log"

	_ "github.com/mattn/go-sqlite3"

	"durak/internal/model"
)

// Store keeps the match history. Live room and game state never touches the
// database; only finished hands are written.
type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	schema := `CREATE TABLE IF NOT EXISTS match_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		room_id TEXT,
		winner INTEGER,
		finished_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// RecordResult stores the outcome of a finished hand. winner is the seat
// index, or -1 for a draw.
func (s *Store) RecordResult(roomID string, winner int) {
	_, err := s.db.Exec("INSERT INTO match_history(room_id, winner) VALUES(?, ?)", roomID, winner)
	if err != nil {
		log.Println("record result:", err)
	}
}

// RoomStats sums up the hands played in one room.
func (s *Store) RoomStats(roomID string) model.RoomStats {
	stats := model.RoomStats{}

	rows, err := s.db.Query("SELECT winner, COUNT(*) FROM match_history WHERE room_id = ? GROUP BY winner", roomID)
	if err != nil {
		log.Println("room stats:", err)
		return stats
	}
	defer rows.Close()

	for rows.Next() {
		var winner, n int
		if err := rows.Scan(&winner, &n); err != nil {
			continue
		}
		stats.Games += n
		switch winner {
		case 0:
			stats.Wins[0] += n
		case 1:
			stats.Wins[1] += n
		default:
			stats.Draws += n
		}
	}
	return stats
}
