package repos

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wheelibin/lume/internal/models"
)

const initSchema = `
  CREATE TABLE IF NOT EXISTS transition (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    at TIMESTAMP,
    from_mode TEXT,
    to_mode TEXT,
    from_colour TEXT,
    to_colour TEXT
  );
`

// TransitionRepo journals mode transitions so you can see what the pod has
// been doing overnight.
type TransitionRepo struct {
	logger *log.Logger
	db     *sql.DB
}

func NewTransitionRepo(logger *log.Logger, db *sql.DB) (*TransitionRepo, error) {

	_, err := db.Exec(initSchema)
	if err != nil {
		return nil, fmt.Errorf("Error initialising transition schema: %w", err)
	}

	return &TransitionRepo{logger: logger, db: db}, nil
}

func (r *TransitionRepo) Add(t models.Transition) error {
	_, err := r.db.Exec(
		`INSERT INTO transition
      (at, from_mode, to_mode, from_colour, to_colour)
     VALUES ($1, $2, $3, $4, $5);`,
		t.At,
		string(t.From),
		string(t.To),
		t.FromColour.String(),
		t.ToColour.String(),
	)
	if err != nil {
		return fmt.Errorf("Error journaling transition (%s -> %s): %w", t.From, t.To, err)
	}
	return nil
}

// Recent returns the latest transitions, newest first.
func (r *TransitionRepo) Recent(limit int) ([]models.Transition, error) {
	rows, err := r.db.Query(
		"SELECT at, from_mode, to_mode, from_colour, to_colour FROM transition ORDER BY at DESC LIMIT $1",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("Error reading recent transitions: %w", err)
	}
	defer rows.Close()

	transitions := []models.Transition{}
	for rows.Next() {
		var (
			at         time.Time
			fromMode   string
			toMode     string
			fromColour string
			toColour   string
		)
		if err := rows.Scan(&at, &fromMode, &toMode, &fromColour, &toColour); err != nil {
			return nil, fmt.Errorf("Error reading transition row: %w", err)
		}

		from, _ := models.ParseRGB(fromColour)
		to, _ := models.ParseRGB(toColour)
		transitions = append(transitions, models.Transition{
			At:         at,
			From:       models.Mode(fromMode),
			To:         models.Mode(toMode),
			FromColour: from,
			ToColour:   to,
		})
	}

	return transitions, nil
}
