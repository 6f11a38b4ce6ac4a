package game

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ExportSession appends a plain-text report of the game to filename.
func ExportSession(s *Session, filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(Report(s)); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}
	return nil
}

// Report renders the roster, every resolved phase and the outcome.
func Report(s *Session) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Werewolf Game - Session %s\n", s.ID))
	if !s.startedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Started: %s\n", s.startedAt.Format(time.DateTime)))
	}
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	sb.WriteString("Players:\n")
	for _, p := range s.players {
		status := "alive"
		if !p.alive {
			status = "dead"
		}
		sb.WriteString(fmt.Sprintf("- %s, %s\n", p, status))
	}
	sb.WriteString("\n")

	// Nights and days alternate starting with night 1.
	for i := 0; i < max(len(s.nights), len(s.days)); i++ {
		if i < len(s.nights) {
			writeNight(&sb, s.nights[i])
		}
		if i < len(s.days) {
			writeDay(&sb, s.days[i])
		}
	}

	if len(s.deaths) > 0 {
		sb.WriteString("Deaths:\n")
		for _, d := range s.deaths {
			sb.WriteString(fmt.Sprintf("- %s: %s (%s %d)\n", d.Player, d.Cause, d.Phase, d.Round))
		}
		sb.WriteString("\n")
	}

	if s.winner != "" {
		sb.WriteString(fmt.Sprintf("%s win: %s\n", s.winner, strings.Join(names(s.winners), ", ")))
	}
	if !s.endedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Game ended at %s\n", s.endedAt.Format(time.DateTime)))
	}
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")
	return sb.String()
}

func writeNight(sb *strings.Builder, r NightResult) {
	sb.WriteString(fmt.Sprintf("Night %d\n", r.Night))
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	if r.WerewolfVictim != nil {
		sb.WriteString(fmt.Sprintf("- Werewolves chose %s\n", r.WerewolfVictim))
	}
	if r.ProtectionApplied {
		sb.WriteString(fmt.Sprintf("- Bodyguard protected %s\n", r.Protected))
	}
	if r.SaveApplied {
		sb.WriteString("- Witch used the save potion\n")
	}
	if r.KillApplied {
		sb.WriteString(fmt.Sprintf("- Witch poisoned %s\n", r.WitchKill))
	}
	if target, wolf, ok := r.SeerAnnouncement(); ok {
		verdict := "not a werewolf"
		if wolf {
			verdict = "a werewolf"
		}
		sb.WriteString(fmt.Sprintf("- Seer learned %s is %s\n", target, verdict))
	}
	writeKilled(sb, r.Killed)
}

func writeDay(sb *strings.Builder, r DayResult) {
	sb.WriteString(fmt.Sprintf("Day %d\n", r.Day))
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	if r.Victim != nil {
		sb.WriteString(fmt.Sprintf("- Village elected %s\n", r.Victim))
	}
	writeKilled(sb, r.Killed)
}

func writeKilled(sb *strings.Builder, killed []*Player) {
	if len(killed) == 0 {
		sb.WriteString("Nobody died.\n\n")
		return
	}
	sb.WriteString(fmt.Sprintf("Killed: %s\n\n", strings.Join(names(killed), ", ")))
}
