package render

import (
	"fmt"
	"strings"

	"github.com/s0up4200/qbtctl/qbittorrent"
	"github.com/s0up4200/qbtctl/session"
)

// ClearScreen erases the terminal and moves the cursor home.
const ClearScreen = "\x1b[2J\x1b[H"

// ConsoleFormatter provides console output formatting for command results
type ConsoleFormatter struct {
	// Verbose appends the long state description to the state code.
	Verbose bool
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(verbose bool) *ConsoleFormatter {
	return &ConsoleFormatter{Verbose: verbose}
}

// FormatTorrentList formats torrents as indented blocks, one per torrent.
func (f *ConsoleFormatter) FormatTorrentList(torrents []qbittorrent.Torrent) string {
	var sb strings.Builder

	sb.WriteString("\n")
	for _, t := range torrents {
		fmt.Fprintf(&sb, "   | %s\n   |\n", t.Name)
		fmt.Fprintf(&sb, "   |  > Hash: %s\n", t.Hash)
		fmt.Fprintf(&sb, "   |  > Progress: %.2f%% %s\n", t.Progress*100, ProgressBar(t.Progress))
		fmt.Fprintf(&sb, "   |  > Size: %s\n", HumanSize(t.Size))
		fmt.Fprintf(&sb, "   |  > Added on: %s\n", FormatTime(t.AddedOn))
		fmt.Fprintf(&sb, "   |  > Ratio: %.2f\n", t.Ratio)
		if f.Verbose {
			fmt.Fprintf(&sb, "   |  > State: %s (%s)\n", StateLabel(t.State, false), StateLabel(t.State, true))
		} else {
			fmt.Fprintf(&sb, "   |  > State: %s\n", StateLabel(t.State, false))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatListFooter summarizes a list. refresh is nil for a single shot list.
func (f *ConsoleFormatter) FormatListFooter(count int, sortBy string, reversed bool, refresh *RefreshInfo) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Found %d torrents, sorted by: %s", count, sortBy)
	if reversed {
		sb.WriteString(" (reversed)")
	}
	sb.WriteString("\n")

	if refresh != nil {
		fmt.Fprintf(&sb, "Refreshed %d times, every %dms\n", refresh.Count, refresh.Interval.Milliseconds())
	}

	return sb.String()
}

// FormatFiles formats the content of one torrent.
func (f *ConsoleFormatter) FormatFiles(files []qbittorrent.TorrentFile) string {
	var sb strings.Builder

	for _, file := range files {
		fmt.Fprintf(&sb, "\n   | %s\n   |\n", file.Name)
		fmt.Fprintf(&sb, "   |  > Progress: %.2f%% %s\n", file.Progress*100, ProgressBar(file.Progress))
		fmt.Fprintf(&sb, "   |  > Size: %s\n", HumanSize(file.Size))
	}

	fmt.Fprintf(&sb, "\nTorrent contains %d files.\n", len(files))
	return sb.String()
}

// FormatLogs formats the application log as a tab separated table.
func (f *ConsoleFormatter) FormatLogs(entries []qbittorrent.LogEntry) string {
	var sb strings.Builder

	sb.WriteString("ID\tTYPE\tTIME\t\t\tMESSAGE\n\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "%d\t%s\t%s\t%s\n", e.ID, e.Level.Code(), FormatTime(e.Timestamp), e.Message)
	}

	return sb.String()
}

// FormatSessions formats stored sessions. Tokens arrive already redacted
// unless the caller asked to reveal them.
func (f *ConsoleFormatter) FormatSessions(entries []session.Entry, revealed bool) string {
	if len(entries) == 0 {
		return "No stored sessions!\n"
	}

	var sb strings.Builder

	if !revealed {
		sb.WriteString("NOTE: secrets are redacted. To reveal, pass --show-secrets\n\n")
	}

	sb.WriteString("DEFAULT\tURL\tTOKEN\n")
	for _, e := range entries {
		marker := "[ ]"
		if e.Active {
			marker = "[*]"
		}
		fmt.Fprintf(&sb, "%s\t%s: %s\n", marker, e.Endpoint, e.Token)
	}

	return sb.String()
}
