// Package progress renders live feedback while a scan or gallery build runs.
// On a terminal it drives a small bubbletea display; everywhere else it falls
// back to structured log lines so output stays machine-readable.
package progress

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gallerist/internal/service"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	targetStyle  = lipgloss.NewStyle().Bold(true)
)

// NewReporter picks the progress sink for the environment: the live terminal
// display when stderr is a TTY, log lines otherwise. plain forces the log
// fallback, which keeps debug output readable.
func NewReporter(logger *slog.Logger, plain bool) service.ProgressReporter {
	if !plain && isTerminal(os.Stderr) {
		return NewTracker()
	}
	return &logReporter{logger: logger}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

type stage int

const (
	stageIdle stage = iota
	stageListing
	stageSigning
	stageDone
)

type (
	listingStartedMsg struct{ bucket, prefix string }
	listingCountMsg   struct{ count int }
	signingStartedMsg struct{ total int }
	signingCountMsg   struct{ done int }
	finishedMsg       struct{}
)

type model struct {
	spinner spinner.Model
	stage   stage
	bucket  string
	prefix  string
	listed  int
	total   int
	signed  int
}

func newModel() model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return model{spinner: s}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listingStartedMsg:
		m.stage = stageListing
		m.bucket = msg.bucket
		m.prefix = msg.prefix
		return m, nil
	case listingCountMsg:
		m.listed = msg.count
		return m, nil
	case signingStartedMsg:
		m.stage = stageSigning
		m.total = msg.total
		return m, nil
	case signingCountMsg:
		m.signed = msg.done
		return m, nil
	case finishedMsg:
		m.stage = stageDone
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	switch m.stage {
	case stageListing:
		return fmt.Sprintf("%s Scanning %s... %d objects\n",
			m.spinner.View(), targetStyle.Render(m.bucket+"/"+m.prefix), m.listed)
	case stageSigning:
		return fmt.Sprintf("%s Signing URLs... %d/%d\n",
			m.spinner.View(), m.signed, m.total)
	case stageDone:
		return ""
	default:
		return fmt.Sprintf("%s Starting...\n", m.spinner.View())
	}
}

// Tracker runs the terminal display in the background and forwards progress
// updates into it.
type Tracker struct {
	program *tea.Program
	done    chan struct{}
	finish  sync.Once
}

var _ service.ProgressReporter = (*Tracker)(nil)

// NewTracker starts the display. The program draws on stderr and reads no
// input, so Ctrl+C still reaches the process.
func NewTracker() *Tracker {
	p := tea.NewProgram(newModel(), tea.WithOutput(os.Stderr), tea.WithInput(nil))
	t := &Tracker{
		program: p,
		done:    make(chan struct{}),
	}
	go func() {
		_, _ = p.Run()
		close(t.done)
	}()
	return t
}

func (t *Tracker) StartListing(bucket, prefix string) {
	t.program.Send(listingStartedMsg{bucket: bucket, prefix: prefix})
}

func (t *Tracker) ListingProgress(count int) {
	t.program.Send(listingCountMsg{count: count})
}

func (t *Tracker) StartSigning(total int) {
	t.program.Send(signingStartedMsg{total: total})
}

func (t *Tracker) SigningProgress(done int) {
	t.program.Send(signingCountMsg{done: done})
}

// Finish stops the display and waits for the terminal to be restored, so
// whatever prints next starts on a clean line. Safe to call more than once.
func (t *Tracker) Finish() {
	t.finish.Do(func() {
		t.program.Send(finishedMsg{})
		<-t.done
	})
}

// logReporter is the headless fallback: progress becomes periodic log lines,
// matching the cadence the drivers report at.
type logReporter struct {
	logger *slog.Logger
	total  int
}

var _ service.ProgressReporter = (*logReporter)(nil)

func (r *logReporter) StartListing(bucket, prefix string) {
	r.logger.Info("Scanning bucket", "bucket", bucket, "prefix", prefix)
}

func (r *logReporter) ListingProgress(count int) {
	r.logger.Info("Objects discovered so far", "count", count)
}

func (r *logReporter) StartSigning(total int) {
	r.total = total
	r.logger.Info("Resolving image URLs", "images", total)
}

func (r *logReporter) SigningProgress(done int) {
	r.logger.Info("URLs resolved so far", "count", done, "total", r.total)
}

func (r *logReporter) Finish() {}
