package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/annotations"
	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/export"
	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/instructions"
	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/logger"
	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/queue"
)

// Screen selects which of the app's screens is showing.
type Screen int

const (
	ScreenQueue Screen = iota
	ScreenInstructions
	ScreenAnnotations
)

// PanelFocus tracks which queue-screen panel has keyboard focus.
type PanelFocus int

const (
	FocusList PanelFocus = iota
	FocusDetail
)

// InputMode says what a committed line of typed text will be used for.
type InputMode int

const (
	InputNone InputMode = iota
	InputAddFile
	InputDriveLinks
	InputInstruction
	InputImprove
	InputSearch
)

// Deps are the collaborators the TUI drives.
type Deps struct {
	Queue       *queue.Queue
	Runner      *queue.Runner
	Store       *instructions.Store
	Annotations *annotations.Client
	Log         logger.Logger
	ExportDir   string
}

// Model is the root bubbletea model for the transcription TUI.
type Model struct {
	// Collaborators
	queue     *queue.Queue
	runner    *queue.Runner
	store     *instructions.Store
	ann       *annotations.Client
	log       logger.Logger
	exportDir string

	// Queue screen
	items        []queue.Item
	selected     int
	detailScroll int
	busyItem     string // id being worked on by the single-item path
	batchActive  bool

	// Instructions screen
	instrList     []string
	selectedInstr int

	// Annotations screen
	records    []annotations.Record
	filtered   []annotations.Record
	annSearch  string
	annOrder   annotations.SortOrder
	annLoading bool
	annScroll  int

	// Input line
	inputMode   InputMode
	inputBuffer string

	// UI state
	screen       Screen
	focusedPanel PanelFocus
	width        int
	height       int

	// Errors and status
	statusText     string
	errorMessage   string
	errorTransient bool
}

// New creates a Model with default state around the given collaborators.
func New(d Deps) Model {
	return Model{
		queue:        d.Queue,
		runner:       d.Runner,
		store:        d.Store,
		ann:          d.Annotations,
		log:          d.Log,
		exportDir:    d.ExportDir,
		instrList:    d.Store.Current(),
		annOrder:     annotations.SortNewestFirst,
		focusedPanel: FocusList,
		statusText:   "Ready",
	}
}

// Init returns the initial command: start listening for queue changes.
func (m Model) Init() tea.Cmd {
	return readUpdatesCmd(m.queue)
}

// readUpdatesCmd waits for the next queue change notification.
func readUpdatesCmd(q *queue.Queue) tea.Cmd {
	return func() tea.Msg {
		<-q.Updates()
		return QueueUpdatedMsg{}
	}
}

// processCmd runs the full pipeline for one item.
func processCmd(q *queue.Queue, id string) tea.Cmd {
	return func() tea.Msg {
		err := q.ProcessOne(context.Background(), id)
		return ProcessDoneMsg{ID: id, Err: err}
	}
}

// batchCmd runs a batch pass over everything pending.
func batchCmd(r *queue.Runner) tea.Cmd {
	return func() tea.Msg {
		n, err := r.Run(context.Background())
		return BatchDoneMsg{Attempted: n, Err: err}
	}
}

// improveCmd rewrites the business summary of a completed item.
func improveCmd(q *queue.Queue, id, instructionText string) tea.Cmd {
	return func() tea.Msg {
		err := q.ImproveBusinessSummary(context.Background(), id, instructionText)
		return ImproveDoneMsg{ID: id, Err: err}
	}
}

// saveReportCmd writes the text report for one item into the export dir.
func saveReportCmd(it queue.Item, dir string) tea.Cmd {
	return func() tea.Msg {
		report, err := export.RenderReport(it, time.Now())
		if err != nil {
			return ReportSavedMsg{Err: err}
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return ReportSavedMsg{Err: err}
		}
		path := filepath.Join(dir, export.ReportFileName(it))
		if err := os.WriteFile(path, []byte(report), 0644); err != nil {
			return ReportSavedMsg{Err: err}
		}
		return ReportSavedMsg{Path: path}
	}
}

// saveArchiveCmd writes a zip with one report per completed item.
func saveArchiveCmd(items []queue.Item, dir string) tea.Cmd {
	return func() tea.Msg {
		now := time.Now()
		data, err := export.BuildArchive(items, now)
		if err != nil {
			return ArchiveSavedMsg{Err: err}
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return ArchiveSavedMsg{Err: err}
		}
		path := filepath.Join(dir, export.ArchiveName(now))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return ArchiveSavedMsg{Err: err}
		}
		return ArchiveSavedMsg{Path: path}
	}
}

// fetchAnnotationsCmd pulls every annotation record from the service.
func fetchAnnotationsCmd(c *annotations.Client) tea.Cmd {
	return func() tea.Msg {
		records, err := c.FetchAll(context.Background())
		return AnnotationsLoadedMsg{Records: records, Err: err}
	}
}

// addInstructionCmd appends an instruction and persists the list.
func addInstructionCmd(store *instructions.Store, text string) tea.Cmd {
	return func() tea.Msg {
		err := store.Add(text)
		return InstructionsChangedMsg{List: store.Current(), Err: err}
	}
}

// removeInstructionCmd removes an instruction and persists the list.
func removeInstructionCmd(store *instructions.Store, index int) tea.Cmd {
	return func() tea.Msg {
		err := store.Remove(index)
		return InstructionsChangedMsg{List: store.Current(), Err: err}
	}
}

// clearTransientErrorCmd fires after a delay to clear transient errors.
func clearTransientErrorCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return ClearTransientErrorMsg{}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case QueueUpdatedMsg:
		m.refreshItems()
		// Keep listening for the next change.
		return m, readUpdatesCmd(m.queue)

	case ProcessDoneMsg:
		m.busyItem = ""
		m.refreshItems()
		if msg.Err != nil {
			m.errorMessage = msg.Err.Error()
			m.errorTransient = true
			return m, clearTransientErrorCmd()
		}
		m.statusText = "Item processed"
		return m, nil

	case BatchDoneMsg:
		m.batchActive = false
		m.refreshItems()
		if msg.Err != nil {
			m.errorMessage = msg.Err.Error()
			m.errorTransient = true
			return m, clearTransientErrorCmd()
		}
		if msg.Attempted == 0 {
			m.statusText = "Nothing to process"
		} else {
			m.statusText = fmt.Sprintf("Batch finished: %d items attempted", msg.Attempted)
		}
		return m, nil

	case ImproveDoneMsg:
		m.busyItem = ""
		m.refreshItems()
		if msg.Err != nil {
			m.errorMessage = msg.Err.Error()
			m.errorTransient = true
			return m, clearTransientErrorCmd()
		}
		m.statusText = "Business summary rewritten"
		return m, nil

	case ReportSavedMsg:
		if msg.Err != nil {
			m.errorMessage = msg.Err.Error()
			m.errorTransient = true
			return m, clearTransientErrorCmd()
		}
		m.statusText = "Report saved: " + msg.Path
		return m, nil

	case ArchiveSavedMsg:
		if msg.Err != nil {
			m.errorMessage = msg.Err.Error()
			m.errorTransient = true
			return m, clearTransientErrorCmd()
		}
		m.statusText = "Archive saved: " + msg.Path
		return m, nil

	case AnnotationsLoadedMsg:
		m.annLoading = false
		if msg.Err != nil {
			m.records = nil
			m.filtered = nil
			m.errorMessage = msg.Err.Error()
			m.errorTransient = true
			return m, clearTransientErrorCmd()
		}
		m.records = msg.Records
		m.applyAnnotationFilter()
		m.statusText = fmt.Sprintf("%d annotations loaded", len(m.records))
		return m, nil

	case InstructionsChangedMsg:
		if msg.Err != nil {
			m.errorMessage = msg.Err.Error()
			m.errorTransient = true
			return m, clearTransientErrorCmd()
		}
		m.instrList = msg.List
		if m.selectedInstr >= len(m.instrList) {
			m.selectedInstr = max(0, len(m.instrList)-1)
		}
		m.statusText = "Instructions saved"
		return m, nil

	case ClearTransientErrorMsg:
		if m.errorTransient {
			m.errorMessage = ""
			m.errorTransient = false
		}
		return m, nil
	}

	return m, nil
}

// refreshItems re-reads the queue and clamps the selection.
func (m *Model) refreshItems() {
	m.items = m.queue.Items()
	if m.selected >= len(m.items) {
		m.selected = max(0, len(m.items)-1)
	}
}

func (m *Model) applyAnnotationFilter() {
	m.filtered = annotations.FilterAndSort(m.records, m.annSearch, m.annOrder)
	if m.annScroll >= len(m.filtered) {
		m.annScroll = max(0, len(m.filtered)-1)
	}
}

// selectedItem returns the item under the cursor, if any.
func (m Model) selectedItem() (queue.Item, bool) {
	if m.selected < 0 || m.selected >= len(m.items) {
		return queue.Item{}, false
	}
	return m.items[m.selected], true
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputMode != InputNone {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case KeyQuit, KeyQuitUpper, KeyCtrlC:
		return m, tea.Quit

	case KeyInstructions:
		if m.screen == ScreenInstructions {
			m.screen = ScreenQueue
		} else {
			m.screen = ScreenInstructions
			m.instrList = m.store.Current()
		}
		return m, nil

	case KeyAnnotations:
		if m.screen == ScreenAnnotations {
			m.screen = ScreenQueue
			return m, nil
		}
		m.screen = ScreenAnnotations
		// Stale records never survive a screen entry.
		m.records = nil
		m.filtered = nil
		m.annLoading = true
		m.statusText = "Fetching annotations..."
		return m, fetchAnnotationsCmd(m.ann)

	case KeyEscape:
		if m.screen != ScreenQueue {
			m.screen = ScreenQueue
		}
		return m, nil
	}

	switch m.screen {
	case ScreenInstructions:
		return m.handleInstructionsKey(msg)
	case ScreenAnnotations:
		return m.handleAnnotationsKey(msg)
	default:
		return m.handleQueueKey(msg)
	}
}

func (m Model) handleQueueKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyTab:
		if m.focusedPanel == FocusList {
			m.focusedPanel = FocusDetail
		} else {
			m.focusedPanel = FocusList
		}
		return m, nil

	case KeyJ, KeyDown:
		if m.focusedPanel == FocusDetail {
			m.detailScroll++
			return m, nil
		}
		if m.selected < len(m.items)-1 {
			m.selected++
			m.detailScroll = 0
		}
		return m, nil

	case KeyK, KeyUp:
		if m.focusedPanel == FocusDetail {
			if m.detailScroll > 0 {
				m.detailScroll--
			}
			return m, nil
		}
		if m.selected > 0 {
			m.selected--
			m.detailScroll = 0
		}
		return m, nil

	case KeyAddFile:
		m.inputMode = InputAddFile
		m.inputBuffer = ""
		return m, nil

	case KeyAddDrive:
		m.inputMode = InputDriveLinks
		m.inputBuffer = ""
		return m, nil

	case KeyProcess:
		it, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		if m.busyItem != "" || m.batchActive {
			m.statusText = "Already processing"
			return m, nil
		}
		m.busyItem = it.ID
		m.statusText = "Processing " + it.DisplayName
		return m, processCmd(m.queue, it.ID)

	case KeyBatch:
		if m.busyItem != "" || m.batchActive {
			m.statusText = "Already processing"
			return m, nil
		}
		m.batchActive = true
		m.statusText = "Batch started"
		return m, batchCmd(m.runner)

	case KeyRemove:
		it, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		if it.Status == queue.StatusProcessing || it.ID == m.busyItem {
			m.statusText = "Cannot remove an item while it is processing"
			return m, nil
		}
		m.queue.Remove(it.ID)
		m.refreshItems()
		m.statusText = "Removed " + it.DisplayName
		return m, nil

	case KeyImprove:
		it, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		if it.Status != queue.StatusCompleted {
			m.statusText = "Only completed items can be rewritten"
			return m, nil
		}
		if m.busyItem != "" || m.batchActive {
			m.statusText = "Already processing"
			return m, nil
		}
		m.inputMode = InputImprove
		m.inputBuffer = ""
		return m, nil

	case KeyExport:
		it, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		if it.Status != queue.StatusCompleted {
			m.statusText = "Only completed items can be exported"
			return m, nil
		}
		return m, saveReportCmd(it, m.exportDir)

	case KeyArchive:
		return m, saveArchiveCmd(m.items, m.exportDir)
	}

	return m, nil
}

func (m Model) handleInstructionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyJ, KeyDown:
		if m.selectedInstr < len(m.instrList)-1 {
			m.selectedInstr++
		}
		return m, nil

	case KeyK, KeyUp:
		if m.selectedInstr > 0 {
			m.selectedInstr--
		}
		return m, nil

	case KeyAddFile:
		m.inputMode = InputInstruction
		m.inputBuffer = ""
		return m, nil

	case KeyRemove:
		if len(m.instrList) == 0 {
			return m, nil
		}
		return m, removeInstructionCmd(m.store, m.selectedInstr)
	}

	return m, nil
}

func (m Model) handleAnnotationsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyJ, KeyDown:
		if m.annScroll < len(m.filtered)-1 {
			m.annScroll++
		}
		return m, nil

	case KeyK, KeyUp:
		if m.annScroll > 0 {
			m.annScroll--
		}
		return m, nil

	case KeyRefresh:
		m.records = nil
		m.filtered = nil
		m.annLoading = true
		m.statusText = "Fetching annotations..."
		return m, fetchAnnotationsCmd(m.ann)

	case KeySortToggle:
		if m.annOrder == annotations.SortNewestFirst {
			m.annOrder = annotations.SortOldestFirst
		} else {
			m.annOrder = annotations.SortNewestFirst
		}
		m.applyAnnotationFilter()
		return m, nil

	case KeySearch:
		m.inputMode = InputSearch
		m.inputBuffer = m.annSearch
		return m, nil
	}

	return m, nil
}

// handleInputKey edits or commits the pending input line.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEscape:
		m.inputMode = InputNone
		m.inputBuffer = ""
		return m, nil

	case KeyEnter:
		return m.commitInput()

	case KeyBackspace:
		if len(m.inputBuffer) > 0 {
			runes := []rune(m.inputBuffer)
			m.inputBuffer = string(runes[:len(runes)-1])
		}
		return m, nil

	default:
		if msg.Type == tea.KeyRunes || msg.String() == " " {
			m.inputBuffer += msg.String()
		}
		return m, nil
	}
}

// commitInput applies the typed line according to the active input mode.
func (m Model) commitInput() (tea.Model, tea.Cmd) {
	mode := m.inputMode
	text := strings.TrimSpace(m.inputBuffer)
	m.inputMode = InputNone
	m.inputBuffer = ""

	switch mode {
	case InputAddFile:
		if text == "" {
			return m, nil
		}
		if _, err := os.Stat(text); err != nil {
			m.errorMessage = "file not found: " + text
			m.errorTransient = true
			return m, clearTransientErrorCmd()
		}
		m.queue.EnqueueLocal(text)
		m.refreshItems()
		m.statusText = "Queued " + filepath.Base(text)
		return m, nil

	case InputDriveLinks:
		if text == "" {
			return m, nil
		}
		ids := m.queue.EnqueueDrive(text)
		if len(ids) == 0 {
			m.errorMessage = "no Drive links found in the pasted text"
			m.errorTransient = true
			return m, clearTransientErrorCmd()
		}
		m.refreshItems()
		m.statusText = fmt.Sprintf("Queued %d Drive file(s)", len(ids))
		return m, nil

	case InputInstruction:
		if text == "" {
			return m, nil
		}
		for _, existing := range m.instrList {
			if existing == text {
				m.statusText = "Instruction already in the list"
				return m, nil
			}
		}
		return m, addInstructionCmd(m.store, text)

	case InputImprove:
		if text == "" {
			return m, nil
		}
		it, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		m.busyItem = it.ID
		m.statusText = "Rewriting summary of " + it.DisplayName
		return m, improveCmd(m.queue, it.ID, text)

	case InputSearch:
		m.annSearch = text
		m.applyAnnotationFilter()
		return m, nil
	}

	return m, nil
}
