package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/florista/ramo-terminal-go/internal/cache"
	"github.com/florista/ramo-terminal-go/internal/flora"
	"github.com/florista/ramo-terminal-go/internal/order"
)

// ViewState represents the current view in the application.
type ViewState int

const (
	ViewBouquetList ViewState = iota
	ViewFlowers
	ViewFoliage
	ViewDedication
	ViewSong
	ViewSummary
	ViewConfirmation
	ViewRequests
)

// catalogCacheKey is the single key under which the shared catalog is
// cached across SSH sessions.
const catalogCacheKey = "catalog"

// Model is the main Bubble Tea model for the configurator.
type Model struct {
	// Dependencies
	client       *flora.Client
	orders       *flora.OrderClient
	catalogCache *cache.Cache[string, *flora.Catalog]

	// View state
	viewState ViewState
	width     int
	height    int
	styles    Styles

	// Catalog
	catalog        *flora.Catalog
	groups         []flora.SpeciesGroup
	loadingCatalog bool
	spinner        spinner.Model

	// Selection (per SSH session)
	sel *order.Selection
	acc *order.Accordion

	// Bouquet step
	bouquetList list.Model

	// Flower step
	flowerCursor int

	// Foliage step
	foliageCursor int
	notice        string

	// Dedication step
	dedication    textarea.Model
	suggesting    bool
	suggestions   []string
	suggestionIdx int

	// Song step
	songInput textinput.Model

	// Summary step
	contactForm *huh.Form
	contact     *contactInfo
	submitting  bool

	// Confirmation
	submitted *flora.OrderRequest

	// Requests view
	requests        []flora.OrderRecord
	loadingRequests bool

	// generation tags async commands; results from a previous session
	// generation are dropped instead of applied to a reset selection.
	generation int

	// Error handling
	err error
}

// contactInfo holds the customer fields bound to the contact form.
type contactInfo struct {
	Name      string
	Phone     string
	Date      string
	Confirmed bool
}

// bouquetItem implements list.Item for bouquet styles.
type bouquetItem struct {
	bouquet flora.BouquetStyle
}

func (i bouquetItem) Title() string {
	return i.bouquet.Name
}

func (i bouquetItem) Description() string {
	desc := StripHTML(i.bouquet.Description)
	if idx := strings.IndexByte(desc, '\n'); idx >= 0 {
		desc = desc[:idx]
	}
	if desc == "" {
		return i.bouquet.Price.Format()
	}
	return fmt.Sprintf("%s • %s", i.bouquet.Price.Format(), desc)
}

func (i bouquetItem) FilterValue() string {
	return i.bouquet.Name
}

// Messages
type (
	catalogLoadedMsg struct {
		gen     int
		catalog *flora.Catalog
	}
	suggestionsMsg struct {
		gen         int
		suggestions []string
	}
	orderSubmittedMsg struct {
		gen   int
		order flora.OrderRequest
	}
	requestsLoadedMsg struct {
		gen     int
		records []flora.OrderRecord
	}
	errMsg struct {
		gen int
		err error
	}
)

// NewModel creates a new configurator model for one session.
func NewModel(client *flora.Client, catalogCache *cache.Cache[string, *flora.Catalog], foliageCap int) Model {
	styles := DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPetal)

	ta := textarea.New()
	ta.Placeholder = "Escribe tu dedicatoria..."
	ta.CharLimit = 280
	ta.SetWidth(50)
	ta.SetHeight(4)

	ti := textinput.New()
	ti.Placeholder = "https://open.spotify.com/track/..."
	ti.CharLimit = 200
	ti.Width = 50

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(colorHighlight).
		BorderLeftForeground(colorHighlight)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(colorBark).
		BorderLeftForeground(colorHighlight)

	bouquetList := list.New([]list.Item{}, delegate, 0, 0)
	bouquetList.Title = "❀ Elige tu estilo de ramo"
	bouquetList.SetShowHelp(false)
	bouquetList.SetFilteringEnabled(true)
	bouquetList.Styles.Title = styles.StepTitle

	return Model{
		client:         client,
		orders:         flora.NewOrderClient(client),
		catalogCache:   catalogCache,
		viewState:      ViewBouquetList,
		styles:         styles,
		spinner:        sp,
		sel:            order.NewSelection(foliageCap),
		bouquetList:    bouquetList,
		dedication:     ta,
		songInput:      ti,
		contact:        &contactInfo{},
		loadingCatalog: true,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadCatalog(),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bouquetList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case catalogLoadedMsg:
		if msg.gen != m.generation {
			return m, nil
		}
		m.loadingCatalog = false
		m.catalog = msg.catalog
		m.groups = msg.catalog.SpeciesGroups()
		m.acc = order.NewAccordion(m.sel, m.groups)
		m.updateBouquetList()

	case suggestionsMsg:
		if msg.gen != m.generation {
			return m, nil
		}
		m.suggesting = false
		m.suggestions = msg.suggestions
		m.suggestionIdx = 0
		if len(msg.suggestions) == 0 {
			m.notice = "No hay sugerencias disponibles"
		}

	case orderSubmittedMsg:
		if msg.gen != m.generation {
			return m, nil
		}
		m.submitting = false
		m.submitted = &msg.order
		m.viewState = ViewConfirmation

	case requestsLoadedMsg:
		if msg.gen != m.generation {
			return m, nil
		}
		m.loadingRequests = false
		m.requests = msg.records

	case errMsg:
		if msg.gen != m.generation {
			return m, nil
		}
		m.err = msg.err
		m.loadingCatalog = false
		m.suggesting = false
		m.submitting = false
		m.loadingRequests = false
	}

	// Update sub-models based on view state
	switch m.viewState {
	case ViewBouquetList:
		var cmd tea.Cmd
		m.bouquetList, cmd = m.bouquetList.Update(msg)
		cmds = append(cmds, cmd)

	case ViewDedication:
		if len(m.suggestions) == 0 {
			var cmd tea.Cmd
			m.dedication, cmd = m.dedication.Update(msg)
			cmds = append(cmds, cmd)
		}

	case ViewSong:
		var cmd tea.Cmd
		m.songInput, cmd = m.songInput.Update(msg)
		cmds = append(cmds, cmd)

	case ViewSummary:
		if m.contactForm != nil {
			form, cmd := m.contactForm.Update(msg)
			if f, ok := form.(*huh.Form); ok {
				m.contactForm = f
			}
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Global keys
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if key == "q" && m.viewState == ViewBouquetList && m.bouquetList.FilterState() != list.Filtering {
		return m, tea.Quit
	}

	switch m.viewState {
	case ViewBouquetList:
		return m.handleBouquetKeys(msg)
	case ViewFlowers:
		return m.handleFlowerKeys(msg)
	case ViewFoliage:
		return m.handleFoliageKeys(msg)
	case ViewDedication:
		return m.handleDedicationKeys(msg)
	case ViewSong:
		return m.handleSongKeys(msg)
	case ViewSummary:
		return m.handleSummaryKeys(msg)
	case ViewConfirmation:
		return m.handleConfirmationKeys(msg)
	case ViewRequests:
		return m.handleRequestsKeys(msg)
	}

	return m, nil
}

func (m Model) handleBouquetKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.bouquetList.FilterState() != list.Filtering {
		switch key {
		case "r":
			m.err = nil
			m.loadingCatalog = true
			return m, tea.Batch(m.spinner.Tick, m.loadCatalog())

		case "v":
			m.viewState = ViewRequests
			m.loadingRequests = true
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, m.loadRequests())

		case "enter":
			if item, ok := m.bouquetList.SelectedItem().(bouquetItem); ok {
				m.sel.SelectBouquet(item.bouquet.ID)
				m.viewState = ViewFlowers
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.bouquetList, cmd = m.bouquetList.Update(msg)
	return m, cmd
}

func (m Model) handleFlowerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.acc == nil {
		return m, nil
	}

	switch msg.String() {
	case "esc", "backspace":
		m.viewState = ViewBouquetList
		return m, nil

	case "up", "k":
		if m.flowerCursor > 0 {
			m.flowerCursor--
		}
		return m, nil

	case "down", "j":
		if m.flowerCursor < len(m.groups)-1 {
			m.flowerCursor++
		}
		return m, nil

	case "enter", " ":
		if m.flowerCursor < len(m.groups) {
			m.acc.Toggle(m.groups[m.flowerCursor].Name)
		}
		return m, nil

	case "left", "h":
		m.cycleActive(-1)
		return m, nil

	case "right", "l":
		m.cycleActive(1)
		return m, nil

	case "+", "=":
		m.acc.Increment()
		return m, nil

	case "-", "_":
		m.acc.Decrement()
		return m, nil

	case "n":
		m.viewState = ViewFoliage
		return m, nil
	}

	return m, nil
}

func (m Model) handleFoliageKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.catalog == nil {
		return m, nil
	}

	switch msg.String() {
	case "esc", "backspace":
		m.notice = ""
		m.viewState = ViewFlowers
		return m, nil

	case "up", "k":
		if m.foliageCursor > 0 {
			m.foliageCursor--
		}
		return m, nil

	case "down", "j":
		if m.foliageCursor < len(m.catalog.Foliage)-1 {
			m.foliageCursor++
		}
		return m, nil

	case "enter", " ":
		if m.foliageCursor < len(m.catalog.Foliage) {
			item := m.catalog.Foliage[m.foliageCursor]
			if err := m.sel.ToggleFoliage(item.ID); err != nil {
				m.notice = fmt.Sprintf("Máximo %d follajes por ramo", m.sel.FoliageCap())
			} else {
				m.notice = ""
			}
		}
		return m, nil

	case "n":
		m.notice = ""
		m.viewState = ViewDedication
		m.dedication.Focus()
		return m, textarea.Blink
	}

	return m, nil
}

func (m Model) handleDedicationKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// A suggestion picker is showing: navigate it instead of typing.
	if len(m.suggestions) > 0 {
		switch key {
		case "up", "k":
			if m.suggestionIdx > 0 {
				m.suggestionIdx--
			}
		case "down", "j":
			if m.suggestionIdx < len(m.suggestions)-1 {
				m.suggestionIdx++
			}
		case "enter":
			m.dedication.SetValue(m.suggestions[m.suggestionIdx])
			m.suggestions = nil
		case "esc":
			m.suggestions = nil
		}
		return m, nil
	}

	switch key {
	case "esc":
		m.sel.SetDedication(m.dedication.Value())
		m.dedication.Blur()
		m.viewState = ViewFoliage
		return m, nil

	case "ctrl+g":
		if !m.suggesting && m.catalog != nil {
			m.suggesting = true
			m.err = nil
			m.notice = ""
			return m, tea.Batch(m.spinner.Tick, m.loadSuggestions())
		}
		return m, nil

	case "tab":
		m.sel.SetDedication(m.dedication.Value())
		m.dedication.Blur()
		m.notice = ""
		m.viewState = ViewSong
		m.songInput.Focus()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.dedication, cmd = m.dedication.Update(msg)
	return m, cmd
}

func (m Model) handleSongKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.sel.SetSongLink(m.songInput.Value())
		m.songInput.Blur()
		m.viewState = ViewDedication
		m.dedication.Focus()
		return m, textarea.Blink

	case "enter", "tab":
		m.sel.SetSongLink(m.songInput.Value())
		m.songInput.Blur()
		m.initContactForm()
		m.viewState = ViewSummary
		return m, m.contactForm.Init()
	}

	var cmd tea.Cmd
	m.songInput, cmd = m.songInput.Update(msg)
	return m, cmd
}

func (m Model) handleSummaryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.submitting {
		return m, nil
	}

	switch key {
	case "esc":
		m.contactForm = nil
		m.err = nil
		m.viewState = ViewSong
		m.songInput.Focus()
		return m, textinput.Blink
	}

	// Let the contact form handle the key until it completes.
	if m.contactForm != nil && m.contactForm.State != huh.StateCompleted {
		form, cmd := m.contactForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.contactForm = f
			if m.contact.Confirmed {
				m.contact.Confirmed = false
				m.submitting = true
				m.err = nil
				return m, tea.Batch(m.spinner.Tick, m.submitOrder())
			}
		}
		return m, cmd
	}

	// Form done but submission failed: enter retries with the same
	// contact fields.
	if key == "enter" && m.err != nil {
		m.err = nil
		m.submitting = true
		return m, tea.Batch(m.spinner.Tick, m.submitOrder())
	}

	return m, nil
}

func (m Model) handleConfirmationKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "q":
		m.resetSession()
		return m, nil

	case "v":
		m.viewState = ViewRequests
		m.loadingRequests = true
		m.err = nil
		return m, tea.Batch(m.spinner.Tick, m.loadRequests())
	}

	return m, nil
}

func (m Model) handleRequestsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.err = nil
		if m.submitted != nil {
			m.viewState = ViewConfirmation
		} else {
			m.viewState = ViewBouquetList
		}
		return m, nil

	case "r":
		m.err = nil
		m.loadingRequests = true
		return m, tea.Batch(m.spinner.Tick, m.loadRequests())
	}

	return m, nil
}

// cycleActive moves the color focus of the expanded group.
func (m *Model) cycleActive(delta int) {
	open := m.acc.Open()
	if open == "" {
		return
	}
	var group *flora.SpeciesGroup
	for i := range m.groups {
		if m.groups[i].Name == open {
			group = &m.groups[i]
			break
		}
	}
	if group == nil || len(group.Varieties) == 0 {
		return
	}
	active := m.acc.ActiveVariety(open)
	idx := 0
	for i, v := range group.Varieties {
		if v.ID == active {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(group.Varieties)) % len(group.Varieties)
	m.acc.SetActive(open, group.Varieties[idx].ID)
}

// resetSession clears everything session-scoped for a fresh order.
// Bumping the generation makes any in-flight command result stale.
func (m *Model) resetSession() {
	m.generation++
	m.sel.Reset()
	if m.catalog != nil {
		m.acc = order.NewAccordion(m.sel, m.groups)
	}
	m.flowerCursor = 0
	m.foliageCursor = 0
	m.notice = ""
	m.dedication.SetValue("")
	m.songInput.SetValue("")
	m.suggestions = nil
	m.suggestionIdx = 0
	m.suggesting = false
	m.contact = &contactInfo{}
	m.contactForm = nil
	m.submitted = nil
	m.submitting = false
	m.err = nil
	m.viewState = ViewBouquetList
}

func (m *Model) initContactForm() {
	m.contact.Confirmed = false
	m.contactForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nombre").
				Value(&m.contact.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("el nombre es obligatorio")
					}
					return nil
				}),
			huh.NewInput().
				Title("Teléfono").
				Value(&m.contact.Phone).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("el teléfono es obligatorio")
					}
					return nil
				}),
			huh.NewInput().
				Title("Fecha de entrega (AAAA-MM-DD)").
				Value(&m.contact.Date).
				Placeholder("2026-09-01").
				Validate(order.ValidateDeliveryDate),
			huh.NewConfirm().
				Value(&m.contact.Confirmed).
				Title("¿Enviar el pedido?").
				Affirmative("Sí").
				Negative("No"),
		),
	).WithShowHelp(true).WithShowErrors(true)
}

// Commands

func (m Model) loadCatalog() tea.Cmd {
	gen := m.generation
	return func() tea.Msg {
		if catalog, ok := m.catalogCache.Get(catalogCacheKey); ok {
			return catalogLoadedMsg{gen: gen, catalog: catalog}
		}

		catalog, err := m.client.GetCatalog(context.Background())
		if err != nil {
			return errMsg{gen: gen, err: err}
		}

		m.catalogCache.Set(catalogCacheKey, catalog)
		return catalogLoadedMsg{gen: gen, catalog: catalog}
	}
}

func (m Model) loadSuggestions() tea.Cmd {
	gen := m.generation
	req := order.BuildSuggestRequest(m.sel, m.catalog)
	return func() tea.Msg {
		suggestions, err := m.orders.SuggestDedications(context.Background(), req)
		if err != nil {
			return errMsg{gen: gen, err: err}
		}
		return suggestionsMsg{gen: gen, suggestions: suggestions}
	}
}

func (m Model) submitOrder() tea.Cmd {
	gen := m.generation
	contact := order.Contact{
		Name:         m.contact.Name,
		Phone:        m.contact.Phone,
		DeliveryDate: m.contact.Date,
	}
	sel, catalog := m.sel, m.catalog
	return func() tea.Msg {
		req, err := order.Compose(sel, catalog, contact)
		if err != nil {
			return errMsg{gen: gen, err: err}
		}
		if _, err := m.orders.SubmitOrder(context.Background(), req); err != nil {
			return errMsg{gen: gen, err: err}
		}
		return orderSubmittedMsg{gen: gen, order: req}
	}
}

func (m Model) loadRequests() tea.Cmd {
	gen := m.generation
	return func() tea.Msg {
		records, err := m.orders.ListRequests(context.Background())
		if err != nil {
			return errMsg{gen: gen, err: err}
		}
		return requestsLoadedMsg{gen: gen, records: records}
	}
}

func (m *Model) updateBouquetList() {
	items := make([]list.Item, len(m.catalog.Bouquets))
	for i, b := range m.catalog.Bouquets {
		items[i] = bouquetItem{bouquet: b}
	}
	m.bouquetList.SetItems(items)
}

// View renders the current view.
func (m Model) View() string {
	if m.width == 0 {
		return "Cargando..."
	}

	var content string

	switch m.viewState {
	case ViewBouquetList:
		content = m.viewBouquetList()
	case ViewFlowers:
		content = m.viewFlowers()
	case ViewFoliage:
		content = m.viewFoliage()
	case ViewDedication:
		content = m.viewDedication()
	case ViewSong:
		content = m.viewSong()
	case ViewSummary:
		content = m.viewSummary()
	case ViewConfirmation:
		content = m.viewConfirmation()
	case ViewRequests:
		content = m.viewRequests()
	}

	return m.styles.App.Render(content)
}

func (m Model) viewBouquetList() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render(m.styles.HeaderTitle.Render("❀ Ramos & Flores")))
	sb.WriteString("\n")

	if m.loadingCatalog {
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Cargando catálogo...")
	} else if m.err != nil {
		sb.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		sb.WriteString("\n\n")
		sb.WriteString(m.styles.Subtle.Render("r reintentar • q salir"))
		return sb.String()
	} else {
		sb.WriteString(m.bouquetList.View())
	}

	info := ""
	if m.catalog != nil && m.sel.ItemCount() > 0 {
		total := order.Price(m.sel, m.catalog).Total
		info = fmt.Sprintf(" • %d artículos (%s)", m.sel.ItemCount(), total.Format())
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.HelpBar.Render("enter elegir • / buscar • v solicitudes • r recargar • q salir" + info))

	return sb.String()
}

func (m Model) viewFlowers() string {
	var sb strings.Builder

	sb.WriteString(m.styles.StepTitle.Render("✿ Elige tus flores"))
	if b := m.catalog.BouquetByID(m.sel.BouquetID()); b != nil {
		sb.WriteString("  ")
		sb.WriteString(m.styles.StepSubtitle.Render(b.Name))
	}
	sb.WriteString("\n\n")

	for i, group := range m.groups {
		prefix := "  "
		if i == m.flowerCursor {
			prefix = m.styles.Highlight.Render("▸ ")
		}

		marker := "▸"
		if m.acc.IsOpen(group.Name) {
			marker = "▾"
		}

		qty := m.sel.GroupQuantity(group)
		badge := ""
		if qty > 0 {
			badge = m.styles.GroupBadge.Render(fmt.Sprintf("  x%d", qty))
		}

		header := fmt.Sprintf("%s%s %s%s", prefix, marker, m.styles.GroupHeader.Render(group.Name), badge)
		sb.WriteString(header)
		sb.WriteString("\n")

		if m.acc.IsOpen(group.Name) {
			active := m.acc.ActiveVariety(group.Name)
			var row strings.Builder
			row.WriteString("      ")
			for _, v := range group.Varieties {
				label := fmt.Sprintf("%s %s", swatch(v.HexColor), v.Color)
				if n := m.sel.FlowerQuantity(v.ID); n > 0 {
					label += fmt.Sprintf(" (%d)", n)
				}
				if v.ID == active {
					row.WriteString(m.styles.SwatchFocus.Render("[" + label + "]"))
				} else {
					row.WriteString(" " + label + " ")
				}
				row.WriteString("  ")
			}
			sb.WriteString(row.String())
			sb.WriteString("\n")

			if v := m.catalog.VarietyByID(active); v != nil {
				sb.WriteString("      ")
				sb.WriteString(m.styles.Subtle.Render(fmt.Sprintf("%s %s • %s c/u • +/- ajusta cantidad",
					v.Name, v.Color, v.Price.Format())))
				sb.WriteString("\n")
			}
		}
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.HelpBar.Render("↑/↓ especie • enter abre/cierra • ←/→ color • +/- cantidad • n continuar • esc volver"))

	return m.styles.Box.Render(sb.String())
}

func (m Model) viewFoliage() string {
	var sb strings.Builder

	sb.WriteString(m.styles.StepTitle.Render("☘ Elige tu follaje"))
	if cap := m.sel.FoliageCap(); cap > 0 {
		sb.WriteString("  ")
		sb.WriteString(m.styles.StepSubtitle.Render(fmt.Sprintf("hasta %d", cap)))
	}
	sb.WriteString("\n\n")

	for i, item := range m.catalog.Foliage {
		prefix := "  "
		if i == m.foliageCursor {
			prefix = m.styles.Highlight.Render("▸ ")
		}

		check := "[ ]"
		if m.sel.HasFoliage(item.ID) {
			check = m.styles.Success.Render("[✓]")
		}

		line := fmt.Sprintf("%s%s %s  %s", prefix, check, item.Name, m.styles.ItemPrice.Render(item.Price.Format()))
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if m.notice != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Notice.Render(m.notice))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.HelpBar.Render("↑/↓ mover • enter selecciona • n continuar • esc volver"))

	return m.styles.Box.Render(sb.String())
}

func (m Model) viewDedication() string {
	var sb strings.Builder

	sb.WriteString(m.styles.StepTitle.Render("✎ Dedicatoria"))
	sb.WriteString("  ")
	sb.WriteString(m.styles.StepSubtitle.Render("opcional"))
	sb.WriteString("\n\n")

	sb.WriteString(m.dedication.View())
	sb.WriteString("\n")

	if m.suggesting {
		sb.WriteString("\n")
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Generando sugerencias...")
		sb.WriteString("\n")
	}

	if len(m.suggestions) > 0 {
		var box strings.Builder
		box.WriteString(m.styles.Subtle.Render("Sugerencias:"))
		box.WriteString("\n")
		for i, s := range m.suggestions {
			prefix := "  "
			if i == m.suggestionIdx {
				prefix = m.styles.Highlight.Render("▸ ")
			}
			box.WriteString(fmt.Sprintf("%s%s\n", prefix, s))
		}
		box.WriteString("\n")
		box.WriteString(m.styles.Subtle.Render("↑/↓ elegir • enter usar • esc descartar"))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Box.Render(box.String()))
		sb.WriteString("\n")
	}

	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		sb.WriteString("\n")
	}
	if m.notice != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Notice.Render(m.notice))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.HelpBar.Render("ctrl+g sugerencias • tab continuar • esc volver"))

	return m.styles.Box.Render(sb.String())
}

func (m Model) viewSong() string {
	var sb strings.Builder

	sb.WriteString(m.styles.StepTitle.Render("♫ Canción para acompañar"))
	sb.WriteString("  ")
	sb.WriteString(m.styles.StepSubtitle.Render("opcional"))
	sb.WriteString("\n\n")

	sb.WriteString(m.songInput.View())
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.HelpBar.Render("enter continuar • esc volver"))

	return m.styles.Box.Render(sb.String())
}

func (m Model) viewSummary() string {
	var sb strings.Builder

	sb.WriteString(m.styles.SummaryTitle.Render("❀ Resumen del pedido"))
	sb.WriteString("\n")

	priced := order.Price(m.sel, m.catalog)
	for _, line := range priced.Lines {
		label := line.Label
		if line.Kind == order.LineFlower {
			label = fmt.Sprintf("%s %s", line.Label, line.Color)
		}
		sb.WriteString(m.styles.SummaryLine.Render(
			fmt.Sprintf("  %dx %-24s %s", line.Quantity, label, line.Total.Format())))
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.SummaryTotal.Render(fmt.Sprintf("  Total: %s", priced.Total.Format())))
	sb.WriteString("\n")

	if d := m.sel.Dedication(); d != "" {
		sb.WriteString(m.styles.Subtle.Render(fmt.Sprintf("  Dedicatoria: %s", d)))
		sb.WriteString("\n")
	}
	if s := m.sel.SongLink(); s != "" {
		sb.WriteString(m.styles.Subtle.Render(fmt.Sprintf("  Canción: %s", s)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if m.submitting {
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Enviando pedido...")
		return m.styles.Box.Render(sb.String())
	}

	if m.err != nil {
		sb.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		sb.WriteString("\n\n")
		sb.WriteString(m.styles.HelpBar.Render("enter reintentar • esc volver"))
		return m.styles.Box.Render(sb.String())
	}

	if m.contactForm != nil {
		sb.WriteString(m.contactForm.View())
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.HelpBar.Render("tab navegar • esc volver"))

	return m.styles.Box.Render(sb.String())
}

func (m Model) viewConfirmation() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Success.Render("✓ ¡Pedido enviado!"))
	sb.WriteString("\n\n")

	if m.submitted != nil {
		sb.WriteString(fmt.Sprintf("Ramo: %s\n", m.submitted.BouquetName))
		sb.WriteString(fmt.Sprintf("Entrega: %s\n", m.submitted.DeliveryDate))
		sb.WriteString(m.styles.SummaryTotal.Render(fmt.Sprintf("Total: %s", m.submitted.TotalPrice.Format())))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.HelpBar.Render("enter nuevo pedido • v ver solicitudes"))

	return m.styles.Box.Render(sb.String())
}

func (m Model) viewRequests() string {
	var sb strings.Builder

	sb.WriteString(m.styles.StepTitle.Render("⌘ Solicitudes"))
	sb.WriteString("\n\n")

	if m.loadingRequests {
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Cargando solicitudes...")
		return m.styles.Box.Render(sb.String())
	}

	if m.err != nil {
		sb.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		sb.WriteString("\n\n")
		sb.WriteString(m.styles.HelpBar.Render("r reintentar • esc volver"))
		return m.styles.Box.Render(sb.String())
	}

	if len(m.requests) == 0 {
		sb.WriteString(m.styles.Subtle.Render("Aún no hay solicitudes"))
		sb.WriteString("\n")
	}

	for _, rec := range m.requests {
		flowers, _ := flora.DecodeOrderLines(rec.FlowerLines)
		var parts []string
		for _, l := range flowers {
			parts = append(parts, fmt.Sprintf("%dx %s %s", l.Quantity, l.Name, l.Color))
		}
		detail := strings.Join(parts, ", ")
		if detail == "" {
			detail = "solo ramo"
		}

		sb.WriteString(m.styles.ItemName.Render(fmt.Sprintf("%s — %s", rec.CustomerName, rec.BouquetName)))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Subtle.Render(fmt.Sprintf("  entrega %s • %s", rec.DeliveryDate, detail)))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("  %s\n", m.styles.ItemPrice.Render(rec.TotalPrice.Format())))
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.HelpBar.Render("r recargar • esc volver"))

	return m.styles.Box.Render(sb.String())
}

// GetViewState returns the current view state (for testing).
func (m Model) GetViewState() ViewState {
	return m.viewState
}

// Selection returns the session selection (for testing).
func (m Model) Selection() *order.Selection {
	return m.sel
}
