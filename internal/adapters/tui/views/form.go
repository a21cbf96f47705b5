package views

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tripgenie/internal/adapters/tui/styles"
	"tripgenie/internal/application/commands"
	"tripgenie/internal/domain"
)

const (
	fieldDestination = iota
	fieldCountry
	fieldStartDate
	fieldEndDate
	fieldTravelers
	fieldTravelerType
	fieldVibes
	fieldBudget
)

// FormModel creates a trip or edits an existing one
type FormModel struct {
	ViewState
	svc      commands.TripService
	form     *InputForm
	original *domain.Trip
}

// NewFormModel creates a new trip form
func NewFormModel(svc commands.TripService) *FormModel {
	return &FormModel{
		svc: svc,
		form: NewInputForm(
			NewInputField("Destination", "Lisbon", 200),
			NewInputField("Country", "Portugal", 100),
			NewInputField("Start date", "2026-06-01", 10),
			NewInputField("End date", "2026-06-05", 10),
			NewInputField("Travelers", "2", 2),
			NewInputField("Traveler type", "couple", 40),
			NewInputField("Vibes", "food, culture", 0),
			NewInputField("Budget", "moderate", 40),
		),
	}
}

// SetTrip prepares the form. A nil trip starts an empty create form.
func (m *FormModel) SetTrip(trip *domain.Trip) {
	m.ClearMessage()
	m.form.Reset()
	m.original = trip
	if trip == nil {
		m.form.SetValue(fieldTravelers, "1")
		return
	}
	for i, v := range formValues(*trip) {
		m.form.SetValue(i, v)
	}
}

// Editing reports whether the form edits an existing trip
func (m *FormModel) Editing() bool {
	return m.original != nil
}

// Init starts the cursor blink
func (m *FormModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the form
func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case ErrMsg:
		m.SetMessage(msg.Err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToListMsg{} }
		case key.Matches(msg, m.form.Keys.Submit):
			return m, m.submit()
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *FormModel) values() []string {
	values := make([]string, len(m.form.Fields))
	for i := range values {
		values[i] = m.form.Value(i)
	}
	return values
}

func (m *FormModel) submit() tea.Cmd {
	in, err := BuildTripInput(m.values(), m.original)
	if err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}

	svc, original := m.svc, m.original
	return func() tea.Msg {
		ctx := context.Background()
		if original == nil {
			result, err := commands.NewCreateTripCommand(svc, in).Execute(ctx)
			if err != nil {
				return ErrMsg{err}
			}
			return SwitchToListMsg{Reload: true, Message: result.Message}
		}
		result, err := commands.NewUpdateTripCommand(svc, original.ID, in).Execute(ctx)
		if err != nil {
			return ErrMsg{err}
		}
		return SwitchToListMsg{Reload: true, Message: result.Message}
	}
}

func formValues(t domain.Trip) []string {
	return []string{
		fieldDestination:  t.Destination,
		fieldCountry:      t.Country,
		fieldStartDate:    t.StartDate,
		fieldEndDate:      t.EndDate,
		fieldTravelers:    strconv.Itoa(t.Travelers),
		fieldTravelerType: t.TravelerType,
		fieldVibes:        strings.Join(t.Vibes, ", "),
		fieldBudget:       t.Budget,
	}
}

// BuildTripInput turns form values into a TripInput. Creating, every
// non-empty field is set. Editing, only fields that differ from original are.
func BuildTripInput(values []string, original *domain.Trip) (domain.TripInput, error) {
	var before []string
	if original != nil {
		before = formValues(*original)
	}
	changed := func(i int) bool {
		if before == nil {
			return values[i] != ""
		}
		return values[i] != before[i]
	}

	var in domain.TripInput
	if changed(fieldDestination) {
		in.Destination = domain.Ptr(values[fieldDestination])
	}
	if changed(fieldCountry) {
		in.Country = domain.Ptr(values[fieldCountry])
	}
	if changed(fieldStartDate) {
		in.StartDate = domain.Ptr(values[fieldStartDate])
	}
	if changed(fieldEndDate) {
		in.EndDate = domain.Ptr(values[fieldEndDate])
	}
	if changed(fieldTravelers) {
		n, err := strconv.Atoi(values[fieldTravelers])
		if err != nil {
			return domain.TripInput{}, fmt.Errorf("travelers: %q is not a number", values[fieldTravelers])
		}
		in.Travelers = domain.Ptr(n)
	}
	if changed(fieldTravelerType) {
		in.TravelerType = domain.Ptr(values[fieldTravelerType])
	}
	if changed(fieldVibes) {
		in.Vibes = splitList(values[fieldVibes])
	}
	if changed(fieldBudget) {
		in.Budget = domain.Ptr(values[fieldBudget])
	}
	return in, nil
}

func splitList(s string) []string {
	out := []string{}
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" && !slices.Contains(out, part) {
			out = append(out, part)
		}
	}
	return out
}

// View renders the form
func (m *FormModel) View() string {
	var b strings.Builder

	if m.original != nil {
		b.WriteString(styles.Title.Render("Edit trip"))
		b.WriteString("\n")
		b.WriteString(styles.Subtitle.Render(m.original.ID))
	} else {
		b.WriteString(styles.Title.Render("New trip"))
		b.WriteString("\n")
		b.WriteString(styles.Subtitle.Render("Saved locally when offline and synced later"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.form.View())

	if msg := m.RenderMessage(); msg != "" {
		b.WriteString("\n")
		b.WriteString(msg)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpLine([][2]string{
		{"tab", "next field"},
		{"enter", "save"},
		{"esc", "cancel"},
	}))

	return styles.App.Render(b.String())
}
