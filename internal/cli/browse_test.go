package cli

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeString(t *testing.T, m orgListModel, s string) orgListModel {
	t.Helper()
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(orgListModel)
	}
	return m
}

func TestOrgListModelFiltersWhileTyping(t *testing.T) {
	m := newOrgListModel([]string{"department-for-transport", "home-office"})

	m = typeString(t, m, "transport")

	want := []string{"department-for-transport"}
	if !reflect.DeepEqual(m.filtered, want) {
		t.Errorf("filtered = %v, want %v", m.filtered, want)
	}
}

func TestOrgListModelBackspaceWidensFilter(t *testing.T) {
	m := newOrgListModel([]string{"department-for-transport", "home-office"})

	m = typeString(t, m, "transport")
	for range "transport" {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
		m = next.(orgListModel)
	}

	if len(m.filtered) != 2 {
		t.Errorf("filtered = %v, want full directory after clearing query", m.filtered)
	}
}

func TestOrgListModelEnterSelects(t *testing.T) {
	m := newOrgListModel([]string{"department-for-transport", "home-office"})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(orgListModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(orgListModel)

	if m.selected != "home-office" {
		t.Errorf("selected = %q, want %q", m.selected, "home-office")
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestOrgListModelEnterWithNoMatchesSelectsNothing(t *testing.T) {
	m := newOrgListModel([]string{"home-office"})

	m = typeString(t, m, "zzz")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(orgListModel)

	if m.selected != "" {
		t.Errorf("selected = %q, want empty", m.selected)
	}
}

func TestOrgListModelEscQuitsWithoutSelection(t *testing.T) {
	m := newOrgListModel([]string{"home-office"})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(orgListModel)

	if m.selected != "" {
		t.Errorf("selected = %q, want empty", m.selected)
	}
	if cmd == nil {
		t.Error("esc should quit the program")
	}
}
