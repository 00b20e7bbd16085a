package tabs

// TriggerState is the derived state of one trigger.
type TriggerState struct {
	Index        int    `json:"index" yaml:"index"`
	ID           string `json:"id,omitempty" yaml:"id,omitempty"`
	Label        string `json:"label" yaml:"label"`
	Selected     bool   `json:"selected" yaml:"selected"`
	AriaSelected string `json:"aria_selected" yaml:"aria_selected"`
	TabIndex     int    `json:"tabindex" yaml:"tabindex"`
}

// PanelState is the derived state of one panel.
type PanelState struct {
	Index   int    `json:"index" yaml:"index"`
	ID      string `json:"id,omitempty" yaml:"id,omitempty"`
	Visible bool   `json:"visible" yaml:"visible"`
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Snapshot is a read-only view of a group, read back from the elements.
type Snapshot struct {
	Name        string         `json:"name" yaml:"name"`
	ActiveIndex int            `json:"active_index" yaml:"active_index"`
	Triggers    []TriggerState `json:"triggers" yaml:"triggers"`
	Panels      []PanelState   `json:"panels" yaml:"panels"`
}

const summaryWidth = 48

// Snapshot reads the current state of every trigger and panel.
func (g *Group) Snapshot() Snapshot {
	s := Snapshot{
		Name:        g.name,
		ActiveIndex: g.activeIndex,
		Triggers:    make([]TriggerState, 0, len(g.triggers)),
		Panels:      make([]PanelState, 0, len(g.panels)),
	}
	for i, t := range g.triggers {
		aria, _ := t.Attribute("aria-selected")
		s.Triggers = append(s.Triggers, TriggerState{
			Index:        i,
			ID:           t.ID(),
			Label:        t.Text(),
			Selected:     t.HasClass(g.sel.ActiveClass),
			AriaSelected: aria,
			TabIndex:     t.TabIndex(),
		})
	}
	for i, p := range g.panels {
		s.Panels = append(s.Panels, PanelState{
			Index:   i,
			ID:      p.ID(),
			Visible: p.HasClass(g.sel.ActiveClass),
			Summary: truncate(p.Text(), summaryWidth),
		})
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
