package hotkey

// Binding ties a key combo to the command it triggers. Whether the combo is
// currently grabbed follows from the active keymask and is maintained by
// the Manager only.
type Binding struct {
	combo   KeyCombo
	argv    []string
	grabbed bool
}

// Combo returns the bound key combo.
func (b Binding) Combo() KeyCombo { return b.combo }

// Command returns a copy of the bound argument vector.
func (b Binding) Command() []string { return append([]string(nil), b.argv...) }

// Grabbed reports whether the combo is grabbed on the server.
func (b Binding) Grabbed() bool { return b.grabbed }

// Entry is the read-only listing form of a binding.
type Entry struct {
	Combo   string
	Command []string
}
