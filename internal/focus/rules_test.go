package focus

import "testing"

func mustRule(t *testing.T, class, instance, title, keymask string) Rule {
	t.Helper()
	r, err := NewRule(class, instance, title, keymask)
	if err != nil {
		t.Fatalf("NewRule: %v", err)
	}
	return r
}

func TestRuleMatches(t *testing.T) {
	term := Target{Class: "XTerm", Instance: "xterm", Title: "vim main.go"}
	tests := []struct {
		name  string
		class string
		inst  string
		title string
		want  bool
	}{
		{"no conditions", "", "", "", true},
		{"class", "XTerm", "", "", true},
		{"class is anchored", "Term", "", "", false},
		{"class alternative", "URxvt|XTerm", "", "", true},
		{"instance", "", "xterm", "", true},
		{"all conditions", "XTerm", "xterm", "vim .*", true},
		{"one condition fails", "XTerm", "urxvt", "", false},
		{"title", "", "", ".*\\.go", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustRule(t, tt.class, tt.inst, tt.title, "")
			if got := r.Matches(term); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewRuleInvalid(t *testing.T) {
	if _, err := NewRule("(", "", "", ""); err == nil {
		t.Error("invalid class condition compiled")
	}
	if _, err := NewRule("", "", "[", ""); err == nil {
		t.Error("invalid title condition compiled")
	}
}

func TestRulesLastMatchWins(t *testing.T) {
	rules := Rules{
		mustRule(t, "", "", "", "Mod1\\+Tab"),
		mustRule(t, "Emacs", "", "", "Control\\+.*"),
		mustRule(t, "Emacs", "", "scratch", ""),
	}
	tests := []struct {
		target Target
		want   string
	}{
		{Target{Class: "XTerm"}, "Mod1\\+Tab"},
		{Target{Class: "Emacs", Title: "main.go"}, "Control\\+.*"},
		{Target{Class: "Emacs", Title: "scratch"}, ""},
	}
	for _, tt := range tests {
		got := rules.Apply(tt.target)
		if got.Keymask() != tt.want {
			t.Errorf("keymask of %s = %q, want %q", tt.target, got.Keymask(), tt.want)
		}
	}

	if got := Rules(nil).Keymask(Target{Class: "XTerm"}); got != "" {
		t.Errorf("empty rule list gave %q", got)
	}
}
