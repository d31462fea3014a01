// Package focus follows the focused window and decides which keymask
// applies to it.
package focus

import (
	"fmt"
	"regexp"

	"github.com/BurntSushi/xgb/xproto"
)

// Target describes the window holding the input focus.
type Target struct {
	Window   xproto.Window
	Class    string
	Instance string
	Title    string

	keymask string
}

// Keymask returns the keymask pattern the rules assigned to the target.
func (t Target) Keymask() string {
	return t.keymask
}

func (t Target) String() string {
	return fmt.Sprintf("%#x (%s/%s %q)", t.Window, t.Class, t.Instance, t.Title)
}

// Rule assigns a keymask to the windows its conditions match. A nil
// condition matches every window.
type Rule struct {
	Class    *regexp.Regexp
	Instance *regexp.Regexp
	Title    *regexp.Regexp
	Keymask  string
}

// NewRule compiles the conditions of a rule. Empty conditions are left
// out. Conditions match the whole property value.
func NewRule(class, instance, title, keymask string) (Rule, error) {
	r := Rule{Keymask: keymask}
	var err error
	if r.Class, err = compileCondition("class", class); err != nil {
		return Rule{}, err
	}
	if r.Instance, err = compileCondition("instance", instance); err != nil {
		return Rule{}, err
	}
	if r.Title, err = compileCondition("title", title); err != nil {
		return Rule{}, err
	}
	return r, nil
}

func compileCondition(name, pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, fmt.Errorf("invalid %s condition %q: %w", name, pattern, err)
	}
	return re, nil
}

// Matches reports whether every condition of r holds for t.
func (r Rule) Matches(t Target) bool {
	return matchOptional(r.Class, t.Class) &&
		matchOptional(r.Instance, t.Instance) &&
		matchOptional(r.Title, t.Title)
}

func matchOptional(re *regexp.Regexp, s string) bool {
	return re == nil || re.MatchString(s)
}

// Rules is an ordered rule list. Later rules override earlier ones.
type Rules []Rule

// Keymask returns the keymask of the last rule matching t, or "".
func (rs Rules) Keymask(t Target) string {
	mask := ""
	for _, r := range rs {
		if r.Matches(t) {
			mask = r.Keymask
		}
	}
	return mask
}

// Apply returns t with its keymask resolved against rs.
func (rs Rules) Apply(t Target) Target {
	t.keymask = rs.Keymask(t)
	return t
}
