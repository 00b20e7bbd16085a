package cmd

import (
	"fmt"
	"strconv"
	"strings"

	clierrors "tabkit/internal/cli/errors"
	"tabkit/internal/tabs"

	"github.com/agnivade/levenshtein"
	"github.com/spf13/pflag"
)

// activation selects tab Index of the group named Group. Group may also be
// the group's position in document order.
type activation struct {
	Group string
	Index int
}

func parseActivation(s string) (activation, error) {
	group, idx, ok := strings.Cut(s, "=")
	group = strings.TrimSpace(group)
	if !ok || group == "" {
		return activation{}, clierrors.InvalidActivation(s, "expected GROUP=INDEX")
	}
	i, err := strconv.Atoi(strings.TrimSpace(idx))
	if err != nil {
		return activation{}, clierrors.InvalidActivation(s, fmt.Sprintf("index %q is not a number", idx))
	}
	if i < 0 {
		return activation{}, clierrors.InvalidActivation(s, "index must not be negative")
	}
	return activation{Group: group, Index: i}, nil
}

func (a activation) String() string {
	return a.Group + "=" + strconv.Itoa(a.Index)
}

// activationList is a repeatable --activate flag.
type activationList []activation

var _ pflag.Value = (*activationList)(nil)

func (l *activationList) String() string {
	parts := make([]string, len(*l))
	for i, a := range *l {
		parts[i] = a.String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (l *activationList) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		a, err := parseActivation(part)
		if err != nil {
			return err
		}
		*l = append(*l, a)
	}
	return nil
}

func (l *activationList) Type() string {
	return "GROUP=INDEX"
}

// resolve finds the group an activation names, by name first and then by
// position.
func (a activation) resolve(groups []*tabs.Group) (*tabs.Group, error) {
	for _, g := range groups {
		if g.Name() == a.Group {
			return g, nil
		}
	}
	if pos, err := strconv.Atoi(a.Group); err == nil && pos >= 0 && pos < len(groups) {
		return groups[pos], nil
	}
	err := clierrors.InvalidActivation(a.String(), fmt.Sprintf("no group named %q", a.Group))
	if name := closestName(a.Group, groups); name != "" {
		err.Suggestions = append([]string{fmt.Sprintf("Did you mean %q?", name)}, err.Suggestions...)
	}
	return nil, err
}

// closestName returns the group name nearest to name, or "" when none is
// within a third of its length.
func closestName(name string, groups []*tabs.Group) string {
	best, bestDist := "", len(name)/3+1
	for _, g := range groups {
		if d := levenshtein.ComputeDistance(name, g.Name()); d < bestDist {
			best, bestDist = g.Name(), d
		}
	}
	return best
}

// apply activates the selected tabs in order.
func (l activationList) apply(groups []*tabs.Group) error {
	for _, a := range l {
		g, err := a.resolve(groups)
		if err != nil {
			return err
		}
		if a.Index >= g.Len() {
			return clierrors.InvalidActivation(a.String(),
				fmt.Sprintf("group %q has %d tabs", g.Name(), g.Len()))
		}
		g.SetActive(a.Index)
	}
	return nil
}
