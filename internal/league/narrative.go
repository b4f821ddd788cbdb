package league

import (
	"fmt"
	"strings"
)

// RequestShootout signals that a penalty shootout result must be supplied through AddShootout.
const RequestShootout = "shootout"

// Tie explains how a group of teams level on points was separated.
type Tie struct {
	Group    []string `json:"group"`
	Messages []string `json:"messages"`
	Requests string   `json:"requests,omitempty"`
}

type narrator struct {
	history []Cycle
	names   map[string]string
}

// explain replays history for every group of teams that finished level on points.
// It always builds a fresh result.
func (n narrator) explain(final []Row) []Tie {
	ties := []Tie{}
	for _, cluster := range pointsClusters(final) {
		ties = append(ties, n.story(cluster))
	}
	return ties
}

func pointsClusters(final []Row) [][]Row {
	var clusters [][]Row
	for i := 0; i < len(final); {
		j := i + 1
		for j < len(final) && final[j].Points == final[i].Points {
			j++
		}
		if j-i > 1 {
			clusters = append(clusters, final[i:j])
		}
		i = j
	}
	return clusters
}

// story collects, in recursion order, every step whose sub-table lies inside the cluster.
func (n narrator) story(cluster []Row) Tie {
	ids := rowIDs(cluster)
	inCluster := make(map[string]bool, len(ids))
	for _, id := range ids {
		inCluster[id] = true
	}

	tie := Tie{
		Group:    ids,
		Messages: []string{fmt.Sprintf("%s are tied on points (%d).", n.list(ids), cluster[0].Points)},
	}
	for _, c := range n.history {
		if len(c.Snapshot) < 2 || !within(c.Snapshot, inCluster) {
			continue
		}
		msg, request := n.describe(c)
		if msg == "" {
			continue
		}
		tie.Messages = append(tie.Messages, msg)
		if request != "" {
			tie.Requests = request
		}
	}
	return tie
}

func within(rows []Row, set map[string]bool) bool {
	for _, r := range rows {
		if !set[r.ID] {
			return false
		}
	}
	return true
}

// describe renders one step. Steps that left their sub-table intact say nothing.
func (n narrator) describe(c Cycle) (string, string) {
	teams := n.list(rowIDs(c.Snapshot))
	switch c.Type {
	case RegimeFinal:
		if c.Criterion == string(FinalAlphabetical) {
			return teams + " are sorted on the alphabetical order of their names.", ""
		}
		return teams + " are sorted on drawing of random lots.", ""
	case RegimeShootout:
		if c.Criterion == CriterionProvisional {
			return teams + " are provisionally sorted at random while waiting for the results of their penalty shootout.", RequestShootout
		}
		if len(c.Groups) < 2 {
			return "", ""
		}
		return fmt.Sprintf("%s are sorted on the results of their penalty shootout (%s).", teams, n.values(c)), ""
	}

	if len(c.Groups) < 2 {
		return "", ""
	}
	var label string
	switch c.Type {
	case RegimeFlags:
		label = c.Criterion
	case RegimeH2H:
		label = "head-to-head " + Stat(c.Criterion).Label()
	default:
		label = Stat(c.Criterion).Label()
	}
	return fmt.Sprintf("%s are sorted on %s (%s).", teams, label, n.values(c)), ""
}

// values lists each team's value in the order the step ranked them.
func (n narrator) values(c Cycle) string {
	var parts []string
	for _, g := range c.Groups {
		for _, id := range g {
			parts = append(parts, fmt.Sprintf("%s: %d", n.name(id), c.Values[id]))
		}
	}
	return strings.Join(parts, "; ")
}

func (n narrator) name(id string) string {
	if display, ok := n.names[id]; ok && display != "" {
		return display
	}
	return id
}

// list renders display names alphabetically as "A", "A and B" or "A, B and C".
func (n narrator) list(ids []string) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = n.name(id)
	}
	sortNames(names)

	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}
