// ABOUTME: Export functionality for gym data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/gym/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportJSON exports the document in its persisted JSON form.
func ExportJSON(doc *models.Document) ([]byte, error) {
	return EncodeDocument(doc)
}

// ExportYAML exports the document as YAML with the same structure as the JSON form.
// Routine order and the integer/real kind of weights are preserved.
func ExportYAML(doc *models.Document) ([]byte, error) {
	routines := mappingNode()
	for name, exercises := range doc.AllRoutines() {
		list := sequenceNode()
		for _, e := range exercises {
			list.Content = append(list.Content, scalarNode("!!str", e))
		}
		routines.Content = append(routines.Content, scalarNode("!!str", name), list)
	}

	workouts := sequenceNode()
	for _, w := range doc.Workouts {
		exercises := sequenceNode()
		for _, e := range w.Exercises {
			sets := sequenceNode()
			for _, set := range e.Sets {
				weightTag := "!!int"
				if set.Weight.IsReal() {
					weightTag = "!!float"
				}
				sets.Content = append(sets.Content, mappingNode(
					scalarNode("!!str", "reps"), scalarNode("!!int", strconv.Itoa(set.Reps)),
					scalarNode("!!str", "weight"), scalarNode(weightTag, set.Weight.String()),
					scalarNode("!!str", "notes"), scalarNode("!!str", set.Notes),
				))
			}
			exercises.Content = append(exercises.Content, mappingNode(
				scalarNode("!!str", "name"), scalarNode("!!str", e.Name),
				scalarNode("!!str", "sets"), sets,
			))
		}
		workouts.Content = append(workouts.Content, mappingNode(
			scalarNode("!!str", "date"), scalarNode("!!str", w.Date.String()),
			scalarNode("!!str", "exercises"), exercises,
		))
	}

	root := mappingNode(
		scalarNode("!!str", "routines"), routines,
		scalarNode("!!str", "workouts"), workouts,
	)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func mappingNode(content ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: content}
}

func sequenceNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: []*yaml.Node{}}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// ExportMarkdown exports routines and workouts as Markdown.
// Workouts are listed most recent first; since, when set, drops older workouts.
func ExportMarkdown(doc *models.Document, since *time.Time) (string, error) {
	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Gym Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	if doc.Routines.Len() > 0 {
		sb.WriteString("## Routines\n\n")
		for name, exercises := range doc.AllRoutines() {
			sb.WriteString(fmt.Sprintf("### %s\n\n", name))
			for i, e := range exercises {
				sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, e))
			}
			sb.WriteString("\n")
		}
	}

	workouts := slices.Clone(doc.Workouts)
	if since != nil {
		workouts = slices.DeleteFunc(workouts, func(w models.Workout) bool {
			return w.Date.Before(*since)
		})
	}
	slices.SortStableFunc(workouts, func(a, b models.Workout) int {
		return b.Date.Compare(a.Date.Time)
	})

	if len(workouts) == 0 {
		return sb.String(), nil
	}

	sb.WriteString("## Workouts\n\n")
	for _, w := range workouts {
		sb.WriteString(fmt.Sprintf("### %s\n\n", w.Date.Format("2006-01-02 15:04")))
		sb.WriteString("| Exercise | Set | Reps | Weight | Notes |\n")
		sb.WriteString("|----------|-----|------|--------|-------|\n")
		for _, e := range w.Exercises {
			for i, set := range e.Sets {
				weight := "bodyweight"
				if !set.Weight.IsZero() {
					weight = set.Weight.String()
				}
				sb.WriteString(fmt.Sprintf("| %s | %d | %d | %s | %s |\n",
					e.Name, i+1, set.Reps, weight, set.Notes))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
