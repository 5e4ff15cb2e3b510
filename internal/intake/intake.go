// Package intake lists the body parts a user can report and turns a
// selection into the interview seed.
package intake

import (
	"errors"
	"strings"
)

// ErrNoBodyPart is returned when no body part has been selected.
var ErrNoBodyPart = errors.New("no body part selected")

// Part is one selectable body part.
type Part struct {
	Label string
	Token string
}

// DefaultParts is the body-part list offered by both front ends.
var DefaultParts = []Part{
	{Label: "Ankle", Token: "ankle"},
	{Label: "Knee", Token: "knee"},
	{Label: "Shoulder", Token: "shoulder"},
	{Label: "Hip", Token: "hip"},
	{Label: "Back", Token: "back"},
	{Label: "Wrist", Token: "wrist"},
	{Label: "Elbow", Token: "elbow"},
}

// Seed returns the interview seed for a selected token.
func Seed(token string) (string, error) {
	t := strings.TrimSpace(token)
	if t == "" {
		return "", ErrNoBodyPart
	}
	return t, nil
}

// Lookup finds a default part by token.
func Lookup(token string) (Part, bool) {
	for _, p := range DefaultParts {
		if p.Token == token {
			return p, true
		}
	}
	return Part{}, false
}
