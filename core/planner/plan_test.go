package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func samplePlan() Plan {
	return Plan{
		Actions: []Action{
			{Location: "Lecce", Crop: "Carrots", Start: 120, End: 240, Cost: 3},
			{Location: "Bari", Crop: "Tomatoes", Start: 90, End: 200, Cost: 2},
			{Location: "Bari", Crop: "Pumpkins", Start: 0, End: 90, Cost: 1},
			{Location: "Lecce", Crop: "Potatoes", Start: 0, End: 120, Cost: 4},
		},
		TotalCost: 10,
	}
}

func cropNames(acts []Action) []string {
	out := make([]string, len(acts))
	for i, a := range acts {
		out[i] = a.Crop
	}
	return out
}

func TestPlanChronological(t *testing.T) {
	p := samplePlan()
	assert.Equal(t, []string{"Pumpkins", "Potatoes", "Tomatoes", "Carrots"}, cropNames(p.Chronological()))
	assert.Equal(t, "Carrots", p.Actions[0].Crop, "original order untouched")
}

func TestPlanByLocation(t *testing.T) {
	assert.Equal(t, []string{"Pumpkins", "Tomatoes", "Potatoes", "Carrots"}, cropNames(samplePlan().ByLocation()))
}

func TestPlanCheckOverlap(t *testing.T) {
	assert.NoError(t, samplePlan().CheckOverlap())

	bad := samplePlan()
	bad.Actions = append(bad.Actions, Action{Location: "Bari", Crop: "Beans", Start: 89, End: 95})
	assert.Error(t, bad.CheckOverlap())

	touching := Plan{Actions: []Action{
		{Location: "Bari", Crop: "A", Start: 0, End: 5},
		{Location: "Bari", Crop: "B", Start: 5, End: 6},
	}}
	assert.NoError(t, touching.CheckOverlap())
}
