package agent_test

import (
	"encoding/json"
	"flag"
	"testing"

	"github.com/plus3/stacker/agent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightsStringRoundTrip(t *testing.T) {
	w := agent.DefaultWeights
	parsed, err := agent.ParseWeights(w.String())
	require.NoError(t, err)
	assert.Equal(t, agent.DefaultWeights, parsed)
}

func TestParseWeights(t *testing.T) {
	w, err := agent.ParseWeights("-1, 2, -3.5, 0, 1e2, -0.25")
	require.NoError(t, err)
	assert.Equal(t, agent.Weights{-1, 2, -3.5, 0, 100, -0.25}, w)

	_, err = agent.ParseWeights("1,2,3")
	assert.ErrorContains(t, err, "want 6 values")

	_, err = agent.ParseWeights("1,2,x,4,5,6")
	assert.ErrorContains(t, err, "row_transitions")
}

func TestWeightsAsFlag(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	w := agent.DefaultWeights
	fs.Var(&w, "weights", "feature weights")

	require.NoError(t, fs.Parse([]string{"-weights", "1,1,1,1,1,1"}))
	assert.Equal(t, agent.Weights{1, 1, 1, 1, 1, 1}, w)
}

func TestConfigJSON(t *testing.T) {
	var cfg agent.Config
	err := json.Unmarshal([]byte(`{"enabled":true,"speed":2500,"weights":[-1,1,-1,-1,-1,-1]}`), &cfg)
	require.NoError(t, err)

	d := agent.NewDriver(cfg)
	assert.True(t, d.Enabled())
	assert.Equal(t, agent.MaxSpeed, d.Speed())
	assert.Equal(t, agent.Weights{-1, 1, -1, -1, -1, -1}, d.Weights())
}

func TestConfigJSONRejectsWrongWeightCount(t *testing.T) {
	for _, doc := range []string{
		`{"weights":[-1,1,-1]}`,
		`{"weights":[1,2,3,4,5,6,7]}`,
	} {
		cfg := agent.DefaultConfig()
		err := json.Unmarshal([]byte(doc), &cfg)
		assert.ErrorContains(t, err, "want 6 values", doc)
	}

	var w agent.Weights
	assert.Error(t, json.Unmarshal([]byte(`"1,2,3,4,5,6"`), &w))
}

func TestFeatureString(t *testing.T) {
	assert.Equal(t, "landing_height", agent.LandingHeight.String())
	assert.Equal(t, "wells", agent.Wells.String())
	assert.Equal(t, "Feature(6)", agent.NumFeatures.String())
}
